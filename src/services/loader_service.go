package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"dashboard/src/config"
	"dashboard/src/schemas"
	"dashboard/src/utils"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

type LoaderServiceI interface {
	LoadPortfolio(ctx context.Context) (*schemas.PortfolioData, error)
	ClearCache()
}

// LoaderService reads the portfolio exports from disk, coerces their
// columns, derives the cumulative-return series and caches the result for
// the lifetime of the process. The hosting UI re-invokes the load on every
// interaction, so the cache is part of the contract rather than a tuning.
type LoaderService struct {
	cfg   config.DatasetsConfig
	cache *utils.KeyedCache[*schemas.PortfolioData]
}

func NewLoaderService(cfg config.DatasetsConfig) *LoaderService {
	return &LoaderService{
		cfg:   cfg,
		cache: utils.NewKeyedCache[*schemas.PortfolioData](),
	}
}

// LoadPortfolio returns the normalized datasets, served from cache when the
// same source paths were already loaded this session. A failure to load the
// required fund dataset yields an error and no data; optional datasets
// degrade to nil handles instead.
func (ls *LoaderService) LoadPortfolio(ctx context.Context) (data *schemas.PortfolioData, err error) {
	// The dashboard session must survive any malformed input, so parser
	// panics are translated into the no-data outcome.
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = fmt.Errorf("failed to parse portfolio data: %v", r)
		}
	}()

	key := ls.cacheKey()
	if cached, ok := ls.cache.Get(key); ok {
		return cached, nil
	}

	switch ls.cfg.Source {
	case config.XLSX:
		data, err = ls.loadFromWorkbook(ctx)
	case config.CSV:
		data, err = ls.loadFromCSVDir(ctx)
	default:
		return nil, fmt.Errorf("unsupported dataset source %q", ls.cfg.Source)
	}
	if err != nil {
		return nil, err
	}

	ls.cache.Set(key, data)
	return data, nil
}

// ClearCache drops every cached dataset; the next load re-reads the files.
func (ls *LoaderService) ClearCache() {
	ls.cache.Clear()
}

func (ls *LoaderService) cacheKey() string {
	inputs := []string{string(ls.cfg.Source)}
	switch ls.cfg.Source {
	case config.XLSX:
		inputs = append(inputs, resolvePath(ls.cfg.WorkbookPath), ls.cfg.SheetName)
	case config.CSV:
		for _, name := range []string{utils.FundDataFile, utils.CovenantDataFile, utils.MacroDataFile} {
			inputs = append(inputs, resolvePath(filepath.Join(ls.cfg.CSVDir, name)))
		}
	}
	return utils.CacheKey(inputs...)
}

func resolvePath(path string) string {
	resolved, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return resolved
}

// loadFromWorkbook reads the single-workbook export layout. The workbook
// carries only the fund dataset; covenant and macro data do not exist in
// this layout and their handles stay nil.
func (ls *LoaderService) loadFromWorkbook(ctx context.Context) (*schemas.PortfolioData, error) {
	path := ls.cfg.WorkbookPath
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("data file %s not found, generate the portfolio workbook first: %w", path, err)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer file.Close()

	sheet := ls.cfg.SheetName
	if sheet == "" {
		sheets := file.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %s holds no data rows", sheet)
	}

	funds, err := normalizeFundFrame(recordsToFrame(padRecords(rows)))
	if err != nil {
		return nil, err
	}

	return &schemas.PortfolioData{Funds: funds}, nil
}

// loadFromCSVDir reads the three-file delimited export layout. The fund
// file is required; covenant and macro files degrade gracefully so each
// dashboard tab fails independently of the others.
func (ls *LoaderService) loadFromCSVDir(ctx context.Context) (*schemas.PortfolioData, error) {
	logger := utils.LoggerFromContext(ctx)

	fundPath := filepath.Join(ls.cfg.CSVDir, utils.FundDataFile)
	if _, err := os.Stat(fundPath); err != nil {
		return nil, fmt.Errorf("data file %s not found, generate the exports first: %w", fundPath, err)
	}
	fundRows, err := utils.ReadDelimitedFile(fundPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load fund dataset: %w", err)
	}
	if len(fundRows) < 2 {
		return nil, fmt.Errorf("fund dataset %s holds no data rows", fundPath)
	}
	funds, err := normalizeFundFrame(recordsToFrame(padRecords(fundRows)))
	if err != nil {
		return nil, err
	}

	data := &schemas.PortfolioData{Funds: funds}

	covenantPath := filepath.Join(ls.cfg.CSVDir, utils.CovenantDataFile)
	if covenants, err := loadOptionalFrame(covenantPath, utils.CovenantDateColumn); err != nil {
		logger.Warnf("covenant dataset unavailable, covenant views disabled: %v", err)
	} else {
		data.Covenants = covenants
	}

	macroPath := filepath.Join(ls.cfg.CSVDir, utils.MacroDataFile)
	if macro, err := loadOptionalFrame(macroPath, utils.MacroDateColumn); err != nil {
		logger.Warnf("macro dataset unavailable, macro views disabled: %v", err)
	} else {
		data.Macro = macro
	}

	return data, nil
}

func loadOptionalFrame(path, dateCol string) (*dataframe.DataFrame, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("data file %s not found: %w", path, err)
	}
	rows, err := utils.ReadDelimitedFile(path)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("dataset %s holds no data rows", path)
	}
	df := recordsToFrame(padRecords(rows))
	if df.Error() != nil {
		return nil, df.Error()
	}
	if utils.HasColumn(df, dateCol) {
		df = normalizeDateColumn(df, dateCol)
		df = df.Arrange(dataframe.Sort(dateCol))
	}
	return &df, nil
}

// recordsToFrame loads raw records as an all-string frame; typed coercion
// is applied per column afterwards so cell-level failures never abort the
// whole load.
func recordsToFrame(records [][]string) dataframe.DataFrame {
	return dataframe.LoadRecords(
		records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
}

// padRecords evens out ragged rows so every record matches the header
// width. Spreadsheet reads drop trailing empty cells.
func padRecords(rows [][]string) [][]string {
	if len(rows) == 0 {
		return rows
	}
	width := len(rows[0])
	padded := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) >= width {
			padded[i] = row[:width]
			continue
		}
		fixed := make([]string, width)
		copy(fixed, row)
		padded[i] = fixed
	}
	return padded
}

// normalizeFundFrame validates the fund dataset, coerces its date column,
// sorts rows by (fund, date) and derives the cumulative compounded return
// of the subordinated quota. Running it again over its own output yields
// the same frame: the raw rate column is never touched and the derived
// column is replaced, not appended.
func normalizeFundFrame(df dataframe.DataFrame) (*dataframe.DataFrame, error) {
	if df.Error() != nil {
		return nil, fmt.Errorf("failed to parse fund dataset: %w", df.Error())
	}

	names := df.Names()
	if stripped := utils.StripBOMArtifact(names[0]); stripped != names[0] {
		df = df.Rename(stripped, names[0])
	}

	for _, required := range []string{utils.FundColumn, utils.ReferenceDateColumn} {
		if !utils.HasColumn(df, required) {
			return nil, fmt.Errorf("fund dataset is missing required column %q", required)
		}
	}

	df = normalizeDateColumn(df, utils.ReferenceDateColumn)
	df = df.Arrange(
		dataframe.Sort(utils.FundColumn),
		dataframe.Sort(utils.ReferenceDateColumn),
	)

	df = deriveCumulativeReturn(df)
	if df.Error() != nil {
		return nil, fmt.Errorf("failed to normalize fund dataset: %w", df.Error())
	}
	return &df, nil
}

// normalizeDateColumn rewrites a date column into canonical YYYY-MM-DD
// strings. Unparseable cells become the empty sentinel and the row is kept.
func normalizeDateColumn(df dataframe.DataFrame, colName string) dataframe.DataFrame {
	records := df.Col(colName).Records()
	normalized := make([]string, len(records))
	for i, record := range records {
		normalized[i], _ = utils.ParseReferenceDate(record)
	}
	return df.Mutate(series.New(normalized, series.String, colName))
}

// deriveCumulativeReturn computes, per fund and in ascending date order,
// the compounded product of (1 + rate/100) minus one over the periodic
// subordinated-quota rate. Missing or unparseable rates compound as zero;
// the raw rate column itself is left untouched.
func deriveCumulativeReturn(df dataframe.DataFrame) dataframe.DataFrame {
	if !utils.HasColumn(df, utils.SubReturnRateColumn) {
		return df
	}

	funds := df.Col(utils.FundColumn).Records()
	rates := df.Col(utils.SubReturnRateColumn).Records()

	cumulative := make([]float64, len(rates))
	compounded := 1.0
	currentFund := ""
	for i := range rates {
		if funds[i] != currentFund {
			currentFund = funds[i]
			compounded = 1.0
		}
		rate, ok := utils.ParseDecimal(rates[i])
		if !ok {
			rate = 0
		}
		compounded *= 1 + rate/100
		cumulative[i] = compounded - 1
	}

	return df.Mutate(series.New(cumulative, series.Float, utils.CumulativeReturnColumn))
}
