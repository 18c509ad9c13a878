package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"dashboard/src/schemas"
	"dashboard/src/utils"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrFundNotFound       = errors.New("fund not found")
	ErrDatasetUnavailable = errors.New("dataset unavailable")
)

type MetricsServiceI interface {
	ListFunds(data *schemas.PortfolioData) []string
	FundFrame(data *schemas.PortfolioData, fund string) (*dataframe.DataFrame, error)
	FundSummary(data *schemas.PortfolioData, fund string) (*schemas.FundSummaryResponse, error)
	ReturnSeries(data *schemas.PortfolioData, fund string) ([]schemas.ReturnPoint, error)
	DelinquencySeries(data *schemas.PortfolioData, fund string) ([]schemas.BucketPoint, error)
	AgingSeries(data *schemas.PortfolioData, fund string) ([]schemas.BucketPoint, error)
	CovenantRecords(data *schemas.PortfolioData, fund string) ([]schemas.CovenantRecord, error)
	MacroSeries(data *schemas.PortfolioData) ([]schemas.MacroPoint, error)
	SubordinationPairs(df dataframe.DataFrame) []string
	AgingColumns(df dataframe.DataFrame) []string
}

// MetricsService answers the read-side questions of the dashboard over the
// loaded frames: fund listing, latest KPIs, the derived return series and
// the reshaped bucket families.
type MetricsService struct{}

func NewMetricsService() *MetricsService {
	return &MetricsService{}
}

var statusTitle = cases.Title(language.Und)

// ListFunds returns the sorted distinct fund identifiers of the dataset.
func (ms *MetricsService) ListFunds(data *schemas.PortfolioData) []string {
	seen := map[string]bool{}
	var funds []string
	for _, fund := range data.Funds.Col(utils.FundColumn).Records() {
		if fund == "" || seen[fund] {
			continue
		}
		seen[fund] = true
		funds = append(funds, fund)
	}
	sort.Strings(funds)
	return funds
}

// FundFrame filters the fund dataset down to one fund, keeping the
// (fund, date) ordering established at load time.
func (ms *MetricsService) FundFrame(data *schemas.PortfolioData, fund string) (*dataframe.DataFrame, error) {
	filtered := data.Funds.Filter(dataframe.F{
		Colname:    utils.FundColumn,
		Comparator: series.Eq,
		Comparando: fund,
	})
	if filtered.Error() != nil {
		return nil, filtered.Error()
	}
	if filtered.Nrow() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrFundNotFound, fund)
	}
	return &filtered, nil
}

// FundSummary extracts the latest-month KPIs and the non-empty compliance
// statuses of a fund.
func (ms *MetricsService) FundSummary(data *schemas.PortfolioData, fund string) (*schemas.FundSummaryResponse, error) {
	df, err := ms.FundFrame(data, fund)
	if err != nil {
		return nil, err
	}

	last := df.Nrow() - 1
	summary := &schemas.FundSummaryResponse{
		Fund:          fund,
		ReferenceDate: df.Col(utils.ReferenceDateColumn).Elem(last).String(),
		Statuses:      map[string]string{},
	}
	summary.NetWorth = latestFloat(*df, utils.NetWorthColumn, last)
	summary.PVCreditRights = latestFloat(*df, utils.PVCreditRightsColumn, last)
	summary.PDD = latestFloat(*df, utils.PDDColumn, last)

	for _, col := range utils.ColumnsWithPrefix(*df, utils.StatusPrefix) {
		value := strings.TrimSpace(df.Col(col).Elem(last).String())
		if value == "" || strings.EqualFold(value, "nan") {
			continue
		}
		label := strings.TrimPrefix(col, utils.StatusPrefix)
		label = statusTitle.String(strings.ReplaceAll(label, "_", " "))
		summary.Statuses[label] = value
	}

	return summary, nil
}

// ReturnSeries returns the periodic and cumulative subordinated-quota
// returns of a fund in date order.
func (ms *MetricsService) ReturnSeries(data *schemas.PortfolioData, fund string) ([]schemas.ReturnPoint, error) {
	df, err := ms.FundFrame(data, fund)
	if err != nil {
		return nil, err
	}
	if !utils.HasColumn(*df, utils.CumulativeReturnColumn) {
		return nil, fmt.Errorf("%w: return series", ErrDatasetUnavailable)
	}

	dates := df.Col(utils.ReferenceDateColumn).Records()
	cumulative := utils.FloatColumn(*df, utils.CumulativeReturnColumn)

	// Some exports ship the precomputed cumulative column without the raw
	// periodic rate; the series is still served, with nil rates.
	var rates []string
	if utils.HasColumn(*df, utils.SubReturnRateColumn) {
		rates = df.Col(utils.SubReturnRateColumn).Records()
	}

	points := make([]schemas.ReturnPoint, len(dates))
	for i := range dates {
		points[i] = schemas.ReturnPoint{
			Date:       dates[i],
			Cumulative: cumulative[i],
		}
		if rates == nil {
			continue
		}
		if rate, ok := utils.ParseDecimal(rates[i]); ok {
			points[i].Rate = &rate
		}
	}
	return points, nil
}

// DelinquencySeries reshapes the delinq_ratio_* family of a fund into long
// format, buckets in canonical overdue-range order.
func (ms *MetricsService) DelinquencySeries(data *schemas.PortfolioData, fund string) ([]schemas.BucketPoint, error) {
	df, err := ms.FundFrame(data, fund)
	if err != nil {
		return nil, err
	}
	cols := utils.SortBucketColumns(utils.ColumnsWithPrefix(*df, utils.DelinquencyPrefix))
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: delinquency metrics", ErrDatasetUnavailable)
	}
	return bucketPoints(*df, cols, utils.DelinquencyPrefix), nil
}

// AgingSeries reshapes the receivables aging buckets of a fund into long
// format. Aggregate "som" columns of the family are excluded, matching the
// receivables-curve chart of the source dashboard.
func (ms *MetricsService) AgingSeries(data *schemas.PortfolioData, fund string) ([]schemas.BucketPoint, error) {
	df, err := ms.FundFrame(data, fund)
	if err != nil {
		return nil, err
	}
	cols := ms.AgingColumns(*df)
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: aging buckets", ErrDatasetUnavailable)
	}
	return bucketPoints(*df, cols, utils.AgingBucketPrefix), nil
}

// AgingColumns returns the aging bucket columns in canonical range order,
// without the aggregate ("som") members of the family.
func (ms *MetricsService) AgingColumns(df dataframe.DataFrame) []string {
	var cols []string
	for _, col := range utils.ColumnsWithPrefix(df, utils.AgingBucketPrefix) {
		if strings.Contains(col, "som") {
			continue
		}
		cols = append(cols, col)
	}
	return utils.SortBucketColumns(cols)
}

// SubordinationPairs returns the subordination columns that have a
// matching threshold column with a usable latest value, interleaved with
// those thresholds. Subordination series without a defined threshold are
// not charted.
func (ms *MetricsService) SubordinationPairs(df dataframe.DataFrame) []string {
	last := df.Nrow() - 1
	if last < 0 {
		return nil
	}
	var pairs []string
	for _, col := range utils.ColumnsWithPrefix(df, utils.SubordinationPrefix) {
		threshold := strings.Replace(col, "subordination", "threshold", 1)
		if !utils.HasColumn(df, threshold) {
			continue
		}
		if _, ok := utils.ParseDecimal(df.Col(threshold).Elem(last).String()); !ok {
			continue
		}
		pairs = append(pairs, col, threshold)
	}
	return pairs
}

// CovenantRecords returns the covenant rows of a deal, or
// ErrDatasetUnavailable when the covenant file was absent from the load.
func (ms *MetricsService) CovenantRecords(data *schemas.PortfolioData, fund string) ([]schemas.CovenantRecord, error) {
	if !data.HasCovenants() {
		return nil, fmt.Errorf("%w: covenant data", ErrDatasetUnavailable)
	}

	filtered := data.Covenants.Filter(dataframe.F{
		Colname:    utils.CovenantDealColumn,
		Comparator: series.Eq,
		Comparando: fund,
	})
	if filtered.Error() != nil {
		return nil, filtered.Error()
	}

	records := make([]schemas.CovenantRecord, 0, filtered.Nrow())
	for i := 0; i < filtered.Nrow(); i++ {
		record := schemas.CovenantRecord{
			Deal:   fund,
			Date:   columnValue(filtered, utils.CovenantDateColumn, i),
			Metric: columnValue(filtered, utils.CovenantMetricColumn, i),
			Status: columnValue(filtered, utils.CovenantStatusColumn, i),
		}
		if record.Status == "" || strings.EqualFold(record.Status, "nan") {
			record.Status = "N/A"
		}
		if value, ok := utils.ParseDecimal(columnValue(filtered, utils.CovenantValueColumn, i)); ok {
			record.Value = &value
		}
		if threshold, ok := utils.ParseDecimal(columnValue(filtered, utils.CovenantThresholdColumn, i)); ok {
			record.Threshold = &threshold
		}
		records = append(records, record)
	}
	return records, nil
}

// MacroSeries returns the macro indicator observations in date order, or
// ErrDatasetUnavailable when the macro file was absent from the load.
func (ms *MetricsService) MacroSeries(data *schemas.PortfolioData) ([]schemas.MacroPoint, error) {
	if !data.HasMacro() {
		return nil, fmt.Errorf("%w: macro data", ErrDatasetUnavailable)
	}

	df := data.Macro
	points := make([]schemas.MacroPoint, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		point := schemas.MacroPoint{
			Date:       columnValue(*df, utils.MacroDateColumn, i),
			Indicators: map[string]float64{},
		}
		for _, col := range df.Names() {
			if col == utils.MacroDateColumn {
				continue
			}
			if value, ok := utils.ParseDecimal(df.Col(col).Elem(i).String()); ok {
				point.Indicators[col] = value
			}
		}
		points = append(points, point)
	}
	return points, nil
}

const (
	bucketVarColumn   = "bucket"
	bucketValueColumn = "value"
)

// bucketPoints melts the bucket columns into long format and converts the
// result into response points. The melt preserves the canonical column
// order, so points arrive grouped by bucket range.
func bucketPoints(df dataframe.DataFrame, cols []string, prefix string) []schemas.BucketPoint {
	melted := utils.MeltByDate(df, utils.ReferenceDateColumn, cols, bucketVarColumn, bucketValueColumn)

	dates := melted.Col(utils.ReferenceDateColumn).Records()
	buckets := melted.Col(bucketVarColumn).Records()
	values := utils.FloatColumn(melted, bucketValueColumn)

	points := make([]schemas.BucketPoint, len(dates))
	for i := range dates {
		points[i] = schemas.BucketPoint{
			Date:   dates[i],
			Bucket: bucketLabel(buckets[i], prefix),
		}
		if !math.IsNaN(values[i]) {
			value := values[i]
			points[i].Value = &value
		}
	}
	return points
}

// bucketLabel turns a bucket column name into its display label, e.g.
// "delinq_ratio_31-60" into "31-60".
func bucketLabel(col, prefix string) string {
	return strings.TrimPrefix(col, prefix)
}

func columnValue(df dataframe.DataFrame, colName string, row int) string {
	if !utils.HasColumn(df, colName) {
		return ""
	}
	return strings.TrimSpace(df.Col(colName).Elem(row).String())
}

func latestFloat(df dataframe.DataFrame, colName string, row int) *float64 {
	if !utils.HasColumn(df, colName) {
		return nil
	}
	value, ok := utils.ParseDecimal(df.Col(colName).Elem(row).String())
	if !ok || math.IsNaN(value) {
		return nil
	}
	return &value
}
