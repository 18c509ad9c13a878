package services

import (
	"context"
	"fmt"
	"strconv"

	"dashboard/src/schemas"
	"dashboard/src/utils"
	"dashboard/src/utils/render"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

type ExportServiceI interface {
	GenerateXLSXReport(ctx context.Context, data *schemas.PortfolioData, fund string) (*excelize.File, error)
	GeneratePDFReport(ctx context.Context, data *schemas.PortfolioData, fund string) ([]byte, error)
}

// ExportService produces the downloadable renditions of a fund's data: a
// styled workbook with one sheet per available dataset, or a PDF of the
// dashboard charts.
type ExportService struct {
	metrics   MetricsServiceI
	dashboard DashboardServiceI
}

func NewExportService(metrics MetricsServiceI, dashboard DashboardServiceI) *ExportService {
	return &ExportService{metrics: metrics, dashboard: dashboard}
}

func (es *ExportService) GenerateXLSXReport(ctx context.Context, data *schemas.PortfolioData, fund string) (*excelize.File, error) {
	fundFrame, err := es.metrics.FundFrame(data, fund)
	if err != nil {
		return nil, err
	}

	file, err := es.convertDataframeToSheet(nil, fundFrame, "Fund Data")
	if err != nil {
		return nil, err
	}

	if data.HasCovenants() {
		covenants := data.Covenants.Filter(dataframe.F{
			Colname:    utils.CovenantDealColumn,
			Comparator: series.Eq,
			Comparando: fund,
		})
		if covenants.Error() == nil && covenants.Nrow() > 0 {
			file, err = es.convertDataframeToSheet(file, &covenants, "Covenants")
			if err != nil {
				return nil, err
			}
		}
	}

	if data.HasMacro() {
		file, err = es.convertDataframeToSheet(file, data.Macro, "Macro")
		if err != nil {
			return nil, err
		}
	}

	if err = es.applyStylesToAllSheets(file); err != nil {
		return nil, err
	}
	return file, nil
}

// GeneratePDFReport renders the fund report as a PDF, one page per table
// or chart.
func (es *ExportService) GeneratePDFReport(ctx context.Context, data *schemas.PortfolioData, fund string) ([]byte, error) {
	pages, err := es.ReportPages(ctx, data, fund)
	if err != nil {
		return nil, err
	}

	pdfBuffer, err := render.GeneratePDF(pages)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return pdfBuffer.Bytes(), nil
}

// ReportPages assembles the HTML pages of the PDF report: the fund data
// table first, then one page per available chart, then the covenant table
// when that dataset is present.
func (es *ExportService) ReportPages(ctx context.Context, data *schemas.PortfolioData, fund string) ([]string, error) {
	fundFrame, err := es.metrics.FundFrame(data, fund)
	if err != nil {
		return nil, err
	}

	tablePage, err := render.GetTableHTML(fmt.Sprintf("%s Fund Data", fund), fundFrame)
	if err != nil {
		return nil, fmt.Errorf("failed to render fund table: %w", err)
	}
	pages := []string{tablePage}

	chartPages, err := es.dashboard.FundChartPages(ctx, data, fund)
	if err != nil {
		return nil, err
	}
	pages = append(pages, chartPages...)

	if data.HasCovenants() {
		covenants := data.Covenants.Filter(dataframe.F{
			Colname:    utils.CovenantDealColumn,
			Comparator: series.Eq,
			Comparando: fund,
		})
		if covenants.Error() == nil && covenants.Nrow() > 0 {
			covenantPage, err := render.GetTableHTML("Covenants", &covenants)
			if err != nil {
				return nil, fmt.Errorf("failed to render covenant table: %w", err)
			}
			pages = append(pages, covenantPage)
		}
	}

	return pages, nil
}

// convertDataframeToSheet writes a dataframe to one worksheet, headers in
// the first row, numeric cells typed as numbers.
func (es *ExportService) convertDataframeToSheet(f *excelize.File, df *dataframe.DataFrame, sheetName string) (*excelize.File, error) {
	if df == nil || df.Nrow() == 0 || df.Ncol() == 0 {
		return f, nil
	}

	if f == nil {
		f = excelize.NewFile()
		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			return nil, err
		}
	} else {
		index, err := f.NewSheet(sheetName)
		if err != nil {
			return nil, err
		}
		defer f.SetActiveSheet(index)
	}

	for colIndex, name := range df.Names() {
		cell := fmt.Sprintf("%s1", es.toAlphaString(colIndex+1))
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return nil, err
		}
	}

	for rowIndex, row := range df.Records()[1:] { // Records includes the header row
		for colIndex, cellValue := range row {
			cell := fmt.Sprintf("%s%d", es.toAlphaString(colIndex+1), rowIndex+2)
			if numValue, err := strconv.ParseFloat(cellValue, 64); err == nil {
				if err := f.SetCellValue(sheetName, cell, numValue); err != nil {
					return nil, err
				}
				continue
			}
			if err := f.SetCellValue(sheetName, cell, cellValue); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

func (es *ExportService) toAlphaString(column int) string {
	result := ""
	for column > 0 {
		column--
		result = string(rune('A'+column%26)) + result
		column /= 26
	}
	return result
}

func (es *ExportService) applyStylesToAllSheets(f *excelize.File) error {
	sheets := f.GetSheetList()
	for _, sheetName := range sheets {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return err
		}

		if len(rows) == 0 {
			continue
		}

		lastRow := len(rows)
		lastCol := len(rows[0])

		headerStyle, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{
				Bold: true,
			},
			Fill: excelize.Fill{
				Type:    "pattern",
				Color:   []string{"#E6E6E6"},
				Pattern: 1,
			},
			Border: []excelize.Border{
				{Type: "left", Color: "000000", Style: 1},
				{Type: "top", Color: "000000", Style: 1},
				{Type: "bottom", Color: "000000", Style: 1},
				{Type: "right", Color: "000000", Style: 1},
			},
			Alignment: &excelize.Alignment{
				Horizontal: "center",
				Vertical:   "center",
			},
		})
		if err != nil {
			return err
		}

		err = f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", es.toAlphaString(lastCol)), headerStyle)
		if err != nil {
			return err
		}

		dataStyle, err := f.NewStyle(&excelize.Style{
			Border: []excelize.Border{
				{Type: "left", Color: "000000", Style: 1},
				{Type: "top", Color: "000000", Style: 1},
				{Type: "bottom", Color: "000000", Style: 1},
				{Type: "right", Color: "000000", Style: 1},
			},
			Alignment: &excelize.Alignment{
				Horizontal: "center",
				Vertical:   "center",
			},
		})
		if err != nil {
			return err
		}

		if lastRow > 1 {
			err = f.SetCellStyle(sheetName, "A2", fmt.Sprintf("%s%d", es.toAlphaString(lastCol), lastRow), dataStyle)
			if err != nil {
				return err
			}
		}

		for i := 1; i <= lastCol; i++ {
			colName := es.toAlphaString(i)
			err = f.SetColWidth(sheetName, colName, colName, 15)
			if err != nil {
				return err
			}
		}
	}

	return nil
}
