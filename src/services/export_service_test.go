package services_test

import (
	"context"
	"testing"

	"dashboard/src/schemas"
	"dashboard/src/services"
	"dashboard/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExportService() *services.ExportService {
	metrics := services.NewMetricsService()
	return services.NewExportService(metrics, services.NewDashboardService(metrics))
}

func TestGenerateXLSXReport(t *testing.T) {
	export := newExportService()
	data := loadTestPortfolio(t)

	file, err := export.GenerateXLSXReport(context.Background(), data, "Alpha")
	require.NoError(t, err)
	defer file.Close()

	sheets := file.GetSheetList()
	assert.Contains(t, sheets, "Fund Data")
	assert.Contains(t, sheets, "Covenants")
	assert.Contains(t, sheets, "Macro")

	rows, err := file.GetRows("Fund Data")
	require.NoError(t, err)
	require.Len(t, rows, 4, "header plus the three Alpha months")
	assert.Equal(t, utils.FundColumn, rows[0][0])
	assert.Equal(t, "Alpha", rows[1][0])
	assert.Equal(t, "2024-01-31", rows[1][1])

	covenants, err := file.GetRows("Covenants")
	require.NoError(t, err)
	require.Len(t, covenants, 3, "only the Alpha covenant rows are exported")
	for _, row := range covenants[1:] {
		assert.Equal(t, "Alpha", row[0])
	}
}

func TestGenerateXLSXReportWithoutOptionalSheets(t *testing.T) {
	export := newExportService()
	data := loadTestPortfolio(t)
	data = &schemas.PortfolioData{Funds: data.Funds}

	file, err := export.GenerateXLSXReport(context.Background(), data, "Alpha")
	require.NoError(t, err)
	defer file.Close()

	sheets := file.GetSheetList()
	assert.Contains(t, sheets, "Fund Data")
	assert.NotContains(t, sheets, "Covenants")
	assert.NotContains(t, sheets, "Macro")
}

func TestReportPages(t *testing.T) {
	export := newExportService()
	data := loadTestPortfolio(t)

	pages, err := export.ReportPages(context.Background(), data, "Alpha")
	require.NoError(t, err)
	// Fund table, six charts, covenant table.
	require.Len(t, pages, 8)

	assert.Contains(t, pages[0], "Alpha Fund Data")
	assert.Contains(t, pages[0], "<table>")

	covenantPage := pages[len(pages)-1]
	assert.Contains(t, covenantPage, "Covenants")
	assert.Contains(t, covenantPage, "0.30")
	assert.NotContains(t, covenantPage, "Beta", "only the deal's covenant rows are exported")
}

func TestReportPagesWithoutCovenants(t *testing.T) {
	export := newExportService()
	data := loadTestPortfolio(t)
	data = &schemas.PortfolioData{Funds: data.Funds}

	pages, err := export.ReportPages(context.Background(), data, "Alpha")
	require.NoError(t, err)
	require.Len(t, pages, 7)
	assert.Contains(t, pages[0], "Alpha Fund Data")
}

func TestGenerateXLSXReportUnknownFund(t *testing.T) {
	export := newExportService()
	data := loadTestPortfolio(t)

	_, err := export.GenerateXLSXReport(context.Background(), data, "Gamma")
	assert.ErrorIs(t, err, services.ErrFundNotFound)
}
