package services_test

import (
	"context"
	"testing"

	"dashboard/src/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFundDashboard(t *testing.T) {
	metrics := services.NewMetricsService()
	dashboard := services.NewDashboardService(metrics)
	data := loadTestPortfolio(t)

	page, err := dashboard.RenderFundDashboard(context.Background(), data, "Alpha")
	require.NoError(t, err)

	assert.Contains(t, page, "Fund: Alpha")
	assert.Contains(t, page, "R$ 12.35 M")
	assert.Contains(t, page, "Concentracao Cedente")
	// 1.01*1.02*0.995 - 1 = 0.025049, shown as a percentage KPI.
	assert.Contains(t, page, "2.50%")

	assert.Contains(t, page, "Net Worth, PV & PDD")
	assert.Contains(t, page, "Subordination vs. Threshold")
	assert.Contains(t, page, "Junior Quota Cumulative Return")
	assert.Contains(t, page, "Delinquency by Range")
	assert.Contains(t, page, "Monthly Origination vs. Net Allocation")
	assert.Contains(t, page, "Receivables Curve (Aging)")
}

func TestRenderFundDashboardUnknownFund(t *testing.T) {
	metrics := services.NewMetricsService()
	dashboard := services.NewDashboardService(metrics)
	data := loadTestPortfolio(t)

	_, err := dashboard.RenderFundDashboard(context.Background(), data, "Gamma")
	assert.ErrorIs(t, err, services.ErrFundNotFound)
}

func TestRenderFundDashboardMissingFamiliesWarn(t *testing.T) {
	metrics := services.NewMetricsService()
	dashboard := services.NewDashboardService(metrics)
	data := loadPortfolioWithoutBuckets(t)

	page, err := dashboard.RenderFundDashboard(context.Background(), data, "Alpha")
	require.NoError(t, err)

	// Absent chart families degrade to warning notes instead of failing
	// the whole page.
	assert.Contains(t, page, "No delinquency metrics were found for this fund.")
	assert.Contains(t, page, "No receivables aging buckets were found for this fund.")
	assert.Contains(t, page, "Junior Quota Cumulative Return")
}

func TestFundChartPages(t *testing.T) {
	metrics := services.NewMetricsService()
	dashboard := services.NewDashboardService(metrics)
	data := loadTestPortfolio(t)

	pages, err := dashboard.FundChartPages(context.Background(), data, "Alpha")
	require.NoError(t, err)
	require.Len(t, pages, 6)

	for _, page := range pages {
		assert.NotContains(t, page, "let ", "chart pages must be rewritten for the PDF engine")
	}
}

func TestFundChartPagesSkipWarnings(t *testing.T) {
	metrics := services.NewMetricsService()
	dashboard := services.NewDashboardService(metrics)
	data := loadPortfolioWithoutBuckets(t)

	pages, err := dashboard.FundChartPages(context.Background(), data, "Alpha")
	require.NoError(t, err)

	// Net worth and cumulative return are present; subordination,
	// delinquency, origination and aging are not.
	assert.Len(t, pages, 2)
}
