package controllers

import (
	"context"
	"errors"
	"fmt"

	"dashboard/src/config"
	"dashboard/src/schemas"
	"dashboard/src/services"
	"dashboard/src/utils"

	"github.com/xuri/excelize/v2"
)

type IController interface {
	ListFunds(ctx context.Context) ([]string, error)
	GetFundSummary(ctx context.Context, fund string) (*schemas.FundSummaryResponse, error)
	GetReturnSeries(ctx context.Context, fund string) ([]schemas.ReturnPoint, error)
	GetDelinquencySeries(ctx context.Context, fund string) ([]schemas.BucketPoint, error)
	GetAgingSeries(ctx context.Context, fund string) ([]schemas.BucketPoint, error)
	GetCovenants(ctx context.Context, fund string) ([]schemas.CovenantRecord, error)
	GetMacroSeries(ctx context.Context) ([]schemas.MacroPoint, error)
	RenderFundDashboard(ctx context.Context, fund string) (string, error)
	GenerateXLSXReport(ctx context.Context, fund string) (*excelize.File, error)
	GeneratePDFReport(ctx context.Context, fund string) ([]byte, error)
	ClearCache(ctx context.Context)
}

// Controller orchestrates the loader and the read-side services, and maps
// their failures onto the HTTP error taxonomy: loader failures become 503
// (dashboard unavailable), unknown funds 404, absent optional datasets 404.
type Controller struct {
	Loader    services.LoaderServiceI
	Metrics   services.MetricsServiceI
	Dashboard services.DashboardServiceI
	Export    services.ExportServiceI
}

func NewController(cfg *config.Config) *Controller {
	metrics := services.NewMetricsService()
	dashboard := services.NewDashboardService(metrics)
	return &Controller{
		Loader:    services.NewLoaderService(cfg.Datasets),
		Metrics:   metrics,
		Dashboard: dashboard,
		Export:    services.NewExportService(metrics, dashboard),
	}
}

func (c *Controller) loadPortfolio(ctx context.Context) (*schemas.PortfolioData, error) {
	data, err := c.Loader.LoadPortfolio(ctx)
	if err != nil {
		utils.LoggerFromContext(ctx).Warnf("portfolio load failed: %v", err)
		return nil, utils.ServiceUnavailable(fmt.Sprintf("portfolio data unavailable: %v", err))
	}
	return data, nil
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrFundNotFound):
		return utils.NotFound(err.Error())
	case errors.Is(err, services.ErrDatasetUnavailable):
		return utils.NotFound(err.Error())
	default:
		return err
	}
}

func (c *Controller) ListFunds(ctx context.Context) ([]string, error) {
	data, err := c.loadPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	return c.Metrics.ListFunds(data), nil
}

func (c *Controller) GetFundSummary(ctx context.Context, fund string) (*schemas.FundSummaryResponse, error) {
	data, err := c.loadPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	summary, err := c.Metrics.FundSummary(data, fund)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return summary, nil
}

func (c *Controller) GetReturnSeries(ctx context.Context, fund string) ([]schemas.ReturnPoint, error) {
	data, err := c.loadPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	points, err := c.Metrics.ReturnSeries(data, fund)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return points, nil
}

func (c *Controller) GetDelinquencySeries(ctx context.Context, fund string) ([]schemas.BucketPoint, error) {
	data, err := c.loadPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	points, err := c.Metrics.DelinquencySeries(data, fund)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return points, nil
}

func (c *Controller) GetAgingSeries(ctx context.Context, fund string) ([]schemas.BucketPoint, error) {
	data, err := c.loadPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	points, err := c.Metrics.AgingSeries(data, fund)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return points, nil
}

func (c *Controller) GetCovenants(ctx context.Context, fund string) ([]schemas.CovenantRecord, error) {
	data, err := c.loadPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	records, err := c.Metrics.CovenantRecords(data, fund)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return records, nil
}

func (c *Controller) GetMacroSeries(ctx context.Context) ([]schemas.MacroPoint, error) {
	data, err := c.loadPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	points, err := c.Metrics.MacroSeries(data)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return points, nil
}

func (c *Controller) RenderFundDashboard(ctx context.Context, fund string) (string, error) {
	data, err := c.loadPortfolio(ctx)
	if err != nil {
		return "", err
	}
	page, err := c.Dashboard.RenderFundDashboard(ctx, data, fund)
	if err != nil {
		return "", mapServiceError(err)
	}
	return page, nil
}

func (c *Controller) GenerateXLSXReport(ctx context.Context, fund string) (*excelize.File, error) {
	data, err := c.loadPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	file, err := c.Export.GenerateXLSXReport(ctx, data, fund)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return file, nil
}

func (c *Controller) GeneratePDFReport(ctx context.Context, fund string) ([]byte, error) {
	data, err := c.loadPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	pdfData, err := c.Export.GeneratePDFReport(ctx, data, fund)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return pdfData, nil
}

func (c *Controller) ClearCache(ctx context.Context) {
	c.Loader.ClearCache()
	utils.LoggerFromContext(ctx).Info("dataset cache cleared")
}
