package services

import (
	"context"
	"fmt"
	"math"

	"dashboard/src/schemas"
	"dashboard/src/utils"
	"dashboard/src/utils/render"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-gota/gota/dataframe"
)

type DashboardServiceI interface {
	RenderFundDashboard(ctx context.Context, data *schemas.PortfolioData, fund string) (string, error)
	FundChartPages(ctx context.Context, data *schemas.PortfolioData, fund string) ([]string, error)
}

// DashboardService assembles the per-fund chart page: KPI cards plus the
// six analysis charts of the monitoring dashboard. Chart families that are
// absent for a fund render as a warning note instead of failing the page.
type DashboardService struct {
	metrics MetricsServiceI
}

func NewDashboardService(metrics MetricsServiceI) *DashboardService {
	return &DashboardService{metrics: metrics}
}

type fundChart struct {
	title   string
	warning string
	content []byte
}

// RenderFundDashboard produces the full HTML page for one fund.
func (ds *DashboardService) RenderFundDashboard(ctx context.Context, data *schemas.PortfolioData, fund string) (string, error) {
	summary, err := ds.metrics.FundSummary(data, fund)
	if err != nil {
		return "", err
	}

	fundCharts, err := ds.buildFundCharts(data, fund)
	if err != nil {
		return "", err
	}

	sections := make([]string, 0, len(fundCharts))
	for i, chart := range fundCharts {
		if chart.content == nil {
			sections = append(sections, fmt.Sprintf("<h2>%d. %s</h2>\n<p class=\"warning\">%s</p>", i+1, chart.title, chart.warning))
			continue
		}
		sections = append(sections, fmt.Sprintf("<h2>%d. %s</h2>\n%s", i+1, chart.title, chart.content))
	}

	kpis := map[string]string{}
	if summary.NetWorth != nil {
		kpis["Net Worth (PL)"] = render.FormatMonetaryValue(*summary.NetWorth)
	}
	if summary.PVCreditRights != nil {
		kpis["PV of Credit Rights"] = render.FormatMonetaryValue(*summary.PVCreditRights)
	}
	if summary.PDD != nil {
		kpis["PDD"] = render.FormatMonetaryValue(*summary.PDD)
	}
	if returns, err := ds.metrics.ReturnSeries(data, fund); err == nil && len(returns) > 0 {
		kpis["Cumulative Return (Junior)"] = render.FormatPercentageValue(returns[len(returns)-1].Cumulative)
	}

	return render.GetDashboardHTML(fund, kpis, summary.Statuses, sections)
}

// FundChartPages renders each available chart of a fund as a standalone
// HTML page, one per PDF page.
func (ds *DashboardService) FundChartPages(ctx context.Context, data *schemas.PortfolioData, fund string) ([]string, error) {
	fundCharts, err := ds.buildFundCharts(data, fund)
	if err != nil {
		return nil, err
	}

	var pages []string
	for _, chart := range fundCharts {
		if chart.content == nil {
			continue
		}
		page, err := render.GetChartHTML(chart.title, chart.content)
		if err != nil {
			return nil, fmt.Errorf("failed to render chart %s: %w", chart.title, err)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func (ds *DashboardService) buildFundCharts(data *schemas.PortfolioData, fund string) ([]fundChart, error) {
	df, err := ds.metrics.FundFrame(data, fund)
	if err != nil {
		return nil, err
	}

	return []fundChart{
		ds.chartNetWorthPVPDD(*df),
		ds.chartSubordination(*df),
		ds.chartCumulativeReturn(*df),
		ds.chartDelinquency(*df),
		ds.chartOriginationAllocation(*df),
		ds.chartAging(*df),
	}, nil
}

// chartNetWorthPVPDD plots net worth, present value of credit rights and
// the PDD reserve over time.
func (ds *DashboardService) chartNetWorthPVPDD(df dataframe.DataFrame) fundChart {
	chart := fundChart{title: "Net Worth, PV & PDD"}

	line := newLineChart()
	line.SetXAxis(df.Col(utils.ReferenceDateColumn).Records())

	colorIndex := 0
	for _, col := range []struct{ name, label string }{
		{utils.NetWorthColumn, "Net Worth"},
		{utils.PVCreditRightsColumn, "PV of Credit Rights"},
		{utils.PDDColumn, "PDD"},
	} {
		if !utils.HasColumn(df, col.name) {
			continue
		}
		data := make([]opts.LineData, 0, df.Nrow())
		for _, value := range utils.FloatColumn(df, col.name) {
			data = append(data, opts.LineData{Value: chartValue(value, 2)})
		}
		line.AddSeries(col.label, data,
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: utils.GetChartColor(colorIndex),
			}),
		)
		colorIndex++
	}
	if colorIndex == 0 {
		chart.warning = "No net worth metrics were found for this fund."
		return chart
	}

	chart.content = line.RenderContent()
	return chart
}

// chartSubordination plots each subordination ratio against its
// contractual threshold. Ratios without a defined threshold are skipped.
func (ds *DashboardService) chartSubordination(df dataframe.DataFrame) fundChart {
	chart := fundChart{title: "Subordination vs. Threshold"}

	pairs := ds.metrics.SubordinationPairs(df)
	if len(pairs) == 0 {
		chart.warning = "No subordination metrics with defined thresholds were found for this fund."
		return chart
	}

	line := newPercentLineChart()
	line.SetXAxis(df.Col(utils.ReferenceDateColumn).Records())

	for i, col := range pairs {
		data := make([]opts.LineData, 0, df.Nrow())
		for _, value := range utils.FloatColumn(df, col) {
			data = append(data, opts.LineData{Value: chartValue(value*100, 2)})
		}
		line.AddSeries(col, data,
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: utils.GetChartColor(i),
			}),
		)
	}

	chart.content = line.RenderContent()
	return chart
}

// chartCumulativeReturn plots the compounded subordinated-quota return as
// a smoothed area line.
func (ds *DashboardService) chartCumulativeReturn(df dataframe.DataFrame) fundChart {
	chart := fundChart{title: "Junior Quota Cumulative Return"}

	if !utils.HasColumn(df, utils.CumulativeReturnColumn) {
		chart.warning = "No subordinated-quota return series was found for this fund."
		return chart
	}

	line := newPercentLineChart()
	line.SetXAxis(df.Col(utils.ReferenceDateColumn).Records())

	data := make([]opts.LineData, 0, df.Nrow())
	for _, value := range utils.FloatColumn(df, utils.CumulativeReturnColumn) {
		data = append(data, opts.LineData{Value: chartValue(value*100, 4)})
	}
	line.AddSeries("Cumulative Return", data,
		charts.WithAreaStyleOpts(opts.AreaStyle{
			Opacity: opts.Float(0.2),
		}),
		charts.WithLineChartOpts(opts.LineChart{
			Smooth: opts.Bool(true),
		}),
		charts.WithItemStyleOpts(opts.ItemStyle{
			Color: utils.GetChartColor(0),
		}),
	)

	chart.content = line.RenderContent()
	return chart
}

// chartDelinquency stacks the delinquency ratios by overdue range,
// buckets in canonical range order.
func (ds *DashboardService) chartDelinquency(df dataframe.DataFrame) fundChart {
	chart := fundChart{title: "Delinquency by Range (% of PV)"}

	cols := utils.SortBucketColumns(utils.ColumnsWithPrefix(df, utils.DelinquencyPrefix))
	if len(cols) == 0 {
		chart.warning = "No delinquency metrics were found for this fund."
		return chart
	}

	chart.content = ds.stackedBucketBar(df, cols, utils.DelinquencyPrefix, true)
	return chart
}

// chartOriginationAllocation plots monthly origination volume as bars with
// the net allocation ratio on a secondary percentage axis.
func (ds *DashboardService) chartOriginationAllocation(df dataframe.DataFrame) fundChart {
	chart := fundChart{title: "Monthly Origination vs. Net Allocation"}

	if !utils.HasColumn(df, utils.OriginationColumn) {
		chart.warning = "No origination metrics were found for this fund."
		return chart
	}

	dates := df.Col(utils.ReferenceDateColumn).Records()

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithAnimation(false),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Origination (R$)",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "1100px",
			Height: "600px",
		}),
	)
	bar.ExtendYAxis(opts.YAxis{
		Name: "Net Allocation",
		Type: "value",
		AxisLabel: &opts.AxisLabel{
			Formatter: "{value}%",
		},
	})
	bar.SetXAxis(dates)

	barData := make([]opts.BarData, 0, df.Nrow())
	for _, value := range utils.FloatColumn(df, utils.OriginationColumn) {
		barData = append(barData, opts.BarData{Value: chartValue(value, 2)})
	}
	bar.AddSeries("Origination (R$)", barData,
		charts.WithItemStyleOpts(opts.ItemStyle{
			Color: utils.GetChartColor(0),
		}),
	)

	if utils.HasColumn(df, utils.NetAllocationColumn) {
		line := charts.NewLine()
		line.SetXAxis(dates)
		lineData := make([]opts.LineData, 0, df.Nrow())
		for _, value := range utils.FloatColumn(df, utils.NetAllocationColumn) {
			lineData = append(lineData, opts.LineData{Value: chartValue(value*100, 2)})
		}
		line.AddSeries("Net Allocation (%)", lineData,
			charts.WithLineChartOpts(opts.LineChart{
				YAxisIndex: 1,
			}),
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: utils.GetChartColor(1),
			}),
		)
		bar.Overlap(line)
	}

	chart.content = bar.RenderContent()
	return chart
}

// chartAging stacks the receivables balances by maturity bucket.
func (ds *DashboardService) chartAging(df dataframe.DataFrame) fundChart {
	chart := fundChart{title: "Receivables Curve (Aging)"}

	cols := ds.metrics.AgingColumns(df)
	if len(cols) == 0 {
		chart.warning = "No receivables aging buckets were found for this fund."
		return chart
	}

	chart.content = ds.stackedBucketBar(df, cols, utils.AgingBucketPrefix, false)
	return chart
}

func (ds *DashboardService) stackedBucketBar(df dataframe.DataFrame, cols []string, prefix string, percentage bool) []byte {
	bar := charts.NewBar()
	yAxis := opts.YAxis{
		SplitLine: &opts.SplitLine{
			Show: opts.Bool(true),
		},
	}
	if percentage {
		yAxis.AxisLabel = &opts.AxisLabel{
			Formatter: "{value}%",
		}
	}
	bar.SetGlobalOptions(
		charts.WithAnimation(false),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(yAxis),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "1100px",
			Height: "600px",
		}),
	)
	bar.SetXAxis(df.Col(utils.ReferenceDateColumn).Records())

	for i, col := range cols {
		data := make([]opts.BarData, 0, df.Nrow())
		for _, value := range utils.FloatColumn(df, col) {
			if percentage {
				value *= 100
			}
			data = append(data, opts.BarData{Value: chartValue(value, 2)})
		}
		bar.AddSeries(bucketLabel(col, prefix), data,
			charts.WithBarChartOpts(opts.BarChart{
				Stack: "Total",
			}),
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: utils.GetChartColor(i),
			}),
		)
	}

	return bar.RenderContent()
}

func newLineChart() *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithAnimation(false),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "1100px",
			Height: "600px",
		}),
	)
	return line
}

func newPercentLineChart() *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithAnimation(false),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
			AxisLabel: &opts.AxisLabel{
				Formatter: "{value}%",
			},
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "1100px",
			Height: "600px",
		}),
	)
	return line
}

// chartValue rounds a value for display and maps NaN to a null point so
// the chart shows a gap instead of breaking.
func chartValue(value float64, decimals int) interface{} {
	if math.IsNaN(value) {
		return nil
	}
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
