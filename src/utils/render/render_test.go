package render_test

import (
	"strings"
	"testing"

	"dashboard/src/utils/render"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMonetaryValue(t *testing.T) {
	assert.Equal(t, "R$ 12.35 M", render.FormatMonetaryValue(12345678.90))
	assert.Equal(t, "R$ -2.00 M", render.FormatMonetaryValue(-2000000))
	assert.Equal(t, "R$ 999.50", render.FormatMonetaryValue(999.5))
}

func TestFormatPercentageValue(t *testing.T) {
	assert.Equal(t, "32.00%", render.FormatPercentageValue(0.32))
	assert.Equal(t, "-0.50%", render.FormatPercentageValue(-0.005))
}

func TestFormatRecordValue(t *testing.T) {
	assert.Equal(t, "1.50", render.FormatRecordValue("1,5"))
	assert.Equal(t, "OK", render.FormatRecordValue("OK"))
}

func TestGetChartHTML(t *testing.T) {
	content := []byte(`<div id="chart"></div><script>let option = {};</script>`)

	html, err := render.GetChartHTML("Delinquency", content)
	require.NoError(t, err)

	assert.Contains(t, html, "Delinquency")
	assert.Contains(t, html, "var option")
	assert.NotContains(t, html, "let option", "ES6 declarations must be rewritten for the PDF engine")
}

func TestGetTableHTML(t *testing.T) {
	df := dataframe.LoadRecords(
		[][]string{
			{"deal", "value", "status"},
			{"Alpha", "0,30", "OK"},
		},
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)

	html, err := render.GetTableHTML("Covenants", &df)
	require.NoError(t, err)
	assert.Contains(t, html, "Covenants")
	assert.Contains(t, html, "Alpha")
	assert.Contains(t, html, "<td>0.30</td>", "numeric cells align to two decimals")
	assert.Contains(t, html, "<td>OK</td>")
}

func TestGetDashboardHTML(t *testing.T) {
	html, err := render.GetDashboardHTML(
		"Alpha",
		map[string]string{"Net Worth (PL)": "R$ 12.35 M"},
		map[string]string{"Concentracao Cedente": "OK"},
		[]string{"<h2>1. Net Worth, PV & PDD</h2>"},
	)
	require.NoError(t, err)

	assert.True(t, strings.Contains(html, "Fund: Alpha"))
	assert.Contains(t, html, "R$ 12.35 M")
	assert.Contains(t, html, "Concentracao Cedente")
	assert.Contains(t, html, "<h2>1. Net Worth, PV & PDD</h2>")
}
