package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"dashboard/src/utils"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/go-gota/gota/dataframe"
)

// findProjectRoot finds the project root directory by looking for go.mod file
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find go.mod file in any parent directory")
		}
		dir = parent
	}
}

func loadTemplate(name string) (*template.Template, error) {
	baseDir, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}
	tmpl, err := template.ParseFiles(filepath.Join(baseDir, "templates", name))
	if err != nil {
		return nil, fmt.Errorf("failed to load template %s: %w", name, err)
	}
	return tmpl, nil
}

// GetChartHTML wraps rendered chart content into the chart template.
// wkhtmltopdf ships an older JS engine, so the ES6 declarations emitted by
// the chart library are rewritten to var.
func GetChartHTML(title string, chartContent []byte) (string, error) {
	tmpl, err := loadTemplate("chart.html")
	if err != nil {
		return "", err
	}

	var htmlBuffer bytes.Buffer
	err = tmpl.Execute(&htmlBuffer, map[string]interface{}{
		"Title": title,
		"Graph": strings.ReplaceAll(string(chartContent), "let ", "var "),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render chart HTML: %w", err)
	}
	return htmlBuffer.String(), nil
}

// GetTableHTML renders a dataframe as an HTML table page.
func GetTableHTML(title string, df *dataframe.DataFrame) (string, error) {
	tmpl, err := loadTemplate("table.html")
	if err != nil {
		return "", err
	}

	records := df.Records()
	if len(records) == 0 {
		return "", fmt.Errorf("no data available for table %s", title)
	}

	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]string, len(record))
		for i, cell := range record {
			row[i] = FormatRecordValue(cell)
		}
		rows = append(rows, row)
	}

	var htmlBuffer bytes.Buffer
	err = tmpl.Execute(&htmlBuffer, map[string]interface{}{
		"Title":  title,
		"Header": records[0],
		"Rows":   rows,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render table HTML: %w", err)
	}
	return htmlBuffer.String(), nil
}

// GetDashboardHTML assembles the per-fund page: a KPI block followed by the
// chart sections.
func GetDashboardHTML(fund string, kpis map[string]string, statuses map[string]string, chartSections []string) (string, error) {
	tmpl, err := loadTemplate("dashboard.html")
	if err != nil {
		return "", err
	}

	var htmlBuffer bytes.Buffer
	err = tmpl.Execute(&htmlBuffer, map[string]interface{}{
		"Fund":     fund,
		"KPIs":     kpis,
		"Statuses": statuses,
		"Charts":   chartSections,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render dashboard HTML: %w", err)
	}
	return htmlBuffer.String(), nil
}

// FormatMonetaryValue renders a monetary amount the way the dashboard KPI
// cards do, in millions of R$ when large enough.
func FormatMonetaryValue(value float64) string {
	if value >= 1e6 || value <= -1e6 {
		return fmt.Sprintf("R$ %.2f M", value/1e6)
	}
	return fmt.Sprintf("R$ %.2f", value)
}

// FormatPercentageValue renders a ratio as a percentage with two decimals.
func FormatPercentageValue(value float64) string {
	return fmt.Sprintf("%.2f%%", value*100)
}

// FormatRecordValue formats a raw cell for table display, keeping text
// cells as-is and aligning numeric cells to two decimals.
func FormatRecordValue(value string) string {
	parsed, ok := utils.ParseDecimal(value)
	if !ok {
		return value
	}
	return fmt.Sprintf("%.2f", parsed)
}

// GeneratePDF generates a PDF from an array of HTML strings
func GeneratePDF(htmlContents []string) (*bytes.Buffer, error) {
	// Create a new PDF generator
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	// Add each HTML string as a page in the PDF
	for _, html := range htmlContents {
		page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(html)))
		pdfg.AddPage(page)
	}

	// Set global options
	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationLandscape)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	// Generate the PDF
	err = pdfg.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	// Return the generated PDF as a buffer
	return bytes.NewBuffer(pdfg.Bytes()), nil
}
