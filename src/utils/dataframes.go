package utils

//nolint:depguard
import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// HasColumn checks whether a DataFrame contains a given column
func HasColumn(df dataframe.DataFrame, colName string) bool {
	for _, name := range df.Names() {
		if name == colName {
			return true
		}
	}
	return false
}

// ColumnsWithPrefix returns the sorted set of column names starting with
// prefix. Column families (status_*, subordination_*, delinq_ratio_*,
// aging buckets) vary per export, so the schema is queried once per load
// instead of being scanned on every render.
func ColumnsWithPrefix(df dataframe.DataFrame, prefix string) []string {
	var cols []string
	for _, name := range df.Names() {
		if strings.HasPrefix(name, prefix) {
			cols = append(cols, name)
		}
	}
	sort.Strings(cols)
	return cols
}

var rangeDigits = regexp.MustCompile(`\d+`)

// SortBucketColumns orders overdue-range bucket columns by the numeric
// lower bound embedded in their names ("...30", "...31-60", "...61-90"),
// regardless of the column order in the source file. Names without a
// numeric range sort last, alphabetically.
func SortBucketColumns(names []string) []string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, aOK := bucketLowerBound(sorted[i])
		b, bOK := bucketLowerBound(sorted[j])
		if aOK && bOK {
			if a != b {
				return a < b
			}
			return sorted[i] < sorted[j]
		}
		if aOK != bOK {
			return aOK
		}
		return sorted[i] < sorted[j]
	})
	return sorted
}

func bucketLowerBound(name string) (int, bool) {
	match := rangeDigits.FindString(name)
	if match == "" {
		return 0, false
	}
	bound, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return bound, true
}

// MeltByDate reshapes the wide valueCols of df into a long-format frame
// with one row per (date, variable) pair. Column order of valueCols is
// preserved, which is how bucket families keep their canonical ordering
// when charted. Values are coerced to floats; unparseable cells become NaN.
func MeltByDate(df dataframe.DataFrame, dateCol string, valueCols []string, varName, valueName string) dataframe.DataFrame {
	nrow := df.Nrow()
	dates := df.Col(dateCol).Records()

	total := nrow * len(valueCols)
	meltedDates := make([]string, 0, total)
	meltedVars := make([]string, 0, total)
	meltedValues := make([]float64, 0, total)

	for _, col := range valueCols {
		records := df.Col(col).Records()
		for i := 0; i < nrow; i++ {
			value, _ := ParseDecimal(records[i])
			meltedDates = append(meltedDates, dates[i])
			meltedVars = append(meltedVars, col)
			meltedValues = append(meltedValues, value)
		}
	}

	return dataframe.New(
		series.New(meltedDates, series.String, dateCol),
		series.New(meltedVars, series.String, varName),
		series.New(meltedValues, series.Float, valueName),
	)
}

// FloatColumn coerces a column of df into float64 values via ParseDecimal.
func FloatColumn(df dataframe.DataFrame, colName string) []float64 {
	records := df.Col(colName).Records()
	values := make([]float64, len(records))
	for i, record := range records {
		values[i], _ = ParseDecimal(record)
	}
	return values
}
