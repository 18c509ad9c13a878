package utils_test

import (
	"math"
	"testing"

	"dashboard/src/utils"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bucketTestFrame() dataframe.DataFrame {
	return dataframe.LoadRecords(
		[][]string{
			{"data_referencia", "delinq_ratio_31-60", "delinq_ratio_0-30", "net_worth"},
			{"2024-01-31", "0,02", "0,01", "100"},
			{"2024-02-29", "0,03", "", "110"},
		},
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
}

func TestHasColumn(t *testing.T) {
	df := bucketTestFrame()
	assert.True(t, utils.HasColumn(df, "net_worth"))
	assert.False(t, utils.HasColumn(df, "pdd"))
}

func TestColumnsWithPrefix(t *testing.T) {
	df := bucketTestFrame()
	assert.Equal(t, []string{"delinq_ratio_0-30", "delinq_ratio_31-60"}, utils.ColumnsWithPrefix(df, "delinq_ratio_"))
	assert.Empty(t, utils.ColumnsWithPrefix(df, "status_"))
}

func TestSortBucketColumns(t *testing.T) {
	shuffled := []string{
		"delinq_ratio_61-90",
		"delinq_ratio_0-30",
		"delinq_ratio_90+",
		"delinq_ratio_31-60",
	}
	assert.Equal(t, []string{
		"delinq_ratio_0-30",
		"delinq_ratio_31-60",
		"delinq_ratio_61-90",
		"delinq_ratio_90+",
	}, utils.SortBucketColumns(shuffled))
}

func TestSortBucketColumnsNonNumericLast(t *testing.T) {
	names := []string{"vl_prazo_venc_total", "vl_prazo_venc_60", "vl_prazo_venc_30"}
	assert.Equal(t, []string{"vl_prazo_venc_30", "vl_prazo_venc_60", "vl_prazo_venc_total"}, utils.SortBucketColumns(names))
}

func TestMeltByDate(t *testing.T) {
	df := bucketTestFrame()
	melted := utils.MeltByDate(df, "data_referencia", []string{"delinq_ratio_0-30", "delinq_ratio_31-60"}, "bucket", "value")
	require.NoError(t, melted.Error())
	require.Equal(t, 4, melted.Nrow())

	buckets := melted.Col("bucket").Records()
	assert.Equal(t, []string{"delinq_ratio_0-30", "delinq_ratio_0-30", "delinq_ratio_31-60", "delinq_ratio_31-60"}, buckets)

	values := utils.FloatColumn(melted, "value")
	assert.InDelta(t, 0.01, values[0], 1e-9)
	assert.True(t, math.IsNaN(values[1]), "empty cells must melt to NaN")
	assert.InDelta(t, 0.02, values[2], 1e-9)
	assert.InDelta(t, 0.03, values[3], 1e-9)
}

func TestFloatColumn(t *testing.T) {
	df := bucketTestFrame()
	values := utils.FloatColumn(df, "delinq_ratio_31-60")
	require.Len(t, values, 2)
	assert.InDelta(t, 0.02, values[0], 1e-9)
	assert.InDelta(t, 0.03, values[1], 1e-9)
}
