package utils

const ShortDashDateLayout = "2006-01-02"
const ShortSlashDateLayout = "02/01/2006"

// Fund dataset column names. These are the public contract of the
// monthly exports and must match the source files exactly.
const (
	FundColumn             = "fundo"
	ReferenceDateColumn    = "data_referencia"
	NetWorthColumn         = "net_worth"
	PVCreditRightsColumn   = "pv_credit_rights"
	PDDColumn              = "pdd"
	SubReturnRateColumn    = "retorno_subordinada_1"
	CumulativeReturnColumn = "retorno_sub_acumulado"
	OriginationColumn      = "vl_dicred_aquis_mes"
	NetAllocationColumn    = "net_allocation"
)

// Column families discovered by prefix at load time.
const (
	StatusPrefix        = "status_"
	SubordinationPrefix = "subordination_"
	ThresholdPrefix     = "threshold_"
	DelinquencyPrefix   = "delinq_ratio_"
	AgingBucketPrefix   = "vl_prazo_venc_"
)

// Covenant dataset column names.
const (
	CovenantDealColumn      = "deal"
	CovenantDateColumn      = "date"
	CovenantMetricColumn    = "metric"
	CovenantValueColumn     = "value"
	CovenantThresholdColumn = "threshold"
	CovenantStatusColumn    = "status"
)

// MacroDateColumn is the date column of the macro indicator dataset; the
// remaining columns are one numeric series per indicator.
const MacroDateColumn = "date"

// File names of the three-file delimited export layout.
const (
	FundDataFile     = "fund_data.csv"
	CovenantDataFile = "covenant_data.csv"
	MacroDataFile    = "macro_data.csv"
)

// ChartColors defines a palette of distinct colors for chart visualization
// These colors are designed to be easily distinguishable from each other
// Using a professional report color palette for business and financial reports
var ChartColors = []string{
	"#ffa366", // Light Orange
	"#ff8080", // Light Red
	"#80b3ff", // Light Blue
	"#a3d977", // Light Green
	"#c285ff", // Light Purple
	"#80e6d4", // Light Teal
	"#ffb366", // Medium Orange
	"#ff6666", // Medium Red
	"#80b366", // Medium Green
	"#e680ff", // Light Magenta
	"#808080", // Medium Gray
	"#b3a3ff", // Light Slate Blue
	"#80d4cc", // Light Sea Green
}

// GetChartColor returns a color from the chart color palette
// If the index exceeds the palette size, it cycles back to the beginning
func GetChartColor(index int) string {
	return ChartColors[index%len(ChartColors)]
}
