package schemas

// FundSummaryResponse carries the latest-month KPIs of a fund together
// with its non-empty compliance statuses.
type FundSummaryResponse struct {
	Fund           string            `json:"fund"`
	ReferenceDate  string            `json:"reference_date"`
	NetWorth       *float64          `json:"net_worth"`
	PVCreditRights *float64          `json:"pv_credit_rights"`
	PDD            *float64          `json:"pdd"`
	Statuses       map[string]string `json:"statuses"`
}

// ReturnPoint is one observation of the subordinated-quota return series.
// Rate is the raw periodic rate in percent and is nil when the source cell
// could not be coerced; Cumulative always carries the compounded value.
type ReturnPoint struct {
	Date       string   `json:"date"`
	Rate       *float64 `json:"rate"`
	Cumulative float64  `json:"cumulative"`
}

// BucketPoint is one long-format observation of a bucketed column family
// (delinquency ratios or receivables aging). Points arrive in canonical
// bucket order within each date.
type BucketPoint struct {
	Date   string   `json:"date"`
	Bucket string   `json:"bucket"`
	Value  *float64 `json:"value"`
}

// CovenantRecord is one row of the covenant dataset for a deal.
type CovenantRecord struct {
	Deal      string   `json:"deal"`
	Date      string   `json:"date"`
	Metric    string   `json:"metric"`
	Value     *float64 `json:"value"`
	Threshold *float64 `json:"threshold"`
	Status    string   `json:"status"`
}

// MacroPoint carries the macro indicator values observed at one date.
type MacroPoint struct {
	Date       string             `json:"date"`
	Indicators map[string]float64 `json:"indicators"`
}
