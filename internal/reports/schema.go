package reports

// Row types for the report catalog. Column names and their order are part
// of each report's contract: renderers emit fields in struct order and
// reimplementations are expected to match them.

// DistributionRow is one category of a distribution report.
type DistributionRow struct {
	// Category is the canonical value of the grouped field.
	Category string `yaml:"category" json:"category"`

	// Count is the number of rows carrying the category.
	Count int `yaml:"count" json:"count"`

	// Percentage is 100*count/total, rounded to two decimals.
	Percentage float64 `yaml:"percentage" json:"percentage"`
}

// RateRow is one group of a churn-rate breakdown. Group is the joined
// value of the grouping dimensions, in dimension order, separated by " / ".
type RateRow struct {
	Group string `yaml:"group" json:"group"`

	// Total is the number of rows in the group.
	Total int `yaml:"total" json:"total"`

	// Churned is the number of rows with the positive churn label.
	Churned int `yaml:"churned" json:"churned"`

	// RatePercent is 100*churned/total, rounded to two decimals.
	RatePercent float64 `yaml:"rate_percent" json:"rate_percent"`
}

// RevenueRow aggregates billing for one churn label.
type RevenueRow struct {
	Churn      string  `yaml:"churn" json:"churn"`
	Count      int     `yaml:"count" json:"count"`
	AvgMonthly float64 `yaml:"avg_monthly" json:"avg_monthly"`
	AvgTotal   float64 `yaml:"avg_total" json:"avg_total"`
	SumMonthly float64 `yaml:"sum_monthly" json:"sum_monthly"`
	SumTotal   float64 `yaml:"sum_total" json:"sum_total"`
}

// KPIRow is one named metric of a metric/value report.
type KPIRow struct {
	Metric string  `yaml:"metric" json:"metric"`
	Value  float64 `yaml:"value" json:"value"`
}

// ServiceAdoptionRow reports one add-on's take rate inside each churn
// group.
type ServiceAdoptionRow struct {
	Service string `yaml:"service" json:"service"`

	// ChurnedPct is the share of churned customers subscribed to the
	// add-on, rounded to two decimals.
	ChurnedPct float64 `yaml:"churned_pct" json:"churned_pct"`

	// RetainedPct is the share of retained customers subscribed.
	RetainedPct float64 `yaml:"retained_pct" json:"retained_pct"`
}

// CLVRow estimates customer lifetime value for one contract segment.
type CLVRow struct {
	Contract        string  `yaml:"contract" json:"contract"`
	Customers       int     `yaml:"customers" json:"customers"`
	AvgTenureMonths float64 `yaml:"avg_tenure_months" json:"avg_tenure_months"`
	AvgMonthly      float64 `yaml:"avg_monthly" json:"avg_monthly"`

	// CLV is average tenure times average monthly charge, computed from
	// unrounded averages.
	CLV float64 `yaml:"clv" json:"clv"`
}

// ComparisonRow is one statistical test of the compare report. Statistic
// and CriticalValue share a scale within a row; Significant means the
// statistic clears the critical value at the 0.05 level.
type ComparisonRow struct {
	Test          string  `yaml:"test" json:"test"`
	Statistic     float64 `yaml:"statistic" json:"statistic"`
	CriticalValue float64 `yaml:"critical_value" json:"critical_value"`
	Significant   bool    `yaml:"significant" json:"significant"`
}

// RiskRow is one scored customer of the risk profile.
type RiskRow struct {
	CustomerID      string  `yaml:"customer_id" json:"customer_id"`
	Score           int     `yaml:"score" json:"score"`
	Tier            string  `yaml:"tier" json:"tier"`
	Contract        string  `yaml:"contract" json:"contract"`
	InternetService string  `yaml:"internet_service" json:"internet_service"`
	PaymentMethod   string  `yaml:"payment_method" json:"payment_method"`
	TenureMonths    int     `yaml:"tenure_months" json:"tenure_months"`
	MonthlyCharges  float64 `yaml:"monthly_charges" json:"monthly_charges"`
	Churn           string  `yaml:"churn" json:"churn"`
}

// RiskProfile pairs the tier breakdown of the whole dataset with the
// ranked customer listing.
type RiskProfile struct {
	Tiers     []DistributionRow `yaml:"tiers" json:"tiers"`
	Customers []RiskRow         `yaml:"customers" json:"customers"`
}

// OverviewReport is the composite headline report: the KPI summary, the
// churn split, and the churn rate inside each documented risk driver
// cohort.
type OverviewReport struct {
	KPIs    []KPIRow          `yaml:"kpis" json:"kpis"`
	Churn   []DistributionRow `yaml:"churn" json:"churn"`
	Drivers []RateRow         `yaml:"drivers" json:"drivers"`
}
