package reports

import "github.com/hargabyte/churn/internal/model"

// Report is one named entry of the fixed catalog.
type Report struct {
	// Name is the catalog key used by the CLI and the MCP tools.
	Name string

	// Description is a one-line summary for listings.
	Description string

	// Run executes the report over the records.
	Run func(records []model.Customer, opts Options) (interface{}, error)
}

// Catalog is the fixed report catalog in listing order. There is no query
// engine behind it: every entry is a closure over the aggregation
// primitives with its parameters pinned.
var Catalog = []Report{
	{
		Name:        "churn",
		Description: "churn label distribution",
		Run: func(records []model.Customer, _ Options) (interface{}, error) {
			return Distribution(records, DimChurn)
		},
	},
	{
		Name:        "gender",
		Description: "churn rate by gender",
		Run: func(records []model.Customer, _ Options) (interface{}, error) {
			return RateByGroup(records, Churned, DimGender)
		},
	},
	{
		Name:        "senior",
		Description: "churn rate by senior citizen flag",
		Run: func(records []model.Customer, _ Options) (interface{}, error) {
			return RateByGroup(records, Churned, DimSenior)
		},
	},
	{
		Name:        "partner",
		Description: "churn rate by partner flag",
		Run: func(records []model.Customer, _ Options) (interface{}, error) {
			return RateByGroup(records, Churned, DimPartner)
		},
	},
	{
		Name:        "contract",
		Description: "churn rate by contract term",
		Run: func(records []model.Customer, _ Options) (interface{}, error) {
			return RateByGroup(records, Churned, DimContract)
		},
	},
	{
		Name:        "internet",
		Description: "churn rate by internet service",
		Run: func(records []model.Customer, _ Options) (interface{}, error) {
			return RateByGroup(records, Churned, DimInternetService)
		},
	},
	{
		Name:        "payment",
		Description: "churn rate by payment method",
		Run: func(records []model.Customer, _ Options) (interface{}, error) {
			return RateByGroup(records, Churned, DimPaymentMethod)
		},
	},
	{
		Name:        "tenure",
		Description: "churn rate by tenure bucket",
		Run: func(records []model.Customer, _ Options) (interface{}, error) {
			return Bucket(records, Churned, TenureBuckets)
		},
	},
	{
		Name:        "charges",
		Description: "churn rate by monthly charges band",
		Run: func(records []model.Customer, _ Options) (interface{}, error) {
			return Bucket(records, Churned, MonthlyChargesBuckets)
		},
	},
	{
		Name:        "revenue",
		Description: "revenue summary by churn label",
		Run: func(records []model.Customer, _ Options) (interface{}, error) {
			return RevenueSummary(records)
		},
	},
	{
		Name:        "services",
		Description: "add-on adoption by churn label",
		Run: func(records []model.Customer, _ Options) (interface{}, error) {
			return ServiceAdoption(records)
		},
	},
	{
		Name:        "segments",
		Description: "highest-churn contract/internet/payment segments",
		Run: func(records []model.Customer, opts Options) (interface{}, error) {
			dims := []Dimension{DimContract, DimInternetService, DimPaymentMethod}
			return MultiFactorSegments(records, Churned, dims, opts.MinSegmentSize, opts.Top)
		},
	},
	{
		Name:        "clv",
		Description: "customer lifetime value by contract segment",
		Run: func(records []model.Customer, _ Options) (interface{}, error) {
			return CLV(records)
		},
	},
	{
		Name:        "impact",
		Description: "revenue impact projection of current churn",
		Run: func(records []model.Customer, _ Options) (interface{}, error) {
			return RevenueImpact(records)
		},
	},
	{
		Name:        "compare",
		Description: "statistical comparison of churned vs retained",
		Run: func(records []model.Customer, _ Options) (interface{}, error) {
			return Compare(records)
		},
	},
	{
		Name:        "kpi",
		Description: "headline KPI summary",
		Run: func(records []model.Customer, _ Options) (interface{}, error) {
			return KPISummary(records)
		},
	},
	{
		Name:        "overview",
		Description: "composite overview: KPIs, churn split, risk drivers",
		Run: func(records []model.Customer, opts Options) (interface{}, error) {
			return Overview(records, opts.weights())
		},
	},
}

// Lookup returns the catalog report with the given name.
func Lookup(name string) (Report, bool) {
	for _, r := range Catalog {
		if r.Name == name {
			return r, true
		}
	}
	return Report{}, false
}

// Names returns the catalog report names in listing order.
func Names() []string {
	names := make([]string, len(Catalog))
	for i, r := range Catalog {
		names[i] = r.Name
	}
	return names
}
