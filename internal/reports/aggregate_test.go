package reports

import (
	"errors"
	"math"
	"testing"

	"github.com/hargabyte/churn/internal/model"
)

// fourRecords is the minimal contract-rate scenario.
func fourRecords() []model.Customer {
	return []model.Customer{
		{CustomerID: "A", Contract: model.ContractMonthToMonth, Churn: model.Yes, MonthlyCharges: 70},
		{CustomerID: "B", Contract: model.ContractTwoYear, Churn: model.No, MonthlyCharges: 50},
		{CustomerID: "C", Contract: model.ContractMonthToMonth, Churn: model.No, MonthlyCharges: 60},
		{CustomerID: "D", Contract: model.ContractMonthToMonth, Churn: model.Yes, MonthlyCharges: 80},
	}
}

// sampleCustomers is a hand-built dataset covering every enum domain,
// both churn labels, and all tenure buckets.
func sampleCustomers() []model.Customer {
	return []model.Customer{
		{CustomerID: "C01", Gender: model.GenderMale, SeniorCitizen: false, Partner: model.Yes, TenureMonths: 2, Contract: model.ContractMonthToMonth, InternetService: model.InternetFiber, PaymentMethod: model.PaymentElectronicCheck, OnlineSecurity: model.ServiceNo, OnlineBackup: model.ServiceNo, DeviceProtection: model.ServiceNo, TechSupport: model.ServiceNo, StreamingTV: model.ServiceYes, StreamingMovies: model.ServiceYes, MonthlyCharges: 85.5, TotalCharges: 171, Churn: model.Yes},
		{CustomerID: "C02", Gender: model.GenderFemale, SeniorCitizen: true, Partner: model.No, TenureMonths: 1, Contract: model.ContractMonthToMonth, InternetService: model.InternetFiber, PaymentMethod: model.PaymentElectronicCheck, OnlineSecurity: model.ServiceNo, OnlineBackup: model.ServiceNo, DeviceProtection: model.ServiceNo, TechSupport: model.ServiceNo, StreamingTV: model.ServiceNo, StreamingMovies: model.ServiceNo, MonthlyCharges: 95.2, TotalCharges: 95.2, Churn: model.Yes},
		{CustomerID: "C03", Gender: model.GenderMale, SeniorCitizen: false, Partner: model.No, TenureMonths: 8, Contract: model.ContractMonthToMonth, InternetService: model.InternetDSL, PaymentMethod: model.PaymentMailedCheck, OnlineSecurity: model.ServiceYes, OnlineBackup: model.ServiceNo, DeviceProtection: model.ServiceNo, TechSupport: model.ServiceYes, StreamingTV: model.ServiceNo, StreamingMovies: model.ServiceNo, MonthlyCharges: 45, TotalCharges: 360, Churn: model.No},
		{CustomerID: "C04", Gender: model.GenderFemale, SeniorCitizen: false, Partner: model.Yes, TenureMonths: 30, Contract: model.ContractOneYear, InternetService: model.InternetDSL, PaymentMethod: model.PaymentCreditCard, OnlineSecurity: model.ServiceYes, OnlineBackup: model.ServiceYes, DeviceProtection: model.ServiceNo, TechSupport: model.ServiceYes, StreamingTV: model.ServiceNo, StreamingMovies: model.ServiceNo, MonthlyCharges: 60, TotalCharges: 1800, Churn: model.No},
		{CustomerID: "C05", Gender: model.GenderMale, SeniorCitizen: true, Partner: model.No, TenureMonths: 5, Contract: model.ContractMonthToMonth, InternetService: model.InternetFiber, PaymentMethod: model.PaymentElectronicCheck, OnlineSecurity: model.ServiceNo, OnlineBackup: model.ServiceNo, DeviceProtection: model.ServiceNo, TechSupport: model.ServiceNo, StreamingTV: model.ServiceNo, StreamingMovies: model.ServiceNo, MonthlyCharges: 99.9, TotalCharges: 499.5, Churn: model.Yes},
		{CustomerID: "C06", Gender: model.GenderFemale, SeniorCitizen: false, Partner: model.Yes, TenureMonths: 60, Contract: model.ContractTwoYear, InternetService: model.InternetNone, PaymentMethod: model.PaymentMailedCheck, OnlineSecurity: model.ServiceNoInternet, OnlineBackup: model.ServiceNoInternet, DeviceProtection: model.ServiceNoInternet, TechSupport: model.ServiceNoInternet, StreamingTV: model.ServiceNoInternet, StreamingMovies: model.ServiceNoInternet, MonthlyCharges: 20.05, TotalCharges: 1203, Churn: model.No},
		{CustomerID: "C07", Gender: model.GenderMale, SeniorCitizen: false, Partner: model.No, TenureMonths: 13, Contract: model.ContractMonthToMonth, InternetService: model.InternetFiber, PaymentMethod: model.PaymentBankTransfer, OnlineSecurity: model.ServiceNo, OnlineBackup: model.ServiceYes, DeviceProtection: model.ServiceNo, TechSupport: model.ServiceNo, StreamingTV: model.ServiceNo, StreamingMovies: model.ServiceNo, MonthlyCharges: 80.3, TotalCharges: 1043.9, Churn: model.No},
		{CustomerID: "C08", Gender: model.GenderFemale, SeniorCitizen: false, Partner: model.Yes, TenureMonths: 70, Contract: model.ContractTwoYear, InternetService: model.InternetDSL, PaymentMethod: model.PaymentBankTransfer, OnlineSecurity: model.ServiceYes, OnlineBackup: model.ServiceYes, DeviceProtection: model.ServiceYes, TechSupport: model.ServiceYes, StreamingTV: model.ServiceYes, StreamingMovies: model.ServiceYes, MonthlyCharges: 110, TotalCharges: 7700, Churn: model.No},
		{CustomerID: "C09", Gender: model.GenderMale, SeniorCitizen: true, Partner: model.No, TenureMonths: 3, Contract: model.ContractMonthToMonth, InternetService: model.InternetFiber, PaymentMethod: model.PaymentElectronicCheck, OnlineSecurity: model.ServiceNo, OnlineBackup: model.ServiceNo, DeviceProtection: model.ServiceNo, TechSupport: model.ServiceNo, StreamingTV: model.ServiceNo, StreamingMovies: model.ServiceNo, MonthlyCharges: 102.25, TotalCharges: 306.75, Churn: model.Yes},
		{CustomerID: "C10", Gender: model.GenderFemale, SeniorCitizen: false, Partner: model.No, TenureMonths: 25, Contract: model.ContractOneYear, InternetService: model.InternetDSL, PaymentMethod: model.PaymentCreditCard, OnlineSecurity: model.ServiceNo, OnlineBackup: model.ServiceYes, DeviceProtection: model.ServiceYes, TechSupport: model.ServiceNo, StreamingTV: model.ServiceYes, StreamingMovies: model.ServiceNo, MonthlyCharges: 55.5, TotalCharges: 1387.5, Churn: model.No},
		{CustomerID: "C11", Gender: model.GenderMale, SeniorCitizen: false, Partner: model.Yes, TenureMonths: 49, Contract: model.ContractTwoYear, InternetService: model.InternetNone, PaymentMethod: model.PaymentMailedCheck, OnlineSecurity: model.ServiceNoInternet, OnlineBackup: model.ServiceNoInternet, DeviceProtection: model.ServiceNoInternet, TechSupport: model.ServiceNoInternet, StreamingTV: model.ServiceNoInternet, StreamingMovies: model.ServiceNoInternet, MonthlyCharges: 19.85, TotalCharges: 972.65, Churn: model.No},
		{CustomerID: "C12", Gender: model.GenderFemale, SeniorCitizen: false, Partner: model.No, TenureMonths: 12, Contract: model.ContractMonthToMonth, InternetService: model.InternetFiber, PaymentMethod: model.PaymentElectronicCheck, OnlineSecurity: model.ServiceNo, OnlineBackup: model.ServiceNo, DeviceProtection: model.ServiceNo, TechSupport: model.ServiceNo, StreamingTV: model.ServiceNo, StreamingMovies: model.ServiceNo, MonthlyCharges: 74.4, TotalCharges: 892.8, Churn: model.Yes},
	}
}

func TestDistribution(t *testing.T) {
	rows, err := Distribution(sampleCustomers(), DimChurn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Category != "No" || rows[0].Count != 7 {
		t.Errorf("expected No/7 first, got %s/%d", rows[0].Category, rows[0].Count)
	}
	if rows[1].Category != "Yes" || rows[1].Count != 5 {
		t.Errorf("expected Yes/5 second, got %s/%d", rows[1].Category, rows[1].Count)
	}
	if rows[1].Percentage != 41.67 {
		t.Errorf("expected churn percentage 41.67, got %v", rows[1].Percentage)
	}
}

func TestDistributionCountsAndPercentages(t *testing.T) {
	records := sampleCustomers()
	for _, dim := range []Dimension{DimChurn, DimGender, DimSenior, DimPartner, DimContract, DimInternetService, DimPaymentMethod} {
		rows, err := Distribution(records, dim)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", dim.Name, err)
		}
		var count int
		var pct float64
		for _, r := range rows {
			count += r.Count
			pct += r.Percentage
		}
		if count != len(records) {
			t.Errorf("%s: group counts sum to %d, expected %d", dim.Name, count, len(records))
		}
		if math.Abs(pct-100) > 0.05 {
			t.Errorf("%s: percentages sum to %v, expected 100", dim.Name, pct)
		}
	}
}

func TestDistributionFixedOrder(t *testing.T) {
	// Contract breakdown must follow the enumeration order even though
	// One year has the fewest rows.
	rows, err := Distribution(sampleCustomers(), DimContract)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Month-to-month", "One year", "Two year"}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, category := range want {
		if rows[i].Category != category {
			t.Errorf("row %d: expected %q, got %q", i, category, rows[i].Category)
		}
	}
}

func TestDistributionEmpty(t *testing.T) {
	if _, err := Distribution(nil, DimChurn); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestRateByGroupContractScenario(t *testing.T) {
	rows, err := RateByGroup(fourRecords(), Churned, DimContract)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Group != "Month-to-month" || first.Total != 3 || first.Churned != 2 || first.RatePercent != 66.67 {
		t.Errorf("expected Month-to-month{3,2,66.67}, got %s{%d,%d,%v}", first.Group, first.Total, first.Churned, first.RatePercent)
	}
	second := rows[1]
	if second.Group != "Two year" || second.Total != 1 || second.Churned != 0 || second.RatePercent != 0 {
		t.Errorf("expected Two year{1,0,0}, got %s{%d,%d,%v}", second.Group, second.Total, second.Churned, second.RatePercent)
	}
}

func TestRateByGroupTieBreak(t *testing.T) {
	// One year and Two year both sit at 0%; the tie resolves by group
	// value ascending.
	rows, err := RateByGroup(sampleCustomers(), Churned, DimContract)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Group != "Month-to-month" {
		t.Errorf("expected Month-to-month first, got %q", rows[0].Group)
	}
	if rows[1].Group != "One year" || rows[2].Group != "Two year" {
		t.Errorf("expected tie order One year, Two year; got %q, %q", rows[1].Group, rows[2].Group)
	}
}

func TestRateByGroupCountsSumToTotal(t *testing.T) {
	records := sampleCustomers()
	rows, err := RateByGroup(records, Churned, DimPaymentMethod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var total int
	for _, r := range rows {
		total += r.Total
	}
	if total != len(records) {
		t.Errorf("group totals sum to %d, expected %d", total, len(records))
	}
}

func TestRateByGroupEmpty(t *testing.T) {
	if _, err := RateByGroup(nil, Churned, DimContract); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestRateByGroupNoDimensions(t *testing.T) {
	if _, err := RateByGroup(fourRecords(), Churned); err == nil {
		t.Error("expected error for missing dimensions, got none")
	}
}

func TestTenureBucketBoundaries(t *testing.T) {
	tests := []struct {
		tenure int
		want   string
	}{
		{0, "0-12 months"},
		{12, "0-12 months"},
		{13, "12-24 months"},
		{24, "12-24 months"},
		{25, "24-48 months"},
		{48, "24-48 months"},
		{49, "48+ months"},
	}

	for _, tt := range tests {
		got := TenureBuckets.Of(model.Customer{TenureMonths: tt.tenure})
		if got != tt.want {
			t.Errorf("tenure %d: expected %q, got %q", tt.tenure, tt.want, got)
		}
	}
}

func TestBucketOrderAndOmission(t *testing.T) {
	records := sampleCustomers()
	rows, err := Bucket(records, Churned, TenureBuckets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantLabels := []string{"0-12 months", "12-24 months", "24-48 months", "48+ months"}
	if len(rows) != len(wantLabels) {
		t.Fatalf("expected %d buckets, got %d", len(wantLabels), len(rows))
	}
	var total int
	for i, r := range rows {
		if r.Group != wantLabels[i] {
			t.Errorf("bucket %d: expected %q, got %q", i, wantLabels[i], r.Group)
		}
		total += r.Total
	}
	if total != len(records) {
		t.Errorf("bucket totals sum to %d, expected %d", total, len(records))
	}

	// The first bucket holds the six short-tenure customers, five churned.
	if rows[0].Total != 6 || rows[0].Churned != 5 {
		t.Errorf("expected 0-12 months{6,5}, got {%d,%d}", rows[0].Total, rows[0].Churned)
	}

	// A dataset with only long tenures omits the early buckets entirely.
	long := []model.Customer{
		{CustomerID: "L1", TenureMonths: 60, Churn: model.No},
		{CustomerID: "L2", TenureMonths: 72, Churn: model.Yes},
	}
	rows, err = Bucket(long, Churned, TenureBuckets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Group != "48+ months" {
		t.Fatalf("expected a single 48+ months bucket, got %+v", rows)
	}
}

func TestMonthlyChargesBucketBoundaries(t *testing.T) {
	tests := []struct {
		charges float64
		want    string
	}{
		{20, "Low"},
		{50, "Low"},
		{50.01, "Medium"},
		{75, "Medium"},
		{99.99, "High"},
		{100, "High"},
		{130, "Premium"},
	}

	for _, tt := range tests {
		got := MonthlyChargesBuckets.Of(model.Customer{MonthlyCharges: tt.charges})
		if got != tt.want {
			t.Errorf("charges %v: expected %q, got %q", tt.charges, tt.want, got)
		}
	}
}

func TestBucketEmpty(t *testing.T) {
	if _, err := Bucket(nil, Churned, TenureBuckets); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestRevenueSummary(t *testing.T) {
	rows, err := RevenueSummary(fourRecords())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Churn != "No" || rows[1].Churn != "Yes" {
		t.Errorf("expected fixed order No, Yes; got %q, %q", rows[0].Churn, rows[1].Churn)
	}
	if rows[0].Count+rows[1].Count != 4 {
		t.Errorf("counts sum to %d, expected 4", rows[0].Count+rows[1].Count)
	}
	if rows[1].Count != 2 || rows[1].AvgMonthly != 75 || rows[1].SumMonthly != 150 {
		t.Errorf("expected churned{2, avg 75, sum 150}, got {%d, %v, %v}", rows[1].Count, rows[1].AvgMonthly, rows[1].SumMonthly)
	}
}

func TestRevenueSummaryEmpty(t *testing.T) {
	if _, err := RevenueSummary(nil); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestTopN(t *testing.T) {
	records := fourRecords()
	monthly := func(c model.Customer) float64 { return c.MonthlyCharges }

	got := TopN(records, Churned, monthly, 1)
	if len(got) != 1 || got[0].CustomerID != "D" {
		t.Fatalf("expected top churned customer D, got %+v", got)
	}

	// n beyond the filtered size returns the whole filtered set, sorted.
	got = TopN(records, Churned, monthly, 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].CustomerID != "D" || got[1].CustomerID != "A" {
		t.Errorf("expected order D, A; got %s, %s", got[0].CustomerID, got[1].CustomerID)
	}

	got = TopN(records, nil, monthly, -1)
	if len(got) != len(records) {
		t.Errorf("expected nil filter and negative n to keep all %d records, got %d", len(records), len(got))
	}

	if got := TopN(nil, Churned, monthly, 5); len(got) != 0 {
		t.Errorf("expected empty result for empty input, got %d records", len(got))
	}
}

func TestTopNStableTies(t *testing.T) {
	records := []model.Customer{
		{CustomerID: "X", MonthlyCharges: 50},
		{CustomerID: "Y", MonthlyCharges: 50},
		{CustomerID: "Z", MonthlyCharges: 50},
	}
	got := TopN(records, nil, func(c model.Customer) float64 { return c.MonthlyCharges }, 3)
	for i, id := range []string{"X", "Y", "Z"} {
		if got[i].CustomerID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].CustomerID)
		}
	}
}

func TestMultiFactorSegments(t *testing.T) {
	records := sampleCustomers()
	dims := []Dimension{DimContract, DimInternetService}

	rows, err := MultiFactorSegments(records, Churned, dims, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Single-customer segments drop below minSize 2.
	want := []string{"Month-to-month / Fiber optic", "One year / DSL", "Two year / No"}
	if len(rows) != len(want) {
		t.Fatalf("expected %d segments, got %d: %+v", len(want), len(rows), rows)
	}
	for i, group := range want {
		if rows[i].Group != group {
			t.Errorf("segment %d: expected %q, got %q", i, group, rows[i].Group)
		}
	}
	if rows[0].Total != 6 || rows[0].Churned != 5 || rows[0].RatePercent != 83.33 {
		t.Errorf("expected Month-to-month / Fiber optic{6,5,83.33}, got {%d,%d,%v}", rows[0].Total, rows[0].Churned, rows[0].RatePercent)
	}

	top, err := MultiFactorSegments(records, Churned, dims, 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != 2 {
		t.Errorf("expected top 2 segments, got %d", len(top))
	}
}

func TestMultiFactorSegmentsEmptyInput(t *testing.T) {
	rows, err := MultiFactorSegments(nil, Churned, []Dimension{DimContract}, 1, 5)
	if err != nil {
		t.Fatalf("expected no error for empty input, got %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected empty listing, got %d rows", len(rows))
	}
}

func TestKPISummary(t *testing.T) {
	rows, err := KPISummary(sampleCustomers())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []KPIRow{
		{Metric: "total_customers", Value: 12},
		{Metric: "churn_rate_percent", Value: 41.67},
		{Metric: "avg_monthly_charges", Value: 70.66},
		{Metric: "monthly_revenue_at_risk", Value: 457.25},
		{Metric: "avg_tenure_months", Value: 23.2},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, w := range want {
		if rows[i].Metric != w.Metric {
			t.Errorf("row %d: expected metric %q, got %q", i, w.Metric, rows[i].Metric)
		}
		if rows[i].Value != w.Value {
			t.Errorf("%s: expected %v, got %v", w.Metric, w.Value, rows[i].Value)
		}
	}
}

func TestKPISummaryEmpty(t *testing.T) {
	if _, err := KPISummary(nil); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset, got %v", err)
	}
}
