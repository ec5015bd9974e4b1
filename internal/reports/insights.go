package reports

import (
	"fmt"

	"github.com/hargabyte/churn/internal/model"
	"github.com/hargabyte/churn/internal/risk"
)

// addOns lists the add-on services in fixed report order.
var addOns = []struct {
	name string
	of   func(model.Customer) model.ServiceOption
}{
	{"online_security", func(c model.Customer) model.ServiceOption { return c.OnlineSecurity }},
	{"online_backup", func(c model.Customer) model.ServiceOption { return c.OnlineBackup }},
	{"device_protection", func(c model.Customer) model.ServiceOption { return c.DeviceProtection }},
	{"tech_support", func(c model.Customer) model.ServiceOption { return c.TechSupport }},
	{"streaming_tv", func(c model.Customer) model.ServiceOption { return c.StreamingTV }},
	{"streaming_movies", func(c model.Customer) model.ServiceOption { return c.StreamingMovies }},
}

// ServiceAdoption reports each add-on's take rate among churned and among
// retained customers, one row per service in fixed order. A churn group
// with no members reports zero adoption.
func ServiceAdoption(records []model.Customer) ([]ServiceAdoptionRow, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	var churnedTotal, retainedTotal int
	for _, c := range records {
		if c.Churned() {
			churnedTotal++
		} else {
			retainedTotal++
		}
	}

	rows := make([]ServiceAdoptionRow, 0, len(addOns))
	for _, svc := range addOns {
		var churnedYes, retainedYes int
		for _, c := range records {
			if !svc.of(c).Subscribed() {
				continue
			}
			if c.Churned() {
				churnedYes++
			} else {
				retainedYes++
			}
		}
		row := ServiceAdoptionRow{Service: svc.name}
		if churnedTotal > 0 {
			row.ChurnedPct = round2(100 * float64(churnedYes) / float64(churnedTotal))
		}
		if retainedTotal > 0 {
			row.RetainedPct = round2(100 * float64(retainedYes) / float64(retainedTotal))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// CLV estimates customer lifetime value per contract segment as average
// tenure times average monthly charge. Segments with no customers are
// omitted; the remaining rows follow the contract enumeration order.
func CLV(records []model.Customer) ([]CLVRow, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	rows := make([]CLVRow, 0, len(model.ContractValues))
	for _, contract := range model.ContractValues {
		var count, sumTenure int
		var sumMonthly float64
		for _, c := range records {
			if c.Contract != contract {
				continue
			}
			count++
			sumTenure += c.TenureMonths
			sumMonthly += c.MonthlyCharges
		}
		if count == 0 {
			continue
		}
		avgTenure := float64(sumTenure) / float64(count)
		avgMonthly := sumMonthly / float64(count)
		rows = append(rows, CLVRow{
			Contract:        string(contract),
			Customers:       count,
			AvgTenureMonths: round1(avgTenure),
			AvgMonthly:      round2(avgMonthly),
			CLV:             round2(avgTenure * avgMonthly),
		})
	}
	return rows, nil
}

// RevenueImpact projects the revenue consequences of the current churn:
// the monthly and annual loss from churned customers and the annual
// savings of retaining five percent of them. Rows appear in fixed order.
func RevenueImpact(records []model.Customer) ([]KPIRow, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	var churned int
	var monthlyLoss float64
	for _, c := range records {
		if c.Churned() {
			churned++
			monthlyLoss += c.MonthlyCharges
		}
	}

	var avgMonthly float64
	if churned > 0 {
		avgMonthly = monthlyLoss / float64(churned)
	}
	annualLoss := monthlyLoss * 12

	return []KPIRow{
		{Metric: "churned_customers", Value: float64(churned)},
		{Metric: "avg_monthly_churned", Value: round2(avgMonthly)},
		{Metric: "monthly_revenue_loss", Value: round2(monthlyLoss)},
		{Metric: "annual_revenue_loss", Value: round2(annualLoss)},
		{Metric: "savings_5pct_retention", Value: round2(annualLoss * 0.05)},
	}, nil
}

// Overview builds the composite headline report. Driver rows cover the
// documented risk indicator cohorts in weight order; a cohort with no
// members is omitted.
func Overview(records []model.Customer, w risk.Weights) (*OverviewReport, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	if w == (risk.Weights{}) {
		w = risk.DefaultWeights()
	}

	kpis, err := KPISummary(records)
	if err != nil {
		return nil, err
	}
	churn, err := Distribution(records, DimChurn)
	if err != nil {
		return nil, err
	}

	cohorts := []struct {
		label string
		in    func(model.Customer) bool
	}{
		{"Month-to-month contract", func(c model.Customer) bool { return c.Contract == model.ContractMonthToMonth }},
		{"Fiber optic internet", func(c model.Customer) bool { return c.InternetService == model.InternetFiber }},
		{"Electronic check payment", func(c model.Customer) bool { return c.PaymentMethod == model.PaymentElectronicCheck }},
		{fmt.Sprintf("Tenure <= %d months", w.NewTenureMaxMonths), func(c model.Customer) bool { return c.TenureMonths <= w.NewTenureMaxMonths }},
		{"Senior citizens", func(c model.Customer) bool { return c.SeniorCitizen }},
	}

	drivers := make([]RateRow, 0, len(cohorts))
	for _, cohort := range cohorts {
		var total, churned int
		for _, c := range records {
			if !cohort.in(c) {
				continue
			}
			total++
			if c.Churned() {
				churned++
			}
		}
		if total == 0 {
			continue
		}
		drivers = append(drivers, RateRow{
			Group:       cohort.label,
			Total:       total,
			Churned:     churned,
			RatePercent: round2(100 * float64(churned) / float64(total)),
		})
	}

	return &OverviewReport{KPIs: kpis, Churn: churn, Drivers: drivers}, nil
}
