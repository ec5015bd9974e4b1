package reports

import (
	"errors"
	"sort"
	"strings"

	"github.com/hargabyte/churn/internal/model"
)

// Distribution counts records per category of dim and attaches each
// category's share of the total. Rows follow the dimension's enumeration
// order and cover the full domain, so categories with no rows appear with
// a zero count.
func Distribution(records []model.Customer, dim Dimension) ([]DistributionRow, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	counts := make(map[string]int, len(dim.Values))
	for _, c := range records {
		counts[dim.Of(c)]++
	}

	total := float64(len(records))
	rows := make([]DistributionRow, 0, len(dim.Values))
	for _, v := range dim.Values {
		n := counts[v]
		rows = append(rows, DistributionRow{
			Category:   v,
			Count:      n,
			Percentage: round2(100 * float64(n) / total),
		})
	}
	return rows, nil
}

// RateByGroup computes the positive rate inside each joint group of the
// given dimensions. Rows are sorted by rate descending, ties broken by
// group value ascending for determinism.
func RateByGroup(records []model.Customer, positive func(model.Customer) bool, dims ...Dimension) ([]RateRow, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	if len(dims) == 0 {
		return nil, errors.New("rate by group: no grouping dimensions")
	}

	groups := aggregateGroups(records, positive, func(c model.Customer) string {
		return groupKey(c, dims)
	})

	rows := make([]RateRow, 0, len(groups))
	for key, a := range groups {
		rows = append(rows, rateRow(key, a))
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].RatePercent != rows[j].RatePercent {
			return rows[i].RatePercent > rows[j].RatePercent
		}
		return rows[i].Group < rows[j].Group
	})
	return rows, nil
}

// Bucket computes the positive rate inside each bucket of b. Output rows
// follow the bucketer's enumeration order, never a sort of the labels;
// buckets with no rows are omitted.
func Bucket(records []model.Customer, positive func(model.Customer) bool, b Dimension) ([]RateRow, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	groups := aggregateGroups(records, positive, b.Of)

	rows := make([]RateRow, 0, len(b.Values))
	for _, label := range b.Values {
		a, ok := groups[label]
		if !ok {
			continue
		}
		rows = append(rows, rateRow(label, a))
	}
	return rows, nil
}

// RevenueSummary aggregates billing by churn label. One row per label in
// fixed order, retained first; a label with no rows keeps zero sums and
// averages.
func RevenueSummary(records []model.Customer) ([]RevenueRow, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	rows := make([]RevenueRow, 0, len(model.YesNoValues))
	for _, label := range model.YesNoValues {
		var count int
		var sumMonthly, sumTotal float64
		for _, c := range records {
			if c.Churn != label {
				continue
			}
			count++
			sumMonthly += c.MonthlyCharges
			sumTotal += c.TotalCharges
		}
		row := RevenueRow{
			Churn:      string(label),
			Count:      count,
			SumMonthly: round2(sumMonthly),
			SumTotal:   round2(sumTotal),
		}
		if count > 0 {
			row.AvgMonthly = round2(sumMonthly / float64(count))
			row.AvgTotal = round2(sumTotal / float64(count))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// TopN filters records, sorts them descending by key, and returns the
// first n. The sort is stable, so ties keep input order. An n beyond the
// filtered size returns the whole set; a negative n means no limit. A nil
// filter keeps every record.
func TopN(records []model.Customer, filter func(model.Customer) bool, key func(model.Customer) float64, n int) []model.Customer {
	out := make([]model.Customer, 0, len(records))
	for _, c := range records {
		if filter == nil || filter(c) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return key(out[i]) > key(out[j])
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// MultiFactorSegments groups by several dimensions jointly, drops groups
// with fewer than minSize rows, sorts by rate descending (ties by group
// value ascending), and returns the top n. A zero or negative n keeps all
// surviving groups. Empty input yields an empty listing, not an error.
func MultiFactorSegments(records []model.Customer, positive func(model.Customer) bool, dims []Dimension, minSize, n int) ([]RateRow, error) {
	if len(records) == 0 {
		return nil, nil
	}

	rows, err := RateByGroup(records, positive, dims...)
	if err != nil {
		return nil, err
	}

	kept := make([]RateRow, 0, len(rows))
	for _, r := range rows {
		if r.Total >= minSize {
			kept = append(kept, r)
		}
	}
	if n > 0 && n < len(kept) {
		kept = kept[:n]
	}
	return kept, nil
}

// KPISummary returns the five headline metrics in fixed order:
// total_customers, churn_rate_percent, avg_monthly_charges,
// monthly_revenue_at_risk, avg_tenure_months.
func KPISummary(records []model.Customer) ([]KPIRow, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	var churned, sumTenure int
	var sumMonthly, atRisk float64
	for _, c := range records {
		sumMonthly += c.MonthlyCharges
		sumTenure += c.TenureMonths
		if c.Churned() {
			churned++
			atRisk += c.MonthlyCharges
		}
	}

	n := float64(len(records))
	return []KPIRow{
		{Metric: "total_customers", Value: n},
		{Metric: "churn_rate_percent", Value: round2(100 * float64(churned) / n)},
		{Metric: "avg_monthly_charges", Value: round2(sumMonthly / n)},
		{Metric: "monthly_revenue_at_risk", Value: round2(atRisk)},
		{Metric: "avg_tenure_months", Value: round1(float64(sumTenure) / n)},
	}, nil
}

type groupAgg struct {
	total    int
	positive int
}

func aggregateGroups(records []model.Customer, positive func(model.Customer) bool, keyOf func(model.Customer) string) map[string]*groupAgg {
	groups := make(map[string]*groupAgg)
	for _, c := range records {
		key := keyOf(c)
		a := groups[key]
		if a == nil {
			a = &groupAgg{}
			groups[key] = a
		}
		a.total++
		if positive(c) {
			a.positive++
		}
	}
	return groups
}

func groupKey(c model.Customer, dims []Dimension) string {
	if len(dims) == 1 {
		return dims[0].Of(c)
	}
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = d.Of(c)
	}
	return strings.Join(parts, " / ")
}

func rateRow(group string, a *groupAgg) RateRow {
	return RateRow{
		Group:       group,
		Total:       a.total,
		Churned:     a.positive,
		RatePercent: round2(100 * float64(a.positive) / float64(a.total)),
	}
}
