package reports

import (
	"sort"

	"github.com/hargabyte/churn/internal/model"
	"github.com/hargabyte/churn/internal/risk"
)

// Risk scores every customer and returns the ranked profile. Customers
// are sorted by score descending, ties by customer ID ascending; minScore
// filters the listing and n caps it (zero or negative n means no cap).
// The tier breakdown always covers the whole dataset regardless of the
// listing filters. Zero weights fall back to the defaults.
func Risk(records []model.Customer, w risk.Weights, minScore, n int) (*RiskProfile, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	if w == (risk.Weights{}) {
		w = risk.DefaultWeights()
	}

	tierCounts := make(map[risk.Tier]int, len(risk.Tiers))
	listed := make([]RiskRow, 0, len(records))
	for _, c := range records {
		score := risk.ScoreWithWeights(c, w)
		tier := risk.Classify(score)
		tierCounts[tier]++
		if score < minScore {
			continue
		}
		listed = append(listed, RiskRow{
			CustomerID:      c.CustomerID,
			Score:           score,
			Tier:            string(tier),
			Contract:        string(c.Contract),
			InternetService: string(c.InternetService),
			PaymentMethod:   string(c.PaymentMethod),
			TenureMonths:    c.TenureMonths,
			MonthlyCharges:  c.MonthlyCharges,
			Churn:           string(c.Churn),
		})
	}

	sort.Slice(listed, func(i, j int) bool {
		if listed[i].Score != listed[j].Score {
			return listed[i].Score > listed[j].Score
		}
		return listed[i].CustomerID < listed[j].CustomerID
	})
	if n > 0 && n < len(listed) {
		listed = listed[:n]
	}

	total := float64(len(records))
	tiers := make([]DistributionRow, 0, len(risk.Tiers))
	for _, tier := range risk.Tiers {
		count := tierCounts[tier]
		tiers = append(tiers, DistributionRow{
			Category:   string(tier),
			Count:      count,
			Percentage: round2(100 * float64(count) / total),
		})
	}

	return &RiskProfile{Tiers: tiers, Customers: listed}, nil
}
