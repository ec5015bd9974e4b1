// Package risk computes the heuristic churn risk score for a customer.
// The score is a documented weighted sum of churn-correlated attributes,
// not a fitted model: the weights are fixed constants that configuration
// may tune but nothing in this repository learns.
package risk

import "github.com/hargabyte/churn/internal/model"

// Weights contains the configurable scoring weights. Each weight is the
// number of points added when its indicator holds. NewTenureMaxMonths is
// the tenure cutoff for the new-customer indicator, not a weight.
type Weights struct {
	MonthToMonth       int `yaml:"month_to_month" json:"month_to_month"`
	FiberOptic         int `yaml:"fiber_optic" json:"fiber_optic"`
	ElectronicCheck    int `yaml:"electronic_check" json:"electronic_check"`
	NewTenure          int `yaml:"new_tenure" json:"new_tenure"`
	Senior             int `yaml:"senior" json:"senior"`
	NewTenureMaxMonths int `yaml:"new_tenure_max_months" json:"new_tenure_max_months"`
}

// DefaultWeights returns the documented scoring weights.
func DefaultWeights() Weights {
	return Weights{
		MonthToMonth:       30,
		FiberOptic:         20,
		ElectronicCheck:    20,
		NewTenure:          20,
		Senior:             10,
		NewTenureMaxMonths: 12,
	}
}

// Sum returns the total points available across all indicators.
func (w Weights) Sum() int {
	return w.MonthToMonth + w.FiberOptic + w.ElectronicCheck + w.NewTenure + w.Senior
}

// Score returns the churn risk score for a customer using the default
// weights. Indicators:
//   - Month-to-month contract: +30
//   - Fiber optic internet: +20
//   - Electronic check payment: +20
//   - Tenure <= 12 months: +20
//   - Senior citizen: +10
//
// The score is monotone in each indicator and tops out at 100.
func Score(c model.Customer) int {
	return ScoreWithWeights(c, DefaultWeights())
}

// ScoreWithWeights returns the churn risk score using custom weights.
// The result stays within [0,100] as long as the weights sum to at most
// 100, which config validation enforces.
func ScoreWithWeights(c model.Customer, w Weights) int {
	score := 0
	if c.Contract == model.ContractMonthToMonth {
		score += w.MonthToMonth
	}
	if c.InternetService == model.InternetFiber {
		score += w.FiberOptic
	}
	if c.PaymentMethod == model.PaymentElectronicCheck {
		score += w.ElectronicCheck
	}
	if c.TenureMonths <= w.NewTenureMaxMonths {
		score += w.NewTenure
	}
	if c.SeniorCitizen {
		score += w.Senior
	}
	return score
}

// Tier represents the risk classification of a scored customer.
type Tier string

const (
	// Critical risk: score >= 80
	Critical Tier = "critical"
	// High risk: score >= 60
	High Tier = "high"
	// Medium risk: score >= 40
	Medium Tier = "medium"
	// Low risk: score < 40
	Low Tier = "low"
)

// Tiers is the fixed enumeration order for tier breakdowns, most severe
// first.
var Tiers = []Tier{Critical, High, Medium, Low}

// Classify returns the risk tier for a score.
// Thresholds:
//   - Critical: score >= 80
//   - High: score >= 60
//   - Medium: score >= 40
//   - Low: score < 40
func Classify(score int) Tier {
	switch {
	case score >= 80:
		return Critical
	case score >= 60:
		return High
	case score >= 40:
		return Medium
	default:
		return Low
	}
}

// String returns the string representation of the tier.
func (t Tier) String() string {
	return string(t)
}
