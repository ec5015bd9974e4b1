// Package reports implements the report generator: a fixed catalog of
// aggregate views over an in-memory customer dataset. Every operation is a
// pure function of its input; invoking a report twice on the same records
// produces identical output.
//
// Empty-dataset policy: operations that compute a rate, percentage, or
// average over the whole input (Distribution, RateByGroup, Bucket,
// RevenueSummary, KPISummary, Compare, Risk) return ErrEmptyDataset on zero
// rows. Operations that merely filter or limit (TopN, MultiFactorSegments)
// return an empty result instead.
//
// Rounding policy: half up via math.Round, two decimals for currency and
// percentages, one decimal for month averages, four decimals for test
// statistics. Derived values are computed from unrounded intermediates and
// rounded once on output.
package reports

import (
	"errors"
	"math"

	"github.com/hargabyte/churn/internal/risk"
)

// ErrEmptyDataset indicates a rate, percentage, or average was requested
// over zero rows.
var ErrEmptyDataset = errors.New("dataset is empty")

// Options carries the knobs a catalog report may honor. The zero value
// keeps every group and row and scores with the default weights.
type Options struct {
	// MinSegmentSize drops multi-factor segments with fewer rows.
	MinSegmentSize int

	// Top caps ranked listings; zero or negative returns everything.
	Top int

	// Weights are the risk scoring weights used by risk-flavored reports.
	// The zero value means the documented defaults.
	Weights risk.Weights
}

// weights returns the configured scoring weights, falling back to the
// defaults when unset.
func (o Options) weights() risk.Weights {
	if o.Weights == (risk.Weights{}) {
		return risk.DefaultWeights()
	}
	return o.Weights
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
