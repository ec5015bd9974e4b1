// Package stats implements the fixed statistical comparisons behind the
// compare report: Welch's t statistic for monthly charges, the chi-square
// statistic for the contract/churn table, and Pearson correlation
// coefficients. It is deliberately not a general statistics library;
// significance is judged against fixed critical values at the 0.05 level
// rather than computed p-values.
package stats

import (
	"errors"
	"math"
)

// ErrInsufficientData indicates a comparison was asked to run on fewer
// rows than the computation needs.
var ErrInsufficientData = errors.New("insufficient data for statistical comparison")

// Critical values at the 0.05 significance level.
const (
	// ZCritical is the two-sided critical value under the normal
	// approximation, used for t statistics and correlations.
	ZCritical = 1.96

	// ChiSquareCritical2DF is the chi-square critical value at two
	// degrees of freedom, matching the 3x2 contract/churn table.
	ChiSquareCritical2DF = 5.991
)

// WelchT returns Welch's t statistic comparing the means of two samples.
// The statistic does not assume equal variances. Each sample needs at
// least two values, and the combined standard error must be nonzero.
func WelchT(x, y []float64) (float64, error) {
	if len(x) < 2 || len(y) < 2 {
		return 0, ErrInsufficientData
	}
	mx, vx := meanVariance(x)
	my, vy := meanVariance(y)
	se := math.Sqrt(vx/float64(len(x)) + vy/float64(len(y)))
	if se == 0 {
		return 0, ErrInsufficientData
	}
	return (mx - my) / se, nil
}

// ChiSquare returns the chi-square statistic for a contingency table of
// observed counts. Cells whose expected count is zero (an empty row or
// column) contribute nothing. The table must contain at least one
// observation.
func ChiSquare(observed [][]float64) (float64, error) {
	if len(observed) == 0 {
		return 0, ErrInsufficientData
	}
	cols := len(observed[0])
	rowTotals := make([]float64, len(observed))
	colTotals := make([]float64, cols)
	var grand float64
	for i, row := range observed {
		if len(row) != cols {
			return 0, errors.New("chi-square: ragged contingency table")
		}
		for j, o := range row {
			rowTotals[i] += o
			colTotals[j] += o
			grand += o
		}
	}
	if grand == 0 {
		return 0, ErrInsufficientData
	}

	var chi2 float64
	for i, row := range observed {
		for j, o := range row {
			expected := rowTotals[i] * colTotals[j] / grand
			if expected == 0 {
				continue
			}
			diff := o - expected
			chi2 += diff * diff / expected
		}
	}
	return chi2, nil
}

// Pearson returns the Pearson correlation coefficient between two
// equal-length samples. Both samples need at least two values and nonzero
// variance.
func Pearson(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, errors.New("pearson: sample length mismatch")
	}
	if len(x) < 2 {
		return 0, ErrInsufficientData
	}

	mx := mean(x)
	my := mean(y)
	var sxy, sxx, syy float64
	for i := range x {
		dx := x[i] - mx
		dy := y[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0, ErrInsufficientData
	}
	return sxy / math.Sqrt(sxx*syy), nil
}

// CriticalR returns the smallest absolute correlation that is significant
// at the 0.05 level for a sample of n, using the normal approximation
// r = z / sqrt(n - 2 + z^2). Samples too small to test return 1, so no
// correlation registers as significant.
func CriticalR(n int) float64 {
	if n <= 2 {
		return 1
	}
	return ZCritical / math.Sqrt(float64(n-2)+ZCritical*ZCritical)
}

func mean(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// meanVariance returns the mean and the sample variance (n-1 denominator).
func meanVariance(x []float64) (float64, float64) {
	m := mean(x)
	var ss float64
	for _, v := range x {
		d := v - m
		ss += d * d
	}
	return m, ss / float64(len(x)-1)
}
