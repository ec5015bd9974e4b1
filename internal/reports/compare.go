package reports

import (
	"fmt"
	"math"

	"github.com/hargabyte/churn/internal/model"
	"github.com/hargabyte/churn/internal/stats"
)

// Compare runs the three fixed statistical comparisons: Welch's t for
// monthly charges between churned and retained customers, chi-square over
// the contract/churn table, and Pearson correlations of tenure and monthly
// charges against the churn flag. Each side of the t-test needs at least
// two rows; stats.ErrInsufficientData surfaces otherwise.
func Compare(records []model.Customer) ([]ComparisonRow, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	var churnedCharges, retainedCharges []float64
	tenure := make([]float64, 0, len(records))
	charges := make([]float64, 0, len(records))
	churnFlag := make([]float64, 0, len(records))
	for _, c := range records {
		tenure = append(tenure, float64(c.TenureMonths))
		charges = append(charges, c.MonthlyCharges)
		if c.Churned() {
			churnFlag = append(churnFlag, 1)
			churnedCharges = append(churnedCharges, c.MonthlyCharges)
		} else {
			churnFlag = append(churnFlag, 0)
			retainedCharges = append(retainedCharges, c.MonthlyCharges)
		}
	}

	tStat, err := stats.WelchT(churnedCharges, retainedCharges)
	if err != nil {
		return nil, fmt.Errorf("monthly charges t-test: %w", err)
	}

	table := make([][]float64, len(model.ContractValues))
	for i, contract := range model.ContractValues {
		table[i] = make([]float64, len(model.YesNoValues))
		for j, label := range model.YesNoValues {
			var n float64
			for _, c := range records {
				if c.Contract == contract && c.Churn == label {
					n++
				}
			}
			table[i][j] = n
		}
	}
	chi2, err := stats.ChiSquare(table)
	if err != nil {
		return nil, fmt.Errorf("contract chi-square: %w", err)
	}

	rTenure, err := stats.Pearson(tenure, churnFlag)
	if err != nil {
		return nil, fmt.Errorf("tenure correlation: %w", err)
	}
	rCharges, err := stats.Pearson(charges, churnFlag)
	if err != nil {
		return nil, fmt.Errorf("monthly charges correlation: %w", err)
	}
	rCrit := stats.CriticalR(len(records))

	return []ComparisonRow{
		{
			Test:          "welch_t_monthly_charges",
			Statistic:     round4(tStat),
			CriticalValue: stats.ZCritical,
			Significant:   math.Abs(tStat) >= stats.ZCritical,
		},
		{
			Test:          "chi_square_contract_churn",
			Statistic:     round4(chi2),
			CriticalValue: stats.ChiSquareCritical2DF,
			Significant:   chi2 >= stats.ChiSquareCritical2DF,
		},
		{
			Test:          "pearson_tenure_churn",
			Statistic:     round4(rTenure),
			CriticalValue: round4(rCrit),
			Significant:   math.Abs(rTenure) >= rCrit,
		},
		{
			Test:          "pearson_monthly_charges_churn",
			Statistic:     round4(rCharges),
			CriticalValue: round4(rCrit),
			Significant:   math.Abs(rCharges) >= rCrit,
		},
	}, nil
}
