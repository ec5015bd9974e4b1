package cmd

import (
	"testing"

	"github.com/hargabyte/churn/internal/reports"
)

func TestKPIValue(t *testing.T) {
	rows := []reports.KPIRow{
		{Metric: "total_customers", Value: 7043},
		{Metric: "churn_rate_percent", Value: 26.54},
	}

	if got := kpiValue(rows, "churn_rate_percent"); got != 26.54 {
		t.Errorf("kpiValue(churn_rate_percent) = %v, want 26.54", got)
	}
	if got := kpiValue(rows, "total_customers"); got != 7043 {
		t.Errorf("kpiValue(total_customers) = %v, want 7043", got)
	}
	if got := kpiValue(rows, "missing_metric"); got != 0 {
		t.Errorf("kpiValue(missing_metric) = %v, want 0", got)
	}
}
