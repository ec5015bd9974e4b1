package cmd

import (
	"testing"
)

func TestNormalizeToolName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"report", "churn_report"},
		{"churn_report", "churn_report"},
		{"risk", "churn_risk"},
		{"churn_risk", "churn_risk"},
		{"kpi", "churn_kpi"},
		{"segments", "churn_segments"},
		{"nonexistent", "churn_nonexistent"},
	}

	for _, tt := range tests {
		got := normalizeToolName(tt.input)
		if got != tt.want {
			t.Errorf("normalizeToolName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCallCmdRequiresToolOrFlag(t *testing.T) {
	// runCall with no args and no flags should error
	err := runCall(callCmd, []string{})
	if err == nil {
		t.Error("runCall with no args should return error")
	}
}
