package cmd

import (
	"testing"
	"time"
)

func TestParseTimeout(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"30m", 30 * time.Minute, false},
		{"1h30m", 90 * time.Minute, false},
		{"bogus", 0, true},
	}

	for _, tt := range tests {
		got, err := parseTimeout(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseTimeout(%q) should error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseTimeout(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseTimeout(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
