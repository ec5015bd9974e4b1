package stats

import (
	"errors"
	"math"
	"testing"
)

func TestWelchT(t *testing.T) {
	x := []float64{10, 12, 14}
	y := []float64{20, 22, 24, 26}

	got, err := WelchT(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// mean(x)=12 var(x)=4, mean(y)=23 var(y)=20/3, se=sqrt(3)
	want := -11 / math.Sqrt(3)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected t=%v, got %v", want, got)
	}

	// Swapping the samples flips the sign.
	flipped, err := WelchT(y, x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(flipped+got) > 1e-9 {
		t.Errorf("expected symmetric statistic, got %v and %v", got, flipped)
	}
}

func TestWelchTInsufficientData(t *testing.T) {
	if _, err := WelchT([]float64{1}, []float64{2, 3}); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData for a one-value sample, got %v", err)
	}
	if _, err := WelchT([]float64{5, 5}, []float64{3, 3}); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData for zero variance, got %v", err)
	}
}

func TestChiSquare(t *testing.T) {
	got, err := ChiSquare([][]float64{
		{10, 20},
		{20, 10},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// All expected counts are 15, so chi2 = 4 * 25/15.
	want := 100.0 / 15.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected chi2=%v, got %v", want, got)
	}
}

func TestChiSquareIndependent(t *testing.T) {
	got, err := ChiSquare([][]float64{
		{5, 5},
		{5, 5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("expected chi2=0 for a uniform table, got %v", got)
	}
}

func TestChiSquareEmptyRowContributesNothing(t *testing.T) {
	with, err := ChiSquare([][]float64{
		{10, 20},
		{0, 0},
		{20, 10},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	without, err := ChiSquare([][]float64{
		{10, 20},
		{20, 10},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(with-without) > 1e-9 {
		t.Errorf("expected empty row to contribute nothing: %v vs %v", with, without)
	}
}

func TestChiSquareInsufficientData(t *testing.T) {
	if _, err := ChiSquare(nil); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData for empty table, got %v", err)
	}
	if _, err := ChiSquare([][]float64{{0, 0}, {0, 0}}); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData for all-zero table, got %v", err)
	}
}

func TestPearson(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		y    []float64
		want float64
	}{
		{"perfect positive", []float64{1, 2, 3, 4}, []float64{2, 4, 6, 8}, 1},
		{"perfect negative", []float64{1, 2, 3, 4}, []float64{-2, -4, -6, -8}, -1},
		{"partial", []float64{1, 2, 3}, []float64{1, 3, 2}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pearson(tt.x, tt.y)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected r=%v, got %v", tt.want, got)
			}
		})
	}
}

func TestPearsonInsufficientData(t *testing.T) {
	if _, err := Pearson([]float64{1}, []float64{2}); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData for a one-value sample, got %v", err)
	}
	if _, err := Pearson([]float64{3, 3, 3}, []float64{1, 2, 3}); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData for zero variance, got %v", err)
	}
}

func TestPearsonLengthMismatch(t *testing.T) {
	if _, err := Pearson([]float64{1, 2}, []float64{1, 2, 3}); err == nil {
		t.Error("expected error for mismatched sample lengths, got none")
	}
}

func TestCriticalR(t *testing.T) {
	if got := CriticalR(2); got != 1 {
		t.Errorf("expected CriticalR(2)=1, got %v", got)
	}
	small := CriticalR(10)
	large := CriticalR(100)
	if large >= small {
		t.Errorf("expected the threshold to shrink with sample size: n=10 gives %v, n=100 gives %v", small, large)
	}
	if large <= 0 || large >= 1 {
		t.Errorf("expected threshold in (0,1), got %v", large)
	}
}
