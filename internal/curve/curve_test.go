package curve_test

import (
	"benritz/cashflows/internal/curve"
	"errors"
	"math"
	"testing"
	"time"
)

func newCurve(t *testing.T, points map[float64]float64) *curve.Curve {
	t.Helper()

	c := curve.NewCurve("test", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))
	for tenor, rate := range points {
		if err := c.AddPoint(tenor, rate); err != nil {
			t.Fatalf("AddPoint(%v, %v): %v", tenor, rate, err)
		}
	}
	return c
}

func TestCurve_AddPointSorts(t *testing.T) {
	c := newCurve(t, map[float64]float64{5: 0.03, 1: 0.01, 0.5: 0.005, 2: 0.015})

	want := []float64{0.5, 1, 2, 5}
	for i, tenor := range want {
		if c.Tenors[i] != tenor {
			t.Fatalf("Tenors = %v, want %v", c.Tenors, want)
		}
	}
	if c.Rates[3] != 0.03 {
		t.Errorf("rate at 5Y = %v, want 0.03", c.Rates[3])
	}

	if err := c.AddPoint(2, 0.02); !errors.Is(err, curve.ErrDuplicateTenor) {
		t.Errorf("AddPoint duplicate error = %v, want %v", err, curve.ErrDuplicateTenor)
	}
}

func TestCurve_Annual(t *testing.T) {
	c := newCurve(t, map[float64]float64{0.5: 0.008, 1: 0.010, 2: 0.015, 3: 0.020})

	rates, err := c.Annual(3)
	if err != nil {
		t.Fatalf("Annual(3) error: %v", err)
	}

	want := []float64{0.010, 0.015, 0.020}
	for i := range want {
		if rates[i] != want[i] {
			t.Errorf("Annual(3) = %v, want %v", rates, want)
			break
		}
	}

	if _, err := c.Annual(4); !errors.Is(err, curve.ErrMissingTenor) {
		t.Errorf("Annual(4) error = %v, want %v", err, curve.ErrMissingTenor)
	}
}

func TestCurve_At(t *testing.T) {
	c := newCurve(t, map[float64]float64{1: 0.010, 2: 0.020, 4: 0.030})

	rates, err := c.At([]float64{0.25, 1, 1.5, 3, 4, 10})
	if err != nil {
		t.Fatalf("At() error: %v", err)
	}

	want := []float64{0.010, 0.010, 0.015, 0.025, 0.030, 0.030}
	for i := range want {
		if math.Abs(rates[i]-want[i]) > 1e-12 {
			t.Errorf("At()[%d] = %v, want %v", i, rates[i], want[i])
		}
	}

	empty := curve.NewCurve("test", time.Now())
	if _, err := empty.At([]float64{1}); !errors.Is(err, curve.ErrEmptyCurve) {
		t.Errorf("At() on empty curve error = %v, want %v", err, curve.ErrEmptyCurve)
	}
}

func TestParseTenor(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		err  bool
	}{
		{"1Y", 1, false},
		{"10y", 10, false},
		{"6M", 0.5, false},
		{"18M", 1.5, false},
		{"1.5", 1.5, false},
		{" 2 Y ", 2, false},
		{"", 0, true},
		{"Tenor", 0, true},
		{"-1Y", 0, true},
	}

	for _, tt := range tests {
		got, err := curve.ParseTenor(tt.in)
		if tt.err {
			if !errors.Is(err, curve.ErrInvalidTenor) {
				t.Errorf("ParseTenor(%q) error = %v, want %v", tt.in, err, curve.ErrInvalidTenor)
			}
			continue
		}
		if err != nil || math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("ParseTenor(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"3.25%", 0.0325},
		{"3.25", 0.0325},
		{" -0.10 % ", -0.001},
		{"0", 0},
	}

	for _, tt := range tests {
		got, err := curve.ParsePercent(tt.in)
		if err != nil || math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("ParsePercent(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}

	if _, err := curve.ParsePercent("n/a"); !errors.Is(err, curve.ErrInvalidRate) {
		t.Errorf("ParsePercent(n/a) error = %v, want %v", err, curve.ErrInvalidRate)
	}
}

func TestCurve_At_NonFiniteTime(t *testing.T) {
	c := newCurve(t, map[float64]float64{1: 0.010, 2: 0.020})

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := c.At([]float64{1, bad}); !errors.Is(err, curve.ErrInvalidTenor) {
			t.Errorf("At(%v) error = %v, want %v", bad, err, curve.ErrInvalidTenor)
		}
	}
}
