package types_test

import (
	"benritz/cashflows/internal/pricing"
	"benritz/cashflows/internal/types"
	"errors"
	"math"
	"testing"
	"time"
)

var valuationDate = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func TestCompleteBond_FlatYield(t *testing.T) {
	b := types.NewBond("test", valuationDate)
	b.FaceValue = 2_000_000
	b.CouponRate = 0.04
	b.MaturityYears = 10
	b.Yield = 0.03

	if err := types.CompleteBond(b); err != nil {
		t.Fatalf("CompleteBond() error: %v", err)
	}

	if math.Abs(b.Price-2_170_604.0567) > 1e-3 {
		t.Errorf("Price = %.4f, want 2170604.0567", b.Price)
	}
	if math.Abs(b.Duration-8.508690304) > 1e-6 {
		t.Errorf("Duration = %.9f, want 8.508690304", b.Duration)
	}
	if math.Abs(b.ModifiedDuration-b.Duration/1.03) > 1e-12 {
		t.Errorf("ModifiedDuration = %v, want %v", b.ModifiedDuration, b.Duration/1.03)
	}
}

func TestCompleteBond_SpotCurve(t *testing.T) {
	curve := []float64{0.010, 0.015, 0.020, 0.025, 0.030}

	b := types.NewBond("test", valuationDate)
	b.Model = types.SpotCurve
	b.FaceValue = 2_000_000
	b.CouponRate = 0.04
	b.MaturityYears = 5
	b.SpotRates = curve

	if err := types.CompleteBond(b); err != nil {
		t.Fatalf("CompleteBond() error: %v", err)
	}

	want, _ := pricing.TermStructurePrice(2_000_000, 0.04, 5, curve)
	if b.Price != want {
		t.Errorf("Price = %v, want %v", b.Price, want)
	}
	if b.Duration != 0 {
		t.Errorf("Duration = %v, want unset for spot model", b.Duration)
	}
}

func TestCompleteBond_Irregular(t *testing.T) {
	b := types.NewBond("test", valuationDate)
	b.Model = types.Irregular
	b.FaceValue = 2_000_000
	b.CouponRate = 0.04
	b.Times = []float64{1.0, 1.5, 3.0, 4.0, 7.0}
	b.SpotRates = []float64{0.010, 0.015, 0.020, 0.025, 0.030}

	if err := types.CompleteBond(b); err != nil {
		t.Fatalf("CompleteBond() error: %v", err)
	}
	if math.Abs(b.Price-1_996_533.27191) > 1e-3 {
		t.Errorf("Price = %.5f, want 1996533.27191", b.Price)
	}
}

func TestCompleteBond_Errors(t *testing.T) {
	tests := []struct {
		name string
		edit func(b *types.Bond)
		want error
	}{
		{"face value", func(b *types.Bond) { b.FaceValue = 0 }, types.ErrInvalidFaceValue},
		{"coupon rate", func(b *types.Bond) { b.CouponRate = math.NaN() }, types.ErrInvalidCouponRate},
		{"maturity", func(b *types.Bond) { b.MaturityYears = 0 }, types.ErrInvalidMaturity},
		{"payments per year", func(b *types.Bond) { b.PaymentsPerYear = -2 }, types.ErrInvalidPaymentsPerYear},
		{"model", func(b *types.Bond) { b.Model = "binomial" }, types.ErrUnsupportedModel},
		{"total loss yield", func(b *types.Bond) { b.Yield = -1 }, types.ErrUndefinedPrice},
		{"fractional spot maturity", func(b *types.Bond) {
			b.Model = types.SpotCurve
			b.MaturityYears = 2.5
			b.SpotRates = []float64{0.01, 0.02}
		}, types.ErrInvalidMaturity},
		{"missing curve", func(b *types.Bond) { b.Model = types.SpotCurve }, types.ErrMissingCurve},
		{"curve length", func(b *types.Bond) {
			b.Model = types.SpotCurve
			b.SpotRates = []float64{0.01, 0.02}
		}, pricing.ErrLengthMismatch},
		{"irregular length", func(b *types.Bond) {
			b.Model = types.Irregular
			b.Times = []float64{1, 2}
			b.SpotRates = []float64{0.01}
		}, pricing.ErrLengthMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := types.NewBond("test", valuationDate)
			b.CouponRate = 0.05
			b.MaturityYears = 3
			b.Yield = 0.04
			tt.edit(b)

			err := types.CompleteBond(b)
			if !errors.Is(err, tt.want) {
				t.Errorf("CompleteBond() error = %v, want %v", err, tt.want)
			}
		})
	}

	if err := types.CompleteBond(nil); !errors.Is(err, types.ErrNilBond) {
		t.Errorf("CompleteBond(nil) error = %v, want %v", err, types.ErrNilBond)
	}
}

func TestParseModel(t *testing.T) {
	for _, m := range types.AllModels {
		got, err := types.ParseModel(string(m))
		if err != nil || got != m {
			t.Errorf("ParseModel(%q) = %q, %v", m, got, err)
		}
	}

	if _, err := types.ParseModel("FLAT"); !errors.Is(err, types.ErrUnsupportedModel) {
		t.Errorf("ParseModel(FLAT) error = %v, want %v", err, types.ErrUnsupportedModel)
	}
}

func TestCompleteBond_UndefinedDurationLeavesRecordUnpriced(t *testing.T) {
	b := types.NewBond("test", valuationDate)
	// discount factors underflow to zero, so the price is 0 and duration undefined
	b.CouponRate = 0
	b.MaturityYears = 100
	b.Yield = 1e10

	err := types.CompleteBond(b)
	if !errors.Is(err, types.ErrUndefinedDuration) {
		t.Fatalf("CompleteBond() error = %v, want %v", err, types.ErrUndefinedDuration)
	}
	if b.Price != 0 || b.Duration != 0 || b.ModifiedDuration != 0 {
		t.Errorf("record partly filled: price=%v duration=%v modified=%v", b.Price, b.Duration, b.ModifiedDuration)
	}
}
