package types

import (
	"benritz/cashflows/internal/pricing"
	"fmt"
	"math"
	"time"
)

type Model string

var (
	FlatYield Model = "flat"
	SpotCurve Model = "spot"
	Irregular Model = "irregular"
	AllModels       = []Model{FlatYield, SpotCurve, Irregular}
)

func ParseModel(s string) (Model, error) {
	for _, m := range AllModels {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedModel, s)
}

// Bond is both a pricing request and its result. It is written as a parquet
// row, so every field is a plain value.
type Bond struct {
	ID               string    `json:"id" parquet:"id"`
	Source           string    `json:"source,omitempty" parquet:"source"`
	Desc             string    `json:"desc,omitempty" parquet:"desc"`
	Model            Model     `json:"model" parquet:"model"`
	FaceValue        float64   `json:"face_value" parquet:"face_value"`
	CouponRate       float64   `json:"coupon_rate" parquet:"coupon_rate"`
	MaturityYears    float64   `json:"maturity_years,omitempty" parquet:"maturity_years"`
	PaymentsPerYear  int       `json:"payments_per_year,omitempty" parquet:"payments_per_year"`
	Yield            float64   `json:"yield,omitempty" parquet:"yield"`
	Times            []float64 `json:"times,omitempty" parquet:"times,list"`
	SpotRates        []float64 `json:"spot_rates,omitempty" parquet:"spot_rates,list"`
	Price            float64   `json:"price,omitempty" parquet:"price"`
	Duration         float64   `json:"duration,omitempty" parquet:"duration"`
	ModifiedDuration float64   `json:"modified_duration,omitempty" parquet:"modified_duration"`
	ValuationDate    time.Time `json:"valuation_date" parquet:"valuation_date,timestamp"`
}

func NewBond(source string, valuationDate time.Time) *Bond {
	return &Bond{
		Model:           FlatYield,
		FaceValue:       100.0,
		PaymentsPerYear: pricing.DefaultPaymentsPerYear,
		Source:          source,
		ValuationDate:   valuationDate,
	}
}

// WholeYears returns the maturity as a year count for the spot curve model.
func (b *Bond) WholeYears() (int, error) {
	m := int(b.MaturityYears)
	if float64(m) != b.MaturityYears {
		return 0, fmt.Errorf("%w: %v is not a whole number of years", ErrInvalidMaturity, b.MaturityYears)
	}
	return m, nil
}

var (
	ErrNilBond                = fmt.Errorf("bond is nil")
	ErrDataUnavailable        = fmt.Errorf("data unavailable")
	ErrUnsupportedModel       = fmt.Errorf("unsupported pricing model")
	ErrInvalidFaceValue       = fmt.Errorf("invalid face value")
	ErrInvalidCouponRate      = fmt.Errorf("invalid coupon rate")
	ErrInvalidMaturity        = fmt.Errorf("invalid maturity")
	ErrInvalidPaymentsPerYear = fmt.Errorf("invalid payments per year")
	ErrMissingCurve           = fmt.Errorf("missing spot rates")
	ErrUndefinedPrice         = fmt.Errorf("price is undefined")
	ErrUndefinedDuration      = fmt.Errorf("duration is undefined")
)

// CompleteBond validates the bond and fills in its price, plus the durations
// for the flat yield model.
func CompleteBond(b *Bond) error {
	if b == nil {
		return ErrNilBond
	}

	if b.FaceValue <= 0 {
		return ErrInvalidFaceValue
	}

	if math.IsNaN(b.CouponRate) || math.IsInf(b.CouponRate, 0) {
		return ErrInvalidCouponRate
	}

	if b.PaymentsPerYear == 0 {
		b.PaymentsPerYear = pricing.DefaultPaymentsPerYear
	}

	if b.PaymentsPerYear < 0 {
		return ErrInvalidPaymentsPerYear
	}

	var (
		price float64
		err   error
	)

	switch b.Model {
	case FlatYield:
		if b.MaturityYears <= 0 {
			return ErrInvalidMaturity
		}

		price = pricing.BondPrice(b.Yield, b.FaceValue, b.CouponRate, b.MaturityYears, b.PaymentsPerYear)

	case SpotCurve:
		if b.MaturityYears <= 0 {
			return ErrInvalidMaturity
		}

		m, err := b.WholeYears()
		if err != nil {
			return err
		}

		if len(b.SpotRates) == 0 {
			return ErrMissingCurve
		}

		price, err = pricing.TermStructurePrice(b.FaceValue, b.CouponRate, m, b.SpotRates)
		if err != nil {
			return err
		}

	case Irregular:
		price, err = pricing.IrregularPrice(b.FaceValue, b.CouponRate, b.Times, b.SpotRates)
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedModel, b.Model)
	}

	if !isFinite(price) {
		return ErrUndefinedPrice
	}

	if b.Model != FlatYield {
		b.Price = price
		return nil
	}

	duration := pricing.BondDuration(b.Yield, b.FaceValue, b.CouponRate, b.MaturityYears, b.PaymentsPerYear)
	if price == 0 || !isFinite(duration) {
		return ErrUndefinedDuration
	}

	b.Price = price
	b.Duration = duration
	b.ModifiedDuration = pricing.ModifiedDuration(b.Yield, b.FaceValue, b.CouponRate, b.MaturityYears, b.PaymentsPerYear)

	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
