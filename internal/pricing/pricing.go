package pricing

import (
	"fmt"
	"math"
)

// DefaultPaymentsPerYear is used when a non-positive payment frequency is given.
const DefaultPaymentsPerYear = 1

var (
	ErrLengthMismatch = fmt.Errorf("length mismatch")
)

// BondPrice prices a level-coupon bond under a flat yield.
//
// Parameters:
//
//	y:    Annual yield to maturity (e.g. 0.03).
//	F:    Face value of the bond.
//	C:    Annual coupon rate (e.g. 0.04).
//	m:    Years to maturity. Fractional periods are truncated.
//	ppy:  The number of coupon payments per year.
//
// Returns:
//
//	Bond price. A periodic yield of exactly -100% gives ±Inf or NaN.
func BondPrice(y, F, C, m float64, ppy int) float64 {
	c, n, r, _ := flatTerms(y, F, C, m, ppy)

	price := 0.0
	for t := 1; t <= n; t++ {
		price += c * DiscountFactor(r, float64(t))
	}

	return price + F*DiscountFactor(r, float64(n))
}

// BondDuration calculates the Macaulay duration in years under a flat yield.
//
// Parameters:
//
//	y:    Annual yield to maturity.
//	F:    Face value of the bond.
//	C:    Annual coupon rate.
//	m:    Years to maturity.
//	ppy:  The number of coupon payments per year.
//
// Returns:
//
//	Duration in years. The bond price must be positive, otherwise the result is NaN or ±Inf.
func BondDuration(y, F, C, m float64, ppy int) float64 {
	c, n, r, ppy := flatTerms(y, F, C, m, ppy)

	price := BondPrice(y, F, C, m, ppy)

	sum := 0.0
	for _, cf := range FlatSchedule(F, c, n) {
		sum += cf.Time * cf.Amount() * DiscountFactor(r, cf.Time)
	}

	periods := sum / price
	return periods / float64(ppy)
}

// ModifiedDuration is the Macaulay duration divided by one plus the periodic yield.
func ModifiedDuration(y, F, C, m float64, ppy int) float64 {
	_, _, r, ppy := flatTerms(y, F, C, m, ppy)
	return BondDuration(y, F, C, m, ppy) / (1 + r)
}

// TermStructurePrice prices an annual-coupon bond against a spot curve holding
// one rate per year, curve[i] being the rate for year i+1.
func TermStructurePrice(F, C float64, m int, curve []float64) (float64, error) {
	if len(curve) != m {
		return 0, fmt.Errorf("%w: curve has %d rates for %d years", ErrLengthMismatch, len(curve), m)
	}

	cfs := AnnualSchedule(F, F*C, m)
	return PresentValue(cfs, func(i int) float64 { return curve[i] }), nil
}

// IrregularPrice prices cashflows paid at arbitrary times in years, each
// discounted at its matching spot rate. A coupon of F*C is paid at every time
// and the face value is repaid at any time equal to the last element of times.
func IrregularPrice(F, C float64, times, rates []float64) (float64, error) {
	if len(times) != len(rates) {
		return 0, fmt.Errorf("%w: %d times for %d rates", ErrLengthMismatch, len(times), len(rates))
	}

	cfs := IrregularSchedule(F, F*C, times)
	return PresentValue(cfs, func(i int) float64 { return rates[i] }), nil
}

// flatTerms returns the periodic coupon, the number of whole periods, the
// periodic rate and the effective payment frequency.
func flatTerms(y, F, C, m float64, ppy int) (float64, int, float64, int) {
	if ppy <= 0 {
		ppy = DefaultPaymentsPerYear
	}

	c := F * C / float64(ppy)
	n := int(math.Floor(m * float64(ppy)))
	r := y / float64(ppy)

	return c, n, r, ppy
}
