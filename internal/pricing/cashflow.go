package pricing

import "math"

// Cashflow is a single payment at Time, in years for spot curves or in
// periods for flat yields.
type Cashflow struct {
	Time      float64
	Coupon    float64
	Principal float64
}

func (c Cashflow) Amount() float64 {
	return c.Coupon + c.Principal
}

// DiscountFactor returns 1/(1+rate)^t.
func DiscountFactor(rate, t float64) float64 {
	return 1 / math.Pow(1+rate, t)
}

// PresentValue sums the discounted cashflows, rateAt giving the rate for the
// i-th cashflow.
func PresentValue(cfs []Cashflow, rateAt func(i int) float64) float64 {
	pv := 0.0
	for i, cf := range cfs {
		pv += cf.Amount() * DiscountFactor(rateAt(i), cf.Time)
	}
	return pv
}

// FlatSchedule returns n periodic coupons with the face value bundled into the last.
func FlatSchedule(F, c float64, n int) []Cashflow {
	cfs := make([]Cashflow, 0, n)
	for t := 1; t <= n; t++ {
		cf := Cashflow{Time: float64(t), Coupon: c}
		if t == n {
			cf.Principal = F
		}
		cfs = append(cfs, cf)
	}
	return cfs
}

// AnnualSchedule returns m annual coupons with the face value bundled into year m.
func AnnualSchedule(F, c float64, m int) []Cashflow {
	return FlatSchedule(F, c, m)
}

// IrregularSchedule pays c at every time and F at each time equal to the last
// listed time. Equality is exact, so unsorted or repeated times may repay F
// more than once.
func IrregularSchedule(F, c float64, times []float64) []Cashflow {
	last := 0.0
	if len(times) > 0 {
		last = times[len(times)-1]
	}

	cfs := make([]Cashflow, 0, len(times))
	for _, t := range times {
		cf := Cashflow{Time: t, Coupon: c}
		if t == last {
			cf.Principal = F
		}
		cfs = append(cfs, cf)
	}
	return cfs
}
