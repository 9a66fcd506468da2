package curve

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrEmptyCurve      = fmt.Errorf("curve has no points")
	ErrMissingTenor    = fmt.Errorf("curve has no rate for tenor")
	ErrInvalidTenor    = fmt.Errorf("invalid tenor")
	ErrInvalidRate     = fmt.Errorf("invalid rate")
	ErrDuplicateTenor  = fmt.Errorf("duplicate tenor")
	ErrDataUnavailable = fmt.Errorf("curve data unavailable")
)

// Curve is a spot rate term structure. Tenors are in years and rates are
// decimals (0.03 = 3%).
type Curve struct {
	Source string
	Date   time.Time
	Tenors []float64
	Rates  []float64
}

type Collector interface {
	Collect(ctx context.Context, date time.Time) (*Curve, error)
	Source() string
}

func NewCurve(source string, date time.Time) *Curve {
	return &Curve{
		Source: source,
		Date:   date,
		Tenors: []float64{},
		Rates:  []float64{},
	}
}

// AddPoint inserts a point keeping tenors sorted.
func (c *Curve) AddPoint(tenor, rate float64) error {
	i := sort.SearchFloat64s(c.Tenors, tenor)
	if i < len(c.Tenors) && c.Tenors[i] == tenor {
		return fmt.Errorf("%w: %v", ErrDuplicateTenor, tenor)
	}

	c.Tenors = append(c.Tenors, 0)
	c.Rates = append(c.Rates, 0)
	copy(c.Tenors[i+1:], c.Tenors[i:])
	copy(c.Rates[i+1:], c.Rates[i:])
	c.Tenors[i] = tenor
	c.Rates[i] = rate

	return nil
}

func (c *Curve) Len() int {
	return len(c.Tenors)
}

// Annual returns the rates for years 1..m. Each whole-year tenor must be
// quoted, no interpolation is done.
func (c *Curve) Annual(m int) ([]float64, error) {
	rates := make([]float64, 0, m)
	for year := 1; year <= m; year++ {
		i := sort.SearchFloat64s(c.Tenors, float64(year))
		if i == len(c.Tenors) || c.Tenors[i] != float64(year) {
			return nil, fmt.Errorf("%w: %dY", ErrMissingTenor, year)
		}
		rates = append(rates, c.Rates[i])
	}
	return rates, nil
}

// At returns a rate for each time, linearly interpolated between tenors and
// flat beyond the ends of the curve. Times must be finite.
func (c *Curve) At(times []float64) ([]float64, error) {
	if c.Len() == 0 {
		return nil, ErrEmptyCurve
	}

	rates := make([]float64, 0, len(times))
	for _, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTenor, t)
		}
		rates = append(rates, c.rateAt(t))
	}
	return rates, nil
}

func (c *Curve) rateAt(t float64) float64 {
	n := len(c.Tenors)

	if t <= c.Tenors[0] {
		return c.Rates[0]
	}

	if t >= c.Tenors[n-1] {
		return c.Rates[n-1]
	}

	i := sort.SearchFloat64s(c.Tenors, t)
	if c.Tenors[i] == t {
		return c.Rates[i]
	}

	t0, t1 := c.Tenors[i-1], c.Tenors[i]
	r0, r1 := c.Rates[i-1], c.Rates[i]

	return r0 + (r1-r0)*(t-t0)/(t1-t0)
}

// ParseTenor parses tenors such as "6M", "2Y", "1W", "30D" or a bare number
// of years such as "1.5".
func ParseTenor(s string) (float64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, ErrInvalidTenor
	}

	div := 1.0
	switch s[len(s)-1] {
	case 'Y':
		s = s[:len(s)-1]
	case 'M':
		div = 12
		s = s[:len(s)-1]
	case 'W':
		div = 365.0 / 7.0
		s = s[:len(s)-1]
	case 'D':
		div = 365
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTenor, s)
	}

	return v / div, nil
}

// ParsePercent parses a rate quoted in percent, with or without the % sign,
// and returns it as a decimal.
func ParsePercent(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRate, s)
	}

	return v / 100, nil
}

// parsePoint reads a tenor and rate cell pair. Header and blank rows fail.
func parsePoint(tenorCell, rateCell string) (float64, float64, error) {
	tenor, err := ParseTenor(tenorCell)
	if err != nil {
		return 0, 0, err
	}

	rate, err := ParsePercent(rateCell)
	if err != nil {
		return 0, 0, err
	}

	return tenor, rate, nil
}
