package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// bondFlags are the flags shared by every pricing subcommand. Rates are
// entered in percent.
type bondFlags struct {
	faceValue float64
	coupon    float64
}

func (b *bondFlags) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&b.faceValue, "facevalue", 100, "Face value of the bond")
	f.Float64Var(&b.coupon, "coupon", 0, "Annual coupon rate (%) of the bond")
}

func (b *bondFlags) validate() error {
	if b.faceValue <= 0 {
		return fmt.Errorf("face value must be greater than 0.0")
	}
	if b.coupon < 0 || b.coupon > 100 {
		return fmt.Errorf("coupon rate must be between 0.0 and 100.0")
	}
	return nil
}

func (b *bondFlags) couponRate() float64 {
	return b.coupon / 100
}

// flatFlags add the flat yield inputs.
type flatFlags struct {
	bondFlags
	ytm      float64
	maturity float64
	ppy      int
}

func (c *flatFlags) SetFlags(f *flag.FlagSet) {
	c.bondFlags.SetFlags(f)
	f.Float64Var(&c.ytm, "ytm", 0, "Annual yield to maturity (%)")
	f.Float64Var(&c.maturity, "maturity", 0, "Years to maturity, fractional periods are truncated")
	f.IntVar(&c.ppy, "ppy", 1, "Coupon payments per year")
}

func (c *flatFlags) validate() error {
	if err := c.bondFlags.validate(); err != nil {
		return err
	}
	if c.maturity <= 0 {
		return fmt.Errorf("maturity must be greater than 0.0")
	}
	if c.ppy <= 0 {
		return fmt.Errorf("payments per year must be greater than 0")
	}
	return nil
}

// parsePercents parses a comma separated list of percentages into decimals.
func parsePercents(s string) ([]float64, error) {
	values, err := parseFloats(s)
	if err != nil {
		return nil, err
	}
	for i := range values {
		values[i] /= 100
	}
	return values, nil
}

func parseFloats(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []float64{}, nil
	}

	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p)
		}
		values = append(values, v)
	}
	return values, nil
}

func formatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func formatYears(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(4)
}

func printField(w io.Writer, name, value string) {
	fmt.Fprintf(w, "\t%s: %s\n", name, value)
}
