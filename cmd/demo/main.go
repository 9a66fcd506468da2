package main

import (
	"benritz/cashflows/internal/demo"
	"benritz/cashflows/internal/pricing"
	"fmt"
	"strings"
)

func main() {
	fmt.Println(demo.WhoAmI())

	// flat yield price & duration
	p := pricing.BondPrice(0.03, 2_000_000, 0.04, 10, 1)
	d := pricing.BondDuration(0.03, 2_000_000, 0.04, 10, 1)
	fmt.Printf("Price (flat y=3%%, m=10): %.2f\n", p)
	fmt.Printf("Duration (years): %.2f\n", d)

	// annual spot curve, m=5
	yc := []float64{0.010, 0.015, 0.020, 0.025, 0.030}
	if p, err := pricing.TermStructurePrice(2_000_000, 0.04, 5, yc); err != nil {
		fmt.Printf("Error: %v\n", err)
	} else {
		fmt.Printf("Price (spot curve, m=5): %.2f\n", p)
	}

	// irregular times
	times := []float64{1.0, 1.5, 3.0, 4.0, 7.0}
	if p, err := pricing.IrregularPrice(2_000_000, 0.04, times, yc); err != nil {
		fmt.Printf("Error: %v\n", err)
	} else {
		fmt.Printf("Price (irregular times): %.2f\n", p)
	}

	fmt.Printf("FizzBuzz(1, 15): [%s]\n", strings.Join(demo.FizzBuzz(1, 15), " "))
}
