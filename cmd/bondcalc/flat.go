package main

import (
	"benritz/cashflows/internal/pricing"
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/google/subcommands"
)

type priceCmd struct {
	flatFlags
	out io.Writer
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "price a bond under a flat yield" }
func (*priceCmd) Usage() string {
	return `bondcalc price -coupon <%> -ytm <%> -maturity <years> [-facevalue <face>] [-ppy <n>]

  Discounts every coupon and the face value at the periodic yield.
`
}

func (c *priceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	price := pricing.BondPrice(c.ytm/100, c.faceValue, c.couponRate(), c.maturity, c.ppy)
	if math.IsNaN(price) || math.IsInf(price, 0) {
		fmt.Fprintf(os.Stderr, "Error: price is undefined at a yield of %.3f%%\n", c.ytm)
		return subcommands.ExitFailure
	}

	w := writerOrStdout(c.out)
	fmt.Fprintf(w, "Bond Price:\n")
	printField(w, "Price", formatAmount(price))

	return subcommands.ExitSuccess
}

type durationCmd struct {
	flatFlags
	out io.Writer
}

func (*durationCmd) Name() string     { return "duration" }
func (*durationCmd) Synopsis() string { return "Macaulay and modified duration under a flat yield" }
func (*durationCmd) Usage() string {
	return `bondcalc duration -coupon <%> -ytm <%> -maturity <years> [-facevalue <face>] [-ppy <n>]

  Prints the price with the Macaulay and modified durations in years.
`
}

func (c *durationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	y := c.ytm / 100
	price := pricing.BondPrice(y, c.faceValue, c.couponRate(), c.maturity, c.ppy)
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		fmt.Fprintf(os.Stderr, "Error: duration needs a positive price, got %v\n", price)
		return subcommands.ExitFailure
	}

	duration := pricing.BondDuration(y, c.faceValue, c.couponRate(), c.maturity, c.ppy)
	modified := pricing.ModifiedDuration(y, c.faceValue, c.couponRate(), c.maturity, c.ppy)

	w := writerOrStdout(c.out)
	fmt.Fprintf(w, "Bond Duration:\n")
	printField(w, "Price", formatAmount(price))
	printField(w, "Macaulay Duration", formatYears(duration))
	printField(w, "Modified Duration", formatYears(modified))

	return subcommands.ExitSuccess
}

func writerOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
