package main

import (
	"benritz/cashflows/internal/pricing"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
)

type spotCmd struct {
	bondFlags
	maturity int
	rates    string
	out      io.Writer
}

func (*spotCmd) Name() string     { return "spot" }
func (*spotCmd) Synopsis() string { return "price an annual coupon bond against a spot curve" }
func (*spotCmd) Usage() string {
	return `bondcalc spot -coupon <%> -maturity <years> -rates <r1,r2,...> [-facevalue <face>]

  Discounts the coupon of year t at the t-th spot rate. One rate per year is required.
`
}

func (c *spotCmd) SetFlags(f *flag.FlagSet) {
	c.bondFlags.SetFlags(f)
	f.IntVar(&c.maturity, "maturity", 0, "Whole years to maturity")
	f.StringVar(&c.rates, "rates", "", "Comma separated annual spot rates (%), one per year")
}

func (c *spotCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	rates, err := parsePercents(c.rates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid rates: %v\n", err)
		return subcommands.ExitUsageError
	}

	price, err := pricing.TermStructurePrice(c.faceValue, c.couponRate(), c.maturity, rates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	w := writerOrStdout(c.out)
	fmt.Fprintf(w, "Bond Price (spot curve):\n")
	printField(w, "Price", formatAmount(price))

	return subcommands.ExitSuccess
}

type irregularCmd struct {
	bondFlags
	times string
	rates string
	out   io.Writer
}

func (*irregularCmd) Name() string { return "irregular" }
func (*irregularCmd) Synopsis() string {
	return "price cashflows at irregular times against spot rates"
}
func (*irregularCmd) Usage() string {
	return `bondcalc irregular -coupon <%> -times <t1,t2,...> -rates <r1,r2,...> [-facevalue <face>]

  Pays the annual coupon at every time and repays the face value at the last listed time.
`
}

func (c *irregularCmd) SetFlags(f *flag.FlagSet) {
	c.bondFlags.SetFlags(f)
	f.StringVar(&c.times, "times", "", "Comma separated cashflow times in years")
	f.StringVar(&c.rates, "rates", "", "Comma separated spot rates (%), one per time")
}

func (c *irregularCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	times, err := parseFloats(c.times)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid times: %v\n", err)
		return subcommands.ExitUsageError
	}

	rates, err := parsePercents(c.rates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid rates: %v\n", err)
		return subcommands.ExitUsageError
	}

	price, err := pricing.IrregularPrice(c.faceValue, c.couponRate(), times, rates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	w := writerOrStdout(c.out)
	fmt.Fprintf(w, "Bond Price (irregular times):\n")
	printField(w, "Cashflows", fmt.Sprintf("%d", len(times)))
	printField(w, "Price", formatAmount(price))

	return subcommands.ExitSuccess
}
