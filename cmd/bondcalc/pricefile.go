package main

import (
	"benritz/cashflows/internal/curve"
	"benritz/cashflows/internal/reprice"
	"benritz/cashflows/internal/store"
	"benritz/cashflows/internal/types"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
)

type priceFileCmd struct {
	source     string
	curveSheet string
	date       string
	profile    string
	override   bool
}

func (*priceFileCmd) Name() string     { return "price-file" }
func (*priceFileCmd) Synopsis() string { return "price the bonds of a parquet file" }
func (*priceFileCmd) Usage() string {
	return `bondcalc price-file [-curve-sheet <file> [-override-rates]] [-date <YYYY-MM-DD>] <input.parquet> <destination>

  Prices every bond row of the input and stores the priced rows under the
  destination directory or s3://bucket/prefix. Rows that already carry spot
  rates keep them unless -override-rates is given with -curve-sheet.
`
}

func (c *priceFileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "source", "file", "Source name of the output file")
	f.StringVar(&c.curveSheet, "curve-sheet", "", "Spreadsheet with tenor and rate (%) columns for bonds without spot rates")
	f.StringVar(&c.date, "date", "", "Valuation date (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.profile, "profile", "default", "the AWS profile to use")
	f.BoolVar(&c.override, "override-rates", false, "Replace the spot rates of every row with rates from -curve-sheet")
}

func (c *priceFileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "Error: expected <input.parquet> <destination>\n")
		return subcommands.ExitUsageError
	}

	date, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid date: %v\n", err)
		return subcommands.ExitUsageError
	}

	bonds, err := store.ReadBonds(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var spot *curve.Curve
	if c.curveSheet != "" {
		spot, err = curve.NewSheetCollector(c.curveSheet).Collect(ctx, date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read curve: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	priced := store.NewPricedBonds(c.source, date)
	for _, b := range bonds {
		b.Source = c.source
		b.ValuationDate = date

		if err := applyCurve(b, spot, c.override); err != nil {
			priced.Failures = append(priced.Failures, &store.FailedBond{Bond: b, Err: err})
			continue
		}
		priced.AddBond(b)
	}

	for _, failed := range priced.Failures {
		fmt.Printf("Failed to price %s: %v\n", failed.Bond.ID, failed.Err)
	}

	outPath, err := store.Store(ctx, priced, f.Arg(1), c.profile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to store data: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Priced %d of %d bonds\n", len(priced.Bonds), len(bonds))
	fmt.Printf("Stored to %s\n", outPath)

	return subcommands.ExitSuccess
}

// applyCurve fills the bond's spot rates from the curve, first dropping the
// rates it carries when override is set.
func applyCurve(b *types.Bond, spot *curve.Curve, override bool) error {
	if override && spot != nil && b.Model != types.FlatYield {
		b.SpotRates = nil
	}
	return reprice.ApplyCurve(b, spot)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC().Truncate(24 * time.Hour), nil
	}
	return time.Parse("2006-01-02", s)
}
