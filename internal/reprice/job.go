package reprice

import (
	"benritz/cashflows/internal/config"
	"benritz/cashflows/internal/curve"
	"benritz/cashflows/internal/store"
	"benritz/cashflows/internal/types"
	"context"
	"fmt"
	"log"
	"time"
)

// StoreFunc persists a priced book and returns where it went.
type StoreFunc func(ctx context.Context, priced *store.PricedBonds) (string, error)

// Job prices a book of bonds against a freshly collected curve.
type Job struct {
	Config    *config.Config
	Collector curve.Collector
	Store     StoreFunc
}

// NewJob wires the curve collector and store from the config.
func NewJob(cfg *config.Config) *Job {
	var collector curve.Collector
	switch {
	case cfg.Curve.URL != "":
		collector = curve.NewHTMLCollector(cfg.Curve.URL, cfg.Curve.Selector)
	case cfg.Curve.Sheet != "":
		collector = curve.NewSheetCollector(cfg.Curve.Sheet)
	}

	return &Job{
		Config:    cfg,
		Collector: collector,
		Store: func(ctx context.Context, priced *store.PricedBonds) (string, error) {
			return store.Store(ctx, priced, cfg.Output, cfg.Profile)
		},
	}
}

// Run prices every bond in the book for the date. Bonds that fail to price
// are logged and left out of the stored output.
func (j *Job) Run(ctx context.Context, date time.Time) (*store.PricedBonds, string, error) {
	var c *curve.Curve

	if j.Config.NeedsCurve() {
		if j.Collector == nil {
			return nil, "", fmt.Errorf("book %s needs a curve but none is configured", j.Config.Name)
		}

		var err error
		c, err = j.Collector.Collect(ctx, date)
		if err != nil {
			return nil, "", fmt.Errorf("collect curve: %w", err)
		}
		log.Printf("[INFO] collected %d curve points from %s", c.Len(), j.Collector.Source())
	}

	priced := store.NewPricedBonds(j.Config.Name, date)

	for _, bc := range j.Config.Bonds {
		b := bc.Bond(j.Config.Name, date)

		if err := ApplyCurve(b, c); err != nil {
			priced.Failures = append(priced.Failures, &store.FailedBond{Bond: b, Err: err})
			log.Printf("[ERROR] bond %s: %v", b.ID, err)
			continue
		}

		if err := priced.AddBond(b); err != nil {
			log.Printf("[ERROR] bond %s: %v", b.ID, err)
		}
	}

	log.Printf("[INFO] priced %d bonds, %d failures", len(priced.Bonds), len(priced.Failures))

	if len(priced.Bonds) == 0 {
		return priced, "", types.ErrDataUnavailable
	}

	outPath, err := j.Store(ctx, priced)
	if err != nil {
		return priced, "", fmt.Errorf("store: %w", err)
	}
	log.Printf("[INFO] stored to %s", outPath)

	return priced, outPath, nil
}

// ApplyCurve fills in spot rates the bond does not carry itself.
func ApplyCurve(b *types.Bond, c *curve.Curve) error {
	if b.Model == types.FlatYield || len(b.SpotRates) > 0 || c == nil {
		return nil
	}

	switch b.Model {
	case types.SpotCurve:
		m, err := b.WholeYears()
		if err != nil {
			return err
		}
		rates, err := c.Annual(m)
		if err != nil {
			return err
		}
		b.SpotRates = rates

	case types.Irregular:
		rates, err := c.At(b.Times)
		if err != nil {
			return err
		}
		b.SpotRates = rates
	}

	return nil
}
