package config

import (
	"benritz/cashflows/internal/types"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config describes a book of bonds, where its curve comes from and where the
// priced results go.
type Config struct {
	Name  string `yaml:"name"`
	Curve struct {
		URL      string `yaml:"url"`
		Selector string `yaml:"selector"`
		Sheet    string `yaml:"sheet"`
	} `yaml:"curve"`
	Bonds    []BondConfig `yaml:"bonds"`
	Schedule string       `yaml:"schedule"`
	Output   string       `yaml:"output"`
	Profile  string       `yaml:"aws_profile"`
}

// BondConfig is a bond in the book. Rates are decimals. Spot rates for the
// spot and irregular models are taken from the curve when not given.
type BondConfig struct {
	ID              string    `yaml:"id"`
	Desc            string    `yaml:"desc"`
	Model           string    `yaml:"model"`
	FaceValue       float64   `yaml:"face_value"`
	CouponRate      float64   `yaml:"coupon_rate"`
	MaturityYears   float64   `yaml:"maturity_years"`
	PaymentsPerYear int       `yaml:"payments_per_year"`
	Yield           float64   `yaml:"yield"`
	Times           []float64 `yaml:"times"`
	SpotRates       []float64 `yaml:"spot_rates"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Environment variable overrides
	if v := os.Getenv("CASHFLOWS_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("CASHFLOWS_CURVE_URL"); v != "" {
		cfg.Curve.URL = v
	}
	if v := os.Getenv("CASHFLOWS_SCHEDULE"); v != "" {
		cfg.Schedule = v
	}
	if v := os.Getenv("AWS_PROFILE"); v != "" {
		cfg.Profile = v
	}

	// Defaults
	if cfg.Name == "" {
		cfg.Name = "book"
	}
	if cfg.Schedule == "" {
		cfg.Schedule = "0 0 18 * * 1-5"
	}
	if cfg.Output == "" {
		cfg.Output = "data"
	}
	if cfg.Profile == "" {
		cfg.Profile = "default"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if len(c.Bonds) == 0 {
		return fmt.Errorf("bonds is required")
	}
	if c.Curve.URL != "" && c.Curve.Sheet != "" {
		return fmt.Errorf("curve.url and curve.sheet are exclusive")
	}

	ids := make(map[string]bool)
	for i, b := range c.Bonds {
		if b.ID == "" {
			return fmt.Errorf("bonds[%d].id is required", i)
		}
		if ids[b.ID] {
			return fmt.Errorf("bonds[%d].id %q is duplicated", i, b.ID)
		}
		ids[b.ID] = true

		if _, err := types.ParseModel(b.modelName()); err != nil {
			return fmt.Errorf("bonds[%d]: %w", i, err)
		}
	}
	return nil
}

// NeedsCurve reports whether any bond takes its spot rates from the curve.
func (c *Config) NeedsCurve() bool {
	for _, b := range c.Bonds {
		if b.modelName() != string(types.FlatYield) && len(b.SpotRates) == 0 {
			return true
		}
	}
	return false
}

func (b BondConfig) modelName() string {
	if b.Model == "" {
		return string(types.FlatYield)
	}
	return b.Model
}

// Bond builds the pricing record for the bond. Zero face value and payment
// frequency keep the record defaults.
func (b BondConfig) Bond(source string, date time.Time) *types.Bond {
	bond := types.NewBond(source, date)
	bond.ID = b.ID
	bond.Desc = b.Desc
	bond.Model = types.Model(b.modelName())
	bond.CouponRate = b.CouponRate
	bond.MaturityYears = b.MaturityYears
	bond.Yield = b.Yield
	bond.Times = b.Times
	bond.SpotRates = b.SpotRates

	if b.FaceValue != 0 {
		bond.FaceValue = b.FaceValue
	}
	if b.PaymentsPerYear != 0 {
		bond.PaymentsPerYear = b.PaymentsPerYear
	}

	return bond
}
