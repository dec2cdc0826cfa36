package reedmuench

import "fmt"

const (
	// DefaultBase is the conventional 10-fold serial dilution factor.
	DefaultBase = 10.0

	// DefaultPrecision is the number of decimal places shown for rounded
	// values in reports, per the usual virology convention for log10 titers.
	DefaultPrecision = 2
)

// Config carries the scalar assay parameters that accompany a dilution table.
type Config struct {
	// Base is the dilution factor between consecutive steps, e.g. 10.
	Base float64

	// VolumePerWell is the inoculum volume placed in each well, in mL.
	VolumePerWell float64

	// Precision is the number of decimal places used for the rounded values
	// in rendered reports. Zero or negative selects DefaultPrecision.
	Precision int
}

func (c Config) withDefaults() Config {
	if c.Base == 0 {
		c.Base = DefaultBase
	}
	if c.Precision <= 0 {
		c.Precision = DefaultPrecision
	}

	return c
}

func (c Config) validate() error {
	if c.Base <= 1 {
		return fmt.Errorf("dilution factor must be > 1, got %g", c.Base)
	}
	if c.VolumePerWell <= 0 {
		return fmt.Errorf("inoculum volume per well must be positive, got %g", c.VolumePerWell)
	}

	return nil
}

// Result is everything the caller needs to render or store one sample's
// titration: the validated input table, the derived cumulative rows, and the
// interpolated endpoint.
type Result struct {
	Sample     string
	Table      *DilutionTable
	Cumulative []CumulativeRow
	Endpoint   EndpointResult
	Config     Config
}

// Run executes the whole pipeline for one sample: validate the rows, build
// the cumulative counts, and interpolate the 50% endpoint. It is a pure
// function of its inputs; rerunning with the same inputs yields bit-identical
// results.
func Run(sample string, rows []DilutionRow, cfg Config) (Result, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}

	table, err := NewDilutionTable(rows)
	if err != nil {
		return Result{}, err
	}

	cum, err := Accumulate(table)
	if err != nil {
		return Result{}, err
	}

	endpoint, err := Interpolate(table, cum, cfg)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Sample:     sample,
		Table:      table,
		Cumulative: cum,
		Endpoint:   endpoint,
		Config:     cfg,
	}, nil
}
