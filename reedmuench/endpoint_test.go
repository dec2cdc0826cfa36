package reedmuench

import (
	"errors"
	"math"
	"testing"
)

type titerExpectation struct {
	name       string
	rows       []DilutionRow
	cfg        Config
	log10Titer float64
	tcid50     float64
	pd         float64
}

// Truth values follow the worked examples in the WHO/FAO descriptions of the
// Reed-Muench method.
func TestRunTiters(t *testing.T) {
	for _, v := range []titerExpectation{
		{
			name: "exact endpoint on a tested dilution",
			rows: []DilutionRow{
				{-1, 4, 4},
				{-2, 4, 4},
				{-3, 2, 4},
				{-4, 0, 4},
			},
			cfg:        Config{Base: 10, VolumePerWell: 0.1},
			log10Titer: -3,
			tcid50:     1e4,
			pd:         0,
		},
		{
			name: "endpoint halfway between steps",
			rows: []DilutionRow{
				{-1, 5, 5},
				{-2, 5, 5},
				{-3, 4, 5},
				{-4, 1, 5},
				{-5, 0, 5},
			},
			cfg:        Config{Base: 10, VolumePerWell: 0.1},
			log10Titer: -3.5,
			tcid50:     math.Pow(10, 3.5) / 0.1,
			pd:         0.5,
		},
		{
			name: "twofold dilution series",
			rows: []DilutionRow{
				{-1, 6, 6},
				{-2, 6, 6},
				{-3, 3, 6},
				{-4, 0, 6},
			},
			cfg:        Config{Base: 2, VolumePerWell: 1},
			log10Titer: -3 * math.Log10(2),
			tcid50:     math.Pow(2, 3),
			pd:         0,
		},
	} {
		res, err := Run("test", v.rows, v.cfg)
		if err != nil {
			t.Errorf("%s: %v", v.name, err)
			continue
		}

		if math.Abs(res.Endpoint.Log10Titer-v.log10Titer) > 1e-9 {
			t.Errorf("%s: log10 titer %v, want %v", v.name, res.Endpoint.Log10Titer, v.log10Titer)
		}
		if math.Abs(res.Endpoint.TCID50PerML-v.tcid50)/v.tcid50 > 1e-9 {
			t.Errorf("%s: TCID50/mL %v, want %v", v.name, res.Endpoint.TCID50PerML, v.tcid50)
		}
		if math.Abs(res.Endpoint.ProportionateDistance-v.pd) > 1e-9 {
			t.Errorf("%s: proportionate distance %v, want %v", v.name, res.Endpoint.ProportionateDistance, v.pd)
		}
	}
}

func TestInterpolateRequiresBracket(t *testing.T) {
	for _, v := range []struct {
		name     string
		rows     []DilutionRow
		allAbove bool
	}{
		{
			"every well infected",
			[]DilutionRow{{-1, 4, 4}, {-2, 4, 4}, {-3, 4, 4}},
			true,
		},
		{
			"no well infected",
			[]DilutionRow{{-1, 0, 4}, {-2, 0, 4}, {-3, 0, 4}},
			false,
		},
		{
			"first dilution already below 50%",
			[]DilutionRow{{-1, 1, 8}, {-2, 0, 8}},
			false,
		},
	} {
		_, err := Run("test", v.rows, Config{VolumePerWell: 0.1})

		var bracket NoEndpointBracketError
		if !errors.As(err, &bracket) {
			t.Errorf("%s: expected NoEndpointBracketError, got %v", v.name, err)
			continue
		}
		if bracket.AllAbove != v.allAbove {
			t.Errorf("%s: AllAbove = %t, want %t", v.name, bracket.AllAbove, v.allAbove)
		}
	}
}

func TestProportionateDistanceWithinUnitInterval(t *testing.T) {
	for _, rows := range [][]DilutionRow{
		{{-1, 8, 8}, {-2, 6, 8}, {-3, 5, 8}, {-4, 2, 8}, {-5, 0, 8}},
		{{-1, 3, 3}, {-2, 2, 3}, {-3, 1, 3}, {-4, 0, 3}},
		{{-2, 12, 12}, {-4, 7, 12}, {-6, 1, 12}, {-8, 0, 12}},
	} {
		res, err := Run("test", rows, Config{VolumePerWell: 0.05})
		if err != nil {
			t.Fatal(err)
		}

		pd := res.Endpoint.ProportionateDistance
		if pd < 0 || pd > 1 {
			t.Errorf("proportionate distance %v outside [0,1] for rows %v", pd, rows)
		}

		above := res.Cumulative[res.Endpoint.AboveIndex]
		belowRow := res.Cumulative[res.Endpoint.BelowIndex]
		if above.PercentInfected < 50 || belowRow.PercentInfected >= 50 {
			t.Errorf("bracket %f%%/%f%% does not straddle 50%%", above.PercentInfected, belowRow.PercentInfected)
		}
		if res.Endpoint.BelowIndex != res.Endpoint.AboveIndex+1 {
			t.Errorf("bracket rows %d and %d are not adjacent", res.Endpoint.AboveIndex, res.Endpoint.BelowIndex)
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	rows := []DilutionRow{
		{-1, 7, 8},
		{-2, 5, 8},
		{-3, 2, 8},
		{-4, 0, 8},
	}
	cfg := Config{Base: 10, VolumePerWell: 0.1}

	first, err := Run("test", rows, cfg)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Run("test", rows, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if first.Endpoint.Log10Titer != second.Endpoint.Log10Titer {
		t.Error("log10 titer differs between identical runs")
	}
	if first.Endpoint.TCID50PerML != second.Endpoint.TCID50PerML {
		t.Error("TCID50/mL differs between identical runs")
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	rows := []DilutionRow{{-1, 4, 4}, {-2, 0, 4}}

	if _, err := Run("test", rows, Config{Base: 1, VolumePerWell: 0.1}); err == nil {
		t.Error("expected an error for dilution factor <= 1")
	}
	if _, err := Run("test", rows, Config{Base: 10}); err == nil {
		t.Error("expected an error for missing inoculum volume")
	}
}
