package reedmuench

import "math"

// EndpointResult locates the 50% infection endpoint. AboveIndex and
// BelowIndex reference the adjacent rows of the cumulative sequence whose
// percentages bracket 50 (above >= 50, below < 50).
type EndpointResult struct {
	AboveIndex            int
	BelowIndex            int
	ProportionateDistance float64
	Log10Titer            float64
	TCID50PerML           float64
}

// Interpolate finds the adjacent pair of cumulative rows bracketing 50%
// infection and interpolates the endpoint between them, following the
// Reed-Muench method as described in
// http://whqlibdoc.who.int/monograph/WHO_MONO_23_(3ed)_appendices.pdf and
// http://www.fao.org/docrep/005/ac802e/ac802e0w.htm. The interpolation is
// linear in log10-dilution space, so it holds for either exponent sign
// convention as long as the table is ordered most-concentrated first.
func Interpolate(t *DilutionTable, cum []CumulativeRow, cfg Config) (EndpointResult, error) {
	below := -1
	for i := range cum {
		if cum[i].PercentInfected < 50 {
			below = i
			break
		}
	}

	if below == -1 {
		return EndpointResult{}, NoEndpointBracketError{AllAbove: true}
	}
	if below == 0 {
		return EndpointResult{}, NoEndpointBracketError{AllAbove: false}
	}
	above := below - 1

	spread := cum[above].PercentInfected - cum[below].PercentInfected
	if spread == 0 {
		// Unreachable with a strict bracket, since above >= 50 > below.
		return EndpointResult{}, ZeroSpreadError{AboveIndex: above, Percent: cum[above].PercentInfected}
	}

	pd := (cum[above].PercentInfected - 50) / spread

	// Interpolate between the actual log10 dilutions of the two bracketing
	// rows. At pd == 0 the endpoint sits exactly on the "above" row.
	logBase := math.Log10(cfg.Base)
	lAbove := float64(t.Row(above).Exponent) * logBase
	lBelow := float64(t.Row(below).Exponent) * logBase
	log10Titer := lAbove + pd*(lBelow-lAbove)

	return EndpointResult{
		AboveIndex:            above,
		BelowIndex:            below,
		ProportionateDistance: pd,
		Log10Titer:            log10Titer,
		TCID50PerML:           math.Pow(10, -log10Titer) / cfg.VolumePerWell,
	}, nil
}
