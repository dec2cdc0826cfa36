package reedmuench

// CumulativeRow is the Reed-Muench smoothing of one dilution step: infected
// wells summed from this step through every more-dilute step, uninfected
// wells summed from this step back through every more-concentrated step, and
// the percent infected those totals imply.
type CumulativeRow struct {
	Infected        int
	Uninfected      int
	PercentInfected float64
}

// Accumulate derives one CumulativeRow per table row, in table order. The
// input table is not modified.
func Accumulate(t *DilutionTable) ([]CumulativeRow, error) {
	n := t.Len()
	out := make([]CumulativeRow, n)

	// Infected counts accumulate from the most dilute row upward.
	running := 0
	for i := n - 1; i >= 0; i-- {
		running += t.Row(i).Positive
		out[i].Infected = running
	}

	// Uninfected counts accumulate from the most concentrated row downward.
	running = 0
	for i := 0; i < n; i++ {
		row := t.Row(i)
		running += row.Total - row.Positive
		out[i].Uninfected = running
	}

	for i := range out {
		denom := out[i].Infected + out[i].Uninfected
		if denom == 0 {
			// Unreachable for a validated table: the denominator at row i
			// includes all of row i's wells and Total > 0 is enforced.
			return nil, DegenerateDenominatorError{Index: i}
		}
		out[i].PercentInfected = 100 * float64(out[i].Infected) / float64(denom)
	}

	return out, nil
}
