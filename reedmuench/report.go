package reedmuench

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// Report renders a human-readable summary of one sample's titration: the
// per-dilution table with its cumulative counts, the bracketing pair, and the
// titer both at full precision and rounded to the configured number of
// decimal places. Pure formatting; all numbers were computed upstream.
func (r Result) Report(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Sample: %s\n", r.Sample); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "dilution\tpositive\ttotal\tcum_infected\tcum_uninfected\tpct_infected")
	for i, row := range r.Table.Rows() {
		cum := r.Cumulative[i]
		fmt.Fprintf(tw, "%g^%d\t%d\t%d\t%d\t%d\t%.*f\n",
			r.Config.Base, row.Exponent,
			row.Positive, row.Total,
			cum.Infected, cum.Uninfected,
			r.Config.Precision, cum.PercentInfected,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	above := r.Table.Row(r.Endpoint.AboveIndex)
	below := r.Table.Row(r.Endpoint.BelowIndex)

	_, err := fmt.Fprintf(w,
		"50%% endpoint bracketed by %g^%d (%.*f%%) and %g^%d (%.*f%%)\n"+
			"proportionate distance: %s\n"+
			"log10 TCID50 dilution: %s (%.*f)\n"+
			"TCID50 per mL: %s (%.*f)\n",
		r.Config.Base, above.Exponent, r.Config.Precision, r.Cumulative[r.Endpoint.AboveIndex].PercentInfected,
		r.Config.Base, below.Exponent, r.Config.Precision, r.Cumulative[r.Endpoint.BelowIndex].PercentInfected,
		fullPrecision(r.Endpoint.ProportionateDistance),
		fullPrecision(r.Endpoint.Log10Titer), r.Config.Precision, r.Endpoint.Log10Titer,
		fullPrecision(r.Endpoint.TCID50PerML), r.Config.Precision, r.Endpoint.TCID50PerML,
	)

	return err
}

// fullPrecision formats v with the fewest digits that round-trip exactly.
func fullPrecision(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
