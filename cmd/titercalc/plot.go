package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/virotools/titercalc/reedmuench"
)

// writeDoseResponsePlot renders one sample's cumulative percent infected
// against log10 dilution, with a dashed line marking the 50% endpoint, and
// returns the path of the PNG it wrote.
func writeDoseResponsePlot(dir string, res reedmuench.Result) (string, error) {
	logBase := math.Log10(res.Config.Base)

	// Most dilute first so the X values ascend.
	n := res.Table.Len()
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := n - 1; i >= 0; i-- {
		xs = append(xs, float64(res.Table.Row(i).Exponent)*logBase)
		ys = append(ys, res.Cumulative[i].PercentInfected)
	}

	graph := chart.Chart{
		Width:  512,
		Height: 256,
		XAxis: chart.XAxis{
			Name: "log10 dilution",
		},
		YAxis: chart.YAxis{
			Name:  "% infected",
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    res.Sample,
				XValues: xs,
				YValues: ys,
			},
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeColor:     chart.ColorRed,
					StrokeDashArray: []float64{5, 5},
				},
				XValues: []float64{xs[0], xs[len(xs)-1]},
				YValues: []float64{50, 50},
			},
		},
	}

	// Render to a byte buffer
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return "", err
	}

	path := filepath.Join(dir, strings.ReplaceAll(res.Sample, " ", "_")+".png")
	outFile, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := buffer.WriteTo(outFile); err != nil {
		outFile.Close()
		return "", err
	}

	return path, outFile.Close()
}
