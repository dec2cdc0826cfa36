// titercalc computes TCID50 titers from serial-dilution CPE assay results
// using the Reed-Muench method, printing a titer table to stdout and writing
// a full report file next to the input.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"

	"github.com/virotools/titercalc"
	"github.com/virotools/titercalc/assayparser"
	"github.com/virotools/titercalc/reedmuench"
)

func main() {
	var (
		input      string
		format     string
		layoutName string
		outPath    string
		plotDir    string
		volume     float64
		dilution   float64
		precision  int
		force      bool
	)

	flag.StringVar(&input, "file", "", "Assay results file. May be gzip, bzip2, or xz compressed.")
	flag.StringVar(&format, "format", "plate", "Input format: 'plate' (VOLUME/DILUTION/NREPLICATES text) or 'csv' (sample,dilution_exponent,positive_wells,total_wells).")
	flag.StringVar(&layoutName, "layout", "TIDY", "CSV layout. One of: "+assayparser.LayoutNames())
	flag.Float64Var(&volume, "volume", 0, "Inoculum volume per well in mL. Required for -format csv; plate files carry their own.")
	flag.Float64Var(&dilution, "dilution", reedmuench.DefaultBase, "Dilution factor between steps for -format csv; plate files carry their own.")
	flag.IntVar(&precision, "precision", reedmuench.DefaultPrecision, "Decimal places for rounded values in the report.")
	flag.StringVar(&outPath, "out", "", "Report output path. Defaults to <input base>-titers.txt")
	flag.BoolVar(&force, "force", false, "Overwrite the report file if it already exists.")
	flag.StringVar(&plotDir, "plot", "", "If set, write a dose-response PNG per sample into this directory.")
	flag.Parse()

	if input == "" {
		flag.Usage()
		os.Exit(1)
	}

	if outPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outPath = base + "-titers.txt"
	}

	if err := run(input, format, layoutName, outPath, plotDir, volume, dilution, precision, force); err != nil {
		log.Fatalln(pfx.Err(err))
	}
}

func run(input, format, layoutName, outPath, plotDir string, volume, dilution float64, precision int, force bool) error {
	samples, cfg, err := loadSamples(input, format, layoutName, volume, dilution, precision)
	if err != nil {
		return err
	}
	log.Printf("Read data for %d samples from %s\n", len(samples), input)

	results := make([]reedmuench.Result, 0, len(samples))
	for _, sample := range samples {
		res, err := reedmuench.Run(sample.Name, sample.Rows, cfg)
		if err != nil {
			return fmt.Errorf("sample %q: %w", sample.Name, err)
		}
		results = append(results, res)
	}

	printTiterTable(results)

	if err := writeReportFile(outPath, results, force); err != nil {
		return err
	}
	log.Printf("Wrote report to %s\n", outPath)

	if len(results) >= 2 {
		if err := logSummary(results); err != nil {
			return err
		}
	}

	if plotDir != "" {
		for _, res := range results {
			path, err := writeDoseResponsePlot(plotDir, res)
			if err != nil {
				return err
			}
			log.Printf("Wrote dose-response plot to %s\n", path)
		}
	}

	return nil
}

func loadSamples(input, format, layoutName string, volume, dilution float64, precision int) ([]assayparser.Sample, reedmuench.Config, error) {
	r, err := titercalc.OpenAssayFile(input)
	if err != nil {
		return nil, reedmuench.Config{}, err
	}
	defer r.Close()

	switch format {
	case "plate":
		data, err := assayparser.ParsePlate(r)
		if err != nil {
			return nil, reedmuench.Config{}, err
		}
		cfg := reedmuench.Config{Base: data.Dilution, VolumePerWell: data.Volume, Precision: precision}
		return data.Samples, cfg, nil

	case "csv":
		layout, err := assayparser.LayoutByName(layoutName)
		if err != nil {
			return nil, reedmuench.Config{}, err
		}
		samples, err := assayparser.ParseCSV(r, layout)
		if err != nil {
			return nil, reedmuench.Config{}, err
		}
		if volume <= 0 {
			return nil, reedmuench.Config{}, fmt.Errorf("-format csv requires -volume (inoculum volume per well, in mL)")
		}
		cfg := reedmuench.Config{Base: dilution, VolumePerWell: volume, Precision: precision}
		return samples, cfg, nil
	}

	return nil, reedmuench.Config{}, fmt.Errorf("unknown -format %q; expected plate or csv", format)
}

func printTiterTable(results []reedmuench.Result) {
	fmt.Println(strings.Join([]string{
		"sample",
		"log10_tcid50",
		"tcid50_per_ml",
		"bracket_above_exponent",
		"bracket_below_exponent",
		"proportionate_distance"},
		"\t"))

	for _, res := range results {
		fmt.Printf("%s\t%f\t%g\t%d\t%d\t%f\n",
			res.Sample,
			res.Endpoint.Log10Titer,
			res.Endpoint.TCID50PerML,
			res.Table.Row(res.Endpoint.AboveIndex).Exponent,
			res.Table.Row(res.Endpoint.BelowIndex).Exponent,
			res.Endpoint.ProportionateDistance,
		)
	}
}

func writeReportFile(path string, results []reedmuench.Result, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("output file %s already exists; pass -force to overwrite", path)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	fmt.Fprintln(f, "Computed TCID50 titers (Reed-Muench method)")
	fmt.Fprintln(f)
	for _, res := range results {
		if err := res.Report(f); err != nil {
			f.Close()
			return err
		}
		fmt.Fprintln(f)
	}

	return f.Close()
}

func logSummary(results []reedmuench.Result) error {
	titers := make([]float64, 0, len(results))
	for _, res := range results {
		titers = append(titers, res.Endpoint.Log10Titer)
	}

	data := stats.LoadRawData(titers)

	mean, err := data.Mean()
	if err != nil {
		return err
	}
	median, err := data.Median()
	if err != nil {
		return err
	}
	sd, err := data.StandardDeviation()
	if err != nil {
		return err
	}

	log.Printf("log10 titer across %d samples: mean %.3f, median %.3f, SD %.3f\n", len(titers), mean, median, sd)

	return nil
}
