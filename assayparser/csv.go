package assayparser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/virotools/titercalc/reedmuench"
)

type csvRecord struct {
	Sample   string `csv:"sample"`
	Exponent int    `csv:"dilution_exponent"`
	Positive int    `csv:"positive_wells"`
	Total    int    `csv:"total_wells"`
}

// ParseCSV reads a tidy delimited assay file with a header naming the
// columns sample, dilution_exponent, positive_wells, and total_wells, one
// observation per line. Samples come back in first-appearance order; the
// per-sample rows keep their file order.
func ParseCSV(r io.Reader, layout Layout) ([]Sample, error) {
	fileBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	// A locally configured reader keeps concurrent ParseCSV calls (and any
	// other gocsv user in the process) independent of each other.
	cr := csv.NewReader(bytes.NewReader(fileBytes))
	cr.Comma = layout.DetectDelimiter(bytes.NewReader(fileBytes))
	cr.Comment = layout.Comment
	cr.LazyQuotes = true

	records := []*csvRecord{}
	if err := gocsv.UnmarshalCSV(cr, &records); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no assay observations found")
	}

	order := []string{}
	grouped := make(map[string][]reedmuench.DilutionRow)
	for _, record := range records {
		if record.Sample == "" {
			return nil, fmt.Errorf("observation with empty sample name: %+v", *record)
		}
		if _, exists := grouped[record.Sample]; !exists {
			order = append(order, record.Sample)
		}
		grouped[record.Sample] = append(grouped[record.Sample], reedmuench.DilutionRow{
			Exponent: record.Exponent,
			Positive: record.Positive,
			Total:    record.Total,
		})
	}

	out := make([]Sample, 0, len(order))
	for _, name := range order {
		out = append(out, Sample{Name: name, Rows: grouped[name]})
	}

	return out, nil
}
