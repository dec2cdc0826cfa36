package assayparser

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/virotools/titercalc/reedmuench"
)

// plateRowLabels are the rows of a 96-well plate in dilution order. Row A is
// the reference dilution (exponent 0) receiving the stated inoculum volume;
// each later row is one further dilution step.
var plateRowLabels = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

// Sample is one titration series: a sample name plus its per-dilution well
// counts, ready to hand to the Reed-Muench pipeline.
type Sample struct {
	Name string
	Rows []reedmuench.DilutionRow
}

// PlateData is the content of one plate-format assay file: the samples in
// input order plus the scalar assay parameters shared by all of them.
type PlateData struct {
	Samples    []Sample
	Volume     float64
	Dilution   float64
	Replicates int
}

var (
	volumeLine     = regexp.MustCompile(`^VOLUME\s+(\d+\.?\d*)$`)
	dilutionLine   = regexp.MustCompile(`^DILUTION\s+(\d+\.?\d*)$`)
	replicatesLine = regexp.MustCompile(`^NREPLICATES\s+(\d+)$`)
	sampleLine     = regexp.MustCompile(`^SAMPLE\s+(.+)$`)
)

// ParsePlate reads the plate text format: a VOLUME line, a DILUTION line, an
// NREPLICATES line, then per sample a SAMPLE line followed by one line per
// replicate listing the plate rows showing cytopathic effect ("na" for none).
// Comment lines starting with # and blank lines are ignored.
func ParsePlate(r io.Reader) (*PlateData, error) {
	lines, err := contentLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) < 3 {
		return nil, fmt.Errorf("expected at least VOLUME, DILUTION, and NREPLICATES lines, got %d lines", len(lines))
	}

	out := &PlateData{}

	m := volumeLine.FindStringSubmatch(lines[0])
	if m == nil {
		return nil, fmt.Errorf("failed to parse VOLUME from the first line: %q", lines[0])
	}
	if out.Volume, err = strconv.ParseFloat(m[1], 64); err != nil {
		return nil, err
	}

	m = dilutionLine.FindStringSubmatch(lines[1])
	if m == nil {
		return nil, fmt.Errorf("failed to parse DILUTION from the second line: %q", lines[1])
	}
	if out.Dilution, err = strconv.ParseFloat(m[1], 64); err != nil {
		return nil, err
	}
	if out.Dilution <= 1 {
		return nil, fmt.Errorf("the dilution factor must be > 1, got %g", out.Dilution)
	}

	m = replicatesLine.FindStringSubmatch(lines[2])
	if m == nil {
		return nil, fmt.Errorf("failed to parse NREPLICATES from the third line: %q", lines[2])
	}
	if out.Replicates, err = strconv.Atoi(m[1]); err != nil {
		return nil, err
	}
	if out.Replicates < 2 {
		return nil, fmt.Errorf("need at least two replicates, got %d", out.Replicates)
	}

	lines = lines[3:]
	linesPerSample := out.Replicates + 1
	if len(lines) == 0 || len(lines)%linesPerSample != 0 {
		return nil, fmt.Errorf("each sample needs %d lines (a SAMPLE line plus one line per replicate), but %d lines remain", linesPerSample, len(lines))
	}

	seen := make(map[string]bool)
	for i := 0; i < len(lines); i += linesPerSample {
		sample, err := parseSampleBlock(lines[i:i+linesPerSample], out.Replicates)
		if err != nil {
			return nil, err
		}
		if seen[sample.Name] {
			return nil, fmt.Errorf("duplicate sample name %q", sample.Name)
		}
		seen[sample.Name] = true

		out.Samples = append(out.Samples, sample)
	}

	return out, nil
}

func parseSampleBlock(block []string, replicates int) (Sample, error) {
	m := sampleLine.FindStringSubmatch(block[0])
	if m == nil {
		return Sample{}, fmt.Errorf("failed to parse a sample name from line %q", block[0])
	}

	sample := Sample{Name: strings.TrimSpace(m[1])}

	counts := make(map[string]int)
	for _, line := range block[1:] {
		if line == "na" {
			// This replicate showed no cytopathic effect in any row.
			continue
		}

		seen := make(map[string]bool)
		for _, field := range strings.Split(line, ",") {
			row := strings.TrimSpace(field)
			if !validPlateRow(row) {
				return Sample{}, fmt.Errorf("sample %q: invalid plate row %q in line %q; valid rows are A to H", sample.Name, row, line)
			}
			if seen[row] {
				return Sample{}, fmt.Errorf("sample %q: plate row %s appears more than once in line %q", sample.Name, row, line)
			}
			seen[row] = true
			counts[row]++
		}
	}

	for i, row := range plateRowLabels {
		sample.Rows = append(sample.Rows, reedmuench.DilutionRow{
			Exponent: -i,
			Positive: counts[row],
			Total:    replicates,
		})
	}

	return sample, nil
}

func validPlateRow(row string) bool {
	for _, label := range plateRowLabels {
		if row == label {
			return true
		}
	}

	return false
}

// contentLines returns the trimmed non-blank, non-comment lines of r.
func contentLines(r io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
