package reedmuench

import "fmt"

// InvalidRowError indicates a dilution row whose well counts are impossible:
// more positive wells than tested wells, or a non-positive well total.
type InvalidRowError struct {
	Index    int
	Positive int
	Total    int
}

func (e InvalidRowError) Error() string {
	return fmt.Sprintf("dilution row %d is invalid: %d positive wells of %d total", e.Index, e.Positive, e.Total)
}

// InsufficientDataError indicates that too few dilution rows were supplied to
// locate a 50% endpoint.
type InsufficientDataError struct {
	Rows int
}

func (e InsufficientDataError) Error() string {
	return fmt.Sprintf("need at least 2 dilution rows, got %d", e.Rows)
}

// NonUniformDilutionError indicates that the exponent step between two
// consecutive rows differs from the step established by the first pair. The
// interpolation formula requires a constant geometric dilution ratio.
type NonUniformDilutionError struct {
	Index        int
	Step         int
	ExpectedStep int
}

func (e NonUniformDilutionError) Error() string {
	if e.Step == 0 {
		return fmt.Sprintf("rows %d and %d share the same dilution exponent", e.Index-1, e.Index)
	}
	return fmt.Sprintf("dilution step of %d between rows %d and %d, expected %d", e.Step, e.Index-1, e.Index, e.ExpectedStep)
}

// DegenerateDenominatorError indicates a cumulative row whose infected +
// uninfected total is zero. Table validation makes this unreachable; it is
// retained as an invariant check.
type DegenerateDenominatorError struct {
	Index int
}

func (e DegenerateDenominatorError) Error() string {
	return fmt.Sprintf("cumulative row %d has zero infected and uninfected wells", e.Index)
}

// NoEndpointBracketError indicates that no adjacent pair of rows straddles
// 50% infection: the endpoint lies outside the tested dilution range, and
// extrapolating beyond that range is not supported.
type NoEndpointBracketError struct {
	// AllAbove is true when every row is at or above 50% infected (endpoint
	// beyond the most dilute step) and false when even the most concentrated
	// row is below 50%.
	AllAbove bool
}

func (e NoEndpointBracketError) Error() string {
	if e.AllAbove {
		return "no dilution fell below 50% infected; endpoint lies beyond the most dilute step tested"
	}
	return "even the most concentrated dilution is below 50% infected; endpoint lies at or below the first step tested"
}

// ZeroSpreadError indicates a degenerate bracket whose two percentages are
// equal. A strict >=50/<50 bracket cannot produce this; retained as an
// invariant check.
type ZeroSpreadError struct {
	AboveIndex int
	Percent    float64
}

func (e ZeroSpreadError) Error() string {
	return fmt.Sprintf("rows %d and %d share the same cumulative infection of %.4f%%; cannot interpolate", e.AboveIndex, e.AboveIndex+1, e.Percent)
}
