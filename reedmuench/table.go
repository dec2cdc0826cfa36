package reedmuench

// DilutionRow is one observation at one dilution step: the signed power
// applied to the base dilution factor (for serial 10-fold dilutions -1, -2,
// -3, ...) and the number of wells showing cytopathic effect out of the
// number inoculated at that step.
type DilutionRow struct {
	Exponent int
	Positive int
	Total    int
}

// DilutionTable is an ordered series of dilution rows, most concentrated
// first, whose exponents advance by a constant step. It is constructed only
// through NewDilutionTable and is immutable afterward.
type DilutionTable struct {
	rows []DilutionRow
	step int
}

// NewDilutionTable validates the supplied rows and returns a table. Rows must
// be ordered most-concentrated to most-dilute, there must be at least two,
// every row must satisfy 0 <= Positive <= Total with Total > 0, and the
// exponent step between consecutive rows must be a nonzero constant.
func NewDilutionTable(rows []DilutionRow) (*DilutionTable, error) {
	if len(rows) < 2 {
		return nil, InsufficientDataError{Rows: len(rows)}
	}

	for i, row := range rows {
		if row.Total <= 0 || row.Positive < 0 || row.Positive > row.Total {
			return nil, InvalidRowError{Index: i, Positive: row.Positive, Total: row.Total}
		}
	}

	step := rows[1].Exponent - rows[0].Exponent
	if step == 0 {
		// Duplicate exponent; a zero step can never be the uniform step of a
		// geometric series.
		return nil, NonUniformDilutionError{Index: 1, Step: 0, ExpectedStep: step}
	}
	for i := 2; i < len(rows); i++ {
		if s := rows[i].Exponent - rows[i-1].Exponent; s != step {
			return nil, NonUniformDilutionError{Index: i, Step: s, ExpectedStep: step}
		}
	}

	stored := make([]DilutionRow, len(rows))
	copy(stored, rows)

	return &DilutionTable{rows: stored, step: step}, nil
}

// Len returns the number of dilution steps in the table.
func (t *DilutionTable) Len() int {
	return len(t.rows)
}

// Row returns the i-th row in stored order, most concentrated first.
func (t *DilutionTable) Row(i int) DilutionRow {
	return t.rows[i]
}

// Rows returns a copy of the rows in stored order.
func (t *DilutionTable) Rows() []DilutionRow {
	out := make([]DilutionRow, len(t.rows))
	copy(out, t.rows)

	return out
}

// Step returns the signed exponent difference between consecutive rows.
func (t *DilutionTable) Step() int {
	return t.step
}
