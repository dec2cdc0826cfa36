package assayparser

import (
	"fmt"
	"io"
	"strings"

	"github.com/csimplestring/go-csv/detector"
)

// Layout describes how a delimited assay file is read. A zero Delimiter asks
// DetectDelimiter to choose one from the file contents.
type Layout struct {
	Delimiter rune
	Comment   rune
	Quote     rune
}

var Layouts = map[string]Layout{
	"TIDY": {Delimiter: 0, Comment: '#', Quote: '"'},
	"CSV":  {Delimiter: ',', Comment: '#', Quote: '"'},
	"TSV":  {Delimiter: '\t', Comment: '#', Quote: '"'},
}

// DetectDelimiter returns the layout's fixed delimiter, or, when the layout
// leaves the choice open, the single most likely delimiter rune judged from
// the reader's contents. Comma wins when nothing clearer emerges.
func (l Layout) DetectDelimiter(r io.Reader) rune {
	if l.Delimiter != 0 {
		return l.Delimiter
	}

	quote := l.Quote
	if quote == 0 {
		quote = '"'
	}

	candidates := detector.New().DetectDelimiter(r, byte(quote))
	if len(candidates) > 0 {
		return rune(candidates[0][0])
	}

	return ','
}

// LayoutByName looks up a named layout, listing the valid names on failure.
func LayoutByName(name string) (Layout, error) {
	l, exists := Layouts[name]
	if !exists {
		return Layout{}, fmt.Errorf("layout %s is not found. Valid layout names include: %s", name, LayoutNames())
	}

	return l, nil
}

func LayoutNames() string {
	b := strings.Builder{}
	i := 0
	for m := range Layouts {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(m)
		i++
	}

	return b.String()
}
