package table

import (
	"strconv"
	"strings"
)

// Cell is one field of a source row. Present is false when the column is
// missing, the row is short, or the text is a missing-value token.
type Cell struct {
	Text    string
	Present bool
}

// Absent is the zero Cell.
var Absent = Cell{}

// Table is a header-aware view of a delimited file.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
	// naTokens decides which present texts count as missing.
	naTokens map[string]struct{}
}

// New builds a table. When pandasNA is set the dataframe-style missing
// tokens ("", "NaN", "N/A", ...) make a cell absent; otherwise only short rows do.
func New(header []string, rows [][]string, pandasNA bool) *Table {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		// first occurrence wins, like a dataframe column lookup
		if _, ok := idx[h]; !ok {
			idx[h] = i
		}
	}
	t := &Table{Header: header, Rows: rows, index: idx}
	if pandasNA {
		t.naTokens = naTokens
	}
	return t
}

// Has reports whether the header names col.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Index returns the position of col in the header, or -1.
func (t *Table) Index(col string) int {
	if i, ok := t.index[col]; ok {
		return i
	}
	return -1
}

// Cell returns the cell at column idx of row.
func (t *Table) Cell(row []string, idx int) Cell {
	if idx < 0 || idx >= len(row) {
		return Absent
	}
	s := row[idx]
	if t.naTokens != nil {
		if _, na := t.naTokens[s]; na {
			return Absent
		}
	}
	return Cell{Text: s, Present: true}
}

// Get returns the named cell of row.
func (t *Table) Get(row []string, col string) Cell {
	return t.Cell(row, t.Index(col))
}

// Kind is the inferred type of a column.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "text"
	}
}

// Infer returns the kind of column idx across all rows.
// Integer columns with any absent cell widen to float.
func (t *Table) Infer(idx int) Kind {
	var (
		seen     bool
		missing  bool
		allInt   = true
		allFloat = true
		allBool  = true
	)
	for _, row := range t.Rows {
		c := t.Cell(row, idx)
		if !c.Present {
			missing = true
			continue
		}
		seen = true
		s := strings.TrimSpace(c.Text)
		if allInt {
			if _, err := strconv.ParseInt(s, 10, 64); err != nil {
				allInt = false
			}
		}
		if allFloat {
			if _, ok := ParseFloat(s); !ok {
				allFloat = false
			}
		}
		if allBool {
			if _, ok := parseBool(s); !ok {
				allBool = false
			}
		}
		if !allInt && !allFloat && !allBool {
			return KindText
		}
	}
	switch {
	case !seen:
		return KindFloat
	case allInt && missing:
		return KindFloat
	case allInt:
		return KindInt
	case allFloat:
		return KindFloat
	case allBool:
		return KindBool
	}
	return KindText
}

// Value converts a present cell to the Go value for kind k.
func Value(c Cell, k Kind) any {
	s := strings.TrimSpace(c.Text)
	switch k {
	case KindInt:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	case KindFloat:
		if f, ok := ParseFloat(s); ok {
			return f
		}
	case KindBool:
		if b, ok := parseBool(s); ok {
			return b
		}
	}
	return c.Text
}

// ParseFloat parses decimal and exponent notation. Hex floats, infinities
// and NaN are rejected.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "xXnN_") {
		// rules out hex, inf and nan spellings
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "True", "TRUE", "true":
		return true, true
	case "False", "FALSE", "false":
		return false, true
	}
	return false, false
}

var naTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}
