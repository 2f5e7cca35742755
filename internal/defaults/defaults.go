// Package defaults holds the named policies that turn a raw cell into an
// output value, substituting a sentinel when the cell is absent or invalid.
package defaults

import (
	"math"
	"strings"

	"github.com/Another0Noob/mediadata/internal/record"
	"github.com/Another0Noob/mediadata/internal/table"
)

// Policy converts one cell.
type Policy interface {
	Apply(c table.Cell) any
}

// Float is the numeric-default for real numbers.
type Float struct {
	Default float64
}

func (p Float) Apply(c table.Cell) any {
	if !c.Present {
		return record.Float(p.Default)
	}
	f, ok := table.ParseFloat(c.Text)
	if !ok {
		return record.Float(p.Default)
	}
	return record.Float(f)
}

// Count is the numeric-default for counts: integral values are written as
// integers, fractional ones keep their fraction.
type Count struct {
	Default int64
}

func (p Count) Apply(c table.Cell) any {
	if !c.Present {
		return p.Default
	}
	f, ok := table.ParseFloat(c.Text)
	if !ok {
		return p.Default
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f)
	}
	return record.Float(f)
}

// Text is the text-default: absent cells become Default, present ones keep
// their text verbatim.
type Text struct {
	Default string
}

func (p Text) Apply(c table.Cell) any {
	if !c.Present {
		return p.Default
	}
	return c.Text
}

// Null is the null-default: absent cells become JSON null and present ones
// follow the column's inferred kind.
type Null struct {
	Kind table.Kind
}

func (p Null) Apply(c table.Cell) any {
	if !c.Present {
		return nil
	}
	v := table.Value(c, p.Kind)
	if f, ok := v.(float64); ok {
		return record.Float(f)
	}
	return v
}

// List is the list-default. Parse attempts the conversion; when it fails
// Fallback chooses the value from the raw cell.
type List struct {
	Parse    func(s string) ([]any, bool)
	Fallback func(c table.Cell) []any
}

func (p List) Apply(c table.Cell) any {
	if c.Present && p.Parse != nil {
		if l, ok := p.Parse(c.Text); ok {
			return l
		}
	}
	if p.Fallback == nil {
		return []any{}
	}
	return p.Fallback(c)
}

// Empty is a list fallback that always yields [].
func Empty(table.Cell) []any { return []any{} }

// Split returns a list parser that splits on sep.
func Split(sep string) func(string) ([]any, bool) {
	return func(s string) ([]any, bool) {
		parts := strings.Split(s, sep)
		out := make([]any, len(parts))
		for i, part := range parts {
			out[i] = part
		}
		return out, true
	}
}
