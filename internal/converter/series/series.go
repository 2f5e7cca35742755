package series

import (
	"context"
	"strings"

	"github.com/Another0Noob/mediadata/internal/defaults"
	"github.com/Another0Noob/mediadata/internal/pylit"
	"github.com/Another0Noob/mediadata/internal/record"
	"github.com/Another0Noob/mediadata/internal/table"
)

const (
	TypeField = "type"
	KeepType  = "tv"
	Unknown   = "Unknown"
	NoTitle   = "Unknown Title"
	NoYear    = "Unknown Year"
)

type field struct {
	source string
	name   string
	policy defaults.Policy
}

// genres keeps parsed lists, tags parsed non-lists as unknown and wraps
// unparseable text as a single genre.
var genres = defaults.List{
	Parse: func(s string) ([]any, bool) {
		v, err := pylit.Parse(s)
		if err != nil {
			return nil, false
		}
		if l, ok := v.([]any); ok {
			return l, true
		}
		return []any{Unknown}, true
	},
	Fallback: func(c table.Cell) []any {
		if c.Present && c.Text != "" {
			return []any{c.Text}
		}
		return []any{Unknown}
	},
}

// fields lists the source column, output name and policy, in output order.
var fields = []field{
	{"title", "title", defaults.Text{Default: NoTitle}},
	{TypeField, "type", defaults.Text{}},
	{"genres", "genres", genres},
	{"releaseYear", "releaseYear", defaults.Text{Default: NoYear}},
	{"imdbAverageRating", "Rating", defaults.Float{Default: 0.0}},
	{"imdbNumVotes", "Votes", defaults.Count{Default: 0}},
}

// Fields returns the output field names in order.
func Fields() []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.name
	}
	return out
}

// Clean keeps TV rows only and renames their columns.
func Clean(ctx context.Context, t *table.Table, progress table.Progress) ([]*record.Record, error) {
	indexes := make([]int, len(fields))
	for i, f := range fields {
		if err := t.Require(f.source); err != nil {
			return nil, err
		}
		indexes[i] = t.Index(f.source)
	}
	typeIdx := t.Index(TypeField)

	var out []*record.Record
	err := t.Each(ctx, progress, func(row []string) error {
		if !IsTV(t.Cell(row, typeIdx)) {
			return nil
		}
		rec := record.New(len(fields))
		for i, f := range fields {
			rec.Set(f.name, f.policy.Apply(t.Cell(row, indexes[i])))
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// IsTV matches the type case-insensitively; a missing type never matches.
func IsTV(c table.Cell) bool {
	return c.Present && strings.ToLower(c.Text) == KeepType
}
