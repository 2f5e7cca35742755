package anime

import (
	"context"

	"github.com/Another0Noob/mediadata/internal/defaults"
	"github.com/Another0Noob/mediadata/internal/record"
	"github.com/Another0Noob/mediadata/internal/table"
)

const (
	GenreField  = "genre"
	RatingField = "rating"
	TypeField   = "type"

	GenreSeparator = ", "
	UnknownType    = "Unknown"
)

// policies for the columns this converter rewrites; every other column
// keeps its inferred type with nulls for missing cells.
var policies = map[string]defaults.Policy{
	GenreField:  defaults.List{Parse: defaults.Split(GenreSeparator), Fallback: defaults.Empty},
	RatingField: defaults.Float{Default: 0.0},
	TypeField:   defaults.Text{Default: UnknownType},
}

// Clean keeps all source columns in order.
func Clean(ctx context.Context, t *table.Table, progress table.Progress) ([]*record.Record, error) {
	if err := t.Require(GenreField, RatingField, TypeField); err != nil {
		return nil, err
	}

	cols := columnPolicies(t)
	out := make([]*record.Record, 0, len(t.Rows))
	err := t.Each(ctx, progress, func(row []string) error {
		rec := record.New(len(cols))
		for _, c := range cols {
			rec.Set(c.name, c.policy.Apply(t.Cell(row, c.index)))
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type column struct {
	name   string
	index  int
	policy defaults.Policy
}

func columnPolicies(t *table.Table) []column {
	cols := make([]column, 0, len(t.Header))
	for i, name := range t.Header {
		if t.Index(name) != i {
			// duplicate header, the first one wins
			continue
		}
		p, ok := policies[name]
		if !ok {
			p = defaults.Null{Kind: t.Infer(i)}
		}
		cols = append(cols, column{name: name, index: i, policy: p})
	}
	return cols
}
