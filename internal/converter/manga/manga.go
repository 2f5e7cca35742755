package manga

import (
	"context"
	"strings"

	"github.com/Another0Noob/mediadata/internal/defaults"
	"github.com/Another0Noob/mediadata/internal/pylit"
	"github.com/Another0Noob/mediadata/internal/record"
	"github.com/Another0Noob/mediadata/internal/table"
)

const (
	IDField    = "manga_id"
	ScoreField = "score"
	ThemeField = "theme"
)

// Columns is the fixed projection. ThemeField is appended when the source has it.
var Columns = []string{IDField, "title", ScoreField, "members", "favorites", "genres"}

// stringifiedList only attempts a parse when the text opens a list display.
// A bare tuple such as "['a'], ['b']" is kept as a sequence of its items.
var stringifiedList = defaults.List{
	Parse: func(s string) ([]any, bool) {
		if !strings.HasPrefix(s, "[") {
			return nil, false
		}
		v, err := pylit.Parse(s)
		if err != nil {
			return nil, false
		}
		switch x := v.(type) {
		case []any:
			return x, true
		case pylit.Tuple:
			return []any(x), true
		}
		return nil, false
	},
	Fallback: defaults.Empty,
}

// Clean projects each row onto Columns.
func Clean(ctx context.Context, t *table.Table, progress table.Progress) ([]*record.Record, error) {
	if err := t.Require(Columns...); err != nil {
		return nil, err
	}

	names := append([]string(nil), Columns...)
	if t.Has(ThemeField) {
		names = append(names, ThemeField)
	}

	policies := make([]defaults.Policy, len(names))
	indexes := make([]int, len(names))
	for i, name := range names {
		indexes[i] = t.Index(name)
		switch name {
		case IDField:
			policies[i] = defaults.Null{Kind: table.KindText}
		case ScoreField:
			policies[i] = defaults.Float{Default: 0.0}
		case "genres", ThemeField:
			policies[i] = stringifiedList
		default:
			policies[i] = defaults.Null{Kind: t.Infer(indexes[i])}
		}
	}

	out := make([]*record.Record, 0, len(t.Rows))
	err := t.Each(ctx, progress, func(row []string) error {
		rec := record.New(len(names))
		for i, name := range names {
			rec.Set(name, policies[i].Apply(t.Cell(row, indexes[i])))
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
