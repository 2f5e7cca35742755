package movies

import (
	"context"
	"sort"
	"strings"

	"github.com/Another0Noob/mediadata/internal/country"
	"github.com/Another0Noob/mediadata/internal/record"
	"github.com/Another0Noob/mediadata/internal/table"
)

const (
	CountryField   = "country"
	CanonicalField = "plotly_country"
)

// Clean turns every row into a record keyed by the cleaned header. Values
// stay text; a short row leaves its missing fields null.
func Clean(ctx context.Context, t *table.Table, progress table.Progress) ([]*record.Record, error) {
	out := make([]*record.Record, 0, len(t.Rows))
	err := t.Each(ctx, progress, func(row []string) error {
		out = append(out, cleanRow(t, row))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func cleanRow(t *table.Table, row []string) *record.Record {
	rec := record.New(len(t.Header) + 1)
	for i, key := range t.Header {
		if key == "" {
			continue
		}
		c := t.Cell(row, i)
		rec.Set(CleanKey(key), cleanValue(c))
	}

	name := ""
	if v, ok := rec.Get(CountryField); ok {
		if s, ok := v.(string); ok {
			name = strings.TrimSpace(s)
		}
	}
	rec.Set(CanonicalField, country.Canonical(name))
	return rec
}

// CleanKey trims whitespace and then trailing separators left by malformed
// rows, e.g. "runtime,," -> "runtime".
func CleanKey(k string) string {
	return strings.TrimRight(strings.TrimSpace(k), ",")
}

// CleanValue applies the same cleanup to values; empty text stays empty.
func CleanValue(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return v
	}
	return strings.TrimRight(v, ",")
}

func cleanValue(c table.Cell) any {
	if !c.Present {
		return nil
	}
	return CleanValue(c.Text)
}

// Unmapped lists the distinct country values that are neither a known
// variant nor already canonical, sorted.
func Unmapped(records []*record.Record) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		v, _ := rec.Get(CountryField)
		s, _ := v.(string)
		s = strings.TrimSpace(s)
		if s == "" || country.IsCanonical(s) {
			continue
		}
		if _, ok := country.Lookup(s); ok {
			continue
		}
		seen[s] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
