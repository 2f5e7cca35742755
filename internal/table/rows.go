package table

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingColumn is returned when a converter's required column is not in
// the header.
var ErrMissingColumn = errors.New("missing column")

// Progress receives the number of rows processed so far and the total.
type Progress func(done, total int)

// Require fails with ErrMissingColumn naming the first absent column.
func (t *Table) Require(cols ...string) error {
	for _, c := range cols {
		if !t.Has(c) {
			return fmt.Errorf("%w %q", ErrMissingColumn, c)
		}
	}
	return nil
}

// Each calls fn for every row in order. It stops at the first error or when
// ctx is cancelled.
func (t *Table) Each(ctx context.Context, progress Progress, fn func(row []string) error) error {
	total := len(t.Rows)
	for i, row := range t.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		if progress != nil {
			progress(i+1, total)
		}
	}
	return nil
}
