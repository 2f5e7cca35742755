package converter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Another0Noob/mediadata/internal/converter/anime"
	"github.com/Another0Noob/mediadata/internal/converter/manga"
	"github.com/Another0Noob/mediadata/internal/converter/movies"
	"github.com/Another0Noob/mediadata/internal/converter/series"
	"github.com/Another0Noob/mediadata/internal/csvsource"
	"github.com/Another0Noob/mediadata/internal/record"
	"github.com/Another0Noob/mediadata/internal/table"
)

var (
	ErrInputNotFound  = csvsource.ErrNotFound
	ErrMissingColumn  = table.ErrMissingColumn
	ErrUnknownDataset = errors.New("unknown dataset")
)

// CleanFunc turns a loaded table into output records.
type CleanFunc func(ctx context.Context, t *table.Table, progress table.Progress) ([]*record.Record, error)

// Converter describes one dataset pipeline.
type Converter struct {
	Name string
	// Default input and output paths, relative to the data directory.
	Input  string
	Output string
	// PandasNA reads the source like a dataframe loader: missing tokens are
	// absent cells and repeated headers get a ".N" suffix.
	PandasNA bool
	// ASCII escapes non-ASCII characters in the output.
	ASCII bool
	Clean CleanFunc
}

var converters = []Converter{
	{
		Name:   "movies",
		Input:  "public/data/movies.csv",
		Output: "public/data/movies_data.json",
		ASCII:  true,
		Clean:  movies.Clean,
	},
	{
		Name:     "anime",
		Input:    "src/data/anime.csv",
		Output:   "src/data/anime_data.json",
		PandasNA: true,
		Clean:    anime.Clean,
	},
	{
		Name:     "manga",
		Input:    "src/data/manga.csv",
		Output:   "src/data/manga_data.json",
		PandasNA: true,
		Clean:    manga.Clean,
	},
	{
		Name:     "series",
		Input:    "src/data/series.csv",
		Output:   "src/data/series_data.json",
		PandasNA: true,
		Clean:    series.Clean,
	},
}

// Lookup returns the converter registered under name.
func Lookup(name string) (Converter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range converters {
		if c.Name == name {
			return c, nil
		}
	}
	return Converter{}, fmt.Errorf("%w: %s (must be one of %s)", ErrUnknownDataset, name, strings.Join(Names(), ", "))
}

// Names lists the registered datasets in run order.
func Names() []string {
	out := make([]string, len(converters))
	for i, c := range converters {
		out[i] = c.Name
	}
	return out
}

// Job is one resolved conversion.
type Job struct {
	Input    string
	Output   string
	Encoding string
	Progress table.Progress
}

// Result summarizes a finished conversion.
type Result struct {
	Input   string
	Output  string
	Rows    int
	Records []*record.Record
}

// Run loads the input, cleans it and writes the output. Nothing is written
// unless every step succeeds.
func (c Converter) Run(ctx context.Context, job Job) (*Result, error) {
	if _, err := os.Stat(job.Input); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrInputNotFound, job.Input)
		}
		return nil, fmt.Errorf("stat input: %w", err)
	}

	t, err := csvsource.ReadFile(job.Input, csvsource.Options{
		Encoding:     job.Encoding,
		PandasNA:     c.PandasNA,
		DedupeHeader: c.PandasNA,
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.Name, err)
	}

	records, err := c.Clean(ctx, t, job.Progress)
	if err != nil {
		return nil, fmt.Errorf("clean %s: %w", c.Name, err)
	}

	data, err := record.Encode(records, record.Options{ASCII: c.ASCII})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.Name, err)
	}

	if err := record.WriteFile(job.Output, data); err != nil {
		return nil, fmt.Errorf("write %s: %w", c.Name, err)
	}

	return &Result{
		Input:   job.Input,
		Output:  job.Output,
		Rows:    len(t.Rows),
		Records: records,
	}, nil
}
