package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/Another0Noob/mediadata/internal/table"
)

// ErrNotFound is returned when the input file does not exist.
var ErrNotFound = errors.New("input file not found")

// Options describes how a source file is decoded.
type Options struct {
	// Encoding names the file's character set: "" or "utf-8" (BOM
	// tolerated), "latin1"/"iso-8859-1", or "windows-1252"/"cp1252".
	Encoding string
	// PandasNA makes dataframe-style missing tokens ("", "NaN", "N/A", ...)
	// absent cells.
	PandasNA bool
	// DedupeHeader renames repeated header names the way a dataframe loader
	// does: the second "genre" becomes "genre.1", the third "genre.2".
	DedupeHeader bool
}

// ReadFile loads the delimited file at path.
func ReadFile(path string, opts Options) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return Read(file, opts)
}

// Read loads delimited data from any io.Reader. The first record is the
// header; an empty input yields an empty table.
func Read(reader io.Reader, opts Options) (*table.Table, error) {
	dec, err := decoder(opts.Encoding)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(transform.NewReader(reader, dec))
	// ragged rows are handled per cell, quotes as leniently as spreadsheet exports need
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return table.New(nil, nil, opts.PandasNA), nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	if opts.DedupeHeader {
		header = dedupeHeader(header)
	}
	return table.New(header, records, opts.PandasNA), nil
}

func dedupeHeader(header []string) []string {
	out := make([]string, len(header))
	counts := make(map[string]int, len(header))
	for i, name := range header {
		n := counts[name]
		for n > 0 {
			// "a.1" may itself be taken, keep counting until a free name turns up
			counts[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
			n = counts[name]
		}
		out[i] = name
		counts[name] = n + 1
	}
	return out
}

func decoder(name string) (transform.Transformer, error) {
	var enc encoding.Encoding
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8", "utf-8-sig":
		enc = unicode.UTF8
	case "latin1", "latin-1", "iso-8859-1":
		enc = charmap.ISO8859_1
	case "windows-1252", "cp1252":
		enc = charmap.Windows1252
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	// a leading BOM is dropped whatever the declared encoding
	return unicode.BOMOverride(enc.NewDecoder()), nil
}
