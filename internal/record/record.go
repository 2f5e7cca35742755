package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/Another0Noob/mediadata/internal/pylit"
)

// Record is a flat mapping that keeps keys in insertion order.
type Record struct {
	keys []string
	vals map[string]any
}

func New(capacity int) *Record {
	return &Record{
		keys: make([]string, 0, capacity),
		vals: make(map[string]any, capacity),
	}
}

// Set stores v under key. An existing key keeps its position.
func (r *Record) Set(key string, v any) {
	if _, ok := r.vals[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.vals[key] = v
}

func (r *Record) Get(key string) (any, bool) {
	v, ok := r.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r *Record) Len() int { return len(r.keys) }

func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := marshal(r.vals[k])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Float is a float64 that serializes the way the front end has always
// received numbers: shortest round-trip digits, always with a decimal point
// or exponent.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("unsupported float value %v", v)
	}
	return []byte(FormatFloat(v)), nil
}

// FormatFloat renders v as 0.0, 8.5, 1e+16 or 1e-05.
func FormatFloat(v float64) string {
	return pylit.FormatFloat(v)
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalize(v)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// normalize swaps bare float64 values, including those nested in parsed
// literals, for Float so every number in a record prints the same way.
func normalize(v any) any {
	switch x := v.(type) {
	case float64:
		return Float(x)
	case []any:
		return normalizeList(x)
	case pylit.Tuple:
		return normalizeList(x)
	case pylit.Set:
		return normalizeList(x)
	case pylit.Dict:
		d := New(len(x))
		for _, it := range x {
			d.Set(pylit.KeyString(it.Key), it.Value)
		}
		return d
	case []string:
		if x == nil {
			return []string{}
		}
		return x
	default:
		return v
	}
}

func normalizeList(x []any) []any {
	out := make([]any, len(x))
	for i, e := range x {
		out[i] = normalize(e)
	}
	return out
}
