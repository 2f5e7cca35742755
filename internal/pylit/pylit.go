// Package pylit parses the literal syntax that dataset exports use for
// list-valued columns, e.g. "['Action', 'Drama']" or "[1, 2]".
//
// Supported: quoted strings with backslash escapes (including \N{NAME}) and
// optional r/u prefix, adjacent string concatenation, integers, floats, True,
// False, None, list, tuple, dict and set displays, bare top-level tuples
// ("'a', 'b'"), unary +/- on numbers, and # comments.
package pylit

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Tuple is a parenthesized sequence.
type Tuple []any

// Set is a braced sequence without keys.
type Set []any

// Dict keeps items in source order.
type Dict []Item

type Item struct {
	Key   any
	Value any
}

// SyntaxError reports where parsing stopped.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("pylit: %s at offset %d", e.Msg, e.Offset)
}

var ErrEmpty = errors.New("pylit: empty input")

// Parse parses a single literal. Leading spaces and tabs are ignored;
// anything but whitespace after the literal is an error.
//
// Integers are returned as json.Number so arbitrarily large values survive;
// floats are float64.
func Parse(s string) (any, error) {
	s = strings.TrimLeft(s, " \t")
	if strings.TrimSpace(s) == "" {
		return nil, ErrEmpty
	}
	p := &parser{src: s}
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() == ',' {
		p.pos++
		rest, err := p.bareTuple()
		if err != nil {
			return nil, err
		}
		v = append(Tuple{v}, rest...)
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos])
	}
	return v, nil
}

// ParseList is the attempted parse used by cleaners: ok is true only when s
// holds a list display.
func ParseList(s string) ([]any, bool) {
	v, err := Parse(s)
	if err != nil {
		return nil, false
	}
	l, ok := v.([]any)
	return l, ok
}

// KeyString renders a dict key the way JSON object keys are written:
// strings as is, numbers in their literal form, booleans and None lower case.
func KeyString(k any) string {
	switch x := k.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		switch {
		case math.IsInf(x, 1):
			return "Infinity"
		case math.IsInf(x, -1):
			return "-Infinity"
		case math.IsNaN(x):
			return "NaN"
		}
		return FormatFloat(x)
	case bool:
		if x {
			return "true"
		}
		return "false"
	case nil:
		return "null"
	}
	return fmt.Sprint(k)
}

// FormatFloat renders a finite v the way a float literal is written back:
// 0.0, 8.5, 1e+16 or 1e-05.
func FormatFloat(v float64) string {
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			p.pos++
		case '#':
			for p.pos < len(p.src) && p.src[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) value() (any, error) {
	p.skipSpace()
	c := p.peek()
	switch {
	case c == 0:
		return nil, p.errorf("unexpected end of input")
	case c == '[':
		p.pos++
		items, err := p.sequence(']')
		if err != nil {
			return nil, err
		}
		return items, nil
	case c == '(':
		return p.tuple()
	case c == '{':
		return p.braced()
	case c == '\'' || c == '"':
		return p.stringLit()
	case c == '+' || c == '-':
		return p.signed()
	case c == '.' || isDigit(c):
		return p.number()
	case isIdentStart(c):
		return p.name()
	}
	return nil, p.errorf("unexpected %q", c)
}

// sequence reads comma separated values up to closer, allowing a trailing comma.
func (p *parser) sequence(closer byte) ([]any, error) {
	items := []any{}
	for {
		p.skipSpace()
		if p.peek() == closer {
			p.pos++
			return items, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case closer:
			p.pos++
			return items, nil
		default:
			return nil, p.errorf("expected ',' or %q", closer)
		}
	}
}

// bareTuple reads the values after the first comma of an unparenthesized
// tuple, up to the end of input.
func (p *parser) bareTuple() ([]any, error) {
	items := []any{}
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return items, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		p.skipSpace()
		if p.peek() != ',' {
			return items, nil
		}
		p.pos++
	}
}

func (p *parser) tuple() (any, error) {
	p.pos++
	p.skipSpace()
	if p.peek() == ')' {
		p.pos++
		return Tuple{}, nil
	}
	first, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	switch p.peek() {
	case ')':
		// parenthesized expression, not a tuple
		p.pos++
		return first, nil
	case ',':
		p.pos++
	default:
		return nil, p.errorf("expected ',' or ')'")
	}
	rest, err := p.sequence(')')
	if err != nil {
		return nil, err
	}
	return append(Tuple{first}, rest...), nil
}

func (p *parser) braced() (any, error) {
	p.pos++
	p.skipSpace()
	if p.peek() == '}' {
		p.pos++
		return Dict{}, nil
	}
	first, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() != ':' {
		switch p.peek() {
		case '}':
			p.pos++
			return Set{first}, nil
		case ',':
			p.pos++
		default:
			return nil, p.errorf("expected ',' or '}'")
		}
		rest, err := p.sequence('}')
		if err != nil {
			return nil, err
		}
		return append(Set{first}, rest...), nil
	}

	d := Dict{}
	key := first
	for {
		if err := checkHashable(key); err != nil {
			return nil, p.errorf("%v", err)
		}
		p.pos++ // ':'
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		d = d.set(key, v)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return d, nil
		default:
			return nil, p.errorf("expected ',' or '}'")
		}
		p.skipSpace()
		if p.peek() == '}' {
			p.pos++
			return d, nil
		}
		key, err = p.value()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ':' {
			return nil, p.errorf("expected ':'")
		}
	}
}

// set replaces an equal key in place, matching dict display semantics.
func (d Dict) set(k, v any) Dict {
	for i := range d {
		if d[i].Key == k {
			d[i].Value = v
			return d
		}
	}
	return append(d, Item{Key: k, Value: v})
}

func checkHashable(k any) error {
	switch k.(type) {
	case []any, Tuple, Dict, Set:
		return errors.New("unsupported dict key")
	}
	return nil
}

func (p *parser) signed() (any, error) {
	neg := p.peek() == '-'
	p.pos++
	p.skipSpace()
	if c := p.peek(); c != '.' && !isDigit(c) {
		return nil, p.errorf("expected number after sign")
	}
	v, err := p.number()
	if err != nil || !neg {
		return v, err
	}
	switch x := v.(type) {
	case json.Number:
		if x == "0" {
			return x, nil
		}
		return json.Number("-" + string(x)), nil
	case float64:
		return -x, nil
	}
	return v, nil
}

func (p *parser) number() (any, error) {
	start := p.pos
	if p.peek() == '0' && p.pos+1 < len(p.src) {
		switch p.src[p.pos+1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			return p.prefixedInt()
		}
	}

	isFloat := false
	p.digits()
	if p.peek() == '.' {
		isFloat = true
		p.pos++
		p.digits()
	}
	if c := p.peek(); c == 'e' || c == 'E' {
		save := p.pos
		p.pos++
		if c := p.peek(); c == '+' || c == '-' {
			p.pos++
		}
		if !isDigit(p.peek()) {
			p.pos = save
		} else {
			isFloat = true
			p.digits()
		}
	}
	if c := p.peek(); c == 'j' || c == 'J' || isIdentStart(c) {
		return nil, p.errorf("invalid number literal")
	}

	text := strings.ReplaceAll(p.src[start:p.pos], "_", "")
	if text == "." || text == "" {
		return nil, p.errorf("invalid number literal")
	}
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, p.errorf("invalid float %q", text)
		}
		return f, nil
	}
	if len(text) > 1 && text[0] == '0' && strings.Trim(text, "0") != "" {
		return nil, p.errorf("leading zeros in integer literal")
	}
	return normalizeInt(text, 10)
}

func (p *parser) prefixedInt() (any, error) {
	base := 16
	switch p.src[p.pos+1] {
	case 'o', 'O':
		base = 8
	case 'b', 'B':
		base = 2
	}
	p.pos += 2
	start := p.pos
	for p.pos < len(p.src) && (isHexDigit(p.src[p.pos]) || p.src[p.pos] == '_') {
		p.pos++
	}
	text := strings.ReplaceAll(p.src[start:p.pos], "_", "")
	if text == "" {
		return nil, p.errorf("invalid number literal")
	}
	return normalizeInt(text, base)
}

func normalizeInt(text string, base int) (any, error) {
	n, ok := new(big.Int).SetString(text, base)
	if !ok {
		return nil, &SyntaxError{Msg: fmt.Sprintf("invalid integer %q", text)}
	}
	return json.Number(n.String()), nil
}

func (p *parser) digits() {
	for p.pos < len(p.src) && (isDigit(p.src[p.pos]) || p.src[p.pos] == '_') {
		p.pos++
	}
}

func (p *parser) name() (any, error) {
	start := p.pos
	for p.pos < len(p.src) && isIdentPart(p.src[p.pos]) {
		p.pos++
	}
	word := p.src[start:p.pos]
	switch word {
	case "True":
		return true, nil
	case "False":
		return false, nil
	case "None":
		return nil, nil
	}
	if q := p.peek(); q == '\'' || q == '"' {
		switch strings.ToLower(word) {
		case "r", "u":
			p.pos = start
			return p.stringLit()
		}
	}
	p.pos = start
	return nil, p.errorf("name %q is not a literal", word)
}

// stringLit reads one or more adjacent string literals and joins them.
func (p *parser) stringLit() (any, error) {
	var b strings.Builder
	for {
		s, err := p.str()
		if err != nil {
			return nil, err
		}
		b.WriteString(s)
		save := p.pos
		p.skipSpace()
		c := p.peek()
		if c == '\'' || c == '"' {
			continue
		}
		if (c == 'r' || c == 'R' || c == 'u' || c == 'U') && p.pos+1 < len(p.src) {
			if q := p.src[p.pos+1]; q == '\'' || q == '"' {
				continue
			}
		}
		p.pos = save
		return b.String(), nil
	}
}

func (p *parser) str() (string, error) {
	raw := false
	switch p.peek() {
	case 'r', 'R':
		raw = true
		p.pos++
	case 'u', 'U':
		p.pos++
	}
	q := p.peek()
	if q != '\'' && q != '"' {
		return "", p.errorf("expected string")
	}
	triple := strings.HasPrefix(p.src[p.pos:], strings.Repeat(string(q), 3))
	if triple {
		p.pos += 3
	} else {
		p.pos++
	}

	var b strings.Builder
	for {
		if p.pos >= len(p.src) {
			return "", p.errorf("unterminated string")
		}
		c := p.src[p.pos]
		if c == q {
			if !triple {
				p.pos++
				return b.String(), nil
			}
			if strings.HasPrefix(p.src[p.pos:], strings.Repeat(string(q), 3)) {
				p.pos += 3
				return b.String(), nil
			}
		}
		if c == '\n' && !triple {
			return "", p.errorf("newline in string")
		}
		if c == '\\' && p.pos+1 < len(p.src) {
			if raw {
				b.WriteByte(c)
				b.WriteByte(p.src[p.pos+1])
				p.pos += 2
				continue
			}
			if err := p.escape(&b); err != nil {
				return "", err
			}
			continue
		}
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		b.WriteRune(r)
		p.pos += size
	}
}

func (p *parser) escape(b *strings.Builder) error {
	p.pos++ // backslash
	c := p.src[p.pos]
	p.pos++
	switch c {
	case '\n':
	case '\\', '\'', '"':
		b.WriteByte(c)
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'a':
		b.WriteByte('\a')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case 'x':
		return p.hexEscape(b, 2)
	case 'u':
		return p.hexEscape(b, 4)
	case 'U':
		return p.hexEscape(b, 8)
	case 'N':
		return p.namedEscape(b)
	case '0', '1', '2', '3', '4', '5', '6', '7':
		start := p.pos - 1
		for p.pos < len(p.src) && p.pos-start < 3 && p.src[p.pos] >= '0' && p.src[p.pos] <= '7' {
			p.pos++
		}
		n, _ := strconv.ParseUint(p.src[start:p.pos], 8, 32)
		b.WriteRune(rune(n))
	default:
		// unknown escapes keep the backslash and the character
		b.WriteByte('\\')
		p.pos--
	}
	return nil
}

func (p *parser) hexEscape(b *strings.Builder, n int) error {
	if p.pos+n > len(p.src) {
		return p.errorf("truncated escape")
	}
	v, err := strconv.ParseUint(p.src[p.pos:p.pos+n], 16, 32)
	if err != nil || v > utf8.MaxRune {
		return p.errorf("invalid escape")
	}
	p.pos += n
	b.WriteRune(rune(v))
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= utf8.RuneSelf
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }
