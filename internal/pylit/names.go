package pylit

import (
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/runenames"
)

const cjkPrefix = "CJK UNIFIED IDEOGRAPH-"

var (
	namesOnce sync.Once
	runeNames map[string]rune
)

// lookupName resolves a Unicode character name, ignoring case.
func lookupName(name string) (rune, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if hex, ok := strings.CutPrefix(name, cjkPrefix); ok {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || !unicode.Is(unicode.Ideographic, rune(v)) {
			return 0, false
		}
		return rune(v), true
	}

	namesOnce.Do(func() {
		runeNames = make(map[string]rune, 40000)
		for r := rune(0); r <= unicode.MaxRune; r++ {
			n := runenames.Name(r)
			if n == "" || strings.HasPrefix(n, "<") {
				// control codes and ranges such as <CJK Ideograph> have no usable name
				continue
			}
			if _, ok := runeNames[n]; !ok {
				runeNames[n] = r
			}
		}
	})
	r, ok := runeNames[name]
	return r, ok
}

// namedEscape reads the {NAME} part of a \N escape.
func (p *parser) namedEscape(b *strings.Builder) error {
	if p.peek() != '{' {
		return p.errorf(`malformed \N character escape`)
	}
	end := strings.IndexByte(p.src[p.pos:], '}')
	if end < 0 {
		return p.errorf(`malformed \N character escape`)
	}
	name := p.src[p.pos+1 : p.pos+end]
	r, ok := lookupName(name)
	if !ok || !utf8.ValidRune(r) {
		return p.errorf("unknown Unicode character name %q", name)
	}
	p.pos += end + 1
	b.WriteRune(r)
	return nil
}
