package country

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/unicode/norm"
)

var (
	reNonAlnum   = regexp.MustCompile(`[^a-z0-9\s]+`)
	reMultiSpace = regexp.MustCompile(`\s+`)
)

// normalized name -> canonical target, for keys and targets alike
var suggestIndex, suggestNames = buildSuggestIndex()

func buildSuggestIndex() (map[string]string, []string) {
	idx := make(map[string]string, len(canonical)*2)
	add := func(name, target string) {
		n := normalizeName(name)
		if n == "" {
			return
		}
		if _, ok := idx[n]; !ok {
			idx[n] = target
		}
	}
	for variant, target := range canonical {
		add(target, target)
		add(variant, target)
	}

	names := make([]string, 0, len(idx))
	for n := range idx {
		names = append(names, n)
	}
	sort.Strings(names)
	return idx, names
}

// Suggest proposes a canonical name for a value the table does not map,
// e.g. "viet nam" or "Unted Kingdom". It is a diagnostic aid only: output
// values always come from Canonical.
func Suggest(s string) (string, bool) {
	if _, ok := canonical[s]; ok {
		return "", false
	}
	pat := normalizeName(s)
	if pat == "" {
		return "", false
	}
	if target, ok := suggestIndex[pat]; ok {
		if target == s {
			return "", false
		}
		return target, true
	}

	thr := distanceThreshold(len(pat))
	candidates := filterCandidates(suggestNames, pat, thr)
	if len(candidates) == 0 {
		return "", false
	}

	ranks := fuzzy.RankFind(pat, candidates)
	if len(ranks) == 0 {
		// also accept names the pattern contains, e.g. "south koreaa"
		for _, c := range candidates {
			if fuzzy.Match(c, pat) {
				ranks = append(ranks, fuzzy.Rank{Source: c, Target: c, Distance: fuzzy.LevenshteinDistance(c, pat)})
			}
		}
	}
	if len(ranks) == 0 {
		return "", false
	}
	sort.Stable(ranks)
	if ranks[0].Distance > thr {
		return "", false
	}
	target := suggestIndex[ranks[0].Target]
	if target == s {
		return "", false
	}
	return target, true
}

func normalizeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	s = stripDiacritics(s)
	s = strings.ToLower(s)
	s = reNonAlnum.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// stripDiacritics removes combining marks after NFD decomposition.
func stripDiacritics(s string) string {
	decomp := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomp))
	for _, r := range decomp {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func distanceThreshold(n int) int {
	th := n / 5
	if th < 1 {
		return 1
	}
	if th > 3 {
		return 3
	}
	return th
}

// filterCandidates pre-filters by length window and first rune.
func filterCandidates(names []string, pattern string, threshold int) []string {
	firstRune := func(s string) rune {
		for _, r := range s {
			return r
		}
		return 0
	}
	fr := firstRune(pattern)

	out := make([]string, 0, len(names)/4)
	for _, n := range names {
		d := len(n) - len(pattern)
		if d < 0 {
			d = -d
		}
		if d > threshold || firstRune(n) != fr {
			continue
		}
		out = append(out, n)
	}
	return out
}
