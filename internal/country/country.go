// Package country maps alternate country spellings to the single name the
// front end's map layer understands.
package country

var canonical = map[string]string{
	// United States
	"USA":                      "United States",
	"U.S.A.":                   "United States",
	"US":                       "United States",
	"U.S.":                     "United States",
	"America":                  "United States",
	"United States of America": "United States",

	// United Kingdom
	"UK":            "United Kingdom",
	"U.K.":          "United Kingdom",
	"England":       "United Kingdom",
	"Scotland":      "United Kingdom",
	"Wales":         "United Kingdom",
	"Britain":       "United Kingdom",
	"Great Britain": "United Kingdom",

	"UAE":    "United Arab Emirates",
	"U.A.E.": "United Arab Emirates",

	"Korea":             "South Korea",
	"S. Korea":          "South Korea",
	"South Korea":       "South Korea",
	"Republic of Korea": "South Korea",

	"PRC":            "China",
	"P.R.C.":         "China",
	"Mainland China": "China",

	"Russian Federation": "Russia",
	"USSR":               "Russia",

	"N. Ireland":          "United Kingdom",
	"Republic of Ireland": "Ireland",

	"Czechia":                       "Czech Republic",
	"Ivory Coast":                   "Côte d’Ivoire",
	"Bolivia (Plurinational State)": "Bolivia",
	"Viet Nam":                      "Vietnam",
	"Republic of Viet Nam":          "Vietnam",
	"Vatican":                       "Vatican City",
	"Palestine":                     "Palestinian Territories",
	"Syria":                         "Syrian Arab Republic",
	"Macedonia":                     "North Macedonia",
	"Republic of Macedonia":         "North Macedonia",
}

// Canonical returns the canonical name for s, or s itself when the table
// has no entry. Matching is exact: no trimming, no case folding.
func Canonical(s string) string {
	if c, ok := canonical[s]; ok {
		return c
	}
	return s
}

// Lookup reports the canonical name for s and whether s is a known variant.
func Lookup(s string) (string, bool) {
	c, ok := canonical[s]
	return c, ok
}

// Variants returns a copy of the table.
func Variants() map[string]string {
	out := make(map[string]string, len(canonical))
	for k, v := range canonical {
		out[k] = v
	}
	return out
}

// IsCanonical reports whether s is one of the table's target names.
func IsCanonical(s string) bool {
	_, ok := targets[s]
	return ok
}

var targets = func() map[string]struct{} {
	m := make(map[string]struct{}, len(canonical))
	for _, t := range canonical {
		m[t] = struct{}{}
	}
	return m
}()
