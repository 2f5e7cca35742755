package movies

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Another0Noob/mediadata/internal/record"
	"github.com/Another0Noob/mediadata/internal/table"
)

func clean(t *testing.T, header []string, rows ...[]string) []*record.Record {
	t.Helper()
	recs, err := Clean(context.Background(), table.New(header, rows, false), nil)
	require.NoError(t, err)
	return recs
}

func get(t *testing.T, r *record.Record, key string) any {
	t.Helper()
	v, ok := r.Get(key)
	require.True(t, ok, "missing key %q", key)
	return v
}

func TestClean_StripsTrailingSeparators(t *testing.T) {
	recs := clean(t,
		[]string{"title", " runtime,, ", "country"},
		[]string{" Heat ", "146.0,", "U.K."},
	)
	require.Len(t, recs, 1)
	r := recs[0]

	assert.Equal(t, []string{"title", "runtime", "country", CanonicalField}, r.Keys())
	assert.Equal(t, "Heat", get(t, r, "title"))
	assert.Equal(t, "146.0", get(t, r, "runtime"))
	assert.Equal(t, "U.K.", get(t, r, "country"))
	assert.Equal(t, "United Kingdom", get(t, r, CanonicalField))
}

func TestClean_DropsEmptyKeysAndOverflow(t *testing.T) {
	recs := clean(t,
		[]string{"title", "", "country"},
		[]string{"Heat", "junk", "France", "extra"},
	)
	assert.Equal(t, []string{"title", "country", CanonicalField}, recs[0].Keys())
	assert.Equal(t, "France", get(t, recs[0], CanonicalField))
}

func TestClean_ShortRowAndEmptyValues(t *testing.T) {
	recs := clean(t,
		[]string{"title", "budget", "country"},
		[]string{"Heat", "  "},
	)
	r := recs[0]
	assert.Equal(t, "", get(t, r, "budget"))
	assert.Nil(t, get(t, r, "country"))
	assert.Equal(t, "", get(t, r, CanonicalField))
}

func TestClean_ValuesStayText(t *testing.T) {
	recs := clean(t, []string{"year", "gross"}, []string{"1995", "187436818,,"})
	assert.Equal(t, "1995", get(t, recs[0], "year"))
	assert.Equal(t, "187436818", get(t, recs[0], "gross"))
	assert.Equal(t, "", get(t, recs[0], CanonicalField), "no country column")
}

func TestClean_CountryIsTrimmedBeforeLookup(t *testing.T) {
	recs := clean(t, []string{"country"}, []string{" USA ,"})
	assert.Equal(t, "USA ", get(t, recs[0], "country"))
	assert.Equal(t, "United States", get(t, recs[0], CanonicalField))
}

func TestClean_DuplicateCleanedKeys(t *testing.T) {
	recs := clean(t, []string{"runtime", "title", "runtime,"}, []string{"1", "Heat", "2"})
	assert.Equal(t, []string{"runtime", "title", CanonicalField}, recs[0].Keys())
	assert.Equal(t, "2", get(t, recs[0], "runtime"))
}

func TestCleanKeyValue(t *testing.T) {
	assert.Equal(t, "runtime", CleanKey("runtime,,"))
	assert.Equal(t, "a ", CleanKey(" a , "[:4]))
	assert.Equal(t, "", CleanValue(""))
	assert.Equal(t, "", CleanValue(","))
	assert.Equal(t, "146.0", CleanValue(" 146.0, "))
}

func TestUnmapped(t *testing.T) {
	recs := clean(t,
		[]string{"country"},
		[]string{"USA"},
		[]string{"United States"},
		[]string{"Holland"},
		[]string{"viet nam"},
		[]string{"Holland"},
		[]string{""},
	)
	assert.Equal(t, []string{"Holland", "viet nam"}, Unmapped(recs))
}
