package manga

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Another0Noob/mediadata/internal/record"
	"github.com/Another0Noob/mediadata/internal/table"
)

func get(t *testing.T, r *record.Record, key string) any {
	t.Helper()
	v, ok := r.Get(key)
	require.True(t, ok, "missing key %q", key)
	return v
}

func TestClean(t *testing.T) {
	header := []string{"manga_id", "title", "type", "score", "members", "favorites", "genres", "theme", "authors"}
	rows := [][]string{
		{"002", "Berserk", "Manga", "9.47", "600000", "120000", "['Action', 'Drama']", "['Gore']", "Miura"},
		{"13", "", "Manga", "N/A", "5", "", "[1, 2]", "", ""},
		{"", "Vagabond", "Manga", "8.9", "7", "3", "Action", "[broken", ""},
	}
	recs, err := Clean(context.Background(), table.New(header, rows, true), nil)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	want := []string{"manga_id", "title", "score", "members", "favorites", "genres", "theme"}
	for _, r := range recs {
		assert.Equal(t, want, r.Keys())
	}

	berserk := recs[0]
	assert.Equal(t, "002", get(t, berserk, IDField), "ids stay text")
	assert.Equal(t, record.Float(9.47), get(t, berserk, ScoreField))
	assert.Equal(t, int64(600000), get(t, berserk, "members"))
	assert.Equal(t, record.Float(120000), get(t, berserk, "favorites"), "gap in column widens to float")
	assert.Equal(t, []any{"Action", "Drama"}, get(t, berserk, "genres"))
	assert.Equal(t, []any{"Gore"}, get(t, berserk, ThemeField))

	second := recs[1]
	assert.Nil(t, get(t, second, "title"))
	assert.Equal(t, record.Float(0), get(t, second, ScoreField))
	assert.Nil(t, get(t, second, "favorites"))
	assert.Equal(t, []any{json.Number("1"), json.Number("2")}, get(t, second, "genres"))
	assert.Equal(t, []any{}, get(t, second, ThemeField))

	third := recs[2]
	assert.Nil(t, get(t, third, IDField))
	assert.Equal(t, []any{}, get(t, third, "genres"), "not list shaped")
	assert.Equal(t, []any{}, get(t, third, ThemeField), "malformed list")
}

func TestStringifiedList(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []any
	}{
		{"list", "['Action']", []any{"Action"}},
		{"bare tuple of lists", "['Action'], ['Gore']", []any{[]any{"Action"}, []any{"Gore"}}},
		{"trailing comment", "['Action'] # mal", []any{"Action"}},
		{"not a list", "('Action',)", []any{}},
		{"malformed", "[broken", []any{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stringifiedList.Apply(table.Cell{Text: tc.text, Present: true}))
		})
	}
}

func TestClean_NoTheme(t *testing.T) {
	header := []string{"manga_id", "title", "score", "members", "favorites", "genres"}
	recs, err := Clean(context.Background(), table.New(header, [][]string{{"1", "A", "7", "1", "1", "[]"}}, true), nil)
	require.NoError(t, err)

	assert.Equal(t, header, recs[0].Keys())
	_, ok := recs[0].Get(ThemeField)
	assert.False(t, ok)
}

func TestClean_MissingColumn(t *testing.T) {
	_, err := Clean(context.Background(), table.New([]string{"manga_id", "title"}, nil, true), nil)
	require.ErrorIs(t, err, table.ErrMissingColumn)
	assert.Contains(t, err.Error(), `"score"`)
}

func TestClean_SerializedNull(t *testing.T) {
	header := []string{"manga_id", "title", "score", "members", "favorites", "genres"}
	recs, err := Clean(context.Background(), table.New(header, [][]string{{"1", "", "", "", "", ""}}, true), nil)
	require.NoError(t, err)

	b, err := record.Encode(recs, record.Options{})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"manga_id":"1","title":null,"score":0.0,"members":null,"favorites":null,"genres":[]}]`, string(b))
}
