package converter

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const moviesCSV = "\ufefftitle,country,\"runtime,,\"\n" +
	"Heat,USA,\"170.0,\"\n" +
	"Amélie,France,122.0\n" +
	"Oldboy,S. Korea,\"120,,\"\n"

const animeCSV = `anime_id,name,genre,type,episodes,rating,members
32281,Kimi no Na wa.,"Drama, Romance",Movie,1,9.37,200630
5114,Fullmetal Alchemist,,,64,,793665
`

const mangaCSV = `manga_id,title,score,members,favorites,genres,theme
2,Berserk,9.47,600000,120000,"['Action', 'Drama']",['Gore']
13,One Piece,N/A,500000,,[],
`

const seriesCSV = `title,type,genres,releaseYear,imdbAverageRating,imdbNumVotes
Lost,tv,"['Drama', 'Mystery']",2004,8.3,612345
Heat,movie,['Crime'],1995,8.3,700000
,TV,Drama,,,
`

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, name, content string) (*Result, []byte) {
	t.Helper()
	dir := t.TempDir()
	c, err := Lookup(name)
	require.NoError(t, err)

	res, err := c.Run(context.Background(), Job{
		Input:  writeInput(t, dir, name+".csv", content),
		Output: filepath.Join(dir, "out", name+"_data.json"),
	})
	require.NoError(t, err)

	b, err := os.ReadFile(res.Output)
	require.NoError(t, err)
	return res, b
}

func keySets(t *testing.T, b []byte) [][]string {
	t.Helper()
	var recs []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &recs))
	out := make([][]string, len(recs))
	for i, r := range recs {
		for k := range r {
			out[i] = append(out[i], k)
		}
		sort.Strings(out[i])
	}
	return out
}

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"movies", "anime", "manga", "series"}, Names())

	c, err := Lookup(" Manga ")
	require.NoError(t, err)
	assert.Equal(t, "manga", c.Name)

	_, err = Lookup("books")
	assert.ErrorIs(t, err, ErrUnknownDataset)
}

func TestRun_Movies(t *testing.T) {
	res, b := run(t, "movies", moviesCSV)
	assert.Equal(t, 3, res.Rows)
	assert.Len(t, res.Records, 3)

	want := `[
    {
        "title": "Heat",
        "country": "USA",
        "runtime": "170.0",
        "plotly_country": "United States"
    },
    {
        "title": "Am\u00e9lie",
        "country": "France",
        "runtime": "122.0",
        "plotly_country": "France"
    },
    {
        "title": "Oldboy",
        "country": "S. Korea",
        "runtime": "120",
        "plotly_country": "South Korea"
    }
]`
	assert.Equal(t, want, string(b))
}

func TestRun_Anime(t *testing.T) {
	_, b := run(t, "anime", animeCSV)
	assert.JSONEq(t, `[
		{"anime_id": 32281, "name": "Kimi no Na wa.", "genre": ["Drama", "Romance"], "type": "Movie", "episodes": 1, "rating": 9.37, "members": 200630},
		{"anime_id": 5114, "name": "Fullmetal Alchemist", "genre": [], "type": "Unknown", "episodes": 64, "rating": 0.0, "members": 793665}
	]`, string(b))
	assert.Contains(t, string(b), `"rating": 0.0`)
}

func TestRun_AnimeRepeatedHeader(t *testing.T) {
	_, b := run(t, "anime", "name,genre,type,rating,genre\nA,Action,TV,8,Drama\n")
	assert.JSONEq(t, `[
		{"name": "A", "genre": ["Action"], "type": "TV", "rating": 8.0, "genre.1": "Drama"}
	]`, string(b))
}

func TestRun_Manga(t *testing.T) {
	_, b := run(t, "manga", mangaCSV)
	assert.JSONEq(t, `[
		{"manga_id": "2", "title": "Berserk", "score": 9.47, "members": 600000, "favorites": 120000.0, "genres": ["Action", "Drama"], "theme": ["Gore"]},
		{"manga_id": "13", "title": "One Piece", "score": 0.0, "members": 500000, "favorites": null, "genres": [], "theme": []}
	]`, string(b))
}

func TestRun_Series(t *testing.T) {
	_, b := run(t, "series", seriesCSV)
	assert.JSONEq(t, `[
		{"title": "Lost", "type": "tv", "genres": ["Drama", "Mystery"], "releaseYear": "2004", "Rating": 8.3, "Votes": 612345},
		{"title": "Unknown Title", "type": "TV", "genres": ["Drama"], "releaseYear": "Unknown Year", "Rating": 0.0, "Votes": 0}
	]`, string(b))
}

func TestRun_ExactKeySets(t *testing.T) {
	cases := map[string]struct {
		csv  string
		keys []string
	}{
		"anime":  {animeCSV, []string{"anime_id", "episodes", "genre", "members", "name", "rating", "type"}},
		"manga":  {mangaCSV, []string{"favorites", "genres", "manga_id", "members", "score", "theme", "title"}},
		"series": {seriesCSV, []string{"Rating", "Votes", "genres", "releaseYear", "title", "type"}},
		"movies": {moviesCSV, []string{"country", "plotly_country", "runtime", "title"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, b := run(t, name, tc.csv)
			for _, keys := range keySets(t, b) {
				assert.Equal(t, tc.keys, keys)
			}
		})
	}
}

func TestRun_Idempotent(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			c, err := Lookup(name)
			require.NoError(t, err)

			content := map[string]string{"movies": moviesCSV, "anime": animeCSV, "manga": mangaCSV, "series": seriesCSV}[name]
			job := Job{
				Input:  writeInput(t, dir, "in.csv", content),
				Output: filepath.Join(dir, "out.json"),
			}

			_, err = c.Run(context.Background(), job)
			require.NoError(t, err)
			first, err := os.ReadFile(job.Output)
			require.NoError(t, err)

			_, err = c.Run(context.Background(), job)
			require.NoError(t, err)
			second, err := os.ReadFile(job.Output)
			require.NoError(t, err)

			assert.Equal(t, first, second)
		})
	}
}

func TestRun_MissingInput(t *testing.T) {
	dir := t.TempDir()
	for _, name := range Names() {
		c, err := Lookup(name)
		require.NoError(t, err)

		out := filepath.Join(dir, name+".json")
		_, err = c.Run(context.Background(), Job{
			Input:  filepath.Join(dir, "nope.csv"),
			Output: out,
		})
		require.ErrorIs(t, err, ErrInputNotFound, name)
		assert.Contains(t, err.Error(), "input file not found at")
		assert.NoFileExists(t, out)
	}
}

func TestRun_MissingColumnWritesNothing(t *testing.T) {
	dir := t.TempDir()
	c, err := Lookup("series")
	require.NoError(t, err)

	out := filepath.Join(dir, "series.json")
	_, err = c.Run(context.Background(), Job{
		Input:  writeInput(t, dir, "series.csv", "title,type\nLost,TV\n"),
		Output: out,
	})
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.NoFileExists(t, out)
}

func TestRun_Progress(t *testing.T) {
	dir := t.TempDir()
	c, err := Lookup("anime")
	require.NoError(t, err)

	var last, total int
	_, err = c.Run(context.Background(), Job{
		Input:    writeInput(t, dir, "anime.csv", animeCSV),
		Output:   filepath.Join(dir, "anime.json"),
		Progress: func(d, n int) { last, total = d, n },
	})
	require.NoError(t, err)
	assert.Equal(t, 2, last)
	assert.Equal(t, 2, total)
}
