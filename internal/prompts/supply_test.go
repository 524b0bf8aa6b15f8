package prompts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplyDrawsWithoutRepeatsThenRecycles(t *testing.T) {
	lib := NewLibrary(Pack{Key: "p", Title: "P", Prompts: []string{"a", "b", "c"}})
	supply := NewSeededSupply(lib, 42)
	used := map[string]struct{}{}
	for i := 0; i < 3; i++ {
		prompt, ok := supply.NextPrompt("p", used)
		require.True(t, ok)
		_, dup := used[prompt]
		assert.False(t, dup, "prompt %q repeated before exhaustion", prompt)
		used[prompt] = struct{}{}
	}
	prompt, ok := supply.NextPrompt("p", used)
	require.True(t, ok)
	assert.Contains(t, []string{"a", "b", "c"}, prompt)
}

func TestSupplyUnknownOrEmptyPack(t *testing.T) {
	lib := NewLibrary(Pack{Key: "empty", Title: "Empty"})
	supply := NewSeededSupply(lib, 1)
	_, ok := supply.NextPrompt("empty", nil)
	assert.False(t, ok)
	_, ok = supply.NextPrompt("missing", nil)
	assert.False(t, ok)
}

func TestDefaultLibraryHasFreeAndPaidPacks(t *testing.T) {
	lib, err := LoadLibrary(nil)
	require.NoError(t, err)
	classic, ok := lib.Pack("classic")
	require.True(t, ok)
	assert.True(t, classic.Free())
	movies, ok := lib.Pack("movies")
	require.True(t, ok)
	assert.False(t, movies.Free())

	keys := []string{}
	for _, pack := range lib.Packs() {
		keys = append(keys, pack.Key)
	}
	assert.Equal(t, []string{"classic", "movies", "travel"}, keys)
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.csv")
	data := "pack,pack_title,product_id,text\n" +
		"classic,Classic,,Fruits\n" +
		"movies, Movie Night ,listblitz.pack.movies, Movie villains \n" +
		"broken,row\n" +
		",Nope,,Missing pack\n" +
		"solo,,,Vegetables\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	records, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, Record{PackKey: "movies", PackTitle: "Movie Night", ProductID: "listblitz.pack.movies", Text: "Movie villains"}, records[1])
	assert.Equal(t, "solo", records[2].PackTitle)
}

func TestImportWithoutDatabase(t *testing.T) {
	n, err := Import(nil, []Record{{PackKey: "p", Text: "x"}})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
