package locales

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLanguage(t *testing.T, localesPath, lang, content string) {
	t.Helper()

	dir := filepath.Join(localesPath, lang)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	table, err := Load(filepath.Join(t.TempDir(), "nope", FileName))

	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestResolve(t *testing.T) {
	table := Table{
		"extracted": map[string]any{
			"privet_mir": "Привет мир",
			"nested":     map[string]any{"deep": "глубоко"},
		},
		"count": float64(3),
	}

	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"extracted.privet_mir", "Привет мир", true},
		{"extracted.nested.deep", "глубоко", true},
		{"extracted.missing", "", false},
		{"missing.path", "", false},
		{"count", "", false},          // not a string
		{"extracted.nested", "", false}, // object, not a string
	}

	for _, tt := range tests {
		got, ok := Resolve(table, tt.key)
		assert.Equal(t, tt.ok, ok, tt.key)
		assert.Equal(t, tt.want, got, tt.key)
	}
}

func TestSetAndMergeDraft(t *testing.T) {
	table := Table{}
	MergeDraft(table, map[string]string{
		"extracted.privet_mir": "Привет мир",
		"extracted.poka":       "Пока",
	})

	got, ok := Resolve(table, "extracted.privet_mir")
	require.True(t, ok)
	assert.Equal(t, "Привет мир", got)

	texts := CategoryTexts(table, "extracted")
	assert.Len(t, texts, 2)
	assert.Equal(t, "Пока", texts["poka"])
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ru", FileName)
	table := Table{"extracted": map[string]any{"privet_mir": "Привет мир"}}

	require.NoError(t, Save(path, table))

	reloaded, err := Load(path)
	require.NoError(t, err)

	got, ok := Resolve(reloaded, "extracted.privet_mir")
	require.True(t, ok)
	assert.Equal(t, "Привет мир", got)
}

func TestFlatten(t *testing.T) {
	table := Table{
		"a": map[string]any{"b": "x", "c": map[string]any{"d": "y"}},
		"e": "z",
	}

	flat := Flatten(table)

	assert.Equal(t, map[string]string{"a.b": "x", "a.c.d": "y", "e": "z"}, flat)
	assert.Equal(t, []string{"a.b", "a.c.d", "e"}, SortedKeys(flat))
}

func TestSyncAddsAndRemoves(t *testing.T) {
	localesPath := t.TempDir()
	writeLanguage(t, localesPath, "ru", `{"extracted":{"a":"А","b":"Б"}}`)
	writeLanguage(t, localesPath, "en", `{"extracted":{"a":"A","stale":"old"}}`)

	stats, err := Sync(localesPath, "ru", false)
	require.NoError(t, err)

	require.Len(t, stats, 1)
	assert.Equal(t, "en", stats[0].Language)
	assert.Equal(t, 1, stats[0].Added)
	assert.Equal(t, 1, stats[0].Removed)

	en, err := LoadLanguage(localesPath, "en")
	require.NoError(t, err)

	val, ok := Resolve(en, "extracted.a")
	require.True(t, ok)
	assert.Equal(t, "A", val, "existing translations survive sync")

	val, ok = Resolve(en, "extracted.b")
	require.True(t, ok)
	assert.Equal(t, "Б", val, "missing keys are filled with source text")

	_, ok = Resolve(en, "extracted.stale")
	assert.False(t, ok, "keys absent from source are removed")
}

func TestSyncDryRunWritesNothing(t *testing.T) {
	localesPath := t.TempDir()
	writeLanguage(t, localesPath, "ru", `{"extracted":{"a":"А"}}`)
	writeLanguage(t, localesPath, "en", `{}`)

	before, err := os.ReadFile(LanguageFile(localesPath, "en"))
	require.NoError(t, err)

	stats, err := Sync(localesPath, "ru", true)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].Added)

	after, err := os.ReadFile(LanguageFile(localesPath, "en"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStats(t *testing.T) {
	localesPath := t.TempDir()
	writeLanguage(t, localesPath, "ru", `{"extracted":{"a":"А","b":"Б"}}`)
	writeLanguage(t, localesPath, "en", `{"extracted":{"a":"A","b":"Б"}}`)

	stats, err := Stats(localesPath, "ru")
	require.NoError(t, err)
	require.Len(t, stats, 2)

	byLang := map[string]LangStats{}
	for _, st := range stats {
		byLang[st.Language] = st
	}

	assert.Equal(t, 2, byLang["ru"].Keys)
	assert.Equal(t, 0, byLang["ru"].Missing)
	assert.Equal(t, 2, byLang["en"].Keys)
	assert.Equal(t, 0, byLang["en"].Missing)
	assert.Equal(t, 1, byLang["en"].Untranslated)
}

func TestMissingTexts(t *testing.T) {
	source := Table{"extracted": map[string]any{"a": "А", "b": "Б", "c": "В"}}
	target := Table{"extracted": map[string]any{"a": "A", "b": "Б"}}

	missing := MissingTexts(source, target)

	assert.Equal(t, map[string]string{"extracted.b": "Б", "extracted.c": "В"}, missing)
}
