// Package locales loads, merges and persists translation JSON files laid
// out as localesPath/<language>/translation.json with nested key objects.
package locales

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileName is the translation file name inside each language directory.
const FileName = "translation.json"

// Table is a tree-shaped translation table: values are either strings or
// nested tables (decoded as map[string]any).
type Table map[string]any

// LanguageFile returns the translation file path for a language.
func LanguageFile(localesPath, lang string) string {
	return filepath.Join(localesPath, lang, FileName)
}

// Load reads a translation file. A missing file yields an empty table.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read translation file: %w", err)
	}

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse translation file %s: %w", path, err)
	}
	if table == nil {
		table = Table{}
	}

	return table, nil
}

// LoadLanguage loads the table for one language under localesPath.
func LoadLanguage(localesPath, lang string) (Table, error) {
	return Load(LanguageFile(localesPath, lang))
}

// Save writes a table as indented JSON with sorted keys (encoding/json
// sorts map keys), creating parent directories as needed.
func Save(path string, table Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create locales directory: %w", err)
	}

	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal translation table: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write translation file: %w", err)
	}

	return nil
}

// Resolve looks up a dotted key and returns its string value. The second
// result is false when the path is missing or the value is not a string.
func Resolve(table Table, dottedKey string) (string, bool) {
	parts := strings.Split(dottedKey, ".")

	var current any = map[string]any(table)
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return "", false
		}
		current, ok = m[part]
		if !ok {
			return "", false
		}
	}

	s, ok := current.(string)
	return s, ok
}

// Set stores a string value at a dotted key, creating intermediate objects.
// Existing non-object intermediates are overwritten.
func Set(table Table, dottedKey, value string) {
	parts := strings.Split(dottedKey, ".")

	current := map[string]any(table)
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[part] = next
		}
		current = next
	}

	current[parts[len(parts)-1]] = value
}

// CategoryTexts returns the shortKey -> text entries of a top-level
// category object, used to seed the key registry.
func CategoryTexts(table Table, category string) map[string]string {
	out := make(map[string]string)

	obj, ok := table[category].(map[string]any)
	if !ok {
		return out
	}

	for k, v := range obj {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}

	return out
}

// MergeDraft inserts every drafted full key into the table.
func MergeDraft(table Table, draft map[string]string) {
	for key, text := range draft {
		Set(table, key, text)
	}
}

// Flatten converts a table into dotted-key -> string form, sorted iteration
// left to the caller.
func Flatten(table Table) map[string]string {
	out := make(map[string]string)
	flattenInto(out, "", map[string]any(table))
	return out
}

func flattenInto(out map[string]string, prefix string, m map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]any:
			flattenInto(out, key, val)
		}
	}
}

// SortedKeys returns the dotted keys of a flattened table in order.
func SortedKeys(flat map[string]string) []string {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Languages lists the language directories under localesPath.
func Languages(localesPath string) ([]string, error) {
	entries, err := os.ReadDir(localesPath)
	if err != nil {
		return nil, fmt.Errorf("read locales directory: %w", err)
	}

	var langs []string
	for _, e := range entries {
		if e.IsDir() {
			langs = append(langs, e.Name())
		}
	}
	sort.Strings(langs)

	return langs, nil
}
