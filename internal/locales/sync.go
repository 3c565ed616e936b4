package locales

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// SyncStats summarizes the changes applied to one target language.
type SyncStats struct {
	Language string
	Added    int
	Removed  int
}

// Sync makes every target language file structurally identical to the
// source language: keys missing from a target are added with the source
// text as value, keys absent from the source are removed, and files are
// rewritten with sorted keys. Dry runs report changes without writing.
func Sync(localesPath, sourceLang string, dryRun bool) ([]SyncStats, error) {
	source, err := LoadLanguage(localesPath, sourceLang)
	if err != nil {
		return nil, err
	}
	sourceFlat := Flatten(source)

	langs, err := Languages(localesPath)
	if err != nil {
		return nil, err
	}

	var stats []SyncStats

	for _, lang := range langs {
		if lang == sourceLang {
			continue
		}

		target, err := LoadLanguage(localesPath, lang)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", lang, err)
		}
		targetFlat := Flatten(target)

		st := SyncStats{Language: lang}

		rebuilt := Table{}
		for _, key := range SortedKeys(sourceFlat) {
			if val, ok := targetFlat[key]; ok {
				Set(rebuilt, key, val)
			} else {
				Set(rebuilt, key, sourceFlat[key])
				st.Added++
			}
		}

		for key := range targetFlat {
			if _, ok := sourceFlat[key]; !ok {
				st.Removed++
			}
		}

		if !dryRun {
			if err := Save(LanguageFile(localesPath, lang), rebuilt); err != nil {
				return nil, fmt.Errorf("save %s: %w", lang, err)
			}
		}

		log.Info().
			Str("language", lang).
			Int("added", st.Added).
			Int("removed", st.Removed).
			Bool("dry_run", dryRun).
			Msg("Language synchronized")

		stats = append(stats, st)
	}

	return stats, nil
}

// LangStats holds per-language translation coverage numbers.
type LangStats struct {
	Language     string
	Keys         int
	Missing      int
	Untranslated int
}

// Stats computes coverage of every language against the source language.
// Untranslated counts entries whose value still equals the source text.
func Stats(localesPath, sourceLang string) ([]LangStats, error) {
	source, err := LoadLanguage(localesPath, sourceLang)
	if err != nil {
		return nil, err
	}
	sourceFlat := Flatten(source)

	langs, err := Languages(localesPath)
	if err != nil {
		return nil, err
	}

	var stats []LangStats

	for _, lang := range langs {
		table, err := LoadLanguage(localesPath, lang)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", lang, err)
		}
		flat := Flatten(table)

		st := LangStats{Language: lang, Keys: len(flat)}

		if lang != sourceLang {
			for key, srcText := range sourceFlat {
				val, ok := flat[key]
				if !ok {
					st.Missing++
					continue
				}
				if val == srcText {
					st.Untranslated++
				}
			}
		}

		stats = append(stats, st)
	}

	return stats, nil
}

// MissingTexts returns dotted keys that need translation in the target:
// entries missing entirely plus entries still equal to the source text.
// Values are the source texts to translate.
func MissingTexts(source, target Table) map[string]string {
	sourceFlat := Flatten(source)
	targetFlat := Flatten(target)

	out := make(map[string]string)
	for key, srcText := range sourceFlat {
		val, ok := targetFlat[key]
		if !ok || val == srcText {
			out[key] = srcText
		}
	}

	return out
}
