// Package extract orchestrates one extraction run: file discovery, parsing,
// matching and exclusion, key generation, and source rewriting.
package extract

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"lokalize/internal/exclude"
	"lokalize/internal/filewalker"
	"lokalize/internal/keygen"
	"lokalize/internal/locales"
	"lokalize/internal/match"
	"lokalize/internal/syntax"
	"lokalize/internal/textutil"
	"lokalize/internal/validate"
	"lokalize/internal/worker"
)

// Mode selects what one invocation does. It never changes mid-run.
type Mode string

const (
	// ModeReport scans and lists found strings without writing anything.
	ModeReport Mode = "report"
	// ModeExtract scans, rewrites sources and persists new keys.
	ModeExtract Mode = "extract"
	// ModeValidate checks existing lookup calls against the translation table.
	ModeValidate Mode = "validate"
)

// Kind tags what sort of literal a found string came from.
type Kind string

const (
	KindLiteral  Kind = "literal"
	KindTemplate Kind = "template"
	KindMarkup   Kind = "markup"
)

// Options configures one run. The core performs no config discovery: every
// option arrives as plain input.
type Options struct {
	Mode           Mode
	DryRun         bool
	File           string   // scan a single file instead of walking Root
	Root           string   // directory to walk
	Include        []string // base-name globs narrowing discovery
	Ignore         []string // extra directory names to skip
	LocalesPath    string
	SourceLanguage string
	Category       string
	SourcePattern  string
	AutoGetters    bool
	LookupName     string
	DeniedCalls    []string
	DeniedAttrs    []string
	Workers        int // validate-mode parse parallelism
}

func (o *Options) withDefaults() {
	if o.Mode == "" {
		o.Mode = ModeReport
	}
	if o.Root == "" {
		o.Root = "."
	}
	if o.LocalesPath == "" {
		o.LocalesPath = "locales"
	}
	if o.SourceLanguage == "" {
		o.SourceLanguage = "ru"
	}
	if o.Category == "" {
		o.Category = keygen.DefaultCategory
	}
	if o.LookupName == "" {
		o.LookupName = "t"
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
}

// FoundString is one scan hit: the externally visible result record.
type FoundString struct {
	File           string
	Line           int
	Text           string
	Key            string
	Kind           Kind
	Interpolations []string
}

// Summary counts what one run processed.
type Summary struct {
	FilesProcessed int
	FilesModified  int
	FilesSkipped   int
	Warnings       int
}

// Result is the outcome of one run.
type Result struct {
	Found      []FoundString
	Unresolved []validate.Unresolved
	Draft      keygen.Draft
	Summary    Summary
}

// Run executes one extraction, report or validation run over the configured
// file set. Files are processed sequentially in lexicographic order so that
// collision suffixes stay reproducible across runs. Per-file parse and write
// failures are warnings; only invocation-level problems return an error.
func Run(ctx context.Context, opts Options) (*Result, error) {
	opts.withDefaults()

	if opts.Mode == ModeValidate {
		if _, err := os.Stat(opts.LocalesPath); err != nil {
			return nil, fmt.Errorf("locales directory: %w", err)
		}
	}

	table, err := locales.LoadLanguage(opts.LocalesPath, opts.SourceLanguage)
	if err != nil {
		return nil, err
	}

	files, err := targetFiles(opts)
	if err != nil {
		return nil, err
	}

	if opts.Mode == ModeValidate {
		return runValidate(ctx, opts, table, files)
	}

	matcher := match.New(opts.SourcePattern)
	excludeCfg := exclusionConfig(opts)

	registry := keygen.NewRegistry()
	registry.Seed(opts.Category, locales.CategoryTexts(table, opts.Category))
	draft := keygen.Draft{}

	result := &Result{Draft: draft}

	for _, path := range files {
		if ctx.Err() != nil {
			log.Warn().Msg("Run cancelled, stopping before remaining files")
			break
		}

		src, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("Cannot read file, skipping")
			result.Summary.FilesSkipped++
			continue
		}

		tree, err := syntax.Parse(ctx, src, path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("Cannot parse file, skipping")
			result.Summary.FilesSkipped++
			continue
		}

		scan := scanFile(tree, scanConfig{
			matcher:     matcher,
			exclusion:   excludeCfg,
			category:    opts.Category,
			lookupName:  opts.LookupName,
			autoGetters: opts.AutoGetters,
			registry:    registry,
			draft:       draft,
		})
		tree.Close()

		result.Found = append(result.Found, scan.found...)
		result.Summary.FilesProcessed++

		if opts.Mode == ModeExtract && !opts.DryRun && scan.plan.Len() > 0 {
			if err := os.WriteFile(path, scan.plan.Apply(src), 0644); err != nil {
				log.Warn().Err(err).Str("file", path).Msg("Cannot write rewritten file")
				result.Summary.Warnings++
				continue
			}
			result.Summary.FilesModified++
		}
	}

	if opts.Mode == ModeExtract && !opts.DryRun && len(draft) > 0 {
		locales.MergeDraft(table, draft)
		path := locales.LanguageFile(opts.LocalesPath, opts.SourceLanguage)
		if err := locales.Save(path, table); err != nil {
			log.Warn().Err(err).Str("file", path).Msg("Cannot persist translation file")
			result.Summary.Warnings++
		}
	}

	log.Info().
		Int("processed", result.Summary.FilesProcessed).
		Int("modified", result.Summary.FilesModified).
		Int("skipped", result.Summary.FilesSkipped).
		Int("found", len(result.Found)).
		Str("mode", string(opts.Mode)).
		Msg("Run complete")

	return result, nil
}

// runValidate parses files in parallel (no shared key state is touched) and
// reports unresolved lookup keys in file order.
func runValidate(ctx context.Context, opts Options, table locales.Table, files []string) (*Result, error) {
	result := &Result{}

	results := worker.Map(ctx, opts.Workers, files, func(ctx context.Context, path string) ([]validate.Unresolved, error) {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		tree, err := syntax.Parse(ctx, src, path)
		if err != nil {
			return nil, err
		}
		defer tree.Close()

		return validate.FindUnresolvedKeys(tree, table, opts.LookupName), nil
	})

	for _, r := range results {
		if r.Err != nil {
			if errors.Is(r.Err, syntax.ErrParse) {
				log.Warn().Err(r.Err).Msg("Cannot parse file, skipping")
			}
			result.Summary.FilesSkipped++
			continue
		}
		result.Summary.FilesProcessed++
		result.Unresolved = append(result.Unresolved, r.Value...)
	}

	log.Info().
		Int("processed", result.Summary.FilesProcessed).
		Int("unresolved", len(result.Unresolved)).
		Msg("Validation complete")

	return result, nil
}

// targetFiles resolves the file set: a single file when configured, else a
// sorted walk of the root.
func targetFiles(opts Options) ([]string, error) {
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return nil, fmt.Errorf("target file: %w", err)
		}
		return []string{opts.File}, nil
	}

	return filewalker.Walk(opts.Root, opts.Include, opts.Ignore)
}

func exclusionConfig(opts Options) exclude.Config {
	cfg := exclude.DefaultConfig(opts.LookupName)
	if len(opts.DeniedCalls) > 0 {
		cfg.DeniedCalls = opts.DeniedCalls
	}
	if len(opts.DeniedAttrs) > 0 {
		cfg.DeniedAttributes = opts.DeniedAttrs
	}
	return cfg
}

// logFound traces one accepted candidate.
func logFound(f FoundString) {
	log.Debug().
		Str("file", f.File).
		Int("line", f.Line).
		Str("key", f.Key).
		Str("kind", string(f.Kind)).
		Str("text", textutil.Truncate(f.Text, 60)).
		Msg("Found string")
}
