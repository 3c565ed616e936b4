// Package cli wires the command surface of lokalize: scanning,
// extraction, validation, locale maintenance and machine translation.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"lokalize/internal/extract"
	"lokalize/internal/keygen"
	"lokalize/internal/locales"
	"lokalize/internal/match"
)

type rootFlags struct {
	localesPath string
	sourceLang  string
	category    string
	pattern     string
	lookup      string
	include     []string
	ignore      []string
	file        string
	workers     int
}

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "lokalize",
		Short: "i18n automation for JS/TS codebases",
		Long: `Finds hardcoded natural-language strings in JavaScript and TypeScript
sources, replaces them with translation lookup calls, and keeps locale
files in sync across languages.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.localesPath, "locales", "locales", "Locale files directory")
	pf.StringVar(&flags.sourceLang, "source-lang", "ru", "Source language code")
	pf.StringVar(&flags.category, "category", keygen.DefaultCategory, "Key prefix for newly extracted strings")
	pf.StringVar(&flags.pattern, "pattern", match.DefaultPattern, "Regexp a string must match to count as translatable")
	pf.StringVar(&flags.lookup, "lookup", "t", "Name of the translation lookup function")
	pf.StringSliceVar(&flags.include, "include", nil, "Base-name globs narrowing file discovery")
	pf.StringSliceVar(&flags.ignore, "ignore", nil, "Extra directory names to skip")
	pf.StringVar(&flags.file, "file", "", "Process a single file instead of walking the tree")
	pf.IntVar(&flags.workers, "workers", 0, "Parse worker count for validation")

	rootCmd.AddCommand(scanCmd(flags))
	rootCmd.AddCommand(extractCmd(flags))
	rootCmd.AddCommand(validateCmd(flags))
	rootCmd.AddCommand(syncCmd(flags))
	rootCmd.AddCommand(statsCmd(flags))
	rootCmd.AddCommand(translateCmd(flags))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func (f *rootFlags) options(mode extract.Mode, root string) extract.Options {
	return extract.Options{
		Mode:           mode,
		File:           f.file,
		Root:           root,
		Include:        f.include,
		Ignore:         f.ignore,
		LocalesPath:    f.localesPath,
		SourceLanguage: f.sourceLang,
		Category:       f.category,
		SourcePattern:  f.pattern,
		LookupName:     f.lookup,
		Workers:        f.workers,
	}
}

func scanCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [directory]",
		Short: "Report hardcoded strings without modifying anything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			opts := flags.options(extract.ModeReport, argOrDot(args))
			result, err := extract.Run(ctx, opts)
			if err != nil {
				return err
			}

			renderFound(cmd, result.Found)
			renderSummary(cmd, result.Summary)
			return nil
		},
	}
}

func extractCmd(flags *rootFlags) *cobra.Command {
	var dryRun, autoGetters bool

	cmd := &cobra.Command{
		Use:   "extract [directory]",
		Short: "Replace hardcoded strings with lookup calls and record keys",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			opts := flags.options(extract.ModeExtract, argOrDot(args))
			opts.DryRun = dryRun
			opts.AutoGetters = autoGetters

			result, err := extract.Run(ctx, opts)
			if err != nil {
				return err
			}

			renderFound(cmd, result.Found)
			renderSummary(cmd, result.Summary)

			if dryRun {
				log.Info().Int("keys", len(result.Draft)).Msg("Dry run, no files were written")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report planned changes without writing files")
	cmd.Flags().BoolVar(&autoGetters, "auto-getters", false, "Rewrite object literal values as lazy getter properties")

	return cmd
}

func validateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [directory]",
		Short: "Check that every lookup key resolves in the source locale",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			opts := flags.options(extract.ModeValidate, argOrDot(args))
			result, err := extract.Run(ctx, opts)
			if err != nil {
				return err
			}

			if len(result.Unresolved) == 0 {
				log.Info().Int("files", result.Summary.FilesProcessed).Msg("All lookup keys resolve")
				return nil
			}

			renderUnresolved(cmd, result.Unresolved)
			return fmt.Errorf("%d unresolved translation keys", len(result.Unresolved))
		},
	}
}

func syncCmd(flags *rootFlags) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Align every target locale file with the source language keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := locales.Sync(flags.localesPath, flags.sourceLang, dryRun)
			if err != nil {
				return err
			}

			renderSync(cmd, stats, dryRun)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report planned changes without writing files")

	return cmd
}

func statsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show translation coverage per language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := locales.Stats(flags.localesPath, flags.sourceLang)
			if err != nil {
				return err
			}

			renderStats(cmd, stats)
			return nil
		},
	}
}

func argOrDot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}
