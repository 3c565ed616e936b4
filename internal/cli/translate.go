package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"lokalize/internal/cache"
	"lokalize/internal/config"
	"lokalize/internal/locales"
	"lokalize/internal/translation"
)

func translateCmd(flags *rootFlags) *cobra.Command {
	var toLangs []string

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Machine-translate missing locale entries into target languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			return runTranslate(ctx, flags, toLangs)
		},
	}

	cmd.Flags().StringSliceVar(&toLangs, "to", nil, "Target language codes")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runTranslate(ctx context.Context, flags *rootFlags, toLangs []string) error {
	cfg := config.Load()

	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	store := buildCache(ctx, cfg)

	translator := translation.NewTranslator(
		provider,
		translation.NewRateLimiter(cfg.RequestsPerMinute),
		translation.DefaultRetryConfig(),
		store,
	)

	batchOpts := translation.BatchOptions{
		BatchSize:   cfg.BatchSize,
		Concurrency: cfg.MaxConcurrentAPICalls,
	}

	source, err := locales.LoadLanguage(flags.localesPath, flags.sourceLang)
	if err != nil {
		return fmt.Errorf("load source locale: %w", err)
	}

	for _, lang := range toLangs {
		if lang == flags.sourceLang {
			continue
		}
		if err := translateLanguage(ctx, flags, translator, batchOpts, source, lang); err != nil {
			return err
		}
	}

	return nil
}

func translateLanguage(
	ctx context.Context,
	flags *rootFlags,
	translator *translation.Translator,
	batchOpts translation.BatchOptions,
	source locales.Table,
	lang string,
) error {
	target, err := locales.LoadLanguage(flags.localesPath, lang)
	if err != nil {
		return fmt.Errorf("load %s locale: %w", lang, err)
	}

	missing := locales.MissingTexts(source, target)
	if len(missing) == 0 {
		log.Info().Str("lang", lang).Msg("Nothing to translate")
		return nil
	}

	keys := make([]string, 0, len(missing))
	for k := range missing {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	texts := make([]string, len(keys))
	for i, k := range keys {
		texts[i] = missing[k]
	}

	log.Info().Str("lang", lang).Int("count", len(texts)).Msg("Translating missing entries")

	translated := translator.TranslateMany(ctx, texts, flags.sourceLang, lang, batchOpts)
	if err := ctx.Err(); err != nil {
		return err
	}

	for i, k := range keys {
		locales.Set(target, k, translated[i])
	}

	path := locales.LanguageFile(flags.localesPath, lang)
	if err := locales.Save(path, target); err != nil {
		return fmt.Errorf("save %s locale: %w", lang, err)
	}

	log.Info().Str("lang", lang).Int("count", len(keys)).Msg("Locale file updated")

	return nil
}

func buildProvider(cfg *config.Config) (translation.Provider, error) {
	switch cfg.Provider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
		return translation.NewGeminiProvider(cfg.GeminiAPIKey, cfg.TranslationModel), nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
		return translation.NewOpenAIProvider(translation.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.TranslationModel,
		}), nil
	default:
		return nil, fmt.Errorf("unknown translation provider %q", cfg.Provider)
	}
}

// buildCache returns a database-backed cache when DATABASE_URL is set and
// reachable, otherwise a memory-only cache.
func buildCache(ctx context.Context, cfg *config.Config) *cache.TranslationCache {
	if cfg.DatabaseURL == "" {
		return cache.New(nil, cfg.CacheTTL)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Warn().Err(err).Msg("Database unavailable, caching in memory only")
		return cache.New(nil, cfg.CacheTTL)
	}

	store := cache.New(pool, cfg.CacheTTL)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Warn().Err(err).Msg("Cache schema unavailable, caching in memory only")
		pool.Close()
		return cache.New(nil, cfg.CacheTTL)
	}

	if err := store.Preload(ctx); err != nil {
		log.Warn().Err(err).Msg("Cache preload failed")
	}

	return store
}
