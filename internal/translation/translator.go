package translation

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"lokalize/internal/textutil"
	"lokalize/internal/worker"
)

// Cache is the persistent translation cache consumed by the translator.
type Cache interface {
	Get(ctx context.Context, text, from, to string) (string, bool)
	Set(ctx context.Context, text, translated, from, to string) error
}

// BatchOptions bounds one TranslateMany invocation.
type BatchOptions struct {
	BatchSize   int
	Concurrency int
}

func (o BatchOptions) withDefaults() BatchOptions {
	if o.BatchSize < 1 {
		o.BatchSize = 10
	}
	if o.Concurrency < 1 {
		o.Concurrency = 1
	}
	return o
}

// Translator drives a Provider with rate limiting, retries and caching.
type Translator struct {
	provider Provider
	limiter  *RateLimiter
	retry    RetryConfig
	cache    Cache
}

// NewTranslator assembles a translator. cache may be nil.
func NewTranslator(provider Provider, limiter *RateLimiter, retry RetryConfig, cache Cache) *Translator {
	return &Translator{
		provider: provider,
		limiter:  limiter,
		retry:    retry,
		cache:    cache,
	}
}

// TranslateMany translates texts from one language to another. The result
// always has the same length and order as the input and never fails for an
// individual text: entries whose batch ultimately errors keep the original
// text. Interpolation placeholders are masked around the provider call.
func (t *Translator) TranslateMany(ctx context.Context, texts []string, from, to string, opts BatchOptions) []string {
	opts = opts.withDefaults()

	results := make([]string, len(texts))
	copy(results, texts)

	var mu sync.Mutex

	// Resolve cache hits first, batch only the rest.
	var pending []int
	for i, text := range texts {
		if t.cache != nil {
			if cached, ok := t.cache.Get(ctx, text, from, to); ok {
				results[i] = cached
				continue
			}
		}
		pending = append(pending, i)
	}

	batches := worker.Batch(pending, opts.BatchSize)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for _, batch := range batches {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			t.translateBatch(gctx, batch, texts, results, &mu, from, to)
			return nil
		})
	}

	// Batches record their own failures; nothing to propagate.
	_ = g.Wait()

	return results
}

// translateBatch translates one batch of indices, leaving originals in
// place when the provider fails after all retries.
func (t *Translator) translateBatch(ctx context.Context, batch []int, texts, results []string, mu *sync.Mutex, from, to string) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return
		}
	}

	protected := make([]string, len(batch))
	mappings := make([][]Mapping, len(batch))
	for i, idx := range batch {
		protected[i], mappings[i] = Protect(texts[idx])
	}

	translated, err := withRetry(ctx, t.retry, func() ([]string, error) {
		return t.provider.Translate(ctx, protected, from, to)
	})
	if err != nil {
		log.Warn().Err(err).Int("size", len(batch)).Msg("Batch translation failed, keeping originals")
		return
	}

	for i, idx := range batch {
		if i >= len(translated) {
			break
		}

		restored := Restore(translated[i], mappings[i])

		mu.Lock()
		results[idx] = restored
		mu.Unlock()

		if t.cache != nil {
			if err := t.cache.Set(ctx, texts[idx], restored, from, to); err != nil {
				log.Warn().Err(err).Str("text", textutil.Truncate(texts[idx], 30)).Msg("Failed to cache translation")
			}
		}
	}
}
