package translation

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProvider upper-cases texts, failing the first failures calls.
type mockProvider struct {
	calls    atomic.Int32
	failures int32
	fatal    bool
}

func (m *mockProvider) Translate(_ context.Context, texts []string, _, _ string) ([]string, error) {
	n := m.calls.Add(1)
	if n <= m.failures {
		return nil, &ProviderError{Message: "transient", Retryable: !m.fatal}
	}

	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = strings.ToUpper(t)
	}
	return out, nil
}

func fastRetry() RetryConfig {
	return RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func TestTranslateManyOrderAndLength(t *testing.T) {
	tr := NewTranslator(&mockProvider{}, nil, fastRetry(), nil)

	got := tr.TranslateMany(context.Background(), []string{"a", "b", "c"}, "ru", "en", BatchOptions{BatchSize: 2})

	assert.Equal(t, []string{"A", "B", "C"}, got)
}

func TestTranslateManyRetriesTransientFailure(t *testing.T) {
	p := &mockProvider{failures: 1}
	tr := NewTranslator(p, nil, fastRetry(), nil)

	got := tr.TranslateMany(context.Background(), []string{"a"}, "ru", "en", BatchOptions{})

	assert.Equal(t, []string{"A"}, got)
	assert.GreaterOrEqual(t, p.calls.Load(), int32(2))
}

func TestTranslateManyFallsBackToOriginals(t *testing.T) {
	p := &mockProvider{failures: 100, fatal: true}
	tr := NewTranslator(p, nil, fastRetry(), nil)

	got := tr.TranslateMany(context.Background(), []string{"привет", "мир"}, "ru", "en", BatchOptions{})

	assert.Equal(t, []string{"привет", "мир"}, got, "exhausted batches keep the original texts")
}

type memCache struct {
	data map[string]string
}

func (c *memCache) Get(_ context.Context, text, from, to string) (string, bool) {
	v, ok := c.data[from+to+text]
	return v, ok
}

func (c *memCache) Set(_ context.Context, text, translated, from, to string) error {
	c.data[from+to+text] = translated
	return nil
}

func TestTranslateManyUsesCache(t *testing.T) {
	cache := &memCache{data: map[string]string{"ruen" + "привет": "hello"}}
	p := &mockProvider{}
	tr := NewTranslator(p, nil, fastRetry(), cache)

	got := tr.TranslateMany(context.Background(), []string{"привет", "мир"}, "ru", "en", BatchOptions{})

	assert.Equal(t, "hello", got[0], "cache hit bypasses the provider")
	assert.Equal(t, "МИР", got[1])
	assert.Equal(t, "МИР", cache.data["ruen"+"мир"], "new translations are cached")
	assert.Equal(t, int32(1), p.calls.Load())
}

// placeholderEcho returns texts unchanged so masking is observable.
type placeholderEcho struct {
	seen []string
}

func (p *placeholderEcho) Translate(_ context.Context, texts []string, _, _ string) ([]string, error) {
	p.seen = append(p.seen, texts...)
	return texts, nil
}

func TestTranslateManyProtectsPlaceholders(t *testing.T) {
	p := &placeholderEcho{}
	tr := NewTranslator(p, nil, fastRetry(), nil)

	got := tr.TranslateMany(context.Background(), []string{"Привет, {{name}}!"}, "ru", "en", BatchOptions{})

	require.Len(t, p.seen, 1)
	assert.NotContains(t, p.seen[0], "{{name}}", "provider must never see raw placeholders")
	assert.Equal(t, "Привет, {{name}}!", got[0], "placeholders are restored afterwards")
}

func TestProtectRestoreRoundTrip(t *testing.T) {
	masked, mappings := Protect("У {{name}} есть {{count}} писем")

	assert.NotContains(t, masked, "{{")
	require.Len(t, mappings, 2)
	assert.Equal(t, "{{name}}", mappings[0].Original)
	assert.Equal(t, "{{count}}", mappings[1].Original)

	assert.Equal(t, "У {{name}} есть {{count}} писем", Restore(masked, mappings))
}

func TestProtectNoPlaceholders(t *testing.T) {
	masked, mappings := Protect("Привет мир")

	assert.Equal(t, "Привет мир", masked)
	assert.Empty(t, mappings)
}

func TestWithRetryStopsOnNonRetryable(t *testing.T) {
	calls := 0
	_, err := withRetry(context.Background(), fastRetry(), func() (int, error) {
		calls++
		return 0, &ProviderError{Message: "bad request"}
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := withRetry(ctx, fastRetry(), func() (int, error) {
		return 0, errors.New("never retried")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRateLimiterBurstThenBlocks(t *testing.T) {
	rl := NewRateLimiter(60)

	for i := 0; i < 60; i++ {
		require.True(t, rl.TryAcquire(), "burst token %d", i)
	}
	assert.False(t, rl.TryAcquire(), "bucket must be empty after the burst")
}

func TestRateLimiterWaitCancelled(t *testing.T) {
	rl := NewRateLimiter(1)
	require.True(t, rl.TryAcquire())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, rl.Wait(ctx), context.DeadlineExceeded)
}

func TestSplitBatchResponse(t *testing.T) {
	got := splitBatchResponse("one ||| two", []string{"раз", "два", "три"})

	assert.Equal(t, []string{"one", "two", "три"}, got)
}
