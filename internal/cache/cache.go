// Package cache provides in-memory + PostgreSQL-backed caching for machine
// translations. Entries are keyed by a content hash of (from, to, text) and
// expire after a fixed TTL.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"lokalize/internal/textutil"
)

// DefaultTTL is the cache entry lifetime when none is configured.
const DefaultTTL = 30 * 24 * time.Hour

const schemaSQL = `
CREATE TABLE IF NOT EXISTS translation_cache (
	hash        TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	translated  TEXT NOT NULL,
	expires_at  TIMESTAMPTZ NOT NULL
)`

type entry struct {
	value   string
	expires time.Time
}

// TranslationCache caches translations in memory with an optional
// PostgreSQL tier. A nil pool degrades to memory-only caching.
type TranslationCache struct {
	pool *pgxpool.Pool
	ttl  time.Duration

	mu     sync.RWMutex
	memory map[string]entry
}

// New creates a cache. pool may be nil.
func New(pool *pgxpool.Pool, ttl time.Duration) *TranslationCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TranslationCache{
		pool:   pool,
		ttl:    ttl,
		memory: make(map[string]entry),
	}
}

// EnsureSchema creates the cache table when a database tier is configured.
func (c *TranslationCache) EnsureSchema(ctx context.Context) error {
	if c.pool == nil {
		return nil
	}
	if _, err := c.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure cache schema: %w", err)
	}
	return nil
}

// Get retrieves a cached translation. Expired entries are treated as
// missing.
func (c *TranslationCache) Get(ctx context.Context, text, from, to string) (string, bool) {
	hash := textutil.CacheKey(from, to, text)
	now := time.Now()

	c.mu.RLock()
	if e, ok := c.memory[hash]; ok && now.Before(e.expires) {
		c.mu.RUnlock()
		return e.value, true
	}
	c.mu.RUnlock()

	if c.pool == nil {
		return "", false
	}

	var translated string
	err := c.pool.QueryRow(ctx,
		`SELECT translated FROM translation_cache WHERE hash = $1 AND expires_at > now()`,
		hash,
	).Scan(&translated)
	if err != nil {
		return "", false
	}

	c.mu.Lock()
	c.memory[hash] = entry{value: translated, expires: now.Add(c.ttl)}
	c.mu.Unlock()

	return translated, true
}

// Set stores a translation in both tiers, refreshing its expiry.
func (c *TranslationCache) Set(ctx context.Context, text, translated, from, to string) error {
	hash := textutil.CacheKey(from, to, text)
	expires := time.Now().Add(c.ttl)

	c.mu.Lock()
	c.memory[hash] = entry{value: translated, expires: expires}
	c.mu.Unlock()

	if c.pool == nil {
		return nil
	}

	_, err := c.pool.Exec(ctx,
		`INSERT INTO translation_cache (hash, source, translated, expires_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (hash) DO UPDATE SET translated = $3, expires_at = $4`,
		hash, text, translated, expires,
	)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}

	return nil
}

// Preload loads all unexpired database entries into memory.
func (c *TranslationCache) Preload(ctx context.Context) error {
	if c.pool == nil {
		return nil
	}

	rows, err := c.pool.Query(ctx,
		`SELECT hash, translated, expires_at FROM translation_cache WHERE expires_at > now()`)
	if err != nil {
		return fmt.Errorf("preload cache: %w", err)
	}
	defer rows.Close()

	count := 0

	c.mu.Lock()
	defer c.mu.Unlock()

	for rows.Next() {
		var hash, translated string
		var expires time.Time
		if err := rows.Scan(&hash, &translated, &expires); err != nil {
			return fmt.Errorf("scan cache row: %w", err)
		}
		c.memory[hash] = entry{value: translated, expires: expires}
		count++
	}

	log.Info().Int("count", count).Msg("Preloaded translation cache")

	return rows.Err()
}
