// Folio - Social Reading Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/recommend"
)

// genreCacheName labels the cache in metrics.
const genreCacheName = "genres"

// GenreSource is the uncached lookup behind a GenreCache.
type GenreSource interface {
	recommend.GenreLookup
	ListGenres(ctx context.Context) ([]recommend.Genre, error)
}

// genreEntry is a cached lookup result. found=false remembers a name that
// matched no genre so repeated misses do not hit the database.
type genreEntry struct {
	genre recommend.Genre
	found bool
}

// GenreCache is a recommend.GenreLookup backed by an expirable LRU keyed by
// lower-cased genre name and slug. It is safe for concurrent use.
type GenreCache struct {
	source GenreSource
	cache  *expirable.LRU[string, genreEntry]
}

var _ recommend.GenreLookup = (*GenreCache)(nil)

// NewGenreCache wraps source with a cache of at most size entries that
// expire after ttl.
func NewGenreCache(source GenreSource, size int, ttl time.Duration) *GenreCache {
	if size <= 0 {
		size = 512
	}
	return &GenreCache{
		source: source,
		cache:  expirable.NewLRU[string, genreEntry](size, nil, ttl),
	}
}

// ResolveGenres implements recommend.GenreLookup. Results follow the order of
// names, each genre at most once.
func (c *GenreCache) ResolveGenres(ctx context.Context, names []string) ([]recommend.Genre, error) {
	keys := make([]string, 0, len(names))
	var missing []string
	for _, n := range names {
		key := genreKey(n)
		if key == "" {
			continue
		}
		keys = append(keys, key)
		if _, ok := c.cache.Get(key); ok {
			metrics.RecordCacheLookup(genreCacheName, true)
			continue
		}
		metrics.RecordCacheLookup(genreCacheName, false)
		missing = append(missing, key)
	}

	if len(missing) > 0 {
		resolved, err := c.source.ResolveGenres(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, key := range missing {
			c.cache.Add(key, lookupEntry(key, resolved))
		}
		c.recordSize()
	}

	out := make([]recommend.Genre, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		entry, ok := c.cache.Get(key)
		if !ok {
			// evicted between fill and read; the source is authoritative
			resolved, err := c.source.ResolveGenres(ctx, []string{key})
			if err != nil {
				return nil, err
			}
			entry = lookupEntry(key, resolved)
		}
		if !entry.found {
			continue
		}
		if _, dup := seen[entry.genre.ID]; dup {
			continue
		}
		seen[entry.genre.ID] = struct{}{}
		out = append(out, entry.genre)
	}
	return out, nil
}

// Warm loads every genre into the cache and returns how many were loaded.
func (c *GenreCache) Warm(ctx context.Context) (int, error) {
	genres, err := c.source.ListGenres(ctx)
	if err != nil {
		return 0, fmt.Errorf("warm genre cache: %w", err)
	}
	for _, g := range genres {
		entry := genreEntry{genre: g, found: true}
		c.cache.Add(genreKey(g.Name), entry)
		if g.Slug != "" {
			c.cache.Add(genreKey(g.Slug), entry)
		}
	}
	c.recordSize()
	return len(genres), nil
}

// Len returns the number of cached keys.
func (c *GenreCache) Len() int {
	return c.cache.Len()
}

// Purge drops every cached entry.
func (c *GenreCache) Purge() {
	c.cache.Purge()
	c.recordSize()
}

func (c *GenreCache) recordSize() {
	metrics.CacheSize.WithLabelValues(genreCacheName).Set(float64(c.cache.Len()))
}

func genreKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// lookupEntry finds key among resolved genres by name or slug.
func lookupEntry(key string, resolved []recommend.Genre) genreEntry {
	for _, g := range resolved {
		if genreKey(g.Name) == key || genreKey(g.Slug) == key {
			return genreEntry{genre: g, found: true}
		}
	}
	return genreEntry{}
}
