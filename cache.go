package cmpres

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/cespare/xxhash"
	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheKey identifies a decode by blob digest, length and pass limit.
type cacheKey struct {
	sum       uint64
	size      int
	maxPasses int
}

type cacheEntry struct {
	data     []byte
	warnings []Warning
}

// Cache memoizes decoded blobs in a bounded LRU.
// It is safe for concurrent use; failed decodes are not cached.
type Cache struct {
	lru  *lru.Cache[cacheKey, cacheEntry]
	opts *Options
}

// NewCache returns a cache holding up to size decoded blobs.
// Options nil means DefaultOptions.
func NewCache(size int, opts *Options) (*Cache, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	l, err := lru.New[cacheKey, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}

	return &Cache{lru: l, opts: opts}, nil
}

// Decompress returns the decoded form of src, decoding it on a miss.
// The returned slices are copies the caller may modify. Cached warnings
// are logged again on every hit.
func (c *Cache) Decompress(src []byte) ([]byte, []Warning, error) {
	key := cacheKey{
		sum:       xxhash.Sum64(src),
		size:      len(src),
		maxPasses: c.opts.MaxPasses,
	}

	if e, ok := c.lru.Get(key); ok {
		log := c.opts.logger()
		for _, w := range e.warnings {
			log.Warn("decode warning", "pass", w.Pass, "offset", w.Offset, "err", w.Err, "cached", true)
		}

		return bytes.Clone(e.data), slices.Clone(e.warnings), nil
	}

	out, warnings, err := Decompress(src, c.opts)
	if err != nil {
		return nil, warnings, err
	}
	c.lru.Add(key, cacheEntry{data: out, warnings: warnings})

	return bytes.Clone(out), slices.Clone(warnings), nil
}

// Len returns the number of cached blobs.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Purge drops every cached blob.
func (c *Cache) Purge() {
	c.lru.Purge()
}
