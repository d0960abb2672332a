package crs

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache memoises the results of another Projector. Densifying a ring at half the
// spacing revisits most of the previous coordinates, so these are not projected again.
// Errors are never cached. Sets are applied asynchronously; use Wait to flush them.
type Cache struct {
	projector Projector
	cache     *ristretto.Cache[string, [2]float64]
}

// NewCache wraps projector with a cache holding at most maxEntries coordinates.
func NewCache(projector Projector, maxEntries int64) (*Cache, error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("cache size should be positive, got %d", maxEntries)
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, [2]float64]{
		NumCounters:        10 * maxEntries,
		MaxCost:            maxEntries,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create projection cache: %w", err)
	}
	return &Cache{projector: projector, cache: cache}, nil
}

func (c *Cache) Project(coord [2]float64) ([2]float64, error) {
	key := cacheKey(coord)
	if projected, ok := c.cache.Get(key); ok {
		return projected, nil
	}
	projected, err := c.projector.Project(coord)
	if err != nil {
		return projected, err
	}
	c.cache.Set(key, projected, 1)
	return projected, nil
}

func (c *Cache) Wait() {
	c.cache.Wait()
}

func (c *Cache) Close() {
	c.cache.Close()
}

func cacheKey(c [2]float64) string {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[:8], math.Float64bits(c[0]))
	binary.LittleEndian.PutUint64(b[8:], math.Float64bits(c[1]))
	return string(b[:])
}
