package store

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/MKhiriev/go-todo-offline/models"
)

// hotCacheRepository keeps recently matched snapshots in memory in front of
// another [CacheRepository]. The database stays the source of truth: entries
// are added only after a successful read or committed write, and deleting any
// generation purges the whole LRU.
type hotCacheRepository struct {
	CacheRepository
	hot *lru.Cache[string, models.Response]
}

// NewHotCacheRepository wraps next with an LRU holding up to size snapshots.
func NewHotCacheRepository(next CacheRepository, size int) (CacheRepository, error) {
	hot, err := lru.New[string, models.Response](size)
	if err != nil {
		return nil, err
	}

	return &hotCacheRepository{CacheRepository: next, hot: hot}, nil
}

func hotKey(generation, key string) string {
	return generation + "\x00" + key
}

func (h *hotCacheRepository) Match(ctx context.Context, generation, key string) (models.Response, error) {
	if resp, ok := h.hot.Get(hotKey(generation, key)); ok {
		return resp, nil
	}

	resp, err := h.CacheRepository.Match(ctx, generation, key)
	if err != nil {
		return resp, err
	}

	h.hot.Add(hotKey(generation, key), resp)
	return resp, nil
}

func (h *hotCacheRepository) Put(ctx context.Context, generation string, entries ...models.CacheEntry) error {
	if err := h.CacheRepository.Put(ctx, generation, entries...); err != nil {
		return err
	}

	for _, entry := range entries {
		h.hot.Add(hotKey(generation, entry.Key), entry.Response)
	}
	return nil
}

func (h *hotCacheRepository) DeleteGeneration(ctx context.Context, name string) error {
	err := h.CacheRepository.DeleteGeneration(ctx, name)
	// even a failed delete may have removed rows before rolling back
	h.hot.Purge()
	return err
}
