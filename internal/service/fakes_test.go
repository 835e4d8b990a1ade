package service

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/MKhiriev/go-todo-offline/internal/adapter"
	"github.com/MKhiriev/go-todo-offline/internal/store"
	"github.com/MKhiriev/go-todo-offline/models"
)

// fakeNetwork answers from a handler while online and fails with
// adapter.ErrNetworkUnavailable while offline.
type fakeNetwork struct {
	mu      sync.Mutex
	offline bool
	handler func(req models.Request) models.Response
	calls   []models.Request
}

func newFakeNetwork(handler func(req models.Request) models.Response) *fakeNetwork {
	return &fakeNetwork{handler: handler}
}

func (n *fakeNetwork) setOffline(offline bool) {
	n.mu.Lock()
	n.offline = offline
	n.mu.Unlock()
}

func (n *fakeNetwork) callCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

func (n *fakeNetwork) Fetch(_ context.Context, req models.Request) (models.Response, error) {
	n.mu.Lock()
	n.calls = append(n.calls, req)
	offline := n.offline
	handler := n.handler
	n.mu.Unlock()

	if offline {
		return models.Response{}, fmt.Errorf("%w: %s %s", adapter.ErrNetworkUnavailable, req.Method, req.URL)
	}
	return handler(req), nil
}

func okText(body string) models.Response {
	return models.Response{
		Status: http.StatusOK,
		Header: http.Header{"Content-Type": {"text/plain"}},
		Body:   []byte(body),
	}
}

// memCache is a map-backed store.CacheRepository.
type memCache struct {
	mu          sync.Mutex
	generations map[string]map[string]models.Response
	order       []string
	failPut     error
}

func newMemCache() *memCache {
	return &memCache{generations: make(map[string]map[string]models.Response)}
}

func (c *memCache) Match(_ context.Context, generation, key string) (models.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	resp, ok := c.generations[generation][key]
	if !ok {
		return models.Response{}, store.ErrCacheMiss
	}
	return resp, nil
}

func (c *memCache) Put(_ context.Context, generation string, entries ...models.CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failPut != nil {
		return c.failPut
	}
	if _, ok := c.generations[generation]; !ok {
		c.generations[generation] = make(map[string]models.Response)
		c.order = append(c.order, generation)
	}
	for _, e := range entries {
		c.generations[generation][e.Key] = e.Response
	}
	return nil
}

func (c *memCache) Generations(context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.order...), nil
}

func (c *memCache) DeleteGeneration(_ context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.generations, name)
	for i, g := range c.order {
		if g == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *memCache) entryCount(generation string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.generations[generation])
}

// memOutbox is a map-backed store.OutboxRepository with increasing ids.
type memOutbox struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]models.QueuedMutation
}

func newMemOutbox() *memOutbox {
	return &memOutbox{items: make(map[int64]models.QueuedMutation)}
}

func (o *memOutbox) Enqueue(_ context.Context, m models.QueuedMutation) (int64, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.nextID++
	m.ID = o.nextID
	o.items[m.ID] = m
	return m.ID, nil
}

func (o *memOutbox) ListAll(context.Context) ([]models.QueuedMutation, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]models.QueuedMutation, 0, len(o.items))
	for _, m := range o.items {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (o *memOutbox) Remove(_ context.Context, id int64) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.items, id)
	return nil
}

func (o *memOutbox) len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.items)
}

// stubDeferred records registrations and answers with err.
type stubDeferred struct {
	mu   sync.Mutex
	tags []string
	err  error
}

func (s *stubDeferred) Register(_ context.Context, tag string) models.RegistrationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags = append(s.tags, tag)
	return models.RegistrationResult{Tag: tag, Err: s.err}
}
