// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-todo-offline/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// OutboxRepository is the durable queue of mutations waiting for the upstream.
// Items are inserted and deleted, never updated in place.
type OutboxRepository interface {
	// Enqueue stores mutation and returns the id assigned by the database.
	// Ids grow monotonically, so they also encode enqueue order.
	Enqueue(ctx context.Context, mutation models.QueuedMutation) (int64, error)

	// ListAll returns every queued mutation in enqueue order.
	ListAll(ctx context.Context) ([]models.QueuedMutation, error)

	// Remove deletes the mutation with the given id. Removing an id that is
	// not queued is not an error.
	Remove(ctx context.Context, id int64) error
}

// CacheRepository stores response snapshots grouped into named generations.
type CacheRepository interface {
	// Match returns the snapshot stored under key in generation, or
	// [ErrCacheMiss].
	Match(ctx context.Context, generation, key string) (models.Response, error)

	// Put stores entries in generation in a single transaction, creating the
	// generation if needed. Either every entry is stored or none is.
	Put(ctx context.Context, generation string, entries ...models.CacheEntry) error

	// Generations lists the names of all stored generations.
	Generations(ctx context.Context) ([]string, error)

	// DeleteGeneration removes the generation and all of its entries.
	DeleteGeneration(ctx context.Context, name string) error
}
