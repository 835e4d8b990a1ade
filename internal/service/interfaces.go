// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-todo-offline/models"
)

// Dispatcher classifies intercepted requests and answers each one with the
// strategy of its route.
type Dispatcher interface {
	// Dispatch always returns a response except for the default route, whose
	// network failure is surfaced when nothing is cached.
	Dispatch(ctx context.Context, req models.Request) (models.Response, error)

	// Claim takes control of requests on behalf of generation. Until the first
	// claim every request is passed straight to the network.
	Claim(generation string)

	// Controlling returns the generation in control, if any.
	Controlling() (string, bool)
}

// OutboxService is the durable queue of mutations as seen by the dispatcher
// and the sync runner.
type OutboxService interface {
	Enqueue(ctx context.Context, mutation models.QueuedMutation) (int64, error)
	ListAll(ctx context.Context) ([]models.QueuedMutation, error)
	Remove(ctx context.Context, id int64) error

	// Pending returns the number of queued mutations.
	Pending(ctx context.Context) (int, error)
}

// SyncRunner drains the outbox once.
type SyncRunner interface {
	Run(ctx context.Context) (models.SyncReport, error)
}

// DeferredSync schedules a future drain of the outbox.
type DeferredSync interface {
	Register(ctx context.Context, tag string) models.RegistrationResult
}

// SyncJob runs the sync runner in the background on registrations and on a
// fixed interval.
type SyncJob interface {
	DeferredSync

	Start(ctx context.Context)
	Stop()
}

// LifecycleManager installs and activates cache generations.
type LifecycleManager interface {
	// Install populates generation name with the manifest. It leaves the
	// generation waiting on success and redundant on failure. The active
	// generation keeps serving until Activate.
	Install(ctx context.Context, name string) error

	// Activate purges every other generation and claims the dispatcher for
	// the waiting one.
	Activate(ctx context.Context) error

	// Start installs the configured generation and activates it right away.
	Start(ctx context.Context) error

	Status() models.LifecycleStatus
}

type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.AppInfo
}
