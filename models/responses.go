// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// MutationAck is the body of the synthetic response returned for a mutation
// that could not reach the upstream.
type MutationAck struct {
	Success bool `json:"success"`
	Offline bool `json:"offline"`
	Queued  bool `json:"queued"`
}

// OfflineTodos is the body of the synthetic empty task list served when the
// upstream is unreachable and nothing is cached.
type OfflineTodos struct {
	Todos   []json.RawMessage `json:"todos"`
	Offline bool              `json:"offline"`
}

// SyncReport summarises one drain of the outbox.
type SyncReport struct {
	Attempted int `json:"attempted"`
	Delivered int `json:"delivered"`
	Retained  int `json:"retained"`
}

// Status is the body of the status endpoint.
type Status struct {
	Lifecycle LifecycleStatus `json:"lifecycle"`
	Pending   int             `json:"pending"`
}
