// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// QueuedMutation is a mutating request captured while the upstream was
// unreachable. Rows are inserted and deleted, never updated.
type QueuedMutation struct {
	// ID is assigned by the store on insert and grows monotonically.
	ID int64 `json:"id"`

	// TargetURL is the resource the mutation was destined for.
	TargetURL string `json:"target_url"`

	// Method is the mutating verb (POST for task creation).
	Method string `json:"method"`

	// Body is the JSON payload captured at enqueue time.
	Body json.RawMessage `json:"body"`

	// EnqueuedAt is the capture time.
	EnqueuedAt time.Time `json:"enqueued_at"`
}
