// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// CacheEntry is one stored response snapshot inside a cache generation.
type CacheEntry struct {
	// Key is the request identity digest the entry is addressed by.
	Key string

	// Method and URL are kept for diagnostics.
	Method string
	URL    string

	Response Response
	StoredAt time.Time
}

// LifecycleState is the state of a cache generation in the lifecycle manager.
type LifecycleState string

const (
	StateParsed     LifecycleState = "parsed"
	StateInstalling LifecycleState = "installing"
	StateWaiting    LifecycleState = "waiting"
	StateActive     LifecycleState = "active"
	StateSuperseded LifecycleState = "superseded"
	StateRedundant  LifecycleState = "redundant"
)

// LifecycleStatus is a point-in-time view of the lifecycle manager.
type LifecycleStatus struct {
	// State is the state of the most recently installed generation.
	State LifecycleState `json:"state"`

	// Generation is that generation's name.
	Generation string `json:"generation"`

	// Active is the generation currently serving, empty before the first claim.
	Active string `json:"active,omitempty"`
}
