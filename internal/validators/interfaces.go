// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks intercepted requests before the proxy acts on
// them on the application's behalf.
//
// A Validator accepts optional field names that restrict validation to a
// subset of the value; without them a default set is checked.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
