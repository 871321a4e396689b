// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation for API request bodies.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//   - FieldError: the first failing field of a value together with a
//     human-readable message suitable for the API error body.
//
// Rules are declared with `validate` struct tags on the request models and
// evaluated by go-playground/validator.
package validators

import "context"

// Validator checks a request body before it reaches the directory.
// When fields are given, only those struct fields are checked. The first
// failure is returned as a *FieldError.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
