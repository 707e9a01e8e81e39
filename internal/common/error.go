// Package common defines shared constants and sentinel errors used across
// the client and server layers of Core Notes. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors raised by the task store.
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidColor  = errors.New("invalid color")
	ErrEmptyPatch    = errors.New("nothing to update")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")
)
