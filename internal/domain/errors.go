package domain

import "errors"

// Validation errors. Both are distinct from per-holder disqualification,
// which is a silent business outcome, never an error.
var (
	// ErrInvalidParams is returned for malformed run configuration.
	ErrInvalidParams = errors.New("invalid run parameters")

	// ErrInvalidHolder is returned for malformed holder input.
	ErrInvalidHolder = errors.New("invalid holder")
)
