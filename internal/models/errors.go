package models

import "errors"

var (
	// ErrNotFound marks updates targeting an id that is not in the snapshot.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks input rejected before any network or storage call.
	ErrValidation = errors.New("validation failed")
)
