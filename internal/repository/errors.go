package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrMemberNotFound is returned when an entity exists but the referenced member does not
	ErrMemberNotFound = errors.New("member not found")

	// ErrConflict is returned when a write would duplicate an existing member
	ErrConflict = errors.New("conflict: member already present")
)
