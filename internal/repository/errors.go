package repository

import "errors"

var (
	// ErrNotFound is returned when an update or delete targets an id that has no row.
	ErrNotFound = errors.New("not found")

	// ErrReferenced is returned when deleting a user or client that a project still references.
	ErrReferenced = errors.New("still referenced by a project")
)
