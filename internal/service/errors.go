package service

import "errors"

var (
	// ErrReferencedUser rejects deleting a user who leads or belongs to a project.
	ErrReferencedUser = errors.New("user is still assigned to a project")
	// ErrReferencedClient rejects deleting a client that owns a project.
	ErrReferencedClient = errors.New("client still has projects")

	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateUsername = errors.New("username already taken")
)
