package event

import "errors"

// Store errors. A rejected mutation always leaves the store unchanged.
var (
	// ErrNoIdentity is returned by mutations when no user is signed in.
	ErrNoIdentity = errors.New("no active identity")

	// ErrNotFound is returned when no event with the given id exists.
	ErrNotFound = errors.New("event not found")

	// ErrNotOwner is returned when the event exists but belongs to a
	// different owner than the caller.
	ErrNotOwner = errors.New("event owned by another user")

	// ErrInvalidInterval is returned when an event's end does not come
	// strictly after its start.
	ErrInvalidInterval = errors.New("event end must be after start")

	// ErrInvalidEvent wraps field-level validation failures.
	ErrInvalidEvent = errors.New("invalid event")
)
