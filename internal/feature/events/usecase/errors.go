// Package usecase implements the business logic for community events.
package usecase

import "errors"

var (
	// ErrEventNotFound is returned when an event does not exist or has been soft-deleted.
	ErrEventNotFound = errors.New("event not found")

	// ErrEventFull is returned when a join would push participants past the event's capacity.
	ErrEventFull = errors.New("event is full")
)
