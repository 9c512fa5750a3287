// Package usecase implements the business logic for disposal locations.
package usecase

import "errors"

// ErrLocationNotFound is returned when a location id does not exist.
var ErrLocationNotFound = errors.New("location not found")
