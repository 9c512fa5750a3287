// Package usecase implements the landing-page stats and the admin dashboard.
package usecase

import "errors"

// ErrStatsNotFound is returned by a repository when no stats row has been saved yet.
var ErrStatsNotFound = errors.New("stats not found")
