// Package usecase implements the business logic for visitor feedback.
package usecase

import "errors"

// ErrFeedbackNotFound is returned when a feedback id does not exist.
var ErrFeedbackNotFound = errors.New("feedback not found")
