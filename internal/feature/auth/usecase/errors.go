// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("user already exists with this email")

	// ErrInvalidCredentials is the single login failure. It never says which check failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrMissingAdminConfig is returned by BootstrapAdmin when the admin email or password is empty.
	ErrMissingAdminConfig = errors.New("admin email and password must be configured")
)
