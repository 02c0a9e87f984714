package model

import "errors"

var (
	// ErrNotFound is returned when a lookup misses.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a create violates a unique field.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidCredentials is returned for both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidTransition is returned when an order status change is not allowed.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrValidation is returned for malformed caller-supplied input.
	ErrValidation = errors.New("validation failed")
)
