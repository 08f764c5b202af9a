package domain

import "errors"

var (
	// ErrInvalidInput is returned when a required field is missing or a
	// status/type value is outside its allowed set.
	ErrInvalidInput = errors.New("invalid input")
)
