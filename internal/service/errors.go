// Package service implements the domain operations behind the bot flows:
// user registration, exercise management, and workout tracking.
package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that a referenced entity vanished.
	ErrNotFound = errors.New("not found")
	// ErrForbidden reports a mutation that affected zero rows because the
	// target is a default exercise or belongs to another user.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict reports a second workout on an already occupied day.
	ErrConflict = errors.New("conflict")
)

// ValidationError reports unusable user input: an unknown exercise type, an
// unparseable date or number, a name over the limit. It is always recovered
// locally with a user-facing message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// Code exposes a stable error code for handler summary logs.
func (e *ValidationError) Code() string { return "VALIDATION" }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
