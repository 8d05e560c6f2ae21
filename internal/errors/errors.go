package errors

import (
	"errors"
	"fmt"
)

// Common error types for the social login service
var (
	// Lookup errors. ErrNotFound is the expected miss on the first-login
	// path - recovered locally, never surfaced to the caller.
	ErrNotFound = errors.New("not found")

	// Handshake errors. A missing or mismatched verifier stash means the
	// handshake is forged or expired and must be aborted end-to-end.
	ErrAccessDenied = errors.New("access denied")

	// Store errors
	ErrConflict = errors.New("conflict")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserBlocked        = errors.New("user is blocked")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Provider errors. An app lookup miss is a NotFound-class condition,
	// so errors.Is branching on ErrNotFound covers it too.
	ErrUnknownProvider = errors.New("unknown provider")
	ErrAppNotFound     = fmt.Errorf("social app not found: %w", ErrNotFound)

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")

	// General errors. ErrInternal marks programming-error preconditions
	// (e.g. committing an already persisted login) - never expected in
	// correct control flow, and distinct from ErrAccessDenied.
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
