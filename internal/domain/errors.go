package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidMode is returned when a drill mode is not one a host may
	// request.
	ErrInvalidMode = errors.New("invalid drill mode")

	// ErrUnknownTense is returned when a tense is not part of the target
	// language's inventory.
	ErrUnknownTense = errors.New("unknown tense")
)

// IsValidMode reports whether a mode may be requested for a session.
// ModeAudioType is deliberately excluded.
func IsValidMode(mode Mode) bool {
	for _, m := range ValidModes {
		if m == mode {
			return true
		}
	}
	return false
}
