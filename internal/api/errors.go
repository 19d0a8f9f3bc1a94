package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/verbdojo/internal/domain"
	"github.com/phrazzld/verbdojo/internal/language"
	"github.com/phrazzld/verbdojo/internal/service/session"
	"github.com/phrazzld/verbdojo/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// State transition conflicts
	case errors.Is(err, session.ErrAlreadyStarted),
		errors.Is(err, session.ErrNotPlaying),
		errors.Is(err, session.ErrSessionFinished):
		return http.StatusConflict

	// Nothing eligible to drill
	case errors.Is(err, session.ErrNothingToPractice):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, session.ErrInvalidMode),
		errors.Is(err, session.ErrInvalidFocusTense),
		errors.Is(err, session.ErrInvalidAnswerKind),
		errors.Is(err, language.ErrUnsupportedLanguage),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return "Session not found"

	case errors.Is(err, session.ErrAlreadyStarted):
		return "Session already started"

	case errors.Is(err, session.ErrNotPlaying):
		return "Session is not playing"

	case errors.Is(err, session.ErrSessionFinished):
		return "Session already finished"

	case errors.Is(err, session.ErrNothingToPractice):
		return "Nothing to practice"

	case errors.Is(err, session.ErrInvalidMode):
		return "Invalid drill mode"

	case errors.Is(err, session.ErrInvalidFocusTense):
		return "Invalid focus tense"

	case errors.Is(err, session.ErrInvalidAnswerKind):
		return "Current question does not take this answer"

	case errors.Is(err, language.ErrUnsupportedLanguage):
		return "Unsupported language"

	case errors.Is(err, domain.ErrValidation):
		return "Invalid verb data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'CreateSessionRequest.Language' Error:Field validation for 'Language' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gte":
		return "value too small"
	default:
		return "validation failed"
	}
}
