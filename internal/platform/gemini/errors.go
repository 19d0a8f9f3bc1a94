package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrInvalidConfig is returned when the validator configuration is
	// incomplete or unusable.
	ErrInvalidConfig = errors.New("invalid gemini validator configuration")

	// ErrEmptyAnswer is returned when asked to grade an empty answer.
	ErrEmptyAnswer = errors.New("answer cannot be empty")

	// ErrInvalidResponse is returned when the API response cannot be
	// interpreted as a grading verdict.
	ErrInvalidResponse = errors.New("invalid response from Gemini API")

	// ErrContentBlocked is returned when the API refuses the request on
	// safety grounds.
	ErrContentBlocked = errors.New("content blocked by safety filters")

	// ErrTransientFailure is returned when the API kept failing after all
	// retry attempts.
	ErrTransientFailure = errors.New("transient Gemini API failure")
)
