package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrNoQuestion is returned when a combination's conjugation data is
	// missing or malformed for the chosen mode. Callers treat this as
	// end-of-content, not as a fault to surface.
	ErrNoQuestion = errors.New("no question can be generated for combination")

	// ErrUnsupportedMode is returned when generation is requested for a mode
	// the generator does not produce (audio, or an unknown mode).
	ErrUnsupportedMode = errors.New("unsupported drill mode")
)
