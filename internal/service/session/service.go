// Package session orchestrates one drill session: it owns the combination
// queue, draws questions from the generator, grades answers (delegating
// free-text grading to an injected validator with a deterministic fallback),
// tracks streak/score/XP, and decides when the session ends.
package session

import (
	"errors"
	"fmt"

	"github.com/phrazzld/verbdojo/internal/domain"
)

// Common error types for the session service
var (
	// ErrNothingToPractice indicates no unlocked verb+tense combinations
	// match the session's filters; the session stays in mode selection.
	ErrNothingToPractice = errors.New("no combinations available to practice")

	// ErrNotPlaying indicates an operation that requires an active session
	// was called while the session was not in the playing phase. The call is
	// a no-op; no state was mutated.
	ErrNotPlaying = errors.New("session is not playing")

	// ErrAlreadyStarted indicates Start was called on a session that has
	// already left mode selection. The call is a no-op.
	ErrAlreadyStarted = errors.New("session already started")

	// ErrSessionFinished indicates the session reached its terminal phase
	// before the operation could apply; the result was discarded.
	ErrSessionFinished = errors.New("session already finished")

	// ErrInvalidAnswerKind indicates the submitted answer does not fit the
	// current question's mode (eg. free text for a match-pairs question).
	ErrInvalidAnswerKind = errors.New("answer does not match current question mode")

	// ErrInvalidMode indicates the requested drill mode cannot be selected.
	ErrInvalidMode = errors.New("invalid drill mode")

	// ErrInvalidFocusTense indicates the focus tense is not in the target
	// language's inventory.
	ErrInvalidFocusTense = errors.New("focus tense not in language inventory")
)

// AnswerFeedback is returned to the host after each graded answer so the
// rendering surface can show correctness and feedback before advancing.
type AnswerFeedback struct {
	Correct bool `json:"correct"`
	// XPDelta is 1 on every fifth consecutive correct answer, 0 otherwise.
	XPDelta int `json:"xp_delta"`
	// Explanation is grading feedback: empty when correct, the acceptable
	// forms (or the validator's reasoning) when wrong.
	Explanation string `json:"explanation,omitempty"`
	// AcceptedAnswers lists every surface form that would have been
	// accepted, for rendering alongside a wrong answer.
	AcceptedAnswers []string `json:"accepted_answers,omitempty"`
	// Finished reports whether this answer ended the session.
	Finished bool `json:"finished"`
}

// Hooks are the lifecycle notifications a session emits outward. All
// methods are invoked synchronously from session operations; hosts that
// need decoupling should hand in an implementation that dispatches.
type Hooks interface {
	// OnStart fires when the session enters the playing phase.
	OnStart()
	// OnAnswer fires once per processed answer, before the queue mutation
	// is visible to the next question.
	OnAnswer(correct bool, xpDelta int)
	// OnComplete fires when the session reaches the finished phase.
	OnComplete(result domain.SessionResult)
	// OnExit fires only on early exit, after OnComplete.
	OnExit()
}

// NoopHooks is the default Hooks implementation.
type NoopHooks struct{}

func (NoopHooks) OnStart()                               {}
func (NoopHooks) OnAnswer(correct bool, xpDelta int)     {}
func (NoopHooks) OnComplete(result domain.SessionResult) {}
func (NoopHooks) OnExit()                                {}

// Config bounds a session.
type Config struct {
	// QuestionCap is the number of answers after which the session
	// finishes.
	QuestionCap int
	// XPStreakInterval is the streak length that earns one XP.
	XPStreakInterval int
}

// DefaultConfig returns the standard session bounds: 20 questions, one XP
// per 5 consecutive correct answers.
func DefaultConfig() Config {
	return Config{
		QuestionCap:      20,
		XPStreakInterval: 5,
	}
}

// validate normalizes a config, falling back to defaults for non-positive
// values.
func (c Config) validate() Config {
	d := DefaultConfig()
	if c.QuestionCap <= 0 {
		c.QuestionCap = d.QuestionCap
	}
	if c.XPStreakInterval <= 0 {
		c.XPStreakInterval = d.XPStreakInterval
	}
	return c
}

// ServiceError wraps session errors with the operation that failed, so
// hosts can differentiate with errors.As instead of string matching.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
