// Package validation defines the answer-grading boundary for free-text
// questions. The engine does not grade answers semantically itself: it
// defines the Validator contract an external grader (an AI service) may
// implement, plus a deterministic exact-match fallback used whenever no
// validator is injected or the injected one fails.
package validation

import (
	"context"
	"strings"

	"github.com/phrazzld/verbdojo/internal/domain"
)

// Context carries the disambiguating facts for one grading call.
type Context struct {
	Verb   domain.VerbEntry
	Tense  domain.Tense
	Person domain.Person
}

// Result is the grading outcome. Explanation is empty for accepted answers
// and human-readable feedback otherwise.
type Result struct {
	Accepted    bool   `json:"accepted"`
	Explanation string `json:"explanation"`
}

// Validator decides whether a free-text answer is accepted. Implementations
// may be slow (network-backed); callers must treat any returned error as a
// signal to fall back to exact matching, never as a user-facing failure.
type Validator interface {
	Validate(ctx context.Context, userAnswer, correctAnswer string, qctx Context) (Result, error)
}

// Fallback grades an answer by trimmed, case-insensitive exact match against
// every acceptable surface form. On rejection the explanation lists all
// acceptable forms.
func Fallback(userAnswer string, accepted []string) Result {
	trimmed := strings.ToLower(strings.TrimSpace(userAnswer))
	for _, form := range accepted {
		if form != "" && strings.ToLower(form) == trimmed {
			return Result{Accepted: true}
		}
	}
	return Result{
		Accepted:    false,
		Explanation: "Correct answer: " + strings.Join(accepted, " / "),
	}
}
