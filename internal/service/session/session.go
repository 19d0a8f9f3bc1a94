package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/verbdojo/internal/domain"
	"github.com/phrazzld/verbdojo/internal/domain/queue"
	"github.com/phrazzld/verbdojo/internal/generation"
	"github.com/phrazzld/verbdojo/internal/language"
	"github.com/phrazzld/verbdojo/internal/matchpairs"
	"github.com/phrazzld/verbdojo/internal/platform/logger"
	"github.com/phrazzld/verbdojo/internal/validation"
)

// Session is the state machine for one drill session. A session owns its
// queue and state exclusively; nothing is shared across sessions. Operations
// are safe for serialized host use; the internal mutex exists so a
// validation result that arrives after an early exit is discarded instead of
// applied.
type Session struct {
	mu sync.Mutex

	cfg       Config
	state     domain.SessionState
	queue     *queue.Queue
	generator *generation.Generator
	inventory language.Inventory
	validator validation.Validator
	hooks     Hooks
	rng       *rand.Rand
	logger    *slog.Logger

	// match is the live subgame for the current match-pairs question.
	match *matchpairs.Game

	// questionSeq increments whenever the current question changes, so a
	// stale validation result can be detected and dropped.
	questionSeq uint64

	result *domain.SessionResult
}

// Option customizes a Session at construction.
type Option func(*Session)

// WithMode selects the drill mode for the session (default mixed).
func WithMode(mode domain.Mode) Option {
	return func(s *Session) { s.state.SelectedMode = mode }
}

// WithFocusTense restricts the queue to a single tense.
func WithFocusTense(tense domain.Tense) Option {
	return func(s *Session) { s.state.FocusTense = &tense }
}

// WithRand injects the random source used for queue shuffling, mode mixing
// and distractor selection. Defaults to a time-seeded source.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithValidator injects the free-text answer validator. Without one, the
// exact-match fallback grades every free-text answer.
func WithValidator(v validation.Validator) Option {
	return func(s *Session) { s.validator = v }
}

// WithHooks injects the lifecycle notification receiver.
func WithHooks(h Hooks) Option {
	return func(s *Session) { s.hooks = h }
}

// WithLogger injects the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New builds a session over a snapshot of verb entries for one target
// language. The verbs slice is read-only for the life of the session.
func New(cfg Config, verbs []domain.VerbEntry, inventory language.Inventory, opts ...Option) (*Session, error) {
	s := &Session{
		cfg:       cfg.validate(),
		inventory: inventory,
		hooks:     NoopHooks{},
		state: domain.SessionState{
			Phase:        domain.PhaseSelectingMode,
			SelectedMode: domain.ModeMixed,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	if !domain.IsValidMode(s.state.SelectedMode) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, s.state.SelectedMode)
	}
	if s.state.FocusTense != nil && !inventory.HasTense(*s.state.FocusTense) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFocusTense, *s.state.FocusTense)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With(slog.String("component", "dojo_session"))

	s.queue = queue.New(verbs, inventory.Tenses, s.state.FocusTense, s.rng)
	s.generator = generation.New(inventory, s.rng)

	s.logger.Debug("session constructed",
		slog.String("language", inventory.Code),
		slog.String("mode", string(s.state.SelectedMode)),
		slog.Int("combos", s.queue.Len()))

	return s, nil
}

// CombosAvailable returns the number of eligible combinations, for the
// "N combinations available" hint before starting.
func (s *Session) CombosAvailable() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// Snapshot returns a copy of the current session state for rendering.
func (s *Session) Snapshot() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentQuestion returns the in-flight question, or nil outside the
// playing phase.
func (s *Session) CurrentQuestion() domain.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Question
}

// MatchGame returns the live match-pairs subgame for rendering, or nil when
// the current question is not match_pairs.
func (s *Session) MatchGame() *matchpairs.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match
}

// Result returns the session summary once finished, or nil before that.
func (s *Session) Result() *domain.SessionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil
	}
	r := *s.result
	return &r
}

// Start transitions the session from mode selection to playing. It rejects
// with ErrNothingToPractice when the queue is empty or the first question
// cannot be generated, leaving the session in mode selection. Calling Start
// on a session that already left mode selection is a no-op.
func (s *Session) Start(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Phase != domain.PhaseSelectingMode {
		return &ServiceError{Operation: "start", Message: "session already started", Err: ErrAlreadyStarted}
	}

	combo, ok := s.queue.Peek()
	if !ok {
		log.Debug("start rejected, queue empty")
		return &ServiceError{Operation: "start", Message: "queue is empty", Err: ErrNothingToPractice}
	}

	question, err := s.generator.Generate(combo, s.state.SelectedMode)
	if err != nil {
		log.Debug("start rejected, first question failed", slog.String("error", err.Error()))
		return &ServiceError{Operation: "start", Message: "no question available", Err: ErrNothingToPractice}
	}

	s.state.Streak = 0
	s.state.LongestStreak = 0
	s.state.TotalCorrect = 0
	s.state.TotalWrong = 0
	s.state.XPEarned = 0
	s.state.TotalAnswered = 0
	s.setQuestion(question)
	s.state.Phase = domain.PhasePlaying

	log.Debug("session started",
		slog.String("mode", string(s.state.SelectedMode)),
		slog.Int("combos", s.queue.Len()))

	s.hooks.OnStart()
	return nil
}

// Submit grades a raw answer for the current fill-template or
// multiple-choice question, updates counters and the queue, and advances to
// the next question or finishes the session. Free-text answers go through
// the injected validator when present; validator failure silently degrades
// to the exact-match fallback. Submitting outside the playing phase is a
// no-op.
func (s *Session) Submit(ctx context.Context, answer string) (AnswerFeedback, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()

	if s.state.Phase != domain.PhasePlaying || s.state.Question == nil {
		s.mu.Unlock()
		return AnswerFeedback{}, &ServiceError{Operation: "submit_answer", Message: "no question in flight", Err: ErrNotPlaying}
	}

	switch q := s.state.Question.(type) {
	case domain.FillTemplateQuestion:
		return s.submitFillTemplate(ctx, log, q, answer)
	case domain.MultipleChoiceQuestion:
		feedback := s.processAnswer(log, answer == q.CorrectAnswer, "", []string{q.CorrectAnswer})
		s.mu.Unlock()
		return feedback, nil
	default:
		s.mu.Unlock()
		return AnswerFeedback{}, &ServiceError{Operation: "submit_answer", Message: "current question is not free-text", Err: ErrInvalidAnswerKind}
	}
}

// submitFillTemplate grades a free-text answer. The mutex is released while
// the validator runs so the host can exit the session during a slow call;
// a result arriving after the session finished (or the question changed) is
// discarded per the session's concurrency contract.
// The caller must hold s.mu; it is unlocked on every path.
func (s *Session) submitFillTemplate(
	ctx context.Context,
	log *slog.Logger,
	q domain.FillTemplateQuestion,
	answer string,
) (AnswerFeedback, error) {
	accepted := q.CorrectAnswer.Accepted()
	seq := s.questionSeq

	var result validation.Result
	if s.validator == nil {
		result = validation.Fallback(answer, accepted)
	} else {
		s.mu.Unlock()
		vres, err := s.validator.Validate(ctx, strings.TrimSpace(answer), q.CorrectAnswer.Resolve(), validation.Context{
			Verb:   q.Verb,
			Tense:  q.Tense,
			Person: q.PersonKey,
		})
		s.mu.Lock()

		if err != nil {
			log.Warn("answer validator failed, using exact-match fallback",
				slog.String("error", err.Error()),
				slog.String("verb", q.Verb.ID),
				slog.String("tense", string(q.Tense)))
			result = validation.Fallback(answer, accepted)
		} else {
			result = vres
		}

		if s.state.Phase != domain.PhasePlaying || s.questionSeq != seq {
			s.mu.Unlock()
			log.Debug("discarding stale validation result",
				slog.String("verb", q.Verb.ID),
				slog.String("tense", string(q.Tense)))
			return AnswerFeedback{}, &ServiceError{Operation: "submit_answer", Message: "validation finished after session moved on", Err: ErrSessionFinished}
		}
	}

	feedback := s.processAnswer(log, result.Accepted, result.Explanation, accepted)
	s.mu.Unlock()
	return feedback, nil
}

// Tap forwards one tap to the current match-pairs subgame. Completing the
// final pair funnels a correct answer through the same processing path as
// the other modes. Tapping outside a match-pairs question is a no-op.
func (s *Session) Tap(ctx context.Context, list matchpairs.List, index int) (matchpairs.TapResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Phase != domain.PhasePlaying || s.match == nil {
		return "", &ServiceError{Operation: "tap", Message: "no match-pairs question in flight", Err: ErrNotPlaying}
	}

	result := s.match.Tap(list, index)
	if result == matchpairs.TapCompleted {
		s.processAnswer(log, true, "", nil)
	}
	return result, nil
}

// Exit finishes the session early with the totals accumulated so far. It is
// only available while playing; otherwise it is a no-op.
func (s *Session) Exit() (domain.SessionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Phase != domain.PhasePlaying {
		return domain.SessionResult{}, &ServiceError{Operation: "exit", Message: "session is not playing", Err: ErrNotPlaying}
	}

	s.finishLocked()
	s.hooks.OnExit()
	return *s.result, nil
}

// processAnswer funnels a boolean correctness through the shared counter,
// queue and XP logic, then advances or finishes. Caller must hold s.mu.
func (s *Session) processAnswer(log *slog.Logger, correct bool, explanation string, accepted []string) AnswerFeedback {
	feedback := AnswerFeedback{Correct: correct, Explanation: explanation}
	if !correct {
		feedback.AcceptedAnswers = accepted
	}

	if correct {
		s.queue.MarkCorrect()
		s.state.Streak++
		if s.state.Streak > s.state.LongestStreak {
			s.state.LongestStreak = s.state.Streak
		}
		s.state.TotalCorrect++
		if s.state.Streak%s.cfg.XPStreakInterval == 0 {
			s.state.XPEarned++
			feedback.XPDelta = 1
		}
	} else {
		s.queue.MarkWrong()
		s.state.Streak = 0
		s.state.TotalWrong++
	}
	s.state.TotalAnswered++

	s.hooks.OnAnswer(correct, feedback.XPDelta)

	log.Debug("answer processed",
		slog.Bool("correct", correct),
		slog.Int("streak", s.state.Streak),
		slog.Int("answered", s.state.TotalAnswered))

	s.advanceLocked(log)
	feedback.Finished = s.state.Phase == domain.PhaseFinished
	return feedback
}

// advanceLocked loads the next question, or finishes the session when the
// answer cap is reached or generation fails. Caller must hold s.mu.
func (s *Session) advanceLocked(log *slog.Logger) {
	if s.state.TotalAnswered >= s.cfg.QuestionCap {
		log.Debug("question cap reached", slog.Int("cap", s.cfg.QuestionCap))
		s.finishLocked()
		return
	}

	combo, ok := s.queue.Peek()
	if !ok {
		s.finishLocked()
		return
	}
	question, err := s.generator.Generate(combo, s.state.SelectedMode)
	if err != nil {
		// End-of-content is not an error surface; finish with what we have.
		log.Debug("question generation failed, finishing session", slog.String("error", err.Error()))
		s.finishLocked()
		return
	}
	s.setQuestion(question)
}

// setQuestion installs a new current question and, for match-pairs, its
// subgame. Caller must hold s.mu.
func (s *Session) setQuestion(question domain.Question) {
	s.state.Question = question
	s.questionSeq++
	s.match = nil
	if mp, ok := question.(domain.MatchPairsQuestion); ok {
		s.match = matchpairs.New(mp.Pairs, s.rng)
	}
}

// finishLocked transitions to the terminal phase and freezes the summary.
// Caller must hold s.mu.
func (s *Session) finishLocked() {
	s.state.Phase = domain.PhaseFinished
	s.state.Question = nil
	s.questionSeq++
	s.match = nil

	result := domain.SessionResult{
		TotalQuestions: s.state.TotalAnswered,
		Correct:        s.state.TotalCorrect,
		Wrong:          s.state.TotalWrong,
		LongestStreak:  s.state.LongestStreak,
		XPEarned:       s.state.XPEarned,
	}
	s.result = &result

	s.logger.Debug("session finished",
		slog.Int("total", result.TotalQuestions),
		slog.Int("correct", result.Correct),
		slog.Int("wrong", result.Wrong),
		slog.Int("xp", result.XPEarned))

	s.hooks.OnComplete(result)
}
