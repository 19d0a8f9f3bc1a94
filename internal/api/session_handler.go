// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the internal drill engine, translating HTTP concerns to session
// operations.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phrazzld/verbdojo/internal/api/shared"
	"github.com/phrazzld/verbdojo/internal/domain"
	"github.com/phrazzld/verbdojo/internal/language"
	"github.com/phrazzld/verbdojo/internal/matchpairs"
	"github.com/phrazzld/verbdojo/internal/platform/logger"
	"github.com/phrazzld/verbdojo/internal/service/session"
	"github.com/phrazzld/verbdojo/internal/store"
	"github.com/phrazzld/verbdojo/internal/validation"
)

// SessionHandler handles drill session HTTP requests.
type SessionHandler struct {
	sessions  *store.SessionStore
	validator validation.Validator
	config    session.Config
	logger    *slog.Logger
}

// NewSessionHandler creates a new SessionHandler. The answer validator may
// be nil; sessions then grade free-text answers by exact match.
func NewSessionHandler(
	sessions *store.SessionStore,
	validator validation.Validator,
	cfg session.Config,
	log *slog.Logger,
) *SessionHandler {
	if sessions == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("session store cannot be nil for SessionHandler")
	}
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}

	return &SessionHandler{
		sessions:  sessions,
		validator: validator,
		config:    cfg,
		logger:    log.With(slog.String("component", "session_handler")),
	}
}

// Create handles POST /api/sessions requests.
// It builds a session over the supplied verb snapshot and registers it.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	inventory, err := language.Lookup(req.Language)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	verbs, err := toDomainVerbs(req.Verbs)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	opts := []session.Option{session.WithLogger(h.logger)}
	if req.Mode != "" {
		opts = append(opts, session.WithMode(domain.Mode(req.Mode)))
	}
	if req.FocusTense != "" {
		opts = append(opts, session.WithFocusTense(domain.Tense(req.FocusTense)))
	}
	if h.validator != nil {
		opts = append(opts, session.WithValidator(h.validator))
	}

	sess, err := session.New(h.config, verbs, inventory, opts...)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	id, err := h.sessions.Put(sess)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to register session", err)
		return
	}

	log.Debug("session created",
		slog.String("session_id", id.String()),
		slog.String("language", req.Language),
		slog.Int("verbs", len(verbs)))

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateSessionResponse{
		SessionID:       id.String(),
		CombosAvailable: sess.CombosAvailable(),
	})
}

// Start handles POST /api/sessions/{id}/start requests.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := sess.Start(r.Context()); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, h.stateResponse(sess))
}

// Get handles GET /api/sessions/{id} requests.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, h.stateResponse(sess))
}

// SubmitAnswer handles POST /api/sessions/{id}/answers requests.
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	feedback, err := sess.Submit(r.Context(), req.Answer)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	resp := SubmitAnswerResponse{
		Correct:         feedback.Correct,
		XPDelta:         feedback.XPDelta,
		Explanation:     feedback.Explanation,
		AcceptedAnswers: feedback.AcceptedAnswers,
		Finished:        feedback.Finished,
	}
	if feedback.Finished {
		resp.Result = resultResponse(sess.Result())
	} else {
		resp.NextQuestion = questionResponse(sess.CurrentQuestion(), sess.MatchGame())
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Tap handles POST /api/sessions/{id}/taps requests for match-pairs
// questions.
func (h *SessionHandler) Tap(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req TapRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	board := sess.MatchGame()
	result, err := sess.Tap(r.Context(), matchpairs.List(req.List), *req.Index)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	resp := TapResponse{
		Result:    string(result),
		Completed: result == matchpairs.TapCompleted,
	}
	if resp.Completed {
		resp.MatchedCount = len(board.Pairs())
		state := sess.Snapshot()
		resp.Finished = state.Phase == domain.PhaseFinished
		if resp.Finished {
			resp.SessionResult = resultResponse(sess.Result())
		} else {
			resp.NextQuestion = questionResponse(sess.CurrentQuestion(), sess.MatchGame())
		}
	} else {
		resp.MatchedCount = board.MatchedCount()
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Exit handles POST /api/sessions/{id}/exit requests.
func (h *SessionHandler) Exit(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	result, err := sess.Exit()
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resultResponse(&result))
}

// Delete handles DELETE /api/sessions/{id} requests.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.sessions.Delete(id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("session deleted", slog.String("session_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

// sessionID extracts and parses the {id} path parameter.
func (h *SessionHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Session ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID format")
		return uuid.Nil, false
	}
	return id, true
}

// lookup resolves the {id} path parameter to a live session.
func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return nil, false
	}

	sess, err := h.sessions.Get(id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return nil, false
	}
	return sess, true
}

// stateResponse renders the full session state.
func (h *SessionHandler) stateResponse(sess *session.Session) SessionStateResponse {
	state := sess.Snapshot()

	resp := SessionStateResponse{
		Phase:         string(state.Phase),
		Mode:          string(state.SelectedMode),
		Streak:        state.Streak,
		LongestStreak: state.LongestStreak,
		TotalCorrect:  state.TotalCorrect,
		TotalWrong:    state.TotalWrong,
		XPEarned:      state.XPEarned,
		TotalAnswered: state.TotalAnswered,
	}
	if state.FocusTense != nil {
		resp.FocusTense = string(*state.FocusTense)
	}
	if state.Question != nil {
		resp.CurrentQuestion = questionResponse(state.Question, sess.MatchGame())
	}
	if state.Phase == domain.PhaseFinished {
		resp.Result = resultResponse(sess.Result())
	}
	return resp
}

// questionResponse converts a domain question to its tagged wire form.
func questionResponse(q domain.Question, board *matchpairs.Game) *QuestionResponse {
	if q == nil {
		return nil
	}

	switch question := q.(type) {
	case domain.FillTemplateQuestion:
		return &QuestionResponse{
			Mode:        string(question.QuestionMode()),
			Verb:        question.Verb.Word,
			Translation: question.Verb.Translation,
			Tense:       string(question.Tense),
			PersonLabel: question.PersonLabel,
			NativeLabel: question.NativeLabel,
		}
	case domain.MultipleChoiceQuestion:
		return &QuestionResponse{
			Mode:        string(question.QuestionMode()),
			Verb:        question.Verb.Word,
			Translation: question.Verb.Translation,
			Tense:       string(question.Tense),
			PersonLabel: question.PersonLabel,
			NativeLabel: question.NativeLabel,
			Options:     question.Options,
		}
	case domain.MatchPairsQuestion:
		resp := &QuestionResponse{
			Mode:        string(question.QuestionMode()),
			Verb:        question.Verb.Word,
			Translation: question.Verb.Translation,
			Tense:       string(question.Tense),
		}
		for _, pair := range question.Pairs {
			resp.Persons = append(resp.Persons, pair.PersonLabel)
		}
		if board != nil {
			resp.Conjugations = board.Conjugations()
		}
		return resp
	default:
		return &QuestionResponse{Mode: string(q.QuestionMode())}
	}
}

// resultResponse converts a session summary to its wire form.
func resultResponse(result *domain.SessionResult) *ResultResponse {
	if result == nil {
		return nil
	}
	return &ResultResponse{
		TotalQuestions: result.TotalQuestions,
		Correct:        result.Correct,
		Wrong:          result.Wrong,
		LongestStreak:  result.LongestStreak,
		XPEarned:       result.XPEarned,
	}
}

// toDomainVerbs converts the wire verb snapshot into domain entries,
// validating each one.
func toDomainVerbs(payload []VerbEntry) ([]domain.VerbEntry, error) {
	verbs := make([]domain.VerbEntry, 0, len(payload))
	for _, entry := range payload {
		verb := domain.VerbEntry{
			ID:           entry.ID,
			Word:         entry.Word,
			Translation:  entry.Translation,
			Conjugations: make(map[domain.Tense]domain.TenseEntry, len(entry.Conjugations)),
		}

		for tense, table := range entry.Conjugations {
			forms := make(map[domain.Person]domain.Form, len(table.Forms))
			for person, form := range table.Forms {
				forms[domain.Person(person)] = domain.Form{
					Value:     form.Value,
					Masculine: form.Masculine,
					Feminine:  form.Feminine,
				}
			}

			tenseEntry := domain.TenseEntry{Forms: forms}
			if table.UnlockedAt != "" {
				ts, err := time.Parse(time.RFC3339, table.UnlockedAt)
				if err != nil {
					return nil, fmt.Errorf("%w: verb %q tense %q: bad unlocked_at timestamp",
						domain.ErrValidation, entry.ID, tense)
				}
				tenseEntry.UnlockedAt = &ts
			}
			verb.Conjugations[domain.Tense(tense)] = tenseEntry
		}

		if err := verb.Validate(); err != nil {
			return nil, fmt.Errorf("%w: verb %q: %v", domain.ErrValidation, entry.ID, err)
		}
		verbs = append(verbs, verb)
	}
	return verbs, nil
}
