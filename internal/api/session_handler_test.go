package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/verbdojo/internal/service/session"
	"github.com/phrazzld/verbdojo/internal/store"
)

func newTestRouter(t *testing.T) (*chi.Mux, *store.SessionStore) {
	t.Helper()

	sessions := store.NewSessionStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewSessionHandler(sessions, nil, session.DefaultConfig(), log)

	r := chi.NewRouter()
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", handler.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handler.Get)
			r.Post("/start", handler.Start)
			r.Post("/answers", handler.SubmitAnswer)
			r.Post("/taps", handler.Tap)
			r.Post("/exit", handler.Exit)
			r.Delete("/", handler.Delete)
		})
	})
	return r, sessions
}

// hablarPayload is a Spanish present-tense snapshot for one verb.
func hablarPayload(mode string) map[string]any {
	return map[string]any{
		"language": "es",
		"mode":     mode,
		"verbs": []map[string]any{
			{
				"id":          "hablar",
				"word":        "hablar",
				"translation": "to speak",
				"conjugations": map[string]any{
					"present": map[string]any{
						"forms": map[string]any{
							"first_singular":  map[string]any{"value": "hablo"},
							"second_singular": map[string]any{"value": "hablas"},
							"third_singular":  map[string]any{"value": "habla"},
							"first_plural":    map[string]any{"value": "hablamos"},
							"second_plural":   map[string]any{"value": "habláis"},
							"third_plural":    map[string]any{"value": "hablan"},
						},
					},
				},
			},
		},
	}
}

// monotonePayload uses one surface form for every person, so any
// fill-template question has a known answer.
func monotonePayload() map[string]any {
	payload := hablarPayload("fill_template")
	verb := payload["verbs"].([]map[string]any)[0]
	conj := verb["conjugations"].(map[string]any)["present"].(map[string]any)
	forms := conj["forms"].(map[string]any)
	for person := range forms {
		forms[person] = map[string]any{"value": "habla"}
	}
	return payload
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createSession(t *testing.T, r http.Handler, payload map[string]any) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/sessions", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decodeBody[CreateSessionResponse](t, w)
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func TestCreateSessionValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name           string
		body           any
		expectedStatus int
	}{
		{
			name:           "malformed json",
			body:           nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing verbs",
			body:           map[string]any{"language": "es"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unsupported language",
			body: func() map[string]any {
				p := hablarPayload("mixed")
				p["language"] = "xx"
				return p
			}(),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown mode",
			body: func() map[string]any {
				p := hablarPayload("mixed")
				p["mode"] = "karaoke"
				return p
			}(),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "focus tense outside inventory",
			body: func() map[string]any {
				p := hablarPayload("mixed")
				p["focus_tense"] = "pluperfect"
				return p
			}(),
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/sessions", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			errResp := decodeBody[map[string]any](t, w)
			assert.NotEmpty(t, errResp["error"])
		})
	}
}

func TestCreateSession(t *testing.T) {
	r, sessions := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/sessions", hablarPayload("mixed"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decodeBody[CreateSessionResponse](t, w)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, 1, resp.CombosAvailable)
	assert.Equal(t, 1, sessions.Len())
}

func TestSessionNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/sessions/8f9e1d2c-0a0b-4c4d-9e8f-112233445566", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/sessions/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitBeforeStartConflicts(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createSession(t, r, hablarPayload("fill_template"))

	w := doJSON(t, r, http.MethodPost, "/api/sessions/"+id+"/answers", map[string]any{"answer": "hablo"})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestFillTemplateSessionFlow(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createSession(t, r, monotonePayload())

	w := doJSON(t, r, http.MethodPost, "/api/sessions/"+id+"/start", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	state := decodeBody[SessionStateResponse](t, w)
	assert.Equal(t, "playing", state.Phase)
	require.NotNil(t, state.CurrentQuestion)
	assert.Equal(t, "fill_template", state.CurrentQuestion.Mode)
	assert.Equal(t, "hablar", state.CurrentQuestion.Verb)

	// Starting twice conflicts.
	w = doJSON(t, r, http.MethodPost, "/api/sessions/"+id+"/start", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Every form is "habla", so grading is deterministic.
	w = doJSON(t, r, http.MethodPost, "/api/sessions/"+id+"/answers", map[string]any{"answer": "habla"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	answer := decodeBody[SubmitAnswerResponse](t, w)
	assert.True(t, answer.Correct)
	assert.False(t, answer.Finished)
	require.NotNil(t, answer.NextQuestion)

	w = doJSON(t, r, http.MethodPost, "/api/sessions/"+id+"/answers", map[string]any{"answer": "wrong"})
	require.Equal(t, http.StatusOK, w.Code)
	answer = decodeBody[SubmitAnswerResponse](t, w)
	assert.False(t, answer.Correct)
	assert.NotEmpty(t, answer.AcceptedAnswers)
	assert.Contains(t, answer.Explanation, "Correct answer:")

	// State reflects both answers.
	w = doJSON(t, r, http.MethodGet, "/api/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	state = decodeBody[SessionStateResponse](t, w)
	assert.Equal(t, 1, state.TotalCorrect)
	assert.Equal(t, 1, state.TotalWrong)
	assert.Equal(t, 2, state.TotalAnswered)

	// Early exit returns the summary.
	w = doJSON(t, r, http.MethodPost, "/api/sessions/"+id+"/exit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	result := decodeBody[ResultResponse](t, w)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, 1, result.Correct)
	assert.Equal(t, 1, result.Wrong)

	// A second exit conflicts.
	w = doJSON(t, r, http.MethodPost, "/api/sessions/"+id+"/exit", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMatchPairsFlowOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createSession(t, r, hablarPayload("match_pairs"))

	w := doJSON(t, r, http.MethodPost, "/api/sessions/"+id+"/start", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	state := decodeBody[SessionStateResponse](t, w)
	require.NotNil(t, state.CurrentQuestion)
	require.Equal(t, "match_pairs", state.CurrentQuestion.Mode)

	persons := state.CurrentQuestion.Persons
	conjugations := state.CurrentQuestion.Conjugations
	require.Len(t, persons, 6)
	require.Len(t, conjugations, 6)

	// Spanish person labels map straight onto the fixture's forms.
	answerByLabel := map[string]string{
		"yo":            "hablo",
		"tú":            "hablas",
		"él/ella/usted": "habla",
		"nosotros":      "hablamos",
		"vosotros":      "habláis",
		"ellos/ustedes": "hablan",
	}

	tapURL := "/api/sessions/" + id + "/taps"
	for i, label := range persons {
		w = doJSON(t, r, http.MethodPost, tapURL, map[string]any{"list": "persons", "index": i})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		tap := decodeBody[TapResponse](t, w)
		require.Equal(t, "selected", tap.Result)

		want, ok := answerByLabel[label]
		require.True(t, ok, "unexpected person label %q", label)

		conjIndex := -1
		for j, answer := range conjugations {
			if answer == want {
				conjIndex = j
				break
			}
		}
		require.GreaterOrEqual(t, conjIndex, 0)

		w = doJSON(t, r, http.MethodPost, tapURL, map[string]any{"list": "conjugations", "index": conjIndex})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		tap = decodeBody[TapResponse](t, w)

		if i == len(persons)-1 {
			assert.Equal(t, "completed", tap.Result)
			assert.True(t, tap.Completed)
			assert.Equal(t, len(persons), tap.MatchedCount)
			// Only one combo exists, so the board regenerates.
			require.NotNil(t, tap.NextQuestion)
			assert.Equal(t, "match_pairs", tap.NextQuestion.Mode)
		} else {
			assert.Equal(t, "matched", tap.Result)
			assert.Equal(t, i+1, tap.MatchedCount)
		}
	}
}

func TestTapValidation(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createSession(t, r, hablarPayload("match_pairs"))

	w := doJSON(t, r, http.MethodPost, "/api/sessions/"+id+"/start", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/sessions/"+id+"/taps", map[string]any{"list": "columns", "index": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/sessions/"+id+"/taps", map[string]any{"list": "persons"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteSession(t *testing.T) {
	r, sessions := newTestRouter(t)
	id := createSession(t, r, hablarPayload("mixed"))
	require.Equal(t, 1, sessions.Len())

	w := doJSON(t, r, http.MethodDelete, "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, sessions.Len())

	w = doJSON(t, r, http.MethodDelete, "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmptyVerbSnapshotCannotStart(t *testing.T) {
	r, _ := newTestRouter(t)

	// A verb whose only tense is locked leaves the queue empty.
	payload := hablarPayload("fill_template")
	verb := payload["verbs"].([]map[string]any)[0]
	conj := verb["conjugations"].(map[string]any)["present"].(map[string]any)
	delete(conj, "unlocked_at")
	verb["conjugations"] = map[string]any{
		"past": map[string]any{
			"forms": conj["forms"],
		},
	}

	id := createSession(t, r, payload)
	w := doJSON(t, r, http.MethodPost, "/api/sessions/"+id+"/start", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
}
