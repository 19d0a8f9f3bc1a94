package api

// Common request/response structures

// CreateSessionRequest defines the payload for creating a drill session.
// The verbs snapshot is supplied by the caller; the engine never fetches
// content itself.
type CreateSessionRequest struct {
	Language   string      `json:"language" validate:"required"`
	Mode       string      `json:"mode,omitempty" validate:"omitempty,oneof=mixed match_pairs fill_template multiple_choice"`
	FocusTense string      `json:"focus_tense,omitempty"`
	Verbs      []VerbEntry `json:"verbs" validate:"required,min=1"`
}

// VerbEntry mirrors the domain verb snapshot on the wire.
type VerbEntry struct {
	ID           string                           `json:"id" validate:"required"`
	Word         string                           `json:"word" validate:"required"`
	Translation  string                           `json:"translation"`
	Conjugations map[string]ConjugationTableEntry `json:"conjugations" validate:"required,min=1"`
}

// ConjugationTableEntry is one tense's conjugation table.
type ConjugationTableEntry struct {
	Forms      map[string]FormEntry `json:"forms" validate:"required,min=1"`
	UnlockedAt string               `json:"unlocked_at,omitempty"`
}

// FormEntry is a conjugated form, either a single value or a
// masculine/feminine pair.
type FormEntry struct {
	Value     string `json:"value,omitempty"`
	Masculine string `json:"masculine,omitempty"`
	Feminine  string `json:"feminine,omitempty"`
}

// CreateSessionResponse defines the successful response for session creation.
type CreateSessionResponse struct {
	SessionID       string `json:"session_id"`
	CombosAvailable int    `json:"combos_available"`
}

// QuestionResponse is the tagged rendering of the current question. Only
// the fields for the question's mode are populated.
type QuestionResponse struct {
	Mode        string `json:"mode"`
	Verb        string `json:"verb"`
	Translation string `json:"translation,omitempty"`
	Tense       string `json:"tense"`

	// Fill-template and multiple-choice fields.
	PersonLabel string `json:"person_label,omitempty"`
	NativeLabel string `json:"native_label,omitempty"`

	// Multiple-choice options in display order.
	Options []string `json:"options,omitempty"`

	// Match-pairs columns in display order.
	Persons      []string `json:"persons,omitempty"`
	Conjugations []string `json:"conjugations,omitempty"`
}

// SessionStateResponse renders the session for GET requests.
type SessionStateResponse struct {
	Phase           string            `json:"phase"`
	Mode            string            `json:"mode"`
	FocusTense      string            `json:"focus_tense,omitempty"`
	Streak          int               `json:"streak"`
	LongestStreak   int               `json:"longest_streak"`
	TotalCorrect    int               `json:"total_correct"`
	TotalWrong      int               `json:"total_wrong"`
	XPEarned        int               `json:"xp_earned"`
	TotalAnswered   int               `json:"total_answered"`
	CurrentQuestion *QuestionResponse `json:"current_question,omitempty"`
	Result          *ResultResponse   `json:"result,omitempty"`
}

// SubmitAnswerRequest defines the payload for answering the current
// fill-template or multiple-choice question.
type SubmitAnswerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

// SubmitAnswerResponse reports the grading outcome and, when the session
// continues, the next question.
type SubmitAnswerResponse struct {
	Correct         bool              `json:"correct"`
	XPDelta         int               `json:"xp_delta"`
	Explanation     string            `json:"explanation,omitempty"`
	AcceptedAnswers []string          `json:"accepted_answers,omitempty"`
	Finished        bool              `json:"finished"`
	NextQuestion    *QuestionResponse `json:"next_question,omitempty"`
	Result          *ResultResponse   `json:"result,omitempty"`
}

// TapRequest defines the payload for one tap in a match-pairs question.
type TapRequest struct {
	List  string `json:"list" validate:"required,oneof=persons conjugations"`
	Index *int   `json:"index" validate:"required,gte=0"`
}

// TapResponse reports the tap outcome and the board state.
type TapResponse struct {
	Result        string            `json:"result"`
	MatchedCount  int               `json:"matched_count"`
	Completed     bool              `json:"completed"`
	Finished      bool              `json:"finished"`
	NextQuestion  *QuestionResponse `json:"next_question,omitempty"`
	SessionResult *ResultResponse   `json:"session_result,omitempty"`
}

// ResultResponse renders the session summary.
type ResultResponse struct {
	TotalQuestions int `json:"total_questions"`
	Correct        int `json:"correct"`
	Wrong          int `json:"wrong"`
	LongestStreak  int `json:"longest_streak"`
	XPEarned       int `json:"xp_earned"`
}
