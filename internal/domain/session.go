package domain

// Phase is the lifecycle state of a drill session.
type Phase string

// Session phases. PhaseFinished is terminal.
const (
	PhaseSelectingMode Phase = "selecting_mode"
	PhasePlaying       Phase = "playing"
	PhaseFinished      Phase = "finished"
)

// SessionState is the renderable state of a session, owned and mutated
// exclusively by the session controller.
type SessionState struct {
	Phase         Phase    `json:"phase"`
	SelectedMode  Mode     `json:"selected_mode"`
	FocusTense    *Tense   `json:"focus_tense,omitempty"`
	Streak        int      `json:"streak"`
	LongestStreak int      `json:"longest_streak"`
	TotalCorrect  int      `json:"total_correct"`
	TotalWrong    int      `json:"total_wrong"`
	XPEarned      int      `json:"xp_earned"`
	TotalAnswered int      `json:"total_answered"`
	Question      Question `json:"-"`
}

// SessionResult is the summary handed back to the host when a session
// finishes. It is the only externally durable artifact of a session.
type SessionResult struct {
	TotalQuestions int `json:"total_questions"`
	Correct        int `json:"correct"`
	Wrong          int `json:"wrong"`
	LongestStreak  int `json:"longest_streak"`
	XPEarned       int `json:"xp_earned"`
}
