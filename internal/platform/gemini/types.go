package gemini

// promptData represents the data passed to the prompt template.
type promptData struct {
	// Verb is the dictionary form being drilled.
	Verb string

	// Translation is the verb's meaning in the learner's language.
	Translation string

	// Tense is the grammatical tense under drill.
	Tense string

	// Person is the grammatical person under drill.
	Person string

	// CorrectAnswer is the reference conjugation.
	CorrectAnswer string

	// UserAnswer is the learner's submission.
	UserAnswer string
}

// verdictSchema represents the expected structure of a grading verdict from
// the Gemini API.
type verdictSchema struct {
	// Accepted reports whether the answer should count as correct.
	Accepted bool `json:"accepted"`

	// Explanation is short feedback for the learner, required when the
	// answer is rejected.
	Explanation string `json:"explanation,omitempty"`
}
