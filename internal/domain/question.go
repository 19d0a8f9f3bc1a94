package domain

// Mode selects how a combination is drilled.
type Mode string

// Available drill modes. ModeAudioType is modeled for forward compatibility
// but the generator never selects it.
const (
	ModeMixed          Mode = "mixed"
	ModeMatchPairs     Mode = "match_pairs"
	ModeFillTemplate   Mode = "fill_template"
	ModeMultipleChoice Mode = "multiple_choice"
	ModeAudioType      Mode = "audio_type"
)

// ValidModes lists the modes a host may request for a session.
var ValidModes = []Mode{
	ModeMixed,
	ModeMatchPairs,
	ModeFillTemplate,
	ModeMultipleChoice,
}

// Question is the tagged union of drill question variants. Each variant is
// an immutable snapshot taken at generation time; mutating the queue
// afterwards never changes an already-emitted question.
type Question interface {
	// QuestionMode returns the variant tag.
	QuestionMode() Mode
}

// QuestionBase carries the fields shared by every question variant.
type QuestionBase struct {
	Verb  VerbEntry `json:"verb"`
	Tense Tense     `json:"tense"`
}

// FillTemplateQuestion asks the learner to type the conjugation for one
// grammatical person. CorrectAnswer keeps the full (possibly gendered) form
// so grading can accept either variant.
type FillTemplateQuestion struct {
	QuestionBase
	PersonKey     Person `json:"person_key"`
	PersonLabel   string `json:"person_label"`
	NativeLabel   string `json:"native_label"`
	CorrectAnswer Form   `json:"correct_answer"`
}

// QuestionMode implements Question.
func (FillTemplateQuestion) QuestionMode() Mode { return ModeFillTemplate }

// MultipleChoiceQuestion asks the learner to pick the conjugation from a
// shuffled option list. Gendered forms are pre-resolved to a single string.
// Options contains the correct answer plus up to three distractors; fewer
// than four entries is accepted when the tense has too few distinct forms.
type MultipleChoiceQuestion struct {
	QuestionBase
	PersonKey     Person   `json:"person_key"`
	PersonLabel   string   `json:"person_label"`
	NativeLabel   string   `json:"native_label"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options"`
}

// QuestionMode implements Question.
func (MultipleChoiceQuestion) QuestionMode() Mode { return ModeMultipleChoice }

// MatchPair is one pronoun/conjugation pairing inside a MatchPairsQuestion.
type MatchPair struct {
	PersonKey     Person `json:"person_key"`
	PersonLabel   string `json:"person_label"`
	CorrectAnswer string `json:"correct_answer"`
}

// MatchPairsQuestion asks the learner to connect every unlocked person with
// its conjugation. Pairs always holds at least two entries.
type MatchPairsQuestion struct {
	QuestionBase
	Pairs []MatchPair `json:"pairs"`
}

// QuestionMode implements Question.
func (MatchPairsQuestion) QuestionMode() Mode { return ModeMatchPairs }

// AudioTypeQuestion is the reserved audio variant. It exists so hosts can
// model the mode, but the generator never produces it.
type AudioTypeQuestion struct {
	QuestionBase
	PersonKey     Person `json:"person_key"`
	PersonLabel   string `json:"person_label"`
	NativeLabel   string `json:"native_label"`
	CorrectAnswer Form   `json:"correct_answer"`
}

// QuestionMode implements Question.
func (AudioTypeQuestion) QuestionMode() Mode { return ModeAudioType }
