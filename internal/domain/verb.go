package domain

import (
	"errors"
	"time"
)

// Verb-specific validation errors
var (
	// ErrVerbIDEmpty is returned when a verb ID is empty.
	ErrVerbIDEmpty = errors.New("verb ID cannot be empty")

	// ErrVerbWordEmpty is returned when a verb's surface word is empty.
	ErrVerbWordEmpty = errors.New("verb word cannot be empty")

	// ErrNoConjugations is returned when a verb carries no conjugation data.
	ErrNoConjugations = errors.New("verb has no conjugation tables")
)

// Tense identifies a verb tense in a conjugation table.
type Tense string

// Tenses supported across target languages.
const (
	TensePresent     Tense = "present"
	TensePast        Tense = "past"
	TenseFuture      Tense = "future"
	TenseConditional Tense = "conditional"
	TenseImperative  Tense = "imperative"
	TenseSubjunctive Tense = "subjunctive"
	TenseImperfect   Tense = "imperfect"
)

// Person identifies a grammatical person using the normalized storage keys.
type Person string

// The six normalized grammatical persons.
const (
	PersonFirstSingular  Person = "first_singular"
	PersonSecondSingular Person = "second_singular"
	PersonThirdSingular  Person = "third_singular"
	PersonFirstPlural    Person = "first_plural"
	PersonSecondPlural   Person = "second_plural"
	PersonThirdPlural    Person = "third_plural"
)

// AllPersons lists the normalized persons in their natural order.
var AllPersons = []Person{
	PersonFirstSingular,
	PersonSecondSingular,
	PersonThirdSingular,
	PersonFirstPlural,
	PersonSecondPlural,
	PersonThirdPlural,
}

// nativePersonLabels maps each person to its native-language (English) label.
var nativePersonLabels = map[Person]string{
	PersonFirstSingular:  "I",
	PersonSecondSingular: "you (singular)",
	PersonThirdSingular:  "he/she/it",
	PersonFirstPlural:    "we",
	PersonSecondPlural:   "you (plural)",
	PersonThirdPlural:    "they",
}

// NativeLabel returns the native-language label for a person, falling back
// to the raw person key for unknown values.
func (p Person) NativeLabel() string {
	if label, ok := nativePersonLabels[p]; ok {
		return label
	}
	return string(p)
}

// Form is a single conjugated surface form. Languages with gendered past or
// conditional forms carry both variants; all other tenses fill only Value.
type Form struct {
	Value     string `json:"value,omitempty"`
	Masculine string `json:"masculine,omitempty"`
	Feminine  string `json:"feminine,omitempty"`
}

// SingleForm wraps a plain surface form.
func SingleForm(value string) Form {
	return Form{Value: value}
}

// GenderedForm wraps a masculine/feminine pair.
func GenderedForm(masculine, feminine string) Form {
	return Form{Masculine: masculine, Feminine: feminine}
}

// IsGendered reports whether the form carries gender variants.
func (f Form) IsGendered() bool {
	return f.Masculine != "" || f.Feminine != ""
}

// IsEmpty reports whether the form carries no surface text at all.
func (f Form) IsEmpty() bool {
	return f.Value == "" && f.Masculine == "" && f.Feminine == ""
}

// Resolve collapses the form to a single surface string. For gendered forms
// the masculine variant is preferred, falling back to feminine when the
// masculine is absent. Call sites that need a single string (multiple-choice
// options, match pairs) must go through this method so the preference stays
// in one place.
func (f Form) Resolve() string {
	if f.IsGendered() {
		if f.Masculine != "" {
			return f.Masculine
		}
		return f.Feminine
	}
	return f.Value
}

// Accepted returns every non-empty surface form a learner may answer with.
func (f Form) Accepted() []string {
	if f.IsGendered() {
		forms := make([]string, 0, 2)
		if f.Masculine != "" {
			forms = append(forms, f.Masculine)
		}
		if f.Feminine != "" {
			forms = append(forms, f.Feminine)
		}
		return forms
	}
	if f.Value == "" {
		return nil
	}
	return []string{f.Value}
}

// TenseEntry is one tense's worth of conjugation data for a verb. The
// present tense is always practicable; every other tense requires the
// UnlockedAt marker before it enters the drill queue.
type TenseEntry struct {
	Forms      map[Person]Form `json:"forms"`
	UnlockedAt *time.Time      `json:"unlocked_at,omitempty"`
}

// Form returns the conjugated form for a person and whether it is present
// and non-empty.
func (e TenseEntry) Form(person Person) (Form, bool) {
	form, ok := e.Forms[person]
	if !ok || form.IsEmpty() {
		return Form{}, false
	}
	return form, true
}

// VerbEntry is one verb from the content snapshot supplied by the host at
// session construction. It is read-only for the life of a session.
type VerbEntry struct {
	ID           string               `json:"id"`
	Word         string               `json:"word"`
	Translation  string               `json:"translation"`
	Conjugations map[Tense]TenseEntry `json:"conjugations"`
}

// Validate checks that the entry is usable as drill content.
func (v *VerbEntry) Validate() error {
	if v.ID == "" {
		return ErrVerbIDEmpty
	}
	if v.Word == "" {
		return ErrVerbWordEmpty
	}
	if len(v.Conjugations) == 0 {
		return ErrNoConjugations
	}
	return nil
}

// TenseUnlocked reports whether a tense is available for practice on this
// verb: the tense data must exist, and any tense other than present must
// carry the unlock marker.
func (v *VerbEntry) TenseUnlocked(tense Tense) bool {
	entry, ok := v.Conjugations[tense]
	if !ok || len(entry.Forms) == 0 {
		return false
	}
	if tense == TensePresent {
		return true
	}
	return entry.UnlockedAt != nil
}
