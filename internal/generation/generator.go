package generation

import (
	"fmt"
	"math/rand"

	"github.com/samber/lo"

	"github.com/phrazzld/verbdojo/internal/domain"
	"github.com/phrazzld/verbdojo/internal/domain/queue"
	"github.com/phrazzld/verbdojo/internal/language"
)

// mixedModes are the concrete modes the mixed pseudo-mode resolves to.
// Audio is deliberately absent: it stays modeled in the domain but is never
// generated.
var mixedModes = []domain.Mode{
	domain.ModeFillTemplate,
	domain.ModeMultipleChoice,
	domain.ModeMatchPairs,
}

// maxDistractors caps the alternative forms offered in multiple choice.
const maxDistractors = 3

// Generator produces drill questions for one target language.
type Generator struct {
	inventory language.Inventory
	rng       *rand.Rand
}

// New returns a Generator for the given language inventory, drawing
// randomness from the provided source.
func New(inventory language.Inventory, rng *rand.Rand) *Generator {
	return &Generator{inventory: inventory, rng: rng}
}

// Generate builds a question for the combination in the requested mode.
// The mixed pseudo-mode resolves to one concrete mode uniformly at random
// for this question only. Returns ErrNoQuestion when the combination's
// conjugation data cannot support the chosen mode.
func (g *Generator) Generate(combo queue.Combo, mode domain.Mode) (domain.Question, error) {
	tenseData, ok := combo.Verb.Conjugations[combo.Tense]
	if !ok || len(tenseData.Forms) == 0 {
		return nil, fmt.Errorf("%w: %s has no %s data", ErrNoQuestion, combo.Verb.ID, combo.Tense)
	}

	actual := mode
	if mode == domain.ModeMixed {
		actual = mixedModes[g.rng.Intn(len(mixedModes))]
	}

	base := domain.QuestionBase{Verb: combo.Verb, Tense: combo.Tense}
	persons := g.inventory.EligiblePersons(combo.Tense)

	switch actual {
	case domain.ModeFillTemplate:
		return g.fillTemplate(base, tenseData, persons)
	case domain.ModeMultipleChoice:
		return g.multipleChoice(base, tenseData, persons)
	case domain.ModeMatchPairs:
		return g.matchPairs(base, tenseData, persons)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMode, actual)
	}
}

// pickPerson selects one eligible person with a non-empty form, uniformly
// at random.
func (g *Generator) pickPerson(tenseData domain.TenseEntry, persons []domain.Person) (domain.Person, domain.Form, bool) {
	candidates := lo.Filter(persons, func(p domain.Person, _ int) bool {
		_, ok := tenseData.Form(p)
		return ok
	})
	if len(candidates) == 0 {
		return "", domain.Form{}, false
	}
	person := candidates[g.rng.Intn(len(candidates))]
	form, _ := tenseData.Form(person)
	return person, form, true
}

func (g *Generator) fillTemplate(
	base domain.QuestionBase,
	tenseData domain.TenseEntry,
	persons []domain.Person,
) (domain.Question, error) {
	person, form, ok := g.pickPerson(tenseData, persons)
	if !ok {
		return nil, fmt.Errorf("%w: no person with a usable form", ErrNoQuestion)
	}

	return domain.FillTemplateQuestion{
		QuestionBase:  base,
		PersonKey:     person,
		PersonLabel:   g.inventory.PersonLabel(person),
		NativeLabel:   person.NativeLabel(),
		CorrectAnswer: form,
	}, nil
}

func (g *Generator) multipleChoice(
	base domain.QuestionBase,
	tenseData domain.TenseEntry,
	persons []domain.Person,
) (domain.Question, error) {
	person, form, ok := g.pickPerson(tenseData, persons)
	if !ok {
		return nil, fmt.Errorf("%w: no person with a usable form", ErrNoQuestion)
	}
	correct := form.Resolve()

	// Distractors come from the other eligible persons' resolved forms.
	// Duplicate surface forms (common in simple tenses) are dropped so the
	// option list never repeats an entry.
	others := lo.FilterMap(persons, func(p domain.Person, _ int) (string, bool) {
		if p == person {
			return "", false
		}
		f, ok := tenseData.Form(p)
		if !ok {
			return "", false
		}
		resolved := f.Resolve()
		return resolved, resolved != "" && resolved != correct
	})
	others = lo.Uniq(others)
	g.rng.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})
	if len(others) > maxDistractors {
		others = others[:maxDistractors]
	}

	options := append([]string{correct}, others...)
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return domain.MultipleChoiceQuestion{
		QuestionBase:  base,
		PersonKey:     person,
		PersonLabel:   g.inventory.PersonLabel(person),
		NativeLabel:   person.NativeLabel(),
		CorrectAnswer: correct,
		Options:       options,
	}, nil
}

func (g *Generator) matchPairs(
	base domain.QuestionBase,
	tenseData domain.TenseEntry,
	persons []domain.Person,
) (domain.Question, error) {
	pairs := lo.FilterMap(persons, func(p domain.Person, _ int) (domain.MatchPair, bool) {
		form, ok := tenseData.Form(p)
		if !ok {
			return domain.MatchPair{}, false
		}
		return domain.MatchPair{
			PersonKey:     p,
			PersonLabel:   g.inventory.PersonLabel(p),
			CorrectAnswer: form.Resolve(),
		}, true
	})
	if len(pairs) < 2 {
		return nil, fmt.Errorf("%w: match pairs needs at least two persons, have %d", ErrNoQuestion, len(pairs))
	}

	return domain.MatchPairsQuestion{
		QuestionBase: base,
		Pairs:        pairs,
	}, nil
}
