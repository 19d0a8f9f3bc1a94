package generation

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/verbdojo/internal/domain"
	"github.com/phrazzld/verbdojo/internal/domain/queue"
	"github.com/phrazzld/verbdojo/internal/language"
)

func spanish(t *testing.T) language.Inventory {
	t.Helper()
	inv, err := language.Lookup("es")
	require.NoError(t, err)
	return inv
}

func polish(t *testing.T) language.Inventory {
	t.Helper()
	inv, err := language.Lookup("pl")
	require.NoError(t, err)
	return inv
}

func unlockTime() *time.Time {
	ts := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return &ts
}

func hablar() domain.VerbEntry {
	return domain.VerbEntry{
		ID:          "hablar",
		Word:        "hablar",
		Translation: "to speak",
		Conjugations: map[domain.Tense]domain.TenseEntry{
			domain.TensePresent: {
				Forms: map[domain.Person]domain.Form{
					domain.PersonFirstSingular:  domain.SingleForm("hablo"),
					domain.PersonSecondSingular: domain.SingleForm("hablas"),
					domain.PersonThirdSingular:  domain.SingleForm("habla"),
					domain.PersonFirstPlural:    domain.SingleForm("hablamos"),
					domain.PersonSecondPlural:   domain.SingleForm("habláis"),
					domain.PersonThirdPlural:    domain.SingleForm("hablan"),
				},
			},
			domain.TenseImperative: {
				Forms: map[domain.Person]domain.Form{
					domain.PersonSecondSingular: domain.SingleForm("habla"),
					domain.PersonFirstPlural:    domain.SingleForm("hablemos"),
					domain.PersonSecondPlural:   domain.SingleForm("hablad"),
				},
				UnlockedAt: unlockTime(),
			},
		},
	}
}

func mowic() domain.VerbEntry {
	return domain.VerbEntry{
		ID:          "mowic",
		Word:        "mówić",
		Translation: "to speak",
		Conjugations: map[domain.Tense]domain.TenseEntry{
			domain.TensePast: {
				Forms: map[domain.Person]domain.Form{
					domain.PersonFirstSingular:  domain.GenderedForm("mówiłem", "mówiłam"),
					domain.PersonSecondSingular: domain.GenderedForm("mówiłeś", "mówiłaś"),
					domain.PersonThirdSingular:  domain.GenderedForm("mówił", "mówiła"),
				},
				UnlockedAt: unlockTime(),
			},
		},
	}
}

func comboFor(verb domain.VerbEntry, tense domain.Tense) queue.Combo {
	return queue.Combo{Verb: verb, Tense: tense}
}

func TestGenerateFillTemplate(t *testing.T) {
	t.Parallel()

	gen := New(spanish(t), rand.New(rand.NewSource(1)))
	q, err := gen.Generate(comboFor(hablar(), domain.TensePresent), domain.ModeFillTemplate)
	require.NoError(t, err)

	ft, ok := q.(domain.FillTemplateQuestion)
	require.True(t, ok, "expected FillTemplateQuestion, got %T", q)
	assert.Equal(t, domain.ModeFillTemplate, ft.QuestionMode())
	assert.Equal(t, "hablar", ft.Verb.ID)
	assert.NotEmpty(t, ft.PersonLabel)
	assert.NotEmpty(t, ft.NativeLabel)
	assert.False(t, ft.CorrectAnswer.IsEmpty())
}

func TestGenerateFillTemplateKeepsGenderedPair(t *testing.T) {
	t.Parallel()

	gen := New(polish(t), rand.New(rand.NewSource(1)))
	q, err := gen.Generate(comboFor(mowic(), domain.TensePast), domain.ModeFillTemplate)
	require.NoError(t, err)

	ft := q.(domain.FillTemplateQuestion)
	assert.True(t, ft.CorrectAnswer.IsGendered(), "gendered pair must survive into the question")
	assert.Len(t, ft.CorrectAnswer.Accepted(), 2)
}

func TestGenerateMultipleChoiceSoundness(t *testing.T) {
	t.Parallel()

	for seed := int64(0); seed < 50; seed++ {
		gen := New(spanish(t), rand.New(rand.NewSource(seed)))
		q, err := gen.Generate(comboFor(hablar(), domain.TensePresent), domain.ModeMultipleChoice)
		require.NoError(t, err)

		mc, ok := q.(domain.MultipleChoiceQuestion)
		require.True(t, ok, "expected MultipleChoiceQuestion, got %T", q)

		assert.LessOrEqual(t, len(mc.Options), 4)
		seen := map[string]int{}
		for _, opt := range mc.Options {
			seen[opt]++
		}
		assert.Equal(t, 1, seen[mc.CorrectAnswer], "correct answer must appear exactly once")
		for opt, n := range seen {
			assert.Equal(t, 1, n, "option %q duplicated", opt)
		}
	}
}

func TestGenerateMultipleChoiceResolvesGenderedForms(t *testing.T) {
	t.Parallel()

	gen := New(polish(t), rand.New(rand.NewSource(3)))
	q, err := gen.Generate(comboFor(mowic(), domain.TensePast), domain.ModeMultipleChoice)
	require.NoError(t, err)

	mc := q.(domain.MultipleChoiceQuestion)
	// Masculine preferred when collapsing to a single string.
	masculine := map[string]bool{"mówiłem": true, "mówiłeś": true, "mówił": true}
	assert.True(t, masculine[mc.CorrectAnswer], "correct answer %q not a masculine form", mc.CorrectAnswer)
	for _, opt := range mc.Options {
		assert.True(t, masculine[opt], "option %q not a masculine form", opt)
	}
}

func TestGenerateMultipleChoiceAcceptsFewOptions(t *testing.T) {
	t.Parallel()

	verb := domain.VerbEntry{
		ID:   "ser",
		Word: "ser",
		Conjugations: map[domain.Tense]domain.TenseEntry{
			domain.TensePresent: {
				Forms: map[domain.Person]domain.Form{
					domain.PersonFirstSingular:  domain.SingleForm("soy"),
					domain.PersonSecondSingular: domain.SingleForm("eres"),
				},
			},
		},
	}

	gen := New(spanish(t), rand.New(rand.NewSource(1)))
	q, err := gen.Generate(comboFor(verb, domain.TensePresent), domain.ModeMultipleChoice)
	require.NoError(t, err)

	mc := q.(domain.MultipleChoiceQuestion)
	assert.Len(t, mc.Options, 2, "two usable forms yield a two-entry option list")
	assert.Contains(t, mc.Options, mc.CorrectAnswer)
}

func TestGenerateMatchPairs(t *testing.T) {
	t.Parallel()

	gen := New(spanish(t), rand.New(rand.NewSource(1)))
	q, err := gen.Generate(comboFor(hablar(), domain.TensePresent), domain.ModeMatchPairs)
	require.NoError(t, err)

	mp, ok := q.(domain.MatchPairsQuestion)
	require.True(t, ok, "expected MatchPairsQuestion, got %T", q)
	assert.Len(t, mp.Pairs, 6, "full six-person tense covers every person")
	for _, pair := range mp.Pairs {
		assert.NotEmpty(t, pair.CorrectAnswer)
		assert.NotEmpty(t, pair.PersonLabel)
	}
}

func TestGenerateMatchPairsLimitedTense(t *testing.T) {
	t.Parallel()

	gen := New(spanish(t), rand.New(rand.NewSource(1)))
	q, err := gen.Generate(comboFor(hablar(), domain.TenseImperative), domain.ModeMatchPairs)
	require.NoError(t, err)

	mp := q.(domain.MatchPairsQuestion)
	assert.Len(t, mp.Pairs, 3, "imperative conjugates a reduced person set")
}

func TestGenerateMatchPairsNeedsTwoPersons(t *testing.T) {
	t.Parallel()

	verb := domain.VerbEntry{
		ID:   "ir",
		Word: "ir",
		Conjugations: map[domain.Tense]domain.TenseEntry{
			domain.TensePresent: {
				Forms: map[domain.Person]domain.Form{
					domain.PersonFirstSingular: domain.SingleForm("voy"),
				},
			},
		},
	}

	gen := New(spanish(t), rand.New(rand.NewSource(1)))
	_, err := gen.Generate(comboFor(verb, domain.TensePresent), domain.ModeMatchPairs)
	assert.ErrorIs(t, err, ErrNoQuestion)
}

func TestGenerateMissingTenseData(t *testing.T) {
	t.Parallel()

	gen := New(spanish(t), rand.New(rand.NewSource(1)))
	_, err := gen.Generate(comboFor(hablar(), domain.TenseSubjunctive), domain.ModeFillTemplate)
	assert.ErrorIs(t, err, ErrNoQuestion)
}

func TestGenerateAudioModeRejected(t *testing.T) {
	t.Parallel()

	gen := New(spanish(t), rand.New(rand.NewSource(1)))
	_, err := gen.Generate(comboFor(hablar(), domain.TensePresent), domain.ModeAudioType)
	assert.ErrorIs(t, err, ErrUnsupportedMode)
}

func TestMixedModeNeverYieldsAudio(t *testing.T) {
	t.Parallel()

	combo := comboFor(hablar(), domain.TensePresent)
	seen := map[domain.Mode]bool{}
	for seed := int64(0); seed < 200; seed++ {
		gen := New(spanish(t), rand.New(rand.NewSource(seed)))
		q, err := gen.Generate(combo, domain.ModeMixed)
		if errors.Is(err, ErrNoQuestion) {
			continue
		}
		require.NoError(t, err)
		mode := q.QuestionMode()
		assert.NotEqual(t, domain.ModeAudioType, mode)
		seen[mode] = true
	}

	// All three implemented modes should show up across 200 seeds.
	assert.True(t, seen[domain.ModeFillTemplate])
	assert.True(t, seen[domain.ModeMultipleChoice])
	assert.True(t, seen[domain.ModeMatchPairs])
}
