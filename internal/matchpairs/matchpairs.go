// Package matchpairs runs the tap-to-match interaction for a match-pairs
// question: person labels on one side in natural order, conjugated forms on
// the other in a fixed shuffle, and a selection/match state machine that
// reports exactly one completion per question instance.
package matchpairs

import (
	"math/rand"

	"github.com/phrazzld/verbdojo/internal/domain"
)

// List tags which column a tap landed on.
type List string

// The two tappable lists.
const (
	ListPersons      List = "persons"
	ListConjugations List = "conjugations"
)

// TapResult describes the state transition a tap caused.
type TapResult string

// Tap outcomes. TapCompleted is reported exactly once, on the tap that
// matches the final pair.
const (
	// TapIgnored: the tapped item was already matched.
	TapIgnored TapResult = "ignored"
	// TapSelected: the tap selected (or re-selected) an item.
	TapSelected TapResult = "selected"
	// TapMatched: the tap completed a correct pair.
	TapMatched TapResult = "matched"
	// TapMismatch: the tap paired two items that do not belong together.
	TapMismatch TapResult = "mismatch"
	// TapCompleted: the tap matched the final pair.
	TapCompleted TapResult = "completed"
)

// Selection is the currently selected item, tagged by list.
type Selection struct {
	List  List `json:"list"`
	Index int  `json:"index"`
}

// WrongPair is the transient marker for the last mismatched attempt, kept
// only for negative feedback rendering. It does not affect matched state.
type WrongPair struct {
	PersonIndex      int `json:"person_index"`
	ConjugationIndex int `json:"conjugation_index"`
}

// shuffledConjugation is one entry of the display-ordered conjugation list,
// remembering which pair it came from.
type shuffledConjugation struct {
	Answer    string
	PairIndex int
}

// Game is the state machine for one match-pairs question instance.
type Game struct {
	pairs        []domain.MatchPair
	conjugations []shuffledConjugation
	matched      map[int]bool
	selected     *Selection
	wrongPair    *WrongPair
	completed    bool
}

// New builds a game from a question's pair list. The conjugation column is
// shuffled once; the person column keeps the pairs' natural order.
func New(pairs []domain.MatchPair, rng *rand.Rand) *Game {
	conjugations := make([]shuffledConjugation, len(pairs))
	for i, p := range pairs {
		conjugations[i] = shuffledConjugation{Answer: p.CorrectAnswer, PairIndex: i}
	}
	rng.Shuffle(len(conjugations), func(i, j int) {
		conjugations[i], conjugations[j] = conjugations[j], conjugations[i]
	})

	return &Game{
		pairs:        pairs,
		conjugations: conjugations,
		matched:      make(map[int]bool),
	}
}

// Pairs returns the person column in display order.
func (g *Game) Pairs() []domain.MatchPair {
	return g.pairs
}

// Conjugations returns the conjugation column in display order.
func (g *Game) Conjugations() []string {
	answers := make([]string, len(g.conjugations))
	for i, c := range g.conjugations {
		answers[i] = c.Answer
	}
	return answers
}

// MatchedCount returns how many pairs have been matched so far.
func (g *Game) MatchedCount() int {
	return len(g.matched)
}

// Completed reports whether every pair has been matched.
func (g *Game) Completed() bool {
	return g.completed
}

// Selected returns the current selection, or nil.
func (g *Game) Selected() *Selection {
	return g.selected
}

// WrongPair returns the transient mismatch marker, or nil. It is cleared by
// ClearWrong or implicitly by the next tap; the host renders it for a short
// pulse and then clears it.
func (g *Game) WrongPair() *WrongPair {
	return g.wrongPair
}

// ClearWrong clears the transient mismatch marker.
func (g *Game) ClearWrong() {
	g.wrongPair = nil
}

// Tap processes one tap on the given list and index. Out-of-range indices
// and taps after completion are ignored.
func (g *Game) Tap(list List, index int) TapResult {
	g.wrongPair = nil

	if g.completed {
		return TapIgnored
	}

	switch list {
	case ListPersons:
		if index < 0 || index >= len(g.pairs) {
			return TapIgnored
		}
		return g.tapPerson(index)
	case ListConjugations:
		if index < 0 || index >= len(g.conjugations) {
			return TapIgnored
		}
		return g.tapConjugation(index)
	default:
		return TapIgnored
	}
}

func (g *Game) tapPerson(index int) TapResult {
	if g.matched[index] {
		return TapIgnored
	}

	if g.selected != nil && g.selected.List == ListConjugations {
		conj := g.conjugations[g.selected.Index]
		if conj.PairIndex == index {
			return g.completeMatch(index)
		}
		g.wrongPair = &WrongPair{PersonIndex: index, ConjugationIndex: g.selected.Index}
		g.selected = nil
		return TapMismatch
	}

	// Nothing selected, or re-selecting within the person column.
	g.selected = &Selection{List: ListPersons, Index: index}
	return TapSelected
}

func (g *Game) tapConjugation(index int) TapResult {
	conj := g.conjugations[index]
	if g.matched[conj.PairIndex] {
		return TapIgnored
	}

	if g.selected != nil && g.selected.List == ListPersons {
		if conj.PairIndex == g.selected.Index {
			return g.completeMatch(conj.PairIndex)
		}
		g.wrongPair = &WrongPair{PersonIndex: g.selected.Index, ConjugationIndex: index}
		g.selected = nil
		return TapMismatch
	}

	g.selected = &Selection{List: ListConjugations, Index: index}
	return TapSelected
}

func (g *Game) completeMatch(pairIndex int) TapResult {
	g.matched[pairIndex] = true
	g.selected = nil
	if len(g.matched) == len(g.pairs) {
		g.completed = true
		return TapCompleted
	}
	return TapMatched
}
