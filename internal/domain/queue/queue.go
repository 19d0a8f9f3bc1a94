// Package queue implements the rotating pool of verb+tense combinations a
// drill session cycles through. Combinations answered wrong are biased back
// toward the front so they recur sooner; combinations answered right rotate
// to the tail.
package queue

import (
	"math/rand"

	"github.com/phrazzld/verbdojo/internal/domain"
)

// Combo is one drillable (verb, tense) unit. CorrectStreak is advisory
// metadata carried through reordering; only the queue mutates it.
type Combo struct {
	Verb          domain.VerbEntry
	Tense         domain.Tense
	CorrectStreak int
}

// Queue holds the ordered working set of combinations for one session.
// The multiset of combinations is fixed at construction; MarkCorrect and
// MarkWrong only reorder, never insert or remove.
type Queue struct {
	combos  []Combo
	initial []Combo
	rng     *rand.Rand
}

// New builds a queue with one combination per unlocked (verb, tense) pair.
// Tenses absent from a verb's conjugation table, or lacking the unlock
// marker, are skipped. When focus is non-nil, combinations for every other
// tense are excluded entirely. The resulting set is uniformly shuffled with
// the provided source.
func New(verbs []domain.VerbEntry, tenses []domain.Tense, focus *domain.Tense, rng *rand.Rand) *Queue {
	var combos []Combo
	for _, verb := range verbs {
		for _, tense := range tenses {
			if !verb.TenseUnlocked(tense) {
				continue
			}
			if focus != nil && tense != *focus {
				continue
			}
			combos = append(combos, Combo{Verb: verb, Tense: tense})
		}
	}

	q := &Queue{
		combos:  combos,
		initial: append([]Combo(nil), combos...),
		rng:     rng,
	}
	q.shuffle(q.combos)
	return q
}

// Len returns the number of combinations in the queue.
func (q *Queue) Len() int {
	return len(q.combos)
}

// Peek returns the combination at the head without removing it. The second
// return value is false when the queue is empty.
func (q *Queue) Peek() (Combo, bool) {
	if len(q.combos) == 0 {
		return Combo{}, false
	}
	return q.combos[0], true
}

// MarkCorrect moves the head combination to the tail with its streak
// incremented.
func (q *Queue) MarkCorrect() {
	if len(q.combos) == 0 {
		return
	}
	head := q.combos[0]
	head.CorrectStreak++
	q.combos = append(q.combos[1:], head)
}

// MarkWrong resets the head combination's streak and reinserts it within
// roughly the first third of the remaining queue, so it recurs soon but not
// immediately next (unless it is the only element).
func (q *Queue) MarkWrong() {
	if len(q.combos) == 0 {
		return
	}
	head := q.combos[0]
	head.CorrectStreak = 0
	rest := q.combos[1:]

	remaining := float64(len(rest))
	insertAt := int(min(remaining, max(1, remaining/3)))

	reordered := make([]Combo, 0, len(q.combos))
	reordered = append(reordered, rest[:insertAt]...)
	reordered = append(reordered, head)
	reordered = append(reordered, rest[insertAt:]...)
	q.combos = reordered
}

// Reset reshuffles the original combination set, discarding accumulated
// streak state.
func (q *Queue) Reset() {
	q.combos = append([]Combo(nil), q.initial...)
	q.shuffle(q.combos)
}

// Combos returns a copy of the current ordering, front first.
func (q *Queue) Combos() []Combo {
	return append([]Combo(nil), q.combos...)
}

func (q *Queue) shuffle(combos []Combo) {
	q.rng.Shuffle(len(combos), func(i, j int) {
		combos[i], combos[j] = combos[j], combos[i]
	})
}
