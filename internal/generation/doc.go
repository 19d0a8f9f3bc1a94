// Package generation turns a queued verb+tense combination into a fully
// formed, renderable question for one of the drill modes, choosing the
// grading data from the verb's conjugation table. Generation is pure apart
// from its injected random source.
package generation
