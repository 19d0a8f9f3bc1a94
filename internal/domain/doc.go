// Package domain contains the core business entities and value objects of
// the drill engine: verb entries with their conjugation tables, grammatical
// persons, the question variants presented to the learner, and the session
// state owned by the session controller. It represents the heart of the
// system, independent of any specific infrastructure or delivery mechanism.
package domain
