// Package language supplies the per-target-language tense inventory the
// drill engine consumes: which tenses exist, how each is structured, and
// which grammatical persons a tense conjugates for. The engine treats this
// package as a read-only collaborator.
package language

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/phrazzld/verbdojo/internal/domain"
)

// ErrUnsupportedLanguage is returned when no inventory exists for a code.
var ErrUnsupportedLanguage = errors.New("unsupported target language")

// Structure describes how a tense conjugates.
type Structure string

// Tense structures. Standard tenses conjugate all six persons; gendered
// tenses additionally split each person by gender; limited tenses (eg.
// imperative) conjugate a reduced person set; simple tenses keep the
// six-person layout with mostly identical forms.
const (
	StructureStandard Structure = "standard"
	StructureGendered Structure = "gendered"
	StructureLimited  Structure = "limited"
	StructureSimple   Structure = "simple"
)

// Inventory is the verb-tense metadata for one target language.
type Inventory struct {
	Code              string
	Name              string
	Tenses            []domain.Tense
	Structures        map[domain.Tense]Structure
	PersonLabels      []string
	ImperativePersons []domain.Person
}

var defaultImperativePersons = []domain.Person{
	domain.PersonSecondSingular,
	domain.PersonFirstPlural,
	domain.PersonSecondPlural,
}

// inventories holds the built-in language configurations. English covers the
// minimal-conjugation case, Spanish a full Romance paradigm with a limited
// imperative, Polish the Slavic gendered past/conditional case.
var inventories = map[string]Inventory{
	"en": {
		Code:   "en",
		Name:   "English",
		Tenses: []domain.Tense{domain.TensePresent, domain.TensePast, domain.TenseFuture, domain.TenseConditional},
		Structures: map[domain.Tense]Structure{
			domain.TensePresent:     StructureSimple,
			domain.TensePast:        StructureSimple,
			domain.TenseFuture:      StructureSimple,
			domain.TenseConditional: StructureSimple,
		},
		PersonLabels:      []string{"I", "you", "he/she/it", "we", "you (pl)", "they"},
		ImperativePersons: defaultImperativePersons,
	},
	"es": {
		Code: "es",
		Name: "Spanish",
		Tenses: []domain.Tense{
			domain.TensePresent,
			domain.TensePast,
			domain.TenseImperfect,
			domain.TenseFuture,
			domain.TenseConditional,
			domain.TenseImperative,
			domain.TenseSubjunctive,
		},
		Structures: map[domain.Tense]Structure{
			domain.TensePresent:     StructureStandard,
			domain.TensePast:        StructureStandard,
			domain.TenseImperfect:   StructureStandard,
			domain.TenseFuture:      StructureStandard,
			domain.TenseConditional: StructureStandard,
			domain.TenseImperative:  StructureLimited,
			domain.TenseSubjunctive: StructureStandard,
		},
		PersonLabels:      []string{"yo", "tú", "él/ella/usted", "nosotros", "vosotros", "ellos/ustedes"},
		ImperativePersons: defaultImperativePersons,
	},
	"pl": {
		Code: "pl",
		Name: "Polish",
		Tenses: []domain.Tense{
			domain.TensePresent,
			domain.TensePast,
			domain.TenseFuture,
			domain.TenseConditional,
			domain.TenseImperative,
		},
		Structures: map[domain.Tense]Structure{
			domain.TensePresent:     StructureStandard,
			domain.TensePast:        StructureGendered,
			domain.TenseFuture:      StructureStandard,
			domain.TenseConditional: StructureGendered,
			domain.TenseImperative:  StructureLimited,
		},
		PersonLabels:      []string{"ja", "ty", "on/ona/ono", "my", "wy", "oni/one"},
		ImperativePersons: defaultImperativePersons,
	},
}

// Lookup returns the inventory for a language code.
func Lookup(code string) (Inventory, error) {
	inv, ok := inventories[code]
	if !ok {
		return Inventory{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	return inv, nil
}

// Supported lists the language codes with a built-in inventory.
func Supported() []string {
	return lo.Keys(inventories)
}

// HasTense reports whether a tense belongs to the inventory.
func (inv Inventory) HasTense(tense domain.Tense) bool {
	return lo.Contains(inv.Tenses, tense)
}

// Structure returns the structure of a tense, defaulting to standard for
// tenses without an explicit entry.
func (inv Inventory) Structure(tense domain.Tense) Structure {
	if s, ok := inv.Structures[tense]; ok {
		return s
	}
	return StructureStandard
}

// IsGendered reports whether a tense splits forms by gender.
func (inv Inventory) IsGendered(tense domain.Tense) bool {
	return inv.Structure(tense) == StructureGendered
}

// IsLimited reports whether a tense conjugates a reduced person set.
func (inv Inventory) IsLimited(tense domain.Tense) bool {
	return inv.Structure(tense) == StructureLimited
}

// EligiblePersons returns the grammatical persons a tense conjugates for:
// the imperative subset for limited tenses, all six persons otherwise.
func (inv Inventory) EligiblePersons(tense domain.Tense) []domain.Person {
	if inv.IsLimited(tense) {
		persons := inv.ImperativePersons
		if len(persons) == 0 {
			persons = defaultImperativePersons
		}
		return persons
	}
	return domain.AllPersons
}

// PersonLabel returns the target-language label for a person, falling back
// to the raw person key when no label is configured.
func (inv Inventory) PersonLabel(person domain.Person) string {
	idx := lo.IndexOf(domain.AllPersons, person)
	if idx < 0 || idx >= len(inv.PersonLabels) {
		return string(person)
	}
	return inv.PersonLabels[idx]
}
