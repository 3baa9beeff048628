package catalog

import (
	"fmt"
	"strings"

	"github.com/AdamMil/BirdhouseManor/internal/templates"
)

// Kind selects which deck an action card belongs to.
type Kind uint8

const (
	KindEncounter Kind = iota
	KindTreasure
	KindPower
	KindMonsterPower
)

var kindNames = []string{"encounter", "treasure", "power", "monster power"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Subtype is the kind-specific type of an action card, e.g. a trap encounter or a daily power.
type Subtype uint8

// Encounter subtypes
const (
	EncounterEnvironment Subtype = iota
	EncounterEvent
	EncounterTrap
)

// Treasure subtypes
const (
	TreasureBlessing Subtype = iota
	TreasureFortune
	TreasureItem
)

// Power subtypes
const (
	PowerAtWill Subtype = iota
	PowerDaily
	PowerUtility
)

var subtypeNames = map[Kind][]string{
	KindEncounter: {"environment", "event", "trap"},
	KindTreasure:  {"blessing", "fortune", "item"},
	KindPower:     {"at_will", "daily", "utility"},
}

// ParseSubtype parses the subtype of a card of the given kind, case-insensitively.
func ParseSubtype(kind Kind, s string) (Subtype, error) {
	names := subtypeNames[kind]
	for i, name := range names {
		if strings.EqualFold(s, name) {
			return Subtype(i), nil
		}
	}
	return 0, fmt.Errorf("unknown %s type %q (expected %s)", kind, s, strings.Join(names, ", "))
}

// SubtypeName returns the name of a subtype of the given kind.
func SubtypeName(kind Kind, t Subtype) string {
	names := subtypeNames[kind]
	if int(t) < len(names) {
		return names[t]
	}
	return ""
}

// Common holds the attributes every card shares.
type Common struct {
	Name        string              `cbor:"name"`
	Count       int                 `cbor:"count"`        // Copies in the default deck
	AttackBonus string              `cbor:"attack_bonus"` // e.g. "+7"
	Damage      string              `cbor:"damage"`       // e.g. "2 damage"
	Description string              `cbor:"description"`  // Rules text markup
	Flavor      string              `cbor:"flavor"`       // Flavor text
	Template    *templates.Template `cbor:"template"`     // Visual layout, nil if none
}

// Card is an action card: an encounter, treasure, power or monster power. Subtype is
// interpreted according to Kind.
type Card struct {
	Kind Kind `cbor:"kind"`
	Common
	Subtype  Subtype `cbor:"subtype"`
	Class    string  `cbor:"class,omitempty"` // Hero class a power belongs to
	IsAttack bool    `cbor:"is_attack"`
	IsMove   bool    `cbor:"is_move"`
}

// TypeName returns the card's subtype name, or "" for monster powers.
func (c *Card) TypeName() string {
	return SubtypeName(c.Kind, c.Subtype)
}

func (c *Card) String() string {
	if t := c.TypeName(); t != "" {
		return fmt.Sprintf("%s (%s %s)", c.Name, t, c.Kind)
	}
	return fmt.Sprintf("%s (%s)", c.Name, c.Kind)
}

func (c Card) clone() Card {
	c.Template = c.Template.Clone()
	return c
}
