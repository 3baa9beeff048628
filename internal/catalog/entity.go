package catalog

import (
	"fmt"
	"slices"

	"github.com/AdamMil/BirdhouseManor/internal/templates"
)

// Skill is a passive ability a hero can gain.
type Skill struct {
	Name        string `cbor:"name"`
	Description string `cbor:"description"`
}

// Entity holds what heroes and monsters have in common.
type Entity struct {
	Name       string              `cbor:"name"`
	Count      int                 `cbor:"count"`
	Flavor     string              `cbor:"flavor"`
	Race       string              `cbor:"race"`
	TokenImage string              `cbor:"token_image"`
	Template   *templates.Template `cbor:"template"`
}

// HeroClass is a playable hero. Levels are sorted by level number.
type HeroClass struct {
	Entity
	Levels []Level `cbor:"levels"`
}

// Level returns the description of the given level.
func (h *HeroClass) Level(n int) (*Level, bool) {
	for i := range h.Levels {
		if h.Levels[i].Level == n {
			return &h.Levels[i], true
		}
	}
	return nil, false
}

// Level describes a hero at one level.
type Level struct {
	Level  int              `cbor:"level"`
	AC     int              `cbor:"ac"`
	HP     int              `cbor:"hp"`
	Speed  int              `cbor:"speed"`
	Surge  int              `cbor:"surge"`
	Class  string           `cbor:"class"`
	Skills []string         `cbor:"skills"`
	Powers []PowerSelection `cbor:"powers"`
}

// PowerSelection is a power a hero starts with: either one power by name, or Count powers of
// a class and type for the player to choose from.
type PowerSelection struct {
	Name  string  `cbor:"name,omitempty"`
	Class string  `cbor:"class,omitempty"`
	Type  Subtype `cbor:"type"`
	Count int     `cbor:"count,omitempty"`
}

// IsQuota reports whether the selection asks for a number of powers rather than one by name.
func (p PowerSelection) IsQuota() bool {
	return p.Name == ""
}

func (p PowerSelection) String() string {
	if !p.IsQuota() {
		return p.Name
	}
	return fmt.Sprintf("%d %s %s", p.Count, p.Class, SubtypeName(KindPower, p.Type))
}

// MonsterClass is a monster or, when Villain is set, a villain.
type MonsterClass struct {
	Entity
	Villain bool     `cbor:"villain"`
	AC      int      `cbor:"ac"`
	Class   string   `cbor:"class"`
	HP      int      `cbor:"hp"`
	Size    int      `cbor:"size"`
	XP      int      `cbor:"xp"`
	Attacks []Attack `cbor:"attacks"`
	Powers  []Card   `cbor:"powers"`
	Tactics []string `cbor:"tactics"`
}

// Attack is one of a monster's attacks.
type Attack struct {
	Name       string `cbor:"name"`
	Bonus      string `cbor:"bonus"`
	Damage     string `cbor:"damage"`
	MissDamage string `cbor:"miss_damage"`
}

func (h HeroClass) clone() HeroClass {
	h.Template = h.Template.Clone()
	h.Levels = slices.Clone(h.Levels)
	for i := range h.Levels {
		h.Levels[i].Skills = slices.Clone(h.Levels[i].Skills)
		h.Levels[i].Powers = slices.Clone(h.Levels[i].Powers)
	}
	return h
}

func (m MonsterClass) clone() MonsterClass {
	m.Template = m.Template.Clone()
	m.Attacks = slices.Clone(m.Attacks)
	m.Powers = cloneAll(m.Powers, Card.clone)
	m.Tactics = slices.Clone(m.Tactics)
	return m
}
