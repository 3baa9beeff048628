// Package catalog compiles a game document into the immutable catalog of game content: square
// types, dungeon cards, card templates, action cards, skills, heroes and monsters.
package catalog

import (
	"encoding/hex"
	"slices"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"

	"github.com/AdamMil/BirdhouseManor/internal/geometry"
	"github.com/AdamMil/BirdhouseManor/internal/squares"
	"github.com/AdamMil/BirdhouseManor/internal/templates"
	"github.com/AdamMil/BirdhouseManor/internal/tiles"
)

// SchemaVersion is the only document schema version Compile accepts.
const SchemaVersion = 1

// Catalog is the compiled content of one game definition. It never changes after Compile
// returns it and may be shared freely: accessors and lookups return deep copies.
type Catalog struct {
	name       string
	extension  string
	squares    *squares.Catalog
	tokens     []squares.TokenType
	tileSize   geometry.Size
	templates  []*templates.Template
	dungeon    []tiles.Card
	encounters []Card
	treasures  []Card
	powers     []Card
	skills     []Skill
	heroes     []HeroClass
	monsters   []MonsterClass
}

// Name returns the game's display name.
func (c *Catalog) Name() string { return c.name }

// Extension returns the extension the document opted into, or "".
func (c *Catalog) Extension() string { return c.extension }

// SquareSize returns the size of one cell in pixels.
func (c *Catalog) SquareSize() geometry.Size { return c.squares.SquareSize }

// TileSize returns the size of one dungeon card in cells.
func (c *Catalog) TileSize() geometry.Size { return c.tileSize }

// SquareTypes returns every square type, declared ones first.
func (c *Catalog) SquareTypes() []squares.Type {
	out := slices.Clone(c.squares.Types)
	for i := range out {
		out[i].Versions = slices.Clone(out[i].Versions)
	}
	return out
}

// Tokens returns the token types.
func (c *Catalog) Tokens() []squares.TokenType { return slices.Clone(c.tokens) }

// Templates returns the templates declared in the templates section, bases before the
// templates that derive from them.
func (c *Catalog) Templates() []*templates.Template {
	out := make([]*templates.Template, len(c.templates))
	for i, t := range c.templates {
		out[i] = t.Clone()
	}
	return out
}

// DungeonCards returns the dungeon cards in document order.
func (c *Catalog) DungeonCards() []tiles.Card {
	out := make([]tiles.Card, len(c.dungeon))
	for i := range c.dungeon {
		out[i] = c.dungeon[i].Clone()
	}
	return out
}

// Encounters returns the encounter cards.
func (c *Catalog) Encounters() []Card { return cloneAll(c.encounters, Card.clone) }

// Treasures returns the treasure cards.
func (c *Catalog) Treasures() []Card { return cloneAll(c.treasures, Card.clone) }

// Powers returns the hero power cards.
func (c *Catalog) Powers() []Card { return cloneAll(c.powers, Card.clone) }

// Skills returns the skills.
func (c *Catalog) Skills() []Skill { return slices.Clone(c.skills) }

// Heroes returns the hero classes.
func (c *Catalog) Heroes() []HeroClass { return cloneAll(c.heroes, HeroClass.clone) }

// Monsters returns the monster classes, villains included after the monsters.
func (c *Catalog) Monsters() []MonsterClass { return cloneAll(c.monsters, MonsterClass.clone) }

// DungeonCard returns the dungeon card with the given name.
func (c *Catalog) DungeonCard(name string) (tiles.Card, bool) {
	for i := range c.dungeon {
		if c.dungeon[i].Name == name {
			return c.dungeon[i].Clone(), true
		}
	}
	return tiles.Card{}, false
}

// Hero returns the hero class with the given name.
func (c *Catalog) Hero(name string) (HeroClass, bool) {
	for _, h := range c.heroes {
		if h.Name == name {
			return h.clone(), true
		}
	}
	return HeroClass{}, false
}

// Monster returns the monster or villain class with the given name.
func (c *Catalog) Monster(name string) (MonsterClass, bool) {
	for _, m := range c.monsters {
		if m.Name == name {
			return m.clone(), true
		}
	}
	return MonsterClass{}, false
}

// cloneAll deep-copies a slice, so callers can't reach the catalog's own data.
func cloneAll[T any](items []T, clone func(T) T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = clone(item)
	}
	return out
}

// snapshot is the encoded form of a catalog.
type snapshot struct {
	Name       string                `cbor:"name"`
	Extension  string                `cbor:"extension,omitempty"`
	Squares    *squares.Catalog      `cbor:"squares"`
	Tokens     []squares.TokenType   `cbor:"tokens"`
	TileSize   geometry.Size         `cbor:"tile_size"`
	Templates  []*templates.Template `cbor:"templates"`
	Dungeon    []tiles.Card          `cbor:"dungeon"`
	Encounters []Card                `cbor:"encounters"`
	Treasures  []Card                `cbor:"treasures"`
	Powers     []Card                `cbor:"powers"`
	Skills     []Skill               `cbor:"skills"`
	Heroes     []HeroClass           `cbor:"heroes"`
	Monsters   []MonsterClass        `cbor:"monsters"`
}

// encMode encodes with Core Deterministic Encoding, so equal catalogs encode to equal bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("catalog: CBOR encoder initialization failed: " + err.Error())
	}
}

// Encode returns the catalog's deterministic CBOR encoding.
func (c *Catalog) Encode() ([]byte, error) {
	return encMode.Marshal(snapshot{
		Name:       c.name,
		Extension:  c.extension,
		Squares:    c.squares,
		Tokens:     c.tokens,
		TileSize:   c.tileSize,
		Templates:  c.templates,
		Dungeon:    c.dungeon,
		Encounters: c.encounters,
		Treasures:  c.treasures,
		Powers:     c.powers,
		Skills:     c.skills,
		Heroes:     c.heroes,
		Monsters:   c.monsters,
	})
}

// Fingerprint is a BLAKE3 digest of a catalog's encoding. Two catalogs with the same content
// have the same fingerprint.
type Fingerprint [32]byte

func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Fingerprint returns the catalog's content digest.
func (c *Catalog) Fingerprint() (Fingerprint, error) {
	data, err := c.Encode()
	if err != nil {
		return Fingerprint{}, err
	}
	return blake3.Sum256(data), nil
}
