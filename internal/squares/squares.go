// Package squares builds the registry of square types, their renderable versions and the
// token types declared by a game definition.
package squares

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/AdamMil/BirdhouseManor/internal/document"
	apperrors "github.com/AdamMil/BirdhouseManor/internal/errors"
	"github.com/AdamMil/BirdhouseManor/internal/geometry"
)

// Built-in square type names. They always exist, even if a document doesn't declare them.
const (
	BlankName        = "blank"
	ContinuationName = "continuation"
	FloorName        = "floor"
	SpawnName        = "spawn"
	WallName         = "wall"
)

// BuiltinNames lists the built-in square types in the order they are added.
var BuiltinNames = []string{BlankName, ContinuationName, FloorName, SpawnName, WallName}

// Placement describes how a square's image is positioned within its footprint.
type Placement uint8

const (
	PlacementCenter Placement = iota
	PlacementFill
	PlacementRandom
)

var placementNames = []string{"center", "fill", "random"}

func (p Placement) String() string {
	if int(p) < len(placementNames) {
		return placementNames[p]
	}
	return fmt.Sprintf("Placement(%d)", p)
}

// ParsePlacement parses a placement name, case-insensitively. An empty string means center.
func ParsePlacement(s string) (Placement, error) {
	if s == "" {
		return PlacementCenter, nil
	}
	for i, name := range placementNames {
		if strings.EqualFold(s, name) {
			return Placement(i), nil
		}
	}
	return 0, fmt.Errorf("unknown placement %q (expected center, fill or random)", s)
}

// TypeID identifies a square type by its index in the catalog.
type TypeID int

// Version is a concrete renderable variant of a square type.
type Version struct {
	Symbol    rune          `cbor:"symbol"`
	Image     string        `cbor:"image"`
	Placement Placement     `cbor:"placement"`
	Size      geometry.Size `cbor:"size"`
	Type      TypeID        `cbor:"type"`
}

// Type is a named kind of square, such as a floor, a wall or a placeable object.
type Type struct {
	Name     string    `cbor:"name"`
	IsObject bool      `cbor:"is_object"`
	Versions []Version `cbor:"versions"`
}

// Catalog holds every square type of a game definition, in declaration order followed by
// any built-in types the document didn't declare.
type Catalog struct {
	SquareSize geometry.Size `cbor:"square_size"`
	Types      []Type        `cbor:"types"`

	byName map[string]TypeID
}

// Lookup returns the type with the given name.
func (c *Catalog) Lookup(name string) (*Type, bool) {
	id, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return &c.Types[id], true
}

// Type returns the type with the given ID.
func (c *Catalog) Type(id TypeID) *Type {
	return &c.Types[id]
}

// TypeOf returns the square type that owns v.
func (c *Catalog) TypeOf(v Version) *Type {
	return &c.Types[v.Type]
}

// Build constructs the square catalog from the document's squares section.
func Build(section document.SquaresSection) (*Catalog, error) {
	squareSize, err := geometry.ParseSize(section.SquareSize)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeSchemaViolation, err.Error(), err).At("squares.square_size")
	}

	// load the square versions, grouped by type name
	versionsByType := make(map[string][]Version)
	for i, rec := range section.Versions {
		v, err := parseVersion(rec)
		if err != nil {
			return nil, apperrors.Locate(err, fmt.Sprintf("squares.versions[%d]", i))
		}
		versionsByType[rec.Type] = append(versionsByType[rec.Type], v)
	}

	// declared types first, then built-ins that weren't declared
	c := &Catalog{SquareSize: squareSize, byName: make(map[string]TypeID)}
	for _, rec := range section.Types {
		if _, ok := c.byName[rec.Name]; ok {
			return nil, apperrors.Newf(apperrors.CodeDuplicateDefinition, "square type was defined multiple times: %s", rec.Name).
				With("type", rec.Name).At("squares.types")
		}
		c.byName[rec.Name] = TypeID(len(c.Types))
		c.Types = append(c.Types, Type{Name: rec.Name, IsObject: rec.IsObject})
	}
	for _, name := range BuiltinNames {
		if _, ok := c.byName[name]; !ok {
			c.byName[name] = TypeID(len(c.Types))
			c.Types = append(c.Types, Type{Name: name})
		}
	}

	// check that there are no versions for square types that don't exist
	for i, rec := range section.Versions {
		if _, ok := c.byName[rec.Type]; !ok {
			return nil, apperrors.Newf(apperrors.CodeUndefinedReference, "undefined square type: %s", rec.Type).
				With("type", rec.Type).At(fmt.Sprintf("squares.versions[%d]", i))
		}
	}

	// attach the versions, fixing up their back-reference to the owning type
	for id := range c.Types {
		t := &c.Types[id]
		versions := versionsByType[t.Name]
		if len(versions) == 0 {
			return nil, apperrors.Newf(apperrors.CodeMissingDefinition, "square type has no squares defined: %s", t.Name).
				With("type", t.Name).At("squares")
		}
		for j := range versions {
			versions[j].Type = TypeID(id)
		}
		t.Versions = versions
	}

	return c, nil
}

func parseVersion(rec document.SquareVersion) (Version, error) {
	symbol, err := ParseSymbol(rec.Symbol)
	if err != nil {
		return Version{}, err
	}
	size, err := geometry.ParseSize(rec.Size)
	if err != nil {
		return Version{}, err
	}
	placement, err := ParsePlacement(rec.Placement)
	if err != nil {
		return Version{}, err
	}
	return Version{
		Symbol:    symbol,
		Image:     rec.Image,
		Placement: placement,
		Size:      size,
	}, nil
}

// ParseSymbol returns the single character held by s.
func ParseSymbol(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("symbol must be exactly one character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
