// Package tiles compiles dungeon cards: the fixed-size tiles of the board, authored as text
// grids of square symbols plus explicitly placed squares.
package tiles

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/AdamMil/BirdhouseManor/internal/document"
	apperrors "github.com/AdamMil/BirdhouseManor/internal/errors"
	"github.com/AdamMil/BirdhouseManor/internal/geometry"
	"github.com/AdamMil/BirdhouseManor/internal/squares"
)

// Difficulty says whether drawing a dungeon card forces an encounter draw.
type Difficulty uint8

const (
	DifficultyEasy Difficulty = iota // drawing the card doesn't force an encounter
	DifficultyHard                   // drawing the card forces an encounter
)

func (d Difficulty) String() string {
	if d == DifficultyHard {
		return "hard"
	}
	return "easy"
}

// ParseDifficulty parses a difficulty name, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(s) {
	case "easy":
		return DifficultyEasy, nil
	case "hard":
		return DifficultyHard, nil
	}
	return 0, fmt.Errorf("unknown difficulty %q (expected easy or hard)", s)
}

// DrawType says how a dungeon card enters play.
type DrawType uint8

const (
	DrawRandom  DrawType = iota // shuffled into the dungeon tile deck
	DrawSpecial                 // kept out of the deck
	DrawStart                   // kept out of the deck and placed when the game begins
)

var drawTypeNames = []string{"random", "special", "start"}

func (d DrawType) String() string {
	if int(d) < len(drawTypeNames) {
		return drawTypeNames[d]
	}
	return fmt.Sprintf("DrawType(%d)", d)
}

// ParseDrawType parses a draw type name, case-insensitively.
func ParseDrawType(s string) (DrawType, error) {
	for i, name := range drawTypeNames {
		if strings.EqualFold(s, name) {
			return DrawType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown draw type %q (expected random, special or start)", s)
}

// Placement is one square placed on a cell: the versions its symbol may render as and how it
// is turned. Several placements may stack on one cell.
type Placement struct {
	Versions []squares.Version `cbor:"versions"`
	Rotation Rotation          `cbor:"rotation"`
}

// Symbol returns the grid symbol the placement was made from.
func (p Placement) Symbol() rune {
	return p.Versions[0].Symbol
}

// Card is a compiled dungeon card.
type Card struct {
	Name       string        `cbor:"name"`
	Count      int           `cbor:"count"`
	Difficulty Difficulty    `cbor:"difficulty"`
	Draw       DrawType      `cbor:"draw"`
	Image      string        `cbor:"image"`
	Size       geometry.Size `cbor:"size"`
	// Cells holds the placement stack of every cell in raster order.
	Cells [][]Placement `cbor:"cells"`
}

// At returns the placement stack of the cell at x,y, bottom first.
func (c *Card) At(x, y int) []Placement {
	return c.Cells[y*c.Size.Width+x]
}

// Key identifies the card in messages, e.g. "random:Hall".
func (c *Card) Key() string {
	return c.Draw.String() + ":" + c.Name
}

// Clone returns a copy of c that shares no slices with it.
func (c *Card) Clone() Card {
	out := *c
	out.Cells = make([][]Placement, len(c.Cells))
	for i, stack := range c.Cells {
		out.Cells[i] = make([]Placement, len(stack))
		for j, p := range stack {
			out.Cells[i][j] = Placement{Versions: slices.Clone(p.Versions), Rotation: p.Rotation}
		}
	}
	return out
}

// Compiler turns dungeon card records into compiled cards. Its cell stacks are reused from
// one card to the next.
type Compiler struct {
	symbols      *squares.SymbolIndex
	size         geometry.Size
	defaultFloor Placement
	stacks       [][]Placement
}

// NewCompiler returns a compiler for tiles of the given size. The default floor symbol is put
// under any cell whose first square is neither a floor nor a wall.
func NewCompiler(symbols *squares.SymbolIndex, size geometry.Size, defaultFloor rune) (*Compiler, error) {
	floor, err := symbols.Resolve(defaultFloor)
	if err != nil {
		return nil, apperrors.Locate(err, "dungeon.default_floor")
	}
	return &Compiler{
		symbols:      symbols,
		size:         size,
		defaultFloor: Placement{Versions: floor, Rotation: RotationNone},
		stacks:       make([][]Placement, size.Area()),
	}, nil
}

// Compile builds every dungeon card, stopping at the first invalid one.
func (c *Compiler) Compile(records []document.DungeonCard) ([]Card, error) {
	cards := make([]Card, 0, len(records))
	for i := range records {
		card, err := c.CompileCard(&records[i])
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// CompileCard builds one dungeon card from its layers and explicit squares.
func (c *Compiler) CompileCard(rec *document.DungeonCard) (Card, error) {
	loc := "dungeon card " + rec.Draw + ":" + rec.Name

	difficulty, err := ParseDifficulty(rec.Difficulty)
	if err != nil {
		return Card{}, apperrors.Locate(err, loc)
	}
	draw, err := ParseDrawType(rec.Draw)
	if err != nil {
		return Card{}, apperrors.Locate(err, loc)
	}

	defer c.reset()

	for i, layer := range rec.Layers {
		if err := c.addLayer(layer); err != nil {
			return Card{}, apperrors.Locate(err, fmt.Sprintf("%s, layer %d", loc, i))
		}
	}
	for i := range rec.Squares {
		if err := c.addSquare(&rec.Squares[i]); err != nil {
			return Card{}, apperrors.Locate(err, fmt.Sprintf("%s, square %d", loc, i))
		}
	}

	card := Card{
		Name:       rec.Name,
		Count:      rec.Count,
		Difficulty: difficulty,
		Draw:       draw,
		Image:      rec.Image,
		Size:       c.size,
		Cells:      make([][]Placement, len(c.stacks)),
	}
	for i, stack := range c.stacks {
		card.Cells[i] = append([]Placement(nil), stack...)
	}
	return card, nil
}

func (c *Compiler) reset() {
	for i := range c.stacks {
		c.stacks[i] = c.stacks[i][:0]
	}
}

// ParseLayer strips whitespace from a layer grid, leaving one symbol per cell.
func ParseLayer(s string) []rune {
	grid := make([]rune, 0, len(s))
	for _, r := range s {
		if !unicode.IsSpace(r) {
			grid = append(grid, r)
		}
	}
	return grid
}

func (c *Compiler) addLayer(text string) error {
	grid := ParseLayer(text)
	if len(grid) != len(c.stacks) {
		return apperrors.Newf(apperrors.CodeLayoutSize, "layer has %d cells but tiles are %v (%d cells)",
			len(grid), c.size, len(c.stacks))
	}

	continuation := c.symbols.Continuation()
	for i, symbol := range grid {
		versions, err := c.symbols.Resolve(symbol)
		if err != nil {
			return err
		}
		typeName := c.symbols.TypeName(versions)

		// terrain always lies under anything else on a cell
		if len(c.stacks[i]) == 0 && typeName != squares.FloorName && typeName != squares.WallName {
			c.stacks[i] = append(c.stacks[i], c.defaultFloor)
		}

		if typeName == squares.BlankName || symbol == continuation {
			continue
		}

		rotation := RotationNone
		if footprint := c.symbols.Footprint(versions); !footprint.IsUnit() {
			anchor := geometry.Point{X: i % c.size.Width, Y: i / c.size.Width}
			rotation, err = c.inferRotation(grid, anchor, symbol, footprint)
			if err != nil {
				return apperrors.Locate(err, "cell "+anchor.String())
			}
		}
		c.stacks[i] = append(c.stacks[i], Placement{Versions: versions, Rotation: rotation})
	}
	return nil
}

// inferRotation finds the one rotation under which every cell of the footprint, other than
// the anchor, holds the continuation symbol.
func (c *Compiler) inferRotation(grid []rune, anchor geometry.Point, symbol rune, footprint geometry.Size) (Rotation, error) {
	continuation := c.symbols.Continuation()
	found, matches := RotationNone, 0
	for _, r := range inferenceOrder {
		if c.fits(grid, anchor, footprint, r, continuation) {
			found = r
			matches++
		}
	}
	switch matches {
	case 0:
		return 0, apperrors.Newf(apperrors.CodeUnsatisfiableLayout, "no rotation of %q (%v) fits the continuation squares", symbol, footprint).
			With("symbol", string(symbol))
	case 1:
		return found, nil
	default:
		return 0, apperrors.Newf(apperrors.CodeAmbiguousLayout, "layout of %q (%v) is ambiguous: it matches %d rotations", symbol, footprint, matches).
			With("symbol", string(symbol))
	}
}

func (c *Compiler) fits(grid []rune, anchor geometry.Point, footprint geometry.Size, r Rotation, continuation rune) bool {
	for _, offset := range r.Cells(footprint)[1:] {
		p := anchor.Add(offset)
		if !c.size.Contains(p) || grid[p.Y*c.size.Width+p.X] != continuation {
			return false
		}
	}
	return true
}

func (c *Compiler) addSquare(rec *document.PlacedSquare) error {
	symbol, err := squares.ParseSymbol(rec.Symbol)
	if err != nil {
		return err
	}
	versions, err := c.symbols.Resolve(symbol)
	if err != nil {
		return err
	}
	anchor, err := geometry.ParsePoint(rec.Location)
	if err != nil {
		return err
	}
	rotation, err := ParseRotation(rec.Rotation)
	if err != nil {
		return err
	}

	far := anchor.Add(rotation.FarCorner(c.symbols.Footprint(versions)))
	if !c.size.Contains(anchor) || !c.size.Contains(far) {
		return apperrors.Newf(apperrors.CodeOutOfBounds,
			"square at %v rotated %v reaches %v, outside the %v tile", anchor, rotation, far, c.size).
			With("symbol", rec.Symbol)
	}

	i := anchor.Y*c.size.Width + anchor.X
	c.stacks[i] = append(c.stacks[i], Placement{Versions: versions, Rotation: rotation})
	return nil
}
