package tiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamMil/BirdhouseManor/internal/document"
	apperrors "github.com/AdamMil/BirdhouseManor/internal/errors"
	"github.com/AdamMil/BirdhouseManor/internal/geometry"
	"github.com/AdamMil/BirdhouseManor/internal/squares"
)

func newCompiler(t *testing.T) *Compiler {
	t.Helper()
	catalog, err := squares.Build(document.SquaresSection{
		SquareSize: "64x64",
		Types: []document.SquareType{
			{Name: "table", IsObject: true},
			{Name: "bench", IsObject: true},
			{Name: "statue", IsObject: true},
		},
		Versions: []document.SquareVersion{
			{Type: "blank", Symbol: "_", Size: "1x1"},
			{Type: "continuation", Symbol: "+", Size: "1x1"},
			{Type: "floor", Symbol: ".", Size: "1x1"},
			{Type: "spawn", Symbol: "s", Size: "1x1"},
			{Type: "wall", Symbol: "#", Size: "1x1"},
			{Type: "table", Symbol: "T", Size: "2x2"},
			{Type: "bench", Symbol: "B", Size: "2x1"},
			{Type: "statue", Symbol: "S", Size: "1x1"},
		},
	})
	require.NoError(t, err)
	idx, err := squares.IndexSymbols(catalog)
	require.NoError(t, err)
	c, err := NewCompiler(idx, geometry.Size{Width: 3, Height: 3}, '.')
	require.NoError(t, err)
	return c
}

func card(layers ...string) *document.DungeonCard {
	return &document.DungeonCard{Name: "Hall", Difficulty: "easy", Draw: "random", Layers: layers}
}

func symbols(stack []Placement) string {
	var out []rune
	for _, p := range stack {
		out = append(out, p.Symbol())
	}
	return string(out)
}

func TestUnitSquaresAreNeverRotated(t *testing.T) {
	c := newCompiler(t)
	got, err := c.CompileCard(card("#S. s.S ..."))
	require.NoError(t, err)

	assert.Equal(t, geometry.Size{Width: 3, Height: 3}, got.Size)
	for _, stack := range got.Cells {
		for _, p := range stack {
			assert.Equal(t, RotationNone, p.Rotation)
		}
	}
	assert.Equal(t, "#", symbols(got.At(0, 0)))
	assert.Equal(t, ".S", symbols(got.At(1, 0)))
	assert.Equal(t, ".", symbols(got.At(2, 0)))
	assert.Equal(t, ".s", symbols(got.At(0, 1)))
}

func TestInferRotation(t *testing.T) {
	cases := []struct {
		name   string
		layer  string
		anchor geometry.Point
		want   Rotation
	}{
		{"none", "... .T+ .++", geometry.Point{X: 1, Y: 1}, RotationNone},
		{"right", "... +T. ++.", geometry.Point{X: 1, Y: 1}, RotationRight},
		{"upside down", "++. +T. ...", geometry.Point{X: 1, Y: 1}, RotationUpsideDown},
		{"left", ".++ .T+ ...", geometry.Point{X: 1, Y: 1}, RotationLeft},
		{"corner anchor", "... .++ .+T", geometry.Point{X: 2, Y: 2}, RotationUpsideDown},
		{"bench", "B+. ... ...", geometry.Point{X: 0, Y: 0}, RotationNone},
		{"bench right", "B.. +.. ...", geometry.Point{X: 0, Y: 0}, RotationRight},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := newCompiler(t).CompileCard(card(tc.layer))
			require.NoError(t, err)
			stack := got.At(tc.anchor.X, tc.anchor.Y)
			require.Len(t, stack, 2)
			assert.Equal(t, '.', stack[0].Symbol())
			assert.Equal(t, tc.want, stack[1].Rotation)
		})
	}
}

func TestBenchLeftNeedsContinuationAbove(t *testing.T) {
	c := newCompiler(t)
	got, err := c.CompileCard(card("... .+. .B."))
	require.NoError(t, err)
	assert.Equal(t, RotationLeft, got.At(1, 2)[1].Rotation)
}

func TestInferRotationErrors(t *testing.T) {
	cases := map[string]struct {
		layer string
		code  apperrors.Code
	}{
		"ambiguous":     {"... +T+ +++", apperrors.CodeAmbiguousLayout},
		"unsatisfiable": {"... .T. ...", apperrors.CodeUnsatisfiableLayout},
		"out of bounds": {"..T ... ...", apperrors.CodeUnsatisfiableLayout},
		"layout size":   {"... ...", apperrors.CodeLayoutSize},
		"size first":    {"?? ??", apperrors.CodeLayoutSize},
		"undefined":     {"... .?. ...", apperrors.CodeUndefinedReference},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := newCompiler(t).CompileCard(card(tc.layer))
			require.Error(t, err)
			assert.Equal(t, tc.code, apperrors.CodeOf(err))
			assert.Contains(t, err.Error(), "random:Hall")
		})
	}
}

func TestContinuationCellsKeepOnlyFloor(t *testing.T) {
	got, err := newCompiler(t).CompileCard(card("... .T+ .++"))
	require.NoError(t, err)
	assert.Equal(t, ".T", symbols(got.At(1, 1)))
	assert.Equal(t, ".", symbols(got.At(2, 1)))
	assert.Equal(t, ".", symbols(got.At(2, 2)))
}

func TestLayersStack(t *testing.T) {
	got, err := newCompiler(t).CompileCard(card("#.. ... ...", "S__ _S_ ___"))
	require.NoError(t, err)
	assert.Equal(t, "#S", symbols(got.At(0, 0)))
	assert.Equal(t, ".S", symbols(got.At(1, 1)))
	assert.Equal(t, ".", symbols(got.At(2, 2)))
}

func TestExplicitSquares(t *testing.T) {
	cases := []struct {
		name     string
		square   document.PlacedSquare
		wantCode apperrors.Code
	}{
		{"unrotated", document.PlacedSquare{Symbol: "T", Location: "0,0"}, ""},
		{"unrotated overflows", document.PlacedSquare{Symbol: "T", Location: "2,2", Rotation: "none"}, apperrors.CodeOutOfBounds},
		{"upside down", document.PlacedSquare{Symbol: "T", Location: "2,2", Rotation: "upside_down"}, ""},
		{"right overflows", document.PlacedSquare{Symbol: "T", Location: "0,1", Rotation: "right"}, apperrors.CodeOutOfBounds},
		{"tall overflow", document.PlacedSquare{Symbol: "B", Location: "2,0", Rotation: "left"}, apperrors.CodeOutOfBounds},
		{"left", document.PlacedSquare{Symbol: "B", Location: "2,1", Rotation: "Left"}, ""},
		{"anchor outside", document.PlacedSquare{Symbol: "S", Location: "3,0"}, apperrors.CodeOutOfBounds},
		{"anchor below", document.PlacedSquare{Symbol: "S", Location: "0,3"}, apperrors.CodeOutOfBounds},
		{"undefined", document.PlacedSquare{Symbol: "?", Location: "0,0"}, apperrors.CodeUndefinedReference},
		{"bad rotation", document.PlacedSquare{Symbol: "S", Location: "0,0", Rotation: "sideways"}, apperrors.CodeSchemaViolation},
		{"bad location", document.PlacedSquare{Symbol: "S", Location: "-1,0"}, apperrors.CodeSchemaViolation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := card("... ... ...")
			rec.Squares = []document.PlacedSquare{tc.square}
			got, err := newCompiler(t).CompileCard(rec)
			if tc.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tc.wantCode, apperrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			anchor, err := geometry.ParsePoint(tc.square.Location)
			require.NoError(t, err)
			stack := got.At(anchor.X, anchor.Y)
			require.Len(t, stack, 2)
			assert.Equal(t, tc.square.Symbol, string(stack[1].Symbol()))
		})
	}
}

func TestStacksAreReusedAcrossCards(t *testing.T) {
	c := newCompiler(t)
	cards, err := c.Compile([]document.DungeonCard{
		*card("S.. ... ..."),
		{Name: "Crypt", Difficulty: "Hard", Draw: "start", Layers: []string{"### #.# ###"}},
	})
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.Equal(t, ".S", symbols(cards[0].At(0, 0)))
	assert.Equal(t, "#", symbols(cards[1].At(0, 0)))
	assert.Equal(t, ".", symbols(cards[1].At(1, 1)))
	assert.Equal(t, DifficultyHard, cards[1].Difficulty)
	assert.Equal(t, DrawStart, cards[1].Draw)
	assert.Equal(t, "start:Crypt", cards[1].Key())

	// the first card isn't disturbed by compiling the second
	assert.Equal(t, ".S", symbols(cards[0].At(0, 0)))
}

func TestCompileCardErrors(t *testing.T) {
	rec := card("... ... ...")
	rec.Difficulty = "deadly"
	_, err := newCompiler(t).CompileCard(rec)
	assert.Equal(t, apperrors.CodeSchemaViolation, apperrors.CodeOf(err))

	rec = card("... ... ...")
	rec.Draw = "never"
	_, err = newCompiler(t).CompileCard(rec)
	assert.Equal(t, apperrors.CodeSchemaViolation, apperrors.CodeOf(err))
}

func TestNewCompilerUndefinedFloor(t *testing.T) {
	c := newCompiler(t)
	_, err := NewCompiler(c.symbols, geometry.Size{Width: 3, Height: 3}, '~')
	assert.Equal(t, apperrors.CodeUndefinedReference, apperrors.CodeOf(err))
}

// The last cell a rotated footprint covers is its far corner, so inference and explicit
// placement agree on every rotation.
func TestRotationGeometryAgrees(t *testing.T) {
	for _, footprint := range []geometry.Size{{Width: 2, Height: 2}, {Width: 2, Height: 1}, {Width: 3, Height: 2}} {
		for _, r := range inferenceOrder {
			cells := r.Cells(footprint)
			require.Len(t, cells, footprint.Area())
			assert.Equal(t, geometry.Point{}, cells[0])
			assert.Equal(t, r.FarCorner(footprint), cells[len(cells)-1], "%v %v", footprint, r)
		}
	}
}

func TestParseRotation(t *testing.T) {
	for in, want := range map[string]Rotation{
		"": RotationNone, "None": RotationNone, "right": RotationRight, "LEFT": RotationLeft,
		"upside_down": RotationUpsideDown, "UpsideDown": RotationUpsideDown, "upside-down": RotationUpsideDown,
	} {
		got, err := ParseRotation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseRotation("diagonal")
	assert.Error(t, err)
}

func TestGrid(t *testing.T) {
	c := newCompiler(t)
	got, err := c.CompileCard(card("++# +T. S.s", "___ ___ __S"))
	require.NoError(t, err)
	assert.Equal(t, "TT#\nTT.\nS.S\n", got.GridString())
}
