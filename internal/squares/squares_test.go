package squares

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamMil/BirdhouseManor/internal/document"
	apperrors "github.com/AdamMil/BirdhouseManor/internal/errors"
	"github.com/AdamMil/BirdhouseManor/internal/geometry"
)

func builtinVersions() []document.SquareVersion {
	return []document.SquareVersion{
		{Type: "blank", Symbol: " ", Size: "1x1"},
		{Type: "continuation", Symbol: "+", Size: "1x1"},
		{Type: "floor", Symbol: ".", Image: "floor.png", Size: "1x1"},
		{Type: "spawn", Symbol: "s", Size: "1x1"},
		{Type: "wall", Symbol: "#", Image: "wall.png", Size: "1x1"},
	}
}

func section(types []document.SquareType, extra ...document.SquareVersion) document.SquaresSection {
	return document.SquaresSection{
		SquareSize: "64x64",
		Types:      types,
		Versions:   append(builtinVersions(), extra...),
	}
}

func TestBuild(t *testing.T) {
	c, err := Build(section(
		[]document.SquareType{{Name: "table", IsObject: true}, {Name: "wall"}},
		document.SquareVersion{Type: "table", Symbol: "T", Image: "table1.png", Size: "2x1", Placement: "fill"},
		document.SquareVersion{Type: "table", Symbol: "T", Image: "table2.png", Size: "2x1"},
	))
	require.NoError(t, err)
	assert.Equal(t, geometry.Size{Width: 64, Height: 64}, c.SquareSize)

	var names []string
	for _, typ := range c.Types {
		names = append(names, typ.Name)
	}
	assert.Equal(t, []string{"table", "wall", "blank", "continuation", "floor", "spawn"}, names)

	table, ok := c.Lookup("table")
	require.True(t, ok)
	assert.True(t, table.IsObject)
	require.Len(t, table.Versions, 2)
	assert.Equal(t, PlacementFill, table.Versions[0].Placement)
	assert.Equal(t, PlacementCenter, table.Versions[1].Placement)
	for _, v := range table.Versions {
		assert.Same(t, table, c.TypeOf(v))
	}

	floor, ok := c.Lookup("floor")
	require.True(t, ok)
	assert.False(t, floor.IsObject)
	assert.Equal(t, '.', floor.Versions[0].Symbol)
}

func TestBuildErrors(t *testing.T) {
	cases := map[string]struct {
		section document.SquaresSection
		code    apperrors.Code
	}{
		"duplicate type": {
			section([]document.SquareType{{Name: "pit"}, {Name: "pit"}}, document.SquareVersion{Type: "pit", Symbol: "o", Size: "1x1"}),
			apperrors.CodeDuplicateDefinition,
		},
		"undefined type": {
			section(nil, document.SquareVersion{Type: "pit", Symbol: "o", Size: "1x1"}),
			apperrors.CodeUndefinedReference,
		},
		"type without versions": {
			section([]document.SquareType{{Name: "pit"}}),
			apperrors.CodeMissingDefinition,
		},
		"builtin without versions": {
			document.SquaresSection{SquareSize: "64x64", Versions: builtinVersions()[1:]},
			apperrors.CodeMissingDefinition,
		},
		"bad size": {
			section(nil, document.SquareVersion{Type: "floor", Symbol: ",", Size: "0x1"}),
			apperrors.CodeSchemaViolation,
		},
		"bad placement": {
			section(nil, document.SquareVersion{Type: "floor", Symbol: ",", Size: "1x1", Placement: "tiled"}),
			apperrors.CodeSchemaViolation,
		},
		"bad square size": {
			document.SquaresSection{SquareSize: "big", Versions: builtinVersions()},
			apperrors.CodeSchemaViolation,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Build(tc.section)
			require.Error(t, err)
			assert.Equal(t, tc.code, apperrors.CodeOf(err))
		})
	}
}

func TestIndexSymbols(t *testing.T) {
	c, err := Build(section(
		[]document.SquareType{{Name: "table", IsObject: true}},
		document.SquareVersion{Type: "table", Symbol: "T", Size: "2x2"},
		document.SquareVersion{Type: "floor", Symbol: ".", Image: "floor2.png", Size: "1x1"},
	))
	require.NoError(t, err)

	idx, err := IndexSymbols(c)
	require.NoError(t, err)
	assert.Equal(t, '+', idx.Continuation())
	assert.Equal(t, 6, idx.Symbols())

	floors, ok := idx.Lookup('.')
	require.True(t, ok)
	assert.Len(t, floors, 2)
	assert.Equal(t, "floor", idx.TypeName(floors))

	tables, err := idx.Resolve('T')
	require.NoError(t, err)
	assert.Equal(t, geometry.Size{Width: 2, Height: 2}, idx.Footprint(tables))

	_, err = idx.Resolve('?')
	assert.Equal(t, apperrors.CodeUndefinedReference, apperrors.CodeOf(err))
}

// Every version sharing a symbol agrees on its type and footprint.
func TestIndexSymbolsConsistency(t *testing.T) {
	c, err := Build(section(
		[]document.SquareType{{Name: "pit", IsObject: true}},
		document.SquareVersion{Type: "pit", Symbol: "o", Size: "1x1"},
		document.SquareVersion{Type: "pit", Symbol: "o", Size: "2x2"},
	))
	require.NoError(t, err)

	_, err = IndexSymbols(c)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeDuplicateDefinition, apperrors.CodeOf(err))
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "o", appErr.Metadata["symbol"])
}

func TestIndexSymbolsErrors(t *testing.T) {
	cases := map[string]document.SquaresSection{
		"symbol shared by two types": section(
			[]document.SquareType{{Name: "pit"}},
			document.SquareVersion{Type: "pit", Symbol: "#", Size: "1x1"},
		),
		"two continuation symbols": section(nil,
			document.SquareVersion{Type: "continuation", Symbol: "*", Size: "1x1"},
		),
	}
	for name, sec := range cases {
		t.Run(name, func(t *testing.T) {
			c, err := Build(sec)
			require.NoError(t, err)
			_, err = IndexSymbols(c)
			assert.Equal(t, apperrors.CodeDuplicateDefinition, apperrors.CodeOf(err))
		})
	}
}

func TestBuildTokens(t *testing.T) {
	tokens, err := BuildTokens(nil)
	require.NoError(t, err)
	assert.Empty(t, tokens)

	tokens, err = BuildTokens([]document.Token{
		{Name: "Poisoned", IsCondition: true, IconImage: "poison.png"},
		{Name: "Treasure", TokenImage: "chest.png"},
	})
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.True(t, tokens[0].IsCondition)
	assert.Equal(t, "chest.png", tokens[1].TokenImage)

	_, err = BuildTokens([]document.Token{{Name: "Poisoned"}, {Name: "Poisoned"}})
	assert.Equal(t, apperrors.CodeDuplicateDefinition, apperrors.CodeOf(err))
}

func TestParsePlacement(t *testing.T) {
	for in, want := range map[string]Placement{"": PlacementCenter, "Fill": PlacementFill, "random": PlacementRandom} {
		got, err := ParsePlacement(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParsePlacement("stretch")
	assert.Error(t, err)
}
