package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/AdamMil/BirdhouseManor/internal/errors"
)

const minimalTOML = `
schema_version = 1
name = "Test"

[squares]
square_size = "64x64"

  [[squares.versions]]
  type = "floor"
  symbol = "."
  image = "floor.png"
  size = "1x1"

[dungeon]
tile_size = "2x2"
default_floor = "."

  [[dungeon.cards]]
  name = "Hall"
  difficulty = "easy"
  draw = "random"
  layers = ["..", ".."]

[[encounters]]
kind = "trap"
name = "Pit"
template = "basic"

  [encounters.inline_template]
  base = "basic"
`

func TestParseTOML(t *testing.T) {
	doc, err := Parse([]byte(minimalTOML), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.SchemaVersion)
	assert.Equal(t, "64x64", doc.Squares.SquareSize)
	require.Len(t, doc.Dungeon.Cards, 1)
	assert.Equal(t, []string{"..", ".."}, doc.Dungeon.Cards[0].Layers)
	require.Len(t, doc.Encounters, 1)
	assert.Equal(t, "basic", doc.Encounters[0].Template)
	require.NotNil(t, doc.Encounters[0].InlineTemplate)
	assert.Equal(t, "basic", doc.Encounters[0].InlineTemplate.Base)
}

func TestParseTOMLRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte(minimalTOML+"\nbogus = true\n"), FormatTOML)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeSchemaViolation, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "bogus")
}

func TestParseYAML(t *testing.T) {
	src := `
schema_version: 1
squares:
  square_size: 64x64
  versions:
    - {type: floor, symbol: ".", size: 1x1}
dungeon:
  tile_size: 2x2
  default_floor: "."
heroes:
  - name: Fighter
    template: hero
    levels:
      - {level: 2, ac: 1}
      - {level: 1}
`
	doc, err := Parse([]byte(src), FormatYAML)
	require.NoError(t, err)
	require.Len(t, doc.Heroes, 1)
	assert.Equal(t, "Fighter", doc.Heroes[0].Name)
	assert.Equal(t, "hero", doc.Heroes[0].Template)
	require.Len(t, doc.Heroes[0].Levels, 2)

	_, err = Parse([]byte(src+"unknown: 1\n"), FormatYAML)
	assert.Equal(t, apperrors.CodeSchemaViolation, apperrors.CodeOf(err))
}

func TestParseJSONWithComments(t *testing.T) {
	src := `{
  // comments are allowed
  "schema_version": 1,
  "squares": {"square_size": "64x64"},
  "dungeon": {"tile_size": "2x2", "default_floor": "."},
  "monsters": [{"name": "Zombie", "hp": 1, "template": "m",},],
}`
	doc, err := Parse([]byte(src), FormatJSON)
	require.NoError(t, err)
	require.Len(t, doc.Monsters, 1)
	assert.Equal(t, 1, doc.Monsters[0].HP)
	assert.Equal(t, "m", doc.Monsters[0].Template)
}

func TestValidateRequiredFields(t *testing.T) {
	cases := map[string]string{
		"missing square size": `
[dungeon]
tile_size = "2x2"
default_floor = "."`,
		"multi-character symbol": `
[squares]
square_size = "1x1"
[[squares.versions]]
type = "floor"
symbol = "ab"
size = "1x1"
[dungeon]
tile_size = "2x2"
default_floor = "."`,
		"missing card name": `
[squares]
square_size = "1x1"
[dungeon]
tile_size = "2x2"
default_floor = "."
[[powers]]
kind = "daily"`,
		"bad area point": `
[squares]
square_size = "1x1"
[dungeon]
tile_size = "2x2"
default_floor = "."
[[templates]]
id = "t"
  [[templates.pieces]]
  kind = "text"
  area = [[0, 0], [1]]`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src), FormatTOML)
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeSchemaViolation, apperrors.CodeOf(err))
		})
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game.toml"), []byte(minimalTOML), 0o644))

	doc, err := Load(dir)
	require.NoError(t, err)
	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, doc.Dir)

	_, err = Load(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{
		"game.toml": FormatTOML, "a/game.YML": FormatYAML, "game.jsonc": FormatJSON,
	} {
		got, err := FormatOf(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := FormatOf("game.xml")
	assert.Error(t, err)
}
