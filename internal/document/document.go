// Package document defines the raw, uncompiled shape of a game definition file and loads it
// from TOML, YAML or JSON (with comments).
package document

// Document is the root of a game definition file.
type Document struct {
	SchemaVersion int            `toml:"schema_version" yaml:"schema_version" json:"schema_version"`
	Name          string         `toml:"name" yaml:"name" json:"name"`
	Extension     string         `toml:"extension" yaml:"extension" json:"extension"`
	Squares       SquaresSection `toml:"squares" yaml:"squares" json:"squares"`
	Tokens        []Token        `toml:"tokens" yaml:"tokens" json:"tokens"`
	Dungeon       DungeonSection `toml:"dungeon" yaml:"dungeon" json:"dungeon"`
	Templates     []Template     `toml:"templates" yaml:"templates" json:"templates"`
	Encounters    []ActionCard   `toml:"encounters" yaml:"encounters" json:"encounters"`
	Treasures     []ActionCard   `toml:"treasures" yaml:"treasures" json:"treasures"`
	Powers        []ActionCard   `toml:"powers" yaml:"powers" json:"powers"`
	Skills        []Skill        `toml:"skills" yaml:"skills" json:"skills"`
	Heroes        []Hero         `toml:"heroes" yaml:"heroes" json:"heroes"`
	Monsters      []Monster      `toml:"monsters" yaml:"monsters" json:"monsters"`
	Villains      []Monster      `toml:"villains" yaml:"villains" json:"villains"`

	// Dir is the directory the document was loaded from. Image paths are relative to it.
	Dir string `toml:"-" yaml:"-" json:"-"`
}

// SquaresSection declares square types and their renderable versions.
type SquaresSection struct {
	SquareSize string          `toml:"square_size" yaml:"square_size" json:"square_size"`
	Types      []SquareType    `toml:"types" yaml:"types" json:"types"`
	Versions   []SquareVersion `toml:"versions" yaml:"versions" json:"versions"`
}

type SquareType struct {
	Name     string `toml:"name" yaml:"name" json:"name"`
	IsObject bool   `toml:"is_object" yaml:"is_object" json:"is_object"`
}

type SquareVersion struct {
	Type      string `toml:"type" yaml:"type" json:"type"`
	Symbol    string `toml:"symbol" yaml:"symbol" json:"symbol"`
	Image     string `toml:"image" yaml:"image" json:"image"`
	Placement string `toml:"placement" yaml:"placement" json:"placement"`
	Size      string `toml:"size" yaml:"size" json:"size"`
}

type Token struct {
	Name        string `toml:"name" yaml:"name" json:"name"`
	Description string `toml:"description" yaml:"description" json:"description"`
	IsCondition bool   `toml:"is_condition" yaml:"is_condition" json:"is_condition"`
	IconImage   string `toml:"icon_image" yaml:"icon_image" json:"icon_image"`
	TokenImage  string `toml:"token_image" yaml:"token_image" json:"token_image"`
}

// DungeonSection holds the dungeon tile cards and the grid settings shared by all of them.
type DungeonSection struct {
	TileSize     string        `toml:"tile_size" yaml:"tile_size" json:"tile_size"`
	DefaultFloor string        `toml:"default_floor" yaml:"default_floor" json:"default_floor"`
	Cards        []DungeonCard `toml:"cards" yaml:"cards" json:"cards"`
}

type DungeonCard struct {
	Name       string         `toml:"name" yaml:"name" json:"name"`
	Count      int            `toml:"count" yaml:"count" json:"count"`
	Difficulty string         `toml:"difficulty" yaml:"difficulty" json:"difficulty"`
	Draw       string         `toml:"draw" yaml:"draw" json:"draw"`
	Image      string         `toml:"image" yaml:"image" json:"image"`
	Layers     []string       `toml:"layers" yaml:"layers" json:"layers"`
	Squares    []PlacedSquare `toml:"squares" yaml:"squares" json:"squares"`
}

// PlacedSquare is an explicit placement of a square on a dungeon card.
type PlacedSquare struct {
	Symbol   string `toml:"symbol" yaml:"symbol" json:"symbol"`
	Location string `toml:"location" yaml:"location" json:"location"`
	Rotation string `toml:"rotation" yaml:"rotation" json:"rotation"`
}

// Template is a card template record. Inline templates use the same shape but must not
// carry an ID.
type Template struct {
	ID      string          `toml:"id" yaml:"id" json:"id"`
	Base    string          `toml:"base" yaml:"base" json:"base"`
	Content []ContentEntry  `toml:"content" yaml:"content" json:"content"`
	Pieces  []TemplatePiece `toml:"pieces" yaml:"pieces" json:"pieces"`
}

type ContentEntry struct {
	Name string `toml:"name" yaml:"name" json:"name"`
	Text string `toml:"text" yaml:"text" json:"text"`
}

type TemplatePiece struct {
	Kind        string  `toml:"kind" yaml:"kind" json:"kind"`
	Area        [][]int `toml:"area" yaml:"area" json:"area"`
	Color       string  `toml:"color" yaml:"color" json:"color"`
	Size        float64 `toml:"size" yaml:"size" json:"size"`
	Text        string  `toml:"text" yaml:"text" json:"text"`
	Image       string  `toml:"image" yaml:"image" json:"image"`
	Name        string  `toml:"name" yaml:"name" json:"name"`
	Placeholder string  `toml:"placeholder" yaml:"placeholder" json:"placeholder"`
}

// TemplateBinding is embedded by every record that can carry a card template.
type TemplateBinding struct {
	Template       string    `toml:"template" yaml:"template" json:"template"`
	InlineTemplate *Template `toml:"inline_template" yaml:"inline_template" json:"inline_template"`
}

// ActionCard covers encounter, treasure, power and monster power records. Kind selects the
// card's sub-type within its section.
type ActionCard struct {
	Kind        string `toml:"kind" yaml:"kind" json:"kind"`
	Name        string `toml:"name" yaml:"name" json:"name"`
	Count       int    `toml:"count" yaml:"count" json:"count"`
	Class       string `toml:"class" yaml:"class" json:"class"`
	AttackBonus string `toml:"attack_bonus" yaml:"attack_bonus" json:"attack_bonus"`
	Damage      string `toml:"damage" yaml:"damage" json:"damage"`
	Description string `toml:"description" yaml:"description" json:"description"`
	Flavor      string `toml:"flavor" yaml:"flavor" json:"flavor"`
	IsAttack    bool   `toml:"is_attack" yaml:"is_attack" json:"is_attack"`
	IsMove      bool   `toml:"is_move" yaml:"is_move" json:"is_move"`

	TemplateBinding `toml:",inline" yaml:",inline"`
}

type Skill struct {
	Name        string `toml:"name" yaml:"name" json:"name"`
	Description string `toml:"description" yaml:"description" json:"description"`
}

// Entity holds the fields shared by heroes and monsters.
type Entity struct {
	Name       string `toml:"name" yaml:"name" json:"name"`
	Count      int    `toml:"count" yaml:"count" json:"count"`
	Flavor     string `toml:"flavor" yaml:"flavor" json:"flavor"`
	Race       string `toml:"race" yaml:"race" json:"race"`
	TokenImage string `toml:"token_image" yaml:"token_image" json:"token_image"`
}

type Hero struct {
	Entity          `toml:",inline" yaml:",inline"`
	TemplateBinding `toml:",inline" yaml:",inline"`
	Levels          []Level `toml:"levels" yaml:"levels" json:"levels"`
}

type Level struct {
	Level  int              `toml:"level" yaml:"level" json:"level"`
	AC     int              `toml:"ac" yaml:"ac" json:"ac"`
	HP     int              `toml:"hp" yaml:"hp" json:"hp"`
	Speed  int              `toml:"speed" yaml:"speed" json:"speed"`
	Surge  int              `toml:"surge" yaml:"surge" json:"surge"`
	Class  string           `toml:"class" yaml:"class" json:"class"`
	Skills []string         `toml:"skills" yaml:"skills" json:"skills"`
	Powers []PowerSelection `toml:"powers" yaml:"powers" json:"powers"`
}

// PowerSelection names a power outright, or asks for Count powers of a class and type.
type PowerSelection struct {
	Name  string `toml:"name" yaml:"name" json:"name"`
	Class string `toml:"class" yaml:"class" json:"class"`
	Type  string `toml:"type" yaml:"type" json:"type"`
	Count int    `toml:"count" yaml:"count" json:"count"`
}

type Monster struct {
	Entity          `toml:",inline" yaml:",inline"`
	TemplateBinding `toml:",inline" yaml:",inline"`
	AC              int          `toml:"ac" yaml:"ac" json:"ac"`
	Class           string       `toml:"class" yaml:"class" json:"class"`
	HP              int          `toml:"hp" yaml:"hp" json:"hp"`
	Size            int          `toml:"size" yaml:"size" json:"size"`
	XP              int          `toml:"xp" yaml:"xp" json:"xp"`
	Attacks         []Attack     `toml:"attacks" yaml:"attacks" json:"attacks"`
	Powers          []ActionCard `toml:"powers" yaml:"powers" json:"powers"`
	Tactics         []Tactic     `toml:"tactics" yaml:"tactics" json:"tactics"`
}

type Attack struct {
	Name       string `toml:"name" yaml:"name" json:"name"`
	Bonus      string `toml:"bonus" yaml:"bonus" json:"bonus"`
	Damage     string `toml:"damage" yaml:"damage" json:"damage"`
	MissDamage string `toml:"miss_damage" yaml:"miss_damage" json:"miss_damage"`
}

type Tactic struct {
	Description string `toml:"description" yaml:"description" json:"description"`
}
