package catalog

import (
	"fmt"
	"io"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/AdamMil/BirdhouseManor/internal/document"
	apperrors "github.com/AdamMil/BirdhouseManor/internal/errors"
	"github.com/AdamMil/BirdhouseManor/internal/geometry"
	"github.com/AdamMil/BirdhouseManor/internal/squares"
	"github.com/AdamMil/BirdhouseManor/internal/templates"
	"github.com/AdamMil/BirdhouseManor/internal/tiles"
)

// Option configures Compile.
type Option func(*compiler)

// WithLogger sets the logger compile stages report to. By default nothing is logged.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *compiler) { c.log = log }
}

type compiler struct {
	log       logrus.FieldLogger
	templates *templates.Set
	cat       *Catalog
}

// Compile validates doc and builds its catalog. It stops at the first error, which is an
// *errors.Error locating the offending record.
func Compile(doc *document.Document, opts ...Option) (*Catalog, error) {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	c := &compiler{log: quiet, cat: &Catalog{name: doc.Name}}
	for _, opt := range opts {
		opt(c)
	}

	if doc.SchemaVersion != SchemaVersion {
		return nil, apperrors.Newf(apperrors.CodeUnsupportedSchemaVersion,
			"unsupported schema version %d (expected %d)", doc.SchemaVersion, SchemaVersion).
			With("schema_version", fmt.Sprint(doc.SchemaVersion)).At("schema_version")
	}

	var ext Extension
	if doc.Extension != "" {
		var err error
		if ext, err = LookupExtension(doc.Extension); err != nil {
			return nil, err
		}
		c.cat.extension = doc.Extension
		c.log.WithField("extension", doc.Extension).Debug("using catalog extension")
	}

	stages := []struct {
		name string
		run  func() error
	}{
		{"squares", func() error { return c.compileSquares(doc) }},
		{"templates", func() error { return c.compileTemplates(doc.Templates) }},
		{"dungeon", func() error { return c.compileDungeon(doc.Dungeon) }},
		{"encounters", func() error {
			return c.compileCards(&c.cat.encounters, KindEncounter, "encounters", doc.Encounters, ext.Encounters)
		}},
		{"treasures", func() error {
			return c.compileCards(&c.cat.treasures, KindTreasure, "treasures", doc.Treasures, ext.Treasures)
		}},
		{"powers", func() error {
			return c.compileCards(&c.cat.powers, KindPower, "powers", doc.Powers, ext.Powers)
		}},
		{"skills", func() error { return c.compileSkills(doc.Skills, ext.Skills) }},
		{"heroes", func() error { return c.compileHeroes(doc.Heroes, ext.Heroes) }},
		{"monsters", func() error { return c.compileMonsters("monsters", false, doc.Monsters, ext.Monsters) }},
		{"villains", func() error { return c.compileMonsters("villains", true, doc.Villains, ext.Villains) }},
	}
	for _, stage := range stages {
		if err := stage.run(); err != nil {
			c.log.WithField("section", stage.name).WithError(err).Debug("compile failed")
			return nil, err
		}
	}

	c.log.WithFields(logrus.Fields{
		"dungeon_cards": len(c.cat.dungeon),
		"encounters":    len(c.cat.encounters),
		"treasures":     len(c.cat.treasures),
		"powers":        len(c.cat.powers),
		"heroes":        len(c.cat.heroes),
		"monsters":      len(c.cat.monsters),
	}).Debug("catalog compiled")
	return c.cat, nil
}

func (c *compiler) compileSquares(doc *document.Document) error {
	sq, err := squares.Build(doc.Squares)
	if err != nil {
		return err
	}
	tokens, err := squares.BuildTokens(doc.Tokens)
	if err != nil {
		return err
	}
	c.cat.squares = sq
	c.cat.tokens = tokens
	c.log.WithFields(logrus.Fields{"section": "squares", "types": len(sq.Types), "tokens": len(tokens)}).
		Debug("square types built")
	return nil
}

func (c *compiler) compileTemplates(records []document.Template) error {
	set, err := templates.Resolve(records)
	if err != nil {
		return err
	}
	c.templates = set
	c.cat.templates = set.Templates()
	c.log.WithFields(logrus.Fields{"section": "templates", "count": set.Len()}).Debug("templates resolved")
	return nil
}

func (c *compiler) compileDungeon(section document.DungeonSection) error {
	tileSize, err := geometry.ParseSize(section.TileSize)
	if err != nil {
		return apperrors.Locate(err, "dungeon.tile_size")
	}
	floor, err := squares.ParseSymbol(section.DefaultFloor)
	if err != nil {
		return apperrors.Locate(err, "dungeon.default_floor")
	}

	// the symbol checks span every square type and must pass before any layout is read
	symbols, err := squares.IndexSymbols(c.cat.squares)
	if err != nil {
		return err
	}
	tc, err := tiles.NewCompiler(symbols, tileSize, floor)
	if err != nil {
		return err
	}
	cards, err := tc.Compile(section.Cards)
	if err != nil {
		return err
	}
	c.cat.tileSize = tileSize
	c.cat.dungeon = cards
	c.log.WithFields(logrus.Fields{"section": "dungeon", "count": len(cards), "tile_size": tileSize.String()}).
		Debug("dungeon cards compiled")
	return nil
}

// bind resolves a record's template, requiring one when required is set.
func (c *compiler) bind(b document.TemplateBinding, required bool, name string) (*templates.Template, error) {
	t, err := c.templates.Bind(b)
	if err != nil {
		return nil, err
	}
	if t == nil && required {
		return nil, apperrors.Newf(apperrors.CodeMissingTemplate, "%s has no template", name).With("card", name)
	}
	return t, nil
}

func (c *compiler) compileCards(dst *[]Card, kind Kind, section string, records, extra []document.ActionCard) error {
	all := append(slices.Clone(records), extra...)
	cards := make([]Card, 0, len(all))
	seen := make(map[string]bool, len(all))
	for i := range all {
		rec := &all[i]
		card, err := c.compileCard(kind, rec)
		if err != nil {
			return apperrors.Locate(err, recordLocation(section, i, len(records), rec.Name))
		}
		if kind == KindPower {
			// hero levels select powers by name
			if seen[rec.Name] {
				return apperrors.Newf(apperrors.CodeDuplicateDefinition, "power was defined multiple times: %s", rec.Name).
					With("card", rec.Name).At(recordLocation(section, i, len(records), rec.Name))
			}
			seen[rec.Name] = true
		}
		cards = append(cards, card)
	}
	*dst = cards
	c.log.WithFields(logrus.Fields{"section": section, "count": len(cards)}).Debug("cards compiled")
	return nil
}

func (c *compiler) compileCard(kind Kind, rec *document.ActionCard) (Card, error) {
	card := Card{
		Kind:     kind,
		Class:    rec.Class,
		IsAttack: rec.IsAttack,
		IsMove:   rec.IsMove,
		Common: Common{
			Name:        rec.Name,
			Count:       rec.Count,
			AttackBonus: rec.AttackBonus,
			Damage:      rec.Damage,
			Description: rec.Description,
			Flavor:      rec.Flavor,
		},
	}
	if kind != KindMonsterPower {
		sub, err := ParseSubtype(kind, rec.Kind)
		if err != nil {
			return Card{}, err
		}
		card.Subtype = sub
	}

	t, err := c.bind(rec.TemplateBinding, kind != KindMonsterPower, rec.Name)
	if err != nil {
		return Card{}, err
	}
	card.Template = t
	return card, nil
}

func (c *compiler) compileSkills(records, extra []document.Skill) error {
	all := append(slices.Clone(records), extra...)
	seen := make(map[string]bool, len(all))
	for i, rec := range all {
		if seen[rec.Name] {
			return apperrors.Newf(apperrors.CodeDuplicateDefinition, "skill was defined multiple times: %s", rec.Name).
				With("skill", rec.Name).At(recordLocation("skills", i, len(records), rec.Name))
		}
		seen[rec.Name] = true
		c.cat.skills = append(c.cat.skills, Skill{Name: rec.Name, Description: rec.Description})
	}
	c.log.WithFields(logrus.Fields{"section": "skills", "count": len(c.cat.skills), "extension": len(extra)}).
		Debug("skills loaded")
	return nil
}

func (c *compiler) compileHeroes(records, extra []document.Hero) error {
	skills := make(map[string]bool, len(c.cat.skills))
	for _, s := range c.cat.skills {
		skills[s.Name] = true
	}
	powers := make(map[string]bool, len(c.cat.powers))
	classes := make(map[string]bool)
	for _, p := range c.cat.powers {
		powers[p.Name] = true
		if p.Class != "" {
			classes[p.Class] = true
		}
	}

	all := append(slices.Clone(records), extra...)
	for i := range all {
		rec := &all[i]
		hero, err := c.compileHero(rec, skills, powers, classes)
		if err != nil {
			return apperrors.Locate(err, recordLocation("heroes", i, len(records), rec.Name))
		}
		c.cat.heroes = append(c.cat.heroes, hero)
	}
	c.log.WithFields(logrus.Fields{"section": "heroes", "count": len(all)}).Debug("heroes compiled")
	return nil
}

func (c *compiler) compileHero(rec *document.Hero, skills, powers, classes map[string]bool) (HeroClass, error) {
	t, err := c.bind(rec.TemplateBinding, true, rec.Name)
	if err != nil {
		return HeroClass{}, err
	}
	hero := HeroClass{Entity: entity(rec.Entity, t)}

	seen := make(map[int]bool, len(rec.Levels))
	for i, l := range rec.Levels {
		loc := fmt.Sprintf("level %d", l.Level)
		if l.Level <= 0 {
			return HeroClass{}, apperrors.New(apperrors.CodeSchemaViolation, "level must be a positive number").
				At(fmt.Sprintf("levels[%d]", i))
		}
		if seen[l.Level] {
			return HeroClass{}, apperrors.Newf(apperrors.CodeDuplicateDefinition, "level %d was defined multiple times", l.Level).
				With("level", fmt.Sprint(l.Level)).At(fmt.Sprintf("levels[%d]", i))
		}
		seen[l.Level] = true

		level := Level{Level: l.Level, AC: l.AC, HP: l.HP, Speed: l.Speed, Surge: l.Surge, Class: l.Class}
		for _, s := range l.Skills {
			if !skills[s] {
				return HeroClass{}, apperrors.Newf(apperrors.CodeUndefinedReference, "undefined skill: %s", s).
					With("skill", s).At(loc)
			}
			level.Skills = append(level.Skills, s)
		}
		for j, p := range l.Powers {
			sel, err := powerSelection(p, powers, classes)
			if err != nil {
				return HeroClass{}, apperrors.Locate(err, fmt.Sprintf("%s, powers[%d]", loc, j))
			}
			level.Powers = append(level.Powers, sel)
		}
		hero.Levels = append(hero.Levels, level)
	}

	slices.SortStableFunc(hero.Levels, func(a, b Level) int { return a.Level - b.Level })
	return hero, nil
}

func powerSelection(rec document.PowerSelection, powers, classes map[string]bool) (PowerSelection, error) {
	if rec.Name != "" {
		if rec.Class != "" || rec.Type != "" {
			return PowerSelection{}, apperrors.New(apperrors.CodeSchemaViolation,
				"a power selected by name must not also give a class or type")
		}
		if !powers[rec.Name] {
			return PowerSelection{}, apperrors.Newf(apperrors.CodeUndefinedReference, "undefined power: %s", rec.Name).
				With("power", rec.Name)
		}
		return PowerSelection{Name: rec.Name}, nil
	}

	if rec.Class == "" || rec.Type == "" {
		return PowerSelection{}, apperrors.New(apperrors.CodeSchemaViolation,
			"a power selection needs either a name, or a class, type and count")
	}
	if rec.Count <= 0 {
		return PowerSelection{}, apperrors.Newf(apperrors.CodeSchemaViolation, "power count must be positive, got %d", rec.Count)
	}
	typ, err := ParseSubtype(KindPower, rec.Type)
	if err != nil {
		return PowerSelection{}, err
	}
	if !classes[rec.Class] {
		return PowerSelection{}, apperrors.Newf(apperrors.CodeUndefinedReference, "undefined power class: %s", rec.Class).
			With("class", rec.Class)
	}
	return PowerSelection{Class: rec.Class, Type: typ, Count: rec.Count}, nil
}

func (c *compiler) compileMonsters(section string, villain bool, records, extra []document.Monster) error {
	all := append(slices.Clone(records), extra...)
	for i := range all {
		rec := &all[i]
		m, err := c.compileMonster(rec, villain)
		if err != nil {
			return apperrors.Locate(err, recordLocation(section, i, len(records), rec.Name))
		}
		c.cat.monsters = append(c.cat.monsters, m)
	}
	c.log.WithFields(logrus.Fields{"section": section, "count": len(all)}).Debug("monsters compiled")
	return nil
}

func (c *compiler) compileMonster(rec *document.Monster, villain bool) (MonsterClass, error) {
	t, err := c.bind(rec.TemplateBinding, true, rec.Name)
	if err != nil {
		return MonsterClass{}, err
	}
	m := MonsterClass{
		Entity:  entity(rec.Entity, t),
		Villain: villain,
		AC:      rec.AC,
		Class:   rec.Class,
		HP:      rec.HP,
		Size:    rec.Size,
		XP:      rec.XP,
	}
	for _, a := range rec.Attacks {
		m.Attacks = append(m.Attacks, Attack{Name: a.Name, Bonus: a.Bonus, Damage: a.Damage, MissDamage: a.MissDamage})
	}
	for i := range rec.Powers {
		p, err := c.compileCard(KindMonsterPower, &rec.Powers[i])
		if err != nil {
			return MonsterClass{}, apperrors.Locate(err, fmt.Sprintf("power %s", rec.Powers[i].Name))
		}
		m.Powers = append(m.Powers, p)
	}
	for _, tactic := range rec.Tactics {
		m.Tactics = append(m.Tactics, tactic.Description)
	}
	return m, nil
}

func entity(rec document.Entity, t *templates.Template) Entity {
	return Entity{
		Name:       rec.Name,
		Count:      rec.Count,
		Flavor:     rec.Flavor,
		Race:       rec.Race,
		TokenImage: rec.TokenImage,
		Template:   t,
	}
}

// recordLocation names a record for error messages. Records past the document's own come from
// the extension.
func recordLocation(section string, i, fromDocument int, name string) string {
	if i >= fromDocument {
		return fmt.Sprintf("%s (extension) %s", section, name)
	}
	return fmt.Sprintf("%s[%d] %s", section, i, name)
}
