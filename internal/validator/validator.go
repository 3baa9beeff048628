package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/AdamMil/BirdhouseManor/internal/catalog"
	"github.com/AdamMil/BirdhouseManor/internal/document"
	"github.com/AdamMil/BirdhouseManor/internal/templates"
	"github.com/AdamMil/BirdhouseManor/internal/tiles"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// OK reports whether validation found no errors.
func (r ValidationResults) OK() bool {
	return len(r.Errors) == 0
}

type Validator struct {
	GamePath string
	Results  ValidationResults
	// Catalog is set once the game compiles.
	Catalog *catalog.Catalog

	log logrus.FieldLogger
}

func NewValidator(gamePath string, log logrus.FieldLogger) *Validator {
	return &Validator{
		GamePath: gamePath,
		Results:  ValidationResults{},
		log:      log,
	}
}

// Validate loads and compiles the game. A compile error is reported in the results; only a
// game file that can't be found or read is returned as an error.
func (v *Validator) Validate() (ValidationResults, error) {
	doc, err := document.Load(v.GamePath)
	if err != nil {
		if _, statErr := os.Stat(v.GamePath); statErr != nil {
			return v.Results, err
		}
		v.Results.Errors = append(v.Results.Errors, err.Error())
		return v.Results, nil
	}

	cat, err := catalog.Compile(doc, catalog.WithLogger(v.log))
	if err != nil {
		v.Results.Errors = append(v.Results.Errors, err.Error())
		return v.Results, nil
	}
	v.Catalog = cat

	v.validateImages(doc.Dir, cat)
	v.validateDungeon(cat)
	v.validateCounts(cat)

	return v.Results, nil
}

// validateImages checks that every image the catalog refers to exists on disk
func (v *Validator) validateImages(dir string, cat *catalog.Catalog) {
	images := make(map[string][]string) // path -> users
	add := func(path, user string) {
		if path != "" {
			images[path] = append(images[path], user)
		}
	}

	for _, t := range cat.SquareTypes() {
		for _, ver := range t.Versions {
			add(ver.Image, fmt.Sprintf("square %s %q", t.Name, ver.Symbol))
		}
	}
	for _, t := range cat.Tokens() {
		add(t.IconImage, "token "+t.Name)
		add(t.TokenImage, "token "+t.Name)
	}
	for _, c := range cat.DungeonCards() {
		add(c.Image, "dungeon card "+c.Key())
	}

	// named templates are listed once, under their own id
	seen := make(map[string]bool)
	addTemplate := func(t *templates.Template, user string) {
		if t == nil || t.ID != "" && seen[t.ID] {
			return
		}
		seen[t.ID] = true
		for _, p := range t.Pieces {
			if p.Kind == templates.PieceImage {
				add(p.Image, user)
			}
		}
	}
	for _, t := range cat.Templates() {
		addTemplate(t, "template "+t.ID)
	}
	for _, group := range [][]catalog.Card{cat.Encounters(), cat.Treasures(), cat.Powers()} {
		for _, c := range group {
			addTemplate(c.Template, c.String())
		}
	}
	for _, h := range cat.Heroes() {
		add(h.TokenImage, "hero "+h.Name)
		addTemplate(h.Template, "hero "+h.Name)
	}
	for _, m := range cat.Monsters() {
		add(m.TokenImage, "monster "+m.Name)
		addTemplate(m.Template, "monster "+m.Name)
	}

	paths := make([]string, 0, len(images))
	for path := range images {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		full := path
		if !filepath.IsAbs(full) {
			full = filepath.Join(dir, path)
		}
		if _, err := os.Stat(full); os.IsNotExist(err) {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("image not found: %s (used by %s)", path, images[path][0]))
		}
	}
}

// validateDungeon checks that a game can be set up from the dungeon cards
func (v *Validator) validateDungeon(cat *catalog.Catalog) {
	var start, random int
	for _, c := range cat.DungeonCards() {
		switch c.Draw {
		case tiles.DrawStart:
			start++
		case tiles.DrawRandom:
			random += c.Count
		}
	}
	if start == 0 {
		v.Results.Warnings = append(v.Results.Warnings, "no dungeon card has draw type start")
	}
	if random == 0 {
		v.Results.Warnings = append(v.Results.Warnings, "the dungeon tile deck is empty")
	}
}

// validateCounts warns about cards that will never be dealt
func (v *Validator) validateCounts(cat *catalog.Catalog) {
	for _, c := range cat.DungeonCards() {
		if c.Draw == tiles.DrawRandom && c.Count <= 0 {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("dungeon card %s has no copies", c.Key()))
		}
	}
	for _, group := range [][]catalog.Card{cat.Encounters(), cat.Treasures()} {
		for _, c := range group {
			if c.Count <= 0 {
				v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf("%s has no copies", c.String()))
			}
		}
	}
}
