package document

import (
	"fmt"
	"unicode/utf8"

	apperrors "github.com/AdamMil/BirdhouseManor/internal/errors"
)

// Validate checks the document's structure: required fields are present and single-character
// fields hold exactly one character. It stops at the first problem found. Semantic checks
// (references, uniqueness, layouts) belong to the compiler.
func (d *Document) Validate() error {
	if d.Squares.SquareSize == "" {
		return required("squares", "square_size")
	}
	for i, t := range d.Squares.Types {
		if t.Name == "" {
			return required(fmt.Sprintf("squares.types[%d]", i), "name")
		}
	}
	for i, v := range d.Squares.Versions {
		loc := fmt.Sprintf("squares.versions[%d]", i)
		if v.Type == "" {
			return required(loc, "type")
		}
		if err := singleChar(loc, "symbol", v.Symbol); err != nil {
			return err
		}
		if v.Size == "" {
			return required(loc, "size")
		}
	}

	for i, t := range d.Tokens {
		if t.Name == "" {
			return required(fmt.Sprintf("tokens[%d]", i), "name")
		}
	}

	if d.Dungeon.TileSize == "" {
		return required("dungeon", "tile_size")
	}
	if err := singleChar("dungeon", "default_floor", d.Dungeon.DefaultFloor); err != nil {
		return err
	}
	for i, c := range d.Dungeon.Cards {
		loc := fmt.Sprintf("dungeon.cards[%d]", i)
		if c.Name == "" {
			return required(loc, "name")
		}
		if c.Difficulty == "" {
			return required(loc, "difficulty")
		}
		if c.Draw == "" {
			return required(loc, "draw")
		}
		for j, s := range c.Squares {
			sloc := fmt.Sprintf("%s.squares[%d]", loc, j)
			if err := singleChar(sloc, "symbol", s.Symbol); err != nil {
				return err
			}
			if s.Location == "" {
				return required(sloc, "location")
			}
		}
	}

	for i := range d.Templates {
		if err := d.Templates[i].validate(fmt.Sprintf("templates[%d]", i)); err != nil {
			return err
		}
	}

	sections := []struct {
		name  string
		cards []ActionCard
	}{
		{"encounters", d.Encounters},
		{"treasures", d.Treasures},
		{"powers", d.Powers},
	}
	for _, section := range sections {
		for i := range section.cards {
			if err := section.cards[i].validate(fmt.Sprintf("%s[%d]", section.name, i)); err != nil {
				return err
			}
		}
	}

	for i, s := range d.Skills {
		if s.Name == "" {
			return required(fmt.Sprintf("skills[%d]", i), "name")
		}
	}

	for i, h := range d.Heroes {
		loc := fmt.Sprintf("heroes[%d]", i)
		if h.Name == "" {
			return required(loc, "name")
		}
		if err := h.TemplateBinding.validate(loc); err != nil {
			return err
		}
	}

	for _, group := range []struct {
		name     string
		monsters []Monster
	}{{"monsters", d.Monsters}, {"villains", d.Villains}} {
		for i, m := range group.monsters {
			loc := fmt.Sprintf("%s[%d]", group.name, i)
			if m.Name == "" {
				return required(loc, "name")
			}
			if err := m.TemplateBinding.validate(loc); err != nil {
				return err
			}
			for j, a := range m.Attacks {
				if a.Name == "" {
					return required(fmt.Sprintf("%s.attacks[%d]", loc, j), "name")
				}
			}
			for j := range m.Powers {
				if err := m.Powers[j].validate(fmt.Sprintf("%s.powers[%d]", loc, j)); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (c *ActionCard) validate(loc string) error {
	if c.Name == "" {
		return required(loc, "name")
	}
	return c.TemplateBinding.validate(loc)
}

func (b *TemplateBinding) validate(loc string) error {
	if b.InlineTemplate == nil {
		return nil
	}
	return b.InlineTemplate.validate(loc + ".inline_template")
}

func (t *Template) validate(loc string) error {
	for i, c := range t.Content {
		if c.Name == "" {
			return required(fmt.Sprintf("%s.content[%d]", loc, i), "name")
		}
	}
	for i, p := range t.Pieces {
		ploc := fmt.Sprintf("%s.pieces[%d]", loc, i)
		if p.Kind == "" {
			return required(ploc, "kind")
		}
		if len(p.Area) < 2 {
			return apperrors.New(apperrors.CodeSchemaViolation, "area needs at least two points").At(ploc)
		}
		for j, pt := range p.Area {
			if len(pt) != 2 {
				return apperrors.Newf(apperrors.CodeSchemaViolation, "area point %d must have exactly two coordinates", j).At(ploc)
			}
		}
	}
	return nil
}

func required(loc, field string) error {
	return apperrors.Newf(apperrors.CodeSchemaViolation, "%s is required", field).At(loc)
}

func singleChar(loc, field, value string) error {
	if utf8.RuneCountInString(value) != 1 {
		return apperrors.Newf(apperrors.CodeSchemaViolation, "%s must be exactly one character, got %q", field, value).At(loc)
	}
	return nil
}
