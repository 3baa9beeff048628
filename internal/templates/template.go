// Package templates resolves card templates: reusable visual layouts made of image, text and
// placeholder regions that cards bind to, optionally inheriting from a base template.
package templates

import (
	"fmt"
	"image/color"
	"slices"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/AdamMil/BirdhouseManor/internal/document"
	apperrors "github.com/AdamMil/BirdhouseManor/internal/errors"
	"github.com/AdamMil/BirdhouseManor/internal/geometry"
)

// PieceKind selects what a template region draws.
type PieceKind uint8

const (
	PieceImage PieceKind = iota
	PieceText
	PiecePlaceholder
)

var pieceKindNames = []string{"image", "text", "placeholder"}

func (k PieceKind) String() string {
	if int(k) < len(pieceKindNames) {
		return pieceKindNames[k]
	}
	return fmt.Sprintf("PieceKind(%d)", k)
}

// PlaceholderKind says what a card instantiating the template must supply for a placeholder.
type PlaceholderKind uint8

const (
	PlaceholderImage PlaceholderKind = iota
	PlaceholderText
)

func (k PlaceholderKind) String() string {
	if k == PlaceholderText {
		return "text"
	}
	return "image"
}

// Content is a named piece of text a template supplies to its text regions.
type Content struct {
	Name string `cbor:"name"`
	Text string `cbor:"text"`
}

// Piece is one region of a card template.
type Piece struct {
	Kind PieceKind `cbor:"kind"`
	// Area is the region's rectangle; for polygons it is the polygon's bounding box.
	Area    geometry.Rect    `cbor:"area"`
	Polygon geometry.Polygon `cbor:"polygon,omitempty"`
	Color   *color.NRGBA     `cbor:"color,omitempty"`

	// Text pieces
	Size float64 `cbor:"size,omitempty"`
	Text string  `cbor:"text,omitempty"`

	// Image pieces
	Image string `cbor:"image,omitempty"`

	// Placeholder pieces
	Name        string          `cbor:"name,omitempty"`
	Placeholder PlaceholderKind `cbor:"placeholder,omitempty"`
}

// IsPolygon reports whether the piece's area is an arbitrary polygon rather than a rectangle.
func (p *Piece) IsPolygon() bool {
	return len(p.Polygon) != 0
}

// Template is a materialized card template. Content and Pieces already include everything
// inherited from the base template. Templates never change after they are built.
type Template struct {
	ID      string    `cbor:"id,omitempty"`
	Base    string    `cbor:"base,omitempty"`
	Content []Content `cbor:"content"`
	Pieces  []Piece   `cbor:"pieces"`
}

// Text returns the content text with the given name.
func (t *Template) Text(name string) (string, bool) {
	for _, c := range t.Content {
		if c.Name == name {
			return c.Text, true
		}
	}
	return "", false
}

// Placeholders returns the placeholder pieces a card bound to the template must fill.
func (t *Template) Placeholders() []Piece {
	var out []Piece
	for _, p := range t.Pieces {
		if p.Kind == PiecePlaceholder {
			out = append(out, p)
		}
	}
	return out
}

// parseOwn converts a template record into the content and pieces it declares itself,
// without anything inherited.
func parseOwn(rec *document.Template) ([]Content, []Piece, error) {
	content := make([]Content, 0, len(rec.Content))
	seenContent := make(map[string]bool, len(rec.Content))
	for _, c := range rec.Content {
		if seenContent[c.Name] {
			return nil, nil, apperrors.Newf(apperrors.CodeDuplicateDefinition, "content %q is defined multiple times", c.Name).
				With("content", c.Name)
		}
		seenContent[c.Name] = true
		content = append(content, Content{Name: c.Name, Text: c.Text})
	}

	pieces := make([]Piece, 0, len(rec.Pieces))
	seenPlaceholders := make(map[string]bool)
	for i := range rec.Pieces {
		p, err := parsePiece(&rec.Pieces[i])
		if err != nil {
			return nil, nil, apperrors.Locate(err, fmt.Sprintf("pieces[%d]", i))
		}
		if p.Kind == PiecePlaceholder {
			if seenPlaceholders[p.Name] {
				return nil, nil, apperrors.Newf(apperrors.CodeDuplicateDefinition, "placeholder %q is defined multiple times", p.Name).
					With("placeholder", p.Name)
			}
			seenPlaceholders[p.Name] = true
		}
		pieces = append(pieces, p)
	}
	return content, pieces, nil
}

func parsePiece(rec *document.TemplatePiece) (Piece, error) {
	var p Piece
	switch strings.ToLower(rec.Kind) {
	case "image":
		p.Kind = PieceImage
		p.Image = rec.Image
	case "text":
		p.Kind = PieceText
		p.Size = rec.Size
		p.Text = rec.Text
	case "placeholder":
		p.Kind = PiecePlaceholder
		if rec.Name == "" {
			return Piece{}, apperrors.New(apperrors.CodeSchemaViolation, "name is required for placeholders")
		}
		p.Name = rec.Name
		switch strings.ToLower(rec.Placeholder) {
		case "image":
			p.Placeholder = PlaceholderImage
		case "text":
			p.Placeholder = PlaceholderText
		default:
			return Piece{}, apperrors.Newf(apperrors.CodeSchemaViolation, "unknown placeholder kind %q (expected image or text)", rec.Placeholder)
		}
	default:
		return Piece{}, apperrors.Newf(apperrors.CodeSchemaViolation, "unknown piece kind %q (expected image, text or placeholder)", rec.Kind)
	}

	if err := parseArea(rec.Area, &p); err != nil {
		return Piece{}, err
	}

	if rec.Color != "" {
		c, err := ParseColor(rec.Color)
		if err != nil {
			return Piece{}, apperrors.Wrap(apperrors.CodeSchemaViolation, err.Error(), err)
		}
		p.Color = &c
	}
	return p, nil
}

// parseArea reads a region: two points are the top-left and bottom-right corners of a
// rectangle, three or more points are a simple polygon.
func parseArea(area [][]int, p *Piece) error {
	points := make([]geometry.Point, len(area))
	for i, pt := range area {
		if len(pt) != 2 {
			return apperrors.Newf(apperrors.CodeSchemaViolation, "area point %d must have exactly two coordinates", i)
		}
		points[i] = geometry.Point{X: pt[0], Y: pt[1]}
	}

	switch {
	case len(points) < 2:
		return apperrors.New(apperrors.CodeInvalidGeometry, "area needs at least two points")
	case len(points) == 2:
		r, err := geometry.RectFromCorners(points[0], points[1])
		if err != nil {
			return apperrors.Wrap(apperrors.CodeInvalidGeometry, err.Error(), err)
		}
		p.Area = r
	default:
		poly := geometry.Polygon(points)
		if poly.SelfIntersects() {
			return apperrors.New(apperrors.CodeInvalidGeometry, "polygon area intersects itself")
		}
		p.Polygon = poly
		p.Area = poly.Bounds()
	}
	return nil
}

// ParseColor parses a color given as #RRGGBB, #RRGGBBAA or an SVG color name.
func ParseColor(s string) (color.NRGBA, error) {
	if !strings.HasPrefix(s, "#") {
		c, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return color.NRGBA{}, fmt.Errorf("unknown color %q", s)
		}
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}

	alpha := uint8(0xff)
	switch len(s) {
	case 7:
	case 9:
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: bad alpha", s)
		}
		alpha = uint8(a)
		s = s[:7]
	default:
		return color.NRGBA{}, fmt.Errorf("invalid color %q: expected #RRGGBB or #RRGGBBAA", s)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// Clone returns a deep copy of t, or nil if t is nil.
func (t *Template) Clone() *Template {
	if t == nil {
		return nil
	}
	c := &Template{ID: t.ID, Base: t.Base, Content: slices.Clone(t.Content), Pieces: slices.Clone(t.Pieces)}
	for i := range c.Pieces {
		p := &c.Pieces[i]
		p.Polygon = slices.Clone(p.Polygon)
		if p.Color != nil {
			col := *p.Color
			p.Color = &col
		}
	}
	return c
}
