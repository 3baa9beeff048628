// Package geometry holds the integer points, sizes and shapes used by tile layouts and
// card template regions.
package geometry

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a location in cells or pixels, depending on context.
type Point struct {
	X int `cbor:"x"`
	Y int `cbor:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size is a width and height, in cells or pixels.
type Size struct {
	Width  int `cbor:"w"`
	Height int `cbor:"h"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Area returns Width*Height.
func (s Size) Area() int {
	return s.Width * s.Height
}

// IsUnit reports whether the size is exactly 1x1.
func (s Size) IsUnit() bool {
	return s.Width == 1 && s.Height == 1
}

// Contains reports whether p lies inside a grid of this size anchored at the origin.
func (s Size) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < s.Width && p.Y < s.Height
}

// ParseSize parses a size of the form WIDTHxHEIGHT (e.g. 2x3). Zero or negative dimensions
// are rejected.
func ParseSize(s string) (Size, error) {
	w, h, ok := strings.Cut(strings.TrimSpace(s), "x")
	if !ok {
		return Size{}, fmt.Errorf("invalid size %q: expected WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return Size{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return Size{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return Size{}, fmt.Errorf("invalid size %q: dimensions must be positive", s)
	}
	return Size{Width: width, Height: height}, nil
}

// ParsePoint parses a point of the form X,Y. Negative coordinates are rejected.
func ParsePoint(s string) (Point, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return Point{}, fmt.Errorf("invalid location %q: expected X,Y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Point{}, fmt.Errorf("invalid location %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Point{}, fmt.Errorf("invalid location %q: %w", s, err)
	}
	if x < 0 || y < 0 {
		return Point{}, fmt.Errorf("invalid location %q: coordinates must not be negative", s)
	}
	return Point{X: x, Y: y}, nil
}
