package tiles

import (
	"fmt"
	"strings"

	"github.com/AdamMil/BirdhouseManor/internal/geometry"
)

// Rotation is how a square placed on a dungeon card is turned.
type Rotation uint8

const (
	RotationNone       Rotation = iota
	RotationRight               // 90 degrees clockwise
	RotationLeft                // 90 degrees counter-clockwise
	RotationUpsideDown          // 180 degrees
)

var rotationNames = []string{"none", "right", "left", "upside_down"}

func (r Rotation) String() string {
	if int(r) < len(rotationNames) {
		return rotationNames[r]
	}
	return fmt.Sprintf("Rotation(%d)", r)
}

// ParseRotation parses a rotation name, case-insensitively. An empty string means none.
func ParseRotation(s string) (Rotation, error) {
	if s == "" {
		return RotationNone, nil
	}
	norm := strings.ReplaceAll(strings.ToLower(s), "-", "_")
	if norm == "upsidedown" {
		norm = "upside_down"
	}
	for i, name := range rotationNames {
		if norm == name {
			return Rotation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rotation %q (expected none, right, left or upside_down)", s)
}

// orientation describes where an object's cells lie relative to its anchor. The anchor is the
// object's top-left cell before rotation; turning the object moves the rest of its cells
// around the anchor.
type orientation struct {
	dx, dy int  // direction from the anchor toward the far corner
	swap   bool // width and height trade places
}

var orientations = [...]orientation{
	RotationNone:       {dx: 1, dy: 1},
	RotationRight:      {dx: -1, dy: 1, swap: true},
	RotationLeft:       {dx: 1, dy: -1, swap: true},
	RotationUpsideDown: {dx: -1, dy: -1},
}

// inferenceOrder is the order in which rotations are tried when inferring an object's
// rotation from a layer grid, turning clockwise from unrotated.
var inferenceOrder = [...]Rotation{RotationNone, RotationRight, RotationUpsideDown, RotationLeft}

// Extent returns the size of footprint once rotated by r.
func (r Rotation) Extent(footprint geometry.Size) geometry.Size {
	if orientations[r].swap {
		return geometry.Size{Width: footprint.Height, Height: footprint.Width}
	}
	return footprint
}

// FarCorner returns the offset from an object's anchor to the opposite corner of its
// footprint, inclusive, once rotated by r.
func (r Rotation) FarCorner(footprint geometry.Size) geometry.Point {
	o := orientations[r]
	ext := r.Extent(footprint)
	return geometry.Point{X: o.dx * (ext.Width - 1), Y: o.dy * (ext.Height - 1)}
}

// Cells returns the offsets from the anchor of every cell a footprint covers once rotated by
// r. The anchor itself, at offset 0,0, comes first.
func (r Rotation) Cells(footprint geometry.Size) []geometry.Point {
	o := orientations[r]
	ext := r.Extent(footprint)
	cells := make([]geometry.Point, 0, ext.Area())
	for oy := 0; oy < ext.Height; oy++ {
		for ox := 0; ox < ext.Width; ox++ {
			cells = append(cells, geometry.Point{X: o.dx * ox, Y: o.dy * oy})
		}
	}
	return cells
}
