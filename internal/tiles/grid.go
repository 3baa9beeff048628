package tiles

import (
	"strings"

	"github.com/AdamMil/BirdhouseManor/internal/geometry"
)

// Grid returns the symbol seen on top of each cell, one row per slice. Every cell a
// multi-cell square covers shows that square's symbol.
func (c *Card) Grid() [][]rune {
	grid := make([][]rune, c.Size.Height)
	for y := range grid {
		grid[y] = make([]rune, c.Size.Width)
		for x := range grid[y] {
			if stack := c.At(x, y); len(stack) != 0 {
				grid[y][x] = stack[len(stack)-1].Symbol()
			} else {
				grid[y][x] = ' '
			}
		}
	}

	// footprints go over the cells they cover, which may hold terrain placed later
	for y := 0; y < c.Size.Height; y++ {
		for x := 0; x < c.Size.Width; x++ {
			for _, p := range c.At(x, y) {
				footprint := p.Versions[0].Size
				if footprint.IsUnit() {
					continue
				}
				anchor := geometry.Point{X: x, Y: y}
				for _, offset := range p.Rotation.Cells(footprint) {
					if q := anchor.Add(offset); c.Size.Contains(q) {
						grid[q.Y][q.X] = p.Symbol()
					}
				}
			}
		}
	}
	return grid
}

// GridString renders Grid as lines of text.
func (c *Card) GridString() string {
	var b strings.Builder
	for _, row := range c.Grid() {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
