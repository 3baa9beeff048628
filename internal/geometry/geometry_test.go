package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	s, err := ParseSize("2x3")
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 2, Height: 3}, s)
	assert.Equal(t, 6, s.Area())
	assert.False(t, s.IsUnit())

	for _, bad := range []string{"", "2", "0x1", "1x-1", "ax2", "2x"} {
		_, err := ParseSize(bad)
		assert.Error(t, err, "size %q", bad)
	}
}

func TestParsePoint(t *testing.T) {
	p, err := ParsePoint(" 0, 3 ")
	require.NoError(t, err)
	assert.Equal(t, Point{X: 0, Y: 3}, p)

	for _, bad := range []string{"", "1", "-1,0", "x,1"} {
		_, err := ParsePoint(bad)
		assert.Error(t, err, "point %q", bad)
	}
}

func TestSizeContains(t *testing.T) {
	s := Size{Width: 4, Height: 2}
	assert.True(t, s.Contains(Point{X: 3, Y: 1}))
	assert.False(t, s.Contains(Point{X: 4, Y: 0}))
	assert.False(t, s.Contains(Point{X: 0, Y: 2}))
	assert.False(t, s.Contains(Point{X: -1, Y: 0}))
}

func TestRectFromCorners(t *testing.T) {
	r, err := RectFromCorners(Point{X: 1, Y: 2}, Point{X: 11, Y: 7})
	require.NoError(t, err)
	assert.Equal(t, 10, r.Dx())
	assert.Equal(t, 5, r.Dy())

	_, err = RectFromCorners(Point{X: 5, Y: 5}, Point{X: 5, Y: 9})
	assert.Error(t, err)
	_, err = RectFromCorners(Point{X: 9, Y: 9}, Point{X: 1, Y: 1})
	assert.Error(t, err)
}

func TestPolygonBounds(t *testing.T) {
	p := Polygon{{X: 5, Y: 0}, {X: 10, Y: 8}, {X: 0, Y: 8}}
	assert.Equal(t, Rect{Min: Point{X: 0, Y: 0}, Max: Point{X: 10, Y: 8}}, p.Bounds())
}

func TestPolygonSelfIntersects(t *testing.T) {
	square := Polygon{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	assert.False(t, square.SelfIntersects())

	bowtie := Polygon{{X: 0, Y: 0}, {X: 4, Y: 4}, {X: 4, Y: 0}, {X: 0, Y: 4}}
	assert.True(t, bowtie.SelfIntersects())

	triangle := Polygon{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 2, Y: 3}}
	assert.False(t, triangle.SelfIntersects())

	concave := Polygon{{X: 0, Y: 0}, {X: 6, Y: 0}, {X: 6, Y: 6}, {X: 3, Y: 2}, {X: 0, Y: 6}}
	assert.False(t, concave.SelfIntersects())
}
