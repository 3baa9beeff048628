package cmd

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapText(t *testing.T) {
	lines := wrapText("the quick brown fox jumps over the lazy dog", 15)
	assert.Equal(t, []string{"the quick brown", "fox jumps over", "the lazy dog"}, lines)
	assert.Equal(t, []string{""}, wrapText("   ", 20))
}

func TestStripAnsi(t *testing.T) {
	assert.Equal(t, "▀x", stripAnsi("\x1b[38;2;1;2;3m\x1b[48;2;4;5;6m▀\x1b[0mx"))
}

func TestImageToAnsi(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}

	art := imageToAnsi(img, 4, 2)
	lines := strings.Split(strings.TrimSuffix(art, "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, "▀▀▀▀", stripAnsi(line))
	}
	assert.Contains(t, art, "\x1b[38;2;")
}
