package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFontAtlas(t *testing.T) {
	atlas := BuildFontAtlas()

	assert.Equal(t, FontAtlasW, atlas.Bounds().Dx())
	assert.Equal(t, FontAtlasH, atlas.Bounds().Dy())

	lit := func(ch rune) int {
		col, row := glyphCell(ch)
		n := 0
		for y := row * FontCellH; y < (row+1)*FontCellH; y++ {
			for x := col * FontCellW; x < (col+1)*FontCellW; x++ {
				if atlas.NRGBAAt(x, y).A > 0 {
					n++
				}
			}
		}
		return n
	}
	assert.Zero(t, lit(' '))
	assert.Positive(t, lit('A'))
	assert.Positive(t, lit('~'))
}

func TestGlyphCell(t *testing.T) {
	tests := []struct {
		ch       rune
		col, row int
	}{
		{' ', 0, 0},
		{'0', 0, 1},
		{'A', 1, 2},
		{'~', 14, 5},
		{'é', 15, 1}, // '?'
		{'\t', 15, 1},
	}
	for _, tt := range tests {
		col, row := glyphCell(tt.ch)
		assert.Equal(t, tt.col, col, "%q", tt.ch)
		assert.Equal(t, tt.row, row, "%q", tt.ch)
	}

	u0, v0, u1, v1 := glyphUV('A')
	assert.InDelta(t, 7.0/112, u0, 1e-6)
	assert.InDelta(t, 26.0/78, v0, 1e-6)
	assert.InDelta(t, 14.0/112, u1, 1e-6)
	assert.InDelta(t, 39.0/78, v1, 1e-6)
}

func TestTextWidth(t *testing.T) {
	assert.Equal(t, 0, TextWidth("", 2))
	assert.Equal(t, 70, TextWidth("Yay You Won!"[:5], 2))
	assert.Equal(t, 84, TextWidth("ab\nYay You Won!", 1))
	assert.Equal(t, 21, TextWidth("abc", 1))
}

func TestBannerRect(t *testing.T) {
	bx, by, bw, bh, tx, ty := bannerRect(200, 40, 800, 600)

	assert.Equal(t, 300, tx)
	assert.Equal(t, 280, ty)
	assert.Equal(t, tx-BannerPad, bx)
	assert.Equal(t, ty-BannerPad, by)
	assert.Equal(t, 200+2*BannerPad, bw)
	assert.Equal(t, 40+2*BannerPad, bh)
}
