package game

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// BuildFontAtlas rasterises the printable ASCII range of basicfont.Face7x13
// into a FontCols x FontRows grid of white glyphs on transparent pixels.
func BuildFontAtlas() *image.NRGBA {
	atlas := image.NewNRGBA(image.Rect(0, 0, FontAtlasW, FontAtlasH))
	d := &font.Drawer{
		Dst:  atlas,
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 255}),
		Face: basicfont.Face7x13,
	}
	for c := FontFirst; c <= '~'; c++ {
		col, row := glyphCell(rune(c))
		d.Dot = fixed.P(col*FontCellW, row*FontCellH+FontAscent)
		d.DrawString(string(rune(c)))
	}
	return atlas
}

// glyphCell returns the atlas cell of ch. Unprintable runes map to '?'.
func glyphCell(ch rune) (col, row int) {
	if ch < FontFirst || ch >= FontFirst+FontCols*FontRows {
		ch = '?'
	}
	i := int(ch) - FontFirst
	return i % FontCols, i / FontCols
}

// glyphUV returns the normalised texture rectangle of ch in the atlas.
func glyphUV(ch rune) (u0, v0, u1, v1 float32) {
	col, row := glyphCell(ch)
	u0 = float32(col*FontCellW) / float32(FontAtlasW)
	v0 = float32(row*FontCellH) / float32(FontAtlasH)
	u1 = float32((col+1)*FontCellW) / float32(FontAtlasW)
	v1 = float32((row+1)*FontCellH) / float32(FontAtlasH)
	return
}

// TextWidth returns the width in screen pixels of a string at given scale.
func TextWidth(text string, scale float32) int {
	lineLen := 0
	maxLineLen := 0
	for _, ch := range text {
		if ch == '\n' {
			maxLineLen = max(maxLineLen, lineLen)
			lineLen = 0
			continue
		}
		lineLen++
	}
	maxLineLen = max(maxLineLen, lineLen)
	return int(float32(maxLineLen*FontCellW) * scale)
}

// bannerRect centres a text block of the given size in the framebuffer and
// returns the backdrop rectangle and the text origin.
func bannerRect(textW, textH, fbW, fbH int) (bx, by, bw, bh, tx, ty int) {
	tx = (fbW - textW) / 2
	ty = (fbH - textH) / 2
	return tx - BannerPad, ty - BannerPad, textW + 2*BannerPad, textH + 2*BannerPad, tx, ty
}
