// Package mask implements binary pixel silhouettes and the overlap test used
// for car-vs-track collision.
//
// Vehicle silhouettes are taken from the unrotated sprite. The rendered car
// turns with its heading but its collision shape does not; track widths and
// turn radii are tuned around that approximation.
package mask

import (
	"image"
	"math"
	"math/bits"
)

// DefaultThreshold is the alpha value a pixel must exceed to be solid.
const DefaultThreshold = 127

// Mask is a row-major bitmap, one bit per pixel, least significant bit first.
// Bits past Width in the last word of each row are always zero.
type Mask struct {
	w, h   int
	stride int // words per row
	words  []uint64
}

func New(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	stride := (w + 63) / 64
	return &Mask{
		w:      w,
		h:      h,
		stride: stride,
		words:  make([]uint64, stride*h),
	}
}

// FromImage builds a mask from the pixels of img whose alpha exceeds threshold.
// The mask origin is img.Bounds().Min.
func FromImage(img image.Image, threshold uint8) *Mask {
	b := img.Bounds()
	m := New(b.Dx(), b.Dy())
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if uint8(a>>8) > threshold {
				m.Set(x, y, true)
			}
		}
	}
	return m
}

func (m *Mask) Width() int  { return m.w }
func (m *Mask) Height() int { return m.h }

func (m *Mask) Size() image.Point { return image.Pt(m.w, m.h) }

func (m *Mask) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.w && y < m.h
}

func (m *Mask) Get(x, y int) bool {
	if !m.inside(x, y) {
		return false
	}
	return m.words[y*m.stride+x/64]&(1<<uint(x%64)) != 0
}

func (m *Mask) Set(x, y int, on bool) {
	if !m.inside(x, y) {
		return
	}
	i := y*m.stride + x/64
	bit := uint64(1) << uint(x%64)
	if on {
		m.words[i] |= bit
	} else {
		m.words[i] &^= bit
	}
}

// Fill sets every pixel.
func (m *Mask) Fill() {
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			m.Set(x, y, true)
		}
	}
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, w := range m.words {
		n += bits.OnesCount64(w)
	}
	return n
}

func (m *Mask) row(y int) []uint64 {
	return m.words[y*m.stride : (y+1)*m.stride]
}

// window returns 64 pixels of row starting at column start (may be negative).
// Bit i of the result is pixel start+i.
func window(row []uint64, start int) uint64 {
	if start < 0 {
		s := -start
		if s >= 64 || len(row) == 0 {
			return 0
		}
		return row[0] << uint(s)
	}
	wi := start / 64
	if wi >= len(row) {
		return 0
	}
	sh := uint(start % 64)
	v := row[wi] >> sh
	if sh > 0 && wi+1 < len(row) {
		v |= row[wi+1] << (64 - sh)
	}
	return v
}

// Overlap places other at offset inside m's coordinate space and returns the
// first pixel set in both, in m's coordinates. Rows are scanned top to bottom
// and columns left to right.
func (m *Mask) Overlap(other *Mask, offset image.Point) (image.Point, bool) {
	if m == nil || other == nil {
		return image.Point{}, false
	}
	y0 := max(0, offset.Y)
	y1 := min(m.h, offset.Y+other.h)
	x0 := max(0, offset.X)
	x1 := min(m.w, offset.X+other.w)
	if y0 >= y1 || x0 >= x1 {
		return image.Point{}, false
	}
	for y := y0; y < y1; y++ {
		mine := m.row(y)
		theirs := other.row(y - offset.Y)
		for wi := x0 / 64; wi*64 < x1; wi++ {
			hit := mine[wi] & window(theirs, wi*64-offset.X)
			if hit != 0 {
				return image.Pt(wi*64+bits.TrailingZeros64(hit), y), true
			}
		}
	}
	return image.Point{}, false
}

// Collide tests a sprite mask placed at (sx, sy) against an obstacle mask
// placed at (ox, oy). The offset is rounded to whole pixels and the returned
// point is in the obstacle's coordinates.
func Collide(obstacle *Mask, ox, oy float64, sprite *Mask, sx, sy float64) (image.Point, bool) {
	off := image.Pt(int(math.Round(sx-ox)), int(math.Round(sy-oy)))
	return obstacle.Overlap(sprite, off)
}
