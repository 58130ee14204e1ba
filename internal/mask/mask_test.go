package mask

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rect(w, h int) *Mask {
	m := New(w, h)
	m.Fill()
	return m
}

func TestSetGetOutOfRange(t *testing.T) {
	m := New(70, 3)
	m.Set(69, 2, true)
	m.Set(70, 2, true)
	m.Set(-1, 0, true)

	assert.True(t, m.Get(69, 2))
	assert.False(t, m.Get(70, 2))
	assert.Equal(t, 1, m.Count())

	m.Set(69, 2, false)
	assert.Zero(t, m.Count())
}

func TestFromImageUsesAlphaThreshold(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{A: 127})
	img.SetNRGBA(2, 0, color.NRGBA{A: 128})

	m := FromImage(img, DefaultThreshold)

	assert.Equal(t, image.Pt(3, 1), m.Size())
	assert.True(t, m.Get(0, 0))
	assert.False(t, m.Get(1, 0))
	assert.True(t, m.Get(2, 0))
}

func TestOverlapReturnsFirstPointRowMajor(t *testing.T) {
	obstacle := rect(10, 10)
	sprite := rect(4, 4)

	p, ok := obstacle.Overlap(sprite, image.Pt(3, 5))
	require.True(t, ok)
	assert.Equal(t, image.Pt(3, 5), p)

	// Sprite hanging over the top-left corner hits the origin.
	p, ok = obstacle.Overlap(sprite, image.Pt(-2, -2))
	require.True(t, ok)
	assert.Equal(t, image.Pt(0, 0), p)
}

func TestOverlapMissesDisjointMasks(t *testing.T) {
	a := rect(10, 10)
	b := rect(5, 5)

	_, ok := a.Overlap(b, image.Pt(10, 0))
	assert.False(t, ok)
	_, ok = a.Overlap(b, image.Pt(0, -5))
	assert.False(t, ok)
	_, ok = a.Overlap(New(5, 5), image.Pt(1, 1))
	assert.False(t, ok)
}

func TestOverlapAcrossWordBoundaries(t *testing.T) {
	wide := New(200, 1)
	wide.Set(130, 0, true)
	dot := rect(1, 1)

	for _, x := range []int{0, 63, 64, 129, 131, 199} {
		_, ok := wide.Overlap(dot, image.Pt(x, 0))
		assert.False(t, ok, "x=%d", x)
	}
	p, ok := wide.Overlap(dot, image.Pt(130, 0))
	require.True(t, ok)
	assert.Equal(t, image.Pt(130, 0), p)

	// A wide sprite shifted by a non-word amount still finds the pixel.
	bar := New(100, 1)
	bar.Set(99, 0, true)
	p, ok = wide.Overlap(bar, image.Pt(31, 0))
	require.True(t, ok)
	assert.Equal(t, image.Pt(130, 0), p)
}

func TestOverlapIsSymmetricUnderNegatedOffset(t *testing.T) {
	ring := New(40, 40)
	for i := 0; i < 40; i++ {
		ring.Set(i, 0, true)
		ring.Set(i, 39, true)
		ring.Set(0, i, true)
		ring.Set(39, i, true)
	}
	car := New(9, 17)
	for y := 2; y < 15; y++ {
		for x := 1; x < 8; x++ {
			car.Set(x, y, true)
		}
	}

	for oy := -20; oy <= 45; oy += 3 {
		for ox := -12; ox <= 45; ox += 2 {
			_, ab := ring.Overlap(car, image.Pt(ox, oy))
			_, ba := car.Overlap(ring, image.Pt(-ox, -oy))
			assert.Equal(t, ab, ba, "offset (%d,%d)", ox, oy)
		}
	}
}

func TestCollideRoundsOffset(t *testing.T) {
	finish := rect(10, 4)
	car := rect(2, 2)

	// 3.6 rounds to 4: the car starts one row below the finish mask.
	_, ok := Collide(finish, 100, 200, car, 100, 200+3.6)
	assert.False(t, ok)

	p, ok := Collide(finish, 100, 200, car, 100.4, 200+2.4)
	require.True(t, ok)
	assert.Equal(t, image.Pt(0, 2), p)

	_, ab := Collide(finish, 100, 200, car, 95.2, 198.7)
	_, ba := Collide(car, 95.2, 198.7, finish, 100, 200)
	assert.Equal(t, ab, ba)
}

func TestNilMasksNeverOverlap(t *testing.T) {
	var m *Mask
	_, ok := m.Overlap(rect(1, 1), image.Point{})
	assert.False(t, ok)
	_, ok = rect(1, 1).Overlap(nil, image.Point{})
	assert.False(t, ok)
}
