package track

import "image/color"

// RGB is an 8-bit per channel colour.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

func (c RGB) Add(dr, dg, db int) RGB {
	return RGB{R: addU8(c.R, dr), G: addU8(c.G, dg), B: addU8(c.B, db)}
}

func addU8(v uint8, d int) uint8 {
	n := int(v) + d
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// NRGBA returns the colour with the given alpha.
func (c RGB) NRGBA(a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

var Palette = struct {
	Grass       RGB
	GrassPatch  RGB
	Road        RGB
	RoadLine    RGB
	KerbRed     RGB
	KerbWhite   RGB
	FinishDark  RGB
	FinishLight RGB
	Window      RGB
	Tyre        RGB
	Headlight   RGB
	PlayerCar   RGB
	OpponentCar RGB
}{
	Grass:       RGB{R: 86, G: 140, B: 62},
	GrassPatch:  RGB{R: 72, G: 122, B: 52},
	Road:        RGB{R: 60, G: 66, B: 79},
	RoadLine:    RGB{R: 200, G: 200, B: 190},
	KerbRed:     RGB{R: 200, G: 40, B: 40},
	KerbWhite:   RGB{R: 235, G: 235, B: 235},
	FinishDark:  RGB{R: 20, G: 20, B: 20},
	FinishLight: RGB{R: 240, G: 240, B: 240},
	Window:      RGB{R: 140, G: 160, B: 175},
	Tyre:        RGB{R: 25, G: 25, B: 28},
	Headlight:   RGB{R: 255, G: 236, B: 160},
	PlayerCar:   RGB{R: 200, G: 50, B: 45},
	OpponentCar: RGB{R: 60, G: 170, B: 70},
}
