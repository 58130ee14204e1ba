package game

import "math"

type Camera struct {
	X, Y float64 // world-pixel space, camera centre
	Zoom float64 // screen pixels per world pixel
}

// FitCamera centres a worldW x worldH world in the framebuffer at the
// largest zoom that shows all of it.
func FitCamera(worldW, worldH, fbW, fbH int) Camera {
	zoom := 1.0
	if worldW > 0 && worldH > 0 && fbW > 0 && fbH > 0 {
		zoom = math.Min(float64(fbW)/float64(worldW), float64(fbH)/float64(worldH))
	}
	return Camera{X: float64(worldW) / 2, Y: float64(worldH) / 2, Zoom: zoom}
}

// ScreenCamera maps world pixels one to one onto the framebuffer.
func ScreenCamera(fbW, fbH int) Camera {
	return Camera{X: float64(fbW) / 2, Y: float64(fbH) / 2, Zoom: 1}
}

// WorldToScreen converts a world position to framebuffer pixels.
func (c Camera) WorldToScreen(x, y float64, fbW, fbH int) (float64, float64) {
	return (x-c.X)*c.Zoom + float64(fbW)*0.5, (y-c.Y)*c.Zoom + float64(fbH)*0.5
}
