package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitCamera(t *testing.T) {
	tests := []struct {
		name     string
		fbW, fbH int
		zoom     float64
	}{
		{"same size", 820, 820, 1},
		{"double", 1640, 1640, 2},
		{"wide window", 1600, 820, 1},
		{"tall window", 410, 1000, 0.5},
		{"minimised", 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := FitCamera(820, 820, tt.fbW, tt.fbH)
			assert.Equal(t, 410.0, cam.X)
			assert.Equal(t, 410.0, cam.Y)
			assert.Equal(t, tt.zoom, cam.Zoom)
		})
	}
}

func TestWorldToScreen(t *testing.T) {
	cam := FitCamera(820, 820, 1640, 1640)

	x, y := cam.WorldToScreen(0, 0, 1640, 1640)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)

	x, y = cam.WorldToScreen(130, 250, 1640, 1640)
	assert.Equal(t, 260.0, x)
	assert.Equal(t, 500.0, y)

	scr := ScreenCamera(800, 600)
	x, y = scr.WorldToScreen(12, 34, 800, 600)
	assert.Equal(t, 12.0, x)
	assert.Equal(t, 34.0, y)
}
