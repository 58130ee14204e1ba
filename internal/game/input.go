//go:build !android

package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"carrace/internal/race"
)

type Input struct {
	window   *glfw.Window
	prevKeys map[glfw.Key]bool
	anyKey   bool
}

// NewInput hooks the window's key callback so a press of any key between
// polls is remembered.
func NewInput(window *glfw.Window) *Input {
	in := &Input{
		window:   window,
		prevKeys: make(map[glfw.Key]bool),
	}
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Press && key != glfw.KeyEscape {
			in.anyKey = true
		}
	})
	return in
}

func (in *Input) JustPressed(key glfw.Key) bool {
	down := in.window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

func (in *Input) down(keys ...glfw.Key) bool {
	for _, k := range keys {
		if in.window.GetKey(k) == glfw.Press {
			return true
		}
	}
	return false
}

// Poll pumps the window events and reports what happened since the last call.
func (in *Input) Poll() race.Events {
	glfw.PollEvents()
	ev := race.Events{
		Quit:   in.window.ShouldClose() || in.JustPressed(glfw.KeyEscape),
		AnyKey: in.anyKey,
	}
	in.anyKey = false
	return ev
}

// Held reads the arrow keys, with WASD as an alternative.
func (in *Input) Held() race.Controls {
	return race.Controls{
		Left:  in.down(glfw.KeyLeft, glfw.KeyA),
		Right: in.down(glfw.KeyRight, glfw.KeyD),
		Up:    in.down(glfw.KeyUp, glfw.KeyW),
		Down:  in.down(glfw.KeyDown, glfw.KeyS),
	}
}
