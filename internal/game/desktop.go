//go:build !android

package game

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"

	"carrace/internal/race"
	"carrace/internal/track"
)

var (
	hudColor    = track.RGB{R: 255, G: 255, B: 255}
	bannerColor = track.RGB{R: 255, G: 230, B: 90}
	bannerBack  = track.RGB{R: 10, G: 10, B: 14}
)

// Desktop is the windowed frontend. It draws the world letterboxed to fit
// the framebuffer and reads the keyboard through Input.
type Desktop struct {
	*Input

	window *glfw.Window
	rend   *Renderer
	assets *track.Assets

	layers  map[race.Layer]uint32
	sprites map[race.Sprite]uint32

	inFrame bool
	cam     Camera
	fbW     int
	fbH     int
}

func NewDesktop(window *glfw.Window, rend *Renderer, assets *track.Assets) *Desktop {
	d := &Desktop{
		Input:   NewInput(window),
		window:  window,
		rend:    rend,
		assets:  assets,
		layers:  make(map[race.Layer]uint32),
		sprites: make(map[race.Sprite]uint32),
	}
	for _, l := range []race.Layer{race.LayerGrass, race.LayerTrack, race.LayerFinish, race.LayerBorder} {
		d.layers[l] = rend.UploadTexture(assets.Layer(l))
	}
	for _, s := range []race.Sprite{race.SpritePlayer, race.SpriteOpponent} {
		d.sprites[s] = rend.UploadTexture(assets.Sprite(s))
	}
	return d
}

// begin starts a frame on the first draw call after Present.
func (d *Desktop) begin() {
	if d.inFrame {
		return
	}
	d.fbW, d.fbH = d.window.GetFramebufferSize()
	d.cam = FitCamera(d.assets.Def.Width, d.assets.Def.Height, d.fbW, d.fbH)
	d.rend.BeginFrame(d.cam, d.fbW, d.fbH)
	d.inFrame = true
}

func (d *Desktop) DrawLayer(l race.Layer, x, y float64) {
	d.begin()
	img := d.assets.Layer(l)
	b := img.Bounds()
	d.rend.DrawTexture(d.layers[l], x, y, float64(b.Dx()), float64(b.Dy()), 0)
}

func (d *Desktop) DrawSprite(s race.Sprite, x, y, heading float64) {
	d.begin()
	img := d.assets.Sprite(s)
	b := img.Bounds()
	// Headings turn counter-clockwise on screen, where y grows downward.
	d.rend.DrawTexture(d.sprites[s], x, y, float64(b.Dx()), float64(b.Dy()), -heading*math.Pi/180)
}

// DrawText queues a HUD line at world pixel (x, y).
func (d *Desktop) DrawText(text string, x, y int) {
	d.begin()
	sx, sy := d.cam.WorldToScreen(float64(x), float64(y), d.fbW, d.fbH)
	d.rend.DrawString(text, int(sx), int(sy), float32(HUDScale*d.cam.Zoom), hudColor)
}

func (d *Desktop) DrawBanner(text string) {
	d.begin()
	// Text quads are batched, so flush the HUD before covering it.
	d.rend.FlushText()
	scale := float32(BannerScale * d.cam.Zoom)
	tw := TextWidth(text, scale)
	th := int(float32(FontCellH) * scale)
	bx, by, bw, bh, tx, ty := bannerRect(tw, th, d.fbW, d.fbH)
	d.rend.FillScreenRect(bx, by, bw, bh, bannerBack, 0.75)
	d.rend.DrawString(text, tx, ty, scale, bannerColor)
}

// LineHeight is the HUD line height in world pixels.
func (d *Desktop) LineHeight() int {
	return int(FontCellH * HUDScale)
}

func (d *Desktop) Present() {
	d.begin()
	d.rend.FlushText()
	d.window.SwapBuffers()
	d.inFrame = false
}
