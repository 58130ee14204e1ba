// Package tui draws the race in a terminal with tcell. Each character cell
// shows two world samples stacked with an upper half block, so the track
// keeps its aspect ratio in a normal terminal font.
package tui

import (
	"image"
	"image/color"
	"math"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"carrace/internal/race"
	"carrace/internal/track"
)

// HoldWindow is how long a direction stays held after its last key event.
// Terminals report presses and repeats but never releases.
const HoldWindow = 250 * time.Millisecond

const halfBlock = '▀'

var (
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	bannerStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow).Bold(true)
)

type textRun struct {
	col, row int
	text     string
}

// Terminal is a race.Frontend on a tcell screen.
type Terminal struct {
	screen tcell.Screen
	assets *track.Assets
	now    func() time.Time

	// Frame state, valid between the first draw call and Present.
	inFrame bool
	frame   *image.NRGBA
	k       float64 // world pixels per frame pixel
	ox, oy  float64 // letterbox offset in frame pixels
	texts   []textRun
	banner  string

	quit     bool
	anyKey   bool
	lastSeen map[race.Controls]time.Time
}

// New wraps an initialised screen.
func New(screen tcell.Screen, assets *track.Assets) *Terminal {
	return &Terminal{
		screen:   screen,
		assets:   assets,
		now:      time.Now,
		lastSeen: make(map[race.Controls]time.Time),
	}
}

func (t *Terminal) begin() {
	if t.inFrame {
		return
	}
	cols, rows := t.screen.Size()
	fw, fh := max(cols, 1), max(rows*2, 1)
	w, h := float64(t.assets.Def.Width), float64(t.assets.Def.Height)

	t.k = math.Max(w/float64(fw), h/float64(fh))
	t.ox = (float64(fw) - w/t.k) / 2
	t.oy = (float64(fh) - h/t.k) / 2
	t.frame = image.NewNRGBA(image.Rect(0, 0, fw, fh))
	t.texts = t.texts[:0]
	t.banner = ""
	t.screen.Clear()
	t.inFrame = true
}

// toFrame converts world pixels to frame pixels.
func (t *Terminal) toFrame(x, y float64) (float64, float64) {
	return x/t.k + t.ox, y/t.k + t.oy
}

func (t *Terminal) DrawLayer(l race.Layer, x, y float64) {
	t.begin()
	src := t.assets.Layer(l)
	b := src.Bounds()
	x0, y0 := t.toFrame(x, y)
	x1, y1 := t.toFrame(x+float64(b.Dx()), y+float64(b.Dy()))
	dr := image.Rect(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))
	draw.NearestNeighbor.Scale(t.frame, dr, src, b, draw.Over, nil)
}

func (t *Terminal) DrawSprite(s race.Sprite, x, y, heading float64) {
	t.begin()
	src := t.assets.Sprite(s)
	b := src.Bounds()
	draw.NearestNeighbor.Transform(t.frame, t.spriteTransform(x, y, b.Dx(), b.Dy(), heading), src, b, draw.Over, nil)
}

// spriteTransform maps sprite pixels to frame pixels: a turn of heading
// degrees counter-clockwise about the sprite centre, then the world to
// frame scaling.
func (t *Terminal) spriteTransform(x, y float64, w, h int, heading float64) f64.Aff3 {
	rad := -heading * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	hx, hy := float64(w)/2, float64(h)/2
	cx, cy := x+hx, y+hy
	return f64.Aff3{
		c / t.k, -s / t.k, (cx-(c*hx-s*hy))/t.k + t.ox,
		s / t.k, c / t.k, (cy-(s*hx+c*hy))/t.k + t.oy,
	}
}

func (t *Terminal) DrawText(text string, x, y int) {
	t.begin()
	fx, fy := t.toFrame(float64(x), float64(y))
	col, row := int(fx), int(fy)/2
	// HUD lines closer than one cell would overwrite each other.
	for t.rowUsed(row) {
		row++
	}
	t.texts = append(t.texts, textRun{col: col, row: row, text: text})
}

func (t *Terminal) rowUsed(row int) bool {
	for _, r := range t.texts {
		if r.row == row {
			return true
		}
	}
	return false
}

func (t *Terminal) DrawBanner(text string) {
	t.begin()
	t.banner = text
}

// LineHeight is one character row in world pixels.
func (t *Terminal) LineHeight() int {
	t.begin()
	return int(math.Ceil(2 * t.k))
}

func (t *Terminal) Present() {
	t.begin()
	cols, rows := t.screen.Size()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := t.frame.NRGBAAt(col, row*2)
			bottom := t.frame.NRGBAAt(col, row*2+1)
			if top.A == 0 && bottom.A == 0 {
				continue
			}
			st := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bottom))
			t.screen.SetContent(col, row, halfBlock, nil, st)
		}
	}
	for _, r := range t.texts {
		t.putString(r.col, r.row, r.text, hudStyle)
	}
	if t.banner != "" {
		text := " " + t.banner + " "
		t.putString((cols-utf8.RuneCountInString(text))/2, rows/2, text, bannerStyle)
	}
	t.screen.Show()
	t.inFrame = false
}

func (t *Terminal) putString(col, row int, text string, st tcell.Style) {
	for _, ch := range text {
		t.screen.SetContent(col, row, ch, nil, st)
		col++
	}
}

func cellColor(c color.NRGBA) tcell.Color {
	if c.A == 0 {
		return tcell.ColorBlack
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

var (
	dirLeft  = race.Controls{Left: true}
	dirRight = race.Controls{Right: true}
	dirUp    = race.Controls{Up: true}
	dirDown  = race.Controls{Down: true}
)

// opposite maps each direction to the one its press cancels.
var opposite = map[race.Controls]race.Controls{
	dirLeft:  dirRight,
	dirRight: dirLeft,
	dirUp:    dirDown,
	dirDown:  dirUp,
}

func direction(ev *tcell.EventKey) (race.Controls, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return dirLeft, true
	case tcell.KeyRight:
		return dirRight, true
	case tcell.KeyUp:
		return dirUp, true
	case tcell.KeyDown:
		return dirDown, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return dirLeft, true
		case 'd', 'D':
			return dirRight, true
		case 'w', 'W':
			return dirUp, true
		case 's', 'S':
			return dirDown, true
		}
	}
	return race.Controls{}, false
}

// handle folds one terminal event into the input state.
func (t *Terminal) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			t.quit = true
			return
		}
		t.anyKey = true
		if d, ok := direction(ev); ok {
			t.lastSeen[d] = t.now()
			delete(t.lastSeen, opposite[d])
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

// Poll drains pending terminal events.
func (t *Terminal) Poll() race.Events {
	for t.screen.HasPendingEvent() {
		t.handle(t.screen.PollEvent())
	}
	ev := race.Events{Quit: t.quit, AnyKey: t.anyKey}
	t.anyKey = false
	return ev
}

func (t *Terminal) Held() race.Controls {
	now := t.now()
	held := func(d race.Controls) bool {
		seen, ok := t.lastSeen[d]
		return ok && now.Sub(seen) < HoldWindow
	}
	return race.Controls{
		Left:  held(dirLeft),
		Right: held(dirRight),
		Up:    held(dirUp),
		Down:  held(dirDown),
	}
}
