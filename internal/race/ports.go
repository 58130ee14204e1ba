package race

import (
	"context"
	"time"
)

// Layer is a static track image drawn at a fixed position.
type Layer int

const (
	LayerGrass Layer = iota
	LayerTrack
	LayerFinish
	LayerBorder
)

// Sprite is a car image drawn rotated about its centre.
type Sprite int

const (
	SpritePlayer Sprite = iota
	SpriteOpponent
)

// Canvas is the drawing surface for one frame. Coordinates are world pixels.
type Canvas interface {
	DrawLayer(l Layer, x, y float64)
	// DrawSprite draws s with its unrotated top-left at (x, y), turned by
	// heading degrees counter-clockwise about the sprite centre.
	DrawSprite(s Sprite, x, y, heading float64)
	DrawText(text string, x, y int)
	// DrawBanner draws text centred on the view.
	DrawBanner(text string)
	LineHeight() int
	Present()
}

// Controls are the direction keys held this tick.
type Controls struct {
	Left, Right, Up, Down bool
}

// Events are the discrete notifications gathered since the last poll.
type Events struct {
	Quit   bool
	AnyKey bool
}

type Input interface {
	Poll() Events
	Held() Controls
}

// Frontend is a backend that both draws and reads input.
type Frontend interface {
	Canvas
	Input
}

type Clock interface {
	Now() time.Time
}

// Limiter paces the loop; Wait blocks until the next tick is due.
type Limiter interface {
	Wait(ctx context.Context) error
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// TickLimiter paces the loop with a ticker at a fixed rate.
type TickLimiter struct {
	t *time.Ticker
}

func NewTickLimiter(fps int) *TickLimiter {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &TickLimiter{t: time.NewTicker(time.Second / time.Duration(fps))}
}

func (l *TickLimiter) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.t.C:
		return nil
	}
}

func (l *TickLimiter) Stop() { l.t.Stop() }
