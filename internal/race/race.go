package race

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"carrace/internal/mask"
)

const (
	DefaultFPS          = 60
	DefaultAnnounceTime = 5 * time.Second
)

// Banner texts.
const (
	LostBanner = "Oh, Better luck next time!"
	WonBanner  = "Yay You Won!"
)

// HUD line offsets from the bottom edge, top line first.
var hudOffsets = [3]int{73, 35, 7}

// Car describes one vehicle's setup on the course.
type Car struct {
	Params Params
	Start  Point
	Mask   *mask.Mask // unrotated sprite silhouette
}

// Course is the immutable track data the race runs on.
type Course struct {
	Width, Height int

	Border   *mask.Mask
	Finish   *mask.Mask
	FinishAt Point

	Player   Car
	Opponent Car
	Path     []Point

	LevelCount int
	LevelStep  float64
	Announce   time.Duration
}

// Race owns every entity of a run and advances them one tick at a time.
type Race struct {
	Course   Course
	Player   *Vehicle
	Opponent *Opponent
	State    *State
	Phase    Phase
	Events   *EventBus

	banner      string
	bannerUntil time.Time

	log zerolog.Logger
}

func New(c Course, log zerolog.Logger) *Race {
	if c.Announce <= 0 {
		c.Announce = DefaultAnnounceTime
	}
	pw, ph := maskSize(c.Player.Mask)
	ow, oh := maskSize(c.Opponent.Mask)
	r := &Race{
		Course:   c,
		Player:   NewVehicle(KindPlayer, c.Player.Params, c.Player.Start, pw, ph),
		Opponent: NewOpponent(c.Opponent.Params, c.Opponent.Start, ow, oh, c.Path, c.LevelStep),
		State:    NewState(c.LevelCount),
		Phase:    PhaseAwaitingStart,
		Events:   NewEventBus(),
		log:      log,
	}
	return r
}

func maskSize(m *mask.Mask) (int, int) {
	if m == nil {
		return 0, 0
	}
	return m.Width(), m.Height()
}

// Banner returns the text shown over the track in the current phase, if any.
func (r *Race) Banner() string {
	switch r.Phase {
	case PhaseAwaitingStart:
		return fmt.Sprintf("Press any key to start level %d!", r.State.Level)
	case PhaseLost, PhaseFinished:
		return r.banner
	}
	return ""
}

// Run drives the loop until the input asks to quit or ctx is cancelled.
// Waiting for a key and the banners are phases of the loop, so a quit is
// seen on the very next tick whatever the phase.
func (r *Race) Run(ctx context.Context, fe Frontend, clock Clock, lim Limiter) error {
	r.log.Info().Int("level", r.State.Level).Msg("race loop started")
	for {
		if err := lim.Wait(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				r.log.Info().Msg("race loop cancelled")
				return nil
			}
			return fmt.Errorf("frame limiter: %w", err)
		}
		ev := fe.Poll()
		if ev.Quit {
			r.log.Info().Stringer("phase", r.Phase).Int("level", r.State.Level).Msg("quit requested")
			return nil
		}
		now := clock.Now()
		r.Step(ev, fe.Held(), now)
		r.Draw(fe, now)
	}
}

// Step advances the race by one tick.
func (r *Race) Step(ev Events, held Controls, now time.Time) {
	switch r.Phase {
	case PhaseAwaitingStart:
		if ev.AnyKey {
			r.startLevel(now)
		}
	case PhaseRacing:
		r.movePlayer(held)
		r.moveOpponent()
		r.handleCollisions(now)
	case PhaseLost, PhaseFinished:
		if !now.Before(r.bannerUntil) {
			r.Reset()
		}
	}
}

func (r *Race) startLevel(now time.Time) {
	r.State.Start(now)
	r.Phase = PhaseRacing
	r.log.Info().Int("level", r.State.Level).
		Float64("opponent_velocity", r.Opponent.Velocity).
		Msg("level started")
	r.Events.Emit(Event{Type: EventLevelStarted, Level: r.State.Level})
}

func (r *Race) movePlayer(in Controls) {
	p := r.Player
	if in.Left {
		p.Rotate(true, false)
	}
	if in.Right {
		p.Rotate(false, true)
	}

	moved := false
	if in.Up {
		moved = true
		p.AccelerateForward()
	}
	if in.Down {
		moved = true
		p.AccelerateReverse()
	}
	if !moved {
		Decelerate(p)
	}
}

func (r *Race) moveOpponent() {
	o := r.Opponent
	before := o.Waypoint
	FollowPath(o)
	if o.Waypoint != before {
		r.log.Trace().Int("waypoint", before).Int("of", len(o.Path)).Msg("opponent reached waypoint")
		r.Events.Emit(Event{Type: EventWaypointReached, Level: r.State.Level, X: o.X, Y: o.Y, Data: before})
	}
}

// handleCollisions resolves player-vs-border, opponent-vs-finish and
// player-vs-finish in that order.
func (r *Race) handleCollisions(now time.Time) {
	c := &r.Course
	p := r.Player

	if _, hit := mask.Collide(c.Border, 0, 0, c.Player.Mask, p.X, p.Y); hit {
		r.bounce("border")
	}

	o := r.Opponent
	if _, hit := mask.Collide(c.Finish, c.FinishAt.X, c.FinishAt.Y, c.Opponent.Mask, o.X, o.Y); hit {
		r.log.Info().Int("level", r.State.Level).Int("elapsed_s", r.State.Elapsed(now)).Msg("opponent won the level")
		r.announce(PhaseLost, LostBanner, now)
		r.Events.Emit(Event{Type: EventLost, Level: r.State.Level, X: o.X, Y: o.Y})
		return
	}

	if poi, hit := mask.Collide(c.Finish, c.FinishAt.X, c.FinishAt.Y, c.Player.Mask, p.X, p.Y); hit {
		// Touching the top row means the car came at the line from the
		// wrong side; only a hit lower down counts as crossing it.
		if poi.Y == 0 {
			r.bounce("finish")
			return
		}
		r.advance(now)
	}
}

func (r *Race) bounce(what string) {
	p := r.Player
	r.log.Debug().Str("against", what).Float64("velocity", p.Velocity).Msg("player bounced")
	Bounce(p)
	r.Events.Emit(Event{Type: EventBounced, Level: r.State.Level, X: p.X, Y: p.Y})
}

// advance handles a clean crossing of the finish line by the player.
func (r *Race) advance(now time.Time) {
	elapsed := r.State.Elapsed(now)
	r.State.Next()
	r.Player.Reset()
	Rearm(r.Opponent, r.State.Level)

	if r.State.Finished() {
		r.log.Info().Int("elapsed_s", elapsed).Msg("all levels won")
		r.announce(PhaseFinished, WonBanner, now)
		r.Events.Emit(Event{Type: EventWon, Level: r.State.Level - 1})
		return
	}

	cfg := GetLevelConfig(r.State.Level, r.State.LevelCount, r.Opponent)
	r.log.Info().Int("level", cfg.Level).Int("elapsed_s", elapsed).
		Float64("opponent_velocity", cfg.OpponentVelocity).
		Bool("last", cfg.Last).
		Msg("level advanced")
	r.Phase = PhaseAwaitingStart
	r.Events.Emit(Event{Type: EventLevelAdvanced, Level: cfg.Level})
}

func (r *Race) announce(p Phase, text string, now time.Time) {
	r.Phase = p
	r.banner = text
	r.bannerUntil = now.Add(r.Course.Announce)
}

// Reset returns to level 1 with both cars on the start line.
func (r *Race) Reset() {
	r.State.Reset()
	r.Player.Reset()
	Rearm(r.Opponent, 1)
	r.Phase = PhaseAwaitingStart
	r.banner = ""
	r.bannerUntil = time.Time{}
	r.log.Info().Msg("race reset")
	r.Events.Emit(Event{Type: EventReset, Level: 1})
}

// Draw renders the current frame: track layers, HUD, cars, banner.
func (r *Race) Draw(cv Canvas, now time.Time) {
	c := &r.Course
	cv.DrawLayer(LayerGrass, 0, 0)
	cv.DrawLayer(LayerTrack, 0, 0)
	cv.DrawLayer(LayerFinish, c.FinishAt.X, c.FinishAt.Y)
	cv.DrawLayer(LayerBorder, 0, 0)

	lh := cv.LineHeight()
	lines := [3]string{
		fmt.Sprintf("level : %d", r.State.Level),
		fmt.Sprintf("Time : %ds", r.State.Elapsed(now)),
		fmt.Sprintf("Vel : %.1fpx/s", r.Player.Velocity),
	}
	for i, line := range lines {
		cv.DrawText(line, 10, c.Height-lh-hudOffsets[i])
	}

	cv.DrawSprite(SpritePlayer, r.Player.X, r.Player.Y, r.Player.Heading)
	cv.DrawSprite(SpriteOpponent, r.Opponent.X, r.Opponent.Y, r.Opponent.Heading)

	if b := r.Banner(); b != "" {
		cv.DrawBanner(b)
	}
	cv.Present()
}
