package audio

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"github.com/rs/zerolog"

	"carrace/internal/race"
)

// Cue identifies a sound effect.
type Cue int

const (
	CueStart Cue = iota
	CueBounce
	CueLevelUp
	CueLose
	CueWin
)

func (c Cue) String() string {
	switch c {
	case CueStart:
		return "start"
	case CueBounce:
		return "bounce"
	case CueLevelUp:
		return "level-up"
	case CueLose:
		return "lose"
	case CueWin:
		return "win"
	}
	return "unknown"
}

const (
	sfxVolume = 0.58

	// Pressing into the kerb bounces every tick; one thud per window.
	bounceInterval = 150 * time.Millisecond
)

// System plays procedural cues through oto. A muted System is a no-op.
type System struct {
	ctx   *oto.Context
	ready chan struct{}
	cues  map[Cue][]byte
	log   zerolog.Logger

	lastBounce time.Time
	playing    int32
}

// New opens the audio device unless mute is set.
func New(mute bool, log zerolog.Logger) (*System, error) {
	s := &System{log: log}
	if mute {
		return s, nil
	}
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return s, fmt.Errorf("audio init: %w", err)
	}
	s.ctx = ctx
	s.ready = ready
	s.cues = map[Cue][]byte{
		CueStart:   genStart(),
		CueBounce:  genBounce(),
		CueLevelUp: genLevelUp(),
		CueLose:    genLose(),
		CueWin:     genWin(),
	}
	return s, nil
}

func (s *System) Muted() bool { return s == nil || s.ctx == nil }

// Playing returns the number of cues currently sounding.
func (s *System) Playing() int { return int(atomic.LoadInt32(&s.playing)) }

// Play starts c without blocking. It reports whether the cue was queued.
func (s *System) Play(c Cue) bool {
	if s.Muted() {
		return false
	}
	select {
	case <-s.ready:
	default:
		return false
	}
	samples := s.cues[c]
	if len(samples) == 0 {
		return false
	}
	atomic.AddInt32(&s.playing, 1)
	go func() {
		defer atomic.AddInt32(&s.playing, -1)
		player := s.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			s.log.Debug().Err(err).Stringer("cue", c).Msg("close player")
		}
	}()
	return true
}

// cueFor maps race events to sound cues.
func cueFor(t race.EventType) (Cue, bool) {
	switch t {
	case race.EventLevelStarted:
		return CueStart, true
	case race.EventBounced:
		return CueBounce, true
	case race.EventLevelAdvanced:
		return CueLevelUp, true
	case race.EventLost:
		return CueLose, true
	case race.EventWon:
		return CueWin, true
	}
	return 0, false
}

// Attach subscribes the system to race events. now is the clock used to
// thin out repeated bounces.
func (s *System) Attach(bus *race.EventBus, now func() time.Time) {
	bus.SubscribeAll(func(e race.Event) {
		c, ok := cueFor(e.Type)
		if !ok {
			return
		}
		if c == CueBounce {
			t := now()
			if t.Sub(s.lastBounce) < bounceInterval {
				return
			}
			s.lastBounce = t
		}
		if s.Play(c) {
			s.log.Trace().Stringer("cue", c).Int("level", e.Level).Msg("cue")
		}
	})
}
