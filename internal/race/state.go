package race

import (
	"math"
	"time"
)

// Phase is where the race loop is within a level.
type Phase int

const (
	PhaseAwaitingStart Phase = iota // waiting for any key before the level
	PhaseRacing                     // timer running
	PhaseLost                       // opponent reached the line, banner showing
	PhaseFinished                   // last level won, banner showing
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingStart:
		return "awaiting-start"
	case PhaseRacing:
		return "racing"
	case PhaseLost:
		return "lost"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// Announcing reports whether the phase is a timed banner that ends in a full reset.
func (p Phase) Announcing() bool {
	return p == PhaseLost || p == PhaseFinished
}

// State tracks level progress for the whole run.
type State struct {
	Level      int
	LevelCount int
	Started    bool
	LevelStart time.Time
}

func NewState(levelCount int) *State {
	if levelCount <= 0 {
		levelCount = DefaultLevelCount
	}
	return &State{Level: 1, LevelCount: levelCount}
}

// Start begins the current level's timer.
func (s *State) Start(now time.Time) {
	s.Started = true
	s.LevelStart = now
}

// Next moves to the following level; its timer has not started yet.
func (s *State) Next() {
	s.Level++
	s.Started = false
}

func (s *State) Reset() {
	s.Level = 1
	s.Started = false
	s.LevelStart = time.Time{}
}

// Finished reports whether every level has been won.
func (s *State) Finished() bool {
	return s.Level > s.LevelCount
}

// Elapsed is the level time in whole seconds, 0 before the level starts.
// Halves round to even.
func (s *State) Elapsed(now time.Time) int {
	if !s.Started {
		return 0
	}
	return int(math.RoundToEven(now.Sub(s.LevelStart).Seconds()))
}
