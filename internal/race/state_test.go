package race

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStateElapsed(t *testing.T) {
	s := NewState(0)
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, s.Level)
	assert.Equal(t, DefaultLevelCount, s.LevelCount)
	assert.False(t, s.Started)
	assert.Zero(t, s.Elapsed(t0.Add(time.Hour)))

	s.Start(t0)
	assert.True(t, s.Started)
	assert.Zero(t, s.Elapsed(t0))

	prev := 0
	for ms := 0; ms <= 10000; ms += 250 {
		got := s.Elapsed(t0.Add(time.Duration(ms) * time.Millisecond))
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
	assert.Equal(t, 10, prev)
	assert.Equal(t, 2, s.Elapsed(t0.Add(2500*time.Millisecond)))
	assert.Equal(t, 4, s.Elapsed(t0.Add(3500*time.Millisecond)))
}

func TestStateNextAndFinished(t *testing.T) {
	s := NewState(2)
	s.Start(time.Now())

	s.Next()
	assert.Equal(t, 2, s.Level)
	assert.False(t, s.Started)
	assert.False(t, s.Finished())

	s.Next()
	assert.True(t, s.Finished())
}

func TestStateResetFromAnyState(t *testing.T) {
	tests := []struct {
		name    string
		level   int
		started bool
	}{
		{"fresh", 1, false},
		{"mid race", 6, true},
		{"past the end", 11, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(DefaultLevelCount)
			s.Level = tt.level
			if tt.started {
				s.Start(time.Now())
			}

			s.Reset()
			s.Reset()

			assert.Equal(t, 1, s.Level)
			assert.False(t, s.Started)
			assert.Zero(t, s.Elapsed(time.Now()))
		})
	}
}

func TestPhaseAnnouncing(t *testing.T) {
	assert.False(t, PhaseAwaitingStart.Announcing())
	assert.False(t, PhaseRacing.Announcing())
	assert.True(t, PhaseLost.Announcing())
	assert.True(t, PhaseFinished.Announcing())
	assert.Equal(t, "racing", PhaseRacing.String())
}
