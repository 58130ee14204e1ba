package audio

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrace/internal/race"
)

func TestADSRShape(t *testing.T) {
	assert.Zero(t, adsr(0, 0.1, 0.2, 0.5, 0.2))
	assert.InDelta(t, 1.0, adsr(0.1, 0.1, 0.2, 0.5, 0.2), 1e-9)
	assert.InDelta(t, 0.5, adsr(0.5, 0.1, 0.2, 0.5, 0.2), 1e-9)
	assert.InDelta(t, 0.0, adsr(1.0, 0.1, 0.2, 0.5, 0.2), 1e-9)
}

func TestSoftSatIsBounded(t *testing.T) {
	for x := -8.0; x <= 8.0; x += 0.25 {
		y := softSat(x)
		assert.LessOrEqual(t, math.Abs(y), 1.0, "x=%v", x)
	}
	assert.Zero(t, softSat(0))
}

func TestPutStereoF32WritesBothChannels(t *testing.T) {
	buf := makeBuf(2)

	putStereoF32(buf, 1, 0.25)

	left := math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12]))
	right := math.Float32frombits(binary.LittleEndian.Uint32(buf[12:16]))
	assert.Equal(t, float32(0.25), left)
	assert.Equal(t, float32(0.25), right)
	assert.Equal(t, make([]byte, 8), buf[:8])
}

func TestGeneratedCuesAreFiniteStereoFloat(t *testing.T) {
	gens := map[Cue]func() []byte{
		CueStart:   genStart,
		CueBounce:  genBounce,
		CueLevelUp: genLevelUp,
		CueLose:    genLose,
		CueWin:     genWin,
	}
	for cue, gen := range gens {
		t.Run(cue.String(), func(t *testing.T) {
			buf := gen()
			require.NotEmpty(t, buf)
			require.Zero(t, len(buf)%8)

			for i := 0; i < len(buf); i += 4 {
				v := math.Float32frombits(binary.LittleEndian.Uint32(buf[i : i+4]))
				if math.IsNaN(float64(v)) || math.Abs(float64(v)) > 1 {
					t.Fatalf("sample %d out of range: %v", i/4, v)
				}
			}
		})
	}
}

func TestSoundReaderDrains(t *testing.T) {
	r := &soundReader{data: []byte{1, 2, 3}}
	p := make([]byte, 2)

	n, err := r.Read(p)
	assert.Equal(t, 2, n)
	assert.NoError(t, err)

	n, _ = r.Read(p)
	assert.Equal(t, 1, n)

	_, err = r.Read(p)
	assert.Error(t, err)
}

func TestMutedSystemIsSilent(t *testing.T) {
	s, err := New(true, zerolog.Nop())
	require.NoError(t, err)

	assert.True(t, s.Muted())
	assert.False(t, s.Play(CueWin))
	assert.Zero(t, s.Playing())
}

func TestCueForEvents(t *testing.T) {
	tests := []struct {
		event race.EventType
		cue   Cue
		ok    bool
	}{
		{race.EventLevelStarted, CueStart, true},
		{race.EventBounced, CueBounce, true},
		{race.EventLevelAdvanced, CueLevelUp, true},
		{race.EventLost, CueLose, true},
		{race.EventWon, CueWin, true},
		{race.EventWaypointReached, 0, false},
		{race.EventReset, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.event.String(), func(t *testing.T) {
			cue, ok := cueFor(tt.event)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.cue, cue)
		})
	}
}

func TestAttachThinsBounces(t *testing.T) {
	s, err := New(true, zerolog.Nop())
	require.NoError(t, err)
	bus := race.NewEventBus()
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now := t0
	s.Attach(bus, func() time.Time { return now })

	bus.Emit(race.Event{Type: race.EventBounced})
	assert.Equal(t, t0, s.lastBounce)

	now = t0.Add(50 * time.Millisecond)
	bus.Emit(race.Event{Type: race.EventBounced})
	assert.Equal(t, t0, s.lastBounce)

	now = t0.Add(200 * time.Millisecond)
	bus.Emit(race.Event{Type: race.EventBounced})
	assert.Equal(t, now, s.lastBounce)
}
