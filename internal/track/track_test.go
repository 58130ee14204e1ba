package track

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrace/internal/race"
)

var (
	defaultOnce   sync.Once
	defaultAssets *Assets
	defaultErr    error
)

func loadDefault(t *testing.T) *Assets {
	t.Helper()
	defaultOnce.Do(func() {
		def, err := Default()
		if err != nil {
			defaultErr = err
			return
		}
		defaultAssets, defaultErr = Build(def)
	})
	require.NoError(t, defaultErr)
	return defaultAssets
}

const smallTrack = `{
  "name": "Oval",
  "width": 200,
  "height": 120,
  "roadHalfWidth": 20,
  "borderWidth": 3,
  "centreline": [{"x": 40, "y": 40}, {"x": 160, "y": 40}, {"x": 160, "y": 80}, {"x": 40, "y": 80}],
  "finish": {"x": 90, "y": 62, "width": 30, "height": 8},
  "player": {"start": {"x": 50, "y": 30}, "maxVelocity": 4, "rotationRate": 4, "acceleration": 0.2, "width": 8, "height": 14},
  "opponent": {"start": {"x": 64, "y": 30}, "maxVelocity": 2, "rotationRate": 3, "acceleration": 0.1, "width": 8, "height": 14},
  "pathCsv": "oval.csv"
}`

func TestDefaultTrack(t *testing.T) {
	def, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Default", def.Name)
	assert.Len(t, def.Path, 21)
	assert.Equal(t, race.Pt(179, 127), def.Points()[0])
	assert.Equal(t, race.Pt(169, 261), def.Points()[20])
	assert.Equal(t, 10, def.Levels)
	assert.Equal(t, 0.2, def.LevelStep)
	assert.Equal(t, race.Params{MaxVelocity: 5, RotationRate: 5, Acceleration: 0.1}, def.Player.Params)
	assert.Equal(t, race.Params{MaxVelocity: 2, RotationRate: 3, Acceleration: 0.1}, def.Opponent.Params)
	assert.Equal(t, Waypoint{X: 180, Y: 200}, def.Player.Start)
	assert.Equal(t, FinishLine{X: 130, Y: 250, Width: 80, Height: 16}, def.Finish)
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"missing player", `{"name":"x","width":100,"height":100,"roadHalfWidth":10,"borderWidth":2,
			"finish":{"x":0,"y":0,"width":10,"height":4},"opponent":{},"path":[{"x":1,"y":1}]}`},
		{"no path", strings.Replace(smallTrack, `"pathCsv": "oval.csv"`, `"levels": 3`, 1)},
		{"negative speed", strings.Replace(smallTrack, `"maxVelocity": 4`, `"maxVelocity": -4`, 1)},
		{"tiny world", strings.Replace(smallTrack, `"height": 120`, `"height": 12`, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidTrack)
		})
	}
}

func TestLoadFileResolvesPathCSV(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "oval.json"), []byte(smallTrack), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "oval.csv"), []byte("x,y\n160,40\n160,80\n40,80\n40,40\n"), 0o644))

	def, err := LoadFile(filepath.Join(dir, "oval.json"))
	require.NoError(t, err)

	assert.Equal(t, []Waypoint{{160, 40}, {160, 80}, {40, 80}, {40, 40}}, def.Path)
	assert.Len(t, def.Road(), 4)
	assert.Equal(t, race.DefaultLevelCount, def.Levels)
	assert.Equal(t, Palette.PlayerCar, def.Player.Color)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "oval.json"), []byte(smallTrack), 0o644))
	_, err = LoadFile(filepath.Join(dir, "oval.json"))
	assert.ErrorIs(t, err, os.ErrNotExist, "csv next to the track is missing")

	outside := strings.Replace(smallTrack, `"x": 90, "y": 62`, `"x": 190, "y": 62`, 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "oval.json"), []byte(outside), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "oval.csv"), []byte("x,y\n1,1\n"), 0o644))
	_, err = LoadFile(filepath.Join(dir, "oval.json"))
	assert.ErrorIs(t, err, ErrInvalidTrack)
}

func TestPathCSVRoundTrip(t *testing.T) {
	def, err := Default()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePathCSV(&buf, def.Path))
	assert.True(t, strings.HasPrefix(buf.String(), "x,y\n179,127\n"))

	got, err := ReadPathCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, def.Path, got)
}

func TestReadPathCSVRejectsEmpty(t *testing.T) {
	_, err := ReadPathCSV(strings.NewReader("x,y\n"))
	assert.ErrorIs(t, err, ErrInvalidTrack)
}

func TestBuildDefaultTrack(t *testing.T) {
	a := loadDefault(t)

	assert.Equal(t, 820, a.Grass.Bounds().Dx())
	assert.Equal(t, 19, a.PlayerMask.Width())
	assert.Equal(t, 38, a.PlayerMask.Height())

	// The finish block is solid, so its top row is hit first from above.
	assert.Equal(t, 80*16, a.FinishMask.Count())

	// Rounded corners are cut from the car silhouette.
	assert.False(t, a.PlayerMask.Get(0, 0))
	assert.True(t, a.PlayerMask.Get(9, 19))
	assert.Less(t, a.PlayerMask.Count(), 19*38)

	for i, p := range a.Def.Points() {
		assert.True(t, a.OnRoad(p), "waypoint %d", i)
		assert.False(t, a.BorderMask.Get(int(p.X), int(p.Y)), "waypoint %d", i)
	}
	assert.False(t, a.OnRoad(race.Pt(5, 5)))
	assert.True(t, a.BorderMask.Count() > 0)
}

func TestCourseFromAssets(t *testing.T) {
	a := loadDefault(t)

	c := a.Course(3 * time.Second)

	assert.Equal(t, race.Pt(130, 250), c.FinishAt)
	assert.Equal(t, race.Pt(150, 200), c.Opponent.Start)
	assert.Same(t, a.BorderMask, c.Border)
	assert.Len(t, c.Path, 21)
	assert.Equal(t, 3*time.Second, c.Announce)
	assert.Same(t, a.Finish, a.Layer(race.LayerFinish))
	assert.Same(t, a.OpponentCar, a.Sprite(race.SpriteOpponent))
}

func TestCheckDefaultTrackIsClean(t *testing.T) {
	issues := Check(loadDefault(t))

	assert.Empty(t, issues)
	assert.False(t, Failed(issues))
}

func TestCheckReportsBadData(t *testing.T) {
	def, err := Default()
	require.NoError(t, err)
	def.Centreline = def.Path
	def.Path = append([]Waypoint{{X: 5, Y: 5}, {X: 900, Y: 5}}, def.Path...)
	def.Player.Start = Waypoint{X: 130, Y: 240}
	a, err := Build(def)
	require.NoError(t, err)

	issues := Check(a)

	require.True(t, Failed(issues))
	var msgs []string
	for _, is := range issues {
		msgs = append(msgs, is.Severity.String()+" "+is.Message)
	}
	joined := strings.Join(msgs, "\n")
	assert.Contains(t, joined, "WARN waypoint 0 (5,5)")
	assert.Contains(t, joined, "FAIL waypoint 1 (900,5) is outside the world")
	assert.Contains(t, joined, "player start (130,240) overlaps the finish line")
}
