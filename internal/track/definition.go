package track

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"carrace/internal/race"
)

// ErrInvalidTrack is returned when a track file fails schema validation or
// describes geometry that cannot be raced.
var ErrInvalidTrack = errors.New("invalid track")

const (
	defaultLevelStep = 0.2
	schemaURL        = "track.schema.json"
)

//go:embed default_track.json
var defaultTrackJSON []byte

//go:embed track.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// Waypoint is a point in world pixels as stored in track files.
type Waypoint struct {
	X float64 `json:"x" csv:"x"`
	Y float64 `json:"y" csv:"y"`
}

func (w Waypoint) Point() race.Point { return race.Pt(w.X, w.Y) }

// FinishLine places the checkered finish block.
type FinishLine struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
}

// CarSpec is one car's start pose, handling and sprite.
type CarSpec struct {
	Start Waypoint `json:"start"`
	race.Params
	Width  int `json:"width"`
	Height int `json:"height"`
	Color  RGB `json:"color"`
}

// Definition is a parsed track file.
type Definition struct {
	Name          string  `json:"name"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Seed          uint64  `json:"seed,omitempty"`
	RoadHalfWidth float64 `json:"roadHalfWidth"`
	BorderWidth   float64 `json:"borderWidth"`

	// Centreline is the closed polyline the road is drawn along. Empty
	// means the opponent path doubles as the centreline.
	Centreline []Waypoint `json:"centreline,omitempty"`

	Finish   FinishLine `json:"finish"`
	Player   CarSpec    `json:"player"`
	Opponent CarSpec    `json:"opponent"`

	Path    []Waypoint `json:"path,omitempty"`
	PathCSV string     `json:"pathCsv,omitempty"`

	Levels    int     `json:"levels,omitempty"`
	LevelStep float64 `json:"levelStep,omitempty"`
}

// Points returns the opponent path in race coordinates.
func (d *Definition) Points() []race.Point {
	pts := make([]race.Point, len(d.Path))
	for i, w := range d.Path {
		pts[i] = w.Point()
	}
	return pts
}

// Road returns the closed centreline the road follows.
func (d *Definition) Road() []Waypoint {
	if len(d.Centreline) > 0 {
		return d.Centreline
	}
	return d.Path
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft7

		if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

// Default returns the built-in track.
func Default() (*Definition, error) {
	def, err := Parse(defaultTrackJSON)
	if err != nil {
		return nil, fmt.Errorf("default track: %w", err)
	}
	if err := def.validate(); err != nil {
		return nil, fmt.Errorf("default track: %w", err)
	}
	return def, nil
}

// Parse validates data against the track schema and decodes it. A pathCsv
// reference is left unresolved; LoadFile resolves it.
func Parse(data []byte) (*Definition, error) {
	s, err := compiledSchema()
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTrack, err)
	}
	if err := s.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTrack, err)
	}

	def := &Definition{}
	if err := json.Unmarshal(data, def); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTrack, err)
	}
	if def.Levels == 0 {
		def.Levels = race.DefaultLevelCount
	}
	if def.LevelStep == 0 {
		def.LevelStep = defaultLevelStep
	}
	if def.Player.Color == (RGB{}) {
		def.Player.Color = Palette.PlayerCar
	}
	if def.Opponent.Color == (RGB{}) {
		def.Opponent.Color = Palette.OpponentCar
	}
	return def, nil
}

// LoadFile reads a track file, resolving a pathCsv reference relative to
// the file's directory.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read track: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if len(def.Path) == 0 && def.PathCSV != "" {
		csvPath := def.PathCSV
		if !filepath.IsAbs(csvPath) {
			csvPath = filepath.Join(filepath.Dir(path), csvPath)
		}
		f, err := os.Open(csvPath)
		if err != nil {
			return nil, fmt.Errorf("open path csv: %w", err)
		}
		defer f.Close()

		def.Path, err = ReadPathCSV(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", csvPath, err)
		}
	}
	if err := def.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// validate checks what the schema cannot express.
func (d *Definition) validate() error {
	if len(d.Path) == 0 {
		return fmt.Errorf("%w: empty opponent path", ErrInvalidTrack)
	}
	if len(d.Road()) < 2 {
		return fmt.Errorf("%w: centreline needs at least two points", ErrInvalidTrack)
	}
	f := d.Finish
	if f.X < 0 || f.Y < 0 || int(f.X)+f.Width > d.Width || int(f.Y)+f.Height > d.Height {
		return fmt.Errorf("%w: finish line outside the %dx%d world", ErrInvalidTrack, d.Width, d.Height)
	}
	return nil
}
