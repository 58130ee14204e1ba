package track

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// ReadPathCSV decodes an opponent path from CSV with an x,y header.
func ReadPathCSV(r io.Reader) ([]Waypoint, error) {
	path := []Waypoint{}
	if err := gocsv.Unmarshal(r, &path); err != nil {
		return nil, fmt.Errorf("parsing path CSV: %w", err)
	}
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: path CSV has no waypoints", ErrInvalidTrack)
	}
	return path, nil
}

// WritePathCSV encodes path as CSV with an x,y header.
func WritePathCSV(w io.Writer, path []Waypoint) error {
	if err := gocsv.Marshal(&path, w); err != nil {
		return fmt.Errorf("writing path CSV: %w", err)
	}
	return nil
}
