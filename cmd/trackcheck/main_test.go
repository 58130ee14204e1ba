package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"-no-color"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestBuiltInTrackPasses(t *testing.T) {
	code, out, errOut := runCLI()

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "track Default (820x820, 21 waypoints, 10 levels)")
	assert.Contains(t, out, "PASS built-in track")
	assert.Empty(t, errOut)
}

func TestHelp(t *testing.T) {
	code, out, _ := runCLI("-help")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Usage:")
}

func TestUnknownFlag(t *testing.T) {
	code, _, errOut := runCLI("-bogus")

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Usage:")
}

func TestExportCSVToStdout(t *testing.T) {
	code, out, _ := runCLI("-export-csv", "-")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "x,y\n179,127\n")
}

func TestImportCSVCanFailTheTrack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "path.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y\n900,10\n"), 0o644))

	code, out, _ := runCLI("-import-csv", path)

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "FAIL waypoint 0 (900,10) is outside the world")
	assert.Contains(t, out, "FAIL built-in track")
}

func TestMissingTrackFile(t *testing.T) {
	code, _, errOut := runCLI(filepath.Join(t.TempDir(), "nope.json"))

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "FAIL")
}

func TestPreviewImage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "track.png")

	code, _, _ := runCLI("-png", out)
	require.Equal(t, 0, code)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 820, img.Bounds().Dx())
}
