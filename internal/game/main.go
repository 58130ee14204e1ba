//go:build !android

package game

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"

	"carrace/internal/config"
	"carrace/internal/race"
	"carrace/internal/track"
)

// RunDesktop opens a window sized to the track and runs rc in it until the
// window closes, Escape is pressed or ctx is cancelled. It must be called
// from the main goroutine.
func RunDesktop(ctx context.Context, cfg config.Config, assets *track.Assets, rc *race.Race, log zerolog.Logger) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	w := int(float64(assets.Def.Width) * cfg.Scale)
	h := int(float64(assets.Def.Height) * cfg.Scale)
	window, err := initWindow(w, h)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Info().
		Str("gl", gl.GoStr(gl.GetString(gl.VERSION))).
		Int("width", w).
		Int("height", h).
		Msg("window opened")

	// GL state.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.ClearColor(0, 0, 0, 1)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()
	if err := rend.InitFont(); err != nil {
		return fmt.Errorf("font: %w", err)
	}

	desk := NewDesktop(window, rend, assets)
	lim := race.NewTickLimiter(cfg.FPS)
	defer lim.Stop()

	return rc.Run(ctx, desk, race.SystemClock{}, lim)
}
