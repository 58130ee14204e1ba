package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"carrace/internal/config"
	"carrace/internal/race"
	"carrace/internal/track"
)

// Run takes over the terminal and runs rc until Escape, Ctrl-C or ctx ends.
func Run(ctx context.Context, cfg config.Config, assets *track.Assets, rc *race.Race, log zerolog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	cols, rows := screen.Size()
	log.Info().Int("cols", cols).Int("rows", rows).Msg("terminal opened")

	lim := race.NewTickLimiter(cfg.FPS)
	defer lim.Stop()
	return rc.Run(ctx, New(screen, assets), race.SystemClock{}, lim)
}
