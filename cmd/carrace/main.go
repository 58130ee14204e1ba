// Command carrace races a player car against a computer opponent around a
// track, level after level, until the player wins or quits.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"carrace/internal/audio"
	"carrace/internal/config"
	"carrace/internal/game"
	"carrace/internal/race"
	"carrace/internal/track"
	"carrace/internal/tui"
)

func init() {
	// GLFW and OpenGL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "carrace: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("carrace", pflag.ContinueOnError)
	configPath := fs.String("config", "", "config file (default: ./carrace.{json,yaml,toml} if present)")
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := config.BindFlags(fs); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logOut, closeLog, err := logWriter(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	log := config.NewLogger(cfg.LogLevel, logOut).With().Str("session", uuid.NewString()).Logger()

	assets, err := loadTrack(cfg.TrackFile, log)
	if err != nil {
		return err
	}

	rc := race.New(assets.Course(cfg.Announce()), log)

	snd, err := audio.New(cfg.Mute, log)
	if err != nil {
		log.Warn().Err(err).Msg("continuing without sound")
	}
	snd.Attach(rc.Events, time.Now)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("renderer", cfg.Renderer).
		Str("track", assets.Def.Name).
		Int("levels", assets.Def.Levels).
		Bool("muted", snd.Muted()).
		Msg("starting race")

	switch cfg.Renderer {
	case config.RendererTUI:
		err = tui.Run(ctx, cfg, assets, rc, log)
	default:
		err = game.RunDesktop(ctx, cfg, assets, rc, log)
	}
	if err != nil {
		return err
	}
	log.Info().Int("level", rc.State.Level).Stringer("phase", rc.Phase).Msg("race over")
	return nil
}

// logWriter opens the configured log file. The terminal frontend owns the
// screen, so without a log file its logs are dropped.
func logWriter(cfg config.Config) (io.Writer, func(), error) {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return f, func() { f.Close() }, nil
	}
	if cfg.Renderer == config.RendererTUI {
		return io.Discard, func() {}, nil
	}
	return os.Stderr, func() {}, nil
}

func loadTrack(path string, log zerolog.Logger) (*track.Assets, error) {
	var (
		def *track.Definition
		err error
	)
	if path == "" {
		def, err = track.Default()
	} else {
		def, err = track.LoadFile(path)
	}
	if err != nil {
		return nil, err
	}

	start := time.Now()
	assets, err := track.Build(def)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("track", def.Name).Dur("took", time.Since(start)).Msg("track built")

	for _, is := range track.Check(assets) {
		ev := log.Warn()
		if is.Severity == track.SeverityFail {
			ev = log.Error()
		}
		ev.Str("track", def.Name).Msg(is.Message)
	}
	return assets, nil
}
