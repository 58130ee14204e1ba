package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ErrUnknownRenderer is returned for a renderer other than "gl" or "tui".
var ErrUnknownRenderer = errors.New("unknown renderer")

const (
	RendererGL  = "gl"
	RendererTUI = "tui"

	envPrefix  = "CARRACE"
	configName = "carrace"
)

// Config is the runtime configuration. Values come from defaults, an
// optional config file and CARRACE_* environment variables, in rising order.
type Config struct {
	LogLevel        string  `json:"logLevel" mapstructure:"logLevel"`
	LogFile         string  `json:"logFile" mapstructure:"logFile"` // empty = stderr
	Renderer        string  `json:"renderer" mapstructure:"renderer"`
	TrackFile       string  `json:"trackFile" mapstructure:"trackFile"` // empty = built-in track
	FPS             int     `json:"fps" mapstructure:"fps"`
	Mute            bool    `json:"mute" mapstructure:"mute"`
	Scale           float64 `json:"scale" mapstructure:"scale"` // window pixels per world pixel
	AnnounceSeconds float64 `json:"announceSeconds" mapstructure:"announceSeconds"`
}

// Announce is how long the win and loss banners stay up.
func (c Config) Announce() time.Duration {
	return time.Duration(c.AnnounceSeconds * float64(time.Second))
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "")
	viper.SetDefault("renderer", RendererGL)
	viper.SetDefault("trackFile", "")
	viper.SetDefault("fps", 60)
	viper.SetDefault("mute", false)
	viper.SetDefault("scale", 1.0)
	viper.SetDefault("announceSeconds", 5.0)
}

// Load reads the configuration. path names a config file explicitly; when
// empty, carrace.{json,yaml,toml} is looked up in the working directory and
// skipped if absent.
func Load(path string) (Config, error) {
	setDefaults()

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		viper.SetConfigName(configName)
		viper.AddConfigPath(".")
		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Renderer {
	case RendererGL, RendererTUI:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRenderer, c.Renderer)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %g", c.Scale)
	}
	if c.AnnounceSeconds < 0 {
		return fmt.Errorf("announceSeconds must not be negative, got %g", c.AnnounceSeconds)
	}
	return nil
}
