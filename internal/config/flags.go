package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"log-level": "logLevel",
	"log-file":  "logFile",
	"renderer":  "renderer",
	"track":     "trackFile",
	"fps":       "fps",
	"mute":      "mute",
	"scale":     "scale",
	"announce":  "announceSeconds",
}

// RegisterFlags adds the configuration flags to fs. Flags that are set take
// precedence over the environment and the config file once bound.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	fs.String("log-file", "", "write logs to this file instead of stderr")
	fs.String("renderer", RendererGL, "frontend: gl or tui")
	fs.String("track", "", "track definition file (default: built-in track)")
	fs.Int("fps", 60, "frames per second")
	fs.Bool("mute", false, "disable sound")
	fs.Float64("scale", 1.0, "window pixels per track pixel")
	fs.Float64("announce", 5.0, "seconds the win and loss banners stay up")
}

// BindFlags binds the flags registered by RegisterFlags to their keys.
func BindFlags(fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
