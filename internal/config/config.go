// Package config loads the optional tedge-write configuration file. The file
// only carries diagnostics defaults; command-line flags always take
// precedence, and a missing file means defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// FileName is the configuration file looked up inside the config
	// directory.
	FileName = "tedge-write.toml"

	// DefaultDir is the default config directory.
	DefaultDir = "/etc/tedge"
)

// Config holds the settings read from <config-dir>/tedge-write.toml.
type Config struct {
	Log LogConfig `toml:"log"`
}

// LogConfig controls the diagnostics output.
type LogConfig struct {
	// Debug enables debug output, same as the --debug flag.
	Debug bool `toml:"debug"`

	// Color selects colored stderr output: "auto", "always" or "never".
	Color string `toml:"color"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log: LogConfig{Color: "auto"},
	}
}

// Load reads the configuration file from dir. A missing file yields the
// defaults; a malformed file is a fatal configuration error.
func Load(dir string) (Config, error) {
	cfg := Default()
	path := filepath.Join(dir, FileName)

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.Log.Color {
	case "auto", "always", "never":
		return nil
	default:
		return fmt.Errorf("log.color must be auto, always or never, got %q", c.Log.Color)
	}
}
