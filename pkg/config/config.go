package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration is a time.Duration decoded from strings such as "500ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("negative duration %q", text)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config holds CLI settings.
type Config struct {
	GitBin    string      `toml:"git_bin"`
	Timeout   Duration    `toml:"timeout"`
	LogLevel  string      `toml:"log_level"`
	LogFormat string      `toml:"log_format"`
	Watch     WatchConfig `toml:"watch"`
}

// WatchConfig tunes the live refresh loop.
type WatchConfig struct {
	Debounce Duration `toml:"debounce"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		GitBin:    "git",
		Timeout:   Duration{500 * time.Millisecond},
		LogLevel:  "warn",
		LogFormat: "text",
		Watch:     WatchConfig{Debounce: Duration{150 * time.Millisecond}},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/statusline/config.toml or the
// platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "statusline", "config.toml")
}

// Load reads path over the defaults. A missing file returns the defaults;
// an empty path means DefaultPath.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if strings.TrimSpace(cfg.GitBin) == "" {
		cfg.GitBin = "git"
	}
	return cfg, nil
}
