// Package config loads layered settings for the clipcast TUI: built-in
// defaults, then an optional YAML file, then CLIPCAST_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"

	"clipcast/internal/api"
)

// Duration bounds for URL-sourced clips, enforced before any request is sent.
const (
	MinClipSeconds = 20
	MaxClipSeconds = 40
)

// Config holds every tunable of the TUI. The API token deliberately has no
// YAML tag: secrets come from the keyring or the environment, never a file.
type Config struct {
	APIBaseURL     string        `yaml:"api_url" env:"CLIPCAST_API_URL"`
	APIToken       string        `yaml:"-" env:"CLIPCAST_API_TOKEN"`
	Privacy        string        `yaml:"privacy" env:"CLIPCAST_PRIVACY"`
	ClipSeconds    int           `yaml:"clip_seconds" env:"CLIPCAST_CLIP_SECONDS"`
	Player         string        `yaml:"player" env:"CLIPCAST_PLAYER"`
	DebugLog       string        `yaml:"debug_log" env:"CLIPCAST_DEBUG_LOG"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"CLIPCAST_REQUEST_TIMEOUT"`
	MediaTimeout   time.Duration `yaml:"media_timeout" env:"CLIPCAST_MEDIA_TIMEOUT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBaseURL:     api.DefaultBaseURL,
		Privacy:        string(api.PrivacyPublic),
		ClipSeconds:    30,
		Player:         "mpv",
		RequestTimeout: 60 * time.Second,
		MediaTimeout:   5 * time.Minute,
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "clipcast", "config.yaml"), nil
}

// Load resolves the configuration. A missing YAML file is not an error; a
// malformed one is. An empty path skips the file layer entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// no file, defaults stand
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env config: %w", err)
	}

	cfg.APIBaseURL = strings.TrimSpace(cfg.APIBaseURL)
	cfg.Privacy = strings.ToLower(strings.TrimSpace(cfg.Privacy))
	cfg.Player = strings.TrimSpace(cfg.Player)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the backend or the UI cannot honor.
func (c Config) Validate() error {
	if !api.Privacy(c.Privacy).Valid() {
		return fmt.Errorf("invalid privacy %q: want public, unlisted or private", c.Privacy)
	}
	if c.ClipSeconds < MinClipSeconds || c.ClipSeconds > MaxClipSeconds {
		return fmt.Errorf("clip duration %ds out of range: want %d to %d seconds",
			c.ClipSeconds, MinClipSeconds, MaxClipSeconds)
	}
	if c.RequestTimeout <= 0 || c.MediaTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	return nil
}
