package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "public", cfg.Privacy)
	assert.Equal(t, 30, cfg.ClipSeconds)
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"api_url: http://media.lan:5000\nprivacy: unlisted\nclip_seconds: 25\n",
	), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://media.lan:5000", cfg.APIBaseURL)
	assert.Equal(t, "unlisted", cfg.Privacy)
	assert.Equal(t, 25, cfg.ClipSeconds)
	// untouched keys keep their defaults
	assert.Equal(t, "mpv", cfg.Player)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
}

func TestEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("privacy: unlisted\n"), 0o644))

	t.Setenv("CLIPCAST_PRIVACY", "PRIVATE")
	t.Setenv("CLIPCAST_REQUEST_TIMEOUT", "90s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "private", cfg.Privacy)
	assert.Equal(t, 90*time.Second, cfg.RequestTimeout)
}

func TestTokenNeverReadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_token: leaked\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.APIToken)

	t.Setenv("CLIPCAST_API_TOKEN", "from-env")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIToken)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("privacy: [oops\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad privacy", func(c *Config) { c.Privacy = "friends-only" }, "invalid privacy"},
		{"duration too short", func(c *Config) { c.ClipSeconds = 19 }, "out of range"},
		{"duration too long", func(c *Config) { c.ClipSeconds = 41 }, "out of range"},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, "timeouts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateAcceptsBounds(t *testing.T) {
	cfg := Default()
	cfg.ClipSeconds = MinClipSeconds
	assert.NoError(t, cfg.Validate())
	cfg.ClipSeconds = MaxClipSeconds
	assert.NoError(t, cfg.Validate())
}
