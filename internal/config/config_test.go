// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/logiassist-tui/internal/gateway"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, gateway.DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Assistant.DeveloperMode)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"relative endpoint", func(c *Config) { c.Endpoint = "/exec" }, "endpoint"},
		{"ftp endpoint", func(c *Config) { c.Endpoint = "ftp://host/x" }, "endpoint"},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"bad resource", func(c *Config) { c.Assistant.ResourceURL = "mailto:x@y" }, "assistant.resource_url"},
		{"negative size", func(c *Config) { c.MaxResponseBytes = -1 }, "max_response_bytes"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			var verrs ValidateErrors
			require.True(t, errors.As(cfg.Validate(), &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tc.wantField, verrs[0].Field)
		})
	}
}

func TestValidateCollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Endpoint = "nope"
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	var verrs ValidateErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
	assert.Contains(t, err.Error(), "; ")
}

func TestLoadFromPathTOML(t *testing.T) {
	t.Setenv("LOGIASSIST_ENDPOINT", "")
	t.Setenv("LOGIASSIST_LOG_LEVEL", "")
	t.Setenv("LOGIASSIST_DEV_MODE", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
endpoint = "https://backend.example.com/exec"

[logging]
level = "debug"

[assistant]
developer_mode = true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "https://backend.example.com/exec", cfg.Endpoint)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Assistant.DeveloperMode)
	assert.Equal(t, DefaultResourceURL, cfg.Assistant.ResourceURL)
	assert.Equal(t, int64(gateway.DefaultMaxResponseSize), cfg.MaxResponseBytes)
}

func TestLoadFromPathJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"endpoint":"http://127.0.0.1:9000/"}`), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/", cfg.Endpoint)
}

func TestLoadFromPathInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`endpoint = "not-a-url"`), 0600))

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("LOGIASSIST_ENDPOINT", "https://staging.example.com/exec")
	t.Setenv("LOGIASSIST_LOG_LEVEL", "warn")
	t.Setenv("LOGIASSIST_DEV_MODE", "true")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "https://staging.example.com/exec", cfg.Endpoint)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Assistant.DeveloperMode)
}

func TestApplyEnvOverridesIgnoresBadBool(t *testing.T) {
	t.Setenv("LOGIASSIST_DEV_MODE", "sometimes")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.False(t, cfg.Assistant.DeveloperMode)
}

func TestLoadUsesHomeDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("LOGIASSIST_ENDPOINT", "")
	t.Setenv("LOGIASSIST_LOG_LEVEL", "")
	t.Setenv("LOGIASSIST_DEV_MODE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Endpoint, cfg.Endpoint)

	path, err := ConfigPathTOML()
	require.NoError(t, err)
	cfg.Logging.Level = "error"
	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "error", loaded.Logging.Level)
	assert.Contains(t, loaded.String(), `level = "error"`)
}
