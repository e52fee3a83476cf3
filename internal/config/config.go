// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/logiassist-tui/internal/commands"
	"github.com/jeranaias/logiassist-tui/internal/gateway"
	"github.com/jeranaias/logiassist-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete logiassist configuration.
type Config struct {
	// Endpoint is the scripting endpoint every action is posted to.
	Endpoint string `toml:"endpoint" json:"endpoint"`

	// MaxResponseBytes caps how much of a reply is read.
	MaxResponseBytes int64 `toml:"max_response_bytes" json:"max_response_bytes"`

	Logging   LoggingConfig   `toml:"logging" json:"logging"`
	Assistant AssistantConfig `toml:"assistant" json:"assistant"`
	UI        UIConfig        `toml:"ui" json:"ui"`
}

// LoggingConfig controls the log file.
type LoggingConfig struct {
	Enabled bool   `toml:"enabled" json:"enabled"`
	Level   string `toml:"level" json:"level"` // debug, info, warn, error
	Path    string `toml:"path" json:"path"`   // Empty means ~/.logiassist/logiassist.log
}

// AssistantConfig holds chat behavior settings.
type AssistantConfig struct {
	// ResourceURL is the page linked from /help.
	ResourceURL string `toml:"resource_url" json:"resource_url"`

	// DeveloperMode starts the chat with the expert-answer box open.
	DeveloperMode bool `toml:"developer_mode" json:"developer_mode"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	Theme string `toml:"theme" json:"theme"` // dark, light or auto
}

// DefaultResourceURL is the logistics resource page linked from /help.
const DefaultResourceURL = commands.DefaultResourceURL

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Endpoint:         gateway.DefaultEndpoint,
		MaxResponseBytes: gateway.DefaultMaxResponseSize,
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
		Assistant: AssistantConfig{
			ResourceURL: DefaultResourceURL,
		},
		UI: UIConfig{
			Theme: "auto",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the logiassist configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".logiassist"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultLogPath returns ~/.logiassist/logiassist.log.
func DefaultLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logiassist.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads ~/.logiassist/config.toml, falling back to config.json and then
// to defaults. Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	if path, err := ConfigPathTOML(); err == nil && fileExists(path) {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config: %w", err)
		}
	} else if path, err := ConfigPathJSON(); err == nil && fileExists(path) {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config: %w", err)
		}
	}

	return finish(cfg)
}

// LoadFromPath loads configuration from a specific file. Files ending in
// .json are read as JSON, anything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
	}

	return finish(cfg)
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// SetDefaults fills zero values left by a partial config file.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Endpoint == "" {
		c.Endpoint = d.Endpoint
	}
	if c.MaxResponseBytes <= 0 {
		c.MaxResponseBytes = d.MaxResponseBytes
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Assistant.ResourceURL == "" {
		c.Assistant.ResourceURL = d.Assistant.ResourceURL
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes cfg to path, creating the directory if needed.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# logiassist configuration file\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// String renders the config as TOML.
func (c *Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("<config encode error: %v>", err)
	}
	return b.String()
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
var validThemes = map[string]bool{"dark": true, "light": true, "auto": true}

// Validate checks every field and returns all problems at once.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if err := validateHTTPURL(c.Endpoint); err != nil {
		errs = append(errs, ValidationError{Field: "endpoint", Message: err.Error()})
	}
	if c.Assistant.ResourceURL != "" {
		if err := validateHTTPURL(c.Assistant.ResourceURL); err != nil {
			errs = append(errs, ValidationError{Field: "assistant.resource_url", Message: err.Error()})
		}
	}
	if c.MaxResponseBytes < 0 {
		errs = append(errs, ValidationError{
			Field:   "max_response_bytes",
			Message: fmt.Sprintf("must not be negative, got %d", c.MaxResponseBytes),
		})
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Logging.Level),
		})
	}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL '%s': %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL '%s' must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL '%s' has no host", raw)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides:
//   - LOGIASSIST_ENDPOINT: overrides endpoint
//   - LOGIASSIST_LOG_LEVEL: overrides logging.level
//   - LOGIASSIST_DEV_MODE: overrides assistant.developer_mode
func (c *Config) ApplyEnvOverrides() {
	if endpoint := os.Getenv("LOGIASSIST_ENDPOINT"); endpoint != "" {
		c.Endpoint = endpoint
	}

	if level := os.Getenv("LOGIASSIST_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}

	if dev := os.Getenv("LOGIASSIST_DEV_MODE"); dev != "" {
		if on, err := strconv.ParseBool(dev); err == nil {
			c.Assistant.DeveloperMode = on
		}
	}
}
