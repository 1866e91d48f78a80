// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete boardforge configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// LogLevel controls logging verbosity: "debug", "info", "warn", "error".
	LogLevel string `toml:"log_level" json:"log_level"`

	Export  ExportConfig  `toml:"export" json:"export"`
	Service ServiceConfig `toml:"service" json:"service"`
	Upload  UploadConfig  `toml:"upload" json:"upload"`
	Symbols SymbolsConfig `toml:"symbols" json:"symbols"`
}

// ExportConfig controls archive export behavior.
type ExportConfig struct {
	// OutputDir is where archives are written.
	OutputDir string `toml:"output_dir" json:"output_dir"`
	// DefaultTarget is the target used when none is named on the command line.
	DefaultTarget string `toml:"default_target" json:"default_target"`
	// OpenAfterExport opens finished archives in the default application.
	OpenAfterExport bool `toml:"open_after_export" json:"open_after_export"`
	// FetchThumbnails downloads cover images for embedding.
	FetchThumbnails bool `toml:"fetch_thumbnails" json:"fetch_thumbnails"`
}

// ServiceConfig points at the remote board persistence service. When BaseURL
// is empty the CLI uses the local store only.
type ServiceConfig struct {
	BaseURL string `toml:"base_url" json:"base_url"`
	APIKey  string `toml:"api_key" json:"api_key"`
	// StorePath is the local SQLite database location.
	StorePath string `toml:"store_path" json:"store_path"`
}

// UploadConfig points at the cloud-storage upload collaborator.
type UploadConfig struct {
	Endpoint string `toml:"endpoint" json:"endpoint"`
	APIKey   string `toml:"api_key" json:"api_key"`
}

// SymbolsConfig controls symbol resolution during packaging.
type SymbolsConfig struct {
	// OverlayPath is an optional YAML symbol library overlay.
	OverlayPath string `toml:"overlay_path" json:"overlay_path"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version:  "1.0",
		LogLevel: "info",
		Export: ExportConfig{
			OutputDir:       ".",
			DefaultTarget:   "openboard",
			FetchThumbnails: true,
		},
		Service: ServiceConfig{
			StorePath: defaultStorePath(),
		},
	}
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".boardforge"), nil
}

func defaultStorePath() string {
	dir, err := configDir()
	if err != nil {
		return "boards.db"
	}
	return filepath.Join(dir, "boards.db")
}

// ConfigPathTOML returns the TOML config file location.
func ConfigPathTOML() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the JSON config file location.
func ConfigPathJSON() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from the default locations, trying TOML first and
// JSON as a fallback, then applies environment overrides and validates.
func Load() (*Config, error) {
	cfg := Default()

	if path, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, err
			}
			return finish(cfg)
		}
	}

	if path, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadJSON(cfg, path); err != nil {
				return nil, err
			}
			return finish(cfg)
		}
	}

	return finish(cfg)
}

// LoadFromPath loads configuration from a specific file, selecting the codec
// by extension.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = LoadTOML(cfg, path)
	case ".json":
		err = LoadJSON(cfg, path)
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}
	if err != nil {
		return nil, err
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("decode TOML config: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read JSON config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode JSON config: %w", err)
	}
	return nil
}

// =============================================================================
// OVERRIDES, DEFAULTS, VALIDATION
// =============================================================================

// ApplyEnvOverrides applies BOARDFORGE_* environment variables over the
// loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("BOARDFORGE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("BOARDFORGE_OUTPUT_DIR"); v != "" {
		c.Export.OutputDir = v
	}
	if v := os.Getenv("BOARDFORGE_TARGET"); v != "" {
		c.Export.DefaultTarget = v
	}
	if v := os.Getenv("BOARDFORGE_SERVICE_URL"); v != "" {
		c.Service.BaseURL = v
	}
	if v := os.Getenv("BOARDFORGE_API_KEY"); v != "" {
		c.Service.APIKey = v
	}
	if v := os.Getenv("BOARDFORGE_UPLOAD_ENDPOINT"); v != "" {
		c.Upload.Endpoint = v
	}
	if v := os.Getenv("BOARDFORGE_SYMBOL_OVERLAY"); v != "" {
		c.Symbols.OverlayPath = v
	}
}

// SetDefaults fills zero values left by a sparse config file.
func (c *Config) SetDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Export.OutputDir == "" {
		c.Export.OutputDir = "."
	}
	if c.Export.DefaultTarget == "" {
		c.Export.DefaultTarget = "openboard"
	}
	if c.Service.StorePath == "" {
		c.Service.StorePath = defaultStorePath()
	}
}

// Validate rejects configurations the CLI cannot run with.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}

	for name, raw := range map[string]string{
		"service.base_url": c.Service.BaseURL,
		"upload.endpoint":  c.Upload.Endpoint,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("%s is not a valid http(s) URL: %q", name, raw)
		}
	}

	if c.Symbols.OverlayPath != "" {
		if _, err := os.Stat(c.Symbols.OverlayPath); err != nil {
			return fmt.Errorf("symbols.overlay_path: %w", err)
		}
	}
	return nil
}

// =============================================================================
// SAVING
// =============================================================================

// SaveTOML writes the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode TOML config: %w", err)
	}
	return nil
}
