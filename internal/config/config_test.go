// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.Export.DefaultTarget != "openboard" || cfg.Export.OutputDir != "." {
		t.Errorf("Export defaults = %+v", cfg.Export)
	}
	if !cfg.Export.FetchThumbnails {
		t.Error("Thumbnail fetching should default on")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestLoadFromPath_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
log_level = "debug"

[export]
output_dir = "/tmp/exports"
default_target = "gridset"

[service]
base_url = "https://boards.example.com"
api_key = "secret"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.Export.OutputDir != "/tmp/exports" || cfg.Export.DefaultTarget != "gridset" {
		t.Errorf("Export = %+v", cfg.Export)
	}
	if cfg.Service.BaseURL != "https://boards.example.com" {
		t.Errorf("Service = %+v", cfg.Service)
	}
	// Sparse file still gets defaults.
	if cfg.Service.StorePath == "" {
		t.Error("StorePath default was not filled")
	}
}

func TestLoadFromPath_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"log_level": "warn", "export": {"default_target": "snapcore"}}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.LogLevel != "warn" || cfg.Export.DefaultTarget != "snapcore" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadFromPath_UnsupportedExtension(t *testing.T) {
	if _, err := LoadFromPath("config.ini"); err == nil {
		t.Fatal("Expected an error for an unsupported format")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BOARDFORGE_LOG_LEVEL", "error")
	t.Setenv("BOARDFORGE_TARGET", "pictoboard")
	t.Setenv("BOARDFORGE_SERVICE_URL", "https://env.example.com")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.Export.DefaultTarget != "pictoboard" {
		t.Errorf("DefaultTarget = %q", cfg.Export.DefaultTarget)
	}
	if cfg.Service.BaseURL != "https://env.example.com" {
		t.Errorf("BaseURL = %q", cfg.Service.BaseURL)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("Unknown log level should fail validation")
	}

	cfg = Default()
	cfg.Service.BaseURL = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Error("Malformed service URL should fail validation")
	}

	cfg = Default()
	cfg.Upload.Endpoint = "ftp://files.example.com"
	if err := cfg.Validate(); err == nil {
		t.Error("Non-http upload endpoint should fail validation")
	}

	cfg = Default()
	cfg.Symbols.OverlayPath = "/no/such/overlay.yaml"
	if err := cfg.Validate(); err == nil {
		t.Error("Missing overlay file should fail validation")
	}
}

func TestSaveTOMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	src := Default()
	src.Export.DefaultTarget = "gridset-beta"
	if err := SaveTOML(src, path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	got, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if got.Export.DefaultTarget != "gridset-beta" {
		t.Errorf("DefaultTarget = %q after round trip", got.Export.DefaultTarget)
	}
}
