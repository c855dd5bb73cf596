// ABOUTME: Tests for the TOML-backed app/keybind/tcode config round trips
// ABOUTME: Mirrors the teacher's config_test.go coverage style

package appconfig

import (
	"path/filepath"
	"testing"
)

func TestLoadAppConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if cfg != DefaultAppConfig() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestSaveThenLoadAppConfig_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.toml")
	cfg := AppConfig{AutosaveIntervalSeconds: 30, HeatmapEnabled: false, InsertDelaySeconds: 0.2}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig: %v", err)
	}
	got, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if got != cfg {
		t.Errorf("got %+v, want %+v", got, cfg)
	}
}

func TestKeybinds_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybinds.toml")
	kb := Keybinds{"undo": "ctrl+z", "custom_op": "shift+x"}

	if err := SaveKeybinds(path, kb); err != nil {
		t.Fatalf("SaveKeybinds: %v", err)
	}
	got, err := LoadKeybinds(path)
	if err != nil {
		t.Fatalf("LoadKeybinds: %v", err)
	}
	if got["custom_op"] != "shift+x" {
		t.Errorf("got %+v, missing custom_op binding", got)
	}
}
