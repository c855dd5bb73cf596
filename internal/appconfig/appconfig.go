// ABOUTME: Editor-preference TOML config, mirroring the teacher's LoadConfig/SaveConfig shape
// ABOUTME: Persisted as app.toml in the user-scope config directory alongside keybinds and tcode

package appconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// AppConfig holds global editor preferences.
type AppConfig struct {
	AutosaveIntervalSeconds int     `toml:"autosave_interval_seconds"`
	LastOpenedProject       string  `toml:"last_opened_project"`
	HeatmapEnabled          bool    `toml:"heatmap_enabled"`
	WaveformEnabled         bool    `toml:"waveform_enabled"`
	InsertDelaySeconds      float64 `toml:"insert_delay_seconds"`
	ForceSnapToFrame        bool    `toml:"force_snap_to_frame"`
}

// GetConfigPath returns the default app config path: first the current
// directory, then ~/.config/ofsedit/app.toml.
func GetConfigPath() string {
	if _, err := os.Stat("./ofsedit.toml"); err == nil {
		return "./ofsedit.toml"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "./ofsedit.toml"
	}
	return filepath.Join(home, ".config", "ofsedit", "app.toml")
}

// LoadAppConfig loads configuration from a TOML file. A missing file
// returns defaults rather than an error.
func LoadAppConfig(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultAppConfig(), nil
		}
		return DefaultAppConfig(), fmt.Errorf("appconfig: read %s: %w", path, err)
	}

	var cfg AppConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultAppConfig(), fmt.Errorf("appconfig: parse %s: %w", path, err)
	}
	return cfg, nil
}

// SaveAppConfig writes cfg to a TOML file, creating parent directories as
// needed.
func SaveAppConfig(path string, cfg AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("appconfig: create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("appconfig: create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("appconfig: encode %s: %w", path, err)
	}
	return nil
}

// DefaultAppConfig returns the editor's out-of-the-box preferences.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		AutosaveIntervalSeconds: 60,
		HeatmapEnabled:          true,
		WaveformEnabled:         true,
		InsertDelaySeconds:      0,
		ForceSnapToFrame:        false,
	}
}
