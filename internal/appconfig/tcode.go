// ABOUTME: TCodeConfig persists T-Code device output settings as TOML
// ABOUTME: The device protocol itself is out of scope; this is the config surface stub

package appconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// TCodeConfig is a structural stand-in for the T-Code device output
// settings; the device protocol itself is out of scope, but the config
// surface still needs to round-trip for the rest of the persisted-state
// layout to be complete.
type TCodeConfig struct {
	Enabled    bool   `toml:"enabled"`
	SerialPort string `toml:"serial_port"`
	BaudRate   int    `toml:"baud_rate"`
}

// DefaultTCodeConfig returns the disabled-by-default device output stub.
func DefaultTCodeConfig() TCodeConfig {
	return TCodeConfig{Enabled: false, BaudRate: 115200}
}

// LoadTCodeConfig loads the device output config, defaulting to disabled
// when the file is absent.
func LoadTCodeConfig(path string) (TCodeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultTCodeConfig(), nil
		}
		return DefaultTCodeConfig(), fmt.Errorf("appconfig: read tcode %s: %w", path, err)
	}
	var cfg TCodeConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultTCodeConfig(), fmt.Errorf("appconfig: parse tcode %s: %w", path, err)
	}
	return cfg, nil
}

// SaveTCodeConfig writes cfg to path as TOML.
func SaveTCodeConfig(path string, cfg TCodeConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("appconfig: create tcode directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("appconfig: create tcode %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("appconfig: encode tcode %s: %w", path, err)
	}
	return nil
}
