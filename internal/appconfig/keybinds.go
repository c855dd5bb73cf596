// ABOUTME: Keybinds persists the action-to-key-combination map as keybinds.toml
// ABOUTME: Falls back to DefaultKeybinds whenever the file is missing

package appconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Keybinds maps an action name to the key combination string that
// triggers it, persisted as keybinds.toml alongside app.toml.
type Keybinds map[string]string

// DefaultKeybinds mirrors the editor's built-in bindings for the core
// editing operations.
func DefaultKeybinds() Keybinds {
	return Keybinds{
		"play_pause":     "space",
		"undo":           "ctrl+z",
		"redo":           "ctrl+y",
		"select_all":     "ctrl+a",
		"range_extend":   "e",
		"equalize":       "ctrl+e",
		"invert":         "ctrl+i",
		"isolate":        "ctrl+shift+i",
		"repeat_stroke":  "r",
		"frame_step_fwd": "right",
		"frame_step_bwd": "left",
	}
}

// LoadKeybinds loads a keybind map from a TOML file, falling back to
// DefaultKeybinds when the file does not exist.
func LoadKeybinds(path string) (Keybinds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultKeybinds(), nil
		}
		return DefaultKeybinds(), fmt.Errorf("appconfig: read keybinds %s: %w", path, err)
	}
	var kb Keybinds
	if err := toml.Unmarshal(data, &kb); err != nil {
		return DefaultKeybinds(), fmt.Errorf("appconfig: parse keybinds %s: %w", path, err)
	}
	return kb, nil
}

// SaveKeybinds writes kb to path as TOML.
func SaveKeybinds(path string, kb Keybinds) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("appconfig: create keybinds directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("appconfig: create keybinds %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(kb); err != nil {
		return fmt.Errorf("appconfig: encode keybinds %s: %w", path, err)
	}
	return nil
}
