// ABOUTME: Per-axis JSON funscript file reader/writer
// ABOUTME: Grounded on Funscript.cpp's open()/save() and the wire layout documented in the spec

package project

import (
	"encoding/json"
	"fmt"
	"os"

	"ofsedit/internal/eventbus"
	"ofsedit/internal/funscript"
)

// funscriptMetadataDoc mirrors the metadata object embedded in a
// funscript file; fields mirror project.Metadata plus the per-script
// Type.
type funscriptMetadataDoc struct {
	Title       string   `json:"title,omitempty"`
	Creator     string   `json:"creator,omitempty"`
	ScriptURL   string   `json:"script_url,omitempty"`
	VideoURL    string   `json:"video_url,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Performers  []string `json:"performers,omitempty"`
	Description string   `json:"description,omitempty"`
	License     string   `json:"license,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Duration    int      `json:"duration,omitempty"`
	Type        string   `json:"type,omitempty"`
}

type funscriptActionDoc struct {
	At  int `json:"at"`
	Pos int `json:"pos"`
}

type funscriptDoc struct {
	Version  string               `json:"version"`
	Inverted bool                 `json:"inverted"`
	Range    int                  `json:"range"`
	Metadata funscriptMetadataDoc `json:"metadata"`
	Actions  []funscriptActionDoc `json:"actions"`
}

// ErrMalformedFunscript reports a root-level parse failure or a missing
// actions array; per the error-handling design an action with a negative
// at is skipped silently instead of raising this error.
var ErrMalformedFunscript = fmt.Errorf("project: malformed funscript")

// LoadFunscript reads a per-axis JSON funscript file into a new Script.
// Duplicate timestamps are deduplicated by ActionSet.Insert's overwrite
// semantics: a later action at the same millisecond replaces the earlier
// one's pos.
func LoadFunscript(path string, id int, bus *eventbus.Bus) (*funscript.Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("project: read funscript %s: %w", path, err)
	}

	var doc funscriptDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedFunscript, path, err)
	}
	if doc.Actions == nil {
		return nil, fmt.Errorf("%w: %s: no actions array", ErrMalformedFunscript, path)
	}

	s := funscript.NewScript(id, bus)
	s.Path = path
	s.Title = doc.Metadata.Title
	if doc.Metadata.Type != "" {
		s.Type = doc.Metadata.Type
	}

	for _, a := range doc.Actions {
		if a.At < 0 {
			continue // skipped silently per the error-handling design
		}
		s.Actions().Insert(funscript.NewAction(float32(a.At)/1000, a.Pos))
	}
	s.UnsavedEdits = false
	return s, nil
}

// SaveFunscript writes s to path in the versioned JSON format. version,
// inverted, and range are written but ignored on load, matching the
// spec's documented field.
func SaveFunscript(path string, s *funscript.Script, meta Metadata) error {
	scriptType := s.Type
	if scriptType == "" {
		scriptType = "basic"
	}
	doc := funscriptDoc{
		Version:  "1.0",
		Inverted: false,
		Range:    100,
		Metadata: funscriptMetadataDoc{
			Title:       s.Title,
			Creator:     meta.Creator,
			ScriptURL:   meta.ScriptURL,
			VideoURL:    meta.VideoURL,
			Tags:        meta.Tags,
			Performers:  meta.Performers,
			Description: meta.Description,
			License:     meta.License,
			Notes:       meta.Notes,
			Duration:    meta.DurationSec,
			Type:        scriptType,
		},
	}
	for _, a := range s.Actions().Actions() {
		doc.Actions = append(doc.Actions, funscriptActionDoc{
			At:  int(a.At * 1000),
			Pos: int(a.Pos),
		})
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("project: marshal funscript %s: %w", path, err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("project: write funscript %s: %w", path, err)
	}
	return nil
}
