// ABOUTME: Tests for the per-axis JSON funscript reader/writer
// ABOUTME: Covers the metadata type field default on save and preservation on load

package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"ofsedit/internal/funscript"
)

func TestSaveFunscript_DefaultsMetadataTypeToBasic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movie.funscript")

	s := funscript.NewScript(0, nil)
	s.AddAction(funscript.NewAction(1.0, 50))

	if err := SaveFunscript(path, s, Metadata{}); err != nil {
		t.Fatalf("SaveFunscript: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var doc funscriptDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if doc.Metadata.Type != "basic" {
		t.Errorf("Metadata.Type = %q, want %q", doc.Metadata.Type, "basic")
	}
}

func TestLoadFunscript_PreservesCustomMetadataType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movie.funscript")

	raw, err := json.Marshal(funscriptDoc{
		Version:  "1.0",
		Metadata: funscriptMetadataDoc{Type: "twist"},
		Actions:  []funscriptActionDoc{{At: 1000, Pos: 50}},
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := LoadFunscript(path, 0, nil)
	if err != nil {
		t.Fatalf("LoadFunscript: %v", err)
	}
	if s.Type != "twist" {
		t.Errorf("s.Type = %q, want %q", s.Type, "twist")
	}
}
