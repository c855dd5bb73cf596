// ABOUTME: Tests for the project container's script bookkeeping and binary round-trip
// ABOUTME: Covers version rejection and the growable tail marker contract

package project

import (
	"os"
	"path/filepath"
	"testing"

	"ofsedit/internal/funscript"
)

func TestProject_CannotRemoveLastScript(t *testing.T) {
	p := New("movie.mp4", nil)
	if err := p.RemoveScript(0); err == nil {
		t.Fatal("expected an error removing the only script")
	}
}

func TestProject_AddScriptDedupsByPath(t *testing.T) {
	p := New("movie.mp4", nil)
	a := p.AddScript("movie.roll.funscript")
	b := p.AddScript("movie.roll.funscript")
	if a != b {
		t.Error("adding the same path twice should return the existing script")
	}
}

func TestProject_BinaryRoundTrip(t *testing.T) {
	p := New("movie.mp4", nil)
	p.Tempo = Tempo{BPM: 120, BeatOffset: 0.1, MeasureIndex: 2}
	p.Bookmarks = []Bookmark{{Name: "intro_start", At: 1.5, Type: StartMarker}}
	p.Scripts()[0].AddAction(funscript.NewAction(1.0, 50))

	data := Serialize(p)
	got, err := Deserialize(data, nil)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if got.MediaPath != p.MediaPath {
		t.Errorf("MediaPath = %q, want %q", got.MediaPath, p.MediaPath)
	}
	if got.Tempo != p.Tempo {
		t.Errorf("Tempo = %+v, want %+v", got.Tempo, p.Tempo)
	}
	if len(got.Bookmarks) != 1 || got.Bookmarks[0].Name != "intro_start" {
		t.Errorf("Bookmarks = %+v", got.Bookmarks)
	}
	if got.Scripts()[0].Actions().Len() != 1 {
		t.Errorf("expected 1 action to survive the round trip, got %d", got.Scripts()[0].Actions().Len())
	}
}

func TestProject_SaveRoutesThroughSaveWorkerAndClearsDirty(t *testing.T) {
	p := New("movie.mp4", nil)
	p.Scripts()[0].AddAction(funscript.NewAction(1.0, 50))
	if !p.HasUnsavedEdits() {
		t.Fatal("expected AddAction to mark the project dirty")
	}

	path := filepath.Join(t.TempDir(), "project.ofsproject")
	if err := p.Save(path, true); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if p.HasUnsavedEdits() {
		t.Error("expected Save(clearDirtyFlag=true) to clear unsaved_edits")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if _, err := Deserialize(data, nil); err != nil {
		t.Errorf("the SaveWorker-written file did not deserialize: %v", err)
	}
}

func TestProject_SavePreservesDirtyWhenNotClearing(t *testing.T) {
	p := New("movie.mp4", nil)
	p.Scripts()[0].AddAction(funscript.NewAction(1.0, 50))

	path := filepath.Join(t.TempDir(), "backup.ofsproject")
	if err := p.Save(path, false); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !p.HasUnsavedEdits() {
		t.Error("expected Save(clearDirtyFlag=false) to leave unsaved_edits set")
	}
}

func TestProject_DeserializeRejectsWrongVersion(t *testing.T) {
	data := Serialize(New("movie.mp4", nil))
	data[0] = 2 // corrupt the leading version field (little-endian byte 0)
	if _, err := Deserialize(data, nil); err == nil {
		t.Fatal("expected a version mismatch error")
	}
}
