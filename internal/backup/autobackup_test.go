// ABOUTME: Tests for the rotating backup directory, the suspend flag, and Run's fsnotify handling
// ABOUTME: tick/rotate are covered directly; Run is covered via a real watched-file write

package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fakeSaver struct {
	calls       int
	clearDirty  []bool
	lastPath    string
}

func (f *fakeSaver) Save(path string, clearDirty bool) error {
	f.calls++
	f.clearDirty = append(f.clearDirty, clearDirty)
	f.lastPath = path
	return os.WriteFile(path, []byte("x"), 0o644)
}

func TestAutoBackup_TickNeverClearsDirty(t *testing.T) {
	dir := t.TempDir()
	b, err := New(dir, filepath.Join(dir, "movie.ofsproject"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Close()

	saver := &fakeSaver{}
	if err := b.tick(saver); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if saver.calls != 1 || saver.clearDirty[0] != false {
		t.Errorf("expected one non-dirty-clearing save, got calls=%d flags=%v", saver.calls, saver.clearDirty)
	}
}

func TestAutoBackup_RotateRemovesPriorBackups(t *testing.T) {
	dir := t.TempDir()
	b, err := New(dir, filepath.Join(dir, "movie.ofsproject"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Close()

	os.WriteFile(filepath.Join(dir, "old1.backup"), []byte("a"), 0o644)
	os.WriteFile(filepath.Join(dir, "old2.backup"), []byte("b"), 0o644)
	os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("c"), 0o644)

	saver := &fakeSaver{}
	if err := b.tick(saver); err != nil {
		t.Fatalf("tick: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	names := map[string]bool{}
	for _, e := range entries {
		names[e.Name()] = true
	}
	if names["old1.backup"] || names["old2.backup"] {
		t.Errorf("prior backups should be rotated out, got %v", names)
	}
	if !names["keep.txt"] {
		t.Error("non-backup files should not be touched")
	}
}

func TestAutoBackup_WriteEventSuspendsThenSettlesBack(t *testing.T) {
	dir := t.TempDir()
	projectPath := filepath.Join(dir, "movie.ofsproject")
	if err := os.WriteFile(projectPath, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	b, err := New(dir, projectPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Close()

	go b.Run(&fakeSaver{})

	if err := os.WriteFile(projectPath, []byte("y"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for !b.suspended && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if !b.suspended {
		t.Fatal("expected the write event to suspend autobackup")
	}

	deadline = time.Now().Add(writeSettle + time.Second)
	for b.suspended && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if b.suspended {
		t.Error("expected autobackup to resume once the settle window elapsed")
	}
}
