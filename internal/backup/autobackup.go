// ABOUTME: Periodic rotating project backup, grounded on the teacher's fsnotify-based watcher
// ABOUTME: Every 60s a non-dirty-clearing save lands in a per-video backup directory

package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	interval = 60 * time.Second
	backupExt = ".backup"

	// writeSettle is how long Run keeps autosave suspended after seeing a
	// write to the watched project file, on the assumption the external
	// tool doing the writing needs a moment to finish.
	writeSettle = 2 * time.Second
)

// Saver matches project.Project.Save's signature without importing the
// project package, keeping backup decoupled from the container format.
type Saver interface {
	Save(path string, clearDirty bool) error
}

// AutoBackup periodically writes a rotating backup of the loaded
// project. It can be suspended (e.g. while Recording is active) via a
// single status flag, matching the spec's "one-bit application status
// flag" wording.
type AutoBackup struct {
	dir         string
	projectPath string
	startedAt   time.Time
	suspended   bool

	watcher *fsnotify.Watcher
	stop    chan struct{}
}

// New creates an AutoBackup rooted at backupDir (the per-video backup
// directory, e.g. backup/<media_name>/). It watches projectPath's parent
// directory with fsnotify so a write to the project file by another
// process (an external editor, a sync client) suspends autosave for a
// short settle window instead of racing that write.
func New(backupDir, projectPath string) (*AutoBackup, error) {
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("backup: create %s: %w", backupDir, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("backup: new watcher: %w", err)
	}
	watchDir := filepath.Dir(projectPath)
	if err := w.Add(watchDir); err != nil {
		w.Close()
		return nil, fmt.Errorf("backup: watch %s: %w", watchDir, err)
	}
	return &AutoBackup{
		dir:         backupDir,
		projectPath: projectPath,
		startedAt:   time.Now(),
		watcher:     w,
		stop:        make(chan struct{}),
	}, nil
}

// Suspend toggles the one-bit suspend flag; Run skips ticks while set.
func (b *AutoBackup) Suspend(on bool) { b.suspended = on }

// Run blocks, firing a backup tick every interval until Close is called.
// A Write/Create event on the watched project path suspends ticks for
// writeSettle, so autosave never races an external tool's write.
func (b *AutoBackup) Run(p Saver) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var settle *time.Timer
	defer func() {
		if settle != nil {
			settle.Stop()
		}
	}()
	settleC := func() <-chan time.Time {
		if settle == nil {
			return nil
		}
		return settle.C
	}

	for {
		select {
		case <-ticker.C:
			if b.suspended {
				continue
			}
			if err := b.tick(p); err != nil {
				continue // logged by the caller via the event bus in practice
			}
		case ev, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(b.projectPath) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			b.Suspend(true)
			if settle != nil {
				settle.Stop()
			}
			settle = time.NewTimer(writeSettle)
		case <-settleC():
			b.Suspend(false)
			settle = nil
		case <-b.stop:
			return
		}
	}
}

// Close stops Run and releases the fsnotify watcher.
func (b *AutoBackup) Close() {
	close(b.stop)
	b.watcher.Close()
}

func (b *AutoBackup) tick(p Saver) error {
	if err := b.rotate(); err != nil {
		return err
	}
	name := fmt.Sprintf("%d-%d%s", b.startedAt.Unix(), time.Now().Unix(), backupExt)
	// AutoBackup never clears unsaved_edits, per spec.
	return p.Save(filepath.Join(b.dir, name), false)
}

// rotate deletes all prior .backup files in the directory.
func (b *AutoBackup) rotate() error {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return fmt.Errorf("backup: list %s: %w", b.dir, err)
	}
	var stale []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), backupExt) {
			stale = append(stale, e.Name())
		}
	}
	sort.Strings(stale)
	for _, name := range stale {
		if err := os.Remove(filepath.Join(b.dir, name)); err != nil {
			return fmt.Errorf("backup: remove %s: %w", name, err)
		}
	}
	return nil
}
