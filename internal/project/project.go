// ABOUTME: Project container owning the media reference, scripts, metadata, and timeline state
// ABOUTME: Grounded on OFS_Project.h's ownership shape and the teacher's playlist aggregate

// Package project implements the durable bundle that owns a media
// reference, one or more scripts, metadata, bookmarks, tempo, and the
// simulator/window state carried alongside them.
package project

import (
	"fmt"
	"os"
	"sync"

	"ofsedit/internal/eventbus"
	"ofsedit/internal/funscript"
	"ofsedit/internal/worker"
)

// savePool backs every Project's SaveWorker; one shared pool is enough
// since a save is a short-lived write, not a CPU-bound job needing one
// worker per project.
var (
	savePoolOnce sync.Once
	savePool     *worker.Pool
)

func saveWorkerPool() *worker.Pool {
	savePoolOnce.Do(func() { savePool = worker.NewPool(4) })
	return savePool
}

// BookmarkType distinguishes a plain marker from a clip-range endpoint.
type BookmarkType int

const (
	Regular BookmarkType = iota
	StartMarker
	EndMarker
)

// Bookmark marks a point in time, optionally paired into a clip range. A
// name ending in "_start" upgrades its paired neighbor to EndMarker per
// the naming convention carried over from the source.
type Bookmark struct {
	Name string
	At   float32
	Type BookmarkType
}

// Tempo holds the musical grid parameters consumed by overlay.TempoGrid.
type Tempo struct {
	BPM          float32
	BeatOffset   float32
	MeasureIndex int
}

// Metadata is the descriptive information carried both in the project
// container and duplicated per-script in each funscript file.
type Metadata struct {
	Title       string
	Creator     string
	ScriptURL   string
	VideoURL    string
	Tags        []string
	Performers  []string
	Description string
	License     string
	Notes       string
	DurationSec int
}

// SimulatorState and WindowState are opaque blobs the core persists but
// never interprets; the 3D simulator and window layout are out of scope.
type SimulatorState struct{ Raw []byte }
type WindowState struct{ Raw []byte }

// Project owns the media path, scripts, and surrounding editing state for
// one authoring session.
type Project struct {
	MediaPath string // relative to the project file's directory

	scripts []*funscript.Script
	Meta    Metadata
	Bookmarks []Bookmark
	Tempo     Tempo

	Simulator SimulatorState
	Window    WindowState

	ActiveScriptIndex     int
	LastPlayerPositionSec float32

	bus *eventbus.Bus

	saveMu     sync.Mutex
	saveWorker *worker.SaveWorker
}

// New creates an empty project with a single root script and the given
// media path.
func New(mediaPath string, bus *eventbus.Bus) *Project {
	p := &Project{MediaPath: mediaPath, bus: bus}
	p.scripts = []*funscript.Script{funscript.NewScript(0, bus)}
	return p
}

func (p *Project) Scripts() []*funscript.Script { return p.scripts }

func (p *Project) Script(idx int) (*funscript.Script, error) {
	if idx < 0 || idx >= len(p.scripts) {
		return nil, fmt.Errorf("project: script index %d out of range [0,%d)", idx, len(p.scripts))
	}
	return p.scripts[idx], nil
}

// AddScript appends a script at the given path. If the path is already
// present in the project, nothing is added and the existing script is
// returned (DuplicatePath is silently ignored per the error-handling design).
func (p *Project) AddScript(path string) *funscript.Script {
	for _, s := range p.scripts {
		if s.Path == path {
			return s
		}
	}
	s := funscript.NewScript(len(p.scripts), p.bus)
	s.Path = path
	p.scripts = append(p.scripts, s)
	return s
}

// RemoveScript removes the script at idx; forbidden if it would leave the
// project with zero scripts.
func (p *Project) RemoveScript(idx int) error {
	if len(p.scripts) <= 1 {
		return fmt.Errorf("project: cannot remove the last script")
	}
	if idx < 0 || idx >= len(p.scripts) {
		return fmt.Errorf("project: script index %d out of range", idx)
	}
	p.scripts = append(p.scripts[:idx], p.scripts[idx+1:]...)
	if p.ActiveScriptIndex >= len(p.scripts) {
		p.ActiveScriptIndex = len(p.scripts) - 1
	}
	return nil
}

// HasUnsavedEdits reports whether any owned script is dirty.
func (p *Project) HasUnsavedEdits() bool {
	for _, s := range p.scripts {
		if s.UnsavedEdits {
			return true
		}
	}
	return false
}

func (p *Project) clearDirty() {
	for _, s := range p.scripts {
		s.UnsavedEdits = false
	}
}

// Load parses a versioned binary container at path into a new Project.
func Load(path string, bus *eventbus.Bus) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("project: load %s: %w", path, err)
	}
	return Deserialize(data, bus)
}

// Save serializes p to an in-memory buffer and hands it to the project's
// SaveWorker, which holds p's save mutex for the duration of the write. On
// success, clearDirty clears unsaved_edits on every script iff
// clearDirtyFlag is true; a non-dirty-clearing save is used by AutoBackup.
func (p *Project) Save(path string, clearDirtyFlag bool) error {
	p.saveMu.Lock()
	defer p.saveMu.Unlock()

	if p.saveWorker == nil {
		p.saveWorker = worker.NewSaveWorker(saveWorkerPool(), nil)
	}

	buf := Serialize(p)
	done := make(chan error, 1)
	p.saveWorker.OnDone = func(_ string, err error) { done <- err }
	p.saveWorker.Submit(path, buf)
	if err := <-done; err != nil {
		return err
	}

	if p.bus != nil {
		p.bus.Publish(eventbus.Event{Kind: eventbus.ProjectSaved})
	}
	if clearDirtyFlag {
		p.clearDirty()
	}
	return nil
}
