// ABOUTME: Manager owns the active scripting Mode and the cross-cutting rules it shares with every strategy
// ABOUTME: Runs a mode exactly once per sample and replays its output verbatim to every mirrored target

package scripting

import "ofsedit/internal/funscript"

// Manager owns the active Mode and applies the cross-cutting rules every
// strategy shares: the global insert delay while playback runs, and mirror
// mode fanning a single insert out to every target passed to Insert.
// Manager takes no undo snapshot itself; the mirrored edits are not
// grouped into a single undo entry here.
type Manager struct {
	mode        Mode
	mirror      bool
	playing     bool
	insertDelay float32
}

// NewManager returns a Manager defaulting to the Default strategy.
func NewManager() *Manager {
	return &Manager{mode: Default{}}
}

func (m *Manager) SetMode(mode Mode) { m.mode = mode }
func (m *Manager) SetMirror(on bool) { m.mirror = on }
func (m *Manager) SetPlaying(playing bool) { m.playing = playing }
func (m *Manager) SetInsertDelay(seconds float32) { m.insertDelay = seconds }

// recorder is a Target that captures every action a Mode computes instead
// of applying it (DynamicInjection emits two per call: an injected
// mid-stroke point, then the triggering action), so Insert can run the
// (stateful) mode exactly once per triggering sample and replay its output
// verbatim to every mirrored target, rather than mutating the mode's
// internal state once per target.
type recorder struct {
	actions []funscript.Action
}

func (r *recorder) AddEditAction(a funscript.Action, frameTime float32) {
	r.actions = append(r.actions, a)
}

// Insert routes a, a raw (time, pos) sample, through the active mode once
// and, if mirror mode is on, applies every resulting action to every
// target in others as well as primary -- so mirrored scripts always see
// the identical action(s) Alternating/DynamicInjection computed, not a
// second, independently-advanced set.
func (m *Manager) Insert(primary Target, others []Target, a funscript.Action, frameTime float32) {
	if m.playing {
		a.At += m.insertDelay
	}
	var rec recorder
	m.mode.AddEdit(&rec, a, frameTime)
	for _, out := range rec.actions {
		primary.AddEditAction(out, frameTime)
		if m.mirror {
			for _, t := range others {
				t.AddEditAction(out, frameTime)
			}
		}
	}
}

func (m *Manager) Tick(dt float32)  { m.mode.Tick(dt) }
func (m *Manager) UndoHint()        { m.mode.UndoHint() }
func (m *Manager) RedoHint()        { m.mode.RedoHint() }

var _ Mode = Default{}
var _ Mode = (*Alternating)(nil)
var _ Mode = (*DynamicInjection)(nil)
var _ Mode = (*Recording)(nil)
