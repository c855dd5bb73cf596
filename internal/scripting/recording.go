// ABOUTME: Recording strategy buffers live input per-frame and commits it on Stop
// ABOUTME: Grounded on the Mouse/Controller recording sub-modes in ScriptPositionsOverlayMode.h

package scripting

import "ofsedit/internal/funscript"

// RecordingAxis identifies which input drives a recording sample.
type RecordingAxis int

const (
	AxisMouse RecordingAxis = iota
	AxisController
)

type recordedSample struct {
	valid bool
	x, y  float32
}

// Recording captures a per-frame buffer of live input samples while
// playback runs and commits them into one or two scripts on stop, grounded
// on the Mouse/Controller recording sub-modes described in the source's
// ScriptPositionsOverlayMode recording state.
type Recording struct {
	Axis       RecordingAxis
	TwoAxes    bool
	Invert     bool
	AutoOnPlay bool
	Deadzone   float32 // Controller axis only

	InsertDelay float32 // applied while playback is non-paused

	// SuspendAutosave, when set, is called with true on Start and false on
	// Stop so autosave never writes out a project mid-recording.
	SuspendAutosave func(bool)

	active      bool
	playing     bool
	frameTime   float32
	buf         []recordedSample
	frameIdx    int
	RollScript  Target // two-axis target for the roll/pitch-bound pair
	PitchScript Target
}

// Start allocates the per-frame buffer; frameCount is the video's total
// frame count at the given frameTime step.
func (m *Recording) Start(frameCount int, frameTime float32) {
	m.active = true
	m.frameTime = frameTime
	m.buf = make([]recordedSample, frameCount)
	m.frameIdx = 0
	if m.SuspendAutosave != nil {
		m.SuspendAutosave(true)
	}
}

// Sample records one frame's input; x is the single/primary axis, y is
// only consulted in two-axis mode.
func (m *Recording) Sample(x, y float32) {
	if !m.active || m.frameIdx >= len(m.buf) {
		return
	}
	if m.Axis == AxisController && absF32(x) < m.Deadzone {
		x = 0
	}
	if m.Invert {
		x, y = -x, -y
	}
	m.buf[m.frameIdx] = recordedSample{valid: true, x: x, y: y}
	m.frameIdx++
}

// Stop commits every valid sample into the bound script(s) and clears the
// buffer. Single-axis commits to target; two-axis commits to RollScript
// and PitchScript.
func (m *Recording) Stop(target Target) {
	for i, s := range m.buf {
		if !s.valid {
			continue
		}
		at := float32(i)*m.frameTime + m.playDelay()
		if m.TwoAxes {
			if m.RollScript != nil {
				m.RollScript.AddEditAction(funscript.NewAction(at, axisToPos(s.x)), m.frameTime)
			}
			if m.PitchScript != nil {
				m.PitchScript.AddEditAction(funscript.NewAction(at, axisToPos(s.y)), m.frameTime)
			}
		} else if target != nil {
			target.AddEditAction(funscript.NewAction(at, axisToPos(s.x)), m.frameTime)
		}
	}
	m.active = false
	m.buf = nil
	m.frameIdx = 0
	if m.SuspendAutosave != nil {
		m.SuspendAutosave(false)
	}
}

func (m *Recording) playDelay() float32 {
	if m.playing {
		return m.InsertDelay
	}
	return 0
}

// SetPlaying tells the mode whether playback is currently non-paused, used
// to decide whether the global insert delay applies.
func (m *Recording) SetPlaying(playing bool) { m.playing = playing }

func axisToPos(v float32) int {
	pos := int((v + 1) * 50)
	if pos < 0 {
		pos = 0
	} else if pos > 100 {
		pos = 100
	}
	return pos
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// AddEdit is a no-op for Recording: edits arrive exclusively through
// Sample/Stop while the buffer is active.
func (m *Recording) AddEdit(target Target, a funscript.Action, frameTime float32) {}

func (m *Recording) Tick(dt float32) {}
func (m *Recording) UndoHint()       {}
func (m *Recording) RedoHint()       {}
