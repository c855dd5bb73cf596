// ABOUTME: DynamicInjection inserts a mid-stroke point ahead of every incoming action
// ABOUTME: Grounded on the same mode family in ScriptPositionsOverlayMode.h

package scripting

import "ofsedit/internal/funscript"

// DynamicInjection inserts an extra mid-stroke point ahead of every incoming
// action so strokes ramp at a target speed instead of jumping directly,
// grounded on the same mode family in ScriptPositionsOverlayMode.h.
type DynamicInjection struct {
	TargetSpeed   float32 // units/s, clamped to [50, 500] by the caller
	DirectionBias float32 // [-0.9, 0.9]
	Direction     int     // +1 or -1

	prev    funscript.Action
	hasPrev bool
}

func (m *DynamicInjection) AddEdit(target Target, a funscript.Action, frameTime float32) {
	if m.hasPrev {
		tMid := m.prev.At + (a.At-m.prev.At)*(0.5+0.5*m.DirectionBias)
		pos := float32(m.prev.Pos) + float32(m.Direction)*(tMid-m.prev.At)*m.TargetSpeed
		if pos < 0 {
			pos = 0
		} else if pos > 100 {
			pos = 100
		}
		target.AddEditAction(funscript.NewAction(tMid, int(pos)), frameTime)
	}
	target.AddEditAction(a, frameTime)
	m.prev = a
	m.hasPrev = true
}

func (m *DynamicInjection) Tick(dt float32) {}
func (m *DynamicInjection) UndoHint()       {}
func (m *DynamicInjection) RedoHint()       {}
