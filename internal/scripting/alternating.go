// ABOUTME: Alternating strategy toggles/mirrors consecutive insert positions
// ABOUTME: Grounded on ScriptPositionsOverlayMode.h's next_is_low bookkeeping

package scripting

import "ofsedit/internal/funscript"

// Alternating mirrors or toggles incoming positions so consecutive inserts
// land on opposite sides of the stroke, grounded on the C++ mode's
// next_is_low bookkeeping in ScriptPositionsOverlayMode.h.
type Alternating struct {
	NextIsLow         bool
	ContextSensitive  bool
	FixedRangeEnabled bool
	FixedLow          int
	FixedHigh         int

	prev     funscript.Action
	hasPrev  bool
}

func (m *Alternating) AddEdit(target Target, a funscript.Action, frameTime float32) {
	pos := int(a.Pos)

	switch {
	case m.ContextSensitive && m.hasPrev:
		if m.prev.Pos <= 50 && a.Pos <= 50 {
			pos = 100 - pos
		} else if m.prev.Pos > 50 && a.Pos > 50 {
			pos = 100 - pos
		}
		// internal flag does not toggle on the context-sensitive path
	case m.FixedRangeEnabled:
		if m.NextIsLow {
			pos = m.FixedLow
		} else {
			pos = m.FixedHigh
		}
		m.NextIsLow = !m.NextIsLow
	default:
		if m.NextIsLow {
			pos = 100 - pos
		}
		m.NextIsLow = !m.NextIsLow
	}

	out := funscript.NewAction(a.At, pos)
	target.AddEditAction(out, frameTime)
	m.prev = out
	m.hasPrev = true
}

func (m *Alternating) Tick(dt float32) {}

func (m *Alternating) UndoHint() { m.NextIsLow = !m.NextIsLow }
func (m *Alternating) RedoHint() { m.NextIsLow = !m.NextIsLow }
