// ABOUTME: Defines the Mode interface dispatched for the four insertion strategies
// ABOUTME: Replaces the original BaseOverlay inheritance tree with a thin interface (REDESIGN FLAG)

// Package scripting implements the action-insertion strategies that decide
// what (time, pos) actually lands in the script when the user triggers an
// insert: Default, Alternating, DynamicInjection, and Recording.
package scripting

import "ofsedit/internal/funscript"

// Target receives an edit produced by a Mode. Scripts implement this
// directly; the mirror-mode wrapper in manager.go fans a single edit out
// to every loaded script.
type Target interface {
	AddEditAction(a funscript.Action, frameTime float32)
}

// Mode is the strategy interface every insertion mode implements. Modes
// are owned by value (no virtual destruction needed, per spec.md's
// REDESIGN FLAG on the C++ inheritance tree).
type Mode interface {
	// AddEdit translates an incoming (time, pos) sample into the actual
	// edit(s) applied to target, given the current playback frame time.
	AddEdit(target Target, a funscript.Action, frameTime float32)
	// Tick advances any per-frame internal state. Every current mode
	// implements it as a no-op; Recording takes its per-frame input
	// through Sample instead.
	Tick(dt float32)
	// UndoHint/RedoHint let stateful modes (Alternating) roll their
	// internal flag back in step with the undo stack.
	UndoHint()
	RedoHint()
}
