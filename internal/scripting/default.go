// ABOUTME: Default strategy is a plain pass-through to Script.AddEditAction
// ABOUTME: Active whenever no other scripting mode has been selected

package scripting

import "ofsedit/internal/funscript"

// Default is a plain pass-through to Script.AddEditAction, used whenever no
// other strategy is active.
type Default struct{}

func (Default) AddEdit(target Target, a funscript.Action, frameTime float32) {
	target.AddEditAction(a, frameTime)
}

func (Default) Tick(dt float32) {}
func (Default) UndoHint()       {}
func (Default) RedoHint()       {}
