// ABOUTME: Script owns one axis's actions, selection, spline cache, and dirty state
// ABOUTME: Every mutation marks the index dirty and coalesces an ActionsChanged/SelectionChanged event

package funscript

import (
	"time"

	"ofsedit/internal/eventbus"
)

// Script owns a single funscript axis: its ordered Actions, an auxiliary
// Selection subset, title/path bookkeeping, and the spline cache. All
// mutating methods run only on the UI goroutine per spec.md section 5 and
// require no internal locking.
type Script struct {
	ID    int
	Title string
	Path  string // relative to the project directory
	Type  string // funscript metadata "type" field; inert, defaults to "basic"

	actions   *ActionSet
	selection *ActionSet
	spline    Spline

	UnsavedEdits bool
	EditTime     time.Time

	bus *eventbus.Bus
}

// NewScript returns an empty script identified by id, publishing coalesced
// events on bus (bus may be nil for standalone/test use).
func NewScript(id int, bus *eventbus.Bus) *Script {
	return &Script{
		ID:        id,
		Type:      "basic",
		actions:   NewActionSet(),
		selection: NewActionSet(),
		bus:       bus,
	}
}

// Actions exposes the underlying action set for read-only iteration.
func (s *Script) Actions() *ActionSet { return s.actions }

// Selection exposes the underlying selection set for read-only iteration.
func (s *Script) Selection() *ActionSet { return s.selection }

func (s *Script) touch() {
	s.UnsavedEdits = true
	s.EditTime = time.Now()
	s.spline.Invalidate()
}

func (s *Script) fireActionsChanged() {
	if s.bus != nil {
		s.bus.Coalesce(eventbus.Event{Kind: eventbus.ActionsChanged, ScriptID: s.ID})
	}
}

func (s *Script) fireSelectionChanged() {
	if s.bus != nil {
		s.bus.Coalesce(eventbus.Event{Kind: eventbus.SelectionChanged, ScriptID: s.ID})
	}
}

// PositionAt returns the piecewise-linear interpolated position at t,
// clamped to the endpoints.
func (s *Script) PositionAt(t float32) float32 {
	actions := s.actions.Actions()
	if len(actions) == 0 {
		return 0
	}
	if t <= actions[0].At {
		return float32(actions[0].Pos)
	}
	last := actions[len(actions)-1]
	if t >= last.At {
		return float32(last.Pos)
	}
	i := s.actions.upperBoundIdx(t)
	prev, next := actions[i-1], actions[i]
	if next.At == prev.At {
		return float32(prev.Pos)
	}
	frac := (t - prev.At) / (next.At - prev.At)
	return float32(prev.Pos) + frac*float32(next.Pos-prev.Pos)
}

// SplineAt samples the Catmull-Rom spline, returning a value in [0,1].
func (s *Script) SplineAt(t float32) float32 {
	return s.spline.Sample(s.actions, t)
}

// SplineClamped returns SplineAt scaled to [0,100] and clamped.
func (s *Script) SplineClamped(t float32) float32 {
	return clampF32(s.SplineAt(t)*100, 0, 100)
}

// AddAction inserts a unconditionally, overwriting any action at the same
// timestamp.
func (s *Script) AddAction(a Action) {
	s.actions.Insert(a)
	s.touch()
	s.fireActionsChanged()
}

// AddEditAction inserts a, or -- if an action already exists within
// frameTime/2 of a.At -- overwrites that neighbor's position instead of
// creating a second point, matching AddEditAction's dedup-by-proximity
// behavior.
func (s *Script) AddEditAction(a Action, frameTime float32) {
	if existing, ok := s.actions.Closest(a.At, frameTime/2); ok {
		existing.Pos = a.Pos
		s.actions.Insert(existing)
	} else {
		s.actions.Insert(a)
	}
	s.touch()
	s.fireActionsChanged()
}

// EditAction finds old by exact (At, Pos) match and replaces it with next,
// re-sorting as needed. Selection survives the edit iff the action is
// still findable by its new (At, Pos) afterward; otherwise the selection
// entry is removed and SelectionChanged fires -- the resolution of
// spec.md section 9's first Open Question.
func (s *Script) EditAction(old, next Action) bool {
	i, ok := s.actions.Find(old)
	if !ok || s.actions.Actions()[i].Pos != old.Pos {
		return false
	}
	s.actions.Erase(old)
	s.actions.Insert(next)
	s.touch()
	s.fireActionsChanged()

	if s.selection.ContainsByAtPos(old) {
		s.selection.Erase(old)
		if s.actions.ContainsByAtPos(next) {
			s.selection.Insert(next)
		}
		s.fireSelectionChanged()
	}
	return true
}

// AddRange merges range into the action set. When dedup is true, an
// existing action at the same timestamp is overwritten; when false, the
// incoming actions are appended unconditionally before a single re-sort
// (the bulk-load fast path).
func (s *Script) AddRange(rng []Action, dedup bool) {
	if dedup {
		for _, a := range rng {
			s.actions.Insert(a)
		}
	} else {
		s.actions.InsertUncheckedBulk(rng)
		s.actions.Sort()
	}
	s.touch()
	s.fireActionsChanged()
}

// RemoveRangeTime erases every action with t0 <= At <= t1.
func (s *Script) RemoveRangeTime(t0, t1 float32) {
	s.actions.EraseRange(t0, t1)
	s.pruneInvalidSelection()
	s.touch()
	s.fireActionsChanged()
}

// RemoveSelected removes every currently-selected action from Actions and
// clears the selection.
func (s *Script) RemoveSelected() {
	for _, a := range s.selection.Actions() {
		s.actions.Erase(a)
	}
	s.selection.SetActions(nil)
	s.touch()
	s.fireActionsChanged()
	s.fireSelectionChanged()
}

// RemoveActions removes every action in set from Actions, then prunes any
// now-dangling selection entries.
func (s *Script) RemoveActions(set *ActionSet) {
	for _, a := range set.Actions() {
		s.actions.Erase(a)
	}
	s.pruneInvalidSelection()
	s.touch()
	s.fireActionsChanged()
}

// pruneInvalidSelection drops any selection entry that no longer
// references a live action, firing SelectionChanged if anything changed.
func (s *Script) pruneInvalidSelection() {
	kept := s.selection.Actions()[:0:0]
	changed := false
	for _, a := range s.selection.Actions() {
		if s.actions.ContainsByAtPos(a) {
			kept = append(kept, a)
		} else {
			changed = true
		}
	}
	if changed {
		s.selection.SetActions(kept)
		s.fireSelectionChanged()
	}
}

// ---- selection API ----

// SelectAll replaces the selection with every action.
func (s *Script) SelectAll() {
	all := make([]Action, len(s.actions.Actions()))
	copy(all, s.actions.Actions())
	s.selection.SetActions(all)
	s.fireSelectionChanged()
}

// ClearSelection empties the selection.
func (s *Script) ClearSelection() {
	s.selection.SetActions(nil)
	s.fireSelectionChanged()
}

// Toggle flips a's selection membership and reports the new state.
func (s *Script) Toggle(a Action) bool {
	if _, ok := s.selection.Find(a); ok {
		s.selection.Erase(a)
		s.fireSelectionChanged()
		return false
	}
	s.selection.Insert(a)
	s.fireSelectionChanged()
	return true
}

// SetSelected adds or removes a from the selection according to flag.
func (s *Script) SetSelected(a Action, flag bool) {
	_, ok := s.selection.Find(a)
	switch {
	case ok && !flag:
		s.selection.Erase(a)
	case !ok && flag:
		s.selection.Insert(a)
	default:
		return
	}
	s.fireSelectionChanged()
}

// SelectTime selects every action with t0 <= At <= t1, optionally clearing
// any prior selection first.
func (s *Script) SelectTime(t0, t1 float32, clear bool) {
	if clear {
		s.selection.SetActions(nil)
	}
	for _, a := range s.actions.InRange(t0, t1) {
		s.selection.Insert(a)
	}
	s.fireSelectionChanged()
}
