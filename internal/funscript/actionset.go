// ABOUTME: ActionSet is an ordered, deduplicated set of Actions keyed by time
// ABOUTME: Maintains a lazily-rebuilt time-to-index map to accelerate point lookups

package funscript

import "sort"

// ActionSet is a semantic ordered set of Actions keyed by At. Actions are
// always stored in strictly ascending At order with no two actions sharing
// an At value. A hash map from At to slice index is rebuilt lazily on the
// next Find after any mutation, mirroring the original ActionMap /
// ActionMapNeedsUpdate design: Find is O(1) once the map is warm and
// rebuilds the map in O(n) when it is stale. The bound and neighbor
// queries (Closest, NextAfter, PrevBefore, ...) use binary search.
type ActionSet struct {
	actions    []Action
	index      map[float32]int
	indexDirty bool
}

// NewActionSet returns an empty ActionSet.
func NewActionSet() *ActionSet {
	return &ActionSet{indexDirty: true}
}

// Len returns the number of actions.
func (s *ActionSet) Len() int { return len(s.actions) }

// Actions returns the backing slice. Callers must not mutate it directly.
func (s *ActionSet) Actions() []Action { return s.actions }

// Clone returns a deep copy, used by the undo stack to snapshot state.
func (s *ActionSet) Clone() *ActionSet {
	cp := make([]Action, len(s.actions))
	copy(cp, s.actions)
	return &ActionSet{actions: cp, indexDirty: true}
}

// SetActions replaces the backing slice wholesale (used by undo/redo restore
// and by bulk loaders). The slice must already be sorted by At.
func (s *ActionSet) SetActions(actions []Action) {
	s.actions = actions
	s.indexDirty = true
}

func (s *ActionSet) markDirty() { s.indexDirty = true }

func (s *ActionSet) rebuildIndex() {
	s.index = make(map[float32]int, len(s.actions))
	for i, a := range s.actions {
		s.index[a.At] = i
	}
	s.indexDirty = false
}

// lowerBoundIdx returns the index of the first action with At >= t.
func (s *ActionSet) lowerBoundIdx(t float32) int {
	return sort.Search(len(s.actions), func(i int) bool { return s.actions[i].At >= t })
}

// upperBoundIdx returns the index of the first action with At > t.
func (s *ActionSet) upperBoundIdx(t float32) int {
	return sort.Search(len(s.actions), func(i int) bool { return s.actions[i].At > t })
}

// Insert inserts a, or replaces the existing entry at the same At, keeping
// the set sorted. Negative At is silently ignored.
func (s *ActionSet) Insert(a Action) {
	if a.At < 0 {
		return
	}
	a.Pos = int16(clampInt(int(a.Pos), 0, 100))

	i := s.lowerBoundIdx(a.At)
	if i < len(s.actions) && s.actions[i].At == a.At {
		s.actions[i] = a
		s.markDirty()
		return
	}
	s.actions = append(s.actions, Action{})
	copy(s.actions[i+1:], s.actions[i:])
	s.actions[i] = a
	s.markDirty()
}

// InsertUncheckedBulk appends a sequence without sorting. The caller must
// call Sort afterward; this two-phase design avoids O(n^2) behavior when
// loading large scripts one action at a time.
func (s *ActionSet) InsertUncheckedBulk(seq []Action) {
	s.actions = append(s.actions, seq...)
	s.markDirty()
}

// Sort stably orders the backing slice by At. Used after InsertUncheckedBulk.
func (s *ActionSet) Sort() {
	sort.SliceStable(s.actions, func(i, j int) bool { return s.actions[i].At < s.actions[j].At })
	s.markDirty()
}

// Erase removes the entry equal to a, if present.
func (s *ActionSet) Erase(a Action) {
	if i, ok := s.Find(a); ok {
		s.actions = append(s.actions[:i], s.actions[i+1:]...)
		s.markDirty()
	}
}

// EraseRange removes all actions with t0 <= At <= t1.
func (s *ActionSet) EraseRange(t0, t1 float32) {
	lo := s.lowerBoundIdx(t0)
	hi := s.upperBoundIdx(t1)
	if lo >= hi {
		return
	}
	s.actions = append(s.actions[:lo], s.actions[hi:]...)
	s.markDirty()
}

// Find returns the index of the entry equal by At (ignoring Pos, matching
// the original getAction semantics) and whether it was found.
func (s *ActionSet) Find(a Action) (int, bool) {
	if s.indexDirty {
		s.rebuildIndex()
	}
	i, ok := s.index[a.At]
	if !ok {
		return 0, false
	}
	return i, true
}

// Closest returns the action with the smallest |At-t| within tol,
// preferring the smaller error on ties.
func (s *ActionSet) Closest(t, tol float32) (Action, bool) {
	if len(s.actions) == 0 {
		return Action{}, false
	}
	i := s.lowerBoundIdx(t)
	var best Action
	bestErr := float32(-1)
	found := false
	for _, cand := range []int{i - 1, i, i + 1} {
		if cand < 0 || cand >= len(s.actions) {
			continue
		}
		err := absF32(s.actions[cand].At - t)
		if err <= tol && (!found || err < bestErr) {
			best = s.actions[cand]
			bestErr = err
			found = true
		}
	}
	return best, found
}

// NextAfter returns the first action with At strictly greater than t.
func (s *ActionSet) NextAfter(t float32) (Action, bool) {
	i := s.upperBoundIdx(t)
	if i >= len(s.actions) {
		return Action{}, false
	}
	return s.actions[i], true
}

// PrevBefore returns the last action with At strictly less than t.
func (s *ActionSet) PrevBefore(t float32) (Action, bool) {
	i := s.lowerBoundIdx(t)
	if i == 0 {
		return Action{}, false
	}
	return s.actions[i-1], true
}

// LowerBound returns the index of the first action with At >= t.
func (s *ActionSet) LowerBound(t float32) int { return s.lowerBoundIdx(t) }

// UpperBound returns the index of the first action with At > t.
func (s *ActionSet) UpperBound(t float32) int { return s.upperBoundIdx(t) }

// InRange returns a copy of the actions with t0 <= At <= t1 inclusive of
// both endpoints (spec.md's resolution of the off-by-one Open Question).
func (s *ActionSet) InRange(t0, t1 float32) []Action {
	lo := s.lowerBoundIdx(t0)
	hi := s.upperBoundIdx(t1)
	out := make([]Action, hi-lo)
	copy(out, s.actions[lo:hi])
	return out
}

// ContainsByAtPos reports whether an action with the exact (At, Pos) pair
// of other exists in the set. Used to validate selection entries.
func (s *ActionSet) ContainsByAtPos(other Action) bool {
	i, ok := s.Find(other)
	return ok && s.actions[i].Pos == other.Pos
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
