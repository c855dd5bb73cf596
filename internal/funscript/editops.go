// ABOUTME: Selection-shaped editing algorithms: range extend, equalize, invert, top/mid/bottom, isolate, repeat-stroke, snapped move
// ABOUTME: Grounded on the original Funscript.cpp selection algorithms, generalized to the Go ActionSet

package funscript

// SelectTop walks each interior selection triple and deselects the lower of
// its first two points, plus the third point when that one is lower still,
// so that local maxima stay selected.
func (s *Script) SelectTop() {
	s.pickExtrema(func(a, b Action) bool { return a.Pos < b.Pos })
}

// SelectBottom is the symmetric operation for local minima.
func (s *Script) SelectBottom() {
	s.pickExtrema(func(a, b Action) bool { return a.Pos > b.Pos })
}

// pickExtrema implements the shared shape of SelectTop/SelectBottom: walk
// interior selection triples and deselect the worse (per worse) of prev and
// cur, plus next when next is worse than that one, leaving the extremum.
func (s *Script) pickExtrema(worse func(a, b Action) bool) {
	sel := s.selection.Actions()
	if len(sel) < 3 {
		return
	}
	var deselect []Action
	for i := 1; i < len(sel)-1; i++ {
		prev, cur, next := sel[i-1], sel[i], sel[i+1]
		min1 := prev
		if worse(cur, min1) {
			min1 = cur
		}
		min2 := min1
		if worse(next, min2) {
			min2 = next
		}
		deselect = append(deselect, min1)
		if min1.At != min2.At {
			deselect = append(deselect, min2)
		}
	}
	for _, a := range deselect {
		s.selection.Erase(a)
	}
	s.fireSelectionChanged()
}

// SelectMid selects the interior points that are neither a SelectTop nor a
// SelectBottom result: selection - top - bottom.
func (s *Script) SelectMid() {
	if len(s.selection.Actions()) < 3 {
		return
	}
	original := append([]Action(nil), s.selection.Actions()...)

	s.selection.SetActions(append([]Action(nil), original...))
	s.pickExtrema(func(a, b Action) bool { return a.Pos < b.Pos })
	top := append([]Action(nil), s.selection.Actions()...)

	s.selection.SetActions(append([]Action(nil), original...))
	s.pickExtrema(func(a, b Action) bool { return a.Pos > b.Pos })
	bottom := append([]Action(nil), s.selection.Actions()...)

	inSet := func(set []Action, a Action) bool {
		for _, x := range set {
			if x.Equal(a) {
				return true
			}
		}
		return false
	}

	mid := original[:0:0]
	for _, a := range original {
		if !inSet(top, a) && !inSet(bottom, a) {
			mid = append(mid, a)
		}
	}
	s.selection.SetActions(mid)
	s.fireSelectionChanged()
}

// RangeExtend rescales each half-stroke of the selected run so its extrema
// move outward by extension, preserving the relative position of interior
// points within the stroke. Clears the selection afterward, matching the
// original RangeExtendSelection.
func (s *Script) RangeExtend(extension int) {
	sel := s.selection.Actions()
	if len(sel) == 0 || extension == 0 {
		s.selection.SetActions(nil)
		return
	}

	type direction int
	const (
		dirNone direction = iota
		dirUp
		dirDown
	)

	stretch := func(pos, lo, hi, ext int) int {
		newHigh := clampInt(hi+ext, 0, 100)
		newLow := clampInt(lo-ext, 0, 100)
		if hi == lo {
			return clampInt(pos, 0, 100)
		}
		relative := float64(pos-lo) / float64(hi-lo)
		newPos := relative*float64(newHigh-newLow) + float64(newLow)
		return clampInt(int(newPos), 0, 100)
	}

	out := append([]Action(nil), sel...)

	lastExtremeIdx := 0
	lastValue := int(out[0].Pos)
	lastExtremeValue := lastValue
	lo, hi := lastValue, lastValue
	dir := dirNone

	for i := range out {
		cur := int(out[i].Pos)
		switch dir {
		case dirNone:
			if cur < lastExtremeValue {
				dir = dirDown
			} else if cur > lastExtremeValue {
				dir = dirUp
			}
		default:
			if (cur < lastValue && dir == dirUp) || (cur > lastValue && dir == dirDown) || i == len(out)-1 {
				for k := lastExtremeIdx + 1; k < i; k++ {
					out[k].Pos = int16(stretch(int(out[k].Pos), lo, hi, extension))
				}
				lastExtremeValue = int(out[i-1].Pos)
				lastExtremeIdx = i - 1
				hi, lo = lastExtremeValue, lastExtremeValue
				if dir == dirUp {
					dir = dirDown
				} else {
					dir = dirUp
				}
			}
		}
		lastValue = cur
		if lastValue > hi {
			hi = lastValue
		}
		if lastValue < lo {
			lo = lastValue
		}
	}

	for _, a := range sel {
		s.actions.Erase(a)
	}
	s.selection.SetActions(nil)
	for _, a := range out {
		s.actions.Insert(a)
	}
	s.touch()
	s.fireActionsChanged()
	s.fireSelectionChanged()
}

// Equalize redistributes interior selected timestamps uniformly across
// [first.At, last.At], leaving endpoints and all positions unchanged.
// Requires at least 3 selected actions.
func (s *Script) Equalize() {
	sel := s.selection.Actions()
	if len(sel) < 3 {
		return
	}
	cp := append([]Action(nil), sel...)
	first, last := cp[0], cp[len(cp)-1]
	step := (last.At - first.At) / float32(len(cp)-1)

	for _, a := range cp {
		s.actions.Erase(a)
	}
	s.selection.SetActions(nil)

	for i := 1; i < len(cp)-1; i++ {
		cp[i].At = first.At + float32(i)*step
	}
	for _, a := range cp {
		s.actions.Insert(a)
	}
	s.selection.SetActions(cp)
	s.touch()
	s.fireActionsChanged()
	s.fireSelectionChanged()
}

// Invert flips Pos' = 100 - Pos for every selected action, leaving
// timestamps unchanged.
func (s *Script) Invert() {
	sel := s.selection.Actions()
	if len(sel) == 0 {
		return
	}
	cp := append([]Action(nil), sel...)
	for _, a := range cp {
		s.actions.Erase(a)
	}
	s.selection.SetActions(nil)

	for i := range cp {
		cp[i].Pos = int16(clampInt(100-int(cp[i].Pos), 0, 100))
	}
	for _, a := range cp {
		s.actions.Insert(a)
	}
	s.selection.SetActions(cp)
	s.touch()
	s.fireActionsChanged()
	s.fireSelectionChanged()
}

// MoveSelectionTime shifts every selected action's At by timeOffset,
// clamped so the moving block never crosses its unselected neighbors
// closer than frameTime. Returns the (possibly reduced) offset actually
// applied.
func (s *Script) MoveSelectionTime(timeOffset, frameTime float32) float32 {
	sel := s.selection.Actions()
	if len(sel) == 0 {
		return 0
	}

	if len(sel) == s.actions.Len() {
		for i := range s.actions.actions {
			s.actions.actions[i].At += timeOffset
		}
		s.actions.markDirty()
		s.SelectAll()
		s.touch()
		s.fireActionsChanged()
		return timeOffset
	}

	prev, hasPrev := s.actions.PrevBefore(sel[0].At)
	next, hasNext := s.actions.NextAfter(sel[len(sel)-1].At)

	offset := timeOffset
	if timeOffset > 0 {
		if hasNext {
			maxBound := next.At - frameTime
			if room := maxBound - sel[len(sel)-1].At; room < offset {
				offset = room
			}
		}
	} else if hasPrev {
		minBound := prev.At + frameTime
		if room := minBound - sel[0].At; room > offset {
			offset = room
		}
	}

	moving := append([]Action(nil), sel...)
	for _, a := range moving {
		s.actions.Erase(a)
	}
	s.selection.SetActions(nil)
	for _, a := range moving {
		a.At += offset
		s.actions.Insert(a)
		s.selection.Insert(a)
	}
	s.touch()
	s.fireActionsChanged()
	s.fireSelectionChanged()
	return offset
}

// LastStroke walks backward from the action closest to t past the first
// completed stroke, returning its actions newest-first (stroke[0] is the
// latest point, the last element the earliest). Used by
// RepeatLastStroke. Mirrors GetLastStroke exactly, including its
// assumption that the closest action sits on an extremum.
func (s *Script) LastStroke(t float32) []Action {
	actions := s.actions.Actions()
	if len(actions) < 2 {
		return nil
	}

	closest := 0
	bestErr := absF32(actions[0].At - t)
	for i := 1; i < len(actions); i++ {
		if e := absF32(actions[i].At - t); e < bestErr {
			bestErr = e
			closest = i
		}
	}
	if closest-1 <= 0 {
		return nil
	}

	goingUp := actions[closest-1].Pos > actions[closest].Pos
	prevPos := actions[closest-1].Pos
	idx := closest
	for search := closest - 1; search > 0; search-- {
		if (actions[search-1].Pos > prevPos) != goingUp {
			break
		}
		if actions[search-1].Pos == prevPos && actions[search-1].Pos != actions[search].Pos {
			break
		}
		prevPos = actions[search-1].Pos
		idx = search
	}

	idx--
	if idx <= 0 {
		return nil
	}
	goingUp = !goingUp
	prevPos = actions[idx].Pos

	var stroke []Action
	stroke = append(stroke, actions[idx])
	idx--
	for {
		up := actions[idx].Pos > prevPos
		if up != goingUp || actions[idx].Pos == prevPos {
			break
		}
		stroke = append(stroke, actions[idx])
		prevPos = actions[idx].Pos
		if idx == 0 {
			break
		}
		idx--
	}
	return stroke
}

// RepeatLastStroke appends the last completed stroke after playhead t,
// preserving intra-stroke timing, and returns the new playhead position
// (stroke.front().At + offset) and whether anything was appended.
func (s *Script) RepeatLastStroke(t, frameTime float32) (float32, bool) {
	stroke := s.LastStroke(t)
	if len(stroke) <= 1 {
		return t, false
	}
	offset := t - stroke[len(stroke)-1].At
	_, onAction := s.actions.Closest(t, frameTime)

	start := len(stroke) - 1
	if onAction {
		start = len(stroke) - 2
	}
	for i := start; i >= 0; i-- {
		a := stroke[i]
		a.At += offset
		s.actions.Insert(a)
	}
	s.touch()
	s.fireActionsChanged()
	return stroke[0].At + offset, true
}

// Isolate removes the immediate neighbors of the action closest to t,
// selected or not, leaving that action alone in its local neighborhood.
func (s *Script) Isolate(t float32) {
	closest, ok := s.actions.Closest(t, 1<<30)
	if !ok {
		return
	}
	prev, hasPrev := s.actions.PrevBefore(closest.At - 0.001)
	next, hasNext := s.actions.NextAfter(closest.At + 0.001)
	if hasPrev {
		s.actions.Erase(prev)
	}
	if hasNext {
		s.actions.Erase(next)
	}
	if hasPrev || hasNext {
		s.pruneInvalidSelection()
		s.touch()
		s.fireActionsChanged()
	}
}
