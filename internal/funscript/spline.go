// ABOUTME: Catmull-Rom spline sampling over an ActionSet's positions
// ABOUTME: Caches the last bracketing index to keep playback scans O(1)

package funscript

// Spline samples a script's position track with a Catmull-Rom curve in
// normalized [0,1] position space, using the four nearest neighbors around
// the bracketing pair. It keeps a one-entry cache of the last bracketing
// index so that monotonic playback (the common case) only ever does a
// cheap comparison instead of a binary search.
type Spline struct {
	cacheIdx int
}

// Sample returns the interpolated position in [0,1] at time t. The cache is
// invalidated implicitly: if the cached bracket no longer contains t, a
// fresh lookup is performed and the cache updated.
func (sp *Spline) Sample(s *ActionSet, t float32) float32 {
	actions := s.Actions()
	n := len(actions)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return float32(actions[0].Pos) / 100
	}
	if sp.cacheIdx+1 >= n {
		sp.cacheIdx = 0
	}

	if actions[sp.cacheIdx].At <= t && actions[sp.cacheIdx+1].At >= t {
		return catmullRomAt(actions, sp.cacheIdx, t)
	}
	if sp.cacheIdx+2 < n && actions[sp.cacheIdx+1].At <= t && actions[sp.cacheIdx+2].At >= t {
		sp.cacheIdx++
		return catmullRomAt(actions, sp.cacheIdx, t)
	}

	i := s.upperBoundIdx(t)
	if i >= n {
		return float32(actions[n-1].Pos) / 100
	}
	if i == 0 {
		return float32(actions[0].Pos) / 100
	}
	i--
	sp.cacheIdx = i
	return catmullRomAt(actions, i, t)
}

// Invalidate resets the bracket cache; called whenever the owning script's
// index-dirty flag is set so a stale cache never samples a moved action.
func (sp *Spline) Invalidate() { sp.cacheIdx = 0 }

func catmullRomAt(actions []Action, i int, t float32) float32 {
	n := len(actions)
	i0 := clampInt(i-1, 0, n-1)
	i1 := clampInt(i, 0, n-1)
	i2 := clampInt(i+1, 0, n-1)
	i3 := clampInt(i+2, 0, n-1)

	v0 := float32(actions[i0].Pos) / 100
	v1 := float32(actions[i1].Pos) / 100
	v2 := float32(actions[i2].Pos) / 100
	v3 := float32(actions[i3].Pos) / 100

	span := actions[i2].At - actions[i1].At
	var local float32
	if span != 0 {
		local = (t - actions[i1].At) / span
	}
	return catmullRom(v0, v1, v2, v3, local)
}

// catmullRom evaluates the uniform Catmull-Rom spline through four control
// points at parameter t in [0,1].
func catmullRom(p0, p1, p2, p3, t float32) float32 {
	t2 := t * t
	t3 := t2 * t
	return 0.5 * ((2 * p1) +
		(-p0+p2)*t +
		(2*p0-5*p1+4*p2-p3)*t2 +
		(-p0+3*p1-3*p2+p3)*t3)
}
