// ABOUTME: Tests for the Catmull-Rom spline sampler and its bracket cache
// ABOUTME: Checks endpoint handling and that scanning forward stays in range

package funscript

import "testing"

func TestSpline_EmptyAndSinglePoint(t *testing.T) {
	s := NewActionSet()
	var sp Spline
	if got := sp.Sample(s, 1); got != 0 {
		t.Errorf("empty set should sample 0, got %v", got)
	}
	s.Insert(NewAction(1, 50))
	if got := sp.Sample(s, 5); got != 0.5 {
		t.Errorf("single point should always sample pos/100, got %v", got)
	}
}

func TestSpline_StaysInUnitRangeAcrossScan(t *testing.T) {
	s := NewActionSet()
	for i, pos := range []int{0, 100, 0, 100, 0} {
		s.Insert(NewAction(float32(i), pos))
	}
	var sp Spline
	for tMilli := 0; tMilli <= 4000; tMilli += 50 {
		got := sp.Sample(s, float32(tMilli)/1000)
		if got < -0.2 || got > 1.2 {
			t.Fatalf("sample at t=%v out of plausible range: %v", tMilli, got)
		}
	}
}
