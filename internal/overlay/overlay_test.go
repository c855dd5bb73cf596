// ABOUTME: Tests for the Frame and Tempo overlay grids
// ABOUTME: Covers the literal tempo-snapping scenario from the editing-engine spec

package overlay

import "testing"

func TestFrameGrid_StepsByDelta(t *testing.T) {
	g := FrameGrid{MediaFPS: 25}
	if got := g.StepForward(1.0); got != 1.04 {
		t.Errorf("StepForward = %v, want 1.04", got)
	}
	if got := g.StepBackward(1.0); got != 0.96 {
		t.Errorf("StepBackward = %v, want 0.96", got)
	}
}

func TestFrameGrid_OverrideWins(t *testing.T) {
	g := FrameGrid{MediaFPS: 25, FPSOverride: 50}
	if got := g.StepForward(0); got != 0.02 {
		t.Errorf("StepForward with override = %v, want 0.02", got)
	}
}

func TestTempoGrid_SnapsForwardPastOnBeatPlayhead(t *testing.T) {
	g := TempoGrid{BPM: 120, BeatOffset: 0, MeasureIndex: 2}

	got := g.StepForward(1.3)
	if diff := got - 1.5; diff > 1e-4 || diff < -1e-4 {
		t.Fatalf("StepForward(1.3) = %v, want 1.5", got)
	}

	got = g.StepForward(got)
	if diff := got - 2.0; diff > 1e-4 || diff < -1e-4 {
		t.Fatalf("StepForward(1.5) = %v, want 2.0 (epsilon-guarded)", got)
	}
}

func TestTempoGrid_StepBackwardIsSymmetric(t *testing.T) {
	g := TempoGrid{BPM: 120, BeatOffset: 0, MeasureIndex: 2}
	got := g.StepBackward(2.0)
	if diff := got - 1.5; diff > 1e-4 || diff < -1e-4 {
		t.Fatalf("StepBackward(2.0) = %v, want 1.5", got)
	}
}
