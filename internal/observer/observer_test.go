// ABOUTME: Tests for the observer's pure rendering helpers
// ABOUTME: Does not drive the bubbletea program loop, only the View/HeatmapLine functions

package observer

import (
	"strings"
	"testing"

	"ofsedit/internal/eventbus"
	"ofsedit/internal/funscript"
	"ofsedit/internal/project"
)

func TestHeatmapLine_ProducesWidthLongRow(t *testing.T) {
	actions := []funscript.Action{
		funscript.NewAction(0, 0), funscript.NewAction(1, 100), funscript.NewAction(2, 0),
	}
	line := HeatmapLine(actions, 5, 20)
	if len(line) != 20 {
		t.Errorf("len = %d, want 20", len(line))
	}
}

func TestModel_ViewShowsScriptStats(t *testing.T) {
	bus := eventbus.New()
	proj := project.New("movie.mp4", bus)
	proj.Scripts()[0].AddAction(funscript.NewAction(1, 50))

	m := New(proj, bus)
	out := m.View()
	if !strings.Contains(out, "movie.mp4") {
		t.Errorf("View output missing media path: %q", out)
	}
	if !strings.Contains(out, "actions=1") {
		t.Errorf("View output missing action count: %q", out)
	}
}
