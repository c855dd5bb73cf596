// ABOUTME: Tests for the max-pooled waveform LOD buffer and its scroll-cache shift path
// ABOUTME: Verifies full rebuild and incremental shift produce the same pooled values

package waveform

import "testing"

func makeRampSamples(n int) Samples {
	s := make(Samples, n)
	for i := range s {
		s[i] = float32(i % 10)
	}
	return s
}

func TestLOD_RenderProducesDesiredColumnCount(t *testing.T) {
	l := NewLOD(makeRampSamples(8000), 10)
	out := l.Render(0, 5, 300)
	if len(out) != 100 {
		t.Fatalf("len = %d, want 100 (canvasWidth/3)", len(out))
	}
}

func TestLOD_ScrollShiftMatchesFullRebuild(t *testing.T) {
	samples := makeRampSamples(8000)
	l := NewLOD(samples, 10)

	first := l.Render(0, 5, 300)
	_ = first

	shifted := l.Render(0.1, 5.1, 300)

	fresh := NewLOD(samples, 10)
	rebuilt := fresh.Render(0.1, 5.1, 300)

	if len(shifted) != len(rebuilt) {
		t.Fatalf("len mismatch: shifted=%d rebuilt=%d", len(shifted), len(rebuilt))
	}
	for i := range shifted {
		if shifted[i] != rebuilt[i] {
			t.Errorf("column %d: shifted=%v rebuilt=%v", i, shifted[i], rebuilt[i])
		}
	}
}

func TestLOD_EmptySamplesReturnsZeroedBuffer(t *testing.T) {
	l := NewLOD(nil, 10)
	out := l.Render(0, 1, 300)
	for _, v := range out {
		if v != 0 {
			t.Errorf("expected all-zero buffer for empty samples, got %v", v)
		}
	}
}
