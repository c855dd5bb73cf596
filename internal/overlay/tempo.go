// ABOUTME: TempoGrid quantizes a playhead to bpm-derived measure subdivisions
// ABOUTME: Grounded on the source's tempo overlay mode and its measure_index table

package overlay

import "math"

// tempoMultiples mirrors the source's measure_index table: whole note down
// to a 1/16 subdivision.
var tempoMultiples = [10]float32{4, 2, 1, 1.0 / 2, 1.0 / 3, 1.0 / 4, 1.0 / 6, 1.0 / 8, 1.0 / 12, 1.0 / 16}

const tempoEpsilon = 1e-4

// TempoGrid snaps to musical beat boundaries, grounded on the source's
// tempo overlay mode and its measure-index subdivision table.
type TempoGrid struct {
	BPM          float32
	BeatOffset   float32
	MeasureIndex int // [0,9]
}

func (g TempoGrid) beatSeconds() float32 {
	idx := g.MeasureIndex
	if idx < 0 {
		idx = 0
	} else if idx > 9 {
		idx = 9
	}
	return (60 / g.BPM) * tempoMultiples[idx]
}

func (g TempoGrid) StepForward(t float32) float32 {
	beat := g.beatSeconds()
	n := math.Floor(float64((t - g.BeatOffset) / beat))
	next := float32(n)*beat + g.BeatOffset + beat
	// ε-guard: if t already sits (within epsilon) on a later boundary than
	// the floor computed above, floor rounded down across an exact hit —
	// advance one more beat so an on-beat playhead still moves.
	if next-t < tempoEpsilon {
		next += beat
	}
	return next
}

func (g TempoGrid) StepBackward(t float32) float32 {
	beat := g.beatSeconds()
	n := math.Ceil(float64((t - g.BeatOffset) / beat))
	prev := float32(n)*beat + g.BeatOffset - beat
	if t-prev < tempoEpsilon {
		prev -= beat
	}
	return prev
}
