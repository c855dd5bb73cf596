// ABOUTME: Scroll-cached max-pooled level-of-detail buffer over the decoded waveform samples
// ABOUTME: Mirrors the teacher's viewport left-shift-and-append pattern for cheap incremental redraw

// Package waveform holds the decoded audio envelope and its scroll-cached
// level-of-detail view used by the timeline renderer.
package waveform

import "math"

// Samples is the flat, fixed-step averaged PCM envelope produced by the
// external decode step (see Probe), 60-sample-averaged at 800 samples/s
// for 48kHz mono audio.
type Samples []float32

// cacheKey identifies the view a cached LOD buffer was built for; when
// only Multiple changes by a small positive delta the cache can shift
// instead of fully recomputing.
type cacheKey struct {
	multiple      int
	canvasWidth   int
	visibleDurSec float32
}

// LOD is the scroll-cached max-pooled line buffer consumed by the
// timeline renderer.
type LOD struct {
	samples  Samples
	duration float32 // D, total media duration in seconds

	key    cacheKey
	valid  bool
	buf    []float32 // one max-pooled entry per rendered column
	startI int       // start_i at last build
	step   int
}

// NewLOD wraps a decoded sample buffer for a media file of the given
// total duration.
func NewLOD(samples Samples, duration float32) *LOD {
	return &LOD{samples: samples, duration: duration}
}

// Render returns desiredSamples max-pooled columns covering the visible
// interval [t0, t1], reusing the cached buffer when possible.
func (l *LOD) Render(t0, t1 float32, canvasWidth int) []float32 {
	desired := canvasWidth / 3
	if desired < 1 {
		desired = 1
	}
	n := len(l.samples)
	if n == 0 || l.duration <= 0 {
		return make([]float32, desired)
	}

	startI := int((t0 / l.duration) * float32(n))
	endI := int((t1 / l.duration) * float32(n))
	if endI <= startI {
		endI = startI + 1
	}
	step := int(math.Ceil(float64(endI-startI) / float64(desired)))
	if step < 1 {
		step = 1
	}
	multiple := startI / step

	key := cacheKey{multiple: multiple, canvasWidth: canvasWidth, visibleDurSec: t1 - t0}

	if l.valid && key.canvasWidth == l.key.canvasWidth && key.visibleDurSec == l.key.visibleDurSec {
		delta := multiple - l.key.multiple
		if delta > 0 && delta < len(l.buf) {
			l.shiftAndAppend(delta, startI, step, desired)
			l.key = key
			l.startI = startI
			l.step = step
			return l.buf
		}
	}

	l.rebuild(startI, step, desired)
	l.key = key
	l.startI = startI
	l.step = step
	l.valid = true
	return l.buf
}

func (l *LOD) rebuild(startI, step, desired int) {
	buf := make([]float32, desired)
	for i := 0; i < desired; i++ {
		buf[i] = l.poolWindow(startI + i*step, step)
	}
	l.buf = buf
}

// shiftAndAppend moves the cached buffer left by delta entries and fills
// the freed tail with freshly pooled windows, avoiding a full recompute
// during normal forward playback scroll.
func (l *LOD) shiftAndAppend(delta, startI, step, desired int) {
	copy(l.buf, l.buf[delta:])
	for i := desired - delta; i < desired; i++ {
		l.buf[i] = l.poolWindow(startI+i*step, step)
	}
}

func (l *LOD) poolWindow(from, width int) float32 {
	n := len(l.samples)
	if from >= n {
		return 0
	}
	to := from + width
	if to > n {
		to = n
	}
	var max float32
	for i := from; i < to; i++ {
		v := l.samples[i]
		if v < 0 {
			v = -v
		}
		if v > max {
			max = v
		}
	}
	return max
}
