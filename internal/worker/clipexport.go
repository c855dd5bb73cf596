// ABOUTME: Clip export worker: slices a project by bookmark range, spawning a subprocess per clip
// ABOUTME: Per-clip errors are logged and do not abort the remaining clips

package worker

import (
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
)

// ClipSpec describes one output clip: a source media path and the time
// range (seconds) to slice.
type ClipSpec struct {
	Name       string
	StartSec   float32
	EndSec     float32
	MediaPath  string
	OutputPath string
}

// ClipExportWorker iterates a batch of clips, invoking an external video
// slicer per clip and tracking progress. Errors in one clip are logged
// and do not abort the remaining clips, matching the concurrency model's
// clip-exporter guarantee.
type ClipExportWorker struct {
	pool     *Pool
	logger   *log.Logger
	OnClip   func(spec ClipSpec, err error)
	OnDone   func(completed, total int)
	Slice    func(spec ClipSpec) error
}

// QueueDepth reports how many other batches are queued ahead of (or
// alongside) this worker's submissions on the shared pool.
func (w *ClipExportWorker) QueueDepth() int {
	return w.pool.Len()
}

// NewClipExportWorker returns a ClipExportWorker backed by pool, logging
// per-clip failures via logger.
func NewClipExportWorker(pool *Pool, logger *log.Logger) *ClipExportWorker {
	w := &ClipExportWorker{pool: pool, logger: logger}
	w.Slice = w.sliceWithExternalTool
	return w
}

// Submit runs every clip in specs sequentially on one pool goroutine,
// updating a visible progress counter via OnClip/OnDone.
func (w *ClipExportWorker) Submit(specs []ClipSpec) {
	w.pool.Submit(func() {
		completed := 0
		for _, spec := range specs {
			err := w.Slice(spec)
			if err != nil {
				w.logger.Printf("clip export: %s failed: %v", spec.Name, err)
			} else {
				completed++
			}
			if w.OnClip != nil {
				w.OnClip(spec, err)
			}
		}
		if w.OnDone != nil {
			w.OnDone(completed, len(specs))
		}
	})
}

func (w *ClipExportWorker) sliceWithExternalTool(spec ClipSpec) error {
	out := spec.OutputPath
	if out == "" {
		out = filepath.Join(filepath.Dir(spec.MediaPath), spec.Name+".mp4")
	}
	cmd := exec.Command("ofs-clip-slice",
		spec.MediaPath,
		fmt.Sprintf("%.3f", spec.StartSec),
		fmt.Sprintf("%.3f", spec.EndSec),
		out,
	)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("worker: slice %s [%.3f,%.3f]: %w", spec.MediaPath, spec.StartSec, spec.EndSec, err)
	}
	return nil
}
