// ABOUTME: Tests for the worker pool and the waveform busy-guard / clip-export error isolation
// ABOUTME: Mirrors the teacher's pool_test.go coverage style

package worker

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"ofsedit/internal/waveform"
)

func TestPool_SubmitWaitRunsAllTasks(t *testing.T) {
	p := NewPool(8)
	defer p.Close()

	var n atomic.Int32
	for i := 0; i < 20; i++ {
		p.Submit(func() { n.Add(1) })
	}
	p.Wait()
	if n.Load() != 20 {
		t.Errorf("n = %d, want 20", n.Load())
	}
}

func TestPool_LenReportsQueuedNotYetStartedTasks(t *testing.T) {
	p := NewPool(2) // room for two queued tasks; NewPool starts runtime.NumCPU() workers
	defer p.Close()

	release := make(chan struct{})
	occupyAllWorkers(t, p, release)

	for i := 0; i < 2; i++ {
		p.Submit(func() {})
	}

	deadline := time.Now().Add(time.Second)
	for p.Len() != 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := p.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2 queued tasks", got)
	}
	close(release)
	p.Wait()
	if got := p.Len(); got != 0 {
		t.Errorf("Len() after Wait = %d, want 0", got)
	}
}

// occupyAllWorkers submits one task per pool worker, each blocking until
// release is closed, and waits until every worker has picked one up so
// that anything submitted afterwards stays queued.
func occupyAllWorkers(t *testing.T, p *Pool, release chan struct{}) {
	t.Helper()
	for i := 0; i < runtime.NumCPU(); i++ {
		p.Submit(func() { <-release })
	}
	deadline := time.Now().Add(time.Second)
	for p.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
}

func TestClipExportWorker_QueueDepthReflectsPoolBacklog(t *testing.T) {
	p := NewPool(1)
	defer p.Close()

	release := make(chan struct{})
	occupyAllWorkers(t, p, release)

	var buf bytes.Buffer
	w := NewClipExportWorker(p, log.New(&buf, "", 0))
	w.Slice = func(spec ClipSpec) error { return nil }
	w.Submit([]ClipSpec{{Name: "a"}})

	deadline := time.Now().Add(time.Second)
	for w.QueueDepth() != 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := w.QueueDepth(); got != 1 {
		t.Errorf("QueueDepth() = %d, want 1", got)
	}
	close(release)
	p.Wait()
}

func TestWaveformWorker_RejectsSecondSubmitWhileBusy(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	release := make(chan struct{})
	done := make(chan struct{})
	w := NewWaveformWorker(p, func(waveform.Samples, float32, error) { close(done) })
	w.Decode = func(string) (waveform.Samples, float32, error) {
		<-release
		return waveform.Samples{1, 2}, 3, nil
	}

	if !w.Submit("a.mp4") {
		t.Fatal("first submit should be accepted")
	}
	if w.Submit("b.mp4") {
		t.Fatal("second submit while busy should be rejected")
	}
	close(release)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("decode never completed")
	}
}

func TestSaveWorker_WritesFileAndInvokesOnDone(t *testing.T) {
	p := NewPool(2)
	defer p.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "project.ofsproject")

	done := make(chan error, 1)
	w := NewSaveWorker(p, func(gotPath string, err error) {
		if gotPath != path {
			t.Errorf("OnDone path = %q, want %q", gotPath, path)
		}
		done <- err
	})

	w.Submit(path, []byte("payload"))

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("SaveWorker.Submit: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("save never completed")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("file contents = %q, want %q", got, "payload")
	}
}

func TestClipExportWorker_OneFailureDoesNotAbortBatch(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	var buf bytes.Buffer
	w := NewClipExportWorker(p, log.New(&buf, "", 0))
	w.Slice = func(spec ClipSpec) error {
		if spec.Name == "bad" {
			return errBadClip
		}
		return nil
	}

	done := make(chan struct{})
	var completed, total int
	w.OnDone = func(c, tot int) {
		completed, total = c, tot
		close(done)
	}

	w.Submit([]ClipSpec{{Name: "good1"}, {Name: "bad"}, {Name: "good2"}})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("clip export never completed")
	}
	if completed != 2 || total != 3 {
		t.Errorf("completed=%d total=%d, want 2/3", completed, total)
	}
}

var errBadClip = &clipError{"bad clip"}

type clipError struct{ msg string }

func (e *clipError) Error() string { return e.msg }
