// ABOUTME: Save worker: writes a pre-serialized project buffer while holding its save mutex
// ABOUTME: The UI thread serializes on its own goroutine; only the write itself happens here

package worker

import (
	"fmt"
	"os"
	"sync"
)

// SaveWorker owns one project's serialization mutex for the duration of a
// write, so the UI thread's next save attempt blocks instead of racing a
// write still in flight.
type SaveWorker struct {
	mu      sync.Mutex
	pool    *Pool
	OnDone  func(path string, err error)
}

// NewSaveWorker returns a SaveWorker backed by pool; onDone is invoked on
// the pool goroutine when a submitted write completes.
func NewSaveWorker(pool *Pool, onDone func(path string, err error)) *SaveWorker {
	return &SaveWorker{pool: pool, OnDone: onDone}
}

// Submit hands a serialized buffer + destination path to the pool. The
// save mutex is held from submission until the write (success or
// failure) completes.
func (w *SaveWorker) Submit(path string, buf []byte) {
	w.mu.Lock()
	w.pool.Submit(func() {
		defer w.mu.Unlock()
		err := os.WriteFile(path, buf, 0o644)
		if err != nil {
			err = fmt.Errorf("worker: save %s: %w", path, err)
		}
		if w.OnDone != nil {
			w.OnDone(path, err)
		}
	})
}
