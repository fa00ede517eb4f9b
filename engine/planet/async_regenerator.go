package planet

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl32"
)

// AsyncRegenerator runs an expensive Regenerator on a worker pool so the camera tick
// never waits for a mesh rebuild. Only one rebuild runs at a time: requests arriving
// while a rebuild is in flight are dropped, and the next change after it completes
// triggers a fresh one.
type AsyncRegenerator struct {
	inner Regenerator
	pool  worker.DynamicWorkerPool

	workers     int
	queueSize   int
	idleTimeout time.Duration

	inFlight atomic.Bool
	taskID   atomic.Int64
	dropped  atomic.Uint64
	done     atomic.Uint64
}

var _ Regenerator = &AsyncRegenerator{}

// AsyncRegeneratorOption is a functional option for configuring an AsyncRegenerator.
type AsyncRegeneratorOption func(*AsyncRegenerator)

// WithWorkers sets the maximum number of pool workers.
//
// Parameters:
//   - n: worker count (values <= 0 keep the default of 1)
//
// Returns:
//   - AsyncRegeneratorOption: functional option to set the worker count
func WithWorkers(n int) AsyncRegeneratorOption {
	return func(a *AsyncRegenerator) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithIdleTimeout sets how long an idle pool worker lives before it is reclaimed.
//
// Parameters:
//   - d: idle timeout
//
// Returns:
//   - AsyncRegeneratorOption: functional option to set the idle timeout
func WithIdleTimeout(d time.Duration) AsyncRegeneratorOption {
	return func(a *AsyncRegenerator) {
		if d > 0 {
			a.idleTimeout = d
		}
	}
}

// NewAsyncRegenerator wraps inner with a worker pool.
//
// Parameters:
//   - inner: the synchronous regenerator to run off the tick goroutine
//   - options: functional options
//
// Returns:
//   - *AsyncRegenerator: the asynchronous wrapper
func NewAsyncRegenerator(inner Regenerator, options ...AsyncRegeneratorOption) *AsyncRegenerator {
	a := &AsyncRegenerator{
		inner:       inner,
		workers:     1,
		queueSize:   4,
		idleTimeout: 1 * time.Second,
	}
	for _, opt := range options {
		opt(a)
	}
	a.pool = worker.NewDynamicWorkerPool(a.workers, a.queueSize, a.idleTimeout)
	return a
}

// RegeneratePlanet schedules a rebuild unless one is already running.
func (a *AsyncRegenerator) RegeneratePlanet(cameraPos mgl32.Vec3, cameraTransform mgl32.Mat4) {
	if !a.inFlight.CompareAndSwap(false, true) {
		a.dropped.Add(1)
		return
	}

	id := int(a.taskID.Add(1))
	a.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer a.inFlight.Store(false)
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[Planet] regeneration %d recovered from panic: %v", id, r)
				}
			}()
			a.inner.RegeneratePlanet(cameraPos, cameraTransform)
			a.done.Add(1)
			return nil, nil
		},
	})
}

// Busy reports whether a rebuild is currently in flight.
func (a *AsyncRegenerator) Busy() bool {
	return a.inFlight.Load()
}

// Dropped returns how many requests were skipped because a rebuild was in flight.
func (a *AsyncRegenerator) Dropped() uint64 {
	return a.dropped.Load()
}

// Completed returns how many rebuilds have finished.
func (a *AsyncRegenerator) Completed() uint64 {
	return a.done.Load()
}
