package mosaic

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mosaicui/mosaic/internal/debug"
)

// LoadState is the lifecycle of a node's asynchronously loaded content.
// Transitions: LoadIdle -> LoadLoading -> LoadLoaded or LoadFailed.
// A reload moves Loaded or Failed back through Loading.
type LoadState uint8

const (
	// LoadIdle means no load has been requested.
	LoadIdle LoadState = iota
	// LoadLoading means a task is in flight.
	LoadLoading
	// LoadLoaded means the last task finished successfully.
	LoadLoaded
	// LoadFailed means the last task returned an error.
	LoadFailed
)

// String returns a human-readable state name.
func (s LoadState) String() string {
	switch s {
	case LoadIdle:
		return "idle"
	case LoadLoading:
		return "loading"
	case LoadLoaded:
		return "loaded"
	case LoadFailed:
		return "failed"
	}
	return "unknown"
}

// Loadable tracks one node's async content lifecycle. Embed it alongside
// Base in nodes that fetch their content.
//
// State and Err are read on the event loop; the runner moves them there
// via the completion callback, so no locking is needed in Render.
type Loadable struct {
	state   LoadState
	err     error
	started time.Time
}

// State returns the current load state.
func (l *Loadable) State() LoadState { return l.state }

// Err returns the error from the last failed load, or nil.
func (l *Loadable) Err() error { return l.err }

// Started returns when the in-flight or last load began.
func (l *Loadable) Started() time.Time { return l.started }

// beginLoad records the Loading transition.
func (l *Loadable) beginLoad(now time.Time) {
	l.state = LoadLoading
	l.err = nil
	l.started = now
}

// finishLoad records the terminal transition.
func (l *Loadable) finishLoad(err error) {
	if err != nil {
		l.state = LoadFailed
		l.err = err
		return
	}
	l.state = LoadLoaded
}

// Task is a cancellable unit of background work owned by a node.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel requests the task stop. The task's context is cancelled; the
// completion callback still runs with the resulting error.
func (t *Task) Cancel() {
	t.cancel()
}

// Done returns a channel closed when the task's completion callback has
// been queued.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Runner executes node-owned background tasks on a shared errgroup tied
// to the app's lifecycle context. Completion callbacks are marshalled
// onto the event loop, where they update the owner's Loadable state and
// bump its version so the render that follows cannot clear the dirty
// flag prematurely.
type Runner struct {
	group  *errgroup.Group
	ctx    context.Context
	queue  chan<- func()
	stopCh <-chan struct{}

	mu     sync.Mutex
	tasks  map[*Task]struct{}
	closed bool
}

// NewRunner creates a runner whose tasks inherit from parent and whose
// completion callbacks are delivered through eventQueue.
func NewRunner(parent context.Context, eventQueue chan<- func(), stopCh <-chan struct{}) *Runner {
	group, ctx := errgroup.WithContext(parent)
	return &Runner{
		group:  group,
		ctx:    ctx,
		queue:  eventQueue,
		stopCh: stopCh,
		tasks:  make(map[*Task]struct{}),
	}
}

// Submit starts fn on a worker goroutine for the given owner. The owner's
// Loadable (when non-nil) transitions to Loading now and to Loaded or
// Failed when fn returns; either way the owner is marked dirty through
// BumpVersion so the update is never lost to an in-flight render.
//
// The returned Task cancels only this unit of work, not the whole runner.
func (r *Runner) Submit(owner Node, load *Loadable, fn func(ctx context.Context) error) *Task {
	ctx, cancel := context.WithCancel(r.ctx)
	task := &Task{cancel: cancel, done: make(chan struct{})}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		cancel()
		close(task.done)
		return task
	}
	r.tasks[task] = struct{}{}
	r.mu.Unlock()

	if load != nil {
		load.beginLoad(time.Now())
	}
	if owner != nil {
		owner.MarkDirty()
	}

	r.group.Go(func() error {
		err := fn(ctx)
		cancel()

		r.mu.Lock()
		delete(r.tasks, task)
		r.mu.Unlock()

		r.complete(owner, load, err)
		close(task.done)
		if err != nil {
			debug.Log("task for %T failed: %v", owner, err)
		}
		// Task errors surface on the owner's Loadable, not as loop
		// failures.
		return nil
	})
	return task
}

// complete queues the terminal state transition onto the event loop.
func (r *Runner) complete(owner Node, load *Loadable, err error) {
	apply := func() {
		if load != nil {
			load.finishLoad(err)
		}
	}
	select {
	case r.queue <- apply:
	case <-r.stopCh:
		return
	}
	if base, ok := owner.(interface{ BumpVersion() }); ok && owner != nil {
		base.BumpVersion()
	}
}

// CancelAll cancels every in-flight task.
func (r *Runner) CancelAll() {
	r.mu.Lock()
	tasks := make([]*Task, 0, len(r.tasks))
	for t := range r.tasks {
		tasks = append(tasks, t)
	}
	r.mu.Unlock()
	for _, t := range tasks {
		t.Cancel()
	}
}

// Close cancels all tasks, rejects new submissions, and waits for worker
// goroutines to exit.
func (r *Runner) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.CancelAll()
	return r.group.Wait()
}
