package loader

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/djeedai/libracity/engine/core"
	"github.com/djeedai/libracity/engine/resources"
)

// Source is the asset provider a Loader drives. BeginLoad must be idempotent
// per path: asking again for an already-loading or already-loaded path returns
// the same logical resource instead of duplicating work. QueryState must be
// cheap, it is invoked once per outstanding handle per tick.
type Source interface {
	BeginLoad(path string) (resources.Handle, resources.LoadState)
	QueryState(handle resources.Handle) resources.LoadState
}

// State of a Loader batch.
type State int32

const (
	// Accepting Enqueue calls, nothing dispatched yet.
	StateReady State = iota
	// Batch frozen by Submit, requests dispatched and checked on each Poll.
	StateLoading
	// Every request of the batch resolved (loaded or failed).
	StateDone
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateLoading:
		return "Loading"
	case StateDone:
		return "Done"
	}
	return "Unknown"
}

var ErrNotReady = fmt.Errorf("loader is not accepting requests, call Reset first")

type workItem struct {
	path   string
	handle resources.Handle
}

// Loader coordinates one batch of named asynchronous load requests: callers
// enqueue paths, submit once, then a scheduler polls the Loader once per tick
// until the whole batch has resolved. Completed handles are drained with Take
// and the Loader is reused for an unrelated batch after Reset.
//
// Enqueue may race with Poll from another call site; the queues below tolerate
// that without losing or double-counting a request. None of the locks is ever
// held across a Source call.
type Loader struct {
	state atomic.Int32
	count atomic.Int64

	requestMu    sync.Mutex
	requestQueue []string

	workMu    sync.Mutex
	workQueue []workItem

	completeMu sync.Mutex
	complete   map[string]resources.Handle
}

// New returns an empty Loader in the Ready state.
func New() *Loader {
	return &Loader{
		complete: make(map[string]resources.Handle),
	}
}

// State returns the current batch state.
func (l *Loader) State() State {
	return State(l.state.Load())
}

// IsDone reports whether the current batch has fully resolved. Pure read,
// safe from any goroutine.
func (l *Loader) IsDone() bool {
	return l.State() == StateDone
}

// PendingCount returns the number of enqueued requests not yet resolved.
func (l *Loader) PendingCount() int {
	return int(l.count.Load())
}

// IsEmpty reports whether no request is outstanding. Usable before Submit.
func (l *Loader) IsEmpty() bool {
	return l.PendingCount() == 0
}

// Enqueue records the intent to load path as part of the current batch. It has
// no effect on the asset source until the first Poll after Submit. Enqueueing
// the same path twice makes two independent requests; the last resolution wins
// in the completion map. Returns ErrNotReady once the batch has been submitted.
func (l *Loader) Enqueue(path string) error {
	if l.State() != StateReady {
		return ErrNotReady
	}
	l.requestMu.Lock()
	l.requestQueue = append(l.requestQueue, path)
	l.requestMu.Unlock()
	pending := l.count.Add(1)
	core.LogDebug("enqueued load request: %s (%d pending)", path, pending)
	return nil
}

// Submit freezes the request set and moves the Loader to Loading. Returns
// ErrNotReady if the batch was already submitted; an intervening Reset is
// required before reuse.
func (l *Loader) Submit() error {
	if !l.state.CompareAndSwap(int32(StateReady), int32(StateLoading)) {
		return ErrNotReady
	}
	return nil
}

// Poll advances the batch by one tick: resolved in-flight requests are retired
// first, then freshly enqueued paths are dispatched to the source. A no-op
// unless the Loader is Loading. Poll never blocks on a load; it does a bounded
// amount of bookkeeping proportional to the number of outstanding requests.
//
// A batch submitted with zero requests, or whose every request is already
// resident in the source, reaches Done within the same Poll.
func (l *Loader) Poll(source Source) {
	if l.State() != StateLoading {
		return
	}

	// Check in-flight requests and retire the ones the source resolved.
	l.workMu.Lock()
	inflight := make([]workItem, len(l.workQueue))
	copy(inflight, l.workQueue)
	l.workMu.Unlock()

	for _, item := range inflight {
		state := source.QueryState(item.handle)
		if !state.Terminal() {
			continue
		}
		core.LogDebug("asset finished loading: %s -> %s (%s)", item.path, item.handle, state)
		l.removeWork(item)
		l.resolve(item.path, item.handle)
	}

	// Swap the request queue atomically so a racing Enqueue lands either in
	// the batch dispatched now or in the next tick's, never lost and never
	// dispatched twice.
	l.requestMu.Lock()
	requests := l.requestQueue
	l.requestQueue = nil
	l.requestMu.Unlock()

	for _, path := range requests {
		handle, state := source.BeginLoad(path)
		switch state {
		case resources.LoadStateNotLoaded, resources.LoadStateLoading:
			core.LogDebug("start loading asset: %s -> %s", path, handle)
			l.workMu.Lock()
			l.workQueue = append(l.workQueue, workItem{path: path, handle: handle})
			l.workMu.Unlock()
		case resources.LoadStateLoaded, resources.LoadStateFailed:
			// Already resolved by the source: resident from an earlier batch,
			// or an instant failure. No point retrying a failed load.
			core.LogDebug("asset already resolved: %s -> %s (%s)", path, handle, state)
			l.resolve(path, handle)
		}
	}

	l.maybeFinish()
}

// Take removes and returns the handle resolved for path, or false if path has
// not resolved, was never requested, or was already taken. Ownership of the
// handle passes to the caller; the Loader forgets it.
func (l *Loader) Take(path string) (resources.Handle, bool) {
	l.completeMu.Lock()
	defer l.completeMu.Unlock()
	handle, ok := l.complete[path]
	if !ok {
		return resources.Handle{}, false
	}
	delete(l.complete, path)
	return handle, true
}

// Reset discards all queued, in-flight and completed entries and returns the
// Loader to Ready, unconditionally. Already-loaded assets stay resident in the
// asset source. Calling Reset on a Ready Loader is a no-op.
func (l *Loader) Reset() {
	l.requestMu.Lock()
	l.requestQueue = nil
	l.requestMu.Unlock()

	l.workMu.Lock()
	l.workQueue = nil
	l.workMu.Unlock()

	l.completeMu.Lock()
	l.complete = make(map[string]resources.Handle)
	l.completeMu.Unlock()

	l.count.Store(0)
	l.state.Store(int32(StateReady))
}

// removeWork drops the first work queue entry matching item. Duplicate
// enqueues of one path share a handle and each snapshot entry removes one.
func (l *Loader) removeWork(item workItem) {
	l.workMu.Lock()
	defer l.workMu.Unlock()
	for i, w := range l.workQueue {
		if w.handle == item.handle && w.path == item.path {
			l.workQueue = append(l.workQueue[:i], l.workQueue[i+1:]...)
			return
		}
	}
}

// resolve moves one request into the completion map and decrements the
// pending counter, flipping the batch to Done if it was the last one.
func (l *Loader) resolve(path string, handle resources.Handle) {
	l.completeMu.Lock()
	l.complete[path] = handle
	l.completeMu.Unlock()

	if l.count.Add(-1) == 0 {
		l.maybeFinish()
	}
}

// maybeFinish flips Loading to Done when nothing is pending. The CAS makes the
// transition fire at most once per batch.
func (l *Loader) maybeFinish() {
	if l.count.Load() != 0 {
		return
	}
	if l.state.CompareAndSwap(int32(StateLoading), int32(StateDone)) {
		core.LogDebug("load batch complete")
	}
}
