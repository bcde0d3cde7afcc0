package systems

import (
	"sync"

	"github.com/djeedai/libracity/engine/loader"
)

// FnSystem is a per-tick system callback run by the scheduler.
type FnSystem func(deltaTime float64) error

// Scheduler drives the cooperative tick of the engine. Every live Loader is
// polled first, before any registered system runs, so that systems observing
// IsDone within a tick see the state after that tick's resolution pass.
type Scheduler struct {
	source loader.Source

	mutex   sync.Mutex
	loaders []*loader.Loader

	systems []FnSystem
}

func NewScheduler(source loader.Source) *Scheduler {
	return &Scheduler{
		source: source,
	}
}

// RegisterLoader adds a Loader to the per-tick poll set. Registering the same
// instance twice is a no-op.
func (s *Scheduler) RegisterLoader(l *loader.Loader) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, existing := range s.loaders {
		if existing == l {
			return
		}
	}
	s.loaders = append(s.loaders, l)
}

// UnregisterLoader removes a Loader from the poll set.
func (s *Scheduler) UnregisterLoader(l *loader.Loader) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for i, existing := range s.loaders {
		if existing == l {
			s.loaders = append(s.loaders[:i], s.loaders[i+1:]...)
			return true
		}
	}
	return false
}

// RegisterSystem appends a system to the tick order. Systems run after the
// loader poll stage, in registration order.
func (s *Scheduler) RegisterSystem(fn FnSystem) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.systems = append(s.systems, fn)
}

// Update runs one tick: poll every live loader, then run every system.
func (s *Scheduler) Update(deltaTime float64) error {
	s.mutex.Lock()
	loaders := make([]*loader.Loader, len(s.loaders))
	copy(loaders, s.loaders)
	systems := make([]FnSystem, len(s.systems))
	copy(systems, s.systems)
	s.mutex.Unlock()

	for _, l := range loaders {
		l.Poll(s.source)
	}
	for _, fn := range systems {
		if err := fn(deltaTime); err != nil {
			return err
		}
	}
	return nil
}
