package systems_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djeedai/libracity/engine/loader"
	"github.com/djeedai/libracity/engine/resources"
	"github.com/djeedai/libracity/engine/systems"
)

// residentSource reports every path as already loaded.
type residentSource struct {
	mu      sync.Mutex
	handles map[string]resources.Handle
}

func newResidentSource() *residentSource {
	return &residentSource{handles: make(map[string]resources.Handle)}
}

func (s *residentSource) BeginLoad(path string) (resources.Handle, resources.LoadState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	handle, ok := s.handles[path]
	if !ok {
		handle = resources.NewHandle()
		s.handles[path] = handle
	}
	return handle, resources.LoadStateLoaded
}

func (s *residentSource) QueryState(handle resources.Handle) resources.LoadState {
	return resources.LoadStateLoaded
}

// stuckSource never finishes a load.
type stuckSource struct{}

func (s *stuckSource) BeginLoad(path string) (resources.Handle, resources.LoadState) {
	return resources.NewHandle(), resources.LoadStateLoading
}

func (s *stuckSource) QueryState(handle resources.Handle) resources.LoadState {
	return resources.LoadStateLoading
}

func TestSchedulerPollsLoadersBeforeSystems(t *testing.T) {
	sched := systems.NewScheduler(newResidentSource())

	l := loader.New()
	require.NoError(t, l.Enqueue("levels.json"))
	require.NoError(t, l.Submit())
	sched.RegisterLoader(l)

	// A system observing the loader on the same tick it resolves must already
	// see it done: the poll stage runs first.
	doneWhenSystemRan := false
	sched.RegisterSystem(func(deltaTime float64) error {
		doneWhenSystemRan = l.IsDone()
		return nil
	})

	require.NoError(t, sched.Update(1.0/60.0))
	assert.True(t, doneWhenSystemRan)
}

func TestSchedulerSystemOrder(t *testing.T) {
	sched := systems.NewScheduler(&stuckSource{})

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		sched.RegisterSystem(func(deltaTime float64) error {
			order = append(order, i)
			return nil
		})
	}

	require.NoError(t, sched.Update(1.0/60.0))
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestSchedulerUnregisterLoader(t *testing.T) {
	sched := systems.NewScheduler(&stuckSource{})

	l := loader.New()
	require.NoError(t, l.Enqueue("a"))
	require.NoError(t, l.Submit())
	sched.RegisterLoader(l)
	sched.RegisterLoader(l) // duplicate registration is a no-op

	require.NoError(t, sched.Update(1.0/60.0))
	assert.False(t, l.IsDone())

	assert.True(t, sched.UnregisterLoader(l))
	assert.False(t, sched.UnregisterLoader(l))
}

func TestSchedulerPollsEveryLiveLoader(t *testing.T) {
	sched := systems.NewScheduler(newResidentSource())

	first := loader.New()
	require.NoError(t, first.Enqueue("a"))
	require.NoError(t, first.Submit())
	second := loader.New()
	require.NoError(t, second.Enqueue("b"))
	require.NoError(t, second.Submit())
	sched.RegisterLoader(first)
	sched.RegisterLoader(second)

	require.NoError(t, sched.Update(1.0/60.0))
	assert.True(t, first.IsDone())
	assert.True(t, second.IsDone())
}
