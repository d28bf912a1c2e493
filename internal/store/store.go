package store

import (
	"sync"

	"github.com/manav03panchal/blockstage/internal/logging"
)

// DefaultHistorySize is the number of past snapshots retained.
const DefaultHistorySize = 64

// Listener is called after every dispatched transition with the snapshots
// before and after it.
type Listener func(prev, next State)

// Store owns the current snapshot and applies transitions one at a time.
// Each Dispatch replaces the snapshot atomically; readers always observe a
// complete snapshot.
type Store struct {
	mu        sync.Mutex
	state     State
	history   []State
	maxHist   int
	listeners map[int]Listener
	nextID    int
}

// Option configures a Store.
type Option func(*Store)

// WithHistory sets how many prior snapshots are kept. Zero disables history.
func WithHistory(n int) Option {
	return func(s *Store) {
		if n < 0 {
			n = 0
		}
		s.maxHist = n
	}
}

// New creates a store holding the given initial snapshot.
func New(initial State, opts ...Option) *Store {
	s := &Store{
		state:     initial,
		maxHist:   DefaultHistorySize,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies the action and returns the resulting snapshot.
// Listeners run on the calling goroutine after the snapshot is replaced.
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, action)
	s.state = next
	if s.maxHist > 0 {
		s.history = append(s.history, prev)
		if len(s.history) > s.maxHist {
			s.history = s.history[len(s.history)-s.maxHist:]
		}
	}
	listeners := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if l, ok := s.listeners[id]; ok {
			listeners = append(listeners, l)
		}
	}
	s.mu.Unlock()

	logging.DebugLog("dispatch", logging.KeyOperation, action.Name())

	for _, l := range listeners {
		l(prev, next)
	}
	return next
}

// Subscribe registers a listener and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// History returns the retained prior snapshots, oldest first.
func (s *Store) History() []State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]State, len(s.history))
	copy(out, s.history)
	return out
}

// Update is a convenience for dispatching an UpdateActor.
func (s *Store) Update(actorID string, patch ActorPatch) State {
	return s.Dispatch(UpdateActor{ActorID: actorID, Patch: patch})
}
