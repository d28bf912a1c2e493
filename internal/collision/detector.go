// Package collision samples actor distances while a run is in progress and
// swaps the animations of each pair the first time it overlaps.
package collision

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/manav03panchal/blockstage/internal/logging"
	"github.com/manav03panchal/blockstage/internal/notify"
	"github.com/manav03panchal/blockstage/internal/store"
)

// DefaultTick is the sampling interval.
const DefaultTick = 100 * time.Millisecond

// Pair identifies two actors by id, in actor-list order.
type Pair struct {
	A string
	B string
}

func (p Pair) String() string {
	return p.A + "-" + p.B
}

// Overlaps reports whether two actors, treated as circles of diameter
// width, are closer than the sum of their radii.
func Overlaps(a, b store.Actor) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) < (a.Width+b.Width)/2
}

// Detector runs the sampling loop. Each pair is swapped at most once per
// run; the handled set is cleared whenever running starts or stops.
type Detector struct {
	store    *store.Store
	tick     time.Duration
	notifier notify.Notifier
	observe  func(Pair)

	mu      sync.Mutex
	handled map[Pair]struct{}
	gen     int
	loops   int
	quit    chan struct{}
}

// Option configures a Detector.
type Option func(*Detector)

// WithTick sets the sampling interval.
func WithTick(d time.Duration) Option {
	return func(det *Detector) {
		if d > 0 {
			det.tick = d
		}
	}
}

// WithNotifier sets where collision notices go.
func WithNotifier(n notify.Notifier) Option {
	return func(det *Detector) {
		if n != nil {
			det.notifier = n
		}
	}
}

// WithObserver registers a callback for every swap the detector issues.
func WithObserver(fn func(Pair)) Option {
	return func(det *Detector) { det.observe = fn }
}

// New creates a detector for st. Call Attach to start following runs.
func New(st *store.Store, opts ...Option) *Detector {
	d := &Detector{
		store:    st,
		tick:     DefaultTick,
		notifier: notify.Discard,
		handled:  make(map[Pair]struct{}),
		quit:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Attach subscribes to the store. A false→true running transition starts a
// sampling loop; a true→false transition clears the handled set. The
// returned function detaches and stops any loop. Attach once per Detector.
func (d *Detector) Attach() (detach func()) {
	cancel := d.store.Subscribe(func(prev, next store.State) {
		switch {
		case !prev.IsRunning && next.IsRunning:
			d.start()
		case prev.IsRunning && !next.IsRunning:
			d.Reset()
		}
	})

	if d.store.Snapshot().IsRunning {
		d.start()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			close(d.quit)
		})
	}
}

// Reset forgets which pairs were handled.
func (d *Detector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handled = make(map[Pair]struct{})
}

// Handled returns the number of pairs swapped in the current run.
func (d *Detector) Handled() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handled)
}

// Active reports whether a sampling loop is running.
func (d *Detector) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loops > 0
}

func (d *Detector) start() {
	d.mu.Lock()
	d.gen++
	gen := d.gen
	d.loops++
	d.handled = make(map[Pair]struct{})
	d.mu.Unlock()

	logging.DebugLog("collision loop started", "tick", d.tick)
	go d.loop(gen)
}

func (d *Detector) loop(gen int) {
	t := time.NewTicker(d.tick)
	defer func() {
		t.Stop()
		d.mu.Lock()
		d.loops--
		d.mu.Unlock()
	}()

	for {
		select {
		case <-d.quit:
			return
		case <-t.C:
		}

		d.mu.Lock()
		stale := gen != d.gen
		d.mu.Unlock()
		if stale {
			return
		}
		if !d.store.Snapshot().IsRunning {
			d.Reset()
			logging.DebugLog("collision loop stopped")
			return
		}
		d.Tick()
	}
}

// Tick performs one detection pass. Pairs are scanned in actor-list order
// (i<j) and the first overlapping, unhandled pair is swapped. It does
// nothing unless the store is running.
func (d *Detector) Tick() (Pair, bool) {
	s := d.store.Snapshot()
	if !s.IsRunning {
		return Pair{}, false
	}

	for i := 0; i < len(s.Actors); i++ {
		for j := i + 1; j < len(s.Actors); j++ {
			a, b := s.Actors[i], s.Actors[j]
			pair := Pair{A: a.ID, B: b.ID}
			if !Overlaps(a, b) || !d.claim(pair) {
				continue
			}

			// The run may have ended since the snapshot was taken.
			next := d.store.Dispatch(store.SwapAnimations{ActorA: a.ID, ActorB: b.ID, WhileRunning: true})
			if !next.IsRunning {
				d.release(pair)
				return Pair{}, false
			}
			logging.DebugLog("collision",
				logging.KeyActorID, a.ID,
				"other", b.ID,
			)
			d.notifier.Notify(notify.New(notify.LevelInfo,
				fmt.Sprintf("%s collided with %s! Animations swapped!", a.Name, b.Name), "").
				WithField("a", a.ID).
				WithField("b", b.ID))
			if d.observe != nil {
				d.observe(pair)
			}
			return pair, true
		}
	}
	return Pair{}, false
}

// release forgets a claimed pair whose swap did not apply.
func (d *Detector) release(p Pair) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.handled, p)
}

// claim marks pair handled, reporting false if it already was.
func (d *Detector) claim(p Pair) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.handled[p]; ok {
		return false
	}
	d.handled[p] = struct{}{}
	return true
}
