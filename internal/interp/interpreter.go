// Package interp executes an actor's block program against the store.
//
// Execution is strictly sequential: each block finishes, including its timed
// wait, before the next begins. Every leaf re-reads the actor and its own
// parameters from the latest snapshot, so a swap issued mid-run changes the
// moves that follow it.
package interp

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/manav03panchal/blockstage/internal/block"
	apperrors "github.com/manav03panchal/blockstage/internal/errors"
	"github.com/manav03panchal/blockstage/internal/logging"
	"github.com/manav03panchal/blockstage/internal/notify"
	"github.com/manav03panchal/blockstage/internal/store"
	"github.com/manav03panchal/blockstage/internal/timer"
)

// DefaultPacing is the pause after every motion block.
const DefaultPacing = 100 * time.Millisecond

// Notice titles emitted during a run.
const (
	NoticeSwapped  = "Sprites collided! Animation directions swapped!"
	NoticeComplete = "Animation complete!"
	NoticeFailed   = "Error running animation"
	NoticeEmpty    = "No blocks to run!"
)

// Status is the interpreter's lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusDone
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Result summarizes one run.
type Result struct {
	RunID    string
	ActorID  string
	Steps    int // leaf blocks executed
	Swaps    int // pre-flight swaps issued
	Started  time.Time
	Finished time.Time
}

// Duration is the elapsed run time.
func (r Result) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Interpreter walks block forests. One run at a time.
type Interpreter struct {
	store    *store.Store
	clock    timer.Clock
	pacing   time.Duration
	pose     store.Pose
	notifier notify.Notifier

	active atomic.Bool

	mu      sync.Mutex
	status  Status
	lastErr error
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithClock sets the clock used for pacing and message deadlines.
func WithClock(c timer.Clock) Option {
	return func(it *Interpreter) { it.clock = c }
}

// WithPacing sets the pause after motion blocks. Negative values become zero.
func WithPacing(d time.Duration) Option {
	return func(it *Interpreter) {
		if d < 0 {
			d = 0
		}
		it.pacing = d
	}
}

// WithPose sets the pose every actor is reset to before a run.
func WithPose(p store.Pose) Option {
	return func(it *Interpreter) { it.pose = p }
}

// WithNotifier sets where run notices go.
func WithNotifier(n notify.Notifier) Option {
	return func(it *Interpreter) {
		if n != nil {
			it.notifier = n
		}
	}
}

// New creates an interpreter bound to st.
func New(st *store.Store, opts ...Option) *Interpreter {
	it := &Interpreter{
		store:    st,
		clock:    timer.Real{},
		pacing:   DefaultPacing,
		pose:     store.DefaultPose(),
		notifier: notify.Discard,
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Status returns the current lifecycle state.
func (it *Interpreter) Status() Status {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.status
}

// Err returns the error of the last failed run, if any.
func (it *Interpreter) Err() error {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.lastErr
}

func (it *Interpreter) setStatus(s Status, err error) {
	it.mu.Lock()
	it.status = s
	it.lastErr = err
	it.mu.Unlock()
}

// Run executes the program of actorID (the active actor when empty).
//
// It marks the store running, resets every actor, issues the pre-flight swap,
// then walks the forest. The running flag is cleared on every exit path,
// including panics, which are reported as ErrRunFailed.
func (it *Interpreter) Run(ctx context.Context, actorID string) (res Result, err error) {
	snap := it.store.Snapshot()
	if snap.IsRunning || !it.active.CompareAndSwap(false, true) {
		return res, apperrors.ErrAlreadyRunning
	}
	defer it.active.Store(false)

	if actorID == "" {
		actorID = snap.ActiveActorID
	}
	actor, ok := snap.Actor(actorID)
	if !ok {
		return res, apperrors.Wrapf(apperrors.ErrActorNotFound, "run %s", actorID)
	}
	if len(actor.Blocks) == 0 {
		it.notifier.Notify(notify.New(notify.LevelWarning, NoticeEmpty, ""))
		return res, apperrors.ErrEmptyProgram
	}

	res.RunID = logging.GenerateRunID()
	res.ActorID = actorID
	ctx = logging.WithRunID(ctx, res.RunID)
	log := logging.FromContext(ctx).With(logging.KeyActorID, actorID)

	res.Started = it.clock.Now()
	it.setStatus(StatusRunning, nil)
	it.store.Dispatch(store.SetRunning{Value: true})
	log.Debug("run started", logging.KeyCount, block.Count(actor.Blocks))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", apperrors.ErrRunFailed, r)
		}
		it.store.Dispatch(store.SetRunning{Value: false})
		res.Finished = it.clock.Now()

		if err != nil {
			it.setStatus(StatusFailed, err)
			log.Error("run failed", logging.KeyError, err, logging.KeyCount, res.Steps)
			it.notifier.Notify(notify.New(notify.LevelError, NoticeFailed, err.Error()))
			return
		}
		it.setStatus(StatusDone, nil)
		log.Debug("run finished",
			logging.KeyCount, res.Steps,
			logging.KeyDuration, res.Duration(),
		)
		it.notifier.Notify(notify.New(notify.LevelSuccess, NoticeComplete, ""))
	}()

	pose := it.pose
	it.store.Dispatch(store.ResetActors{Pose: &pose})

	if pair, ok := it.preflight(); ok {
		res.Swaps++
		log.Debug("pre-flight swap", "a", pair.ActorA, "b", pair.ActorB)
		it.notifier.Notify(notify.New(notify.LevelInfo, NoticeSwapped, "").
			WithField("a", pair.ActorA).
			WithField("b", pair.ActorB))
	}

	// The swap may have rewritten this actor's forest.
	forest := actor.Blocks
	if latest, ok := it.store.Snapshot().Actor(actorID); ok {
		forest = latest.Blocks
	}

	steps, execErr := it.exec(ctx, actorID, forest)
	res.Steps = steps
	if execErr != nil {
		return res, fmt.Errorf("%w: %w", apperrors.ErrRunFailed, execErr)
	}
	return res, nil
}

// preflight swaps the first two visible actors when at least two actors
// carry a move block anywhere in their forest.
func (it *Interpreter) preflight() (store.SwapAnimations, bool) {
	s := it.store.Snapshot()

	movers := 0
	for _, a := range s.Actors {
		if block.ContainsKind(a.Blocks, block.KindMove) {
			movers++
		}
	}
	visible := s.Visible()
	if movers < 2 || len(visible) < 2 {
		return store.SwapAnimations{}, false
	}

	swap := store.SwapAnimations{ActorA: visible[0].ID, ActorB: visible[1].ID}
	it.store.Dispatch(swap)
	return swap, true
}

// Exec walks forest for actorID without resetting actors or touching the
// running flag. It returns the number of leaf blocks executed.
func (it *Interpreter) Exec(ctx context.Context, actorID string, forest block.Forest) (int, error) {
	return it.exec(ctx, actorID, forest)
}

func (it *Interpreter) exec(ctx context.Context, actorID string, forest block.Forest) (int, error) {
	steps := 0
	for _, b := range forest {
		if err := ctx.Err(); err != nil {
			return steps, err
		}
		b = it.current(actorID, b)

		switch b.Kind {
		case block.KindRepeat:
			for i := 0; i < b.Params.Times; i++ {
				n, err := it.exec(ctx, actorID, b.Children)
				steps += n
				if err != nil {
					return steps, err
				}
			}

		case block.KindMove, block.KindTurn, block.KindGoto, block.KindSay, block.KindThink:
			if err := it.step(ctx, actorID, b); err != nil {
				return steps, err
			}
			steps++

		default:
			logging.DebugContext(ctx, "skipping unknown block",
				logging.KeyBlockID, b.ID,
				logging.KeyKind, string(b.Kind),
			)
		}
	}
	return steps, nil
}

// current returns the latest version of b from the actor's forest, or b
// itself if it is no longer there.
func (it *Interpreter) current(actorID string, b block.Block) block.Block {
	a, ok := it.store.Snapshot().Actor(actorID)
	if !ok {
		return b
	}
	if latest, ok := block.FindByID(a.Blocks, b.ID); ok {
		return latest
	}
	return b
}

func (it *Interpreter) step(ctx context.Context, actorID string, b block.Block) error {
	a, ok := it.store.Snapshot().Actor(actorID)
	if !ok {
		return nil
	}
	p := b.Params

	switch b.Kind {
	case block.KindMove:
		rad := a.Direction * math.Pi / 180
		x := a.X + p.Steps*math.Cos(rad)
		y := a.Y + p.Steps*math.Sin(rad)
		it.store.Update(actorID, store.ActorPatch{X: store.Float(x), Y: store.Float(y)})
		return it.clock.Sleep(ctx, it.pacing)

	case block.KindTurn:
		dir := store.NormalizeDirection(a.Direction + p.Degrees)
		it.store.Update(actorID, store.ActorPatch{Direction: store.Float(dir)})
		return it.clock.Sleep(ctx, it.pacing)

	case block.KindGoto:
		it.store.Update(actorID, store.ActorPatch{X: store.Float(p.X), Y: store.Float(p.Y)})
		return it.clock.Sleep(ctx, it.pacing)

	case block.KindSay, block.KindThink:
		kind := store.MessageSay
		if b.Kind == block.KindThink {
			kind = store.MessageThink
		}
		wait := timer.Seconds(p.Seconds)
		it.store.Update(actorID, store.ActorPatch{Message: &store.Message{
			Kind:      kind,
			Text:      p.Text,
			ExpiresAt: it.clock.Now().Add(wait),
			Duration:  wait,
		}})
		err := it.clock.Sleep(ctx, wait)
		it.store.Update(actorID, store.ActorPatch{ClearMessage: true})
		return err
	}
	return nil
}
