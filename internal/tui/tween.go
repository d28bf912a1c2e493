package tui

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/manav03panchal/blockstage/internal/store"
)

// DefaultGlide is how long a sprite takes to slide to a new position.
const DefaultGlide = 100 * time.Millisecond

// glide eases one sprite's displayed position toward its latest position.
type glide struct {
	x, y     float64
	toX, toY float64
	tx, ty   *gween.Tween
}

func newGlide(x, y float64) *glide {
	return &glide{x: x, y: y, toX: x, toY: y}
}

// retarget starts a new tween from the displayed position when the target
// changed.
func (g *glide) retarget(x, y float64, d time.Duration, fn ease.TweenFunc) {
	if x == g.toX && y == g.toY {
		return
	}
	g.toX, g.toY = x, y
	if d <= 0 {
		g.x, g.y = x, y
		g.tx, g.ty = nil, nil
		return
	}
	secs := float32(d.Seconds())
	g.tx = gween.New(float32(g.x), float32(x), secs, fn)
	g.ty = gween.New(float32(g.y), float32(y), secs, fn)
}

func (g *glide) step(dt time.Duration) {
	secs := float32(dt.Seconds())
	if g.tx != nil {
		v, done := g.tx.Update(secs)
		g.x = float64(v)
		if done {
			g.x, g.tx = g.toX, nil
		}
	}
	if g.ty != nil {
		v, done := g.ty.Update(secs)
		g.y = float64(v)
		if done {
			g.y, g.ty = g.toY, nil
		}
	}
}

func (g *glide) moving() bool {
	return g.tx != nil || g.ty != nil
}

// Animator tracks a glide per sprite and produces the state as drawn.
type Animator struct {
	Duration time.Duration
	Ease     ease.TweenFunc

	glides map[string]*glide
}

// NewAnimator creates an animator with the given glide duration.
func NewAnimator(d time.Duration) *Animator {
	return &Animator{
		Duration: d,
		Ease:     ease.Linear,
		glides:   make(map[string]*glide),
	}
}

// Sync retargets every sprite to its position in s. New sprites appear in
// place; removed sprites are forgotten.
func (an *Animator) Sync(s store.State) {
	seen := make(map[string]bool, len(s.Actors))
	for _, a := range s.Actors {
		seen[a.ID] = true
		g, ok := an.glides[a.ID]
		if !ok {
			an.glides[a.ID] = newGlide(a.X, a.Y)
			continue
		}
		g.retarget(a.X, a.Y, an.Duration, an.Ease)
	}
	for id := range an.glides {
		if !seen[id] {
			delete(an.glides, id)
		}
	}
}

// Step advances every glide by dt.
func (an *Animator) Step(dt time.Duration) {
	for _, g := range an.glides {
		g.step(dt)
	}
}

// Moving reports whether any sprite is still gliding.
func (an *Animator) Moving() bool {
	for _, g := range an.glides {
		if g.moving() {
			return true
		}
	}
	return false
}

// Apply returns a copy of s with positions replaced by displayed ones.
func (an *Animator) Apply(s store.State) store.State {
	out := s
	out.Actors = make([]store.Actor, len(s.Actors))
	copy(out.Actors, s.Actors)
	for i, a := range out.Actors {
		if g, ok := an.glides[a.ID]; ok {
			out.Actors[i].X, out.Actors[i].Y = g.x, g.y
		}
	}
	return out
}
