// Package store holds the program state snapshot and the closed set of
// transitions that produce new snapshots from old ones.
package store

import (
	"time"

	"github.com/manav03panchal/blockstage/internal/block"
)

// MessageKind distinguishes speech from thought bubbles.
type MessageKind string

const (
	MessageSay   MessageKind = "say"
	MessageThink MessageKind = "think"
)

// Message is the bubble currently shown above an actor.
type Message struct {
	Kind      MessageKind   `json:"kind"`
	Text      string        `json:"text"`
	ExpiresAt time.Time     `json:"expires_at"`
	Duration  time.Duration `json:"duration"`
}

// Actor is a sprite on the stage together with its block program.
type Actor struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	X         float64      `json:"x"`
	Y         float64      `json:"y"`
	Direction float64      `json:"direction"`
	Costume   string       `json:"costume"`
	Visible   bool         `json:"visible"`
	Width     float64      `json:"width"`
	Height    float64      `json:"height"`
	Message   *Message     `json:"message,omitempty"`
	Blocks    block.Forest `json:"blocks"`
}

// State is one immutable snapshot of the whole program. Snapshots handed out
// by the store share structure with each other and must be treated as
// read-only; use Clone to obtain a private copy.
type State struct {
	Actors        []Actor `json:"actors"`
	ActiveActorID string  `json:"active_actor_id"`
	IsRunning     bool    `json:"is_running"`
}

// Actor returns the actor with the given id.
func (s State) Actor(id string) (Actor, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.Actors[i], true
	}
	return Actor{}, false
}

// ActiveActor returns the currently selected actor.
func (s State) ActiveActor() (Actor, bool) {
	return s.Actor(s.ActiveActorID)
}

// Visible returns the visible actors in stage order.
func (s State) Visible() []Actor {
	var out []Actor
	for _, a := range s.Actors {
		if a.Visible {
			out = append(out, a)
		}
	}
	return out
}

// Clone returns a deep copy sharing nothing with s.
func (s State) Clone() State {
	out := s
	out.Actors = make([]Actor, len(s.Actors))
	for i, a := range s.Actors {
		out.Actors[i] = a.clone()
	}
	return out
}

func (s State) indexOf(id string) int {
	for i, a := range s.Actors {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (a Actor) clone() Actor {
	if a.Message != nil {
		m := *a.Message
		a.Message = &m
	}
	a.Blocks = block.Clone(a.Blocks)
	return a
}
