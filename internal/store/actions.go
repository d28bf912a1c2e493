package store

import (
	"github.com/manav03panchal/blockstage/internal/block"
)

// Action is one of the closed set of state transitions.
type Action interface {
	// Name identifies the transition in logs.
	Name() string
}

// AddBlock appends a block to the top level of an actor's forest.
// An empty ActorID targets the active actor.
type AddBlock struct {
	ActorID string
	Block   block.Block
}

// RemoveBlock removes a block, and any subtree under it, by id.
type RemoveBlock struct {
	ActorID string
	ID      string
}

// UpdateBlockParams merges a partial parameter record into a block.
type UpdateBlockParams struct {
	ActorID string
	ID      string
	Patch   block.Patch
}

// AddChildToRepeat appends a block to a repeat's children.
type AddChildToRepeat struct {
	ActorID  string
	ParentID string
	Block    block.Block
}

// ClearBlocks empties an actor's forest.
type ClearBlocks struct {
	ActorID string
}

// SetRunning sets the advisory running flag.
type SetRunning struct {
	Value bool
}

// ActorPatch is a shallow partial update of an actor. Nil fields are left
// untouched; ClearMessage removes the current bubble.
type ActorPatch struct {
	Name         *string
	X            *float64
	Y            *float64
	Direction    *float64
	Costume      *string
	Visible      *bool
	Width        *float64
	Height       *float64
	Message      *Message
	ClearMessage bool
}

// UpdateActor shallow-merges fields into the named actor.
type UpdateActor struct {
	ActorID string
	Patch   ActorPatch
}

// Pose is the canonical start position and heading.
type Pose struct {
	X         float64
	Y         float64
	Direction float64
}

// DefaultPose is the origin facing right.
func DefaultPose() Pose {
	return Pose{Direction: DefaultDirection}
}

// ResetActors moves every actor to the canonical pose and clears messages.
// A nil Pose uses DefaultPose.
type ResetActors struct {
	Pose *Pose
}

// AddActor appends an actor and makes it active.
type AddActor struct {
	Actor Actor
}

// RemoveActor removes an actor unless it is the last one.
type RemoveActor struct {
	ID string
}

// SetActiveActor selects the actor whose program is edited and run.
type SetActiveActor struct {
	ID string
}

// SwapAnimations negates every move step in both actors' forests. With
// WhileRunning set the swap applies only if the state is running when the
// action is reduced.
type SwapAnimations struct {
	ActorA       string
	ActorB       string
	WhileRunning bool
}

func (AddBlock) Name() string          { return "add_block" }
func (RemoveBlock) Name() string       { return "remove_block" }
func (UpdateBlockParams) Name() string { return "update_block" }
func (AddChildToRepeat) Name() string  { return "add_to_repeat" }
func (ClearBlocks) Name() string       { return "clear_blocks" }
func (SetRunning) Name() string        { return "set_running" }
func (UpdateActor) Name() string       { return "update_actor" }
func (ResetActors) Name() string       { return "reset_actors" }
func (AddActor) Name() string          { return "add_actor" }
func (RemoveActor) Name() string       { return "remove_actor" }
func (SetActiveActor) Name() string    { return "set_active_actor" }
func (SwapAnimations) Name() string    { return "swap_animations" }

// Helpers for building patches inline.

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
