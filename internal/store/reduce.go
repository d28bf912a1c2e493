package store

import (
	"math"

	"github.com/manav03panchal/blockstage/internal/block"
)

// Reduce applies one action to a snapshot and returns the next snapshot.
// It never mutates s: changed actors and forests are rebuilt, unchanged ones
// are shared. Transitions whose target does not exist return s unchanged.
// The running flag is advisory and is not consulted here.
func Reduce(s State, action Action) State {
	switch a := action.(type) {
	case AddBlock:
		return withForest(s, a.ActorID, func(f block.Forest) (block.Forest, bool) {
			out := make(block.Forest, 0, len(f)+1)
			out = append(out, f...)
			return append(out, a.Block), true
		})

	case RemoveBlock:
		return withForest(s, a.ActorID, func(f block.Forest) (block.Forest, bool) {
			out := block.RemoveByID(f, a.ID)
			return out, block.Count(out) != block.Count(f)
		})

	case UpdateBlockParams:
		return withForest(s, a.ActorID, func(f block.Forest) (block.Forest, bool) {
			return block.UpdateByID(f, a.ID, func(b block.Block) block.Block {
				b.Params = b.Params.Merge(a.Patch)
				return b
			})
		})

	case AddChildToRepeat:
		return withForest(s, a.ActorID, func(f block.Forest) (block.Forest, bool) {
			parent, ok := block.FindByID(f, a.ParentID)
			if !ok || !parent.IsRepeat() {
				return f, false
			}
			return block.UpdateByID(f, a.ParentID, func(b block.Block) block.Block {
				children := make(block.Forest, 0, len(b.Children)+1)
				children = append(children, b.Children...)
				b.Children = append(children, a.Block)
				return b
			})
		})

	case ClearBlocks:
		return withForest(s, a.ActorID, func(block.Forest) (block.Forest, bool) {
			return block.Forest{}, true
		})

	case SetRunning:
		s.IsRunning = a.Value
		return s

	case UpdateActor:
		return withActor(s, a.ActorID, func(actor Actor) (Actor, bool) {
			return applyPatch(actor, a.Patch), true
		})

	case ResetActors:
		pose := DefaultPose()
		if a.Pose != nil {
			pose = *a.Pose
		}
		actors := make([]Actor, len(s.Actors))
		for i, actor := range s.Actors {
			actor.X = pose.X
			actor.Y = pose.Y
			actor.Direction = pose.Direction
			actor.Message = nil
			actors[i] = actor
		}
		s.Actors = actors
		return s

	case AddActor:
		actor := a.Actor
		if actor.Blocks == nil {
			actor.Blocks = block.Forest{}
		}
		actors := make([]Actor, 0, len(s.Actors)+1)
		actors = append(actors, s.Actors...)
		s.Actors = append(actors, actor)
		s.ActiveActorID = actor.ID
		return s

	case RemoveActor:
		if len(s.Actors) <= 1 {
			return s
		}
		i := s.indexOf(a.ID)
		if i < 0 {
			return s
		}
		actors := make([]Actor, 0, len(s.Actors)-1)
		actors = append(actors, s.Actors[:i]...)
		s.Actors = append(actors, s.Actors[i+1:]...)
		if s.ActiveActorID == a.ID {
			s.ActiveActorID = s.Actors[0].ID
		}
		return s

	case SetActiveActor:
		s.ActiveActorID = a.ID
		return s

	case SwapAnimations:
		if a.WhileRunning && !s.IsRunning {
			return s
		}
		return swapAnimations(s, a.ActorA, a.ActorB)
	}

	return s
}

// withForest rebuilds the forest of the target actor (active when empty).
func withForest(s State, actorID string, fn func(block.Forest) (block.Forest, bool)) State {
	if actorID == "" {
		actorID = s.ActiveActorID
	}
	return withActor(s, actorID, func(a Actor) (Actor, bool) {
		forest, changed := fn(a.Blocks)
		if !changed {
			return a, false
		}
		a.Blocks = forest
		return a, true
	})
}

// withActor replaces one actor in a fresh actor slice.
func withActor(s State, id string, fn func(Actor) (Actor, bool)) State {
	i := s.indexOf(id)
	if i < 0 {
		return s
	}
	next, changed := fn(s.Actors[i])
	if !changed {
		return s
	}
	actors := make([]Actor, len(s.Actors))
	copy(actors, s.Actors)
	actors[i] = next
	s.Actors = actors
	return s
}

func applyPatch(a Actor, p ActorPatch) Actor {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.X != nil {
		a.X = *p.X
	}
	if p.Y != nil {
		a.Y = *p.Y
	}
	if p.Direction != nil {
		a.Direction = *p.Direction
	}
	if p.Costume != nil {
		a.Costume = *p.Costume
	}
	if p.Visible != nil {
		a.Visible = *p.Visible
	}
	if p.Width != nil {
		a.Width = *p.Width
	}
	if p.Height != nil {
		a.Height = *p.Height
	}
	if p.Message != nil {
		m := *p.Message
		a.Message = &m
	}
	if p.ClearMessage {
		a.Message = nil
	}
	return a
}

// swapAnimations deep copies every actor, then negates the move steps of
// the two named actors in the copy. Naming the same actor twice negates
// its moves twice.
func swapAnimations(s State, idA, idB string) State {
	if s.indexOf(idA) < 0 || s.indexOf(idB) < 0 {
		return s
	}
	next := s.Clone()
	for _, id := range []string{idA, idB} {
		i := next.indexOf(id)
		negateMoves(next.Actors[i].Blocks)
	}
	return next
}

func negateMoves(forest block.Forest) {
	for i := range forest {
		if forest[i].Kind == block.KindMove && forest[i].Params.Steps != 0 {
			forest[i].Params.Steps = -forest[i].Params.Steps
		}
		negateMoves(forest[i].Children)
	}
}

// NormalizeDirection wraps degrees into [0, 360).
func NormalizeDirection(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}
