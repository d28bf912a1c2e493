package runtime

import (
	"context"

	"github.com/manav03panchal/blockstage/internal/block"
	"github.com/manav03panchal/blockstage/internal/errors"
	"github.com/manav03panchal/blockstage/internal/interp"
	"github.com/manav03panchal/blockstage/internal/logging"
	"github.com/manav03panchal/blockstage/internal/model"
	"github.com/manav03panchal/blockstage/internal/parser"
	"github.com/manav03panchal/blockstage/internal/store"
	"github.com/manav03panchal/blockstage/internal/validate"
)

// Snapshot returns the current state.
func (c *Context) Snapshot() store.State {
	return c.Store.Snapshot()
}

// resolve maps an empty id to the active actor and checks it exists.
func (c *Context) resolve(actorID string) (store.Actor, error) {
	s := c.Store.Snapshot()
	if actorID == "" {
		actorID = s.ActiveActorID
	}
	a, ok := s.Actor(actorID)
	if !ok {
		return a, errors.Wrapf(errors.ErrActorNotFound, "%q", actorID)
	}
	return a, nil
}

func (c *Context) findBlock(actorID, id string) (store.Actor, block.Block, error) {
	a, err := c.resolve(actorID)
	if err != nil {
		return a, block.Block{}, err
	}
	b, ok := block.FindByID(a.Blocks, id)
	if !ok {
		return a, b, errors.Wrapf(errors.ErrBlockNotFound, "%q", id)
	}
	return a, b, nil
}

// AddBlock creates a block of kind with default parameters at the top level
// of the actor's program.
func (c *Context) AddBlock(actorID string, kind block.Kind) (block.Block, error) {
	if !kind.Valid() {
		return block.Block{}, errors.NewUserErrorWithField("kind", string(kind),
			"unknown block kind", errors.GetSuggestion(errors.ErrInvalidProgram)).Because(errors.ErrInvalidProgram)
	}
	b := block.New(kind)
	return b, c.Append(actorID, b)
}

// Append adds prepared blocks to the top level of the actor's program.
func (c *Context) Append(actorID string, blocks ...block.Block) error {
	a, err := c.resolve(actorID)
	if err != nil {
		return err
	}
	if err := validate.Forest(blocks); err != nil {
		return err
	}
	for _, b := range blocks {
		c.Store.Dispatch(store.AddBlock{ActorID: a.ID, Block: b})
	}
	return nil
}

// LoadProgram parses src and appends it to the actor's program.
func (c *Context) LoadProgram(actorID, src string) (block.Forest, error) {
	forest, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	return forest, c.Append(actorID, forest...)
}

// RemoveBlock deletes a block and its subtree.
func (c *Context) RemoveBlock(actorID, id string) error {
	a, _, err := c.findBlock(actorID, id)
	if err != nil {
		return err
	}
	c.Store.Dispatch(store.RemoveBlock{ActorID: a.ID, ID: id})
	return nil
}

// UpdateBlock merges patch into the block's parameters.
func (c *Context) UpdateBlock(actorID, id string, patch block.Patch) error {
	a, _, err := c.findBlock(actorID, id)
	if err != nil {
		return err
	}
	if err := validate.Patch(patch); err != nil {
		return err
	}
	if patch.Text != nil {
		text := validate.SanitizeText(*patch.Text)
		patch.Text = &text
	}
	c.Store.Dispatch(store.UpdateBlockParams{ActorID: a.ID, ID: id, Patch: patch})
	return nil
}

// AddChildToRepeat appends child to the repeat identified by parentID.
func (c *Context) AddChildToRepeat(actorID, parentID string, child block.Block) error {
	a, parent, err := c.findBlock(actorID, parentID)
	if err != nil {
		return err
	}
	if parent.Kind != block.KindRepeat {
		return errors.Wrapf(errors.ErrNotRepeat, "%s block %q", parent.Kind, parentID)
	}
	if err := validate.Forest(block.Forest{child}); err != nil {
		return err
	}
	c.Store.Dispatch(store.AddChildToRepeat{ActorID: a.ID, ParentID: parentID, Block: child})
	return nil
}

// ClearBlocks empties the actor's program.
func (c *Context) ClearBlocks(actorID string) error {
	a, err := c.resolve(actorID)
	if err != nil {
		return err
	}
	c.Store.Dispatch(store.ClearBlocks{ActorID: a.ID})
	return nil
}

// AddActor spawns a sprite from the configured costume catalog and makes it
// active.
func (c *Context) AddActor() store.Actor {
	a := store.SpawnActor(c.Store.Snapshot(), c.Config.Sprites.Costumes, c.rng)
	c.Store.Dispatch(store.AddActor{Actor: a})
	logging.DebugLog("sprite added", logging.KeyActorID, a.ID, "name", a.Name)
	return a
}

// AddSprite spawns a sprite and applies a command-line sprite spec to it.
func (c *Context) AddSprite(spec parser.SpriteSpec) (store.Actor, error) {
	if spec.Name != "" {
		if err := validate.SpriteName(spec.Name); err != nil {
			return store.Actor{}, err
		}
	}
	if err := validate.Forest(spec.Program); err != nil {
		return store.Actor{}, err
	}
	a := store.SpawnActor(c.Store.Snapshot(), c.Config.Sprites.Costumes, c.rng)
	if spec.Name != "" {
		a.Name = spec.Name
	}
	if spec.HasPos {
		a.X, a.Y = spec.X, spec.Y
	}
	a.Blocks = block.Clone(spec.Program)
	c.Store.Dispatch(store.AddActor{Actor: a})
	return a, nil
}

// RemoveActor deletes a sprite. The last sprite cannot be removed.
func (c *Context) RemoveActor(id string) error {
	s := c.Store.Snapshot()
	if _, ok := s.Actor(id); !ok {
		return errors.Wrapf(errors.ErrActorNotFound, "%q", id)
	}
	if len(s.Actors) <= 1 {
		return errors.ErrLastActor
	}
	c.Store.Dispatch(store.RemoveActor{ID: id})
	return nil
}

// SelectActor makes id the active sprite.
func (c *Context) SelectActor(id string) error {
	if _, err := c.resolve(id); err != nil {
		return err
	}
	c.Store.Dispatch(store.SetActiveActor{ID: id})
	return nil
}

// Run executes the active sprite's program and records the outcome. Runs
// rejected before starting (already running, empty program) are not
// recorded and return a nil record.
func (c *Context) Run(ctx context.Context) (*model.RunRecord, error) {
	actor, err := c.resolve("")
	if err != nil {
		return nil, err
	}

	c.collisions.Store(0)
	res, runErr := c.Interpreter.Run(ctx, actor.ID)
	if errors.Is(runErr, errors.ErrAlreadyRunning) || errors.Is(runErr, errors.ErrEmptyProgram) {
		return nil, runErr
	}

	rec := c.record(actor, res, runErr)
	if err := c.RunRepo.Create(rec); err != nil {
		logging.Warn("failed to record run",
			logging.KeyOperation, "run.record",
			logging.KeyError, err,
		)
		if runErr == nil {
			return rec, WrapDiskFullError(err, "record run", c.DB.Path())
		}
	}
	return rec, runErr
}

func (c *Context) record(actor store.Actor, res interp.Result, runErr error) *model.RunRecord {
	rec := &model.RunRecord{
		RunID:      res.RunID,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		BlockCount: block.Count(actor.Blocks),
		Status:     model.RunDone,
		Steps:      res.Steps,
		Swaps:      res.Swaps,
		Collisions: int(c.collisions.Load()),
		StartedAt:  res.Started,
		FinishedAt: res.Finished,
	}
	if runErr != nil {
		rec.Status = model.RunFailed
		rec.Error = runErr.Error()
	}
	if final, ok := c.Store.Snapshot().Actor(actor.ID); ok {
		rec.FinalX = final.X
		rec.FinalY = final.Y
		rec.FinalDirection = final.Direction
	}
	return rec
}

// History returns recorded runs, newest first.
func (c *Context) History(limit int) ([]*model.RunRecord, error) {
	return c.RunRepo.List(limit)
}
