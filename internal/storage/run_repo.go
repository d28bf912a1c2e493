package storage

import (
	"github.com/google/uuid"

	"github.com/manav03panchal/blockstage/internal/model"
)

// RunRepo provides operations for RunRecord entities.
type RunRepo struct {
	db *DB
}

// NewRunRepo creates a new run repository.
func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// Create stores a run under a generated time-ordered key.
func (r *RunRepo) Create(run *model.RunRecord) error {
	// UUID v7 keys sort by creation time.
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	run.Key = model.GenerateRunKey(id.String())
	return r.db.Set(run)
}

// Get retrieves a run by key.
func (r *RunRepo) Get(key string) (*model.RunRecord, error) {
	run := &model.RunRecord{}
	if err := r.db.Get(key, run); err != nil {
		return nil, err
	}
	return run, nil
}

// List returns runs newest first. A limit <= 0 returns all of them.
func (r *RunRepo) List(limit int) ([]*model.RunRecord, error) {
	return GetAllByPrefix(r.db, model.PrefixRun+":", func() *model.RunRecord {
		return &model.RunRecord{}
	}, true, limit)
}

// Clear deletes every run and returns how many were removed.
func (r *RunRepo) Clear() (int, error) {
	return r.db.DeleteByPrefix(model.PrefixRun + ":")
}
