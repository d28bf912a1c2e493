package model

import (
	"fmt"
	"time"
)

// RunStatus is the outcome of a run.
type RunStatus string

// Run outcomes.
const (
	RunDone   RunStatus = "done"
	RunFailed RunStatus = "failed"
)

// RunRecord is the summary of one program run. Programs themselves are not
// stored.
type RunRecord struct {
	Key            string    `json:"key"`
	RunID          string    `json:"run_id"`
	ActorID        string    `json:"actor_id"`
	ActorName      string    `json:"actor_name"`
	BlockCount     int       `json:"block_count"`
	Status         RunStatus `json:"status"`
	Error          string    `json:"error,omitempty"`
	Steps          int       `json:"steps"`
	Swaps          int       `json:"swaps"`
	Collisions     int       `json:"collisions"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
	FinalX         float64   `json:"final_x"`
	FinalY         float64   `json:"final_y"`
	FinalDirection float64   `json:"final_direction"`
}

// SetKey sets the database key for this run.
func (r *RunRecord) SetKey(key string) {
	r.Key = key
}

// GetKey returns the database key for this run.
func (r *RunRecord) GetKey() string {
	return r.Key
}

// Duration returns how long the run took.
func (r *RunRecord) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Succeeded reports whether the run completed.
func (r *RunRecord) Succeeded() bool {
	return r.Status == RunDone
}

// GenerateRunKey generates a database key for a run from a UUID v7.
func GenerateRunKey(uuid string) string {
	return fmt.Sprintf("%s:%s", PrefixRun, uuid)
}
