package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// RunRecord Tests
// =============================================================================

func TestRunRecordSetGetKey(t *testing.T) {
	r := &RunRecord{}
	r.SetKey("run:abc123")
	assert.Equal(t, "run:abc123", r.GetKey())
}

func TestGenerateRunKey(t *testing.T) {
	assert.Equal(t, "run:0190-abc", GenerateRunKey("0190-abc"))
}

func TestRunRecordDuration(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	r := &RunRecord{StartedAt: start, FinishedAt: start.Add(1500 * time.Millisecond)}
	assert.Equal(t, 1500*time.Millisecond, r.Duration())

	r.FinishedAt = time.Time{}
	assert.Equal(t, time.Duration(0), r.Duration())
}

func TestRunRecordSucceeded(t *testing.T) {
	assert.True(t, (&RunRecord{Status: RunDone}).Succeeded())
	assert.False(t, (&RunRecord{Status: RunFailed}).Succeeded())
}
