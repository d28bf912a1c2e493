package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/blockstage/internal/model"
)

// Helper to create an in-memory database for testing
func setupTestDB(t *testing.T) *DB {
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// =============================================================================
// DB Tests
// =============================================================================

func TestOpenClose(t *testing.T) {
	t.Run("in_memory", func(t *testing.T) {
		db, err := Open(Options{InMemory: true})
		require.NoError(t, err)
		assert.NotNil(t, db)
		assert.Equal(t, "", db.Path())
		assert.NotNil(t, db.Badger())
		assert.NoError(t, db.Close())
	})

	t.Run("empty_path_uses_in_memory", func(t *testing.T) {
		db, err := Open(Options{Path: ""})
		require.NoError(t, err)
		assert.Equal(t, "", db.Path())
		db.Close()
	})

	t.Run("on_disk", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "db")
		db, err := Open(Options{Path: dir})
		require.NoError(t, err)
		assert.Equal(t, dir, db.Path())
		require.NoError(t, db.Close())
	})
}

func TestDefaultPath(t *testing.T) {
	assert.Contains(t, DefaultPath(), filepath.Join(AppName, "db"))
}

func TestGetMissingKey(t *testing.T) {
	db := setupTestDB(t)

	err := db.Get("run:missing", &model.RunRecord{})
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.True(t, IsErrKeyNotFound(err))
}

func TestSetGetDelete(t *testing.T) {
	db := setupTestDB(t)
	rec := &model.RunRecord{Key: "run:1", ActorName: "Cat"}

	require.NoError(t, db.Set(rec))

	got := &model.RunRecord{}
	require.NoError(t, db.Get("run:1", got))
	assert.Equal(t, "Cat", got.ActorName)
	assert.Equal(t, "run:1", got.Key)

	require.NoError(t, db.Delete("run:1"))
	assert.True(t, IsErrKeyNotFound(db.Get("run:1", got)))
}

func TestListAndDeleteByPrefix(t *testing.T) {
	db := setupTestDB(t)
	for _, k := range []string{"run:a", "run:b", "other:c"} {
		require.NoError(t, db.Set(&model.RunRecord{Key: k}))
	}

	keys, err := db.ListByPrefix("run:")
	require.NoError(t, err)
	assert.Equal(t, []string{"run:a", "run:b"}, keys)

	n, err := db.DeleteByPrefix("run:")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	keys, err = db.ListByPrefix("")
	require.NoError(t, err)
	assert.Equal(t, []string{"other:c"}, keys)
}

func TestGetAllByPrefixOrder(t *testing.T) {
	db := setupTestDB(t)
	for _, k := range []string{"run:1", "run:2", "run:3", "zzz:9"} {
		require.NoError(t, db.Set(&model.RunRecord{Key: k}))
	}
	newRun := func() *model.RunRecord { return &model.RunRecord{} }

	asc, err := GetAllByPrefix(db, "run:", newRun, false, 0)
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, "run:1", asc[0].Key)

	desc, err := GetAllByPrefix(db, "run:", newRun, true, 2)
	require.NoError(t, err)
	require.Len(t, desc, 2)
	assert.Equal(t, "run:3", desc[0].Key)
	assert.Equal(t, "run:2", desc[1].Key)
}

// =============================================================================
// RunRepo Tests
// =============================================================================

func TestRunRepoCreateGet(t *testing.T) {
	repo := NewRunRepo(setupTestDB(t))
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	rec := &model.RunRecord{
		ActorID:    "sprite1",
		ActorName:  "Cat",
		BlockCount: 2,
		Status:     model.RunDone,
		Steps:      2,
		StartedAt:  start,
		FinishedAt: start.Add(200 * time.Millisecond),
		FinalY:     10,
	}
	require.NoError(t, repo.Create(rec))
	assert.Contains(t, rec.Key, model.PrefixRun+":")

	got, err := repo.Get(rec.Key)
	require.NoError(t, err)
	assert.Equal(t, "Cat", got.ActorName)
	assert.Equal(t, 10.0, got.FinalY)
	assert.Equal(t, 200*time.Millisecond, got.Duration())
	assert.True(t, got.StartedAt.Equal(start))
}

func TestRunRepoListNewestFirst(t *testing.T) {
	repo := NewRunRepo(setupTestDB(t))
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(&model.RunRecord{Steps: i}))
		time.Sleep(2 * time.Millisecond)
	}

	all, err := repo.List(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{2, 1, 0}, []int{all[0].Steps, all[1].Steps, all[2].Steps})

	latest, err := repo.List(1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, 2, latest[0].Steps)
}

func TestRunRepoClear(t *testing.T) {
	repo := NewRunRepo(setupTestDB(t))
	require.NoError(t, repo.Create(&model.RunRecord{}))
	require.NoError(t, repo.Create(&model.RunRecord{}))

	n, err := repo.Clear()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := repo.List(0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRunRepoGetMissing(t *testing.T) {
	repo := NewRunRepo(setupTestDB(t))
	_, err := repo.Get("run:nope")
	assert.True(t, IsErrKeyNotFound(err))
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkRunRepoCreate(b *testing.B) {
	db, err := Open(Options{InMemory: true})
	if err != nil {
		b.Fatal(err)
	}
	defer db.Close()
	repo := NewRunRepo(db)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := repo.Create(&model.RunRecord{ActorID: "sprite1", Steps: i, Status: model.RunDone}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRunRepoList(b *testing.B) {
	db, err := Open(Options{InMemory: true})
	if err != nil {
		b.Fatal(err)
	}
	defer db.Close()
	repo := NewRunRepo(db)
	for i := 0; i < 200; i++ {
		if err := repo.Create(&model.RunRecord{Steps: i}); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := repo.List(20); err != nil {
			b.Fatal(err)
		}
	}
}
