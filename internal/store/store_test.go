package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/01moynul/ytgenius-golang/internal/database"
	"github.com/01moynul/ytgenius-golang/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *SQLStore {
	t.Helper()

	db, err := database.Open(database.DriverSQLite, "file::memory:", time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db, database.DriverSQLite))
	return NewSQLStore(db)
}

func TestProfileLifecycle(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.GetProfile(ctx, "user-1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.CreateProfile(ctx, &models.Profile{ID: "user-1", Email: "a@example.com", Coins: 50}))

	p, err := s.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", p.Email)
	assert.Equal(t, 50, p.Coins)

	require.NoError(t, s.UpdateCoins(ctx, "user-1", 49))
	p, err = s.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 49, p.Coins)

	assert.ErrorIs(t, s.UpdateCoins(ctx, "missing", 1), ErrNotFound)
}

func TestCreateProfileTwiceFails(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateProfile(ctx, &models.Profile{ID: "dup", Coins: 50}))
	assert.ErrorIs(t, s.CreateProfile(ctx, &models.Profile{ID: "dup", Coins: 50}), ErrProfileExists)
}

func TestAnyProfile(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.AnyProfile(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.CreateProfile(ctx, &models.Profile{ID: "first", Email: "f@example.com", Coins: 50}))
	p, err := s.AnyProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", p.ID)
	assert.Equal(t, 50, p.Coins)
}

func TestDebitCoins(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateProfile(ctx, &models.Profile{ID: "u", Coins: 12}))

	require.NoError(t, s.DebitCoins(ctx, "u", 10))
	assert.ErrorIs(t, s.DebitCoins(ctx, "u", 10), ErrInsufficientCoins)

	p, err := s.GetProfile(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Coins)
}

func TestGenerationHistory(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	for i, task := range []string{"metadata", "script", "audit"} {
		require.NoError(t, s.InsertGeneration(ctx, &models.Generation{
			ID:        task + "-id",
			UserID:    "u",
			TaskType:  task,
			Prompt:    "p",
			Result:    json.RawMessage(`{"text":"` + task + `"}`),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, s.InsertGeneration(ctx, &models.Generation{
		ID: "other", UserID: "someone-else", TaskType: "metadata", Prompt: "p", Result: json.RawMessage(`{}`),
	}))

	items, err := s.ListGenerations(ctx, "u", 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "audit", items[0].TaskType)
	assert.Equal(t, "script", items[1].TaskType)
	assert.JSONEq(t, `{"text":"audit"}`, string(items[0].Result))

	items, err = s.ListGenerations(ctx, "nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPing(t *testing.T) {
	s := setupTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}
