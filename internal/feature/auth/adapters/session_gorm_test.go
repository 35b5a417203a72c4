package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conversation_backend/internal/feature/auth/domain/entity"
	"conversation_backend/internal/feature/auth/usecase"
)

// newTestSession creates a session entity for testing.
func newTestSession(id string, userID uint, expiresIn time.Duration) *entity.Session {
	now := time.Now()
	return &entity.Session{
		ID:        id,
		UserID:    userID,
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: now,
		ExpiresAt: now.Add(expiresIn),
	}
}

func TestSessionGorm_CreateAndFindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)

	session := newTestSession("session-001", 1, 24*time.Hour)
	require.NoError(t, repo.Create(context.Background(), session))

	found, err := repo.FindByID(context.Background(), "session-001")

	assert.NoError(t, err, "failed to find session")
	assert.Equal(t, session.ID, found.ID)
	assert.Equal(t, session.UserID, found.UserID)
	assert.True(t, found.IsValid(), "fresh session should be valid")
}

func TestSessionGorm_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)

	found, err := repo.FindByID(context.Background(), "missing")

	assert.Nil(t, found)
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionGorm_FindByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)

	require.NoError(t, repo.Create(context.Background(), newTestSession("active-1", 7, 24*time.Hour)))
	require.NoError(t, repo.Create(context.Background(), newTestSession("active-2", 7, 24*time.Hour)))
	require.NoError(t, repo.Create(context.Background(), newTestSession("expired-1", 7, -time.Hour)))
	require.NoError(t, repo.Create(context.Background(), newTestSession("other-user", 8, 24*time.Hour)))

	sessions, err := repo.FindByUserID(context.Background(), 7)

	assert.NoError(t, err)
	assert.Len(t, sessions, 2, "only active sessions of the user should be returned")
}

func TestSessionGorm_Revoke(t *testing.T) {
	t.Run("revoked session is no longer valid", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSessionGorm(db)

		require.NoError(t, repo.Create(context.Background(), newTestSession("to-revoke", 1, 24*time.Hour)))

		err := repo.Revoke(context.Background(), "to-revoke")
		require.NoError(t, err)

		found, err := repo.FindByID(context.Background(), "to-revoke")
		require.NoError(t, err)
		assert.True(t, found.IsRevoked(), "session should be revoked")
		assert.False(t, found.IsValid())
	})

	t.Run("revoking a missing session returns ErrSessionNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSessionGorm(db)

		err := repo.Revoke(context.Background(), "missing")

		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})
}

func TestSessionGorm_CountByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionGorm(db)

	require.NoError(t, repo.Create(context.Background(), newTestSession("c-1", 5, 24*time.Hour)))
	require.NoError(t, repo.Create(context.Background(), newTestSession("c-2", 5, 24*time.Hour)))
	require.NoError(t, repo.Create(context.Background(), newTestSession("c-expired", 5, -time.Hour)))

	count, err := repo.CountByUserID(context.Background(), 5)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), count, "expired sessions must not be counted")
}

func TestSessionGorm_DeleteOldestByUserID(t *testing.T) {
	t.Run("removes the oldest active session", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSessionGorm(db)

		oldest := newTestSession("oldest", 9, 24*time.Hour)
		oldest.CreatedAt = time.Now().Add(-2 * time.Hour)
		newest := newTestSession("newest", 9, 24*time.Hour)

		require.NoError(t, repo.Create(context.Background(), oldest))
		require.NoError(t, repo.Create(context.Background(), newest))

		require.NoError(t, repo.DeleteOldestByUserID(context.Background(), 9))

		_, err := repo.FindByID(context.Background(), "oldest")
		assert.ErrorIs(t, err, usecase.ErrSessionNotFound, "oldest session should be gone")

		_, err = repo.FindByID(context.Background(), "newest")
		assert.NoError(t, err, "newest session should survive")
	})

	t.Run("no-op when the user has no sessions", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSessionGorm(db)

		err := repo.DeleteOldestByUserID(context.Background(), 42)

		assert.NoError(t, err)
	})
}
