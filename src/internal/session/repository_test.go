package session

import (
	"context"
	"testing"
	"time"

	"chatbot-svc/src/internal/models"
	"chatbot-svc/src/internal/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var loginTime = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

func newTestSession(id, userID, name string) *Session {
	return &Session{
		SessionID:   id,
		UserID:      userID,
		SessionName: name,
		LoginTime:   loginTime,
	}
}

func TestSessionRepository_InsertAndFind(t *testing.T) {
	repo := NewSessionRepository(storetest.NewSQLite(t, &Session{}))
	ctx := context.Background()

	found, err := repo.FindByID(ctx, "sess_1")
	require.NoError(t, err)
	assert.Nil(t, found)

	s := newTestSession("sess_1", "user_1", "Chat A")
	s.ActiveStatus = StatusInactive
	created, err := repo.Insert(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, created.ActiveStatus)
	assert.Nil(t, created.LogoutTime)

	found, err = repo.FindByID(ctx, "sess_1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Chat A", found.SessionName)
	assert.WithinDuration(t, loginTime, found.LoginTime, time.Microsecond)

	_, err = repo.Insert(ctx, newTestSession("sess_1", "user_1", "Again"))
	assert.ErrorIs(t, err, models.ErrDuplicateRecord)
}

func TestSessionRepository_Delete(t *testing.T) {
	repo := NewSessionRepository(storetest.NewSQLite(t, &Session{}))
	ctx := context.Background()

	_, err := repo.Insert(ctx, newTestSession("sess_1", "user_1", "Chat A"))
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, "sess_1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "sess_1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSessionRepository_FindByUser(t *testing.T) {
	repo := NewSessionRepository(storetest.NewSQLite(t, &Session{}))
	ctx := context.Background()

	t.Run("no sessions yields an empty slice", func(t *testing.T) {
		sessions, err := repo.FindByUser(ctx, "user_1")
		require.NoError(t, err)
		assert.NotNil(t, sessions)
		assert.Empty(t, sessions)
	})

	t.Run("filters by owner", func(t *testing.T) {
		for _, s := range []*Session{
			newTestSession("sess_1", "user_1", "Chat A"),
			newTestSession("sess_2", "user_1", "Chat B"),
			newTestSession("sess_3", "user_2", "Chat C"),
		} {
			_, err := repo.Insert(ctx, s)
			require.NoError(t, err)
		}

		sessions, err := repo.FindByUser(ctx, "user_1")
		require.NoError(t, err)

		ids := make([]string, 0, len(sessions))
		for _, s := range sessions {
			ids = append(ids, s.SessionID)
		}
		assert.ElementsMatch(t, []string{"sess_1", "sess_2"}, ids)
	})
}

func TestSessionRepository_UpdateName(t *testing.T) {
	repo := NewSessionRepository(storetest.NewSQLite(t, &Session{}))
	ctx := context.Background()

	updated, err := repo.UpdateName(ctx, "ghost", "x")
	require.NoError(t, err)
	assert.Nil(t, updated)

	_, err = repo.Insert(ctx, newTestSession("sess_1", "user_1", "Chat A"))
	require.NoError(t, err)

	updated, err = repo.UpdateName(ctx, "sess_1", "Chat A renamed")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Chat A renamed", updated.SessionName)
	assert.Equal(t, "user_1", updated.UserID)
	assert.WithinDuration(t, loginTime, updated.LoginTime, time.Microsecond)
}
