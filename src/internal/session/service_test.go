package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"chatbot-svc/src/internal/models"
	"chatbot-svc/src/internal/store"
	"chatbot-svc/src/internal/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	ids   map[string]bool
	calls int
}

func (f *fakeUsers) UserExists(_ context.Context, userID string) (bool, error) {
	f.calls++
	return f.ids[userID], nil
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []models.ActivityMessage
}

func (p *recordingPublisher) PublishActivity(_ context.Context, message models.ActivityMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, message)
	return nil
}

func (p *recordingPublisher) actions() []string {
	actions := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		actions = append(actions, m.Action)
	}
	return actions
}

// spyRepository records which repository methods a service call reaches.
type spyRepository struct {
	Repository
	calls []string
}

func (s *spyRepository) FindByID(ctx context.Context, sessionID string) (*Session, error) {
	s.calls = append(s.calls, "FindByID")
	return s.Repository.FindByID(ctx, sessionID)
}

func (s *spyRepository) Insert(ctx context.Context, session *Session) (*Session, error) {
	s.calls = append(s.calls, "Insert")
	return s.Repository.Insert(ctx, session)
}

type fixture struct {
	service   Service
	repo      *spyRepository
	users     *fakeUsers
	publisher *recordingPublisher
}

func setup(t *testing.T, userIDs ...string) *fixture {
	db := storetest.NewSQLite(t, &Session{})
	users := &fakeUsers{ids: map[string]bool{}}
	for _, id := range userIDs {
		users.ids[id] = true
	}
	repo := &spyRepository{Repository: NewSessionRepository(db)}
	publisher := &recordingPublisher{}

	return &fixture{
		service:   NewSessionService(repo, users, store.NewGormTransactor(db), publisher),
		repo:      repo,
		users:     users,
		publisher: publisher,
	}
}

func createReq(sessionID, userID, name string) *CreateSessionRequest {
	created := loginTime
	return &CreateSessionRequest{SessionID: sessionID, UserID: userID, SessionName: name, CreatedTime: &created}
}

func TestSessionService_Lifecycle(t *testing.T) {
	f := setup(t, "user_1")
	ctx := context.Background()

	created, err := f.service.CreateSession(ctx, createReq("sess_1", "user_1", "Chat A"))
	require.NoError(t, err)
	assert.Equal(t, StatusActive, created.ActiveStatus)
	assert.Nil(t, created.LogoutTime)

	renamed, err := f.service.RenameSession(ctx, "sess_1", "Chat A renamed")
	require.NoError(t, err)
	assert.Equal(t, "Chat A renamed", renamed.SessionName)
	assert.Equal(t, created.SessionID, renamed.SessionID)
	assert.Equal(t, created.UserID, renamed.UserID)
	assert.WithinDuration(t, created.LoginTime, renamed.LoginTime, time.Microsecond)
	assert.Equal(t, created.ActiveStatus, renamed.ActiveStatus)

	result, err := f.service.DeleteSession(ctx, "sess_1")
	require.NoError(t, err)
	assert.Equal(t, "Session 'sess_1' deleted successfully.", result.Message)

	sessions, err := f.service.GetSessionsByUser(ctx, "user_1")
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)

	_, err = f.service.DeleteSession(ctx, "sess_1")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Contains(t, err.Error(), "sess_1")

	assert.Equal(t, []string{
		models.ActionSessionCreated,
		models.ActionSessionRenamed,
		models.ActionSessionDeleted,
	}, f.publisher.actions())
}

func TestSessionService_CreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user is not found and writes nothing", func(t *testing.T) {
		f := setup(t)

		_, err := f.service.CreateSession(ctx, createReq("sess_1", "ghost", "Chat A"))
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.Equal(t, "User with user_id 'ghost' does not exist. Cannot create session.", err.Error())
		assert.Empty(t, f.repo.calls)
		assert.Empty(t, f.publisher.messages)

		found, err := f.repo.Repository.FindByID(ctx, "sess_1")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("duplicate session id is a conflict", func(t *testing.T) {
		f := setup(t, "user_1")

		_, err := f.service.CreateSession(ctx, createReq("sess_1", "user_1", "Chat A"))
		require.NoError(t, err)

		_, err = f.service.CreateSession(ctx, createReq("sess_1", "user_1", "Chat B"))
		assert.ErrorIs(t, err, models.ErrConflict)

		found, err := f.repo.Repository.FindByID(ctx, "sess_1")
		require.NoError(t, err)
		assert.Equal(t, "Chat A", found.SessionName)
	})

	t.Run("user check runs before the session check", func(t *testing.T) {
		f := setup(t, "user_1")

		_, err := f.service.CreateSession(ctx, createReq("sess_1", "user_1", "Chat A"))
		require.NoError(t, err)
		f.repo.calls = nil

		_, err = f.service.CreateSession(ctx, createReq("sess_1", "ghost", "Chat B"))
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.Empty(t, f.repo.calls)
	})

	t.Run("active status is forced on", func(t *testing.T) {
		f := setup(t, "user_1")

		created, err := f.service.CreateSession(ctx, createReq("sess_1", "user_1", "Chat A"))
		require.NoError(t, err)
		assert.Equal(t, StatusActive, created.ActiveStatus)
		assert.Equal(t, []string{"FindByID", "Insert"}, f.repo.calls)
	})

	t.Run("login time defaults to now", func(t *testing.T) {
		f := setup(t, "user_1")

		created, err := f.service.CreateSession(ctx, &CreateSessionRequest{
			SessionID: "sess_1", UserID: "user_1", SessionName: "Chat A",
		})
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), created.LoginTime, 5*time.Second)
	})
}

func TestSessionService_GetSessionsByUser(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user is not found", func(t *testing.T) {
		f := setup(t)

		_, err := f.service.GetSessionsByUser(ctx, "ghost")
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.Equal(t, "User with user_id 'ghost' not found.", err.Error())
	})

	t.Run("returns only the user's sessions", func(t *testing.T) {
		f := setup(t, "user_1", "user_2")
		for _, req := range []*CreateSessionRequest{
			createReq("sess_1", "user_1", "Chat A"),
			createReq("sess_2", "user_2", "Chat B"),
		} {
			_, err := f.service.CreateSession(ctx, req)
			require.NoError(t, err)
		}

		sessions, err := f.service.GetSessionsByUser(ctx, "user_1")
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, "sess_1", sessions[0].SessionID)
	})
}

func TestSessionService_RenameSession_NotFound(t *testing.T) {
	f := setup(t, "user_1")

	_, err := f.service.RenameSession(context.Background(), "ghost", "x")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, "Session with session_id 'ghost' not found.", err.Error())
	assert.Empty(t, f.publisher.messages)
}
