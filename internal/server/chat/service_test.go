package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/chatbix/internal/models"
	"github.com/iudanet/chatbix/internal/server/presence"
	"github.com/iudanet/chatbix/internal/server/selection"
	"github.com/iudanet/chatbix/internal/server/session"
	"github.com/iudanet/chatbix/internal/server/storage"
	"github.com/iudanet/chatbix/internal/tags"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 750_000_000, time.UTC)

func newTestService(t *testing.T) (*Service, *mockStore) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := newMockStore()
	svc := NewService(logger, store, store, plainHasher{}, session.New(),
		presence.NewTracker(logger, presence.DefaultExpiration))
	svc.now = func() time.Time { return testNow }
	return svc, store
}

func ptr[T any](v T) *T { return &v }

func defaultSelection() selection.Request {
	return selection.NewRequest(selection.DefaultInterval(), nil, true)
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		prepare  func(s *Service) *models.NewMessage
		wantErr  error
		name     string
		wantTags tags.Tags
	}{
		{
			name: "anonymous message",
			prepare: func(*Service) *models.NewMessage {
				return &models.NewMessage{Username: "guest", Content: "hi"}
			},
		},
		{
			name: "client cannot set logged_in",
			prepare: func(*Service) *models.NewMessage {
				return &models.NewMessage{Username: "guest", Content: "hi", Tags: ptr(int32(tags.LoggedIn | tags.Bot))}
			},
			wantTags: tags.Bot,
		},
		{
			name: "valid auth key sets logged_in",
			prepare: func(s *Service) *models.NewMessage {
				key := s.sessions.Login("alice", false)
				return &models.NewMessage{Username: "alice", Content: "hi", AuthKey: &key, Tags: ptr(int32(tags.NoNotif))}
			},
			wantTags: tags.LoggedIn | tags.NoNotif,
		},
		{
			name: "wrong auth key",
			prepare: func(s *Service) *models.NewMessage {
				s.sessions.Login("alice", false)
				return &models.NewMessage{Username: "alice", Content: "hi", AuthKey: ptr("wrong")}
			},
			wantErr: ErrInvalidAuthKey,
		},
		{
			name: "auth key without session",
			prepare: func(*Service) *models.NewMessage {
				return &models.NewMessage{Username: "bob", Content: "hi", AuthKey: ptr("whatever")}
			},
			wantErr: ErrNotLoggedIn,
		},
		{
			name: "empty content",
			prepare: func(*Service) *models.NewMessage {
				return &models.NewMessage{Username: "guest", Content: "  "}
			},
			wantErr: ErrMalformedInput,
		},
		{
			name: "invalid channel",
			prepare: func(*Service) *models.NewMessage {
				return &models.NewMessage{Username: "guest", Content: "hi", Channel: ptr("no spaces")}
			},
			wantErr: ErrMalformedInput,
		},
		{
			name: "invalid color",
			prepare: func(*Service) *models.NewMessage {
				return &models.NewMessage{Username: "guest", Content: "hi", Color: ptr("red")}
			},
			wantErr: ErrMalformedInput,
		},
		{
			name: "invalid username",
			prepare: func(*Service) *models.NewMessage {
				return &models.NewMessage{Username: "", Content: "hi"}
			},
			wantErr: ErrMalformedInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService(t)

			id, err := svc.Submit(ctx, tt.prepare(svc))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, store.messages, "rejected message must not be stored")
				return
			}

			require.NoError(t, err)
			require.Len(t, store.messages, 1)
			stored := store.messages[0]
			assert.Equal(t, id, stored.ID)
			assert.Equal(t, tt.wantTags, stored.Tags)
			assert.Equal(t, testNow.Truncate(time.Second), stored.Timestamp)
		})
	}
}

func TestService_Submit_KeepsChannelAndColor(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.Submit(context.Background(), &models.NewMessage{
		Username: "guest", Content: "hi", Channel: ptr("dev"), Color: ptr("#abc"),
	})
	require.NoError(t, err)

	require.Len(t, store.messages, 1)
	assert.Equal(t, "dev", *store.messages[0].Channel)
	assert.Equal(t, "#abc", *store.messages[0].Color)
}

func TestService_Submit_StoreFailure(t *testing.T) {
	svc, store := newTestService(t)
	store.err = errors.New("connection reset")

	_, err := svc.Submit(context.Background(), &models.NewMessage{Username: "guest", Content: "hi"})
	assert.ErrorIs(t, err, ErrDatabaseBusy)

	store.err = storage.ErrBusy
	_, err = svc.Submit(context.Background(), &models.NewMessage{Username: "guest", Content: "hi"})
	assert.ErrorIs(t, err, ErrDatabaseBusy)
	assert.ErrorIs(t, err, storage.ErrBusy)
}

func TestService_DeleteMessage(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		auth    func(s *Service) (string, string)
		wantErr error
		name    string
		id      int64
	}{
		{
			name: "admin deletes",
			auth: func(s *Service) (string, string) { return "root", s.sessions.Login("root", true) },
			id:   1,
		},
		{
			name:    "non admin is forbidden",
			auth:    func(s *Service) (string, string) { return "alice", s.sessions.Login("alice", false) },
			id:      1,
			wantErr: ErrForbidden,
		},
		{
			name: "wrong key",
			auth: func(s *Service) (string, string) {
				s.sessions.Login("root", true)
				return "root", "wrong"
			},
			id:      1,
			wantErr: ErrInvalidAuthKey,
		},
		{
			name:    "not logged in",
			auth:    func(*Service) (string, string) { return "root", "key" },
			id:      1,
			wantErr: ErrNotLoggedIn,
		},
		{
			name:    "unknown id",
			auth:    func(s *Service) (string, string) { return "root", s.sessions.Login("root", true) },
			id:      99,
			wantErr: ErrMessageNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService(t)
			_, err := svc.Submit(ctx, &models.NewMessage{Username: "guest", Content: "spam"})
			require.NoError(t, err)

			username, key := tt.auth(svc)
			err = svc.DeleteMessage(ctx, username, key, tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Len(t, store.messages, 1)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, store.messages)
		})
	}
}

func TestService_Heartbeat(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Submit(ctx, &models.NewMessage{Username: "guest", Content: "hello"})
	require.NoError(t, err)

	key := svc.sessions.Login("alice", false)

	res, err := svc.Heartbeat(ctx, HeartbeatRequest{
		Username: "alice", AuthKey: key, Active: true, Selection: defaultSelection(),
	})
	require.NoError(t, err)
	assert.True(t, res.LoggedIn)
	require.Len(t, res.Messages, 1)
	require.Len(t, res.Users, 1)
	assert.Equal(t, "alice", res.Users[0].Username)
	assert.True(t, res.Users[0].LoggedIn)

	// неверный ключ не ломает heartbeat
	res, err = svc.Heartbeat(ctx, HeartbeatRequest{
		Username: "alice", AuthKey: "wrong", Active: true, Selection: defaultSelection(),
	})
	require.NoError(t, err)
	assert.False(t, res.LoggedIn)
	require.Len(t, res.Users, 1)
	assert.False(t, res.Users[0].LoggedIn)

	res, err = svc.Heartbeat(ctx, HeartbeatRequest{Username: "bob", Selection: defaultSelection()})
	require.NoError(t, err)
	assert.False(t, res.LoggedIn)
	assert.Len(t, res.Users, 2)
}

func TestService_Heartbeat_Anonymous(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Heartbeat(context.Background(), HeartbeatRequest{Selection: defaultSelection()})
	require.NoError(t, err)
	assert.Empty(t, res.Users)
	assert.NotNil(t, res.Messages)
}

func TestService_Heartbeat_Errors(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.Heartbeat(context.Background(), HeartbeatRequest{Username: "bad name", Selection: defaultSelection()})
	assert.ErrorIs(t, err, ErrMalformedInput)

	store.err = storage.ErrBusy
	_, err = svc.Heartbeat(context.Background(), HeartbeatRequest{Username: "alice", Selection: defaultSelection()})
	assert.ErrorIs(t, err, ErrDatabaseBusy)
}

func TestService_Messages_Selection(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for i, ch := range []*string{nil, nil, nil, ptr("dev")} {
		svc.now = func() time.Time { return testNow.Add(time.Duration(i) * time.Second) }
		_, err := svc.Submit(ctx, &models.NewMessage{Username: "guest", Content: "m", Channel: ch})
		require.NoError(t, err)
	}

	msgs, err := svc.Messages(ctx, selection.NewRequest(selection.Last(2), nil, true))
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, int64(2), msgs[0].ID)
	assert.Equal(t, int64(3), msgs[1].ID)

	msgs, err = svc.Messages(ctx, selection.NewRequest(selection.Last(10), nil, false))
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	key, err := svc.Register(ctx, "alice", "password1")
	require.NoError(t, err)
	assert.Len(t, key, 16)
	assert.Equal(t, session.Connected, svc.sessions.Check("alice", key).Status)
	assert.False(t, svc.sessions.Check("alice", key).Admin)

	digest := store.users["alice"].PasswordHash
	assert.NotContains(t, []string{"", "password1"}, digest)

	// повторная регистрация не меняет digest и не выдает токен
	sessionsBefore := svc.sessions.Len()
	_, err = svc.Register(ctx, "alice", "otherpassword")
	assert.ErrorIs(t, err, ErrUsernameInUse)
	assert.Equal(t, digest, store.users["alice"].PasswordHash)
	assert.Equal(t, sessionsBefore, svc.sessions.Len())
}

func TestService_Register_Validation(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.Register(context.Background(), "bad name", "password1")
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = svc.Register(context.Background(), "alice", "short")
	assert.ErrorIs(t, err, ErrMalformedInput)

	assert.Empty(t, store.users)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	registered, err := svc.Register(ctx, "alice", "password1")
	require.NoError(t, err)

	key, err := svc.Login(ctx, "alice", "password1")
	require.NoError(t, err)
	assert.Equal(t, registered, key, "login never rotates an existing token")

	_, err = svc.Login(ctx, "alice", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	store.users["root"] = &models.User{Username: "root", PasswordHash: "plain$rootpass1", Admin: true}
	rootKey, err := svc.Login(ctx, "root", "rootpass1")
	require.NoError(t, err)
	res := svc.sessions.Check("root", rootKey)
	assert.Equal(t, session.Connected, res.Status)
	assert.True(t, res.Admin)
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	key, err := svc.Register(ctx, "alice", "password1")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Logout("alice", "wrong"), ErrInvalidAuthKey)
	assert.ErrorIs(t, svc.Logout("bob", key), ErrNotLoggedIn)

	require.NoError(t, svc.Logout("alice", key))
	assert.Equal(t, session.NotLoggedIn, svc.sessions.Check("alice", key).Status)
	assert.ErrorIs(t, svc.Logout("alice", key), ErrNotLoggedIn)

	// после logout новый login выдает новый токен
	newKey, err := svc.Login(ctx, "alice", "password1")
	require.NoError(t, err)
	assert.Len(t, newKey, 16)
}

func TestService_Search(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, content := range []string{"deploy", "deploy deploy", "lunch"} {
		_, err := svc.Submit(ctx, &models.NewMessage{Username: "guest", Content: content})
		require.NoError(t, err)
	}

	hits, err := svc.Search(ctx, "deploy", 0)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, int64(2), hits[0].ID)

	hits, err = svc.Search(ctx, "deploy", 1)
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	_, err = svc.Search(ctx, "   ", 10)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestService_PromoteAdmins(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, err := svc.Register(ctx, "alice", "password1")
	require.NoError(t, err)

	require.NoError(t, svc.PromoteAdmins(ctx, []string{" alice ", "", "ghost"}))
	assert.True(t, store.users["alice"].Admin)

	store.err = errors.New("boom")
	assert.ErrorIs(t, svc.PromoteAdmins(ctx, []string{"alice"}), ErrDatabaseBusy)
}

func TestService_Ping(t *testing.T) {
	svc, store := newTestService(t)
	assert.NoError(t, svc.Ping(context.Background()))

	store.err = storage.ErrBusy
	assert.ErrorIs(t, svc.Ping(context.Background()), ErrDatabaseBusy)
}

func TestService_StartStop(t *testing.T) {
	svc, _ := newTestService(t)
	svc.Start(context.Background(), time.Millisecond)
	svc.presence.Update("alice", false, true)

	done := make(chan struct{})
	go func() {
		svc.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}

	// повторный Stop безопасен
	svc.Stop()
}
