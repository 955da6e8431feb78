// Package chat orchestrates message posting, selection, presence and
// authentication on top of the session cache, the presence tracker and the
// durable store.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/iudanet/chatbix/internal/crypto"
	"github.com/iudanet/chatbix/internal/models"
	"github.com/iudanet/chatbix/internal/server/presence"
	"github.com/iudanet/chatbix/internal/server/selection"
	"github.com/iudanet/chatbix/internal/server/session"
	"github.com/iudanet/chatbix/internal/server/storage"
	"github.com/iudanet/chatbix/internal/tags"
	"github.com/iudanet/chatbix/internal/validation"
)

const (
	// DefaultSearchLimit is used when the caller passes no limit
	DefaultSearchLimit = 20
	// MaxSearchLimit caps the number of search hits
	MaxSearchLimit = 100
)

// Hasher computes and verifies one-way password digests.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) error
}

// HeartbeatRequest is one poll from a widget.
// An empty Username is an anonymous poll that does not touch presence.
type HeartbeatRequest struct {
	Username  string
	AuthKey   string
	Selection selection.Request
	Active    bool
}

// HeartbeatResult carries the selected messages and a presence snapshot.
type HeartbeatResult struct {
	Messages []*models.Message
	Users    []presence.ConnectedUser
	LoggedIn bool
}

// Service is the chat core. It is safe for concurrent use.
type Service struct {
	logger   *slog.Logger
	messages storage.MessageStorage
	users    storage.UserStorage
	hasher   Hasher
	sessions *session.Cache
	presence *presence.Tracker
	now      func() time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewService creates a new chat service
func NewService(
	logger *slog.Logger,
	messages storage.MessageStorage,
	users storage.UserStorage,
	hasher Hasher,
	sessions *session.Cache,
	tracker *presence.Tracker,
) *Service {
	return &Service{
		logger:   logger,
		messages: messages,
		users:    users,
		hasher:   hasher,
		sessions: sessions,
		presence: tracker,
		now:      time.Now,
	}
}

// Start launches the presence sweeper. It runs until ctx is cancelled or
// Stop is called.
func (s *Service) Start(ctx context.Context, sweepInterval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.presence.Run(ctx, sweepInterval)
	}()
}

// Stop cancels the sweeper and waits for it to exit.
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// Submit validates and stores a new message, returning its id.
// Without an auth key the message is stored anonymously; with one, the key
// must be valid and the logged_in tag bit is set.
func (s *Service) Submit(ctx context.Context, msg *models.NewMessage) (int64, error) {
	if err := validation.ValidateUsername(msg.Username); err != nil {
		return 0, malformed(err)
	}
	if err := validation.ValidateContent(msg.Content); err != nil {
		return 0, malformed(err)
	}
	if err := validation.ValidateChannel(msg.Channel); err != nil {
		return 0, malformed(err)
	}
	if err := validation.ValidateColor(msg.Color); err != nil {
		return 0, malformed(err)
	}

	var t tags.Tags
	if msg.Tags != nil {
		t = tags.FromClient(*msg.Tags)
	}

	if msg.AuthKey != nil {
		res := s.sessions.Check(msg.Username, *msg.AuthKey)
		if res.Status != session.Connected {
			return 0, authError(res)
		}
		t = t.With(tags.LoggedIn)
	}

	stored := &models.Message{
		Author:    msg.Username,
		Content:   msg.Content,
		Timestamp: s.now().UTC().Truncate(time.Second),
		Tags:      t,
		Color:     msg.Color,
		Channel:   msg.Channel,
	}

	id, err := s.messages.InsertMessage(ctx, stored)
	if err != nil {
		return 0, storeError("insert message", err)
	}

	s.logger.Debug("message stored", "id", id, "author", msg.Username, "logged_in", t.Has(tags.LoggedIn))
	return id, nil
}

// DeleteMessage removes a message. Only admins may delete.
func (s *Service) DeleteMessage(ctx context.Context, username, authKey string, id int64) error {
	res := s.sessions.Check(username, authKey)
	if res.Status != session.Connected {
		return authError(res)
	}
	if !res.Admin {
		return ErrForbidden
	}

	if err := s.messages.DeleteMessage(ctx, id); err != nil {
		if errors.Is(err, storage.ErrMessageNotFound) {
			return ErrMessageNotFound
		}
		return storeError("delete message", err)
	}

	s.logger.Info("message deleted", "id", id, "admin", username)
	return nil
}

// Messages executes a selection without touching presence.
func (s *Service) Messages(ctx context.Context, req selection.Request) ([]*models.Message, error) {
	msgs, err := s.messages.SelectMessages(ctx, req)
	if err != nil {
		return nil, storeError("select messages", err)
	}
	return msgs, nil
}

// Heartbeat records presence for the caller, if named, and returns the
// selected messages with the current presence snapshot. Bad credentials
// never fail a heartbeat, they only mark the caller as not logged in.
func (s *Service) Heartbeat(ctx context.Context, req HeartbeatRequest) (*HeartbeatResult, error) {
	result := &HeartbeatResult{}

	if req.Username != "" {
		if err := validation.ValidateUsername(req.Username); err != nil {
			return nil, malformed(err)
		}

		// сессия и присутствие блокируются по отдельности
		if req.AuthKey != "" {
			result.LoggedIn = s.sessions.Check(req.Username, req.AuthKey).Status == session.Connected
		}
		s.presence.Update(req.Username, result.LoggedIn, req.Active)
	}

	msgs, err := s.Messages(ctx, req.Selection)
	if err != nil {
		return nil, err
	}

	result.Messages = msgs
	result.Users = s.presence.Snapshot()
	return result, nil
}

// Register creates a user and logs them in.
func (s *Service) Register(ctx context.Context, username, password string) (string, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return "", malformed(err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return "", malformed(err)
	}

	count, err := s.users.CountUsersByName(ctx, username)
	if err != nil {
		return "", storeError("count users", err)
	}
	if count > 0 {
		return "", ErrUsernameInUse
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: digest,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		// параллельная регистрация того же имени
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			return "", ErrUsernameInUse
		}
		return "", storeError("create user", err)
	}

	key := s.sessions.Login(username, false)
	s.logger.Info("user registered", "username", username, "sessions", s.sessions.Len())
	return key, nil
}

// Login verifies the password and returns the session auth key. Repeated
// logins return the same key.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", storeError("get user", err)
	}

	if err := s.hasher.Verify(password, user.PasswordHash); err != nil {
		if !errors.Is(err, crypto.ErrPasswordMismatch) {
			s.logger.Error("stored password digest is unusable", "username", username, "error", err)
		}
		return "", ErrInvalidCredentials
	}

	key := s.sessions.Login(username, user.Admin)
	s.logger.Debug("user logged in", "username", username, "admin", user.Admin, "sessions", s.sessions.Len())
	return key, nil
}

// Logout drops the session of username.
func (s *Service) Logout(username, authKey string) error {
	if err := s.sessions.Logout(username, authKey); err != nil {
		if errors.Is(err, session.ErrInvalidAuthKey) {
			return ErrInvalidAuthKey
		}
		return ErrNotLoggedIn
	}
	s.logger.Debug("user logged out", "username", username, "sessions", s.sessions.Len())
	return nil
}

// Search runs a full-text query. limit <= 0 means DefaultSearchLimit and
// values above MaxSearchLimit are capped.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]*models.SearchHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, malformed(errors.New("search query cannot be empty"))
	}

	switch {
	case limit <= 0:
		limit = DefaultSearchLimit
	case limit > MaxSearchLimit:
		limit = MaxSearchLimit
	}

	hits, err := s.messages.Search(ctx, query, limit)
	if err != nil {
		return nil, storeError("search messages", err)
	}
	return hits, nil
}

// PromoteAdmins grants the admin flag to every listed user that exists.
// Unknown usernames are logged and skipped.
func (s *Service) PromoteAdmins(ctx context.Context, usernames []string) error {
	for _, name := range usernames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		err := s.users.SetAdmin(ctx, name, true)
		switch {
		case err == nil:
			s.logger.Info("admin granted", "username", name)
		case errors.Is(err, storage.ErrUserNotFound):
			s.logger.Warn("admin user is not registered", "username", name)
		default:
			return storeError("set admin", err)
		}
	}
	return nil
}

// Ping checks that the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.messages.Ping(ctx); err != nil {
		return storeError("ping", err)
	}
	return nil
}
