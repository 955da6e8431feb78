package chat

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/iudanet/chatbix/internal/crypto"
	"github.com/iudanet/chatbix/internal/models"
	"github.com/iudanet/chatbix/internal/server/selection"
	"github.com/iudanet/chatbix/internal/server/storage"
)

// mockStore is an in-memory implementation of both storage contracts
type mockStore struct {
	users    map[string]*models.User
	err      error // returned by every call when set
	messages []*models.Message
	nextID   int64
	mu       sync.Mutex
}

func newMockStore() *mockStore {
	return &mockStore{users: make(map[string]*models.User)}
}

func (m *mockStore) InsertMessage(_ context.Context, msg *models.Message) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.nextID++
	stored := *msg
	stored.ID = m.nextID
	m.messages = append(m.messages, &stored)
	return stored.ID, nil
}

func (m *mockStore) SelectMessages(_ context.Context, req selection.Request) ([]*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return selection.Apply(req, m.messages), nil
}

func (m *mockStore) DeleteMessage(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, msg := range m.messages {
		if msg.ID == id {
			m.messages = append(m.messages[:i], m.messages[i+1:]...)
			return nil
		}
	}
	return storage.ErrMessageNotFound
}

func (m *mockStore) Search(_ context.Context, query string, limit int) ([]*models.SearchHit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	hits := make([]*models.SearchHit, 0)
	for _, msg := range m.messages {
		if n := strings.Count(msg.Content, query); n > 0 {
			hits = append(hits, &models.SearchHit{
				ID: msg.ID, Author: msg.Author, Content: msg.Content,
				Timestamp: msg.Timestamp, Rank: float64(n),
			})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Rank > hits[j].Rank })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (m *mockStore) Ping(context.Context) error {
	return m.err
}

func (m *mockStore) CountUsersByName(_ context.Context, username string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	if _, ok := m.users[username]; ok {
		return 1, nil
	}
	return 0, nil
}

func (m *mockStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[user.Username]; ok {
		return storage.ErrUserAlreadyExists
	}
	u := *user
	m.users[user.Username] = &u
	return nil
}

func (m *mockStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockStore) SetAdmin(_ context.Context, username string, admin bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	u, ok := m.users[username]
	if !ok {
		return storage.ErrUserNotFound
	}
	u.Admin = admin
	return nil
}

// plainHasher is a reversible stand-in for argon2 that keeps tests fast
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "plain$" + password, nil
}

func (plainHasher) Verify(password, digest string) error {
	if digest != "plain$"+password {
		return crypto.ErrPasswordMismatch
	}
	return nil
}
