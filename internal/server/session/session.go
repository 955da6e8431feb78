// Package session keeps the in-memory map of logged-in users and the auth
// keys issued to them. Nothing here is persisted: a restart logs everyone out.
package session

import (
	"errors"
	"sync"

	"github.com/iudanet/chatbix/internal/crypto"
)

var (
	// ErrNotLoggedIn indicates that no session exists for the username
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrInvalidAuthKey indicates that a session exists but the key differs
	ErrInvalidAuthKey = errors.New("invalid auth key")
)

// Status is the outcome of Check.
type Status int

const (
	// NotLoggedIn: no session for that username.
	NotLoggedIn Status = iota
	// AuthFailed: a session exists but the presented key does not match.
	AuthFailed
	// Connected: the key is valid; Result.Admin carries the admin flag.
	Connected
)

func (s Status) String() string {
	switch s {
	case NotLoggedIn:
		return "not_logged_in"
	case AuthFailed:
		return "auth_failed"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

// Result of a credential check. Admin is only meaningful when Status is
// Connected.
type Result struct {
	Status Status
	Admin  bool
}

type cachedUser struct {
	authKey string
	admin   bool
}

// Cache maps usernames to issued auth keys.
type Cache struct {
	users  map[string]cachedUser
	newKey func() string
	mu     sync.RWMutex
}

// New creates an empty cache that issues keys with crypto.GenerateAuthKey.
func New() *Cache {
	return &Cache{
		users:  make(map[string]cachedUser),
		newKey: crypto.GenerateAuthKey,
	}
}

// Login returns the auth key for username, issuing a new one only when no
// session exists yet. Repeated logins never rotate the key; the admin flag
// is refreshed from the latest call.
func (c *Cache) Login(username string, admin bool) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if u, ok := c.users[username]; ok {
		u.admin = admin
		c.users[username] = u
		return u.authKey
	}

	key := c.newKey()
	c.users[username] = cachedUser{authKey: key, admin: admin}
	return key
}

// Logout removes the session for username if authKey matches it.
func (c *Cache) Logout(username, authKey string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, ok := c.users[username]
	if !ok {
		return ErrNotLoggedIn
	}
	if u.authKey != authKey {
		return ErrInvalidAuthKey
	}

	delete(c.users, username)
	return nil
}

// Check validates a username/auth key pair.
func (c *Cache) Check(username, authKey string) Result {
	c.mu.RLock()
	u, ok := c.users[username]
	c.mu.RUnlock()

	switch {
	case !ok:
		return Result{Status: NotLoggedIn}
	case u.authKey != authKey:
		return Result{Status: AuthFailed}
	default:
		return Result{Status: Connected, Admin: u.admin}
	}
}

// Len returns the number of active sessions.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.users)
}
