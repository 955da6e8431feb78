// Package presence tracks who has contacted the server recently.
//
// The view is best-effort: records live only in memory, are refreshed by
// heartbeats and dropped by a periodic sweep once they fall outside the
// expiration window.
package presence

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"
)

const (
	// DefaultExpiration is how long a record survives without a heartbeat
	DefaultExpiration = 30 * time.Second
	// DefaultSweepInterval is the cadence of the background sweep
	DefaultSweepInterval = 2 * time.Second
)

// ConnectedUser is a presence record.
type ConnectedUser struct {
	LastActive time.Time // last heartbeat that reported activity
	LastAnswer time.Time // last heartbeat of any kind, drives expiry
	Username   string
	LoggedIn   bool // whether the last heartbeat carried a valid auth key
}

// Tracker holds the presence records keyed by username.
type Tracker struct {
	users  map[string]*ConnectedUser
	now    func() time.Time
	logger *slog.Logger
	window time.Duration
	mu     sync.RWMutex
}

// NewTracker creates a tracker with the given expiration window.
func NewTracker(logger *slog.Logger, window time.Duration) *Tracker {
	return &Tracker{
		users:  make(map[string]*ConnectedUser),
		now:    time.Now,
		logger: logger,
		window: window,
	}
}

// Update records a heartbeat. LoggedIn is overwritten with the current
// request's auth outcome; LastActive moves only when active is true.
func (t *Tracker) Update(username string, loggedIn, active bool) {
	now := t.now().UTC()

	t.mu.Lock()
	defer t.mu.Unlock()

	u, ok := t.users[username]
	if !ok {
		t.users[username] = &ConnectedUser{
			Username:   username,
			LoggedIn:   loggedIn,
			LastActive: now,
			LastAnswer: now,
		}
		return
	}

	u.LoggedIn = loggedIn
	u.LastAnswer = now
	if active {
		u.LastActive = now
	}
}

// Refresh removes every record whose LastAnswer is at least one window old
// and returns how many were removed.
func (t *Tracker) Refresh() int {
	cutoff := t.now().UTC().Add(-t.window)

	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for name, u := range t.users {
		if !u.LastAnswer.After(cutoff) {
			delete(t.users, name)
			removed++
		}
	}
	return removed
}

// Snapshot returns a copy of all records sorted by username. Callers must
// not rely on the ordering.
func (t *Tracker) Snapshot() []ConnectedUser {
	t.mu.RLock()
	out := make([]ConnectedUser, 0, len(t.users))
	for _, u := range t.users {
		out = append(out, *u)
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

// Len returns the number of tracked users.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.users)
}

// Run sweeps expired records every interval until ctx is cancelled.
func (t *Tracker) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := t.Refresh(); n > 0 {
				t.logger.Debug("presence records expired", "removed", n, "remaining", t.Len())
			}
		}
	}
}
