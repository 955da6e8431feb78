package models

import (
	"time"

	"github.com/iudanet/chatbix/internal/tags"
)

// Message is a stored chat message. Immutable once stored.
type Message struct {
	Timestamp time.Time // UTC, whole seconds
	Color     *string   // optional display color
	Channel   *string   // nil means the default channel
	Author    string
	Content   string
	ID        int64 // assigned by the store, strictly increasing
	Tags      tags.Tags
}

// NewMessage is a message as submitted by a client, before acceptance.
type NewMessage struct {
	Tags     *int32  // caller-suggested bits, sanitized with tags.FromClient
	Color    *string // optional
	Channel  *string // optional
	AuthKey  *string // optional token proving identity
	Username string
	Content  string
}

// SearchHit is one full-text search result, ranked by relevance.
type SearchHit struct {
	Timestamp time.Time
	Author    string
	Content   string
	ID        int64
	Rank      float64 // higher is more relevant
}
