package models

import "time"

// User is a registered account in the durable store
type User struct {
	CreatedAt    time.Time // registration time
	Username     string    // unique username
	PasswordHash string    // argon2id digest, see internal/crypto
	Admin        bool      // may delete messages
}
