package crypto

import (
	"crypto/rand"
)

// AuthKeyLength is the length of a session auth key
const AuthKeyLength = 16

const authKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateAuthKey returns a random alphanumeric token of AuthKeyLength
// characters drawn from crypto/rand. Bytes above the largest multiple of the
// alphabet size are rejected so that every character is equally likely.
func GenerateAuthKey() string {
	const limit = 256 - 256%len(authKeyAlphabet)

	key := make([]byte, 0, AuthKeyLength)
	buf := make([]byte, AuthKeyLength*2)

	for len(key) < AuthKeyLength {
		// crypto/rand.Read never returns an error since Go 1.24
		_, _ = rand.Read(buf)
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			key = append(key, authKeyAlphabet[int(b)%len(authKeyAlphabet)])
			if len(key) == AuthKeyLength {
				break
			}
		}
	}

	return string(key)
}
