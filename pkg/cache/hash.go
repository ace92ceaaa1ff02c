package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Key builds a cache key from a namespace prefix and an identifier.
// The identifier is hashed so URLs with arbitrary characters are safe keys.
func Key(prefix, id string) string {
	return prefix + Hash([]byte(id))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
