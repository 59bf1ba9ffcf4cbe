package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashPassword returns the lowercase hex SHA-256 digest of password.
// The digest is deterministic so stored hashes stay comparable across restarts
// and storage backends.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CheckPasswordHash compares a plaintext password with a stored hex digest.
func CheckPasswordHash(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}
	return strings.EqualFold(HashPassword(password), hash)
}
