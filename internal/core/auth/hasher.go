// Package auth holds the credential primitives: password key stretching and
// signed bearer tokens. Both are pure computation; nothing here touches storage.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// hashIterations is the PBKDF2 round count. Raising it invalidates no
	// stored digests (the count is fixed per deployment, not per user).
	hashIterations = 120_000
	saltLen        = 32
	digestLen      = 32
)

// GenerateSalt returns a fresh 256-bit random salt. Each user gets their own;
// salts are never reused across accounts.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// HashPassword derives a digest from password and salt using
// PBKDF2-HMAC-SHA256. Deterministic for a given (password, salt) pair.
func HashPassword(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, hashIterations, digestLen, sha256.New)
}

// VerifyPassword recomputes the digest for the candidate password and compares
// it against the stored one in constant time.
func VerifyPassword(password string, salt, digest []byte) bool {
	computed := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(computed, digest) == 1
}
