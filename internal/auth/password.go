package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Stored hashes are "<hex-salt>:<hex-derived-key>". The derivation
// parameters are part of the storage contract: changing any of them makes
// every stored hash unverifiable.
const (
	saltLength       = 16
	pbkdf2Iterations = 1000
	pbkdf2KeyLength  = 64
)

// HashPassword derives a salted pbkdf2-SHA512 hash of plaintext and encodes
// salt and key together so verification is self-contained.
func HashPassword(plaintext string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(plaintext), salt, pbkdf2Iterations, pbkdf2KeyLength, sha512.New)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// VerifyPassword re-derives the key from plaintext with the stored salt and
// compares in constant time. Malformed stored values verify as false.
func VerifyPassword(plaintext, stored string) bool {
	salt, want, ok := splitHash(stored)
	if !ok {
		return false
	}

	got := pbkdf2.Key([]byte(plaintext), salt, pbkdf2Iterations, pbkdf2KeyLength, sha512.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func splitHash(stored string) (salt, key []byte, ok bool) {
	saltHex, keyHex, found := strings.Cut(stored, ":")
	if !found || saltHex == "" || keyHex == "" {
		return nil, nil, false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return nil, nil, false
	}
	key, err = hex.DecodeString(keyHex)
	if err != nil {
		return nil, nil, false
	}
	return salt, key, true
}
