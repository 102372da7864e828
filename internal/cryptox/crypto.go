// Package cryptox holds the key-derivation helpers used by the login flow.
// The client never sends the password: it derives a key from the password
// and a server-provided salt and sends only a verifier of that key.
package cryptox

import (
	"crypto/sha256"

	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of a freshly generated user salt.
const SaltSize = 32

// MakeVerifier returns the value the server stores and compares on login.
func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

// DeriveMasterKey stretches password with argon2id.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}
