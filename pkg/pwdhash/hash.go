// Package pwdhash stores passwords as versioned scrypt hashes, and hashes
// session tokens before they touch the database.
package pwdhash

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

// The encoded hash is 1 byte of version, followed by the salt, followed by the
// scrypt key. Everything is base64 encoded before storage, so that the column
// can be plain TEXT on any database.

const hashVersion1 = 1
const saltSize = 16
const keySize = 32
const scryptN = 16384
const scryptR = 8
const scryptP = 1
const rawHashLen = 1 + saltSize + keySize

func newSalt() []byte {
	s := make([]byte, saltSize)
	if n, _ := rand.Read(s); n != saltSize {
		panic("Unable to read from crypto/rand")
	}
	return s
}

func deriveKey(password string, salt []byte) []byte {
	dk, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		panic(fmt.Sprintf("Error hashing password: %v", err))
	}
	return dk
}

// Hash returns a salted scrypt hash of password, base64 encoded.
func Hash(password string) string {
	salt := newSalt()
	raw := make([]byte, 0, rawHashLen)
	raw = append(raw, hashVersion1)
	raw = append(raw, salt...)
	raw = append(raw, deriveKey(password, salt)...)
	return base64.RawStdEncoding.EncodeToString(raw)
}

// Verify returns true if password matches a hash produced by Hash.
func Verify(password, encoded string) bool {
	raw, err := base64.RawStdEncoding.DecodeString(encoded)
	if err != nil || len(raw) != rawHashLen || raw[0] != hashVersion1 {
		return false
	}
	salt := raw[1 : 1+saltSize]
	dk := deriveKey(password, salt)
	return subtle.ConstantTimeCompare(dk, raw[1+saltSize:]) == 1
}

// TokenKey hashes a session token for storage, so that the plaintext token
// only ever lives with the caller, and a DB leak (or a timing attack on the
// index BTree) doesn't expose usable credentials.
func TokenKey(token string) string {
	h := sha256.Sum256([]byte(token))
	return base64.RawStdEncoding.EncodeToString(h[:])
}
