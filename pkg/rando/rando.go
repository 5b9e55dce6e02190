// Package rando generates random secrets from crypto/rand.
package rando

import "crypto/rand"

// 62 symbols, so 5.95 bits per character.
// At 30 characters, that's 178 bits.
const alphaNum = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// AlphaNumChars returns a random string of nchars alphanumeric characters.
func AlphaNumChars(nchars int) string {
	buf := make([]byte, nchars)
	if n, _ := rand.Read(buf); n != nchars {
		panic("Unable to read from crypto/rand")
	}
	for i := 0; i < nchars; i++ {
		buf[i] = alphaNum[buf[i]%byte(len(alphaNum))]
	}
	return string(buf)
}
