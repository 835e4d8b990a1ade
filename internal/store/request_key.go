package store

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// RequestKey returns the identity a response snapshot is stored under: the
// BLAKE2b-256 digest of the upper-cased method and the URL.
func RequestKey(method, url string) string {
	sum := blake2b.Sum256([]byte(strings.ToUpper(method) + " " + url))
	return hex.EncodeToString(sum[:])
}
