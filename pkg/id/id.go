// Package id mints the public identifiers of members, loans and repayments.
package id

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// Len is the length of every public identifier.
const Len = 32

// New returns a random (v4) UUID as Len lowercase hex characters, without
// separators.
func New() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// Valid reports whether s has the shape New produces.
func Valid(s string) bool {
	if len(s) != Len {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
