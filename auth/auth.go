// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielhkuo/votio/middleware"
)

// CodeBytes is the number of random bytes behind an election code
const CodeBytes = 3

// GenerateElectionCode returns a random 6-character uppercase hex code.
// Uniqueness is the caller's job.
func GenerateElectionCode() (string, error) {
	b := make([]byte, CodeBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate election code: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

// VoterIdentity derives the key that limits a voter to one vote per election
type VoterIdentity interface {
	VoterID(r *http.Request) string
}

// IPIdentity identifies voters by client IP
type IPIdentity struct{}

func (IPIdentity) VoterID(r *http.Request) string {
	return middleware.GetClientIP(r)
}

// VoterIDFunc adapts a function to VoterIdentity
type VoterIDFunc func(r *http.Request) string

func (f VoterIDFunc) VoterID(r *http.Request) string {
	return f(r)
}
