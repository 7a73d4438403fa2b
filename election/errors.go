// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrVotingClosed = errors.New("voting has ended")
	ErrAlreadyVoted = errors.New("already voted in this election")

	// errCodeTaken marks an election insert that lost a race for its code
	errCodeTaken = errors.New("election code taken")
)

// ValidationError rejects a creation request before anything is written
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}
