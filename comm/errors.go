// SPDX-License-Identifier: MIT

package comm

import "errors"

var (
	// ErrInvalidSize indicates a World was requested with fewer than one rank.
	ErrInvalidSize = errors.New("comm: world size must be >= 1")

	// ErrInvalidRank indicates a root (or rank) argument outside [0, Size).
	ErrInvalidRank = errors.New("comm: rank out of range")

	// ErrAborted is returned from a collective when the World was aborted while
	// the rank was waiting for its peers.
	ErrAborted = errors.New("comm: world aborted")

	// ErrPayloadMismatch indicates ranks entered the same collective with
	// values of different types, i.e. the call sequences diverged.
	ErrPayloadMismatch = errors.New("comm: collective payload type mismatch")
)
