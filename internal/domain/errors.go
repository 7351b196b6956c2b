package domain

import "errors"

var (
	// ErrRoundOverlap is returned when a new round's dates intersect an
	// existing round's dates; the round is not persisted.
	ErrRoundOverlap = errors.New("round dates overlap an existing round")
	// ErrNoRounds is returned when an operation needs at least one round
	// and none exist.
	ErrNoRounds = errors.New("no rounds exist")
	// ErrGuessNotFound indicates a marking update addressed an unknown guess.
	ErrGuessNotFound = errors.New("guess not found")
)
