package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mark is the review status of one correctness field. A guess starts
// Unmarked; reviewing sets it to MarkCorrect or MarkIncorrect.
type Mark int

const (
	Unmarked Mark = iota
	MarkCorrect
	MarkIncorrect
)

// MarkOf converts an automated match result into a Mark.
func MarkOf(correct bool) Mark {
	if correct {
		return MarkCorrect
	}
	return MarkIncorrect
}

// Correct reports whether the field has been marked correct. Unmarked
// counts as not correct for display purposes.
func (m Mark) Correct() bool {
	return m == MarkCorrect
}

func (m Mark) String() string {
	switch m {
	case MarkCorrect:
		return "correct"
	case MarkIncorrect:
		return "incorrect"
	default:
		return "unmarked"
	}
}

// Guess is one participant's single daily submission plus its marking.
// ID is a surrogate identifier stamped at creation; all marking updates
// address the record through it, so identical texts from the same user
// stay distinguishable.
type Guess struct {
	ID                string
	GuesserID         int64
	GuesserName       string
	GuessText         string
	ArtistNameCorrect Mark
	SongTitleCorrect  Mark
	Timestamp         time.Time
}

// NewGuess builds an unmarked guess stamped with a fresh surrogate id.
func NewGuess(guesserID int64, guesserName, text string, at time.Time) Guess {
	return Guess{
		ID:          uuid.NewString(),
		GuesserID:   guesserID,
		GuesserName: guesserName,
		GuessText:   text,
		Timestamp:   at,
	}
}

// AutoMark recomputes both correctness fields by case-insensitive substring
// match against the correct answer. It is a read-time projection: nothing
// is persisted until a reviewer commits the marking.
func (g Guess) AutoMark(songTitle, artistName string) Guess {
	text := strings.ToLower(g.GuessText)
	g.SongTitleCorrect = MarkOf(strings.Contains(text, strings.ToLower(songTitle)))
	g.ArtistNameCorrect = MarkOf(strings.Contains(text, strings.ToLower(artistName)))
	return g
}
