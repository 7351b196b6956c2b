package memory

import (
	"context"
	"sync"
	"time"

	"gpr-quiz-bot/internal/domain"
)

// DocumentStore is an in-memory stand-in for the schemaless record store.
// It implements both app.RoundRepository and app.GuessRepository and is the
// default when no postgres URL is configured.
type DocumentStore struct {
	mu      sync.RWMutex
	rounds  []domain.Round
	guesses []domain.Guess
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{}
}

func (s *DocumentStore) ListRounds(_ context.Context) ([]domain.Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rounds := make([]domain.Round, len(s.rounds))
	copy(rounds, s.rounds)
	return rounds, nil
}

func (s *DocumentStore) InsertRound(_ context.Context, round domain.Round) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds = append(s.rounds, round)
	return nil
}

func (s *DocumentStore) InsertGuess(_ context.Context, guess domain.Guess) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guesses = append(s.guesses, guess)
	return nil
}

func (s *DocumentStore) GuessesBetween(_ context.Context, start, end time.Time) ([]domain.Guess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var guesses []domain.Guess
	for _, g := range s.guesses {
		if inWindow(g.Timestamp, start, end) {
			guesses = append(guesses, g)
		}
	}
	return guesses, nil
}

func (s *DocumentStore) GuessForUserBetween(_ context.Context, guesserID int64, start, end time.Time) (domain.Guess, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.guesses {
		if g.GuesserID == guesserID && inWindow(g.Timestamp, start, end) {
			return g, true, nil
		}
	}
	return domain.Guess{}, false, nil
}

func (s *DocumentStore) UpdateMarking(_ context.Context, guessID string, artist, title domain.Mark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.guesses {
		if s.guesses[i].ID == guessID {
			s.guesses[i].ArtistNameCorrect = artist
			s.guesses[i].SongTitleCorrect = title
			return nil
		}
	}
	return domain.ErrGuessNotFound
}

// inWindow tests the half-open game-day window [start, end).
func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
