package app

import (
	"context"
	"sync"
	"time"

	"gpr-quiz-bot/internal/domain"
)

// GuessRepository abstracts how guesses are persisted. Instant ranges are
// half-open: [start, end).
type GuessRepository interface {
	InsertGuess(ctx context.Context, guess domain.Guess) error
	GuessesBetween(ctx context.Context, start, end time.Time) ([]domain.Guess, error)
	GuessForUserBetween(ctx context.Context, guesserID int64, start, end time.Time) (domain.Guess, bool, error)
	UpdateMarking(ctx context.Context, guessID string, artist, title domain.Mark) error
}

// GuessService owns guess submission and review marking.
type GuessService struct {
	repo GuessRepository
	cal  domain.Calendar
	now  func() time.Time

	mu        sync.Mutex
	userLocks map[int64]*sync.Mutex
}

func NewGuessService(repo GuessRepository, cal domain.Calendar) *GuessService {
	return NewGuessServiceWithClock(repo, cal, time.Now)
}

// NewGuessServiceWithClock allows deterministic timestamps in tests.
func NewGuessServiceWithClock(repo GuessRepository, cal domain.Calendar, now func() time.Time) *GuessService {
	return &GuessService{
		repo:      repo,
		cal:       cal,
		now:       now,
		userLocks: make(map[int64]*sync.Mutex),
	}
}

// TodaysGuess returns the text of the guess the user already made in the
// current game-day, if any.
func (s *GuessService) TodaysGuess(ctx context.Context, guesserID int64) (string, bool, error) {
	start, end := s.cal.CurrentWindow(s.now())
	guess, ok, err := s.repo.GuessForUserBetween(ctx, guesserID, start, end)
	if err != nil || !ok {
		return "", false, err
	}
	return guess.GuessText, true, nil
}

// Submit records one guess for the current game-day. If the user already
// guessed, nothing is written and the existing text is returned with
// created=false. The existence check and insert are serialized per user.
func (s *GuessService) Submit(ctx context.Context, guesserID int64, guesserName, text string) (string, bool, error) {
	lock := s.userLock(guesserID)
	lock.Lock()
	defer lock.Unlock()

	existing, ok, err := s.TodaysGuess(ctx, guesserID)
	if err != nil {
		return "", false, err
	}
	if ok {
		return existing, false, nil
	}

	guess := domain.NewGuess(guesserID, guesserName, text, s.now())
	if err := s.repo.InsertGuess(ctx, guess); err != nil {
		return "", false, err
	}
	return text, true, nil
}

// GuessesForDay fetches every guess in day's game-day window and auto-marks
// each against the correct answer. The marking is a read-time projection;
// it is persisted only when CommitMarking is called.
func (s *GuessService) GuessesForDay(ctx context.Context, day time.Time, songTitle, artistName string) ([]domain.Guess, error) {
	start, end := s.cal.WindowFor(day)
	guesses, err := s.repo.GuessesBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	marked := make([]domain.Guess, 0, len(guesses))
	for _, g := range guesses {
		marked = append(marked, g.AutoMark(songTitle, artistName))
	}
	return marked, nil
}

// CommitMarking persists the correctness fields of each guess, addressing
// stored records by their surrogate id.
func (s *GuessService) CommitMarking(ctx context.Context, guesses []domain.Guess) error {
	for _, g := range guesses {
		if err := s.repo.UpdateMarking(ctx, g.ID, g.ArtistNameCorrect, g.SongTitleCorrect); err != nil {
			return err
		}
	}
	return nil
}

func (s *GuessService) userLock(guesserID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.userLocks[guesserID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[guesserID] = lock
	}
	return lock
}
