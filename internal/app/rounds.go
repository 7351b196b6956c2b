package app

import (
	"context"
	"sync"

	"gpr-quiz-bot/internal/domain"
)

// RoundRepository abstracts how rounds are persisted (in-memory, postgres, etc).
type RoundRepository interface {
	ListRounds(ctx context.Context) ([]domain.Round, error)
	InsertRound(ctx context.Context, round domain.Round) error
}

// RoundService owns the round lifecycle: listing and overlap-checked creation.
type RoundService struct {
	mu   sync.Mutex
	repo RoundRepository
}

func NewRoundService(repo RoundRepository) *RoundService {
	return &RoundService{repo: repo}
}

// List returns all persisted rounds.
func (s *RoundService) List(ctx context.Context) ([]domain.Round, error) {
	return s.repo.ListRounds(ctx)
}

// Save persists round unless its dates intersect an existing round, in which
// case it returns domain.ErrRoundOverlap and nothing is written. The check
// and insert are serialized by the service mutex; creators in other
// processes sharing the store are not guarded.
func (s *RoundService) Save(ctx context.Context, round domain.Round) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.ListRounds(ctx)
	if err != nil {
		return err
	}
	for _, other := range existing {
		if round.OverlapsWith(other) {
			return domain.ErrRoundOverlap
		}
	}
	return s.repo.InsertRound(ctx, round)
}
