package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"gpr-quiz-bot/internal/app"
	"gpr-quiz-bot/internal/domain"
	"golang.org/x/sync/singleflight"
)

// RoundCache is a read-through cache over an app.RoundRepository with TTL,
// so the review wizard's round listing does not hit the backing store on
// every turn. Writes go through and invalidate the cached list, keeping the
// overlap check fresh for in-process creators.
type RoundCache struct {
	repo  app.RoundRepository
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group
	rnd   *rand.Rand

	mu      sync.RWMutex
	rounds  []domain.Round
	expires time.Time
	valid   bool
}

func NewRoundCache(repo app.RoundRepository, ttl time.Duration) *RoundCache {
	return &RoundCache{
		repo:  repo,
		ttl:   ttl,
		clock: time.Now,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *RoundCache) ListRounds(ctx context.Context) ([]domain.Round, error) {
	now := c.clock()

	c.mu.RLock()
	if c.valid && c.expires.After(now) {
		rounds := cloneRounds(c.rounds)
		c.mu.RUnlock()
		return rounds, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("rounds", func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if c.valid && c.expires.After(now) {
			rounds := c.rounds
			c.mu.RUnlock()
			return rounds, nil
		}
		c.mu.RUnlock()

		rounds, err := c.repo.ListRounds(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.rounds = rounds
		c.expires = now.Add(c.ttlWithJitter())
		c.valid = true
		c.mu.Unlock()
		return rounds, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneRounds(result.([]domain.Round)), nil
}

func (c *RoundCache) InsertRound(ctx context.Context, round domain.Round) error {
	if err := c.repo.InsertRound(ctx, round); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

// Invalidate drops the cached list so the next read is fresh.
func (c *RoundCache) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}

// cloneRounds keeps callers from mutating the cached list through the
// returned slice.
func cloneRounds(rounds []domain.Round) []domain.Round {
	out := make([]domain.Round, len(rounds))
	copy(out, rounds)
	return out
}

func (c *RoundCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
