package redis

import (
	"context"
	"strconv"
	"sync"
	"time"

	"gpr-quiz-bot/internal/app"
	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Wizard state itself stays in a local in-memory map: a wizard holds
//     live service handles and is only ever driven by the process that
//     received the message.
//   - Redis marks session liveness with a TTL, so an abandoned wizard's
//     key expires even if the process never cleans it up, and operators
//     can see which chats have a wizard in flight.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[int64]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[int64]*app.Session),
	}
}

func (s *SessionStore) GetOrCreate(chatID int64) *app.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[chatID]; ok {
		// refresh the liveness marker while the chat stays active
		_ = s.client.Expire(context.Background(), s.key(chatID), s.ttl).Err()
		return session
	}
	session := app.NewSession(chatID)
	s.sessions[chatID] = session
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(chatID), "1", s.ttl).Err()
	return session
}

func (s *SessionStore) Get(chatID int64) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[chatID]
	return session, ok
}

func (s *SessionStore) DeleteIfIdle(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[chatID]
	if !ok {
		return
	}
	if session.Idle() {
		delete(s.sessions, chatID)
		_ = s.client.Del(context.Background(), s.key(chatID)).Err()
	}
}

func (s *SessionStore) key(chatID int64) string {
	return "wizard:session:" + strconv.FormatInt(chatID, 10)
}
