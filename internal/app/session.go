package app

import (
	"context"
	"sync"
)

// Wizard is a multi-turn interactive form driven by successive inbound
// messages: each Handle call validates one message, mutates the wizard's
// state, and either re-prompts in place or advances.
type Wizard interface {
	// Handle consumes one message and returns the reply plus whether the
	// wizard has finished.
	Handle(ctx context.Context, input string) (reply string, done bool, err error)
	// Cancel discards in-progress state and returns the cancellation notice.
	Cancel() string
}

// Session is the per-conversation wizard state. It is ephemeral: created
// when a wizard starts, discarded on completion or cancellation, and never
// persisted. The mutex serializes message handling for one chat.
type Session struct {
	chatID int64
	mu     sync.Mutex
	wizard Wizard
}

func NewSession(chatID int64) *Session {
	return &Session{chatID: chatID}
}

// Idle reports whether no wizard is in progress.
func (s *Session) Idle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizard == nil
}

// SessionRepository abstracts how wizard sessions are tracked (in-memory,
// Redis-backed, etc). Sessions are keyed by chat id.
type SessionRepository interface {
	GetOrCreate(chatID int64) *Session
	Get(chatID int64) (*Session, bool)
	DeleteIfIdle(chatID int64)
}
