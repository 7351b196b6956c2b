package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gpr-quiz-bot/internal/domain"
)

const (
	msgDefaultHelp      = `To make a guess, use the /guess command e.g. "/guess never gonna give you up by rick astley"`
	msgNothingToCancel  = "There is nothing to cancel."
	msgNoRoundsToReview = "There are no rounds to review yet."
	msgDoneOutsideFix   = "/done only applies while fixing marking in a review."
	msgCommandInWizard  = "That command isn't available right now. Send /cancel to abort."
)

// Inbound is one chat message with the sender's identity already resolved
// by the transport.
type Inbound struct {
	ChatID      int64
	UserID      int64
	DisplayName string
	Text        string
}

// Dispatcher classifies each inbound message by command or by the chat's
// active wizard state and routes it to the matching handler. Messages for
// the same chat are handled to completion in order; different chats proceed
// independently.
type Dispatcher struct {
	sessions SessionRepository
	rounds   *RoundService
	guesses  *GuessService
}

func NewDispatcher(sessions SessionRepository, rounds *RoundService, guesses *GuessService) *Dispatcher {
	return &Dispatcher{sessions: sessions, rounds: rounds, guesses: guesses}
}

// HandleMessage processes one message and returns the reply text.
func (d *Dispatcher) HandleMessage(ctx context.Context, msg Inbound) (string, error) {
	sess := d.sessions.GetOrCreate(msg.ChatID)
	sess.mu.Lock()
	reply, err := d.route(ctx, sess, msg)
	sess.mu.Unlock()
	d.sessions.DeleteIfIdle(msg.ChatID)
	return reply, err
}

func (d *Dispatcher) route(ctx context.Context, sess *Session, msg Inbound) (string, error) {
	command, args := splitCommand(msg.Text)
	switch command {
	case "/start":
		return fmt.Sprintf("Hi %s!", msg.DisplayName), nil

	case "/newround":
		// Re-entry replaces any stale session state.
		w := NewRoundWizard(d.rounds)
		sess.wizard = w
		return w.Prompt(), nil

	case "/review":
		w, prompt, err := NewReviewWizard(ctx, d.rounds, d.guesses)
		if errors.Is(err, domain.ErrNoRounds) {
			sess.wizard = nil
			return msgNoRoundsToReview, nil
		}
		if err != nil {
			return "", err
		}
		sess.wizard = w
		return prompt, nil

	case "/guess":
		return d.handleGuess(ctx, msg, args)

	case "/cancel":
		if sess.wizard == nil {
			return msgNothingToCancel, nil
		}
		reply := sess.wizard.Cancel()
		sess.wizard = nil
		return reply, nil

	case "/done":
		if _, ok := sess.wizard.(*ReviewWizard); !ok {
			return msgDoneOutsideFix, nil
		}
		return d.advanceWizard(ctx, sess, "/done")

	case "":
		if sess.wizard != nil {
			return d.advanceWizard(ctx, sess, msg.Text)
		}
		return msgDefaultHelp, nil

	default:
		// Unknown command: never fed into a wizard as form input.
		if sess.wizard != nil {
			return msgCommandInWizard, nil
		}
		return msgDefaultHelp, nil
	}
}

func (d *Dispatcher) advanceWizard(ctx context.Context, sess *Session, input string) (string, error) {
	reply, done, err := sess.wizard.Handle(ctx, input)
	if err != nil {
		sess.wizard = nil
		return "", err
	}
	if done {
		sess.wizard = nil
	}
	return reply, nil
}

func (d *Dispatcher) handleGuess(ctx context.Context, msg Inbound, args string) (string, error) {
	text := strings.TrimSpace(args)
	if text == "" {
		return msgDefaultHelp, nil
	}
	recorded, created, err := d.guesses.Submit(ctx, msg.UserID, msg.DisplayName, text)
	if err != nil {
		return "", err
	}
	if !created {
		return fmt.Sprintf("You have already made a guess today. Your guess was: %s", recorded), nil
	}
	return fmt.Sprintf("Your guess: %q has been recorded. Thanks for playing!", text), nil
}

// splitCommand extracts a leading /command (with any @botname suffix
// stripped) and the remaining argument text. Plain text yields "".
func splitCommand(text string) (string, string) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "/") {
		return "", ""
	}
	command := trimmed
	args := ""
	if i := strings.IndexByte(trimmed, ' '); i >= 0 {
		command, args = trimmed[:i], trimmed[i+1:]
	}
	if i := strings.IndexByte(command, '@'); i >= 0 {
		command = command[:i]
	}
	return strings.ToLower(command), args
}
