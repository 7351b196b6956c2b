package app_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"gpr-quiz-bot/internal/domain"
)

// seedReviewData creates a five-day round starting Friday 1 March 2024 and
// two guesses on the Saturday.
func seedReviewData(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()

	round := domain.Round{Name: "Spring Round", StartDate: domain.Date(2024, time.March, 1), DurationDays: 5}
	if err := env.rounds.Save(ctx, round); err != nil {
		t.Fatalf("seed round: %v", err)
	}

	saturday := time.Date(2024, time.March, 2, 10, 0, 0, 0, time.UTC)
	for _, g := range []domain.Guess{
		domain.NewGuess(101, "Alice", "never gonna give you up by rick astley", saturday),
		domain.NewGuess(102, "Bob", "take on me by a-ha", saturday.Add(time.Hour)),
	} {
		if err := env.store.InsertGuess(ctx, g); err != nil {
			t.Fatalf("seed guess: %v", err)
		}
	}
}

func TestReviewScenario(t *testing.T) {
	env := newTestEnv()
	seedReviewData(t, env)

	reply := env.send(t, 1, "/review")
	if !strings.Contains(reply, "Which round would you like to review? (1-1)") ||
		!strings.Contains(reply, "1. Spring Round") {
		t.Fatalf("unexpected round prompt %q", reply)
	}

	reply = env.send(t, 1, "1")
	for _, want := range []string{"Which day do you want to review? (1-5)", "1. Friday", "2. Saturday", "5. Tuesday"} {
		if !strings.Contains(reply, want) {
			t.Fatalf("day prompt %q missing %q", reply, want)
		}
	}

	if reply = env.send(t, 1, "2"); reply != "What was the artist name for Saturday?" {
		t.Fatalf("unexpected artist prompt %q", reply)
	}
	if reply = env.send(t, 1, "rick astley"); reply != "What was the song title for Saturday?" {
		t.Fatalf("unexpected title prompt %q", reply)
	}

	summary := env.send(t, 1, "never gonna give you up")
	for _, want := range []string{
		"Review for Saturday:",
		"Correct Answer: never gonna give you up by rick astley",
		"1. never gonna give you up by rick astley",
		"✅ Title ✅ Artist (Alice)",
		"❌ Title ❌ Artist (Bob)",
		"fix any mistakes in marking (1-2), or enter /done",
	} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary %q missing %q", summary, want)
		}
	}

	// Remark guess 1: artist was actually wrong, title stays as auto-marked.
	if reply = env.send(t, 1, "1"); reply != "Did Alice get the artist correct? (y/n)" {
		t.Fatalf("unexpected remark prompt %q", reply)
	}
	if reply = env.send(t, 1, "maybe"); reply != "Please enter 'y' for yes or 'n' for no" {
		t.Fatalf("invalid y/n should re-prompt, got %q", reply)
	}
	if reply = env.send(t, 1, "n"); reply != "Did Alice get the song title correct? (y/n)" {
		t.Fatalf("unexpected song-title prompt %q", reply)
	}
	updated := env.send(t, 1, "y")
	if !strings.Contains(updated, "Here's the updated marking for Saturday:") ||
		!strings.Contains(updated, "✅ Title ❌ Artist (Alice)") {
		t.Fatalf("remark did not flip the artist mark: %q", updated)
	}

	if reply = env.send(t, 1, "/done"); reply != "Review completed." {
		t.Fatalf("unexpected completion reply %q", reply)
	}

	// Committed marking is persisted on the stored records.
	start, end := env.cal.WindowFor(domain.Date(2024, time.March, 2))
	stored, err := env.store.GuessesBetween(context.Background(), start, end)
	if err != nil {
		t.Fatalf("read back guesses: %v", err)
	}
	byName := map[string]domain.Guess{}
	for _, g := range stored {
		byName[g.GuesserName] = g
	}
	if g := byName["Alice"]; g.ArtistNameCorrect != domain.MarkIncorrect || g.SongTitleCorrect != domain.MarkCorrect {
		t.Fatalf("Alice persisted marks = %v/%v", g.ArtistNameCorrect, g.SongTitleCorrect)
	}
	if g := byName["Bob"]; g.ArtistNameCorrect != domain.MarkIncorrect || g.SongTitleCorrect != domain.MarkIncorrect {
		t.Fatalf("Bob persisted marks = %v/%v", g.ArtistNameCorrect, g.SongTitleCorrect)
	}

	// The session is gone after /done.
	if reply = env.send(t, 1, "2"); !strings.Contains(reply, "use the /guess command") {
		t.Fatalf("review session should have ended, got %q", reply)
	}
}

func TestReviewWithNoRounds(t *testing.T) {
	env := newTestEnv()
	if reply := env.send(t, 1, "/review"); reply != "There are no rounds to review yet." {
		t.Fatalf("unexpected reply %q", reply)
	}
	// No wizard was started.
	if reply := env.send(t, 1, "1"); !strings.Contains(reply, "use the /guess command") {
		t.Fatalf("no session should exist, got %q", reply)
	}
}

func TestReviewSelectionValidation(t *testing.T) {
	env := newTestEnv()
	seedReviewData(t, env)

	env.send(t, 1, "/review")
	if reply := env.send(t, 1, "9"); reply != "Please enter a valid round number (1-1)" {
		t.Fatalf("out-of-range round should re-prompt, got %q", reply)
	}
	if reply := env.send(t, 1, "first"); reply != "Please enter a valid round number (1-1)" {
		t.Fatalf("non-numeric round should re-prompt, got %q", reply)
	}
	env.send(t, 1, "1")

	if reply := env.send(t, 1, "0"); reply != "Please enter a valid day number (1-5)" {
		t.Fatalf("out-of-range day should re-prompt, got %q", reply)
	}
	env.send(t, 1, "2")

	if reply := env.send(t, 1, "  "); reply != "Please enter an artist name" {
		t.Fatalf("empty artist should re-prompt, got %q", reply)
	}
	env.send(t, 1, "rick astley")
	if reply := env.send(t, 1, ""); reply != "Please enter a song title" {
		t.Fatalf("empty title should re-prompt, got %q", reply)
	}

	summary := env.send(t, 1, "never gonna give you up")
	if !strings.Contains(summary, "(1-2)") {
		t.Fatalf("unexpected summary %q", summary)
	}
	if reply := env.send(t, 1, "7"); reply != "Please enter a valid guess number (1-2) or /done" {
		t.Fatalf("out-of-range fix number should re-prompt, got %q", reply)
	}
}

func TestReviewDoneBeforeFixMarkingIsRejected(t *testing.T) {
	env := newTestEnv()
	seedReviewData(t, env)

	env.send(t, 1, "/review")
	env.send(t, 1, "1")
	// /done while selecting the day must not be consumed as form input.
	if reply := env.send(t, 1, "/done"); reply != "Please enter a valid day number (1-5)" {
		t.Fatalf("unexpected reply %q", reply)
	}
	// day selection still works afterwards
	if reply := env.send(t, 1, "2"); reply != "What was the artist name for Saturday?" {
		t.Fatalf("unexpected reply %q", reply)
	}
}

func TestReviewDayWithoutGuesses(t *testing.T) {
	env := newTestEnv()
	seedReviewData(t, env)

	env.send(t, 1, "/review")
	env.send(t, 1, "1")
	env.send(t, 1, "3") // Sunday: nothing was guessed
	env.send(t, 1, "rick astley")
	summary := env.send(t, 1, "never gonna give you up")
	if !strings.Contains(summary, "No guesses were recorded for this day.") {
		t.Fatalf("unexpected summary %q", summary)
	}
	if reply := env.send(t, 1, "1"); !strings.Contains(reply, "There are no guesses to fix") {
		t.Fatalf("unexpected reply %q", reply)
	}
	if reply := env.send(t, 1, "/done"); reply != "Review completed." {
		t.Fatalf("unexpected reply %q", reply)
	}
}

func TestCancelCommandAbortsReview(t *testing.T) {
	env := newTestEnv()
	seedReviewData(t, env)

	env.send(t, 1, "/review")
	env.send(t, 1, "1")
	if reply := env.send(t, 1, "/cancel"); reply != "Review cancelled." {
		t.Fatalf("unexpected cancel reply %q", reply)
	}
	if reply := env.send(t, 1, "2"); !strings.Contains(reply, "use the /guess command") {
		t.Fatalf("session state should be discarded after cancel, got %q", reply)
	}
}
