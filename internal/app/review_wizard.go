package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gpr-quiz-bot/internal/domain"
)

type reviewState int

const (
	selectRound reviewState = iota
	selectDay
	enterArtist
	enterTitle
	fixMarking
	remarkArtist
	remarkSongTitle
	reviewDone
)

const (
	msgAskArtist     = "Please enter an artist name"
	msgAskTitle      = "Please enter a song title"
	msgAskYesNo      = "Please enter 'y' for yes or 'n' for no"
	msgReviewDone    = "Review completed."
	msgReviewCancel  = "Review cancelled."
	msgNoGuessesLeft = "There are no guesses to fix. Enter /done to complete"
)

// ReviewWizard walks a reviewer through selecting a round and day, entering
// the correct answer, and correcting the automated marking of that day's
// guesses before committing it.
type ReviewWizard struct {
	rounds  *RoundService
	guesses *GuessService

	state      reviewState
	candidates []domain.Round
	days       []time.Time
	day        time.Time
	artistName string
	songTitle  string
	marked     []domain.Guess
	selected   int // index into marked during a remark loop
}

// NewReviewWizard loads the candidate rounds and renders the opening
// round-selection prompt. With no rounds to review it returns
// domain.ErrNoRounds and no wizard is started.
func NewReviewWizard(ctx context.Context, rounds *RoundService, guesses *GuessService) (*ReviewWizard, string, error) {
	candidates, err := rounds.List(ctx)
	if err != nil {
		return nil, "", err
	}
	if len(candidates) == 0 {
		return nil, "", domain.ErrNoRounds
	}
	w := &ReviewWizard{
		rounds:     rounds,
		guesses:    guesses,
		state:      selectRound,
		candidates: candidates,
	}
	return w, w.roundPrompt(), nil
}

type reviewStep func(ctx context.Context, w *ReviewWizard, input string) (string, reviewState, error)

var reviewSteps = map[reviewState]reviewStep{
	selectRound:     stepSelectRound,
	selectDay:       stepSelectDay,
	enterArtist:     stepEnterArtist,
	enterTitle:      stepEnterTitle,
	fixMarking:      stepFixMarking,
	remarkArtist:    stepRemarkArtist,
	remarkSongTitle: stepRemarkSongTitle,
}

func (w *ReviewWizard) Handle(ctx context.Context, input string) (string, bool, error) {
	// /done is only meaningful while fixing marking; a command arriving in
	// any other state is never treated as form input.
	if strings.HasPrefix(strings.TrimSpace(input), "/") && w.state != fixMarking {
		return w.reprompt(), false, nil
	}
	reply, next, err := reviewSteps[w.state](ctx, w, input)
	w.state = next
	return reply, next == reviewDone, err
}

func (w *ReviewWizard) Cancel() string {
	return msgReviewCancel
}

func stepSelectRound(_ context.Context, w *ReviewWizard, input string) (string, reviewState, error) {
	n, ok := parseMenuOption(input, len(w.candidates))
	if !ok {
		return fmt.Sprintf("Please enter a valid round number (1-%d)", len(w.candidates)), selectRound, nil
	}
	w.days = w.candidates[n-1].Days()
	return w.dayPrompt(), selectDay, nil
}

func stepSelectDay(_ context.Context, w *ReviewWizard, input string) (string, reviewState, error) {
	n, ok := parseMenuOption(input, len(w.days))
	if !ok {
		return fmt.Sprintf("Please enter a valid day number (1-%d)", len(w.days)), selectDay, nil
	}
	w.day = w.days[n-1]
	return fmt.Sprintf("What was the artist name for %s?", w.dayName()), enterArtist, nil
}

func stepEnterArtist(_ context.Context, w *ReviewWizard, input string) (string, reviewState, error) {
	artist := strings.TrimSpace(input)
	if artist == "" {
		return msgAskArtist, enterArtist, nil
	}
	w.artistName = artist
	return fmt.Sprintf("What was the song title for %s?", w.dayName()), enterTitle, nil
}

// stepEnterTitle completes the answer entry: it fetches the day's guesses
// auto-marked against the answer, caches them for correction, and renders
// the review summary.
func stepEnterTitle(ctx context.Context, w *ReviewWizard, input string) (string, reviewState, error) {
	title := strings.TrimSpace(input)
	if title == "" {
		return msgAskTitle, enterTitle, nil
	}
	w.songTitle = title

	marked, err := w.guesses.GuessesForDay(ctx, w.day, w.songTitle, w.artistName)
	if err != nil {
		return "", reviewDone, err
	}
	w.marked = marked
	return w.summary(), fixMarking, nil
}

// stepFixMarking accepts a guess number to correct, or /done to persist the
// cached marking and finish.
func stepFixMarking(ctx context.Context, w *ReviewWizard, input string) (string, reviewState, error) {
	if strings.TrimSpace(input) == "/done" {
		if err := w.guesses.CommitMarking(ctx, w.marked); err != nil {
			return "", reviewDone, err
		}
		return msgReviewDone, reviewDone, nil
	}

	n, ok := parseMenuOption(input, len(w.marked))
	if !ok {
		if len(w.marked) == 0 {
			return msgNoGuessesLeft, fixMarking, nil
		}
		return fmt.Sprintf("Please enter a valid guess number (1-%d) or /done", len(w.marked)), fixMarking, nil
	}
	w.selected = n - 1
	return fmt.Sprintf("Did %s get the artist correct? (y/n)", w.marked[w.selected].GuesserName), remarkArtist, nil
}

// stepRemarkArtist: "n" forces the artist mark to incorrect in the cached
// list; "y" leaves the auto-marked value as is. Either way the song title
// question follows.
func stepRemarkArtist(_ context.Context, w *ReviewWizard, input string) (string, reviewState, error) {
	yes, ok := parseYesNo(input)
	if !ok {
		return msgAskYesNo, remarkArtist, nil
	}
	if !yes {
		w.marked[w.selected].ArtistNameCorrect = domain.MarkIncorrect
	}
	return fmt.Sprintf("Did %s get the song title correct? (y/n)", w.marked[w.selected].GuesserName), remarkSongTitle, nil
}

func stepRemarkSongTitle(_ context.Context, w *ReviewWizard, input string) (string, reviewState, error) {
	yes, ok := parseYesNo(input)
	if !ok {
		return msgAskYesNo, remarkSongTitle, nil
	}
	if !yes {
		w.marked[w.selected].SongTitleCorrect = domain.MarkIncorrect
	}
	reply := fmt.Sprintf("Here's the updated marking for %s:\n%s", w.dayName(), w.summary())
	return reply, fixMarking, nil
}

func (w *ReviewWizard) roundPrompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Which round would you like to review? (1-%d)", len(w.candidates))
	for i, r := range w.candidates {
		fmt.Fprintf(&b, "\n%d. %s", i+1, r.Name)
	}
	return b.String()
}

func (w *ReviewWizard) dayPrompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Which day do you want to review? (1-%d)", len(w.days))
	for i, day := range w.days {
		fmt.Fprintf(&b, "\n%d. %s", i+1, day.Weekday())
	}
	return b.String()
}

// summary renders the day's guesses with check/cross marks for title and
// artist plus the fix-number escape prompt.
func (w *ReviewWizard) summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Review for %s:\n", w.dayName())
	fmt.Fprintf(&b, "Correct Answer: %s by %s\n\n", w.songTitle, w.artistName)
	b.WriteString("Guesses:\n")
	for i, g := range w.marked {
		fmt.Fprintf(&b, "%d. %s\n   %s Title %s Artist (%s)\n\n",
			i+1, g.GuessText, markGlyph(g.SongTitleCorrect), markGlyph(g.ArtistNameCorrect), g.GuesserName)
	}
	if len(w.marked) == 0 {
		b.WriteString("No guesses were recorded for this day.\n\nEnter /done to complete")
		return b.String()
	}
	fmt.Fprintf(&b, "Enter a guess number to fix any mistakes in marking (1-%d), or enter /done to complete", len(w.marked))
	return b.String()
}

// reprompt restates the current state's expectation without consuming input.
func (w *ReviewWizard) reprompt() string {
	switch w.state {
	case selectRound:
		return fmt.Sprintf("Please enter a valid round number (1-%d)", len(w.candidates))
	case selectDay:
		return fmt.Sprintf("Please enter a valid day number (1-%d)", len(w.days))
	case enterArtist:
		return msgAskArtist
	case enterTitle:
		return msgAskTitle
	default:
		return msgAskYesNo
	}
}

func (w *ReviewWizard) dayName() string {
	return w.day.Weekday().String()
}

func markGlyph(m domain.Mark) string {
	if m.Correct() {
		return "✅"
	}
	return "❌"
}

// parseMenuOption validates a 1-based menu selection against the listed range.
func parseMenuOption(input string, max int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > max {
		return 0, false
	}
	return n, true
}

func parseYesNo(input string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y":
		return true, true
	case "n":
		return false, true
	default:
		return false, false
	}
}
