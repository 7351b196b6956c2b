package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gpr-quiz-bot/internal/domain"
)

type roundState int

const (
	awaitName roundState = iota
	awaitStartDate
	awaitDuration
	awaitConfirm
	roundDone
)

const (
	msgAskRoundName = "What is the name of the new round?"
	msgAskStartDate = "What date will this round start on? (dd/mm/yy)"
	msgBadStartDate = "An invalid date was provided. What date will this round start on? (dd/mm/yy)"
	msgAskDuration  = "How many days will this round run for? e.g. 5"
	msgBadDuration  = "An invalid number was entered. How many days will this round run for? Please enter this as a number e.g. 5"
	msgRoundCreated = "All done, the new round has been created."
	msgRoundOverlap = "Unable to create round: the dates overlap with an existing round. Please try again with different dates using the /newround command."
	msgRoundCancel  = "New round creation has been cancelled."
)

// RoundWizard collects a round's name, start date and duration over
// successive messages, confirms, and commits through the RoundService.
type RoundWizard struct {
	rounds *RoundService
	state  roundState
	draft  domain.Round
}

func NewRoundWizard(rounds *RoundService) *RoundWizard {
	return &RoundWizard{rounds: rounds, state: awaitName}
}

// Prompt is the opening question sent when the wizard starts.
func (w *RoundWizard) Prompt() string {
	return msgAskRoundName
}

// roundStep validates one message for a state and returns the reply and the
// next state. Validation failures re-prompt and stay in place.
type roundStep func(ctx context.Context, w *RoundWizard, input string) (string, roundState, error)

var roundSteps = map[roundState]roundStep{
	awaitName:      stepRoundName,
	awaitStartDate: stepRoundStartDate,
	awaitDuration:  stepRoundDuration,
	awaitConfirm:   stepRoundConfirm,
}

func (w *RoundWizard) Handle(ctx context.Context, input string) (string, bool, error) {
	reply, next, err := roundSteps[w.state](ctx, w, input)
	w.state = next
	return reply, next == roundDone, err
}

func (w *RoundWizard) Cancel() string {
	return msgRoundCancel
}

func stepRoundName(_ context.Context, w *RoundWizard, input string) (string, roundState, error) {
	name := strings.TrimSpace(input)
	if name == "" {
		return msgAskRoundName, awaitName, nil
	}
	w.draft.Name = name
	return msgAskStartDate, awaitStartDate, nil
}

func stepRoundStartDate(_ context.Context, w *RoundWizard, input string) (string, roundState, error) {
	start, err := parseRoundDate(strings.TrimSpace(input))
	if err != nil {
		return msgBadStartDate, awaitStartDate, nil
	}
	w.draft.StartDate = start
	return msgAskDuration, awaitDuration, nil
}

func stepRoundDuration(_ context.Context, w *RoundWizard, input string) (string, roundState, error) {
	days, ok := parsePositiveInt(strings.TrimSpace(input))
	if !ok {
		return msgBadDuration, awaitDuration, nil
	}
	w.draft.DurationDays = days
	reply := fmt.Sprintf("So the round is named %q, will start on %s, and will run until %s. Is that right? (y/n)",
		w.draft.Name,
		domain.FormatDateWithSuffix(w.draft.StartDate),
		domain.FormatDateWithSuffix(w.draft.EndDate()))
	return reply, awaitConfirm, nil
}

// stepRoundConfirm commits on "y"; anything else cancels. An overlap is a
// terminal outcome, not a retry loop: the user restarts with /newround.
func stepRoundConfirm(ctx context.Context, w *RoundWizard, input string) (string, roundState, error) {
	if strings.ToLower(strings.TrimSpace(input)) != "y" {
		return msgRoundCancel, roundDone, nil
	}
	switch err := w.rounds.Save(ctx, w.draft); {
	case err == nil:
		return msgRoundCreated, roundDone, nil
	case errors.Is(err, domain.ErrRoundOverlap):
		return msgRoundOverlap, roundDone, nil
	default:
		return "", roundDone, err
	}
}

// parseRoundDate parses the fixed dd/mm/yy entry format into a date-only value.
func parseRoundDate(s string) (time.Time, error) {
	t, err := time.Parse("02/01/06", s)
	if err != nil {
		return time.Time{}, err
	}
	return domain.Date(t.Year(), t.Month(), t.Day()), nil
}

func parsePositiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
