package app_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"gpr-quiz-bot/internal/domain"
)

func TestRoundCreationScenario(t *testing.T) {
	env := newTestEnv()

	if reply := env.send(t, 1, "/newround"); reply != "What is the name of the new round?" {
		t.Fatalf("unexpected opening prompt %q", reply)
	}
	if reply := env.send(t, 1, "Spring Round"); reply != "What date will this round start on? (dd/mm/yy)" {
		t.Fatalf("unexpected date prompt %q", reply)
	}
	if reply := env.send(t, 1, "01/03/24"); reply != "How many days will this round run for? e.g. 5" {
		t.Fatalf("unexpected duration prompt %q", reply)
	}

	// 1 March 2024 was a Friday; five days later is Tuesday the 5th.
	confirm := env.send(t, 1, "5")
	for _, want := range []string{`"Spring Round"`, "Friday 1st March", "Tuesday 5th March", "(y/n)"} {
		if !strings.Contains(confirm, want) {
			t.Fatalf("confirmation %q missing %q", confirm, want)
		}
	}

	if reply := env.send(t, 1, "y"); reply != "All done, the new round has been created." {
		t.Fatalf("unexpected completion reply %q", reply)
	}

	rounds, err := env.rounds.List(context.Background())
	if err != nil {
		t.Fatalf("list rounds: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("expected 1 round, got %d", len(rounds))
	}
	round := rounds[0]
	if round.Name != "Spring Round" || round.DurationDays != 5 {
		t.Fatalf("unexpected round %+v", round)
	}
	if !round.StartDate.Equal(domain.Date(2024, time.March, 1)) {
		t.Fatalf("start date = %v", round.StartDate)
	}
	if !round.EndDate().Equal(domain.Date(2024, time.March, 5)) {
		t.Fatalf("end date = %v", round.EndDate())
	}
}

func TestRoundCreationRepromptsOnBadInput(t *testing.T) {
	env := newTestEnv()
	env.send(t, 1, "/newround")

	// empty name re-prompts in place
	if reply := env.send(t, 1, "   "); reply != "What is the name of the new round?" {
		t.Fatalf("empty name should re-prompt, got %q", reply)
	}
	env.send(t, 1, "Spring Round")

	if reply := env.send(t, 1, "next tuesday"); !strings.Contains(reply, "An invalid date was provided") {
		t.Fatalf("bad date should re-prompt, got %q", reply)
	}
	if reply := env.send(t, 1, "2024-03-01"); !strings.Contains(reply, "An invalid date was provided") {
		t.Fatalf("wrong date format should re-prompt, got %q", reply)
	}
	env.send(t, 1, "01/03/24")

	for _, bad := range []string{"0", "-3", "five"} {
		if reply := env.send(t, 1, bad); !strings.Contains(reply, "An invalid number was entered") {
			t.Fatalf("duration %q should re-prompt, got %q", bad, reply)
		}
	}

	// the wizard recovered from every mistake
	if reply := env.send(t, 1, "5"); !strings.Contains(reply, "Is that right? (y/n)") {
		t.Fatalf("expected confirmation after recovery, got %q", reply)
	}
}

func TestRoundCreationOverlapRejected(t *testing.T) {
	env := newTestEnv()
	existing := domain.Round{Name: "Spring Round", StartDate: domain.Date(2024, time.March, 1), DurationDays: 5}
	if err := env.rounds.Save(context.Background(), existing); err != nil {
		t.Fatalf("seed round: %v", err)
	}

	env.send(t, 1, "/newround")
	env.send(t, 1, "Clashing Round")
	env.send(t, 1, "03/03/24")
	env.send(t, 1, "2")
	reply := env.send(t, 1, "y")
	if !strings.Contains(reply, "the dates overlap with an existing round") {
		t.Fatalf("expected overlap rejection, got %q", reply)
	}

	rounds, _ := env.rounds.List(context.Background())
	if len(rounds) != 1 {
		t.Fatalf("overlapping round must not be persisted, have %d rounds", len(rounds))
	}

	// terminal outcome: the wizard is gone, not looping for new dates
	if reply := env.send(t, 1, "02/04/24"); !strings.Contains(reply, "use the /guess command") {
		t.Fatalf("wizard should have ended after the conflict, got %q", reply)
	}
}

func TestRoundCreationDeclineCancels(t *testing.T) {
	env := newTestEnv()
	env.send(t, 1, "/newround")
	env.send(t, 1, "Spring Round")
	env.send(t, 1, "01/03/24")
	env.send(t, 1, "5")

	if reply := env.send(t, 1, "nope"); reply != "New round creation has been cancelled." {
		t.Fatalf("non-y confirmation should cancel, got %q", reply)
	}
	if rounds, _ := env.rounds.List(context.Background()); len(rounds) != 0 {
		t.Fatalf("cancelled round must not be persisted")
	}
}

func TestCancelCommandAbortsRoundWizard(t *testing.T) {
	env := newTestEnv()
	env.send(t, 1, "/newround")
	env.send(t, 1, "Spring Round")

	if reply := env.send(t, 1, "/cancel"); reply != "New round creation has been cancelled." {
		t.Fatalf("unexpected cancel reply %q", reply)
	}
	if reply := env.send(t, 1, "01/03/24"); !strings.Contains(reply, "use the /guess command") {
		t.Fatalf("session state should be discarded after cancel, got %q", reply)
	}
}

func TestConfirmationIsCaseInsensitive(t *testing.T) {
	env := newTestEnv()
	env.send(t, 1, "/newround")
	env.send(t, 1, "Spring Round")
	env.send(t, 1, "01/03/24")
	env.send(t, 1, "5")

	if reply := env.send(t, 1, "Y"); reply != "All done, the new round has been created." {
		t.Fatalf("uppercase Y should confirm, got %q", reply)
	}
}
