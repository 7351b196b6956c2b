package domain

import (
	"testing"
	"time"
)

func TestEndDateIsInclusive(t *testing.T) {
	round := Round{Name: "Spring Round", StartDate: Date(2024, time.March, 1), DurationDays: 5}
	if got, want := round.EndDate(), Date(2024, time.March, 5); !got.Equal(want) {
		t.Fatalf("end date = %v, want %v", got, want)
	}

	oneDay := Round{Name: "Blitz", StartDate: Date(2024, time.March, 10), DurationDays: 1}
	if !oneDay.EndDate().Equal(oneDay.StartDate) {
		t.Fatalf("one-day round should end on its start date, got %v", oneDay.EndDate())
	}
}

func TestOverlapsWithIsSymmetricAndInclusive(t *testing.T) {
	a := Round{Name: "A", StartDate: Date(2024, time.March, 1), DurationDays: 5}
	b := Round{Name: "B", StartDate: Date(2024, time.March, 3), DurationDays: 2}
	touching := Round{Name: "C", StartDate: Date(2024, time.March, 5), DurationDays: 3}
	after := Round{Name: "D", StartDate: Date(2024, time.March, 6), DurationDays: 3}

	if !a.OverlapsWith(a) {
		t.Fatal("a round must overlap itself")
	}
	if !a.OverlapsWith(b) || !b.OverlapsWith(a) {
		t.Fatal("overlap must hold in both directions")
	}
	// sharing only the boundary day still counts
	if !a.OverlapsWith(touching) || !touching.OverlapsWith(a) {
		t.Fatal("rounds sharing an end/start day must overlap")
	}
	if a.OverlapsWith(after) || after.OverlapsWith(a) {
		t.Fatal("disjoint rounds must not overlap")
	}
}

func TestDaysEnumeratesSpan(t *testing.T) {
	round := Round{Name: "A", StartDate: Date(2024, time.March, 1), DurationDays: 3}
	days := round.Days()
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	for i, want := range []time.Time{
		Date(2024, time.March, 1),
		Date(2024, time.March, 2),
		Date(2024, time.March, 3),
	} {
		if !days[i].Equal(want) {
			t.Fatalf("day %d = %v, want %v", i, days[i], want)
		}
	}
}
