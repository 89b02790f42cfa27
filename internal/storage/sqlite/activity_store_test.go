package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/codelearn/internal/domain"
)

func TestActivityStore_RecentAndOverview(t *testing.T) {
	store := NewActivityStore(openTestDB(t))
	ctx := context.Background()
	now := time.Now()

	entries := []domain.Activity{
		{ID: "a1", SessionID: "s", Kind: domain.ActivityExercise, Title: "Sum Calculator", Points: 15, CreatedAt: now},
		{ID: "a2", SessionID: "s", Kind: domain.ActivityLesson, Title: "Return Values", CreatedAt: now},
		{ID: "a3", SessionID: "s", Kind: domain.ActivityChallenge, Title: "Binary Search", Points: 50, CreatedAt: now},
		{ID: "a4", SessionID: "s", Kind: domain.ActivityRun, Title: "Code run", CreatedAt: now},
	}
	for _, a := range entries {
		if err := store.Append(ctx, a); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	recent, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Recent() = %d entries; want 3", len(recent))
	}
	if recent[0].ID != "a4" || recent[2].ID != "a2" {
		t.Errorf("Recent() order = %s..%s", recent[0].ID, recent[2].ID)
	}
	if recent[1].Kind != domain.ActivityChallenge {
		t.Errorf("Kind = %q", recent[1].Kind)
	}

	all, _ := store.Recent(ctx, 0)
	if len(all) != 4 {
		t.Errorf("Recent(0) = %d entries; want 4", len(all))
	}

	o, err := store.Overview(ctx)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	want := domain.ActivityOverview{TotalPoints: 65, Lessons: 1, Exercises: 1, Challenges: 1, Runs: 1}
	if o != want {
		t.Errorf("Overview() = %+v; want %+v", o, want)
	}
}

func TestActivityStore_Empty(t *testing.T) {
	store := NewActivityStore(openTestDB(t))
	ctx := context.Background()

	recent, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("Recent() = %d entries; want 0", len(recent))
	}

	o, _ := store.Overview(ctx)
	if o != (domain.ActivityOverview{}) {
		t.Errorf("Overview() = %+v; want zero", o)
	}
}
