package memory

import (
	"context"
	"testing"
	"time"

	"cerises-quiz/internal/domain"
)

func TestResultStoreKeepsBestScore(t *testing.T) {
	ctx := context.Background()
	store := NewResultStore()
	base := time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)

	results := []domain.GameResult{
		{GameID: "g1", PlayerID: "u1", DisplayName: "Alice", Mode: "top10", Score: 70, FinishedAt: base},
		{GameID: "g2", PlayerID: "u2", DisplayName: "Bob", Mode: "top10", Score: 90, FinishedAt: base.Add(time.Minute)},
		{GameID: "g3", PlayerID: "u1", DisplayName: "Alice", Mode: "top10", Score: 40, FinishedAt: base.Add(2 * time.Minute)},
		{GameID: "g4", PlayerID: "u3", DisplayName: "Chloé", Mode: "top10", Score: 70, FinishedAt: base.Add(3 * time.Minute)},
		{GameID: "g5", PlayerID: "u3", DisplayName: "Chloé", Mode: "logo", Score: 100, FinishedAt: base},
	}
	for _, r := range results {
		if err := store.SaveResult(ctx, r); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	lb, err := store.Leaderboard(ctx, "top10", 10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	want := []string{"u2", "u1", "u3"}
	if len(lb.Entries) != len(want) {
		t.Fatalf("expected %d entries, got %+v", len(want), lb.Entries)
	}
	for i, id := range want {
		if lb.Entries[i].PlayerID != id {
			t.Fatalf("position %d: expected %s, got %+v", i, id, lb.Entries)
		}
	}
	if lb.Entries[1].Score != 70 {
		t.Fatalf("expected Alice to keep her best 70, got %d", lb.Entries[1].Score)
	}

	top1, _ := store.Leaderboard(ctx, "top10", 1)
	if len(top1.Entries) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(top1.Entries))
	}
	if got := len(store.Results("u1")); got != 2 {
		t.Fatalf("expected 2 results for u1, got %d", got)
	}
}
