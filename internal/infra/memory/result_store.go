package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"cerises-quiz/internal/domain"
)

// ResultStore keeps finished games and each player's best score per mode.
type ResultStore struct {
	now func() time.Time

	mu      sync.RWMutex
	results []domain.GameResult
	best    map[string]map[string]bestScore // mode -> player -> best
}

type bestScore struct {
	entry   domain.LeaderboardEntry
	reached time.Time
}

func NewResultStore() *ResultStore {
	return &ResultStore{
		now:  time.Now,
		best: make(map[string]map[string]bestScore),
	}
}

func (s *ResultStore) SaveResult(_ context.Context, result domain.GameResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = append(s.results, result)

	players, ok := s.best[result.Mode]
	if !ok {
		players = make(map[string]bestScore)
		s.best[result.Mode] = players
	}
	if current, ok := players[result.PlayerID]; ok && current.entry.Score >= result.Score {
		return nil
	}
	players[result.PlayerID] = bestScore{
		entry: domain.LeaderboardEntry{
			PlayerID:    result.PlayerID,
			DisplayName: result.DisplayName,
			Score:       result.Score,
		},
		reached: result.FinishedAt,
	}
	return nil
}

// Leaderboard orders by score desc, then whoever reached it first, then name.
func (s *ResultStore) Leaderboard(_ context.Context, mode string, limit int) (domain.Leaderboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := s.best[mode]
	scores := make([]bestScore, 0, len(players))
	for _, b := range players {
		scores = append(scores, b)
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].entry.Score != scores[j].entry.Score {
			return scores[i].entry.Score > scores[j].entry.Score
		}
		if !scores[i].reached.Equal(scores[j].reached) {
			return scores[i].reached.Before(scores[j].reached)
		}
		return scores[i].entry.DisplayName < scores[j].entry.DisplayName
	})
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}

	entries := make([]domain.LeaderboardEntry, 0, len(scores))
	for _, b := range scores {
		entries = append(entries, b.entry)
	}
	return domain.Leaderboard{Mode: mode, Entries: entries, UpdatedAt: s.now()}, nil
}

// Results returns every saved result for a player, oldest first.
func (s *ResultStore) Results(playerID string) []domain.GameResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.GameResult
	for _, r := range s.results {
		if r.PlayerID == playerID {
			out = append(out, r)
		}
	}
	return out
}
