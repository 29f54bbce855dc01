package postgres

import (
	"context"
	"fmt"
	"time"

	"cerises-quiz/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ResultStore persists finished games in game_results.
type ResultStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewResultStore(pool *pgxpool.Pool) *ResultStore {
	return &ResultStore{pool: pool, now: time.Now}
}

func (s *ResultStore) SaveResult(ctx context.Context, r domain.GameResult) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO game_results
		   (game_id, player_id, display_name, question_id, mode, score, cerises, streak_bonus, time_bonus, found, total, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (game_id) DO NOTHING`,
		r.GameID, r.PlayerID, r.DisplayName, r.QuestionID, r.Mode,
		r.Score, r.Cerises, r.StreakBonus, r.TimeBonus, r.Found, r.Total, r.FinishedAt)
	if err != nil {
		return fmt.Errorf("insert game result: %w", err)
	}
	return nil
}

// Leaderboard keeps each player's best score, earliest first on ties.
func (s *ResultStore) Leaderboard(ctx context.Context, mode string, limit int) (domain.Leaderboard, error) {
	var lim *int
	if limit > 0 {
		lim = &limit
	}
	rows, err := s.pool.Query(ctx,
		`SELECT player_id, display_name, score FROM (
		   SELECT DISTINCT ON (player_id) player_id, display_name, score, finished_at
		   FROM game_results WHERE mode=$1
		   ORDER BY player_id, score DESC, finished_at ASC
		 ) best
		 ORDER BY score DESC, finished_at ASC, display_name ASC
		 LIMIT $2`, mode, lim)
	if err != nil {
		return domain.Leaderboard{}, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.LeaderboardEntry, 0)
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.PlayerID, &e.DisplayName, &e.Score); err != nil {
			return domain.Leaderboard{}, fmt.Errorf("scan leaderboard: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return domain.Leaderboard{}, fmt.Errorf("read leaderboard: %w", err)
	}
	return domain.Leaderboard{Mode: mode, Entries: entries, UpdatedAt: s.now()}, nil
}
