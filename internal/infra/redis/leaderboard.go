package redis

import (
	"context"
	"encoding/json"
	"time"

	"cerises-quiz/internal/domain"
	"github.com/redis/go-redis/v9"
)

const resultHistoryLen = 100

// Leaderboard keeps each player's best score per mode in a sorted set:
//
//	ZADD leaderboard:{mode} GT {score} {playerID}
//	HSET leaderboard:{mode}:names {playerID} {displayName}
//	LPUSH results:{playerID} {json}   (trimmed to the last 100)
type Leaderboard struct {
	client *redis.Client
	now    func() time.Time
}

func NewLeaderboard(client *redis.Client) *Leaderboard {
	return &Leaderboard{client: client, now: time.Now}
}

func (l *Leaderboard) SaveResult(ctx context.Context, result domain.GameResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	pipe := l.client.TxPipeline()
	pipe.ZAddArgs(ctx, l.scoresKey(result.Mode), redis.ZAddArgs{
		GT:      true,
		Members: []redis.Z{{Score: float64(result.Score), Member: result.PlayerID}},
	})
	pipe.HSet(ctx, l.namesKey(result.Mode), result.PlayerID, result.DisplayName)
	pipe.LPush(ctx, l.historyKey(result.PlayerID), data)
	pipe.LTrim(ctx, l.historyKey(result.PlayerID), 0, resultHistoryLen-1)
	_, err = pipe.Exec(ctx)
	return err
}

func (l *Leaderboard) Leaderboard(ctx context.Context, mode string, limit int) (domain.Leaderboard, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	scores, err := l.client.ZRevRangeWithScores(ctx, l.scoresKey(mode), 0, stop).Result()
	if err != nil {
		return domain.Leaderboard{}, err
	}

	entries := make([]domain.LeaderboardEntry, 0, len(scores))
	if len(scores) > 0 {
		ids := make([]string, len(scores))
		for i, z := range scores {
			ids[i], _ = z.Member.(string)
		}
		names, err := l.client.HMGet(ctx, l.namesKey(mode), ids...).Result()
		if err != nil {
			return domain.Leaderboard{}, err
		}
		for i, z := range scores {
			name, _ := names[i].(string)
			entries = append(entries, domain.LeaderboardEntry{
				PlayerID:    ids[i],
				DisplayName: name,
				Score:       int(z.Score),
			})
		}
	}
	return domain.Leaderboard{Mode: mode, Entries: entries, UpdatedAt: l.now()}, nil
}

// Results returns the most recent results of a player, newest first.
func (l *Leaderboard) Results(ctx context.Context, playerID string) ([]domain.GameResult, error) {
	raw, err := l.client.LRange(ctx, l.historyKey(playerID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]domain.GameResult, 0, len(raw))
	for _, item := range raw {
		var r domain.GameResult
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (l *Leaderboard) scoresKey(mode string) string {
	return "leaderboard:" + mode
}

func (l *Leaderboard) namesKey(mode string) string {
	return "leaderboard:" + mode + ":names"
}

func (l *Leaderboard) historyKey(playerID string) string {
	return "results:" + playerID
}
