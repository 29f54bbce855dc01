package domain

import "time"

// AnswerCandidate is one known-correct answer for a question.
type AnswerCandidate struct {
	DisplayText   string  `json:"displayText"`
	NormalizedKey string  `json:"normalizedKey,omitempty"`
	Rank          int     `json:"rank,omitempty"`       // 1-based position in a top-N list, 0 if unranked
	PointValue    float64 `json:"pointValue,omitempty"` // stat shown to the player, e.g. goals scored
}

// Question is a single quiz prompt with its fixed answer set.
type Question struct {
	ID      string            `json:"id"`
	Mode    string            `json:"mode"`
	Prompt  string            `json:"prompt"`
	Answers []AnswerCandidate `json:"answers"`
	Slots   int               `json:"slots,omitempty"` // defaults to len(Answers) if zero
}

// TotalAnswers is the number of correct submissions that completes the question.
func (q Question) TotalAnswers() int {
	if q.Slots > 0 {
		return q.Slots
	}
	return len(q.Answers)
}

// GameResult is what gets persisted once a game session ends.
type GameResult struct {
	GameID      string    `json:"gameId"`
	PlayerID    string    `json:"playerId"`
	DisplayName string    `json:"displayName"`
	QuestionID  string    `json:"questionId"`
	Mode        string    `json:"mode"`
	Score       int       `json:"score"`
	Cerises     int       `json:"cerises"`
	StreakBonus int       `json:"streakBonus"`
	TimeBonus   int       `json:"timeBonus"`
	Found       int       `json:"found"`
	Total       int       `json:"total"`
	FinishedAt  time.Time `json:"finishedAt"`
}

// LeaderboardEntry is the best score a player reached in one mode.
type LeaderboardEntry struct {
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName"`
	Score       int    `json:"score"`
}

// Leaderboard captures the ordered scoreboard for a game mode.
type Leaderboard struct {
	Mode      string             `json:"mode"`
	Entries   []LeaderboardEntry `json:"entries"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// BalanceChanged is published whenever a player's cerises balance moves.
type BalanceChanged struct {
	PlayerID string    `json:"playerId"`
	Delta    int       `json:"delta"`
	Balance  int       `json:"balance"`
	Reason   string    `json:"reason"`
	At       time.Time `json:"at"`
}
