package app

import (
	"context"
	"sync"
	"time"

	"cerises-quiz/internal/domain"
	"cerises-quiz/internal/scoring"
)

// Event types pushed to game subscribers.
const (
	EventState    = "state"
	EventTick     = "tick"
	EventAnswer   = "answer"
	EventFinished = "finished"
)

// GameEvent is a single update on a live game.
type GameEvent struct {
	Type   string                 `json:"type"`
	GameID string                 `json:"gameId"`
	State  scoring.State          `json:"state"`
	Answer *AnswerResult          `json:"answer,omitempty"`
	Result *scoring.ScoringResult `json:"result,omitempty"`
}

// AnswerResult summarizes one submission for the player.
type AnswerResult struct {
	GameID  string                  `json:"gameId"`
	Outcome string                  `json:"outcome"`
	Key     string                  `json:"key,omitempty"`
	Delta   int                     `json:"delta"`
	Answer  *domain.AnswerCandidate `json:"answer,omitempty"`
	State   scoring.State           `json:"state"`
	Result  *scoring.ScoringResult  `json:"result,omitempty"`
}

// GameSnapshot is the externally visible view of a game.
type GameSnapshot struct {
	GameID     string                 `json:"gameId"`
	PlayerID   string                 `json:"playerId"`
	QuestionID string                 `json:"questionId"`
	Prompt     string                 `json:"prompt"`
	Mode       string                 `json:"mode"`
	State      scoring.State          `json:"state"`
	Result     *scoring.ScoringResult `json:"result,omitempty"`
}

// Game is one live session owned by a player. Tick and Submit are serialized
// under mu so neither observes a half-applied state of the other.
type Game struct {
	id          string
	playerID    string
	displayName string
	question    domain.Question
	mode        scoring.Mode
	now         func() time.Time

	mu          sync.Mutex
	session     scoring.Session
	result      *scoring.ScoringResult
	subscribers map[chan GameEvent]struct{}
	stopTimer   context.CancelFunc
}

func newGame(id, playerID, displayName string, question domain.Question, mode scoring.Mode, session scoring.Session, now func() time.Time) *Game {
	return &Game{
		id:          id,
		playerID:    playerID,
		displayName: displayName,
		question:    question,
		mode:        mode,
		now:         now,
		session:     session,
		subscribers: make(map[chan GameEvent]struct{}),
		stopTimer:   func() {},
	}
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// PlayerID returns the owning player.
func (g *Game) PlayerID() string { return g.playerID }

// Finished reports whether the game reached its terminal state.
func (g *Game) Finished() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session.Phase() == scoring.PhaseTerminal
}

// submit applies one answer. finished is true only for the call that moved the
// session into its terminal state.
func (g *Game) submit(raw string) (AnswerResult, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.session.Phase() == scoring.PhaseTerminal {
		return AnswerResult{}, false, domain.ErrGameFinished
	}

	next, outcome := g.session.Submit(raw)
	g.session = next

	res := AnswerResult{
		GameID:  g.id,
		Outcome: outcome.Kind.String(),
		Key:     outcome.Key,
		Delta:   outcome.Delta,
	}
	if outcome.Kind == scoring.Correct {
		candidate := outcome.Candidate
		res.Answer = &candidate
	}

	finished, err := g.finishLocked()
	if err != nil {
		return AnswerResult{}, false, err
	}
	res.State = g.session.State()
	res.Result = g.result

	if outcome.Kind != scoring.Ignored {
		g.broadcastLocked(GameEvent{Type: EventAnswer, Answer: &res})
	}
	if finished {
		g.broadcastLocked(GameEvent{Type: EventFinished, Result: g.result})
	}
	return res, finished, nil
}

func (g *Game) tick() (GameSnapshot, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.session.Phase() == scoring.PhaseTerminal {
		return g.snapshotLocked(), false, nil
	}
	g.session = g.session.Tick()

	finished, err := g.finishLocked()
	if err != nil {
		return GameSnapshot{}, false, err
	}
	g.broadcastLocked(GameEvent{Type: EventTick})
	if finished {
		g.broadcastLocked(GameEvent{Type: EventFinished, Result: g.result})
	}
	return g.snapshotLocked(), finished, nil
}

// finishLocked computes the reward exactly once, on the terminal transition.
func (g *Game) finishLocked() (bool, error) {
	if g.result != nil || g.session.Phase() != scoring.PhaseTerminal {
		return false, nil
	}
	res, err := g.session.Reward(g.mode.Reward)
	if err != nil {
		return false, err
	}
	g.result = &res
	g.stopTimer()
	return true, nil
}

func (g *Game) gameResult() domain.GameResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	res := domain.GameResult{
		GameID:      g.id,
		PlayerID:    g.playerID,
		DisplayName: g.displayName,
		QuestionID:  g.question.ID,
		Mode:        g.mode.Name,
		Found:       g.session.Found(),
		Total:       g.session.Total(),
		FinishedAt:  g.now(),
	}
	if g.result != nil {
		res.Score = g.result.FinalScore
		res.Cerises = g.result.Cerises
		res.StreakBonus = g.result.StreakBonus
		res.TimeBonus = g.result.TimeBonus
	}
	return res
}

func (g *Game) setStopTimer(cancel context.CancelFunc) {
	g.mu.Lock()
	g.stopTimer = cancel
	g.mu.Unlock()
}

func (g *Game) close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopTimer()
	for ch := range g.subscribers {
		delete(g.subscribers, ch)
		close(ch)
	}
}

func (g *Game) snapshot() GameSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *Game) snapshotLocked() GameSnapshot {
	return GameSnapshot{
		GameID:     g.id,
		PlayerID:   g.playerID,
		QuestionID: g.question.ID,
		Prompt:     g.question.Prompt,
		Mode:       g.mode.Name,
		State:      g.session.State(),
		Result:     g.result,
	}
}

func (g *Game) subscribe() (<-chan GameEvent, func()) {
	ch := make(chan GameEvent, 8)

	g.mu.Lock()
	g.subscribers[ch] = struct{}{}
	initial := GameEvent{Type: EventState, GameID: g.id, State: g.session.State(), Result: g.result}
	g.mu.Unlock()

	ch <- initial

	cancel := func() {
		g.mu.Lock()
		if _, ok := g.subscribers[ch]; ok {
			delete(g.subscribers, ch)
			close(ch)
		}
		g.mu.Unlock()
	}
	return ch, cancel
}

func (g *Game) broadcastLocked(ev GameEvent) {
	ev.GameID = g.id
	ev.State = g.session.State()
	for ch := range g.subscribers {
		select {
		case ch <- ev:
		default:
			// slow subscriber: drop the oldest update rather than block the game.
			select {
			case <-ch:
			default:
			}
			ch <- ev
		}
	}
}
