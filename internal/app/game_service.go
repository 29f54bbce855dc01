package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"cerises-quiz/internal/domain"
	"cerises-quiz/internal/scoring"
	"github.com/google/uuid"
)

// QuestionRepository loads question content (from cache/backing store).
type QuestionRepository interface {
	GetQuestion(ctx context.Context, questionID string) (domain.Question, error)
}

// GameRepository abstracts where live games are kept (in-memory, Redis-marked, etc).
type GameRepository interface {
	Put(game *Game)
	Get(gameID string) (*Game, bool)
	Delete(gameID string)
}

// ResultRepository persists finished games and serves leaderboards.
type ResultRepository interface {
	SaveResult(ctx context.Context, result domain.GameResult) error
	Leaderboard(ctx context.Context, mode string, limit int) (domain.Leaderboard, error)
}

// Wallet holds cerises balances.
type Wallet interface {
	Credit(ctx context.Context, playerID string, amount int, reason string) (int, error)
	Balance(ctx context.Context, playerID string) (int, error)
}

// BalancePublisher notifies the rest of the platform about balance changes.
type BalancePublisher interface {
	PublishBalance(ctx context.Context, event domain.BalanceChanged) error
}

// StartRequest describes a new game.
type StartRequest struct {
	PlayerID    string
	DisplayName string
	QuestionID  string
	Mode        string // defaults to the question's own mode
}

// GameService contains the game use cases. The scorer itself never performs
// I/O; everything persistent happens here after a reward has been computed.
type GameService struct {
	games     GameRepository
	questions QuestionRepository
	results   ResultRepository
	wallet    Wallet
	publisher BalancePublisher
	modes     scoring.Modes

	tickInterval time.Duration
	now          func() time.Time
	newID        func() string
}

// Option customizes a GameService.
type Option func(*GameService)

// WithTickInterval starts a countdown goroutine per game. Zero disables it and
// leaves ticking to the caller.
func WithTickInterval(d time.Duration) Option {
	return func(s *GameService) { s.tickInterval = d }
}

// WithClock is used by tests for deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *GameService) { s.now = now }
}

// WithIDGenerator overrides game id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *GameService) { s.newID = newID }
}

func NewGameService(games GameRepository, questions QuestionRepository, results ResultRepository, wallet Wallet, publisher BalancePublisher, modes scoring.Modes, opts ...Option) *GameService {
	s := &GameService{
		games:        games,
		questions:    questions,
		results:      results,
		wallet:       wallet,
		publisher:    publisher,
		modes:        modes,
		tickInterval: time.Second,
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the question, snapshots its answers and starts the countdown.
func (s *GameService) Start(ctx context.Context, req StartRequest) (GameSnapshot, error) {
	question, err := s.questions.GetQuestion(ctx, req.QuestionID)
	if err != nil {
		return GameSnapshot{}, err
	}

	modeName := req.Mode
	if modeName == "" {
		modeName = question.Mode
	}
	mode, err := s.modes.Lookup(modeName)
	if err != nil {
		return GameSnapshot{}, err
	}

	session, err := scoring.Start(mode.Scoring, scoring.FromQuestion(question))
	if err != nil {
		return GameSnapshot{}, fmt.Errorf("start game on %s: %w", question.ID, err)
	}

	game := newGame(s.newID(), req.PlayerID, req.DisplayName, question, mode, session, s.now)
	s.games.Put(game)

	if s.tickInterval > 0 {
		timerCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		game.setStopTimer(cancel)
		go s.runTimer(timerCtx, game)
	}
	return game.snapshot(), nil
}

// Submit scores a raw answer for a live game.
func (s *GameService) Submit(ctx context.Context, gameID, raw string) (AnswerResult, error) {
	game, ok := s.games.Get(gameID)
	if !ok {
		return AnswerResult{}, domain.ErrGameNotFound
	}
	res, finished, err := game.submit(raw)
	if err != nil {
		return AnswerResult{}, err
	}
	if finished {
		if err := s.finish(ctx, game); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Tick advances a game's countdown by one second.
func (s *GameService) Tick(ctx context.Context, gameID string) (GameSnapshot, error) {
	game, ok := s.games.Get(gameID)
	if !ok {
		return GameSnapshot{}, domain.ErrGameNotFound
	}
	return s.tick(ctx, game)
}

func (s *GameService) tick(ctx context.Context, game *Game) (GameSnapshot, error) {
	snap, finished, err := game.tick()
	if err != nil {
		return GameSnapshot{}, err
	}
	if finished {
		if err := s.finish(ctx, game); err != nil {
			return snap, err
		}
	}
	return snap, nil
}

// Snapshot returns the current view of a game.
func (s *GameService) Snapshot(_ context.Context, gameID string) (GameSnapshot, error) {
	game, ok := s.games.Get(gameID)
	if !ok {
		return GameSnapshot{}, domain.ErrGameNotFound
	}
	return game.snapshot(), nil
}

// Subscribe returns a channel that receives updates for a game.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *GameService) Subscribe(_ context.Context, gameID string) (<-chan GameEvent, func(), error) {
	game, ok := s.games.Get(gameID)
	if !ok {
		return nil, nil, domain.ErrGameNotFound
	}
	ch, cancel := game.subscribe()
	return ch, cancel, nil
}

// Abandon stops a game and drops it without awarding anything.
func (s *GameService) Abandon(_ context.Context, gameID string) {
	game, ok := s.games.Get(gameID)
	if !ok {
		return
	}
	game.close()
	s.games.Delete(gameID)
}

// Leaderboard returns the best scores for a mode.
func (s *GameService) Leaderboard(ctx context.Context, mode string, limit int) (domain.Leaderboard, error) {
	if _, err := s.modes.Lookup(mode); err != nil {
		return domain.Leaderboard{}, err
	}
	return s.results.Leaderboard(ctx, mode, limit)
}

// Balance returns a player's cerises balance.
func (s *GameService) Balance(ctx context.Context, playerID string) (int, error) {
	return s.wallet.Balance(ctx, playerID)
}

// finish persists the result, credits the reward and publishes the new balance.
func (s *GameService) finish(ctx context.Context, game *Game) error {
	result := game.gameResult()
	if err := s.results.SaveResult(ctx, result); err != nil {
		log.Printf("finish game %s: save result: %v", game.ID(), err)
		return fmt.Errorf("save result: %w", err)
	}
	if result.Cerises == 0 {
		return nil
	}

	reason := "game:" + result.Mode + ":" + result.GameID
	balance, err := s.wallet.Credit(ctx, result.PlayerID, result.Cerises, reason)
	if err != nil {
		log.Printf("finish game %s: credit %d cerises: %v", game.ID(), result.Cerises, err)
		return fmt.Errorf("credit cerises: %w", err)
	}

	event := domain.BalanceChanged{
		PlayerID: result.PlayerID,
		Delta:    result.Cerises,
		Balance:  balance,
		Reason:   reason,
		At:       s.now(),
	}
	if err := s.publisher.PublishBalance(ctx, event); err != nil {
		// balance is already credited; subscribers will catch up on next read.
		log.Printf("finish game %s: publish balance: %v", game.ID(), err)
	}
	return nil
}

func (s *GameService) runTimer(ctx context.Context, game *Game) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	// the final tick cancels ctx itself; persistence must outlive it.
	persistCtx := context.WithoutCancel(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.tick(persistCtx, game); err != nil {
				log.Printf("tick game %s: %v", game.ID(), err)
			}
			if game.Finished() {
				return
			}
		}
	}
}
