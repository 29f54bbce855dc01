package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cerises-quiz/internal/app"
	"cerises-quiz/internal/config"
	"cerises-quiz/internal/infra/memory"
	pgstore "cerises-quiz/internal/infra/postgres"
	redisstore "cerises-quiz/internal/infra/redis"
	transport "cerises-quiz/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	modes, err := cfg.ScoringModes()
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var loader memory.QuestionLoader = memory.NewStaticQuestionLoader(memory.SampleQuestions())
	if pool != nil {
		loader = pgstore.NewQuestionLoader(pool)
	}

	questionTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var questions app.QuestionRepository
	if redisClient != nil {
		questions = redisstore.NewQuestionRepository(redisClient, loader, questionTTL)
	} else {
		questions = memory.NewQuestionRepository(loader, questionTTL)
	}

	var games app.GameRepository
	if redisClient != nil {
		games = redisstore.NewGameStore(redisClient, redisTTL)
	} else {
		games = memory.NewGameStore()
	}

	var results app.ResultRepository = memory.NewResultStore()
	var wallet app.Wallet = memory.NewWallet()
	switch {
	case pool != nil:
		results = pgstore.NewResultStore(pool)
		wallet = pgstore.NewWallet(pool)
	case redisClient != nil:
		results = redisstore.NewLeaderboard(redisClient)
		wallet = redisstore.NewWallet(redisClient)
	}

	// Balance events reach websocket clients through the local broker. With
	// Redis, events are published there and relayed back so every instance sees them.
	broker := memory.NewBroker()
	var publisher app.BalancePublisher = broker
	relayCtx, stopRelay := context.WithCancel(ctx)
	defer stopRelay()
	if redisClient != nil {
		publisher = redisstore.NewPublisher(redisClient)
		events, err := redisstore.SubscribeBalances(relayCtx, redisClient)
		if err != nil {
			return err
		}
		go func() {
			for ev := range events {
				_ = broker.PublishBalance(relayCtx, ev)
			}
		}()
	}

	tick := config.TTLDuration(cfg.Game.TickInterval, time.Second)
	service := app.NewGameService(games, questions, results, wallet, publisher, modes, app.WithTickInterval(tick))

	mux := transport.NewRouter(transport.NewWSHandler(service, broker), transport.NewAPIHandler(service))

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting cerises quiz on :%s (modes: %v)", finalPort, modes.Names())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
