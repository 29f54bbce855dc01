package cli

import (
	"context"
	"fmt"
	"log"

	"cerises-quiz/internal/config"
	"cerises-quiz/internal/infra/memory"
	pgstore "cerises-quiz/internal/infra/postgres"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
)

// NewSeedCmd loads the built-in sample questions into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample questions into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath)
		},
	}
}

func runSeed(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	loader := pgstore.NewQuestionLoader(pool)
	for _, q := range memory.SampleQuestions() {
		if err := loader.SaveQuestion(ctx, q); err != nil {
			return err
		}
	}
	log.Printf("seeded %d questions", len(memory.SampleQuestions()))
	return nil
}
