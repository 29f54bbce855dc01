package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Wallet is an append-only cerises ledger; a balance is the sum of a player's rows.
type Wallet struct {
	pool *pgxpool.Pool
}

func NewWallet(pool *pgxpool.Pool) *Wallet {
	return &Wallet{pool: pool}
}

func (w *Wallet) Credit(ctx context.Context, playerID string, amount int, reason string) (int, error) {
	var balance int
	err := w.pool.BeginFunc(ctx, func(tx pgx.Tx) error {
		// serialize credits per player so the returned balance includes this row only once.
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, playerID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO cerise_transactions (player_id, amount, reason) VALUES ($1, $2, $3)`,
			playerID, amount, reason); err != nil {
			return err
		}
		return tx.QueryRow(ctx,
			`SELECT COALESCE(SUM(amount), 0) FROM cerise_transactions WHERE player_id=$1`,
			playerID).Scan(&balance)
	})
	if err != nil {
		return 0, fmt.Errorf("credit cerises: %w", err)
	}
	return balance, nil
}

func (w *Wallet) Balance(ctx context.Context, playerID string) (int, error) {
	var balance int
	err := w.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM cerise_transactions WHERE player_id=$1`,
		playerID).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("read balance: %w", err)
	}
	return balance, nil
}
