package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const balancesKey = "cerises:balances"

// Wallet stores balances in one hash and an append-only ledger list per player.
type Wallet struct {
	client *redis.Client
	now    func() time.Time
}

type ledgerEntry struct {
	Amount int       `json:"amount"`
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}

func NewWallet(client *redis.Client) *Wallet {
	return &Wallet{client: client, now: time.Now}
}

func (w *Wallet) Credit(ctx context.Context, playerID string, amount int, reason string) (int, error) {
	entry, err := json.Marshal(ledgerEntry{Amount: amount, Reason: reason, At: w.now()})
	if err != nil {
		return 0, err
	}
	pipe := w.client.TxPipeline()
	incr := pipe.HIncrBy(ctx, balancesKey, playerID, int64(amount))
	pipe.RPush(ctx, w.ledgerKey(playerID), entry)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

func (w *Wallet) Balance(ctx context.Context, playerID string) (int, error) {
	balance, err := w.client.HGet(ctx, balancesKey, playerID).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return balance, err
}

func (w *Wallet) ledgerKey(playerID string) string {
	return "cerises:ledger:" + playerID
}
