package memory

import (
	"context"
	"sync"
	"time"
)

// Transaction is one ledger line.
type Transaction struct {
	PlayerID string
	Amount   int
	Reason   string
	At       time.Time
}

// Wallet keeps cerises balances and their transaction history in memory.
type Wallet struct {
	now func() time.Time

	mu       sync.Mutex
	balances map[string]int
	history  []Transaction
}

func NewWallet() *Wallet {
	return &Wallet{
		now:      time.Now,
		balances: make(map[string]int),
	}
}

func (w *Wallet) Credit(_ context.Context, playerID string, amount int, reason string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balances[playerID] += amount
	w.history = append(w.history, Transaction{PlayerID: playerID, Amount: amount, Reason: reason, At: w.now()})
	return w.balances[playerID], nil
}

func (w *Wallet) Balance(_ context.Context, playerID string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balances[playerID], nil
}

// History returns a copy of the ledger.
func (w *Wallet) History() []Transaction {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Transaction, len(w.history))
	copy(out, w.history)
	return out
}
