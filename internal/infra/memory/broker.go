package memory

import (
	"context"
	"sync"

	"cerises-quiz/internal/domain"
)

// Broker fans balance events out to in-process subscribers.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[chan domain.BalanceChanged]string // channel -> player filter, "" for all
}

func NewBroker() *Broker {
	return &Broker{subscribers: make(map[chan domain.BalanceChanged]string)}
}

// Subscribe registers for events of playerID, or of everyone when empty.
// The caller must invoke the returned cancel function to avoid leaks.
func (b *Broker) Subscribe(playerID string) (<-chan domain.BalanceChanged, func()) {
	ch := make(chan domain.BalanceChanged, 8)
	b.mu.Lock()
	b.subscribers[ch] = playerID
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subscribers[ch]; ok {
			delete(b.subscribers, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

func (b *Broker) PublishBalance(_ context.Context, event domain.BalanceChanged) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch, filter := range b.subscribers {
		if filter != "" && filter != event.PlayerID {
			continue
		}
		select {
		case ch <- event:
		default:
			// subscriber is behind; it only needs the latest balance.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- event:
			default:
			}
		}
	}
	return nil
}
