package redis

import (
	"context"
	"encoding/json"

	"cerises-quiz/internal/domain"
	"github.com/redis/go-redis/v9"
)

// BalanceChannel is the pub/sub channel balance events are published on.
const BalanceChannel = "cerises:balance"

// Publisher broadcasts balance changes to every instance listening on Redis.
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) PublishBalance(ctx context.Context, event domain.BalanceChanged) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, BalanceChannel, data).Err()
}

// SubscribeBalances decodes balance events from Redis until ctx is done.
func SubscribeBalances(ctx context.Context, client *redis.Client) (<-chan domain.BalanceChanged, error) {
	sub := client.Subscribe(ctx, BalanceChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan domain.BalanceChanged, 8)
	go func() {
		defer close(out)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev domain.BalanceChanged
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
