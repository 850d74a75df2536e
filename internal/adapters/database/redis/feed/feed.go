package feed

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Storage is the live notification feed. Each recipient has a channel;
// the dispatcher publishes record ids, clients subscribe by identity.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func channelFor(recipient string) string {
	return fmt.Sprintf("feed:%s", recipient)
}

// Publish pushes a notification record id onto the recipient's channel.
func (s *Storage) Publish(ctx context.Context, recipient string, notificationID string) error {
	return s.redis.Publish(ctx, channelFor(recipient), notificationID).Err()
}

// Subscribe opens the recipient's feed. The returned channel yields
// record ids until ctx is cancelled.
func (s *Storage) Subscribe(ctx context.Context, recipient string) (<-chan string, error) {
	sub := s.redis.Subscribe(ctx, channelFor(recipient))
	if _, err := sub.Receive(ctx); err != nil {
		return nil, err
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
