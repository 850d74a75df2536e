package seen

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const retention = 30 * 24 * time.Hour

// Storage remembers which notification records a client has already
// surfaced as an alert, so each record alerts exactly once.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

// MarkSeen records the id and reports whether this was the first time.
func (s *Storage) MarkSeen(ctx context.Context, notificationID string) (bool, error) {
	return s.redis.SetNX(ctx, notificationID, 1, retention).Result()
}
