package redis

import (
	"context"
	"fmt"

	"github.com/mshevelin/event-lottery/internal/adapters/database/redis/feed"
	"github.com/mshevelin/event-lottery/internal/adapters/database/redis/seen"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	Feed *feed.Storage
	Seen *seen.Storage
}

type Options struct {
	Host     string
	Port     string
	Password string
}

func New(opts Options) (*Client, error) {
	feedClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       0,
	})
	if err := feedClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping feed storage: %w", err)
	}

	seenClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       1,
	})
	if err := seenClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping seen storage: %w", err)
	}

	return &Client{
		Feed: feed.NewStorage(feedClient),
		Seen: seen.NewStorage(seenClient),
	}, nil
}
