package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Mirror receives click notifications so external dashboards can read live
// counters without touching the engine. Mirroring is best-effort: the
// in-memory store stays authoritative and a mirror failure never fails a
// redirect.
type Mirror interface {
	RecordClick(ctx context.Context, shortCode string, at time.Time) error
}

type redisMirror struct {
	client *redis.Client
}

// NewRedisMirror connects to Redis and returns a click mirror.
func NewRedisMirror(redisURL string) (Mirror, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		// If URL parsing fails, try as simple host:port
		opt = &redis.Options{
			Addr: redisURL,
		}
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisMirror{client: client}, nil
}

// RecordClick bumps the per-code counter and notes the access time.
func (m *redisMirror) RecordClick(ctx context.Context, shortCode string, at time.Time) error {
	pipe := m.client.Pipeline()
	pipe.Incr(ctx, fmt.Sprintf("clicks:%s", shortCode))
	pipe.Set(ctx, fmt.Sprintf("clicks:%s:last", shortCode), at.UTC().Format(time.RFC3339), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to mirror click: %w", err)
	}
	return nil
}
