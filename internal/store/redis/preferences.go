package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// DefaultPreferenceTTL is the default lifetime of a stored theme choice (365 days)
const DefaultPreferenceTTL = 365 * 24 * time.Hour

// Store persists theme preferences in Redis
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a new Redis preference store. A non-positive ttl uses DefaultPreferenceTTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultPreferenceTTL
	}
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the stored theme of a visitor and refreshes its TTL
func (s *Store) Get(ctx context.Context, visitor string) (domain.Theme, bool, error) {
	raw, err := s.client.GetEx(ctx, ThemeKey(visitor), s.ttl).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get theme preference: %w", err)
	}

	t, ok := domain.ParseTheme(raw)
	if !ok {
		// Unknown values are treated as absent and overwritten on the next toggle
		return "", false, nil
	}
	return t, true, nil
}

// Set stores an explicit theme choice for a visitor
func (s *Store) Set(ctx context.Context, visitor string, t domain.Theme) error {
	if err := s.client.Set(ctx, ThemeKey(visitor), string(t), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save theme preference: %w", err)
	}
	return nil
}
