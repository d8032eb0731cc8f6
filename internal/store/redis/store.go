package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"github.com/MrSnakeDoc/statuary/internal/logger"
	"github.com/MrSnakeDoc/statuary/internal/session"
)

const (
	// DefaultBreakerFailures is the number of consecutive failures that opens the breaker
	DefaultBreakerFailures = 5
	// DefaultBreakerTimeout is how long the breaker stays open before probing again
	DefaultBreakerTimeout = 30 * time.Second
)

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = errors.New("redis unavailable")

// Options tunes the store. Zero values pick defaults.
type Options struct {
	TTL             time.Duration // 0 = keys never expire
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// Store persists visitor values as plain strings in Redis.
type Store struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker[*string]
	logger  logger.Logger
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client, opts Options, log logger.Logger) *Store {
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = DefaultBreakerFailures
	}
	if opts.BreakerTimeout == 0 {
		opts.BreakerTimeout = DefaultBreakerTimeout
	}

	s := &Store{
		client: client,
		ttl:    opts.TTL,
		logger: log,
	}

	s.breaker = gobreaker.NewCircuitBreaker[*string](gobreaker.Settings{
		Name:        "redis",
		MaxRequests: 1,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.logger.Warn("circuit breaker state changed",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()))
		},
	})

	return s
}

// Get returns the value stored under name for a visitor. found is false
// when the key does not exist.
func (s *Store) Get(ctx context.Context, visitorID, name string) (string, bool, error) {
	key := VisitorKey(visitorID, name)

	v, err := s.execute(func() (*string, error) {
		val, err := s.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &val, nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	if v == nil {
		return "", false, nil
	}

	return *v, true, nil
}

// Set overwrites the value stored under name for a visitor.
func (s *Store) Set(ctx context.Context, visitorID, name, value string) error {
	key := VisitorKey(visitorID, name)

	_, err := s.execute(func() (*string, error) {
		return nil, s.client.Set(ctx, key, value, s.ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	return nil
}

// Delete removes every persisted value of a visitor. Keys are named
// exactly; the visitor id is never used as a pattern.
func (s *Store) Delete(ctx context.Context, visitorID string) error {
	keys := make([]string, 0, len(session.PersistedKeys))
	for _, name := range session.PersistedKeys {
		keys = append(keys, VisitorKey(visitorID, name))
	}

	_, err := s.execute(func() (*string, error) {
		return nil, s.client.Del(ctx, keys...).Err()
	})
	if err != nil {
		return fmt.Errorf("failed to delete visitor %s: %w", visitorID, err)
	}
	return nil
}

// Ping checks connectivity. It bypasses the breaker so readiness probes
// see the real state of the server.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// BreakerState reports the breaker state for /infra.
func (s *Store) BreakerState() string {
	return s.breaker.State().String()
}

// Backend names the storage for /infra.
func (s *Store) Backend() string {
	return "redis"
}

func (s *Store) execute(fn func() (*string, error)) (*string, error) {
	v, err := s.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return v, err
}
