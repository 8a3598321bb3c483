// Package redis opens the optional Redis connection that backs theme preferences.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/shelf/internal/logger"
)

// ConnectOptions defines the Redis client and how long to wait for it at startup.
type ConnectOptions struct {
	Addr         string
	User         string
	Password     string
	RedisDB      int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int

	ConnectTimeout time.Duration // total budget for the startup wait (ex: 30s)
	RetryInterval  time.Duration // first backoff, doubled after every failed ping
	MaxWait        time.Duration // backoff cap
	PingTimeout    time.Duration // per ping
	WarnThreshold  int           // failed attempts logged at warn before escalating to error
}

func (o ConnectOptions) validate() error {
	var errs []error
	if o.Addr == "" {
		errs = append(errs, errors.New("Addr must not be empty"))
	}
	for name, d := range map[string]time.Duration{
		"ConnectTimeout": o.ConnectTimeout,
		"RetryInterval":  o.RetryInterval,
		"MaxWait":        o.MaxWait,
		"PingTimeout":    o.PingTimeout,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", name, d))
		}
	}
	if o.WarnThreshold < 0 {
		errs = append(errs, fmt.Errorf("WarnThreshold must be >= 0, got %d", o.WarnThreshold))
	}
	return errors.Join(errs...)
}

func (o ConnectOptions) client() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         o.Addr,
		Username:     o.User,
		Password:     o.Password,
		DB:           o.RedisDB,
		DialTimeout:  o.DialTimeout,
		ReadTimeout:  o.ReadTimeout,
		WriteTimeout: o.WriteTimeout,
		PoolSize:     o.PoolSize,
	})
}

// connector waits for a freshly built client to answer PING.
type connector struct {
	opts   ConnectOptions
	client *redis.Client
	log    logger.Logger
}

// New returns a client once Redis answers, retrying with exponential backoff
// until ConnectTimeout elapses or ctx is cancelled. Shelf refuses to start on
// an unreachable preference store rather than silently falling back to memory.
func New(ctx context.Context, opts ConnectOptions, log logger.Logger) (*redis.Client, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid redis options: %w", err)
	}

	c := &connector{
		opts:   opts,
		client: opts.client(),
		log:    log.With(logger.String("addr", opts.Addr)),
	}
	if err := c.waitReady(ctx); err != nil {
		_ = c.client.Close()
		return nil, err
	}
	return c.client, nil
}

func (c *connector) waitReady(parent context.Context) error {
	ctx, cancel := context.WithTimeout(parent, c.opts.ConnectTimeout)
	defer cancel()

	start := time.Now()
	c.log.Info("waiting for redis preference store",
		logger.Duration("timeout", c.opts.ConnectTimeout))

	wait := c.opts.RetryInterval
	for attempt := 1; ; attempt++ {
		err := c.ping(ctx)
		if err == nil {
			c.ready(attempt, time.Since(start))
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			c.log.Error("redis preference store unreachable",
				logger.Int("attempts", attempt),
				logger.Duration("elapsed", time.Since(start)),
				logger.Error(err))
			return fmt.Errorf("redis unavailable at %s after %d attempts: %w", c.opts.Addr, attempt, err)
		case <-timer.C:
		}

		c.failed(attempt, wait, err)
		wait = nextWait(wait, c.opts.MaxWait)
	}
}

func (c *connector) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.opts.PingTimeout)
	defer cancel()
	return c.client.Ping(ctx).Err()
}

func (c *connector) ready(attempts int, elapsed time.Duration) {
	if attempts == 1 {
		c.log.Info("redis preference store ready")
		return
	}
	c.log.Warn("redis preference store ready after retries",
		logger.Int("attempts", attempts),
		logger.Duration("elapsed", elapsed))
}

func (c *connector) failed(attempt int, retryIn time.Duration, err error) {
	log := c.log.Warn
	if attempt > c.opts.WarnThreshold {
		log = c.log.Error
	}
	log("redis ping failed, retrying",
		logger.Int("attempt", attempt),
		logger.Duration("next_retry_in", retryIn),
		logger.Error(err))
}

// nextWait doubles the backoff, capped at maxWait.
func nextWait(wait, maxWait time.Duration) time.Duration {
	wait *= 2
	if wait > maxWait {
		return maxWait
	}
	return wait
}
