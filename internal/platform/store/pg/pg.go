// Package pg opens the pgx pool the address repository runs on
package pg

import (
	"context"
	"fmt"
	"time"

	"addressbook/internal/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the pool and the startup ping loop
type Config struct {
	URL         string
	MaxConns    int32
	Retries     int
	PingTimeout time.Duration
}

// PG owns the pool
type PG struct {
	Pool *pgxpool.Pool
}

// seams for tests
var (
	newPool = pgxpool.NewWithConfig
	ping    = func(ctx context.Context, p *pgxpool.Pool) error { return p.Ping(ctx) }
	backoff = time.Second
)

// Open builds the pool and pings until postgres answers or Retries runs out
func Open(ctx context.Context, cfg Config, log logger.Logger) (*PG, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.Retries <= 0 {
		cfg.Retries = 20
	}
	if cfg.PingTimeout <= 0 {
		cfg.PingTimeout = 3 * time.Second
	}

	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pg: pool: %w", err)
	}
	for attempt := 1; ; attempt++ {
		pctx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
		err = ping(pctx, pool)
		cancel()
		if err == nil {
			return &PG{Pool: pool}, nil
		}
		if attempt >= cfg.Retries {
			pool.Close()
			return nil, fmt.Errorf("pg: ping after %d attempts: %w", attempt, err)
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("postgres not ready, retrying")
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// Close closes the pool
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
