// Package store opens the optional postgres and clickhouse backends behind small seams
package store

import (
	"context"
	"errors"

	"addressbook/internal/platform/logger"
)

// Row is one scannable result row
type Row interface {
	Scan(dest ...any) error
}

// Rows iterates a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports what a write touched
type CommandTag interface {
	RowsAffected() int64
}

// RowQuerier is the sql surface repos are written against
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also run fn inside one transaction
// fn's error rolls back, nil commits
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar seam the audit sink writes through
// Insert takes rows as [][]any in table column order
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

// Store holds whichever backends Config enabled; disabled ones stay nil
type Store struct {
	PG TxRunner
	CH Clickhouse

	log    logger.Logger
	closer []func() error
}

// Option adjusts a Store before backends open
type Option func(*Store)

// WithLogger sets the logger SQL tracing writes to
func WithLogger(l logger.Logger) Option { return func(s *Store) { s.log = l } }

// Open connects every enabled backend, closing what it opened on failure
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{log: *logger.Get()}
	for _, o := range opts {
		o(s)
	}
	if cfg.PG.Enabled {
		pg, closePG, err := openPG(ctx, cfg.PG, s.log)
		if err != nil {
			return nil, err
		}
		s.PG = pg
		s.closer = append(s.closer, closePG)
	}
	if cfg.CH.Enabled {
		ch, err := openCH(ctx, cfg)
		if err != nil {
			return nil, errors.Join(err, s.Close())
		}
		s.CH = ch
		s.closer = append(s.closer, ch.Close)
	}
	return s, nil
}

// Close releases every opened backend
func (s *Store) Close() error {
	var errs []error
	for i := len(s.closer) - 1; i >= 0; i-- {
		errs = append(errs, s.closer[i]())
	}
	s.closer = nil
	return errors.Join(errs...)
}
