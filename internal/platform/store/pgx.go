package store

import (
	"context"
	"time"

	"addressbook/internal/platform/logger"
	"addressbook/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxQuerier is what *pgxpool.Pool and pgx.Tx have in common
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgxDB adapts a pool or an open tx to TxRunner
// db is nil once bound to a tx, so nested Tx calls reuse it
type pgxDB struct {
	q     pgxQuerier
	db    *pg.PG
	trace pg.QueryTracer
	slow  time.Duration
}

var _ TxRunner = (*pgxDB)(nil)

func openPG(ctx context.Context, cfg PGConfig, log logger.Logger) (*pgxDB, func() error, error) {
	var tracer pg.QueryTracer
	if cfg.LogSQL {
		tracer = pg.Tracer(log)
	}
	db, err := pg.Open(ctx, pg.Config{
		URL:         cfg.URL,
		MaxConns:    cfg.MaxConns,
		Retries:     cfg.ConnectRetries,
		PingTimeout: cfg.PingTimeout,
	}, log)
	if err != nil {
		return nil, nil, err
	}
	out := &pgxDB{
		q:     db.Pool,
		db:    db,
		trace: tracer,
		slow:  time.Duration(cfg.SlowQueryMs) * time.Millisecond,
	}
	return out, func() error { db.Close(); return nil }, nil
}

func (d *pgxDB) observe(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if d.trace == nil {
		return
	}
	took := time.Since(start)
	d.trace.OnQuery(ctx, pg.QueryEvent{
		SQL:     sql,
		Args:    args,
		Elapsed: took,
		Err:     err,
		Slow:    d.slow > 0 && took >= d.slow,
	})
}

func (d *pgxDB) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	tag, err := d.q.Exec(ctx, sql, args...)
	d.observe(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (d *pgxDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rows, err := d.q.Query(ctx, sql, args...)
	d.observe(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (d *pgxDB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	row := d.q.QueryRow(ctx, sql, args...)
	d.observe(ctx, sql, args, start, nil)
	return row
}

func (d *pgxDB) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	if d.db == nil {
		return fn(d)
	}
	return pgx.BeginFunc(ctx, d.db.Pool, func(tx pgx.Tx) error {
		return fn(&pgxDB{q: tx, trace: d.trace, slow: d.slow})
	})
}

// Ping lets readiness checks reach the pool; tx bound copies report nil
func (d *pgxDB) Ping(ctx context.Context) error {
	if d.db == nil {
		return nil
	}
	return d.db.Pool.Ping(ctx)
}
