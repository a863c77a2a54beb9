package store

import (
	"context"
	"errors"

	"addressbook/internal/platform/store/ch"
)

func openCH(ctx context.Context, cfg Config) (*chStore, error) {
	name := cfg.CH.ClientName
	if name == "" {
		name = cfg.AppName
	}
	c, err := ch.Open(ctx, ch.Config{URL: cfg.CH.URL, ClientName: name, ClientTag: cfg.CH.ClientTag})
	if err != nil {
		return nil, err
	}
	return &chStore{c: c}, nil
}

// chStore narrows *ch.CH to Clickhouse, accepting [][]any batches only
type chStore struct{ c *ch.CH }

var _ Clickhouse = (*chStore)(nil)

func (s *chStore) Insert(ctx context.Context, table string, rows any) error {
	batch, ok := rows.([][]any)
	if !ok {
		return errors.New("store: clickhouse insert wants [][]any")
	}
	return s.c.Insert(ctx, table, batch)
}

func (s *chStore) Exec(ctx context.Context, sql string, args ...any) error {
	return s.c.Exec(ctx, sql, args...)
}

func (s *chStore) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := s.c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r}, nil
}

func (s *chStore) Ping(ctx context.Context) error { return s.c.Ping(ctx) }

func (s *chStore) Close() error { return s.c.Close() }

type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
