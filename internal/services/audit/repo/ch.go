// Package repo persists audit records in clickhouse
package repo

import (
	"context"
	"errors"

	perr "addressbook/internal/platform/errors"
	"addressbook/internal/platform/store"
	"addressbook/internal/services/audit/domain"
)

// Table is the clickhouse table holding lifecycle events
const Table = "address_events"

const ddl = `CREATE TABLE IF NOT EXISTS ` + Table + ` (
	event_id    UUID,
	kind        LowCardinality(String),
	address_id  Int64,
	occurred_at DateTime64(3, 'UTC')
) ENGINE = MergeTree
ORDER BY (address_id, occurred_at)`

const recentSQL = `SELECT event_id, kind, address_id, occurred_at
FROM ` + Table + `
WHERE address_id = ?
ORDER BY occurred_at DESC, event_id
LIMIT ?`

// CH is the clickhouse backed audit store
type CH struct {
	ch store.Clickhouse
}

// NewCH wraps a clickhouse seam; nil is rejected
func NewCH(ch store.Clickhouse) (*CH, error) {
	if ch == nil {
		return nil, errors.New("audit repo: nil clickhouse")
	}
	return &CH{ch: ch}, nil
}

// EnsureSchema creates the events table when missing
func (r *CH) EnsureSchema(ctx context.Context) error {
	if err := r.ch.Exec(ctx, ddl); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "create %s", Table)
	}
	return nil
}

// Write appends one record
func (r *CH) Write(ctx context.Context, rec domain.Record) error {
	row := []any{rec.EventID, rec.Kind, rec.AddressID, rec.OccurredAt.UTC()}
	if err := r.ch.Insert(ctx, Table, [][]any{row}); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "insert %s event for address %d", rec.Kind, rec.AddressID)
	}
	return nil
}

// Recent returns the newest records of one address
func (r *CH) Recent(ctx context.Context, addressID int64, limit int) ([]domain.Record, error) {
	rows, err := r.ch.Query(ctx, recentSQL, addressID, uint64(limit))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "query %s", Table)
	}
	defer rows.Close()

	out := make([]domain.Record, 0, limit)
	for rows.Next() {
		var rec domain.Record
		if err := rows.Scan(&rec.EventID, &rec.Kind, &rec.AddressID, &rec.OccurredAt); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "scan audit record")
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "iterate audit records")
	}
	return out, nil
}
