package domain

import "context"

// SinkPort stores audit records
type SinkPort interface {
	Write(ctx context.Context, r Record) error
}

// QueryPort reads audit records back, newest first
type QueryPort interface {
	Recent(ctx context.Context, addressID int64, limit int) ([]Record, error)
}
