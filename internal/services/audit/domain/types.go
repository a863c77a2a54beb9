// Package domain holds audit trail types
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Record is one persisted lifecycle event
type Record struct {
	EventID    uuid.UUID `json:"event_id"`
	Kind       string    `json:"kind"`
	AddressID  int64     `json:"address_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// DefaultLimit and MaxLimit bound how many records a single read returns
const (
	DefaultLimit = 50
	MaxLimit     = 500
)
