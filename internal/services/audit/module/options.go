package module

import (
	"time"

	"addressbook/internal/platform/config"
	addrdomain "addressbook/internal/services/addresses/domain"
)

// Options holds configuration settings for the audit module
type Options struct {
	// LogEvents writes a log line per lifecycle event
	LogEvents bool
	// ClickHouse stores events in address_events when a clickhouse handle is present
	ClickHouse bool
	// SchemaTimeout bounds the CREATE TABLE at startup
	SchemaTimeout time.Duration
}

// FromConfig reads AUDIT_* settings
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("AUDIT_")
	return Options{
		LogEvents:     c.MayBool("LOG_EVENTS", true),
		ClickHouse:    c.MayBool("CLICKHOUSE", true),
		SchemaTimeout: c.MayDuration("SCHEMA_TIMEOUT", 10*time.Second),
	}
}

// Upstream carries what audit needs from the addresses module
type Upstream struct {
	Bus *addrdomain.Bus
}
