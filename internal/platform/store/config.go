package store

import "time"

// Config selects and configures the backends Open connects
type Config struct {
	// AppName is reported to clickhouse as the client name
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures the pgx pool
type PGConfig struct {
	Enabled  bool
	URL      string
	MaxConns int32

	// LogSQL traces every statement; SlowQueryMs promotes slow ones to warn
	LogSQL      bool
	SlowQueryMs int

	// ConnectRetries bounds the startup ping loop, 20 when unset
	ConnectRetries int
	// PingTimeout bounds each startup ping, 3s when unset
	PingTimeout time.Duration
}

// CHConfig configures the clickhouse connection
type CHConfig struct {
	Enabled bool
	URL     string

	// ClientName overrides AppName; ClientTag names the binary role
	ClientName string
	ClientTag  string
}
