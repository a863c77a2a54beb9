package module

import (
	"strings"

	"addressbook/internal/platform/config"
)

// Backend selects the address storage engine
type Backend string

const (
	// BackendAuto uses postgres when deps carry a PG handle, memory otherwise
	BackendAuto Backend = "auto"
	// BackendMemory keeps addresses in process
	BackendMemory Backend = "memory"
	// BackendPostgres requires a PG handle
	BackendPostgres Backend = "postgres"
)

// Options controls the addresses module
type Options struct {
	Backend Backend
}

// FromConfig reads with ADDRESSES_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("ADDRESSES_")
	return Options{
		Backend: Backend(strings.ToLower(c.MayEnum("BACKEND", string(BackendAuto),
			string(BackendAuto), string(BackendMemory), string(BackendPostgres)))),
	}
}
