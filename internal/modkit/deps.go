// Package modkit wires api modules: shared deps, build options and the module contract
package modkit

import (
	"addressbook/internal/platform/config"
	"addressbook/internal/platform/logger"
	"addressbook/internal/platform/store"
)

// Deps are the process wide handles every module is built from
// PG and CH stay nil when their backend is disabled
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  store.TxRunner
	CH  store.Clickhouse
}
