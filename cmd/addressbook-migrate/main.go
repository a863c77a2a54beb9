// Command addressbook-migrate manages the postgres schema outside the API process
package main

import (
	"os"

	"addressbook/internal/platform/config"
	"addressbook/internal/platform/logger"
)

func main() {
	pgCfg := config.New().Prefix("SERVICE_PGSQL_")

	cmd := newRootCommand(openMigrator, pgCfg.MayString("DBURL", ""))
	if err := cmd.Execute(); err != nil {
		logger.Get().Error().Err(err).Msg("migrate failed")
		os.Exit(1)
	}
}
