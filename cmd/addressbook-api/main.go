// @title         Addressbook API
// @version       0.1.0
// @description   Address records with paged queries and lifecycle audit

package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"addressbook/internal/platform/config"
	"addressbook/internal/platform/logger"
	phttp "addressbook/internal/platform/net/http"
	"addressbook/internal/platform/store"
	"addressbook/internal/platform/store/migrate"

	"addressbook/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	// bring up logging early
	l := logger.Get()

	// memory keeps everything in process; postgres needs SERVICE_PGSQL_DBURL
	storage := strings.ToLower(apiCfg.MayEnum("STORAGE", "postgres", "postgres", "memory"))
	usePG := storage == "postgres"

	var pgURL string
	var applied uint
	if usePG {
		pgURL = pgCfg.MustString("DBURL")
		if pgCfg.MayBool("MIGRATE", true) {
			v, err := migrate.Up(pgURL, logger.Named("migrate"))
			if err != nil {
				l.Panic().Err(err).Msg("schema migration failed")
			}
			applied = v
			l.Info().Uint("version", applied).Msg("schema up to date")
		}
	}

	chOn := chCfg.MayBool("ENABLED", false)

	// open the platform store (postgres + CH adapter)
	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "addressbook",
			PG: store.PGConfig{
				Enabled:        usePG,
				URL:            pgURL,
				MaxConns:       int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs:    pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:         pgCfg.MayBool("LOG_SQL", true),
				ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 20),
				PingTimeout:    pgCfg.MayDuration("PING_TIMEOUT", 3*time.Second),
			},
			CH: store.CHConfig{
				Enabled:    chOn,
				URL:        chCfg.MayString("DBURL", ""),
				ClientName: "addressbook",
				ClientTag:  "api",
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
			Migrations:     applied,
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			l.Error().Err(err).Msg("http shutdown")
		}
	}()

	l.Info().Str("storage", storage).Bool("clickhouse", chOn).Uint("schema", applied).Msg("addressbook api starting")

	// run
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
