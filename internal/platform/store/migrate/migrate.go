// Package migrate applies the embedded postgres schema migrations
package migrate

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"addressbook/internal/platform/logger"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx database/sql driver
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Source returns the embedded migration source
func Source() (source.Driver, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migrate: create source: %w", err)
	}
	return src, nil
}

// Migrator runs migrations against one database
type Migrator struct {
	m *migrate.Migrate
}

// Open connects to dbURL and prepares the embedded migrations
func Open(dbURL string, log *logger.Logger) (*Migrator, error) {
	if strings.TrimSpace(dbURL) == "" {
		return nil, errors.New("migrate: empty database url")
	}
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("migrate: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: ping database: %w", err)
	}

	src, err := Source()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	drv, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: create db driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "pgx5", drv)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: create migrator: %w", err)
	}
	if log != nil {
		m.Log = zlog{l: log}
	}
	return &Migrator{m: m}, nil
}

// Up applies every pending migration; no pending migration is not an error
func (x *Migrator) Up() error {
	if err := x.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate: up: %w", err)
	}
	return nil
}

// Down rolls back steps migrations, at least one
func (x *Migrator) Down(steps int) error {
	if steps < 1 {
		steps = 1
	}
	if err := x.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate: down %d: %w", steps, err)
	}
	return nil
}

// Version reports the applied version; ok is false on an empty database
func (x *Migrator) Version() (version uint, dirty bool, ok bool, err error) {
	v, d, err := x.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, fmt.Errorf("migrate: version: %w", err)
	}
	return v, d, true, nil
}

// Close releases the source and the database handle
func (x *Migrator) Close() error {
	srcErr, dbErr := x.m.Close()
	return errors.Join(srcErr, dbErr)
}

// runner is the slice of Migrator that Up drives
type runner interface {
	Up() error
	Version() (uint, bool, bool, error)
	Close() error
}

// Up is the startup shortcut: open, apply, report the version, close
func Up(dbURL string, log *logger.Logger) (uint, error) {
	x, err := Open(dbURL, log)
	if err != nil {
		return 0, err
	}
	return apply(x)
}

// apply always closes r; a close failure is joined onto any earlier error
func apply(r runner) (uint, error) {
	var v uint
	err := r.Up()
	if err == nil {
		v, _, _, err = r.Version()
	}
	if cerr := r.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("migrate: close: %w", cerr))
	}
	if err != nil {
		return 0, err
	}
	return v, nil
}

// zlog routes migrate's progress lines into zerolog
type zlog struct{ l *logger.Logger }

func (z zlog) Printf(format string, v ...any) {
	z.l.Info().Str("component", "migrate").Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (z zlog) Verbose() bool { return false }
