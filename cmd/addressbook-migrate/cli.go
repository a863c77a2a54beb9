package main

import (
	"fmt"

	"addressbook/internal/platform/logger"
	"addressbook/internal/platform/store/migrate"

	"github.com/spf13/cobra"
)

// migrator is the slice of *migrate.Migrator the commands drive
type migrator interface {
	Up() error
	Down(steps int) error
	Version() (version uint, dirty bool, ok bool, err error)
	Close() error
}

// opener connects to the database behind dbURL
type opener func(dbURL string) (migrator, error)

func openMigrator(dbURL string) (migrator, error) {
	return migrate.Open(dbURL, logger.Named("migrate"))
}

type rootOptions struct {
	DBURL string
}

// newRootCommand builds the CLI; defaultURL comes from SERVICE_PGSQL_DBURL
func newRootCommand(open opener, defaultURL string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "addressbook-migrate",
		Short: "Apply or roll back the addressbook postgres schema",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.DBURL == "" {
				return fmt.Errorf("no database url: set --db or SERVICE_PGSQL_DBURL")
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.DBURL, "db", defaultURL, "postgres url")

	cmd.AddCommand(newUpCommand(opts, open))
	cmd.AddCommand(newDownCommand(opts, open))
	cmd.AddCommand(newVersionCommand(opts, open))
	return cmd
}

func withMigrator(opts *rootOptions, open opener, fn func(migrator) error) error {
	m, err := open(opts.DBURL)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()
	return fn(m)
}

func newUpCommand(opts *rootOptions, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(opts, open, func(m migrator) error {
				if err := m.Up(); err != nil {
					return err
				}
				return printVersion(cmd, m)
			})
		},
	}
}

func newDownCommand(opts *rootOptions, open opener) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the newest migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1, got %d", steps)
			}
			return withMigrator(opts, open, func(m migrator) error {
				if err := m.Down(steps); err != nil {
					return err
				}
				return printVersion(cmd, m)
			})
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	return cmd
}

func newVersionCommand(opts *rootOptions, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(opts, open, func(m migrator) error {
				return printVersion(cmd, m)
			})
		},
	}
}

func printVersion(cmd *cobra.Command, m migrator) error {
	v, dirty, ok, err := m.Version()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch {
	case !ok:
		_, err = fmt.Fprintln(out, "schema: empty")
	case dirty:
		_, err = fmt.Fprintf(out, "schema: version %d (dirty)\n", v)
	default:
		_, err = fmt.Fprintf(out, "schema: version %d\n", v)
	}
	return err
}
