package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"bookrec/internal/config"
	"bookrec/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.For(context.Background()).WithError(err).Error("migrate failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the fetch_runs schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		dbCommand("up", "Apply all pending migrations", func(db *sql.DB, dir string, _ []string) error {
			return goose.Up(db, dir)
		}),
		dbCommand("down", "Roll back the latest migration", func(db *sql.DB, dir string, _ []string) error {
			return goose.Down(db, dir)
		}),
		dbCommand("status", "Print migration status", func(db *sql.DB, dir string, _ []string) error {
			return goose.Status(db, dir)
		}),
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create a new SQL migration",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := goose.Create(nil, migrationsDir(), args[0], "sql"); err != nil {
					return fmt.Errorf("create migration: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Migration created: %s\n", args[0])
				return nil
			},
		},
	)
	return root
}

func dbCommand(use, short string, fn func(db *sql.DB, dir string, args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, err := databaseDSN()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			pool, err := pgxpool.New(ctx, dsn)
			if err != nil {
				return fmt.Errorf("connect %s: %w", config.RedactDSN(dsn), err)
			}
			defer pool.Close()

			db := stdlib.OpenDBFromPool(pool)
			defer db.Close()

			if err := goose.SetDialect("postgres"); err != nil {
				return err
			}

			dir := migrationsDir()
			if err := fn(db, dir, args); err != nil {
				return fmt.Errorf("%s: %w", use, err)
			}
			logger.For(ctx).WithField("dir", dir).Infof("migrate %s done", use)
			return nil
		},
	}
}
