package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/kutbudev/yaru/internal/config"
	"github.com/kutbudev/yaru/internal/logger"
	"github.com/kutbudev/yaru/pkg/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	configPath string
	logLevel   string
	force      bool
}

func main() {
	opts := &options{}

	var rootCmd = &cobra.Command{
		Use:   "yaru-migrate",
		Short: "Manage the yaru database schema",
		Long: `yaru-migrate creates, drops and seeds the tasks, tags and task_tags tables
of the sqlite or postgres database configured in config.toml.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to config.toml")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newUpCmd(opts))
	rootCmd.AddCommand(newDownCmd(opts))
	rootCmd.AddCommand(newFreshCmd(opts))
	rootCmd.AddCommand(newSeedCmd(opts))
	rootCmd.AddCommand(newStatusCmd(opts))

	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error, so we just need to exit.
		os.Exit(1)
	}
}

// withDatabase connects without migrating and closes afterwards.
func withDatabase(opts *options, fn func(db *repository.Database, log *zap.Logger) error) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	switch cfg.Storage.Driver {
	case config.DriverSQLite, config.DriverPostgres:
	default:
		return fmt.Errorf("storage.driver %q has no schema to migrate", cfg.Storage.Driver)
	}
	cfg.ResolvePassword()

	cfg.Log.Level = opts.logLevel
	log, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	db, err := repository.Connect(&cfg.Storage, log, "warn")
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Health(context.Background()); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return fn(db, log)
}

func newUpCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Create or update the tables (RUN_SEEDER=true also seeds)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(opts, func(db *repository.Database, log *zap.Logger) error {
				if err := repository.Migrate(db.DB); err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				log.Info("migrations applied")

				if seed, _ := strconv.ParseBool(os.Getenv("RUN_SEEDER")); seed {
					if err := repository.Seed(cmd.Context(), db.DB, nil); err != nil {
						return fmt.Errorf("seeding failed: %w", err)
					}
					log.Info("sample data seeded")
				}
				return nil
			})
		},
	}
}

func newDownCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Drop every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.force {
				return errors.New("refusing to drop tables without --force")
			}
			return withDatabase(opts, func(db *repository.Database, log *zap.Logger) error {
				if err := repository.Reset(db.DB); err != nil {
					return fmt.Errorf("drop failed: %w", err)
				}
				log.Info("tables dropped")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Confirm dropping all data")
	return cmd
}

func newFreshCmd(opts *options) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "fresh",
		Short: "Drop and recreate every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.force {
				return errors.New("refusing to drop tables without --force")
			}
			return withDatabase(opts, func(db *repository.Database, log *zap.Logger) error {
				if err := repository.Reset(db.DB); err != nil {
					return fmt.Errorf("drop failed: %w", err)
				}
				if err := repository.Migrate(db.DB); err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				log.Info("schema recreated")
				if seed {
					if err := repository.Seed(cmd.Context(), db.DB, nil); err != nil {
						return fmt.Errorf("seeding failed: %w", err)
					}
					log.Info("sample data seeded")
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Confirm dropping all data")
	cmd.Flags().BoolVar(&seed, "seed", false, "Seed sample data afterwards")
	return cmd
}

func newSeedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample tags and tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(opts, func(db *repository.Database, log *zap.Logger) error {
				if err := repository.Migrate(db.DB); err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				if err := repository.Seed(cmd.Context(), db.DB, nil); err != nil {
					return fmt.Errorf("seeding failed: %w", err)
				}
				log.Info("sample data seeded")
				return nil
			})
		},
	}
}

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which tables exist and their row counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(opts, func(db *repository.Database, log *zap.Logger) error {
				counts, err := repository.Status(db.DB)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "TABLE\tEXISTS\tROWS")
				fmt.Fprintln(w, "-----\t------\t----")
				for _, c := range counts {
					rows := "-"
					if c.Exists {
						rows = strconv.FormatInt(c.Rows, 10)
					}
					fmt.Fprintf(w, "%s\t%t\t%s\n", c.Table, c.Exists, rows)
				}
				return w.Flush()
			})
		},
	}
}
