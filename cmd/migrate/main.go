package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/familyllc/recipe-manager/backend/config"
	"github.com/familyllc/recipe-manager/backend/internal/database"
	"github.com/familyllc/recipe-manager/backend/internal/logger"
	"github.com/familyllc/recipe-manager/backend/migrations"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the recipe database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newUpCmd())
	cmd.AddCommand(newRollbackCmd())
	cmd.AddCommand(newStatusCmd())
	return cmd
}

// withDB opens the configured database for the duration of fn.
func withDB(fn func(db *gorm.DB, log *logger.Logger) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	db, err := database.Open(cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	return fn(db, log)
}

func requirePostgres(db *gorm.DB) error {
	if name := db.Dialector.Name(); name != "postgres" {
		return fmt.Errorf("SQL migrations only apply to postgres; %s is managed by auto-migration", name)
	}
	return nil
}

func newUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB, log *logger.Logger) error {
				if db.Dialector.Name() != "postgres" {
					if err := database.AutoMigrate(db); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "schema auto-migrated")
					return nil
				}
				applied, err := database.RunMigrations(db, migrations.FS, log)
				if err != nil {
					return err
				}
				if len(applied) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no pending migrations")
				}
				for _, name := range applied {
					fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", name)
				}
				return nil
			})
		},
	}
}

func newRollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback",
		Short: "Roll back the most recently applied migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB, log *logger.Logger) error {
				if err := requirePostgres(db); err != nil {
					return err
				}
				name, err := database.RollbackLast(db, migrations.FS, log)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "rolled back %s\n", name)
				return nil
			})
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List applied migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB, log *logger.Logger) error {
				if err := requirePostgres(db); err != nil {
					return err
				}
				applied, err := database.Applied(db)
				if err != nil {
					return err
				}
				if len(applied) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
				}
				for _, m := range applied {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m.AppliedAt.Format("2006-01-02 15:04:05"), m.Name)
				}
				return nil
			})
		},
	}
}
