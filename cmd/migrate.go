package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/ordermigrate/migrator"
)

var dryRunMigrate bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create missing tables, constraints and indexes, then seed empty tables",
	Long: `Create the order-management schema and load the seed data.

Every step is idempotent: existing objects and populated tables are left alone,
so running migrate again is safe.

Examples:
  ordermigrate migrate              # Apply schema and seed data
  ordermigrate migrate --dry-run    # Print the DDL without connecting
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if dryRunMigrate {
			return previewMigrations()
		}
		return applyMigrations(cmd.Context())
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&dryRunMigrate, "dry-run", false, "Preview the SQL that would be executed without applying migrations")
}

func previewMigrations() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := newMigrator(cfg, nil)
	if err != nil {
		return err
	}

	script, err := m.Plan()
	if err != nil {
		return fmt.Errorf("dry run failed: %w", err)
	}
	color.Cyan("🔍 Statements migrate would run, in order:\n")
	fmt.Print(script)
	return nil
}

func applyMigrations(ctx context.Context) error {
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	m, err := sess.migrator()
	if err != nil {
		return err
	}

	report, err := m.Run(ctx)
	if errors.Is(err, migrator.ErrNotReady) {
		return fmt.Errorf("migration finished but not all tables exist in schema %q", sess.cfg.Schema)
	}
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	printSeedReport(report)
	color.Green("✅ Database is ready")
	return nil
}
