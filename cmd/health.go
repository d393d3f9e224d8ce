package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/ordermigrate/database"
)

var healthTimeout time.Duration

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check database connectivity",
	Long: `Check if the database is accessible and responsive.

Examples:
  ordermigrate health                    # Check default database connection
  ordermigrate health --timeout 10s      # Set custom timeout
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkDatabaseHealth(cmd.Context())
	},
}

func init() {
	healthCmd.Flags().DurationVarP(&healthTimeout, "timeout", "t", 5*time.Second, "Timeout for health check")
}

func checkDatabaseHealth(parent context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(parent, healthTimeout)
	defer cancel()

	provider := database.NewProvider(cfg, logger)
	defer provider.Release(context.Background())

	if !provider.TestHealth(ctx) {
		return fmt.Errorf("database health check failed")
	}
	color.Green("✅ Database is healthy and accessible")

	conn, err := provider.Acquire(ctx)
	if err != nil {
		return err
	}
	m, err := newMigrator(cfg, conn)
	if err != nil {
		return err
	}
	if !m.IsReady(ctx) {
		color.Yellow("⚠️  Database is accessible but the order tables are missing")
		fmt.Println("   Run 'ordermigrate migrate' to create them")
	}
	return nil
}
