package cmd

import (
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string
	verbose    bool
	logger     = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "ordermigrate",
	Short: "Provision and verify the order-management PostgreSQL schema",
	Long: `ordermigrate creates the order-management tables, loads their seed data
once and checks that the database is ready for use.

Examples:

  ordermigrate migrate
  ordermigrate migrate --dry-run
  ordermigrate status
  ordermigrate reset --yes
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("❌ %v", err)
		os.Exit(1)
	}
}

func setupLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// Register subcommands
func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "Path to the YAML config file (default ordermigrate.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.String("database-url", "", "Connection URL, overrides config file and environment")
	flags.String("schema", "", "Schema holding the order tables, overrides config file and environment")
	viper.BindPFlag("database.url", flags.Lookup("database-url"))
	viper.BindPFlag("database.schema", flags.Lookup("schema"))

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(demoCmd)
}
