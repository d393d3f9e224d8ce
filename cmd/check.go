package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare declared tables, foreign keys and indexes with the database",
	Long: `Check the current state of the database schema.

This command will:
- Verify database connectivity
- Read tables, foreign keys and indexes from the catalog
- List every declared object that is missing

Examples:
  ordermigrate check
  ordermigrate check --schema sales
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sess, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer sess.Close()

		m, err := sess.migrator()
		if err != nil {
			return err
		}

		missing, err := m.MissingObjects(ctx)
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		if len(missing) == 0 {
			color.Green("✅ Schema matches the declared tables")
			return nil
		}

		yellow := color.New(color.FgYellow, color.Bold)
		yellow.Printf("⚠️  %d declared objects are missing:\n", len(missing))
		for _, op := range missing {
			fmt.Printf("   - %-16s %s\n", op.Type, op.Name())
		}
		fmt.Println("   Run 'ordermigrate migrate' to create them")
		return fmt.Errorf("schema is incomplete")
	},
}
