package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var confirmReset bool

func init() {
	resetCmd.Flags().BoolVarP(&confirmReset, "yes", "y", false, "Confirm that all order data may be deleted")
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all rows, restart id sequences and load the seed data again",
	Long: `Delete every row from the order tables, restart their id sequences at 1
and seed them again. Deleted rows are not restored if a later step fails.

Examples:
  ordermigrate reset --yes
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmReset {
			return errors.New("reset deletes all order data; pass --yes to confirm")
		}

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

		report, err := m.ResetAndReseed(ctx)
		printSeedReport(report)
		if err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		color.Green("✅ Data reset to the seed state")
		return nil
	},
}
