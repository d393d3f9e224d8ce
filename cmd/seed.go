package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/ordermigrate/migrator"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the seed data into every empty table",
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
		if !m.IsReady(ctx) {
			return migrator.ErrNotReady
		}

		report, err := m.EnsureSeedData(ctx)
		printSeedReport(report)
		if err != nil {
			return fmt.Errorf("%d tables could not be seeded", len(report.Failed))
		}
		color.Green("✅ Seed data in place")
		return nil
	},
}
