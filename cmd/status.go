package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/ordermigrate/migrator"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report readiness and the row count of every table",
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
		color.Green("✅ All required tables exist in schema %q", sess.cfg.Schema)
		printRowCounts(m.RowCounts(ctx))
		return nil
	},
}
