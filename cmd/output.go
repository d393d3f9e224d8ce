package cmd

import (
	"fmt"
	"sort"

	"github.com/fatih/color"

	"github.com/ridoystarlord/ordermigrate/introspect"
	"github.com/ridoystarlord/ordermigrate/migrator"
)

func printSeedReport(report migrator.SeedReport) {
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed, color.Bold)

	for _, table := range report.Seeded {
		green.Printf("🌱 Seeded %s\n", table)
	}
	for _, table := range report.Skipped {
		yellow.Printf("⏭️  %s already has data\n", table)
	}

	failed := make([]string, 0, len(report.Failed))
	for table := range report.Failed {
		failed = append(failed, table)
	}
	sort.Strings(failed)
	for _, table := range failed {
		red.Printf("❌ Seeding %s failed: %v\n", table, report.Failed[table])
	}
}

func printRowCounts(counts []introspect.TableCount) {
	red := color.New(color.FgRed)

	fmt.Println("📊 Rows per table:")
	for _, c := range counts {
		if c.Err != nil {
			red.Printf("   - %-14s error: %v\n", c.Table, c.Err)
			continue
		}
		fmt.Printf("   - %-14s %d\n", c.Table, c.Rows)
	}
}
