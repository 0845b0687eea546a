package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/spunky-sabin/clash-clone/internal/progress"
)

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Show completion per progress category",
		Run: func(cmd *cobra.Command, args []string) {
			s := mustSession()
			report := mustReport(s)

			printTitle(report)
			printCategories(report)
			printWarnings(s, report)
		},
	}
}

func printCategories(report *progress.Report) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Category", "Progress", "Weighted", "Remaining", "Time", "Per Builder"}),
	)

	for _, c := range report.Categories {
		progressStr := fmt.Sprintf("%.1f%%", c.DisplayPercent())
		switch c.State {
		case progress.StateEmpty:
			progressStr = "-"
		case progress.StateComplete:
			progressStr = "✓ 100%"
		}

		timeStr, perBuilder := "-", "-"
		if c.TracksTime && c.RemainingTime > 0 {
			timeStr = formatTime(c.RemainingTime)
			perBuilder = fmt.Sprintf("%s (%d)", formatTime(c.RemainingPerBuilder()), c.Divider)
		}

		row := []string{
			string(c.Category),
			progressStr,
			fmt.Sprintf("%s / %s", formatAmount(c.CompletedWeighted), formatAmount(c.TotalWeighted)),
			formatRemaining(c.Remaining()),
			timeStr,
			perBuilder,
		}
		_ = table.Append(row)
	}
	_ = table.Render()

	if !quiet {
		successColor := color.New(color.FgGreen, color.Bold)
		if up := report.Upgrading(); len(up) > 0 {
			successColor.Printf("\n⏳ %d upgrades running\n", len(up))
			for _, r := range up {
				fmt.Printf("   • %s %d → %d: %s left (%d%%, %d gems)\n",
					r.Name, r.Level, r.Upgrade.To, formatTime(r.Upgrade.Remaining), r.Upgrade.Progress, r.Upgrade.Gems)
			}
		}
		fmt.Println()
	}
}
