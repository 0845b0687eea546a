package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/spunky-sabin/clash-clone/internal/models"
	"github.com/spunky-sabin/clash-clone/internal/progress"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show remaining resources and builder time per category",
		Run: func(cmd *cobra.Command, args []string) {
			s := mustSession()
			report := mustReport(s)

			printTitle(report)
			printStats(report)
			printWarnings(s, report)
		},
	}
}

func printStats(report *progress.Report) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Category", "Resource", "Spent", "Remaining", "Time Left"}),
	)

	totals := make(map[models.ResourceType]int64)
	for _, c := range report.Categories {
		remaining := c.Remaining()
		if len(remaining) == 0 {
			continue
		}
		first := true
		for _, r := range sortedResources(remaining) {
			name, timeStr := "", ""
			if first {
				name = string(c.Category)
				if c.TracksTime {
					timeStr = fmt.Sprintf("%s ÷ %d = %s", formatTime(c.RemainingTime), c.Divider, formatTime(c.RemainingPerBuilder()))
				}
				first = false
			}
			_ = table.Append([]string{
				name,
				string(r),
				formatAmount(c.Completed[r]),
				formatAmount(remaining[r]),
				timeStr,
			})
			totals[r] += remaining[r]
		}
	}
	for _, r := range sortedResources(totals) {
		_ = table.Append([]string{"Total", string(r), "", formatAmount(totals[r]), ""})
	}
	_ = table.Render()
}
