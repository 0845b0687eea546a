package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/spunky-sabin/clash-clone/internal/models"
	"github.com/spunky-sabin/clash-clone/internal/progress"
)

func upgradesCmd() *cobra.Command {
	var (
		category string
		all      bool
	)
	cmd := &cobra.Command{
		Use:   "upgrades",
		Short: "List the upgrades left per building, troop, hero and item",
		Run: func(cmd *cobra.Command, args []string) {
			var tc models.TableCategory
			if category != "" {
				var ok bool
				if tc, ok = models.ParseTableCategory(category); !ok {
					color.Red("Unknown category %q", category)
					os.Exit(1)
				}
			}

			s := mustSession()
			report := mustReport(s)
			printTitle(report)

			cats := models.AllTableCategories()
			if tc != "" {
				cats = []models.TableCategory{tc}
			}
			for _, c := range cats {
				rows := filterRows(report.Rows, c, all)
				if len(rows) == 0 {
					continue
				}
				printUpgradeTable(c, rows)
			}
			printWarnings(s, report)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Only this row category, e.g. Defences")
	cmd.Flags().BoolVar(&all, "all", false, "Include maxed and locked rows")
	return cmd
}

func printUpgradeTable(category models.TableCategory, rows []progress.Row) {
	color.New(color.FgCyan, color.Bold).Printf("\n📋 %s\n", category)

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Name", "#", "Level", "Max", "Status", "Next", "Left", "Section"}),
	)
	for _, r := range rows {
		next := formatCost(r.NextCost, r.Resource)
		if r.NextTime > 0 {
			next += " / " + formatTime(r.NextTime)
		}
		if r.Upgrade != nil {
			next = fmt.Sprintf("→ %d in %s", r.Upgrade.To, formatTime(r.Upgrade.Remaining))
		}

		level := fmt.Sprintf("%d", r.Level)
		if r.Supercharge > 0 {
			level += fmt.Sprintf(" (+%d)", r.Supercharge)
		}
		if r.Parent != "" {
			level = fmt.Sprintf("%d [%s %d/%d]", r.Level, r.Parent, r.ParentLevel, r.MaxParentLevel)
		}

		left := fmt.Sprintf("%d", r.Missing.Count())
		if r.Missing.MaxedForTier {
			left = "maxed for hall"
		}

		section := "-"
		if r.Index == 1 && r.Section.Count > 0 {
			section = fmt.Sprintf("%d: %s", r.Section.Count, formatCost(r.Section.Cost, r.Resource))
		}

		_ = table.Append([]string{
			r.Name,
			instanceLabel(r),
			level,
			fmt.Sprintf("%d", r.MaxLevel),
			statusIcon(r.Status),
			next,
			left,
			section,
		})
	}
	_ = table.Render()
}
