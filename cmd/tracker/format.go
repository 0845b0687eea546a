package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spunky-sabin/clash-clone/internal/converter"
	"github.com/spunky-sabin/clash-clone/internal/models"
	"github.com/spunky-sabin/clash-clone/internal/progress"
)

// formatAmount abbreviates large resource amounts, e.g. 1.25M
func formatAmount(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return trimZero(fmt.Sprintf("%.2f", float64(n)/1e9)) + "B"
	case n >= 1_000_000:
		return trimZero(fmt.Sprintf("%.2f", float64(n)/1e6)) + "M"
	case n >= 10_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1e3)) + "K"
	}
	return fmt.Sprintf("%d", n)
}

func trimZero(s string) string {
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// formatCost renders a price in its resource, or its ores for equipment
func formatCost(c models.Cost, res models.ResourceType) string {
	if c.IsZero() {
		return "-"
	}
	if !c.Ores.IsZero() {
		var parts []string
		if c.Ores.Shiny > 0 {
			parts = append(parts, formatAmount(c.Ores.Shiny)+" shiny")
		}
		if c.Ores.Glowy > 0 {
			parts = append(parts, formatAmount(c.Ores.Glowy)+" glowy")
		}
		if c.Ores.Starry > 0 {
			parts = append(parts, formatAmount(c.Ores.Starry)+" starry")
		}
		return strings.Join(parts, " ")
	}
	return formatAmount(c.Amount) + " " + shortResource(res)
}

func shortResource(r models.ResourceType) string {
	switch r {
	case models.Gold:
		return "gold"
	case models.Elixir:
		return "elixir"
	case models.DarkElixir:
		return "DE"
	}
	return strings.ToLower(string(r))
}

// formatRemaining lists what is left per resource in display order
func formatRemaining(m map[models.ResourceType]int64) string {
	var parts []string
	for _, r := range models.AllResourceTypes() {
		if v := m[r]; v > 0 {
			parts = append(parts, formatAmount(v)+" "+shortResource(r))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

// formatTime renders a duration, or "-" when there is none
func formatTime(seconds int64) string {
	if seconds <= 0 {
		return "-"
	}
	return converter.FormatDuration(seconds)
}

func statusIcon(s models.Status) string {
	switch s {
	case models.StatusMaxed:
		return "✓ Maxed"
	case models.StatusUpgrading:
		return "⏳ Upgrading"
	case models.StatusLocked:
		return "🔒 Locked"
	case models.StatusBuild:
		return "🏗️ Build"
	case models.StatusMerge:
		return "🔗 Merge"
	}
	return string(s)
}

// instanceLabel is "3/5" for multi-copy entities and "" otherwise
func instanceLabel(r progress.Row) string {
	if r.Count > 1 {
		return fmt.Sprintf("×%d", r.Count)
	}
	if r.Of <= 1 {
		return ""
	}
	return fmt.Sprintf("%d/%d", r.Index, r.Of)
}

// filterRows keeps the rows of one table category, dropping maxed and
// locked ones unless all is set
func filterRows(rows []progress.Row, category models.TableCategory, all bool) []progress.Row {
	var out []progress.Row
	for _, r := range rows {
		if category != "" && r.Category != category {
			continue
		}
		if !all && (r.Status == models.StatusMaxed || r.Status == models.StatusLocked) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// sortedResources returns the keys of a remaining map in display order
func sortedResources(m map[models.ResourceType]int64) []models.ResourceType {
	order := make(map[models.ResourceType]int)
	for i, r := range models.AllResourceTypes() {
		order[r] = i
	}
	out := make([]models.ResourceType, 0, len(m))
	for r := range m {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return order[out[i]] < order[out[j]] })
	return out
}
