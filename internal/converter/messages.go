package converter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spunky-sabin/clash-clone/internal/models"
	"github.com/spunky-sabin/clash-clone/internal/progress"
)

// CostToDTO converts a model Cost priced in res to its wire form
func CostToDTO(c models.Cost, res models.ResourceType) CostDTO {
	return CostDTO{
		Resource: string(res),
		Amount:   c.Amount,
		Shiny:    c.Ores.Shiny,
		Glowy:    c.Ores.Glowy,
		Starry:   c.Ores.Starry,
	}
}

// UpgradeListToDTO converts a missing-level list
func UpgradeListToDTO(l progress.UpgradeList, res models.ResourceType) UpgradeListDTO {
	dto := UpgradeListDTO{
		Steps:      make([]StepDTO, 0, len(l.Steps)),
		Cost:       CostToDTO(l.Cost, res),
		Time:       l.Time,
		MaxedForTH: l.MaxedForTier,
	}
	for _, s := range l.Steps {
		dto.Steps = append(dto.Steps, StepDTO{
			Level:       s.Level,
			Cost:        CostToDTO(s.Cost, s.Resource),
			Time:        s.Time,
			Supercharge: s.Supercharge,
		})
	}
	return dto
}

// RowToDTO converts a report row
func RowToDTO(r progress.Row) RowDTO {
	dto := RowDTO{
		EntityID:       r.EntityID,
		Name:           r.Name,
		Kind:           string(r.Kind),
		Category:       string(r.Category),
		Progress:       string(r.Progress),
		Index:          r.Index,
		Of:             r.Of,
		Count:          r.Count,
		Level:          r.Level,
		MaxLevel:       r.MaxLevel,
		AbsoluteMax:    r.AbsoluteMax,
		Status:         string(r.Status),
		NextTime:       r.NextTime,
		Missing:        UpgradeListToDTO(r.Missing, r.Resource),
		Supercharge:    r.Supercharge,
		SuperchargeMax: r.SuperchargeMax,
		Merged:         r.Merged,
		Parent:         r.Parent,
		ParentLevel:    r.ParentLevel,
		MaxParentLevel: r.MaxParentLevel,
		Section: SectionDTO{
			Count:    r.Section.Count,
			Cost:     CostToDTO(r.Section.Cost, r.Resource),
			Weighted: r.Section.Weighted,
			Time:     r.Section.Time,
		},
	}
	if !r.NextCost.IsZero() {
		c := CostToDTO(r.NextCost, r.Resource)
		dto.NextCost = &c
	}
	if u := r.Upgrade; u != nil {
		dto.Upgrade = &UpgradeDTO{
			To:            u.To,
			Supercharge:   u.Supercharge,
			Remaining:     u.Remaining,
			RemainingText: FormatDuration(u.Remaining),
			Total:         u.Total,
			Gems:          u.Gems,
			Progress:      u.Progress,
			After:         UpgradeListToDTO(u.After, r.Resource),
		}
	}
	return dto
}

// CategoryToDTO converts one dashboard category
func CategoryToDTO(c progress.CategoryProgress) CategoryDTO {
	dto := CategoryDTO{
		Category:            string(c.Category),
		Percent:             c.Percent,
		DisplayPercent:      c.DisplayPercent(),
		ExactPercent:        c.ExactPercent,
		CompletedWeighted:   c.CompletedWeighted,
		TotalWeighted:       c.TotalWeighted,
		TracksTime:          c.TracksTime,
		CompletedTime:       c.CompletedTime,
		TotalTime:           c.TotalTime,
		RemainingTime:       c.RemainingTime,
		RemainingPerBuilder: c.RemainingPerBuilder(),
		Divider:             c.Divider,
		Remaining:           make(map[string]int64),
		State:               string(c.State),
	}
	for res, amount := range c.Remaining() {
		dto.Remaining[string(res)] = amount
	}
	return dto
}

// ReportToDTO converts a full report. Rows are left out when withRows is false.
func ReportToDTO(r *progress.Report, withRows bool) ReportDTO {
	dto := ReportDTO{
		ID:          r.ID,
		Tag:         r.Tag,
		Name:        r.Name,
		Village:     string(r.Village),
		Tier:        r.Tier,
		GeneratedAt: r.GeneratedAt.UTC().Format(time.RFC3339),
		Builders:    r.Builders,
		Source:      r.Source,
		APIArrays:   r.APIArrays,
		Categories:  make([]CategoryDTO, 0, len(r.Categories)),
		Warnings:    r.Warnings,
		Excluded:    r.Excluded,
	}
	if !r.SnapshotAt.IsZero() {
		dto.SnapshotAt = r.SnapshotAt.UTC().Format(time.RFC3339)
	}
	for _, c := range r.Categories {
		dto.Categories = append(dto.Categories, CategoryToDTO(c))
	}
	if withRows {
		dto.Rows = make([]RowDTO, 0, len(r.Rows))
		for _, row := range r.Rows {
			dto.Rows = append(dto.Rows, RowToDTO(row))
		}
	}
	return dto
}

// CountdownFromReport extracts the running upgrades of a report
func CountdownFromReport(r *progress.Report) CountdownDTO {
	dto := CountdownDTO{
		ReportID:   r.ID,
		Now:        r.GeneratedAt.UTC().Format(time.RFC3339),
		Upgrades:   []CountdownItem{},
		Categories: make([]CategoryDTO, 0, len(r.Categories)),
	}
	for _, row := range r.Upgrading() {
		u := row.Upgrade
		dto.Upgrades = append(dto.Upgrades, CountdownItem{
			Name:          row.Name,
			Index:         row.Index,
			Of:            row.Of,
			From:          row.Level,
			To:            u.To,
			Supercharge:   u.Supercharge,
			Remaining:     u.Remaining,
			RemainingText: FormatDuration(u.Remaining),
			Gems:          u.Gems,
			Progress:      u.Progress,
		})
	}
	for _, c := range r.Categories {
		dto.Categories = append(dto.Categories, CategoryToDTO(c))
	}
	return dto
}

// SourceToDTO describes a snapshot's record source
func SourceToDTO(src models.RecordSource) SourceDTO {
	if src == nil {
		src = models.FromExport{}
	}
	dto := SourceDTO{Kind: src.SourceName()}
	if live, ok := src.(models.FromLiveAPI); ok {
		dto.Arrays = live.APIArrays()
		dto.PlayerName = live.PlayerName
		dto.TownHall = live.TownHall
		if !live.FetchedAt.IsZero() {
			dto.MergedAt = live.FetchedAt.UnixMilli()
		}
		dto.Filtered = map[string]int{
			"superTroops":    live.Filtered.SuperTroops,
			"seasonalTroops": live.Filtered.SeasonalTroops,
		}
	}
	return dto
}

// SnapshotToJSON writes a snapshot back in player export form. A live API
// source is recorded under _apiMeta so the loader resolves it again.
func SnapshotToJSON(s *models.Snapshot) ([]byte, error) {
	doc := map[string]any{
		"tag":       s.Tag,
		"name":      s.Name,
		"timestamp": s.Timestamp,
		"villageObject": map[string]int{
			"weaponLevel": s.WeaponLevel,
		},
	}
	if s.Builders > 0 {
		doc["builders"] = s.Builders
	}
	for name, list := range s.Arrays {
		if list == nil {
			list = []models.PlayerInstance{}
		}
		doc[name] = list
	}
	if live, ok := s.ResolvedSource().(models.FromLiveAPI); ok {
		meta := SourceToDTO(live)
		doc["_apiMeta"] = map[string]any{
			"apiPlayerName":    meta.PlayerName,
			"apiTownHallLevel": meta.TownHall,
			"mergedAt":         meta.MergedAt,
			"sources":          meta.Arrays,
			"filtered":         meta.Filtered,
		}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// FormatDuration renders seconds as the two largest units, e.g. "1d 4h"
func FormatDuration(seconds int64) string {
	if seconds <= 0 {
		return "0s"
	}
	d := seconds / 86400
	h := (seconds % 86400) / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	switch {
	case d > 0:
		return fmt.Sprintf("%dd %dh", d, h)
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
