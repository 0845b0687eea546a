package converter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/spunky-sabin/clash-clone/internal/loader"
	"github.com/spunky-sabin/clash-clone/internal/models"
	"github.com/spunky-sabin/clash-clone/internal/progress"
)

func fixtureReport(t *testing.T) *progress.Report {
	t.Helper()
	cat, err := loader.LoadCatalog("../../testdata")
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	snap, err := loader.LoadSnapshot("../../testdata/player.json")
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}
	report, err := progress.Analyze(snap, cat, 10, time.Unix(snap.Timestamp+600, 0), progress.Options{})
	if err != nil {
		t.Fatalf("Failed to analyze: %v", err)
	}
	return report
}

func TestCostToDTO(t *testing.T) {
	dto := CostToDTO(models.Cost{Amount: 5000}, models.Gold)
	if dto.Resource != "Gold" || dto.Amount != 5000 {
		t.Errorf("expected 5000 Gold, got %+v", dto)
	}

	ore := CostToDTO(models.Cost{Ores: models.OreCost{Shiny: 120, Glowy: 10}}, models.ShinyOre)
	if ore.Shiny != 120 || ore.Glowy != 10 || ore.Amount != 0 {
		t.Errorf("expected ore fields, got %+v", ore)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{-5, "0s"},
		{0, "0s"},
		{45, "45s"},
		{61, "1m 1s"},
		{3600, "1h 0m"},
		{5400, "1h 30m"},
		{90000, "1d 1h"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d): expected %q, got %q", tt.seconds, tt.want, got)
		}
	}
}

func TestReportToDTO(t *testing.T) {
	report := fixtureReport(t)

	dto := ReportToDTO(report, true)
	if dto.ID != report.ID || dto.Tier != 10 || dto.Source != "export" {
		t.Errorf("unexpected header: %+v", dto)
	}
	if len(dto.Categories) != len(report.Categories) || len(dto.Rows) != len(report.Rows) {
		t.Errorf("expected every category and row converted, got %d/%d", len(dto.Categories), len(dto.Rows))
	}
	if dto.SnapshotAt != "2025-10-09T08:53:20Z" {
		t.Errorf("expected the snapshot time in RFC3339, got %s", dto.SnapshotAt)
	}

	var walls *CategoryDTO
	for i := range dto.Categories {
		if dto.Categories[i].Category == string(models.ProgressWalls) {
			walls = &dto.Categories[i]
		}
	}
	if walls == nil {
		t.Fatal("expected a walls category")
	}
	if walls.Percent != 16 || walls.Remaining["Gold"] != 1205000-202500 {
		t.Errorf("unexpected walls category: %+v", walls)
	}

	summary := ReportToDTO(report, false)
	if summary.Rows != nil {
		t.Errorf("expected no rows in a summary, got %d", len(summary.Rows))
	}
}

func TestRowToDTOUpgrade(t *testing.T) {
	report := fixtureReport(t)

	var found bool
	for _, row := range report.Upgrading() {
		dto := RowToDTO(row)
		if dto.Upgrade == nil {
			t.Fatalf("expected an upgrade block on %s", row.Name)
		}
		if row.Name == "Archer Tower" {
			found = true
			if dto.Upgrade.To != 8 || dto.Upgrade.RemainingText != "20m 0s" {
				t.Errorf("unexpected upgrade block: %+v", dto.Upgrade)
			}
			if dto.Section.Count != 4 || dto.Section.Cost.Amount != 2200000 {
				t.Errorf("unexpected section: %+v", dto.Section)
			}
		}
	}
	if !found {
		t.Error("expected the upgrading Archer Tower")
	}
}

func TestCountdownFromReport(t *testing.T) {
	report := fixtureReport(t)
	cd := CountdownFromReport(report)

	if cd.ReportID != report.ID {
		t.Errorf("expected report id %s, got %s", report.ID, cd.ReportID)
	}
	if len(cd.Upgrades) != 3 {
		t.Fatalf("expected 3 running upgrades, got %d", len(cd.Upgrades))
	}
	for _, u := range cd.Upgrades {
		if u.To != u.From+1 {
			t.Errorf("expected %s to go one level up, got %d to %d", u.Name, u.From, u.To)
		}
		if u.Remaining <= 0 || u.Gems <= 0 {
			t.Errorf("expected a live timer on %s, got %+v", u.Name, u)
		}
	}
}

func TestSnapshotToJSONRoundTrip(t *testing.T) {
	snap := models.NewSnapshot()
	snap.Tag = "#ABC"
	snap.Name = "Chief"
	snap.Timestamp = 1760000000
	snap.Builders = 6
	snap.WeaponLevel = 2
	snap.Arrays[models.ArrayBuildings] = []models.PlayerInstance{{EntityID: models.TownHallID, Level: 17}}
	snap.Arrays[models.ArrayHeroes] = []models.PlayerInstance{{
		EntityID: 28000000,
		Level:    80,
		Timer:    3600,
		API:      &models.APIMetadata{Name: "Barbarian King", MaxLevel: 95},
	}}
	snap.Source = models.FromLiveAPI{
		Arrays:     map[string]bool{models.ArrayHeroes: true},
		FetchedAt:  time.UnixMilli(1760000123000).UTC(),
		PlayerName: "Chief",
		TownHall:   17,
		Filtered:   models.FilterStats{SuperTroops: 2},
	}

	data, err := SnapshotToJSON(snap)
	if err != nil {
		t.Fatalf("Failed to write snapshot: %v", err)
	}
	back, err := loader.ParseSnapshot(data)
	if err != nil {
		t.Fatalf("Failed to parse written snapshot: %v", err)
	}

	if back.Tag != "#ABC" || back.Timestamp != 1760000000 || back.Builders != 6 || back.WeaponLevel != 2 {
		t.Errorf("header lost: %+v", back)
	}
	live, ok := back.Source.(models.FromLiveAPI)
	if !ok {
		t.Fatalf("expected a live API source, got %T", back.Source)
	}
	if !live.FromAPI(models.ArrayHeroes) || live.FromAPI(models.ArrayBuildings) {
		t.Errorf("expected only heroes from the API, got %v", live.APIArrays())
	}
	if live.Filtered.SuperTroops != 2 || live.TownHall != 17 || !live.FetchedAt.Equal(time.UnixMilli(1760000123000)) {
		t.Errorf("metadata lost: %+v", live)
	}
	hero := back.Arrays[models.ArrayHeroes][0]
	if hero.Timer != 3600 || hero.API == nil || hero.API.MaxLevel != 95 {
		t.Errorf("hero record lost: %+v", hero)
	}
}

func TestSourceToDTO(t *testing.T) {
	if got := SourceToDTO(nil); got.Kind != "export" {
		t.Errorf("expected export for a nil source, got %s", got.Kind)
	}
	live := SourceToDTO(models.FromLiveAPI{Arrays: map[string]bool{"pets": true, "heroes": true}})
	if live.Kind != "api" || len(live.Arrays) != 2 || live.Arrays[0] != "heroes" {
		t.Errorf("unexpected live source: %+v", live)
	}
	if _, err := json.Marshal(live); err != nil {
		t.Errorf("Failed to marshal source: %v", err)
	}
}
