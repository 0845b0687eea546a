package progress

import (
	"testing"

	"github.com/spunky-sabin/clash-clone/internal/models"
)

// heroEntity returns a source-indexed hero with levels 1..max, every step
// priced level*1000 Dark Elixir except the level 40 rung
func heroEntity(max int) *models.Entity {
	hero := &models.Entity{ID: 28000000, Name: "Barbarian King", Kind: models.KindHero, Resource: models.DarkElixir}
	for l := 1; l <= max; l++ {
		ls := upgraded(l, 1, int64(l)*1000, int64(l)*60)
		if l == 40 {
			ls.UpgradeCost = models.Cost{Amount: 150000}
		}
		if l == max {
			ls = models.LevelSpec{Level: l, RequiredTier: 1}
		}
		hero.Levels = append(hero.Levels, ls)
	}
	return hero
}

func TestMissingLevelsSourceIndexed(t *testing.T) {
	hero := heroEntity(45)

	list := MissingLevels(hero, SourceIndexed, models.DarkElixir, 40, 45, SuperchargeState{}, false)
	if list.Count() != 5 {
		t.Fatalf("expected 5 missing levels, got %d", list.Count())
	}
	first := list.Steps[0]
	if first.Level != 41 {
		t.Errorf("expected the list to start at level 41, got %d", first.Level)
	}
	if first.Cost.Amount != 150000 {
		t.Errorf("expected level 41 priced from the level 40 rung (150000), got %d", first.Cost.Amount)
	}
	if first.Weighted() != 150000*DarkElixirRatio {
		t.Errorf("expected weighted %d, got %d", 150000*DarkElixirRatio, first.Weighted())
	}

	inFlight := MissingLevels(hero, SourceIndexed, models.DarkElixir, 40, 45, SuperchargeState{}, true)
	if inFlight.Count() != 4 || inFlight.Steps[0].Level != 42 {
		t.Errorf("expected in-flight list to start at 42 with 4 steps, got %d steps", inFlight.Count())
	}
	if inFlight.Steps[0].Cost.Amount != 41000 {
		t.Errorf("expected level 42 priced from the level 41 rung, got %d", inFlight.Steps[0].Cost.Amount)
	}
}

func TestMissingLevelsTotals(t *testing.T) {
	hero := heroEntity(10)
	list := MissingLevels(hero, SourceIndexed, models.DarkElixir, 7, 10, SuperchargeState{}, false)

	var want int64
	for l := 7; l <= 9; l++ {
		want += int64(l) * 1000
	}
	if list.Cost.Amount != want {
		t.Errorf("expected total %d, got %d", want, list.Cost.Amount)
	}
	if list.Time != (7+8+9)*60 {
		t.Errorf("expected total time %d, got %d", (7+8+9)*60, list.Time)
	}
}

func superchargedTower() *models.Entity {
	top := built(3, 12, 2500000, 86400)
	top.Supercharge = &models.Track{
		Resource: models.Gold,
		Levels: []models.LevelSpec{
			built(1, 12, 3000000, 86400),
			built(2, 12, 3500000, 129600),
		},
	}
	return &models.Entity{
		ID:              1000027,
		Name:            "Inferno Tower",
		Kind:            models.KindBuilding,
		Type:            "Defense",
		Village:         models.Home,
		Superchargeable: true,
		Levels:          []models.LevelSpec{built(1, 10, 1500000, 43200), built(2, 11, 2000000, 64800), top},
	}
}

func TestMissingLevelsSupercharge(t *testing.T) {
	tower := superchargedTower()
	track := tower.SuperchargeTrack()
	if track == nil {
		t.Fatal("expected a supercharge track")
	}

	list := MissingLevels(tower, TargetIndexed, models.Gold, 2, 3, SuperchargeState{Track: track}, false)
	if list.Count() != 3 {
		t.Fatalf("expected level 3 plus two supercharge steps, got %d", list.Count())
	}
	if list.Steps[0].Supercharge || !list.Steps[1].Supercharge || list.Steps[1].Level != 1 {
		t.Errorf("unexpected step order: %+v", list.Steps)
	}

	atMax := MissingLevels(tower, TargetIndexed, models.Gold, 3, 3, SuperchargeState{Track: track, Level: 1}, false)
	if atMax.Count() != 1 || atMax.Steps[0].Level != 2 || !atMax.Steps[0].Supercharge {
		t.Errorf("expected only supercharge level 2, got %+v", atMax.Steps)
	}

	running := MissingLevels(tower, TargetIndexed, models.Gold, 3, 3, SuperchargeState{Track: track, Level: 1}, true)
	if running.Count() != 0 {
		t.Errorf("expected nothing after the running supercharge, got %+v", running.Steps)
	}

	belowMax := MissingLevels(tower, TargetIndexed, models.Gold, 1, 2, SuperchargeState{Track: track}, false)
	for _, s := range belowMax.Steps {
		if s.Supercharge {
			t.Error("expected no supercharge steps below the absolute max")
		}
	}
	if !MissingLevels(tower, TargetIndexed, models.Gold, 2, 2, SuperchargeState{Track: track}, false).MaxedForTier {
		t.Error("expected maxedForTH at the tier cap below the absolute max")
	}
}

func TestGemCost(t *testing.T) {
	tests := []struct {
		remaining int64
		want      int64
	}{
		{-5, 0},
		{0, 0},
		{30, 1},
		{60, 1},
		{1800, 10},
		{3600, 20},
		{86400, 260},
		{604800, 1000},
	}
	for _, tt := range tests {
		if got := GemCost(tt.remaining); got != tt.want {
			t.Errorf("GemCost(%d): expected %d, got %d", tt.remaining, tt.want, got)
		}
	}
}

func FuzzGemCost(f *testing.F) {
	f.Add(int64(0))
	f.Add(int64(60))
	f.Add(int64(3599))
	f.Add(int64(86400))
	f.Add(int64(10000000))

	f.Fuzz(func(t *testing.T, remaining int64) {
		if remaining < -1<<40 || remaining > 1<<40 {
			return
		}
		gems := GemCost(remaining)
		if gems < 0 {
			t.Fatalf("negative gem cost %d for %ds", gems, remaining)
		}
		if next := GemCost(remaining + 1); next < gems {
			t.Fatalf("gem cost fell from %d to %d at %ds", gems, next, remaining)
		}
	})
}

func TestUpgradeProgress(t *testing.T) {
	tests := []struct {
		remaining, total int64
		want             int
	}{
		{50, 100, 50},
		{1, 3, 66},
		{0, 100, 100},
		{100, 0, 0},
		{200, 100, 0},
	}
	for _, tt := range tests {
		if got := UpgradeProgress(tt.remaining, tt.total); got != tt.want {
			t.Errorf("UpgradeProgress(%d, %d): expected %d, got %d", tt.remaining, tt.total, tt.want, got)
		}
	}
}
