package progress

import (
	"testing"

	"github.com/spunky-sabin/clash-clone/internal/models"
)

func TestCostToReachSourceIndexed(t *testing.T) {
	troop := &models.Entity{
		ID:   4000000,
		Kind: models.KindTroop,
		Levels: []models.LevelSpec{
			upgraded(4, 1, 800, 100),
			upgraded(5, 1, 1000, 200),
			{Level: 6, RequiredTier: 1},
		},
	}

	step, ok := CostToReach(troop, 6, SourceIndexed, models.Elixir)
	if !ok {
		t.Fatal("expected a price for level 6")
	}
	if step.Cost.Amount != 1000 || step.Time != 200 {
		t.Errorf("expected level 6 to cost 1000/200s from the level 5 rung, got %d/%ds", step.Cost.Amount, step.Time)
	}

	step, ok = CostToReach(troop, 5, SourceIndexed, models.Elixir)
	if !ok || step.Cost.Amount != 800 {
		t.Errorf("expected level 5 to cost 800 from the level 4 rung, got %d (ok=%v)", step.Cost.Amount, ok)
	}

	if _, ok := CostToReach(troop, 1, SourceIndexed, models.Elixir); ok {
		t.Error("expected level 1 to be free")
	}
	if _, ok := CostToReach(troop, 7, SourceIndexed, models.Elixir); ok {
		t.Error("expected no price when the source rung has none")
	}
}

func TestCostToReachTargetIndexed(t *testing.T) {
	tower := &models.Entity{
		ID: 1000009,
		Levels: []models.LevelSpec{
			built(1, 1, 1000, 60),
			upgraded(2, 1, 2000, 120),
		},
	}

	step, ok := CostToReach(tower, 1, TargetIndexed, models.Gold)
	if !ok || step.Cost.Amount != 1000 || step.Time != 60 {
		t.Errorf("expected build price 1000/60s, got %d/%ds (ok=%v)", step.Cost.Amount, step.Time, ok)
	}
	step, ok = CostToReach(tower, 2, TargetIndexed, models.Gold)
	if !ok || step.Cost.Amount != 2000 {
		t.Errorf("expected upgrade fallback 2000, got %d (ok=%v)", step.Cost.Amount, ok)
	}
	if _, ok := CostToReach(tower, 3, TargetIndexed, models.Gold); ok {
		t.Error("expected no price beyond the ladder")
	}
	if _, ok := CostToReach(&models.Entity{}, 1, TargetIndexed, models.Gold); ok {
		t.Error("expected no price on an empty ladder")
	}
}

func TestWeighDarkElixir(t *testing.T) {
	step := Step{Level: 2, Cost: models.Cost{Amount: 100}, Resource: models.DarkElixir}
	if got := step.Weighted(); got != 15000 {
		t.Errorf("expected 100 Dark Elixir to weigh 15000, got %d", got)
	}

	var tally Tally
	tally.Add(step)
	if tally.Weighted != 15000 {
		t.Errorf("expected weighted total 15000, got %d", tally.Weighted)
	}
	if got := tally.ByResource[models.DarkElixir]; got != 100 {
		t.Errorf("expected raw Dark Elixir bucket 100, got %d", got)
	}
}

func TestWeighOres(t *testing.T) {
	c := models.Cost{Ores: models.OreCost{Shiny: 10, Glowy: 2, Starry: 1}}
	if got := Weigh(c, models.ShinyOre); got != 126 {
		t.Errorf("expected 10 + 2*8 + 1*100 = 126, got %d", got)
	}

	var tally Tally
	tally.AddCost(Step{Cost: c, Resource: models.ShinyOre, Time: 500})
	if tally.Time != 0 {
		t.Errorf("expected AddCost to leave time alone, got %d", tally.Time)
	}
	if tally.ByResource[models.GlowyOre] != 2 || tally.ByResource[models.StarryOre] != 1 {
		t.Errorf("unexpected ore buckets: %v", tally.ByResource)
	}
}

func TestTallyScaleAndMerge(t *testing.T) {
	var one Tally
	one.Add(Step{Cost: models.Cost{Amount: 50}, Time: 10, Resource: models.Gold})

	scaled := one.Scale(4)
	if scaled.Weighted != 200 || scaled.Time != 40 || scaled.ByResource[models.Gold] != 200 {
		t.Errorf("unexpected scaled tally: %+v", scaled)
	}
	if one.Weighted != 50 {
		t.Errorf("expected Scale to leave the receiver alone, got %d", one.Weighted)
	}

	var sum Tally
	sum.Merge(one)
	sum.Merge(scaled)
	if sum.Weighted != 250 || sum.ByResource[models.Gold] != 250 {
		t.Errorf("unexpected merged tally: %+v", sum)
	}
}

func TestTrackStepUsesTrackResource(t *testing.T) {
	track := &models.Track{
		Resource: models.Elixir,
		Levels:   []models.LevelSpec{built(1, 12, 3000000, 86400)},
	}
	step, ok := TrackStep(track, 1, models.Gold)
	if !ok || step.Resource != models.Elixir {
		t.Errorf("expected the track resource, got %s (ok=%v)", step.Resource, ok)
	}
	if _, ok := TrackStep(nil, 1, models.Gold); ok {
		t.Error("expected no step on a nil track")
	}
}
