package progress

import (
	"github.com/spunky-sabin/clash-clone/internal/models"
)

// Convention says which rung of a ladder stores the price of a level step
type Convention int

const (
	// TargetIndexed ladders store the price of reaching L on rung L
	TargetIndexed Convention = iota
	// SourceIndexed ladders store the price of reaching L on rung L-1
	SourceIndexed
)

func (c Convention) String() string {
	if c == SourceIndexed {
		return "source"
	}
	return "target"
}

// Step is the price of one level step
type Step struct {
	Level       int                 `json:"level"`
	Cost        models.Cost         `json:"cost"`
	Time        int64               `json:"time"`
	Resource    models.ResourceType `json:"resource"`
	Supercharge bool                `json:"isSupercharge,omitempty"`
}

// Weighted returns the step's cost in cross-resource weighted units
func (s Step) Weighted() int64 {
	return Weigh(s.Cost, s.Resource)
}

// Weigh folds a cost into weighted units. Dark Elixir counts 150x and ores
// use their scarcity weights. Gold and Elixir count 1x.
func Weigh(c models.Cost, r models.ResourceType) int64 {
	w := c.Ores.Shiny*ShinyOreWeight + c.Ores.Glowy*GlowyOreWeight + c.Ores.Starry*StarryOreWeight
	if r == models.DarkElixir {
		return w + c.Amount*DarkElixirRatio
	}
	return w + c.Amount
}

// CostToReach returns the price of reaching level on an entity ladder. ok is
// false when the ladder holds no price for the step, which callers treat as
// free and leave out of upgrade lists.
func CostToReach(e *models.Entity, level int, conv Convention, res models.ResourceType) (Step, bool) {
	step := Step{Level: level, Resource: res}
	if e == nil || level <= 0 {
		return step, false
	}

	switch conv {
	case SourceIndexed:
		if level <= 1 {
			return step, false
		}
		src := e.LevelData(level - 1)
		if src == nil || !(src.HasUpgrade || src.UpgradeTime != 0) {
			return step, false
		}
		step.Cost, step.Time = src.UpgradeCost, src.UpgradeTime
		return step, true
	default:
		target := e.LevelData(level)
		if target == nil {
			return step, false
		}
		step.Cost, step.Time = target.BuildOrUpgrade()
		return step, true
	}
}

// TrackStep returns the price of reaching level on a secondary ladder.
// Tracks are always target indexed.
func TrackStep(t *models.Track, level int, fallback models.ResourceType) (Step, bool) {
	res := fallback
	if t != nil && t.Resource != "" {
		res = t.Resource
	}
	step := Step{Level: level, Resource: res}
	ls := t.LevelData(level)
	if ls == nil {
		return step, false
	}
	step.Cost, step.Time = ls.BuildOrUpgrade()
	return step, true
}

// Tally accumulates weighted cost, time and raw per-resource amounts
type Tally struct {
	Weighted   int64
	Time       int64
	ByResource map[models.ResourceType]int64
}

// Add counts the step's cost and time
func (t *Tally) Add(s Step) {
	t.AddCost(s)
	t.Time += s.Time
}

// AddCost counts the step's cost without its time
func (t *Tally) AddCost(s Step) {
	t.Weighted += s.Weighted()
	if t.ByResource == nil {
		t.ByResource = make(map[models.ResourceType]int64)
	}
	if o := s.Cost.Ores; !o.IsZero() {
		t.ByResource[models.ShinyOre] += o.Shiny
		t.ByResource[models.GlowyOre] += o.Glowy
		t.ByResource[models.StarryOre] += o.Starry
	}
	if s.Cost.Amount != 0 {
		t.ByResource[s.Resource] += s.Cost.Amount
	}
}

// Merge adds another tally into t
func (t *Tally) Merge(o Tally) {
	t.Weighted += o.Weighted
	t.Time += o.Time
	if len(o.ByResource) == 0 {
		return
	}
	if t.ByResource == nil {
		t.ByResource = make(map[models.ResourceType]int64)
	}
	for r, v := range o.ByResource {
		t.ByResource[r] += v
	}
}

// Scale multiplies every amount in the tally by n
func (t Tally) Scale(n int64) Tally {
	out := Tally{Weighted: t.Weighted * n, Time: t.Time * n}
	if len(t.ByResource) > 0 {
		out.ByResource = make(map[models.ResourceType]int64, len(t.ByResource))
		for r, v := range t.ByResource {
			out.ByResource[r] = v * n
		}
	}
	return out
}
