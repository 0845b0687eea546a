package progress

import (
	"fmt"
	"sort"

	"github.com/spunky-sabin/clash-clone/internal/models"
)

// WallStack is a group of walls sharing one level
type WallStack struct {
	Level int
	Count int
}

// WallSummary is the resource-only accounting of a village's walls
type WallSummary struct {
	Entity    *models.Entity
	Cap       int
	Allowed   int
	Owned     int
	Stacks    []WallStack
	Completed Tally
	Total     Tally
}

// ResolveWallLimits picks the partial-limit table: config first, then the
// catalog, then the built-in default
func ResolveWallLimits(configured map[int]int, cat *models.Catalog) map[int]int {
	if len(configured) > 0 {
		return configured
	}
	if cat != nil && len(cat.WallLimits) > 0 {
		return cat.WallLimits
	}
	return DefaultWallLimits()
}

// WallEntity returns the wall segment entity of a village, or nil
func WallEntity(cat *models.Catalog, village models.Village) *models.Entity {
	for _, e := range cat.Buildings {
		if e.IsWall() && e.Village == village {
			return e
		}
	}
	return nil
}

// Walls accounts every wall segment. Each level step is priced once per wall
// allowed to take it, where limits may cap how many walls reach a level.
func Walls(snap *models.Snapshot, cat *models.Catalog, village models.Village, tier int, limits map[int]int, rec Reconciler) (WallSummary, bool) {
	wall := WallEntity(cat, village)
	if wall == nil {
		return WallSummary{}, false
	}
	sum := WallSummary{
		Entity:  wall,
		Cap:     TierCap(wall, tier),
		Allowed: AllowedCount(cat, wall.ID, village, tier),
	}
	if sum.Cap == 0 || sum.Allowed == 0 {
		return sum, false
	}
	res := buildingPolicy.Resource(wall)

	for l := 1; l <= sum.Cap; l++ {
		step, ok := CostToReach(wall, l, TargetIndexed, res)
		if !ok {
			continue
		}
		n := sum.Allowed
		if limit, capped := limits[l]; capped && limit < n {
			n = limit
		}
		var one Tally
		one.AddCost(step)
		sum.Total.Merge(one.Scale(int64(n)))
	}

	counts := make(map[int]int)
	for _, array := range buildingPolicy.Arrays(village) {
		for _, p := range snap.Arrays[array] {
			if p.EntityID != wall.ID {
				continue
			}
			c := rec.CheckCompletion(p.Level, p.Timer)
			counts[c.Level] += p.Copies()
		}
	}
	for lvl, n := range counts {
		sum.Stacks = append(sum.Stacks, WallStack{Level: lvl, Count: n})
		sum.Owned += n
	}
	sort.Slice(sum.Stacks, func(i, j int) bool {
		return sum.Stacks[i].Level < sum.Stacks[j].Level
	})

	for _, st := range sum.Stacks {
		done, _ := LadderTotals(wall, TargetIndexed, res, st.Level, sum.Cap, false)
		done.Time = 0
		sum.Completed.Merge(done.Scale(int64(st.Count)))
	}
	return sum, true
}

// Rows returns one row per wall level, plus one for walls still unbuilt
func (w WallSummary) Rows() []Row {
	res := buildingPolicy.Resource(w.Entity)
	stacks := w.Stacks
	if unbuilt := w.Allowed - w.Owned; unbuilt > 0 {
		stacks = append([]WallStack{{Level: 0, Count: unbuilt}}, stacks...)
	}

	rows := make([]Row, 0, len(stacks))
	for i, st := range stacks {
		row := Row{
			EntityID:    w.Entity.ID,
			Name:        fmt.Sprintf("%s (Level %d)", w.Entity.Name, st.Level),
			Kind:        w.Entity.Kind,
			Category:    models.CategoryWalls,
			Progress:    models.ProgressWalls,
			Index:       i + 1,
			Of:          len(stacks),
			Count:       st.Count,
			Level:       st.Level,
			MaxLevel:    w.Cap,
			AbsoluteMax: w.Entity.AbsoluteMax(),
			Resource:    res,
		}
		switch {
		case st.Level >= w.Cap:
			row.Status = models.StatusMaxed
		case st.Level == 0:
			row.Status = models.StatusBuild
		default:
			row.Status = models.StatusAvailable
		}
		if st.Level < w.Cap {
			step, _ := CostToReach(w.Entity, st.Level+1, TargetIndexed, res)
			row.NextCost = step.Cost.Scale(int64(st.Count))
			row.Missing = MissingLevels(w.Entity, TargetIndexed, res, st.Level, w.Cap, SuperchargeState{}, false)
			for _, s := range row.Missing.Steps {
				s.Cost = s.Cost.Scale(int64(st.Count))
				s.Time = 0
				row.Section.addStep(s)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
