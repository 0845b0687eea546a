package progress

import (
	"github.com/spunky-sabin/clash-clone/internal/models"
)

// CraftedModule is the resolved state of one module of a crafted defense
type CraftedModule struct {
	Entity    *models.Entity
	Level     int
	Remaining int64
	Cap       int
}

// CraftedDefense groups the modules of one seasonal defense
type CraftedDefense struct {
	Defense models.SeasonalDefense
	Modules []CraftedModule
}

// Levels returns the summed module levels and summed module caps
func (d CraftedDefense) Levels() (level, max int) {
	for _, m := range d.Modules {
		level += m.Level
		max += m.Cap
	}
	return level, max
}

// CraftedDefenses resolves the station's seasonal defenses reachable at tier.
// Modules missing from the snapshot start at level 1.
func CraftedDefenses(snap *models.Snapshot, cat *models.Catalog, village models.Village, tier int, rec Reconciler) []CraftedDefense {
	station := cat.Entity(models.CraftingStationID)
	if station == nil || station.Village != village {
		return nil
	}

	states := make(map[int]map[int]models.CraftedModuleState)
	for _, array := range buildingPolicy.Arrays(village) {
		for _, p := range snap.Arrays[array] {
			if p.EntityID != station.ID {
				continue
			}
			for _, t := range p.Types {
				if states[t.ID] == nil {
					states[t.ID] = make(map[int]models.CraftedModuleState)
				}
				for _, m := range t.Modules {
					states[t.ID][m.ID] = m
				}
			}
		}
	}

	var out []CraftedDefense
	for _, def := range station.SeasonalDefenses {
		if def.RequiredTier > tier {
			continue
		}
		cd := CraftedDefense{Defense: def}
		for _, m := range def.Modules {
			cm := CraftedModule{Entity: m, Level: 1, Cap: len(m.Levels)}
			if st, ok := states[def.ID][m.ID]; ok {
				c := rec.CheckCompletion(st.Level, st.Timer)
				cm.Level, cm.Remaining = c.Level, c.Remaining
				if cm.Level < 1 {
					cm.Level = 1
				}
			}
			if cm.Level > cm.Cap {
				cm.Level = cm.Cap
			}
			cd.Modules = append(cd.Modules, cm)
		}
		out = append(out, cd)
	}
	return out
}

// Totals accounts every module of the defense
func (d CraftedDefense) Totals() (completed, total Tally) {
	for _, m := range d.Modules {
		c, t := LadderTotals(m.Entity, craftedPolicy.Convention, craftedPolicy.Resource(m.Entity), m.Level, m.Cap, m.Remaining > 0)
		completed.Merge(c)
		total.Merge(t)
	}
	return completed, total
}

// Rows returns one row per module, sharing the defense's section totals
func (d CraftedDefense) Rows() []Row {
	level, max := d.Levels()
	pol := craftedPolicy

	var section SectionTotals
	for _, m := range d.Modules {
		res := pol.Resource(m.Entity)
		if m.Remaining > 0 && m.Level < m.Cap {
			if step, ok := CostToReach(m.Entity, m.Level+1, pol.Convention, res); ok {
				section.addStep(step)
			}
		}
		section.addList(MissingLevels(m.Entity, pol.Convention, res, m.Level, m.Cap, SuperchargeState{}, m.Remaining > 0))
	}

	rows := make([]Row, 0, len(d.Modules))
	for i, m := range d.Modules {
		res := pol.Resource(m.Entity)
		row := Row{
			EntityID:       m.Entity.ID,
			Name:           m.Entity.Name,
			Kind:           models.KindCraftedModule,
			Category:       pol.Category(m.Entity),
			Progress:       pol.Progress,
			Index:          i + 1,
			Of:             len(d.Modules),
			Count:          1,
			Level:          m.Level,
			MaxLevel:       m.Cap,
			AbsoluteMax:    m.Cap,
			Resource:       res,
			Parent:         d.Defense.Name,
			ParentLevel:    level,
			MaxParentLevel: max,
			Section:        section,
			Missing:        MissingLevels(m.Entity, pol.Convention, res, m.Level, m.Cap, SuperchargeState{}, m.Remaining > 0),
		}
		switch {
		case m.Level >= m.Cap:
			row.Status = models.StatusMaxed
		case m.Remaining > 0:
			row.Status = models.StatusUpgrading
			step, _ := CostToReach(m.Entity, m.Level+1, pol.Convention, res)
			row.NextCost, row.NextTime = step.Cost, m.Remaining
			row.Upgrade = upgradeInfo(m.Level+1, m.Remaining, step.Time, false)
			row.Upgrade.After = MissingLevels(m.Entity, pol.Convention, res, m.Level, m.Cap, SuperchargeState{}, true)
		default:
			row.Status = models.StatusAvailable
			step, _ := CostToReach(m.Entity, m.Level+1, pol.Convention, res)
			row.NextCost, row.NextTime = step.Cost, step.Time
		}
		rows = append(rows, row)
	}
	return rows
}
