package progress

import (
	"github.com/spunky-sabin/clash-clone/internal/models"
)

// LadderTotals walks an entity's ladder up to tierCap. Total holds every step,
// completed holds the steps up to level. The cost of a step in flight counts
// as completed while its time stays pending.
func LadderTotals(e *models.Entity, conv Convention, res models.ResourceType, level, tierCap int, inFlight bool) (completed, total Tally) {
	done := level
	if done > tierCap {
		done = tierCap
	}
	for l := 1; l <= tierCap; l++ {
		step, ok := CostToReach(e, l, conv, res)
		if !ok {
			continue
		}
		total.Add(step)
		if l <= done {
			completed.Add(step)
		}
	}
	if inFlight && level+1 <= tierCap {
		if step, ok := CostToReach(e, level+1, conv, res); ok {
			completed.AddCost(step)
		}
	}
	return completed, total
}

// statusInput is everything status derivation looks at
type statusInput struct {
	Level       int
	Cap         int
	AbsMax      int
	Upgrading   bool
	SCRemaining bool
	MultiSlot   bool
	Merged      bool
	Virtual     bool
}

func deriveStatus(in statusInput) models.Status {
	switch {
	case in.Cap == 0:
		return models.StatusLocked
	case in.Virtual:
		return models.StatusMaxed
	case in.MultiSlot && in.Level == 0 && !in.Upgrading:
		if in.Merged {
			return models.StatusMerge
		}
		return models.StatusBuild
	case in.Upgrading:
		if in.Level < in.Cap || in.SCRemaining {
			return models.StatusUpgrading
		}
		return models.StatusMaxed
	case in.Level >= in.Cap:
		if in.SCRemaining && in.Cap == in.AbsMax {
			return models.StatusAvailable
		}
		return models.StatusMaxed
	}
	return models.StatusAvailable
}

// activeStepTime returns the full duration of the step being upgraded to
// level+1, falling back to the current rung when the next carries none
func activeStepTime(e *models.Entity, conv Convention, res models.ResourceType, level int) int64 {
	if step, ok := CostToReach(e, level+1, conv, res); ok && step.Time > 0 {
		return step.Time
	}
	if level > 0 {
		if step, ok := CostToReach(e, level, conv, res); ok {
			return step.Time
		}
	}
	return 0
}

func upgradeInfo(to int, remaining, total int64, supercharge bool) *UpgradeInfo {
	return &UpgradeInfo{
		To:          to,
		Supercharge: supercharge,
		Remaining:   remaining,
		Total:       total,
		Gems:        GemCost(remaining),
		Progress:    UpgradeProgress(remaining, total),
	}
}

// multiSlotRows builds the rows of every copy of a building or trap, lowest
// level first
func multiSlotRows(e *models.Entity, pol *EntityKindPolicy, instances []Instance, tierCap int) []Row {
	res := pol.Resource(e)
	absMax := e.AbsoluteMax()
	track := e.SuperchargeTrack()

	var section SectionTotals
	for _, inst := range instances {
		if inst.Virtual {
			continue
		}
		switch {
		case inst.Upgrading() && !inst.SuperchargeRunning && inst.Level < tierCap:
			if step, ok := CostToReach(e, inst.Level+1, pol.Convention, res); ok {
				section.addStep(step)
			}
			section.addList(MissingLevels(e, pol.Convention, res, inst.Level, tierCap, SuperchargeState{}, true))
		case inst.Level < tierCap:
			section.addList(MissingLevels(e, pol.Convention, res, inst.Level, tierCap, SuperchargeState{}, false))
		}
	}

	rows := make([]Row, 0, len(instances))
	for i, inst := range instances {
		sc := SuperchargeState{Track: track, Level: inst.Supercharge}
		row := Row{
			EntityID:       e.ID,
			Name:           e.Name,
			Kind:           e.Kind,
			Category:       pol.Category(e),
			Progress:       pol.Progress,
			Index:          i + 1,
			Of:             len(instances),
			Count:          1,
			Level:          inst.Level,
			MaxLevel:       tierCap,
			AbsoluteMax:    absMax,
			Resource:       res,
			Supercharge:    inst.Supercharge,
			SuperchargeMax: track.Len(),
			Merged:         inst.Virtual,
			Section:        section,
		}
		row.Status = deriveStatus(statusInput{
			Level:       inst.Level,
			Cap:         tierCap,
			AbsMax:      absMax,
			Upgrading:   inst.Upgrading(),
			SCRemaining: sc.Remaining(),
			MultiSlot:   true,
			Merged:      e.IsMerged(),
			Virtual:     inst.Virtual,
		})
		if inst.Virtual {
			rows = append(rows, row)
			continue
		}

		row.Missing = MissingLevels(e, pol.Convention, res, inst.Level, tierCap, sc, inst.Upgrading())
		switch {
		case inst.Upgrading() && inst.SuperchargeRunning:
			step, _ := TrackStep(track, inst.Supercharge+1, res)
			row.NextCost, row.NextTime = step.Cost, inst.Remaining
			row.Upgrade = upgradeInfo(inst.Supercharge+1, inst.Remaining, step.Time, true)
		case inst.Upgrading():
			step, _ := CostToReach(e, inst.Level+1, pol.Convention, res)
			row.NextCost, row.NextTime = step.Cost, inst.Remaining
			row.Upgrade = upgradeInfo(inst.Level+1, inst.Remaining, activeStepTime(e, pol.Convention, res, inst.Level), false)
		case inst.Level < tierCap:
			step, _ := CostToReach(e, inst.Level+1, pol.Convention, res)
			row.NextCost, row.NextTime = step.Cost, step.Time
		case sc.Remaining() && tierCap == absMax:
			step, _ := TrackStep(track, inst.Supercharge+1, res)
			row.NextCost, row.NextTime = step.Cost, step.Time
		}
		if row.Upgrade != nil {
			row.Upgrade.After = MissingLevels(e, pol.Convention, res, inst.Level, tierCap, sc, true)
		}
		rows = append(rows, row)
	}
	return rows
}

// singleRow builds the row of a kind owned at most once
func singleRow(e *models.Entity, pol *EntityKindPolicy, level int, remaining int64, tierCap int, status models.Status) Row {
	res := pol.Resource(e)
	row := Row{
		EntityID:    e.ID,
		Name:        e.Name,
		Kind:        e.Kind,
		Category:    pol.Category(e),
		Progress:    pol.Progress,
		Index:       1,
		Of:          1,
		Count:       1,
		Level:       level,
		MaxLevel:    tierCap,
		AbsoluteMax: e.AbsoluteMax(),
		Status:      status,
		Resource:    res,
	}
	if status == models.StatusLocked {
		return row
	}

	row.Missing = MissingLevels(e, pol.Convention, res, level, tierCap, SuperchargeState{}, remaining > 0)
	step, _ := CostToReach(e, level+1, pol.Convention, res)
	if level < tierCap {
		row.NextCost, row.NextTime = step.Cost, step.Time
	}

	if remaining > 0 {
		row.NextCost, row.NextTime = step.Cost, remaining
		row.Upgrade = upgradeInfo(level+1, remaining, activeStepTime(e, pol.Convention, res, level), false)
		row.Upgrade.After = MissingLevels(e, pol.Convention, res, level, tierCap, SuperchargeState{}, true)
		if level < tierCap {
			row.Section.addStep(step)
		}
		row.Section.addList(row.Upgrade.After)
	} else if level < tierCap {
		row.Section.addList(row.Missing)
	}
	return row
}
