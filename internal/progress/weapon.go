package progress

import (
	"github.com/spunky-sabin/clash-clone/internal/models"
)

// WeaponName is the row name of the Town Hall weapon
const WeaponName = "Town Hall Weapon"

// WeaponTrack returns the hall weapon ladder, or nil below the weapon tier
func WeaponTrack(cat *models.Catalog, village models.Village, tier int) *models.Track {
	if village != models.Home || tier < WeaponTier {
		return nil
	}
	ls := cat.Entity(models.TownHallID).LevelData(WeaponTier)
	if ls == nil || ls.Weapon.Len() == 0 {
		return nil
	}
	return ls.Weapon
}

// Weapon accounts the hall weapon levels above the first, which ships with
// the hall upgrade itself
func Weapon(track *models.Track, level int) (completed, total Tally) {
	if level < 1 {
		level = 1
	}
	for l := 2; l <= track.Len(); l++ {
		step, ok := TrackStep(track, l, models.Gold)
		if !ok {
			continue
		}
		total.Add(step)
		if l <= level {
			completed.Add(step)
		}
	}
	return completed, total
}

// weaponRow builds the hall weapon row, filed with the hall's own category
func weaponRow(hall *models.Entity, track *models.Track, level int) Row {
	if level < 1 {
		level = 1
	}
	max := track.Len()
	row := Row{
		EntityID:    hall.ID,
		Name:        WeaponName,
		Kind:        models.KindBuilding,
		Category:    buildingPolicy.Category(hall),
		Progress:    models.ProgressStructures,
		Index:       1,
		Of:          1,
		Count:       1,
		Level:       level,
		MaxLevel:    max,
		AbsoluteMax: max,
		Resource:    models.Gold,
		Status:      models.StatusAvailable,
	}
	if level >= max {
		row.Status = models.StatusMaxed
		return row
	}
	for l := level + 1; l <= max; l++ {
		if step, ok := TrackStep(track, l, models.Gold); ok {
			row.Missing.push(step)
			row.Section.addStep(step)
		}
	}
	if len(row.Missing.Steps) > 0 {
		row.NextCost, row.NextTime = row.Missing.Steps[0].Cost, row.Missing.Steps[0].Time
	}
	return row
}
