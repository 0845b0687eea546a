package progress

import (
	"github.com/spunky-sabin/clash-clone/internal/models"
)

// TierCap returns the highest level reachable at the given hall tier, 0 if none
func TierCap(e *models.Entity, tier int) int {
	if e == nil {
		return 0
	}
	maxLvl := 0
	for i := range e.Levels {
		l := &e.Levels[i]
		if l.RequiredTier <= tier && l.Level > maxLvl {
			maxLvl = l.Level
		}
	}
	return maxLvl
}

// AllowedCount returns how many copies of an entity the player may own at
// the given tier. The hall itself is always 1; other entities sum the hall's
// unlocks up to the tier.
func AllowedCount(cat *models.Catalog, id int, village models.Village, tier int) int {
	hallID := models.HallID(village)
	if id == hallID {
		return 1
	}
	hall := cat.Entity(hallID)
	if hall == nil {
		return 0
	}
	count := 0
	for i := range hall.Levels {
		l := &hall.Levels[i]
		if l.Level > tier {
			continue
		}
		for _, u := range l.Unlocks {
			if u.EntityID == id {
				count += u.Quantity
			}
		}
	}
	return count
}
