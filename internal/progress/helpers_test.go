package progress

import (
	"testing"
	"time"

	"github.com/spunky-sabin/clash-clone/internal/loader"
	"github.com/spunky-sabin/clash-clone/internal/models"
)

const testDataDir = "../../testdata"

// snapshotTime is the timestamp carried by testdata/player.json
const snapshotTime = 1760000000

func loadFixtures(tb testing.TB) (*models.Catalog, *models.Snapshot) {
	tb.Helper()
	cat, err := loader.LoadCatalog(testDataDir)
	if err != nil {
		tb.Fatalf("Failed to load catalog: %v", err)
	}
	snap, err := loader.LoadSnapshot(testDataDir + "/player.json")
	if err != nil {
		tb.Fatalf("Failed to load snapshot: %v", err)
	}
	return cat, snap
}

// built is a target-indexed rung priced with a build cost
func built(level, tier int, cost, secs int64) models.LevelSpec {
	return models.LevelSpec{
		Level:        level,
		RequiredTier: tier,
		BuildCost:    models.Cost{Amount: cost},
		BuildTime:    secs,
		HasBuild:     true,
	}
}

// upgraded is a rung priced with an upgrade cost
func upgraded(level, tier int, cost, secs int64) models.LevelSpec {
	return models.LevelSpec{
		Level:        level,
		RequiredTier: tier,
		UpgradeCost:  models.Cost{Amount: cost},
		UpgradeTime:  secs,
		HasUpgrade:   true,
	}
}

// hallEntity returns a Town Hall with levels 1..maxTier, every level
// reachable at its own tier
func hallEntity(maxTier int) *models.Entity {
	hall := &models.Entity{ID: models.TownHallID, Name: "Town Hall", Kind: models.KindBuilding, Type: "Town Hall", Village: models.Home}
	for l := 1; l <= maxTier; l++ {
		hall.Levels = append(hall.Levels, built(l, l, int64(l)*1000, 60))
	}
	return hall
}

// unlock adds qty copies of id to the hall's rung at level
func unlock(hall *models.Entity, level, id, qty int) {
	ls := hall.LevelData(level)
	ls.Unlocks = append(ls.Unlocks, models.Unlock{EntityID: id, Quantity: qty})
}

func newCatalog(buildings ...*models.Entity) *models.Catalog {
	cat := &models.Catalog{Buildings: buildings}
	cat.Index()
	return cat
}

func snapshotWith(array string, entries ...models.PlayerInstance) *models.Snapshot {
	snap := models.NewSnapshot()
	snap.Arrays[array] = entries
	return snap
}

func fixedNow() time.Time {
	return time.Unix(snapshotTime+600, 0)
}
