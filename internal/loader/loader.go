package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/spunky-sabin/clash-clone/internal/models"
)

// CatalogFile is the static game data file name inside the data directory
const CatalogFile = "static_data.json"

// EntityJSON represents the JSON structure for one catalog entity
type EntityJSON struct {
	ID                      int                   `json:"_id"`
	Name                    string                `json:"name"`
	Type                    string                `json:"type"`
	Village                 string                `json:"village"`
	UpgradeResource         string                `json:"upgrade_resource"`
	ProductionBuilding      string                `json:"production_building"`
	ProductionBuildingLevel int                   `json:"production_building_level"`
	IsSeasonal              bool                  `json:"is_seasonal"`
	Rarity                  string                `json:"rarity"`
	RequiredTownhall        int                   `json:"required_townhall"`
	Hero                    string                `json:"hero"`
	Superchargeable         bool                  `json:"superchargeable"`
	Levels                  []LevelJSON           `json:"levels"`
	SeasonalDefenses        []SeasonalDefenseJSON `json:"seasonal_defenses"`
}

// LevelJSON represents the JSON structure for one level rung. Cost and time
// fields stay raw because they are numbers for most kinds and ore objects
// for equipment.
type LevelJSON struct {
	Level            int             `json:"level"`
	RequiredTownhall int             `json:"required_townhall"`
	BuildCost        json.RawMessage `json:"build_cost"`
	BuildTime        json.RawMessage `json:"build_time"`
	UpgradeCost      json.RawMessage `json:"upgrade_cost"`
	UpgradeTime      json.RawMessage `json:"upgrade_time"`
	Unlocks          []struct {
		ID       int `json:"_id"`
		Quantity int `json:"quantity"`
	} `json:"unlocks"`
	MergeRequirement []struct {
		ID       int `json:"_id"`
		Level    int `json:"level"`
		Quantity int `json:"quantity"`
	} `json:"merge_requirement"`
	Weapon      *TrackJSON `json:"weapon"`
	Supercharge *TrackJSON `json:"supercharge"`
}

// TrackJSON represents a nested level ladder (supercharge, hall weapon)
type TrackJSON struct {
	UpgradeResource string      `json:"upgrade_resource"`
	Levels          []LevelJSON `json:"levels"`
}

// SeasonalDefenseJSON represents a crafted defense and its modules
type SeasonalDefenseJSON struct {
	ID               int          `json:"_id"`
	Name             string       `json:"name"`
	RequiredTownhall int          `json:"required_townhall"`
	Modules          []EntityJSON `json:"modules"`
}

// CatalogJSON is the top-level static data document
type CatalogJSON struct {
	Buildings  []EntityJSON   `json:"buildings"`
	Traps      []EntityJSON   `json:"traps"`
	Troops     []EntityJSON   `json:"troops"`
	Spells     []EntityJSON   `json:"spells"`
	Heroes     []EntityJSON   `json:"heroes"`
	Pets       []EntityJSON   `json:"pets"`
	Equipment  []EntityJSON   `json:"equipment"`
	Guardians  []EntityJSON   `json:"guardians"`
	WallLimits map[string]int `json:"wall_limits"`
}

// LoadCatalog loads the static catalog from the data directory
func LoadCatalog(dataDir string) (*models.Catalog, error) {
	filePath := filepath.Join(dataDir, CatalogFile)
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", CatalogFile, err)
	}

	cat, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", CatalogFile, err)
	}
	return cat, nil
}

// ParseCatalog converts static data JSON into an indexed catalog
func ParseCatalog(data []byte) (*models.Catalog, error) {
	var raw CatalogJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	cat := &models.Catalog{
		Buildings: convertEntities(raw.Buildings, func(EntityJSON) models.EntityKind { return models.KindBuilding }),
		Traps:     convertEntities(raw.Traps, func(EntityJSON) models.EntityKind { return models.KindTrap }),
		Troops:    convertEntities(raw.Troops, troopKind),
		Spells:    convertEntities(raw.Spells, func(EntityJSON) models.EntityKind { return models.KindSpell }),
		Heroes:    convertEntities(raw.Heroes, func(EntityJSON) models.EntityKind { return models.KindHero }),
		Pets:      convertEntities(raw.Pets, func(EntityJSON) models.EntityKind { return models.KindPet }),
		Equipment: convertEntities(raw.Equipment, func(EntityJSON) models.EntityKind { return models.KindEquipment }),
		Guardians: convertEntities(raw.Guardians, func(EntityJSON) models.EntityKind { return models.KindGuardian }),
	}

	if len(raw.WallLimits) > 0 {
		cat.WallLimits = make(map[int]int, len(raw.WallLimits))
		for levelStr, limit := range raw.WallLimits {
			level, err := strconv.Atoi(levelStr)
			if err != nil {
				return nil, fmt.Errorf("invalid wall_limits level %q: %w", levelStr, err)
			}
			cat.WallLimits[level] = limit
		}
	}

	cat.Index()
	return cat, nil
}

// troopKind separates siege machines from the shared troop list
func troopKind(raw EntityJSON) models.EntityKind {
	if raw.ProductionBuilding == "Workshop" {
		return models.KindSiege
	}
	return models.KindTroop
}

func convertEntities(raws []EntityJSON, kind func(EntityJSON) models.EntityKind) []*models.Entity {
	out := make([]*models.Entity, 0, len(raws))
	for _, raw := range raws {
		out = append(out, convertEntity(raw, kind(raw)))
	}
	return out
}

func convertEntity(raw EntityJSON, kind models.EntityKind) *models.Entity {
	village, ok := models.ParseVillage(raw.Village)
	if !ok {
		// Unknown villages never match an active village
		village = models.Village(raw.Village)
	}

	e := &models.Entity{
		ID:                      raw.ID,
		Name:                    raw.Name,
		Kind:                    kind,
		Type:                    raw.Type,
		Village:                 village,
		Resource:                models.ParseResource(raw.UpgradeResource),
		ProductionBuilding:      raw.ProductionBuilding,
		ProductionBuildingLevel: raw.ProductionBuildingLevel,
		Seasonal:                raw.IsSeasonal,
		Rarity:                  raw.Rarity,
		RequiredTier:            raw.RequiredTownhall,
		Hero:                    raw.Hero,
		Superchargeable:         raw.Superchargeable,
		Levels:                  convertLevels(raw.Levels),
	}

	for _, sd := range raw.SeasonalDefenses {
		def := models.SeasonalDefense{
			ID:           sd.ID,
			Name:         sd.Name,
			RequiredTier: sd.RequiredTownhall,
		}
		for _, m := range sd.Modules {
			def.Modules = append(def.Modules, convertEntity(m, models.KindCraftedModule))
		}
		e.SeasonalDefenses = append(e.SeasonalDefenses, def)
	}

	return e
}

func convertLevels(raws []LevelJSON) []models.LevelSpec {
	levels := make([]models.LevelSpec, 0, len(raws))
	for _, rl := range raws {
		ls := models.LevelSpec{
			Level:        rl.Level,
			RequiredTier: rl.RequiredTownhall,
		}
		ls.BuildCost, ls.HasBuild = parseCost(rl.BuildCost)
		ls.UpgradeCost, ls.HasUpgrade = parseCost(rl.UpgradeCost)
		ls.BuildTime = parseSeconds(rl.BuildTime)
		ls.UpgradeTime = parseSeconds(rl.UpgradeTime)

		for _, u := range rl.Unlocks {
			ls.Unlocks = append(ls.Unlocks, models.Unlock{EntityID: u.ID, Quantity: u.Quantity})
		}
		for _, mr := range rl.MergeRequirement {
			ls.MergeRequirement = append(ls.MergeRequirement, models.MergeRequirement{
				EntityID: mr.ID,
				Level:    mr.Level,
				Quantity: mr.Quantity,
			})
		}
		ls.Weapon = convertTrack(rl.Weapon)
		ls.Supercharge = convertTrack(rl.Supercharge)

		levels = append(levels, ls)
	}
	models.SortLevels(levels)
	return levels
}

func convertTrack(raw *TrackJSON) *models.Track {
	if raw == nil || len(raw.Levels) == 0 {
		return nil
	}
	return &models.Track{
		Resource: models.ParseResource(raw.UpgradeResource),
		Levels:   convertLevels(raw.Levels),
	}
}

// parseCost reads a cost that is either a plain number or an ore object.
// The bool reports whether the field was present at all.
func parseCost(raw json.RawMessage) (models.Cost, bool) {
	if len(raw) == 0 {
		return models.Cost{}, false
	}
	r := gjson.ParseBytes(raw)
	switch {
	case r.Type == gjson.Null:
		return models.Cost{}, false
	case r.IsObject():
		return models.Cost{Ores: models.OreCost{
			Shiny:  r.Get("shiny_ore").Int(),
			Glowy:  r.Get("glowy_ore").Int(),
			Starry: r.Get("starry_ore").Int(),
		}}, true
	}
	return models.Cost{Amount: r.Int()}, true
}

func parseSeconds(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}
	return gjson.ParseBytes(raw).Int()
}
