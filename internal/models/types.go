package models

import "strings"

// ResourceType represents the currencies an upgrade can be paid with
type ResourceType string

const (
	Gold       ResourceType = "Gold"
	Elixir     ResourceType = "Elixir"
	DarkElixir ResourceType = "Dark Elixir"
	ShinyOre   ResourceType = "Shiny Ore"
	GlowyOre   ResourceType = "Glowy Ore"
	StarryOre  ResourceType = "Starry Ore"
)

// AllResourceTypes returns all resource types in display order
func AllResourceTypes() []ResourceType {
	return []ResourceType{Gold, Elixir, DarkElixir, ShinyOre, GlowyOre, StarryOre}
}

// IsOre reports whether the resource is one of the equipment ores
func (r ResourceType) IsOre() bool {
	return r == ShinyOre || r == GlowyOre || r == StarryOre
}

// ParseResource maps the catalog spellings of a resource to a ResourceType.
// Unknown values return the empty string so callers can apply their default.
func ParseResource(s string) ResourceType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gold":
		return Gold
	case "elixir":
		return Elixir
	case "dark elixir", "darkelixir", "dark":
		return DarkElixir
	case "shiny ore", "shiny_ore", "shiny":
		return ShinyOre
	case "glowy ore", "glowy_ore", "glowy":
		return GlowyOre
	case "starry ore", "starry_ore", "starry":
		return StarryOre
	}
	return ""
}

// Village identifies which of the two bases an entity belongs to
type Village string

const (
	Home        Village = "home"
	BuilderBase Village = "builderBase"
)

// ParseVillage accepts the catalog and CLI spellings. Empty means Home.
func ParseVillage(s string) (Village, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "home", "homevillage", "home_village":
		return Home, true
	case "builderbase", "builder_base", "builder":
		return BuilderBase, true
	}
	return "", false
}

// EntityKind is the catalog family an entity belongs to
type EntityKind string

const (
	KindBuilding      EntityKind = "building"
	KindTrap          EntityKind = "trap"
	KindTroop         EntityKind = "troop"
	KindSiege         EntityKind = "siege"
	KindSpell         EntityKind = "spell"
	KindHero          EntityKind = "hero"
	KindPet           EntityKind = "pet"
	KindEquipment     EntityKind = "equipment"
	KindGuardian      EntityKind = "guardian"
	KindCraftedModule EntityKind = "craftedModule"
)

// AllEntityKinds returns all kinds in processing order
func AllEntityKinds() []EntityKind {
	return []EntityKind{
		KindBuilding, KindTrap, KindTroop, KindSiege, KindSpell,
		KindHero, KindPet, KindEquipment, KindGuardian, KindCraftedModule,
	}
}

// Status is the display state of a single owned instance
type Status string

const (
	StatusLocked    Status = "Locked"
	StatusBuild     Status = "Build"
	StatusMerge     Status = "Merge"
	StatusAvailable Status = "Available"
	StatusUpgrading Status = "Upgrading"
	StatusMaxed     Status = "Maxed"
)

// TableCategory groups per-instance rows into display sections
type TableCategory string

const (
	CategoryDefences       TableCategory = "Defences"
	CategoryTraps          TableCategory = "Traps"
	CategoryResources      TableCategory = "Resources"
	CategoryArmyBuildings  TableCategory = "Army Buildings"
	CategoryOtherBuildings TableCategory = "Other Buildings"
	CategoryTroops         TableCategory = "Troops"
	CategoryDarkTroops     TableCategory = "Dark Troops"
	CategorySpells         TableCategory = "Spells"
	CategorySiegeMachines  TableCategory = "Siege Machines"
	CategoryHeroes         TableCategory = "Heroes"
	CategoryPets           TableCategory = "Pets"
	CategoryEquipment      TableCategory = "Equipment"
	CategoryGuardians      TableCategory = "Guardians"
	CategoryCrafted        TableCategory = "Crafted"
	CategoryWalls          TableCategory = "Walls"
)

// AllTableCategories returns the row categories in display order
func AllTableCategories() []TableCategory {
	return []TableCategory{
		CategoryDefences, CategoryTraps, CategoryResources, CategoryArmyBuildings,
		CategoryOtherBuildings, CategoryTroops, CategoryDarkTroops, CategorySpells,
		CategorySiegeMachines, CategoryHeroes, CategoryPets, CategoryEquipment,
		CategoryGuardians, CategoryCrafted, CategoryWalls,
	}
}

// ParseTableCategory matches a category name case-insensitively
func ParseTableCategory(s string) (TableCategory, bool) {
	for _, c := range AllTableCategories() {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

// ProgressCategory is a dashboard-level progress bucket
type ProgressCategory string

const (
	ProgressStructures  ProgressCategory = "Structures"
	ProgressLab         ProgressCategory = "Lab"
	ProgressHeroes      ProgressCategory = "Heroes"
	ProgressEquipment   ProgressCategory = "Equipment"
	ProgressPets        ProgressCategory = "Pets"
	ProgressWalls       ProgressCategory = "Walls"
	ProgressCrafted     ProgressCategory = "Crafted"
	ProgressSupercharge ProgressCategory = "Supercharge"
	ProgressGuardians   ProgressCategory = "Guardians"
)

// AllProgressCategories returns the dashboard categories in display order
func AllProgressCategories() []ProgressCategory {
	return []ProgressCategory{
		ProgressStructures, ProgressLab, ProgressHeroes, ProgressEquipment,
		ProgressPets, ProgressWalls, ProgressCrafted, ProgressSupercharge,
		ProgressGuardians,
	}
}

// ParseProgressCategory matches a dashboard category name case-insensitively
func ParseProgressCategory(s string) (ProgressCategory, bool) {
	for _, c := range AllProgressCategories() {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

// Well-known catalog ids
const (
	TownHallID        = 1000001
	BuilderHallID     = 1000034
	WallID            = 1000010
	EagleArtilleryID  = 1000031
	CraftingStationID = 1000097
)

// productionBuildingIDs maps production building names to their catalog ids
var productionBuildingIDs = map[string]int{
	"Barracks":           1000006,
	"Dark Barracks":      1000026,
	"Spell Factory":      1000020,
	"Dark Spell Factory": 1000029,
	"Workshop":           1000059,
	"Pet House":          1000068,
	"Blacksmith":         1000070,
}

// ProductionBuildingID returns the catalog id of a named production building
func ProductionBuildingID(name string) (int, bool) {
	id, ok := productionBuildingIDs[name]
	return id, ok
}

// HallID returns the tier-gate entity id for a village
func HallID(v Village) int {
	if v == BuilderBase {
		return BuilderHallID
	}
	return TownHallID
}
