package progress

import (
	"strings"

	"github.com/spunky-sabin/clash-clone/internal/models"
)

// Candidate is one catalog entity being considered for a player's report,
// together with the snapshot record it was matched to (nil when unowned)
type Candidate struct {
	Entity  *models.Entity
	Record  *models.PlayerInstance
	Tier    int
	Village models.Village
	Snap    *models.Snapshot
	Source  models.RecordSource
	Policy  *EntityKindPolicy
}

// Level returns the matched record's level, 0 when unowned
func (c *Candidate) Level() int {
	if c.Record == nil {
		return 0
	}
	return c.Record.Level
}

// fromAPI reports whether any array the policy reads was supplied by the live API
func (c *Candidate) fromAPI() bool {
	for _, a := range c.Policy.Arrays(c.Village) {
		if c.Source.FromAPI(a) {
			return true
		}
	}
	return false
}

// Filter rejects a candidate from progress accounting
type Filter struct {
	Name   string
	Reject func(c *Candidate) bool
}

// EntityKindPolicy parameterizes the shared calculator for one entity kind
type EntityKindPolicy struct {
	Kind            models.EntityKind
	Convention      Convention
	DefaultResource models.ResourceType
	HomeArrays      []string
	BuilderArrays   []string
	Progress        models.ProgressCategory

	// MultiSlot kinds are owned as several numbered copies padded up to the
	// hall's allowed count. Other kinds have at most one record per entity.
	MultiSlot bool
	MinTier   int
	Filters   []Filter

	category func(e *models.Entity) models.TableCategory
}

// Arrays returns the snapshot arrays holding this kind for the village, in lookup order
func (p *EntityKindPolicy) Arrays(v models.Village) []string {
	if v == models.BuilderBase {
		return p.BuilderArrays
	}
	return p.HomeArrays
}

// Resource returns the entity's upgrade resource, falling back to the kind default
func (p *EntityKindPolicy) Resource(e *models.Entity) models.ResourceType {
	if e != nil && e.Resource != "" {
		return e.Resource
	}
	return p.DefaultResource
}

// Category returns the row category of an entity of this kind
func (p *EntityKindPolicy) Category(e *models.Entity) models.TableCategory {
	return p.category(e)
}

// Admit runs the filters in order and returns the name of the first that
// rejects the candidate, or "" when it is admitted
func (p *EntityKindPolicy) Admit(c *Candidate) string {
	for _, f := range p.Filters {
		if f.Reject(c) {
			return f.Name
		}
	}
	return ""
}

// Named filters, in the order kinds apply them
var (
	FilterVillage = Filter{Name: "village", Reject: func(c *Candidate) bool {
		return c.Entity.Village != c.Village
	}}

	FilterSeasonal = Filter{Name: "seasonal", Reject: func(c *Candidate) bool {
		if c.Entity.Seasonal {
			return true
		}
		if r := c.Record; r != nil {
			return r.Seasonal || (r.API != nil && r.API.Seasonal)
		}
		return false
	}}

	FilterBoostable = Filter{Name: "boostable", Reject: func(c *Candidate) bool {
		r := c.Record
		return r != nil && (r.Boostable || (r.API != nil && r.API.Boostable))
	}}

	FilterMinTier = Filter{Name: "minTier", Reject: func(c *Candidate) bool {
		return c.Tier < c.Policy.MinTier
	}}

	// Equipment is visible when owned, when Epic, or once the hall reaches it
	FilterEquipment = Filter{Name: "equipment", Reject: func(c *Candidate) bool {
		if c.Level() > 0 || strings.EqualFold(c.Entity.Rarity, "Epic") {
			return false
		}
		return c.Tier < c.Entity.RequiredTier
	}}

	FilterProduction = Filter{Name: "production", Reject: func(c *Candidate) bool {
		e := c.Entity
		if c.Level() > 0 || e.ProductionBuilding == "" {
			return false
		}
		id, ok := models.ProductionBuildingID(e.ProductionBuilding)
		if !ok {
			return false
		}
		arrays := buildingPolicy.Arrays(c.Village)
		return c.Snap.MaxLevel(id, arrays...) < e.ProductionBuildingLevel
	}}

	FilterAPIPresence = Filter{Name: "api", Reject: func(c *Candidate) bool {
		if !c.fromAPI() {
			return false
		}
		if c.Record == nil {
			return true
		}
		return c.Record.API != nil && c.Record.API.UnlockHallLevel > c.Tier
	}}

	FilterTierCap = Filter{Name: "tierCap", Reject: func(c *Candidate) bool {
		return EffectiveCap(c) == 0
	}}
)

// EffectiveCap returns the candidate's tier cap, letting live API metadata
// override the catalog
func EffectiveCap(c *Candidate) int {
	if r := c.Record; r != nil && r.API != nil && r.API.HallMaxLevel > 0 && c.fromAPI() {
		return r.API.HallMaxLevel
	}
	return TierCap(c.Entity, c.Tier)
}

func buildingCategory(e *models.Entity) models.TableCategory {
	t := strings.ToLower(e.Type)
	switch {
	case containsAny(t, "defense", "cannon", "tower", "mortar"):
		return models.CategoryDefences
	case containsAny(t, "resource", "storage", "mine", "collector"):
		return models.CategoryResources
	case containsAny(t, "army", "barrack", "camp", "laboratory"):
		return models.CategoryArmyBuildings
	}
	return models.CategoryOtherBuildings
}

func troopCategory(e *models.Entity) models.TableCategory {
	if e.ProductionBuilding == "Dark Barracks" {
		return models.CategoryDarkTroops
	}
	return models.CategoryTroops
}

func fixed(c models.TableCategory) func(*models.Entity) models.TableCategory {
	return func(*models.Entity) models.TableCategory { return c }
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var buildingPolicy = &EntityKindPolicy{
	Kind:            models.KindBuilding,
	Convention:      TargetIndexed,
	DefaultResource: models.Gold,
	HomeArrays:      []string{models.ArrayBuildings},
	BuilderArrays:   []string{models.ArrayBuildings2},
	Progress:        models.ProgressStructures,
	MultiSlot:       true,
	Filters:         []Filter{FilterVillage},
	category:        buildingCategory,
}

var policies = []*EntityKindPolicy{
	buildingPolicy,
	{
		Kind:            models.KindTrap,
		Convention:      TargetIndexed,
		DefaultResource: models.Gold,
		HomeArrays:      []string{models.ArrayTraps},
		BuilderArrays:   []string{models.ArrayTraps2},
		Progress:        models.ProgressStructures,
		MultiSlot:       true,
		Filters:         []Filter{FilterVillage},
		category:        fixed(models.CategoryTraps),
	},
	{
		Kind:            models.KindTroop,
		Convention:      SourceIndexed,
		DefaultResource: models.Elixir,
		HomeArrays:      []string{models.ArrayUnits, models.ArrayTroops},
		BuilderArrays:   []string{models.ArrayUnits2},
		Progress:        models.ProgressLab,
		Filters:         labFilters(),
		category:        troopCategory,
	},
	{
		Kind:            models.KindSiege,
		Convention:      SourceIndexed,
		DefaultResource: models.Elixir,
		HomeArrays:      []string{models.ArraySiegeMachines, models.ArrayUnits, models.ArrayTroops},
		Progress:        models.ProgressLab,
		Filters:         labFilters(),
		category:        fixed(models.CategorySiegeMachines),
	},
	{
		Kind:            models.KindSpell,
		Convention:      SourceIndexed,
		DefaultResource: models.Elixir,
		HomeArrays:      []string{models.ArraySpells},
		BuilderArrays:   []string{models.ArraySpells2},
		Progress:        models.ProgressLab,
		Filters:         labFilters(),
		category:        fixed(models.CategorySpells),
	},
	{
		Kind:            models.KindHero,
		Convention:      SourceIndexed,
		DefaultResource: models.DarkElixir,
		HomeArrays:      []string{models.ArrayHeroes},
		BuilderArrays:   []string{models.ArrayHeroes2},
		Progress:        models.ProgressHeroes,
		Filters:         []Filter{FilterVillage, FilterAPIPresence, FilterTierCap},
		category:        fixed(models.CategoryHeroes),
	},
	{
		Kind:            models.KindPet,
		Convention:      SourceIndexed,
		DefaultResource: models.DarkElixir,
		HomeArrays:      []string{models.ArrayPets},
		Progress:        models.ProgressPets,
		MinTier:         PetMinTier,
		Filters:         []Filter{FilterVillage, FilterMinTier, FilterProduction, FilterAPIPresence, FilterTierCap},
		category:        fixed(models.CategoryPets),
	},
	{
		Kind:            models.KindEquipment,
		Convention:      SourceIndexed,
		DefaultResource: models.ShinyOre,
		HomeArrays:      []string{models.ArrayEquipment},
		Progress:        models.ProgressEquipment,
		Filters:         []Filter{FilterVillage, FilterEquipment, FilterAPIPresence},
		category:        fixed(models.CategoryEquipment),
	},
	{
		Kind:            models.KindGuardian,
		Convention:      SourceIndexed,
		DefaultResource: models.Elixir,
		HomeArrays:      []string{models.ArrayGuardians, models.ArrayHeroes},
		Progress:        models.ProgressGuardians,
		MinTier:         GuardianMinTier,
		Filters:         []Filter{FilterVillage, FilterMinTier, FilterTierCap},
		category:        fixed(models.CategoryGuardians),
	},
}

var craftedPolicy = &EntityKindPolicy{
	Kind:            models.KindCraftedModule,
	Convention:      TargetIndexed,
	DefaultResource: models.DarkElixir,
	Progress:        models.ProgressCrafted,
	category:        fixed(models.CategoryCrafted),
}

func labFilters() []Filter {
	return []Filter{
		FilterVillage, FilterSeasonal, FilterBoostable,
		FilterProduction, FilterAPIPresence, FilterTierCap,
	}
}
