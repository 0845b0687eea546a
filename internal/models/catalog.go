package models

import (
	"sort"
	"strings"
)

// OreCost is an equipment upgrade price in the three ore currencies
type OreCost struct {
	Shiny  int64
	Glowy  int64
	Starry int64
}

// IsZero reports whether no ore is required
func (o OreCost) IsZero() bool {
	return o.Shiny == 0 && o.Glowy == 0 && o.Starry == 0
}

// Cost is a single price. Plain resources use Amount, equipment uses Ores.
type Cost struct {
	Amount int64
	Ores   OreCost
}

// IsZero reports whether the cost is free
func (c Cost) IsZero() bool {
	return c.Amount == 0 && c.Ores.IsZero()
}

// Add returns the sum of two costs
func (c Cost) Add(o Cost) Cost {
	return Cost{
		Amount: c.Amount + o.Amount,
		Ores: OreCost{
			Shiny:  c.Ores.Shiny + o.Ores.Shiny,
			Glowy:  c.Ores.Glowy + o.Ores.Glowy,
			Starry: c.Ores.Starry + o.Ores.Starry,
		},
	}
}

// Scale returns the cost multiplied by n
func (c Cost) Scale(n int64) Cost {
	return Cost{
		Amount: c.Amount * n,
		Ores:   OreCost{Shiny: c.Ores.Shiny * n, Glowy: c.Ores.Glowy * n, Starry: c.Ores.Starry * n},
	}
}

// Unlock is a quantity of another entity made buildable by a hall level
type Unlock struct {
	EntityID int
	Quantity int
}

// MergeRequirement is one component consumed when building a merged defense
type MergeRequirement struct {
	EntityID int
	Level    int
	Quantity int
}

// Track is a secondary level ladder (supercharge, hall weapon)
type Track struct {
	Resource ResourceType
	Levels   []LevelSpec
}

// LevelData returns the rung with the given level, or nil
func (t *Track) LevelData(level int) *LevelSpec {
	if t == nil {
		return nil
	}
	return findLevel(t.Levels, level)
}

// Len returns the number of rungs on the track
func (t *Track) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Levels)
}

// LevelSpec is one rung of an entity's level ladder
type LevelSpec struct {
	Level        int
	RequiredTier int

	BuildCost   Cost
	BuildTime   int64
	UpgradeCost Cost
	UpgradeTime int64

	// HasBuild and HasUpgrade record which of the two price columns the
	// catalog actually carried for this rung.
	HasBuild   bool
	HasUpgrade bool

	Unlocks          []Unlock
	MergeRequirement []MergeRequirement
	Weapon           *Track
	Supercharge      *Track
}

// BuildOrUpgrade returns build_cost/build_time, falling back to the upgrade
// columns when the rung carries no build price.
func (l *LevelSpec) BuildOrUpgrade() (Cost, int64) {
	cost, t := l.UpgradeCost, l.UpgradeTime
	if l.HasBuild {
		cost = l.BuildCost
	}
	if l.BuildTime != 0 {
		t = l.BuildTime
	}
	return cost, t
}

// SeasonalDefense is a crafted defense built at the Crafting Station
type SeasonalDefense struct {
	ID           int
	Name         string
	RequiredTier int
	Modules      []*Entity
}

// Entity is a read-only catalog record for one upgradeable entity type
type Entity struct {
	ID      int
	Name    string
	Kind    EntityKind
	Type    string
	Village Village

	// Resource is empty when the catalog did not name one; the kind
	// default applies.
	Resource ResourceType

	ProductionBuilding      string
	ProductionBuildingLevel int
	Seasonal                bool
	Rarity                  string
	RequiredTier            int
	Hero                    string
	Superchargeable         bool

	Levels           []LevelSpec
	SeasonalDefenses []SeasonalDefense
}

// LevelData returns the rung with the given level, or nil
func (e *Entity) LevelData(level int) *LevelSpec {
	if e == nil {
		return nil
	}
	return findLevel(e.Levels, level)
}

// AbsoluteMax returns the highest level on the ladder
func (e *Entity) AbsoluteMax() int {
	if e == nil {
		return 0
	}
	max := 0
	for i := range e.Levels {
		if e.Levels[i].Level > max {
			max = e.Levels[i].Level
		}
	}
	return max
}

// SuperchargeTrack returns the supercharge ladder attached to the absolute
// max level, or nil when the entity cannot be supercharged.
func (e *Entity) SuperchargeTrack() *Track {
	if e == nil || !e.Superchargeable {
		return nil
	}
	top := e.LevelData(e.AbsoluteMax())
	if top == nil || top.Supercharge == nil || len(top.Supercharge.Levels) == 0 {
		return nil
	}
	return top.Supercharge
}

// MergeRequirements returns the components consumed by a merged defense
func (e *Entity) MergeRequirements() []MergeRequirement {
	if e == nil || len(e.Levels) == 0 {
		return nil
	}
	return e.Levels[0].MergeRequirement
}

// IsMerged reports whether the entity is built by merging other defenses
func (e *Entity) IsMerged() bool {
	return len(e.MergeRequirements()) > 0
}

// IsWall reports whether the entity is a wall segment
func (e *Entity) IsWall() bool {
	return e != nil && (e.ID == WallID || strings.EqualFold(e.Type, "Wall"))
}

// Catalog is the static game data, immutable once loaded
type Catalog struct {
	Buildings []*Entity
	Traps     []*Entity
	Troops    []*Entity
	Spells    []*Entity
	Heroes    []*Entity
	Pets      []*Entity
	Equipment []*Entity
	Guardians []*Entity

	// WallLimits caps how many walls may reach a given level. Nil means
	// the catalog did not carry the table.
	WallLimits map[int]int

	byID map[int]*Entity
}

// Index builds the id lookup table. Loaders call it once after filling the lists.
func (c *Catalog) Index() {
	c.byID = make(map[int]*Entity)
	for _, list := range c.lists() {
		for _, e := range list {
			if _, exists := c.byID[e.ID]; !exists {
				c.byID[e.ID] = e
			}
		}
	}
}

// Entity returns the entity with the given id, or nil
func (c *Catalog) Entity(id int) *Entity {
	if c.byID == nil {
		c.Index()
	}
	return c.byID[id]
}

// Kind returns the catalog list holding entities of the given kind.
// Troops and siege machines share one list.
func (c *Catalog) Kind(kind EntityKind) []*Entity {
	switch kind {
	case KindBuilding:
		return c.Buildings
	case KindTrap:
		return c.Traps
	case KindTroop, KindSiege:
		var out []*Entity
		for _, e := range c.Troops {
			if e.Kind == kind {
				out = append(out, e)
			}
		}
		return out
	case KindSpell:
		return c.Spells
	case KindHero:
		return c.Heroes
	case KindPet:
		return c.Pets
	case KindEquipment:
		return c.Equipment
	case KindGuardian:
		return c.Guardians
	}
	return nil
}

// FindByName looks an entity up by name, ignoring case and surrounding space
func FindByName(list []*Entity, name string) *Entity {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return nil
	}
	for _, e := range list {
		if strings.ToLower(strings.TrimSpace(e.Name)) == want {
			return e
		}
	}
	return nil
}

// Size returns the number of entities across all lists
func (c *Catalog) Size() int {
	n := 0
	for _, list := range c.lists() {
		n += len(list)
	}
	return n
}

func (c *Catalog) lists() [][]*Entity {
	return [][]*Entity{
		c.Buildings, c.Traps, c.Troops, c.Spells,
		c.Heroes, c.Pets, c.Equipment, c.Guardians,
	}
}

func findLevel(levels []LevelSpec, level int) *LevelSpec {
	for i := range levels {
		if levels[i].Level == level {
			return &levels[i]
		}
	}
	return nil
}

// SortLevels orders a ladder by level so iteration is deterministic
func SortLevels(levels []LevelSpec) {
	sort.SliceStable(levels, func(i, j int) bool {
		return levels[i].Level < levels[j].Level
	})
}
