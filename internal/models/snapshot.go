package models

import (
	"sort"
	"time"
)

// Snapshot array names as they appear in a player export
const (
	ArrayBuildings     = "buildings"
	ArrayTraps         = "traps"
	ArrayUnits         = "units"
	ArrayTroops        = "troops"
	ArraySiegeMachines = "siege_machines"
	ArraySpells        = "spells"
	ArrayHeroes        = "heroes"
	ArrayPets          = "pets"
	ArrayEquipment     = "equipment"
	ArrayGuardians     = "guardians"
	ArrayBuildings2    = "buildings2"
	ArrayTraps2        = "traps2"
	ArrayUnits2        = "units2"
	ArraySpells2       = "spells2"
	ArrayHeroes2       = "heroes2"
)

// AllArrays returns every entity array name a snapshot may carry
func AllArrays() []string {
	return []string{
		ArrayBuildings, ArrayTraps, ArrayUnits, ArrayTroops, ArraySiegeMachines,
		ArraySpells, ArrayHeroes, ArrayPets, ArrayEquipment, ArrayGuardians,
		ArrayBuildings2, ArrayTraps2, ArrayUnits2, ArraySpells2, ArrayHeroes2,
	}
}

// DefaultBuilders is assumed when a snapshot does not say how many builders the player has
const DefaultBuilders = 5

// APIMetadata is the per-record metadata supplied by the live game API
type APIMetadata struct {
	Name            string `json:"name"`
	Village         string `json:"village,omitempty"`
	MaxLevel        int    `json:"maxLevel,omitempty"`
	Boostable       bool   `json:"boostable,omitempty"`
	Seasonal        bool   `json:"seasonal,omitempty"`
	UnlockBuilding  string `json:"unlockBuilding,omitempty"`
	UnlockHallLevel int    `json:"unlockHallLevel,omitempty"`
	HallMaxLevel    int    `json:"hallMaxLevel,omitempty"`
}

// CraftedModuleState is the player's level on one crafted defense module
type CraftedModuleState struct {
	ID    int   `json:"data"`
	Level int   `json:"lvl"`
	Timer int64 `json:"timer,omitempty"`
}

// CraftedType is the player's progress on one crafted defense
type CraftedType struct {
	ID      int                  `json:"data"`
	Modules []CraftedModuleState `json:"modules,omitempty"`
}

// PlayerInstance is one entry of a snapshot entity array. Count > 1 means
// the entry stands for several identical copies.
type PlayerInstance struct {
	EntityID    int           `json:"data"`
	Name        string        `json:"name,omitempty"`
	Level       int           `json:"lvl"`
	Count       int           `json:"cnt,omitempty"`
	Timer       int64         `json:"timer,omitempty"`
	Supercharge int           `json:"supercharge,omitempty"`
	Boostable   bool          `json:"boostable,omitempty"`
	Seasonal    bool          `json:"seasonal,omitempty"`
	Types       []CraftedType `json:"types,omitempty"`
	API         *APIMetadata  `json:"_apiData,omitempty"`
}

// Copies returns the number of identical copies the entry represents
func (p PlayerInstance) Copies() int {
	if p.Count <= 0 {
		return 1
	}
	return p.Count
}

// RecordSource tells the engine where the snapshot's army records came from.
// It is resolved once per snapshot.
type RecordSource interface {
	// SourceName is "export" or "api"
	SourceName() string
	// FromAPI reports whether the named array was supplied by the live API
	FromAPI(array string) bool
}

// FromExport marks a snapshot taken verbatim from an in-game export
type FromExport struct{}

func (FromExport) SourceName() string { return "export" }

func (FromExport) FromAPI(array string) bool { return false }

// FilterStats counts API records dropped during a merge
type FilterStats struct {
	SuperTroops    int `json:"superTroops"`
	SeasonalTroops int `json:"seasonalTroops"`
}

// FromLiveAPI marks a snapshot whose listed arrays were replaced with live API data
type FromLiveAPI struct {
	Arrays     map[string]bool
	FetchedAt  time.Time
	PlayerName string
	TownHall   int
	Filtered   FilterStats
}

func (FromLiveAPI) SourceName() string { return "api" }

func (s FromLiveAPI) FromAPI(array string) bool {
	return s.Arrays[array]
}

// APIArrays returns the API-sourced array names in sorted order
func (s FromLiveAPI) APIArrays() []string {
	out := make([]string, 0, len(s.Arrays))
	for name, ok := range s.Arrays {
		if ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Snapshot is a player's village at the moment it was exported
type Snapshot struct {
	Tag         string
	Name        string
	Timestamp   int64 // unix seconds, 0 when unknown
	Builders    int
	WeaponLevel int

	Arrays map[string][]PlayerInstance
	Source RecordSource
}

// NewSnapshot returns an empty export-sourced snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Arrays: make(map[string][]PlayerInstance),
		Source: FromExport{},
	}
}

// Entries returns the entries of the first non-empty array among names
func (s *Snapshot) Entries(names ...string) []PlayerInstance {
	for _, n := range names {
		if list := s.Arrays[n]; len(list) > 0 {
			return list
		}
	}
	return nil
}

// EntriesFor returns every entry with the given entity id from the named array
func (s *Snapshot) EntriesFor(array string, id int) []PlayerInstance {
	var out []PlayerInstance
	for _, p := range s.Arrays[array] {
		if p.EntityID == id {
			out = append(out, p)
		}
	}
	return out
}

// MaxLevel returns the highest level among entries with the given id in
// the named arrays, 0 when none is present.
func (s *Snapshot) MaxLevel(id int, arrays ...string) int {
	max := 0
	for _, a := range arrays {
		for _, p := range s.Arrays[a] {
			if p.EntityID == id && p.Level > max {
				max = p.Level
			}
		}
	}
	return max
}

// BuilderCount returns the builder count, defaulting when unknown
func (s *Snapshot) BuilderCount() int {
	if s.Builders <= 0 {
		return DefaultBuilders
	}
	return s.Builders
}

// ResolvedSource returns the record source, treating nil as an export
func (s *Snapshot) ResolvedSource() RecordSource {
	if s.Source == nil {
		return FromExport{}
	}
	return s.Source
}
