package apimerge

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spunky-sabin/clash-clone/internal/models"
)

// PetHouse is the unlock building that marks an API troop as a pet
const PetHouse = "Pet House"

// Result is a merged snapshot plus the records the merge could not place
type Result struct {
	Snapshot *models.Snapshot
	Source   models.FromLiveAPI
	Warnings []string
}

// merger carries one merge pass
type merger struct {
	export *models.Snapshot
	cat    *models.Catalog
	out    map[string][]models.PlayerInstance
	source models.FromLiveAPI
	warns  []string
}

// Merge replaces the army arrays of an export with the API player's records.
// Buildings, traps, walls and the weapon stay as exported. The export is not
// modified.
func Merge(export *models.Snapshot, player *Player, cat *models.Catalog, fetchedAt time.Time) (*Result, error) {
	if export == nil || player == nil || cat == nil {
		return nil, errors.New("merge: snapshot, player and catalog are required")
	}

	m := &merger{
		export: export,
		cat:    cat,
		out:    make(map[string][]models.PlayerInstance),
		source: models.FromLiveAPI{
			Arrays:     make(map[string]bool),
			FetchedAt:  fetchedAt.UTC(),
			PlayerName: player.Name,
			TownHall:   player.TownHall,
		},
	}
	if player.Tag != "" && export.Tag != "" && !strings.EqualFold(player.Tag, export.Tag) {
		m.warn("api player %s does not match export %s", player.Tag, export.Tag)
	}

	m.heroes(player.Heroes)
	m.troops(player.Troops)
	m.spells(player.Spells)
	m.equipment(player.Equipment)

	snap := &models.Snapshot{
		Tag:         export.Tag,
		Name:        export.Name,
		Timestamp:   export.Timestamp,
		Builders:    export.Builders,
		WeaponLevel: export.WeaponLevel,
		Arrays:      make(map[string][]models.PlayerInstance, len(export.Arrays)),
		Source:      m.source,
	}
	for name, list := range export.Arrays {
		snap.Arrays[name] = append([]models.PlayerInstance(nil), list...)
	}
	for name, list := range m.out {
		snap.Arrays[name] = list
	}
	// units supersedes the legacy troops array once the API fills it
	if m.source.Arrays[models.ArrayUnits] {
		delete(snap.Arrays, models.ArrayTroops)
	}

	return &Result{Snapshot: snap, Source: m.source, Warnings: m.warns}, nil
}

func (m *merger) warn(format string, args ...any) {
	m.warns = append(m.warns, fmt.Sprintf(format, args...))
}

// place appends a converted record to an output array
func (m *merger) place(array string, e *models.Entity, u Unit, timerFrom ...string) {
	rec := models.PlayerInstance{
		EntityID: e.ID,
		Level:    u.Level,
		API: &models.APIMetadata{
			Name:           u.Name,
			Village:        u.Village,
			MaxLevel:       u.MaxLevel,
			UnlockBuilding: u.UnlockBuilding,
		},
	}
	if len(timerFrom) == 0 {
		timerFrom = []string{array}
	}
	if prev, ok := m.exported(e.ID, timerFrom...); ok && prev.Timer > 0 {
		rec.Timer = prev.Timer
	}
	m.out[array] = append(m.out[array], rec)
	m.source.Arrays[array] = true
}

// exported finds the export's record of an entity in any of the arrays
func (m *merger) exported(id int, arrays ...string) (models.PlayerInstance, bool) {
	for _, a := range arrays {
		for _, p := range m.export.Arrays[a] {
			if p.EntityID == id {
				return p, true
			}
		}
	}
	return models.PlayerInstance{}, false
}

func (m *merger) lookup(u Unit, lists ...[]*models.Entity) *models.Entity {
	for _, list := range lists {
		if e := models.FindByName(list, u.Name); e != nil {
			return e
		}
	}
	return nil
}

// filtered drops super and seasonal units, which are not permanent progress
func (m *merger) filtered(u Unit) bool {
	switch {
	case u.Boostable:
		m.source.Filtered.SuperTroops++
	case u.Seasonal:
		m.source.Filtered.SeasonalTroops++
	default:
		return false
	}
	return true
}

func (m *merger) heroes(units []Unit) {
	for _, u := range units {
		e := m.lookup(u, m.cat.Heroes, m.cat.Guardians)
		if e == nil {
			m.warn("no catalog hero named %q", u.Name)
			continue
		}
		array := models.ArrayHeroes
		if u.BuilderBase() {
			array = models.ArrayHeroes2
		}
		m.place(array, e, u)
	}
}

func (m *merger) troops(units []Unit) {
	for _, u := range units {
		if m.filtered(u) {
			continue
		}
		if u.UnlockBuilding == PetHouse {
			if e := m.lookup(u, m.cat.Pets); e != nil {
				m.place(models.ArrayPets, e, u)
			} else {
				m.warn("no catalog pet named %q", u.Name)
			}
			continue
		}

		e := m.lookup(u, m.cat.Troops)
		if e == nil {
			m.warn("no catalog troop named %q", u.Name)
			continue
		}
		switch {
		case u.BuilderBase():
			m.place(models.ArrayUnits2, e, u)
		case e.Kind == models.KindSiege:
			m.place(models.ArraySiegeMachines, e, u, models.ArraySiegeMachines, models.ArrayUnits, models.ArrayTroops)
		default:
			m.place(models.ArrayUnits, e, u, models.ArrayUnits, models.ArrayTroops)
		}
	}
}

func (m *merger) spells(units []Unit) {
	for _, u := range units {
		if m.filtered(u) {
			continue
		}
		e := m.lookup(u, m.cat.Spells)
		if e == nil {
			m.warn("no catalog spell named %q", u.Name)
			continue
		}
		array := models.ArraySpells
		if u.BuilderBase() {
			array = models.ArraySpells2
		}
		m.place(array, e, u)
	}
}

func (m *merger) equipment(units []Unit) {
	for _, u := range units {
		e := m.lookup(u, m.cat.Equipment)
		if e == nil {
			m.warn("no catalog equipment named %q", u.Name)
			continue
		}
		m.place(models.ArrayEquipment, e, u)
	}
}
