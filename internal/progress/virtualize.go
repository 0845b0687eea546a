package progress

import (
	"fmt"
	"sort"

	"github.com/spunky-sabin/clash-clone/internal/models"
)

// Instance is one resolved copy of a multi-slot entity after timers have
// been reconciled and merge credits expanded
type Instance struct {
	EntityID    int
	Level       int
	Remaining   int64
	Supercharge int

	// SuperchargeRunning is set when the running timer belongs to the
	// supercharge track rather than the level ladder.
	SuperchargeRunning bool

	// Virtual copies are credited by a merge or absorption and are never
	// independently owned. Unbuilt copies pad the allowed count.
	Virtual       bool
	Unbuilt       bool
	FastForwarded bool
}

// Upgrading reports whether a timer is still running on the instance
func (i Instance) Upgrading() bool {
	return i.Remaining > 0
}

// Ownership is the resolved set of multi-slot instances for one village
type Ownership struct {
	byID     map[int][]Instance
	allowed  map[int]int
	order    []int
	Warnings []string
}

// Instances returns every resolved copy of an entity, in resolution order
func (o *Ownership) Instances(id int) []Instance {
	return o.byID[id]
}

// Counted returns the copies that take part in accounting, the first
// allowed ones
func (o *Ownership) Counted(id int) []Instance {
	list := o.byID[id]
	if n := o.allowed[id]; len(list) > n {
		return list[:n]
	}
	return list
}

// Allowed returns how many copies the hall permits
func (o *Ownership) Allowed(id int) int {
	return o.allowed[id]
}

// Sorted returns the counted copies ordered by ascending level, keeping
// resolution order among equal levels
func (o *Ownership) Sorted(id int) []Instance {
	list := append([]Instance(nil), o.Counted(id)...)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Level < list[j].Level
	})
	return list
}

func (o *Ownership) add(inst Instance) {
	if _, seen := o.byID[inst.EntityID]; !seen {
		o.order = append(o.order, inst.EntityID)
	}
	o.byID[inst.EntityID] = append(o.byID[inst.EntityID], inst)
}

// ResolveOwnership expands the snapshot's buildings and traps into
// per-copy instances. Walls are left to their own accounting. Real records
// come first in snapshot order, then the components credited by merged
// defenses, then unbuilt padding up to the allowed count. From the
// absorption tier Eagle Artillery is credited as fully upgraded.
func ResolveOwnership(snap *models.Snapshot, cat *models.Catalog, village models.Village, tier int, rec Reconciler) *Ownership {
	o := &Ownership{
		byID:    make(map[int][]Instance),
		allowed: make(map[int]int),
	}

	var arrays []string
	for _, p := range policies {
		if p.MultiSlot {
			arrays = append(arrays, p.Arrays(village)...)
		}
	}

	for _, array := range arrays {
		for _, p := range snap.Arrays[array] {
			e := cat.Entity(p.EntityID)
			if e == nil {
				o.Warnings = append(o.Warnings, fmt.Sprintf("unknown entity id %d in %s", p.EntityID, array))
				continue
			}
			if e.IsWall() {
				continue
			}
			inst := reconcileInstance(e, p, rec)
			for n := 0; n < p.Copies(); n++ {
				o.add(inst)
			}
		}
	}

	o.creditMerges(cat)

	for _, e := range multiSlotEntities(cat, village) {
		allowed := AllowedCount(cat, e.ID, village, tier)
		o.allowed[e.ID] = allowed
		for n := len(o.byID[e.ID]); n < allowed; n++ {
			o.add(Instance{EntityID: e.ID, Unbuilt: true})
		}
	}

	if village == models.Home && tier >= AbsorptionTier {
		o.absorb(cat.Entity(models.EagleArtilleryID))
	}
	return o
}

// reconcileInstance fast-forwards a stored record to now. A timer running
// at the absolute max belongs to the supercharge track.
func reconcileInstance(e *models.Entity, p models.PlayerInstance, rec Reconciler) Instance {
	inst := Instance{EntityID: e.ID, Level: p.Level, Supercharge: p.Supercharge}
	if p.Timer <= 0 {
		return inst
	}

	absMax := e.AbsoluteMax()
	sc := SuperchargeState{Track: e.SuperchargeTrack(), Level: p.Supercharge}
	if p.Level >= absMax && sc.Remaining() {
		c := rec.CheckCompletion(p.Supercharge, p.Timer)
		inst.Supercharge = c.Level
		inst.Remaining = c.Remaining
		inst.SuperchargeRunning = c.Remaining > 0
		inst.FastForwarded = c.Completed
		return inst
	}

	c := rec.CheckCompletion(p.Level, p.Timer)
	inst.Level = c.Level
	if absMax > 0 && inst.Level > absMax {
		inst.Level = absMax
	}
	inst.Remaining = c.Remaining
	inst.FastForwarded = c.Completed
	return inst
}

// creditMerges adds the components consumed by every built merged defense
func (o *Ownership) creditMerges(cat *models.Catalog) {
	for _, id := range append([]int(nil), o.order...) {
		e := cat.Entity(id)
		if !e.IsMerged() {
			continue
		}
		for _, inst := range o.byID[id] {
			if inst.Level <= 0 && !inst.Upgrading() {
				continue
			}
			for _, req := range e.MergeRequirements() {
				qty := req.Quantity
				if qty <= 0 {
					qty = 1
				}
				for n := 0; n < qty; n++ {
					o.add(Instance{EntityID: req.EntityID, Level: req.Level, Virtual: true})
				}
			}
		}
	}
}

func (o *Ownership) absorb(e *models.Entity) {
	if e == nil {
		return
	}
	list := o.byID[e.ID]
	for i := range list {
		list[i] = Instance{
			EntityID: e.ID,
			Level:    e.AbsoluteMax(),
			Virtual:  true,
		}
	}
}

func multiSlotEntities(cat *models.Catalog, village models.Village) []*models.Entity {
	var out []*models.Entity
	for _, p := range policies {
		if !p.MultiSlot {
			continue
		}
		for _, e := range cat.Kind(p.Kind) {
			if e.Village == village && !e.IsWall() {
				out = append(out, e)
			}
		}
	}
	return out
}
