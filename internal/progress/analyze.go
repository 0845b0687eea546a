package progress

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spunky-sabin/clash-clone/internal/models"
)

// ErrTierUndetectable is returned when the snapshot holds no hall to read the tier from
var ErrTierUndetectable = errors.New("cannot analyze: hall level not found in snapshot")

var errNoInput = errors.New("analyze: snapshot and catalog are required")

// Options tunes one analysis
type Options struct {
	Village    models.Village
	Builders   int
	WallLimits map[int]int

	// Categories restricts the report to the listed dashboard categories.
	// Empty means all of them.
	Categories []models.ProgressCategory
}

// OptionsFromConfig maps a tracker config onto analysis options
func OptionsFromConfig(cfg *models.Config) Options {
	opts := Options{Village: cfg.VillageOrDefault(), Categories: cfg.ProgressCategories()}
	if cfg != nil {
		opts.Builders = cfg.Builders
		opts.WallLimits = cfg.WallLimits
	}
	return opts
}

// DetectTier returns the hall level of the snapshot at now, 0 when absent.
// A hall upgrade whose countdown ran out since the snapshot counts as done.
func DetectTier(snap *models.Snapshot, village models.Village, now time.Time) int {
	if snap == nil {
		return 0
	}
	rec := NewReconciler(snap.Timestamp, now)
	hall := models.HallID(village)
	tier := 0
	for _, array := range buildingPolicy.Arrays(village) {
		for _, p := range snap.Arrays[array] {
			if p.EntityID != hall {
				continue
			}
			if l := rec.CheckCompletion(p.Level, p.Timer).Level; l > tier {
				tier = l
			}
		}
	}
	return tier
}

// Analyze computes the progress report of a snapshot at the given tier.
// It reads its inputs only and is safe to call concurrently.
func Analyze(snap *models.Snapshot, cat *models.Catalog, tier int, now time.Time, opts Options) (*Report, error) {
	if tier <= 0 {
		return nil, ErrTierUndetectable
	}
	if snap == nil || cat == nil {
		return nil, errNoInput
	}

	village := opts.Village
	if village == "" {
		village = models.Home
	}
	builders := opts.Builders
	if builders <= 0 {
		builders = snap.BuilderCount()
	}

	a := &analysis{
		snap:      snap,
		cat:       cat,
		tier:      tier,
		village:   village,
		rec:       NewReconciler(snap.Timestamp, now),
		source:    snap.ResolvedSource(),
		completed: make(map[models.ProgressCategory]*Tally),
		total:     make(map[models.ProgressCategory]*Tally),
		report: &Report{
			ID:          uuid.NewString(),
			Tag:         snap.Tag,
			Name:        snap.Name,
			Village:     village,
			Tier:        tier,
			GeneratedAt: now,
			Builders:    builders,
			Excluded:    make(map[string]int),
		},
	}
	if snap.Timestamp > 0 {
		a.report.SnapshotAt = time.Unix(snap.Timestamp, 0).UTC()
	}
	a.report.Source = a.source.SourceName()
	if live, ok := a.source.(models.FromLiveAPI); ok {
		a.report.APIArrays = live.APIArrays()
	}

	a.structures()
	a.walls(ResolveWallLimits(opts.WallLimits, cat))
	for _, pol := range policies {
		if !pol.MultiSlot {
			a.singles(pol)
		}
	}
	a.crafted()
	a.checkRecords()

	a.finish(builders, opts.Categories)
	return a.report, nil
}

type analysis struct {
	snap    *models.Snapshot
	cat     *models.Catalog
	tier    int
	village models.Village
	rec     Reconciler
	source  models.RecordSource

	completed map[models.ProgressCategory]*Tally
	total     map[models.ProgressCategory]*Tally
	report    *Report
}

func (a *analysis) add(cat models.ProgressCategory, completed, total Tally) {
	if a.completed[cat] == nil {
		a.completed[cat] = &Tally{}
		a.total[cat] = &Tally{}
	}
	a.completed[cat].Merge(completed)
	a.total[cat].Merge(total)
}

func (a *analysis) warn(format string, args ...any) {
	a.report.Warnings = append(a.report.Warnings, fmt.Sprintf(format, args...))
}

func (a *analysis) candidate(pol *EntityKindPolicy, e *models.Entity, rec *models.PlayerInstance) *Candidate {
	return &Candidate{
		Entity:  e,
		Record:  rec,
		Tier:    a.tier,
		Village: a.village,
		Snap:    a.snap,
		Source:  a.source,
		Policy:  pol,
	}
}

// structures accounts buildings, traps, the hall weapon and supercharges
func (a *analysis) structures() {
	own := ResolveOwnership(a.snap, a.cat, a.village, a.tier, a.rec)
	a.report.Warnings = append(a.report.Warnings, own.Warnings...)
	hallID := models.HallID(a.village)

	for _, pol := range policies {
		if !pol.MultiSlot {
			continue
		}
		for _, e := range a.cat.Kind(pol.Kind) {
			if e.IsWall() || e.ID == models.CraftingStationID {
				continue
			}
			if reason := pol.Admit(a.candidate(pol, e, nil)); reason != "" {
				a.report.Excluded[reason]++
				continue
			}
			if own.Allowed(e.ID) == 0 {
				a.report.Excluded["allowed"]++
				continue
			}
			tierCap := TierCap(e, a.tier)
			if tierCap == 0 {
				a.report.Excluded["tierCap"]++
				continue
			}

			res := pol.Resource(e)
			if e.ID != hallID {
				for _, inst := range own.Counted(e.ID) {
					c, t := LadderTotals(e, pol.Convention, res, inst.Level, tierCap, inst.Upgrading() && !inst.SuperchargeRunning)
					a.add(pol.Progress, c, t)
					if sc, st, ok := Supercharge(e, inst, tierCap, res); ok {
						a.add(models.ProgressSupercharge, sc, st)
					}
				}
			}
			if extra := len(own.Instances(e.ID)) - len(own.Counted(e.ID)); extra > 0 {
				a.warn("%d %s beyond the %d allowed at tier %d left out", extra, e.Name, own.Allowed(e.ID), a.tier)
			}
			a.report.Rows = append(a.report.Rows, multiSlotRows(e, pol, own.Sorted(e.ID), tierCap)...)

			if e.ID == hallID {
				if track := WeaponTrack(a.cat, a.village, a.tier); track != nil {
					c, t := Weapon(track, a.snap.WeaponLevel)
					a.add(models.ProgressStructures, c, t)
					a.report.Rows = append(a.report.Rows, weaponRow(e, track, a.snap.WeaponLevel))
				}
			}
		}
	}
}

func (a *analysis) walls(limits map[int]int) {
	sum, ok := Walls(a.snap, a.cat, a.village, a.tier, limits, a.rec)
	if !ok {
		return
	}
	a.add(models.ProgressWalls, sum.Completed, sum.Total)
	a.report.Rows = append(a.report.Rows, sum.Rows()...)
}

// singles accounts a kind owned at most once per entity
func (a *analysis) singles(pol *EntityKindPolicy) {
	for _, e := range a.cat.Kind(pol.Kind) {
		rec := a.match(pol, e)
		c := a.candidate(pol, e, rec)
		if reason := pol.Admit(c); reason != "" {
			a.report.Excluded[reason]++
			continue
		}
		tierCap := EffectiveCap(c)

		level, remaining := 0, int64(0)
		if rec != nil {
			done := a.rec.CheckCompletion(rec.Level, rec.Timer)
			level, remaining = done.Level, done.Remaining
		}

		// Epic equipment stays listed before the hall can reach it
		if pol.Kind == models.KindEquipment && level == 0 && (a.tier < e.RequiredTier || tierCap == 0) {
			a.report.Rows = append(a.report.Rows, singleRow(e, pol, level, remaining, tierCap, models.StatusLocked))
			continue
		}

		comp, tot := LadderTotals(e, pol.Convention, pol.Resource(e), level, tierCap, remaining > 0)
		a.add(pol.Progress, comp, tot)

		status := deriveStatus(statusInput{
			Level:     level,
			Cap:       tierCap,
			AbsMax:    e.AbsoluteMax(),
			Upgrading: remaining > 0,
		})
		a.report.Rows = append(a.report.Rows, singleRow(e, pol, level, remaining, tierCap, status))
	}
}

// match finds the snapshot record of an entity, by id first and then by name
func (a *analysis) match(pol *EntityKindPolicy, e *models.Entity) *models.PlayerInstance {
	arrays := pol.Arrays(a.village)
	for _, name := range arrays {
		list := a.snap.Arrays[name]
		for i := range list {
			if list[i].EntityID == e.ID {
				return &list[i]
			}
		}
	}
	want := strings.TrimSpace(e.Name)
	for _, name := range arrays {
		list := a.snap.Arrays[name]
		for i := range list {
			if list[i].EntityID == 0 && strings.EqualFold(strings.TrimSpace(recordName(list[i])), want) {
				return &list[i]
			}
		}
	}
	return nil
}

func recordName(p models.PlayerInstance) string {
	if p.Name != "" {
		return p.Name
	}
	if p.API != nil {
		return p.API.Name
	}
	return ""
}

func (a *analysis) crafted() {
	for _, d := range CraftedDefenses(a.snap, a.cat, a.village, a.tier, a.rec) {
		c, t := d.Totals()
		a.add(models.ProgressCrafted, c, t)
		a.report.Rows = append(a.report.Rows, d.Rows()...)
	}
}

// checkRecords reports records of the single-copy arrays that match nothing
// in the catalog
func (a *analysis) checkRecords() {
	seen := make(map[string]bool)
	all := append([]*models.Entity{}, a.cat.Troops...)
	for _, list := range [][]*models.Entity{a.cat.Spells, a.cat.Heroes, a.cat.Pets, a.cat.Equipment, a.cat.Guardians} {
		all = append(all, list...)
	}

	for _, pol := range policies {
		if pol.MultiSlot {
			continue
		}
		for _, array := range pol.Arrays(a.village) {
			if seen[array] {
				continue
			}
			seen[array] = true
			for _, p := range a.snap.Arrays[array] {
				switch {
				case p.EntityID != 0:
					if a.cat.Entity(p.EntityID) == nil {
						a.warn("unknown entity id %d in %s", p.EntityID, array)
					}
				case models.FindByName(all, recordName(p)) == nil:
					a.warn("no catalog entry named %q in %s", recordName(p), array)
				}
			}
		}
	}
}

// divider spreads remaining time over builders for builder-driven categories
func divider(cat models.ProgressCategory, builders int) int {
	switch cat {
	case models.ProgressLab, models.ProgressPets:
		return 1
	}
	return builders
}

func tracksTime(cat models.ProgressCategory) bool {
	return cat != models.ProgressWalls && cat != models.ProgressEquipment
}

func (a *analysis) finish(builders int, only []models.ProgressCategory) {
	want := func(c models.ProgressCategory) bool {
		if len(only) == 0 {
			return true
		}
		for _, o := range only {
			if o == c {
				return true
			}
		}
		return false
	}

	for _, c := range models.AllProgressCategories() {
		if !want(c) {
			continue
		}
		var completed, total Tally
		if a.completed[c] != nil {
			completed, total = *a.completed[c], *a.total[c]
		}
		a.report.Categories = append(a.report.Categories, newCategory(c, completed, total, divider(c, builders), tracksTime(c)))
	}

	if len(only) > 0 {
		rows := a.report.Rows[:0]
		for _, r := range a.report.Rows {
			if want(r.Progress) {
				rows = append(rows, r)
			}
		}
		a.report.Rows = rows
	}
}
