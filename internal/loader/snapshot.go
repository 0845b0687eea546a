package loader

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"

	"github.com/spunky-sabin/clash-clone/internal/models"
)

// ErrEmptySnapshot is returned when a player export carries no entity arrays
var ErrEmptySnapshot = errors.New("snapshot holds no entity arrays")

// LoadSnapshot reads a player export from disk
func LoadSnapshot(path string) (*models.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	snap, err := ParseSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return snap, nil
}

// ParseSnapshot converts a player export (or an API-merged export) into a
// Snapshot. The record source is resolved here, once.
func ParseSnapshot(data []byte) (*models.Snapshot, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid snapshot json")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New("snapshot must be a json object")
	}

	snap := models.NewSnapshot()
	snap.Tag = root.Get("tag").String()
	snap.Name = root.Get("name").String()
	snap.Timestamp = root.Get("timestamp").Int()
	snap.Builders = int(root.Get("builders").Int())
	snap.WeaponLevel = int(root.Get("villageObject.weaponLevel").Int())

	apiArrays := make(map[string]bool)
	for _, name := range models.AllArrays() {
		arr := root.Get(name)
		if !arr.IsArray() {
			continue
		}
		var list []models.PlayerInstance
		arr.ForEach(func(_, item gjson.Result) bool {
			inst := parseInstance(item)
			if inst.API != nil {
				apiArrays[name] = true
			}
			list = append(list, inst)
			return true
		})
		snap.Arrays[name] = list
	}

	if len(snap.Arrays) == 0 {
		return nil, ErrEmptySnapshot
	}

	if len(apiArrays) > 0 {
		src := models.FromLiveAPI{
			Arrays:     apiArrays,
			PlayerName: root.Get("_apiMeta.apiPlayerName").String(),
			TownHall:   int(root.Get("_apiMeta.apiTownHallLevel").Int()),
			Filtered: models.FilterStats{
				SuperTroops:    int(root.Get("_apiMeta.filtered.superTroops").Int()),
				SeasonalTroops: int(root.Get("_apiMeta.filtered.seasonalTroops").Int()),
			},
		}
		if ms := root.Get("_apiMeta.mergedAt").Int(); ms > 0 {
			src.FetchedAt = time.UnixMilli(ms).UTC()
		}
		snap.Source = src
	}

	return snap, nil
}

func parseInstance(item gjson.Result) models.PlayerInstance {
	inst := models.PlayerInstance{
		EntityID:    int(firstOf(item, "data", "id").Int()),
		Name:        item.Get("name").String(),
		Level:       int(firstOf(item, "lvl", "level").Int()),
		Count:       int(item.Get("cnt").Int()),
		Timer:       item.Get("timer").Int(),
		Supercharge: int(item.Get("supercharge").Int()),
		Boostable:   item.Get("boostable").Bool(),
		Seasonal:    item.Get("seasonal").Bool(),
	}

	item.Get("types").ForEach(func(_, t gjson.Result) bool {
		ct := models.CraftedType{ID: int(t.Get("data").Int())}
		t.Get("modules").ForEach(func(_, m gjson.Result) bool {
			ct.Modules = append(ct.Modules, models.CraftedModuleState{
				ID:    int(m.Get("data").Int()),
				Level: int(firstOf(m, "lvl", "level").Int()),
				Timer: m.Get("timer").Int(),
			})
			return true
		})
		inst.Types = append(inst.Types, ct)
		return true
	})

	if api := item.Get("_apiData"); api.IsObject() {
		inst.API = &models.APIMetadata{
			Name:            api.Get("name").String(),
			Village:         api.Get("village").String(),
			MaxLevel:        int(api.Get("maxLevel").Int()),
			Boostable:       api.Get("boostable").Bool(),
			Seasonal:        api.Get("seasonal").Bool(),
			UnlockBuilding:  api.Get("unlockBuilding").String(),
			UnlockHallLevel: int(api.Get("unlockHallLevel").Int()),
			HallMaxLevel:    int(api.Get("hallMaxLevel").Int()),
		}
	}

	return inst
}

// firstOf returns the first of the given keys present on the object
func firstOf(item gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if r := item.Get(k); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}
