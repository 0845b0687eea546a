// Package apimerge folds a live game API player record into a player export
package apimerge

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// Unit is one hero, troop, spell or equipment entry of an API player
type Unit struct {
	Name           string
	Level          int
	MaxLevel       int
	Village        string
	Boostable      bool
	Seasonal       bool
	UnlockBuilding string
}

// BuilderBase reports whether the unit belongs to the builder base
func (u Unit) BuilderBase() bool {
	return u.Village == "builderBase"
}

// Player is the subset of an API player record the merge reads
type Player struct {
	Tag       string
	Name      string
	TownHall  int
	Heroes    []Unit
	Troops    []Unit
	Spells    []Unit
	Equipment []Unit
}

// LoadPlayer reads an API player record from disk
func LoadPlayer(path string) (*Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read player: %w", err)
	}
	return ParsePlayer(data)
}

// ParsePlayer parses an API player record
func ParsePlayer(data []byte) (*Player, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid player json")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New("player must be a json object")
	}

	return &Player{
		Tag:       root.Get("tag").String(),
		Name:      root.Get("name").String(),
		TownHall:  int(root.Get("townHallLevel").Int()),
		Heroes:    parseUnits(root.Get("heroes")),
		Troops:    parseUnits(root.Get("troops")),
		Spells:    parseUnits(root.Get("spells")),
		Equipment: parseUnits(root.Get("heroEquipment")),
	}, nil
}

func parseUnits(arr gjson.Result) []Unit {
	var out []Unit
	arr.ForEach(func(_, u gjson.Result) bool {
		out = append(out, Unit{
			Name:           u.Get("name").String(),
			Level:          int(u.Get("level").Int()),
			MaxLevel:       int(u.Get("maxLevel").Int()),
			Village:        u.Get("village").String(),
			Boostable:      u.Get("boostable").Bool(),
			Seasonal:       u.Get("seasonal").Bool(),
			UnlockBuilding: u.Get("unlockBuilding").String(),
		})
		return true
	})
	return out
}
