package models

import (
	"testing"
)

func TestSnapshotEntriesPrefersFirstNonEmpty(t *testing.T) {
	s := NewSnapshot()
	s.Arrays[ArrayTroops] = []PlayerInstance{{EntityID: 4000000, Level: 3}}

	got := s.Entries(ArrayUnits, ArrayTroops)
	if len(got) != 1 || got[0].EntityID != 4000000 {
		t.Fatalf("expected troops fallback, got %+v", got)
	}

	s.Arrays[ArrayUnits] = []PlayerInstance{{EntityID: 4000001, Level: 1}}
	got = s.Entries(ArrayUnits, ArrayTroops)
	if got[0].EntityID != 4000001 {
		t.Errorf("expected units to win, got %d", got[0].EntityID)
	}
}

func TestSnapshotMaxLevel(t *testing.T) {
	s := NewSnapshot()
	s.Arrays[ArrayBuildings] = []PlayerInstance{
		{EntityID: 1000006, Level: 8},
		{EntityID: 1000006, Level: 11},
		{EntityID: TownHallID, Level: 12},
	}

	if got := s.MaxLevel(1000006, ArrayBuildings); got != 11 {
		t.Errorf("expected 11, got %d", got)
	}
	if got := s.MaxLevel(999, ArrayBuildings); got != 0 {
		t.Errorf("expected 0 for missing id, got %d", got)
	}
	if got := len(s.EntriesFor(ArrayBuildings, 1000006)); got != 2 {
		t.Errorf("expected 2 entries, got %d", got)
	}
}

func TestPlayerInstanceCopies(t *testing.T) {
	if got := (PlayerInstance{}).Copies(); got != 1 {
		t.Errorf("expected missing count to mean 1, got %d", got)
	}
	if got := (PlayerInstance{Count: 4}).Copies(); got != 4 {
		t.Errorf("expected 4, got %d", got)
	}
}

func TestSnapshotBuilderCountDefault(t *testing.T) {
	s := NewSnapshot()
	if got := s.BuilderCount(); got != DefaultBuilders {
		t.Errorf("expected default %d, got %d", DefaultBuilders, got)
	}
	s.Builders = 6
	if got := s.BuilderCount(); got != 6 {
		t.Errorf("expected 6, got %d", got)
	}
}

func TestRecordSource(t *testing.T) {
	s := &Snapshot{}
	if got := s.ResolvedSource().SourceName(); got != "export" {
		t.Errorf("expected nil source to resolve to export, got %q", got)
	}

	live := FromLiveAPI{Arrays: map[string]bool{ArrayHeroes: true, ArraySpells: true, ArrayPets: false}}
	s.Source = live
	if !s.ResolvedSource().FromAPI(ArrayHeroes) {
		t.Error("expected heroes to be API-sourced")
	}
	if s.ResolvedSource().FromAPI(ArrayBuildings) {
		t.Error("expected buildings to stay export-sourced")
	}

	arrays := live.APIArrays()
	if len(arrays) != 2 || arrays[0] != ArrayHeroes || arrays[1] != ArraySpells {
		t.Errorf("expected sorted [heroes spells], got %v", arrays)
	}
}
