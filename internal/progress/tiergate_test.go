package progress

import (
	"testing"

	"github.com/spunky-sabin/clash-clone/internal/models"
)

func TestTierCap(t *testing.T) {
	tower := &models.Entity{Levels: []models.LevelSpec{
		built(1, 2, 0, 0), built(2, 2, 0, 0), built(3, 4, 0, 0), built(4, 7, 0, 0),
	}}

	tests := []struct {
		tier int
		want int
	}{
		{1, 0},
		{2, 2},
		{5, 3},
		{7, 4},
		{15, 4},
	}
	for _, tt := range tests {
		if got := TierCap(tower, tt.tier); got != tt.want {
			t.Errorf("tier %d: expected cap %d, got %d", tt.tier, tt.want, got)
		}
	}
	if got := TierCap(nil, 10); got != 0 {
		t.Errorf("expected 0 for a nil entity, got %d", got)
	}
}

func TestAllowedCount(t *testing.T) {
	hall := hallEntity(10)
	unlock(hall, 2, 1000009, 1)
	unlock(hall, 4, 1000009, 1)
	unlock(hall, 8, 1000009, 2)
	cat := newCatalog(hall)

	tests := []struct {
		tier int
		want int
	}{
		{1, 0},
		{2, 1},
		{5, 2},
		{10, 4},
	}
	for _, tt := range tests {
		if got := AllowedCount(cat, 1000009, models.Home, tt.tier); got != tt.want {
			t.Errorf("tier %d: expected %d towers, got %d", tt.tier, tt.want, got)
		}
	}

	if got := AllowedCount(cat, models.TownHallID, models.Home, 1); got != 1 {
		t.Errorf("expected exactly one hall, got %d", got)
	}
	if got := AllowedCount(cat, 1000009, models.BuilderBase, 10); got != 0 {
		t.Errorf("expected 0 without a builder hall, got %d", got)
	}
}
