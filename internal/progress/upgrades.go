package progress

import (
	"math"

	"github.com/spunky-sabin/clash-clone/internal/models"
)

// SuperchargeState is an instance's position on its supercharge track
type SuperchargeState struct {
	Track *models.Track
	Level int
}

// Remaining reports whether supercharge levels are left to upgrade
func (s SuperchargeState) Remaining() bool {
	return s.Track != nil && s.Level < s.Track.Len()
}

// UpgradeList is an ordered run of level steps still to be done
type UpgradeList struct {
	Steps        []Step      `json:"upgrades"`
	Cost         models.Cost `json:"totalCost"`
	Time         int64       `json:"totalTime"`
	MaxedForTier bool        `json:"maxedForTH"`
}

// Count returns the number of steps in the list
func (u UpgradeList) Count() int {
	return len(u.Steps)
}

func (u *UpgradeList) push(s Step) {
	u.Steps = append(u.Steps, s)
	u.Cost = u.Cost.Add(s.Cost)
	u.Time += s.Time
}

// MissingLevels lists the level steps between cur and tierCap, followed by
// the supercharge steps once tierCap is the absolute max. When inFlight is set the
// step currently being upgraded is skipped.
func MissingLevels(e *models.Entity, conv Convention, res models.ResourceType, cur, tierCap int, sc SuperchargeState, inFlight bool) UpgradeList {
	var out UpgradeList

	start := cur + 1
	if inFlight {
		start = cur + 2
	}
	for l := start; l <= tierCap; l++ {
		if step, ok := CostToReach(e, l, conv, res); ok {
			out.push(step)
		}
	}

	absMax := e.AbsoluteMax()
	if sc.Track != nil && tierCap == absMax {
		first := 0
		switch {
		case !inFlight && cur >= tierCap:
			first = sc.Level + 1
		case !inFlight:
			first = 1
		case cur >= tierCap:
			// the running timer is a supercharge
			first = sc.Level + 2
		case cur+1 >= tierCap:
			first = sc.Level + 1
		}
		if first > 0 {
			for l := first; l <= sc.Track.Len(); l++ {
				if step, ok := TrackStep(sc.Track, l, res); ok {
					step.Supercharge = true
					out.push(step)
				}
			}
		}
	}

	out.MaxedForTier = cur >= tierCap && tierCap < absMax
	return out
}

// GemCost returns the gems needed to finish a countdown instantly
func GemCost(remaining int64) int64 {
	if remaining <= 0 {
		return 0
	}
	s := float64(remaining)
	var gems float64
	switch {
	case remaining <= 60:
		gems = 1
	case remaining <= 3600:
		gems = (20.0-1.0)/(3600.0-60.0)*(s-60) + 1
	case remaining <= 86400:
		gems = (260.0-20.0)/(86400.0-3600.0)*(s-3600) + 20
	default:
		gems = (1000.0-260.0)/(604800.0-86400.0)*(s-86400) + 260
	}
	return int64(math.Round(gems))
}

// UpgradeProgress returns how far a running upgrade is, as a floored
// percentage. An unknown total reports 0 and a finished countdown 100.
func UpgradeProgress(remaining, total int64) int {
	if total <= 0 {
		return 0
	}
	if remaining <= 0 {
		return 100
	}
	pct := math.Floor(float64(total-remaining) / float64(total) * 100)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(pct)
}
