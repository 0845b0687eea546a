package progress

import (
	"github.com/spunky-sabin/clash-clone/internal/models"
)

// Supercharge accounts one building copy's supercharge track. Only real
// copies whose tier cap reaches the absolute max take part.
func Supercharge(e *models.Entity, inst Instance, tierCap int, res models.ResourceType) (completed, total Tally, ok bool) {
	track := e.SuperchargeTrack()
	if track == nil || inst.Virtual || tierCap != e.AbsoluteMax() {
		return completed, total, false
	}
	for l := 1; l <= track.Len(); l++ {
		step, found := TrackStep(track, l, res)
		if !found {
			continue
		}
		total.Add(step)
		if l <= inst.Supercharge {
			completed.Add(step)
		}
	}
	if inst.SuperchargeRunning && inst.Supercharge+1 <= track.Len() {
		if step, found := TrackStep(track, inst.Supercharge+1, res); found {
			completed.AddCost(step)
		}
	}
	return completed, total, true
}
