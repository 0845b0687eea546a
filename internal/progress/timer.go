package progress

import "time"

// Reconciler projects countdowns stored in a snapshot onto the current time
type Reconciler struct {
	SnapshotAt int64 // unix seconds, 0 when the snapshot carried no timestamp
	Now        int64
}

// NewReconciler returns a reconciler for a snapshot taken at snapshotTS
func NewReconciler(snapshotTS int64, now time.Time) Reconciler {
	return Reconciler{SnapshotAt: snapshotTS, Now: now.Unix()}
}

// RealRemaining returns the seconds left on a stored countdown now. Without
// a snapshot timestamp the stored value is trusted as is.
func (r Reconciler) RealRemaining(stored int64) int64 {
	if stored <= 0 {
		return 0
	}
	if r.SnapshotAt == 0 {
		return stored
	}
	elapsed := r.Now - r.SnapshotAt
	if elapsed < 0 {
		elapsed = 0
	}
	if remaining := stored - elapsed; remaining > 0 {
		return remaining
	}
	return 0
}

// Completion is a level after fast-forwarding an elapsed upgrade
type Completion struct {
	Level     int
	Remaining int64
	Completed bool
}

// CheckCompletion advances level by one when its stored countdown has run
// out since the snapshot. It never mutates its inputs.
func (r Reconciler) CheckCompletion(level int, stored int64) Completion {
	if stored <= 0 {
		return Completion{Level: level}
	}
	remaining := r.RealRemaining(stored)
	if remaining <= 0 {
		return Completion{Level: level + 1, Completed: true}
	}
	return Completion{Level: level, Remaining: remaining}
}
