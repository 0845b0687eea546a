package progress

import (
	"math"
	"time"

	"github.com/spunky-sabin/clash-clone/internal/models"
)

// CategoryState distinguishes a finished category from one with nothing to do
type CategoryState string

const (
	StateEmpty      CategoryState = "empty"
	StateInProgress CategoryState = "in_progress"
	StateComplete   CategoryState = "complete"
)

// CategoryProgress is the dashboard view of one progress category
type CategoryProgress struct {
	Category models.ProgressCategory

	CompletedWeighted int64
	TotalWeighted     int64
	Percent           int
	ExactPercent      float64

	TracksTime    bool
	CompletedTime int64
	TotalTime     int64
	RemainingTime int64
	Divider       int

	Completed map[models.ResourceType]int64
	Total     map[models.ResourceType]int64

	State CategoryState
}

// DisplayPercent returns the exact percentage floored to one decimal
func (c CategoryProgress) DisplayPercent() float64 {
	return math.Floor(c.ExactPercent*10) / 10
}

// RemainingPerBuilder returns the remaining time spread over the divider
func (c CategoryProgress) RemainingPerBuilder() int64 {
	if c.Divider <= 1 {
		return c.RemainingTime
	}
	return c.RemainingTime / int64(c.Divider)
}

// Remaining returns the raw amount still to spend per resource
func (c CategoryProgress) Remaining() map[models.ResourceType]int64 {
	out := make(map[models.ResourceType]int64)
	for r, total := range c.Total {
		if left := total - c.Completed[r]; left > 0 {
			out[r] = left
		}
	}
	return out
}

// PercentOf returns floor(100*completed/total) clamped to [0,100], and 0
// for an empty total
func PercentOf(completed, total int64) (int, float64) {
	if total <= 0 {
		return 0, 0
	}
	exact := float64(completed) / float64(total) * 100
	if exact < 0 {
		exact = 0
	}
	if exact > 100 {
		exact = 100
	}
	return int(math.Floor(exact)), exact
}

func newCategory(cat models.ProgressCategory, completed, total Tally, divider int, tracksTime bool) CategoryProgress {
	c := CategoryProgress{
		Category:          cat,
		CompletedWeighted: completed.Weighted,
		TotalWeighted:     total.Weighted,
		TracksTime:        tracksTime,
		Divider:           divider,
		Completed:         completed.ByResource,
		Total:             total.ByResource,
	}
	if c.Completed == nil {
		c.Completed = map[models.ResourceType]int64{}
	}
	if c.Total == nil {
		c.Total = map[models.ResourceType]int64{}
	}
	if tracksTime {
		c.CompletedTime = completed.Time
		c.TotalTime = total.Time
		if left := total.Time - completed.Time; left > 0 {
			c.RemainingTime = left
		}
	}
	c.Percent, c.ExactPercent = PercentOf(c.CompletedWeighted, c.TotalWeighted)

	switch {
	case c.TotalWeighted <= 0:
		c.State = StateEmpty
	case c.CompletedWeighted >= c.TotalWeighted:
		c.State = StateComplete
	default:
		c.State = StateInProgress
	}
	return c
}

// UpgradeInfo describes an upgrade that is running right now
type UpgradeInfo struct {
	To          int
	Supercharge bool
	Remaining   int64
	Total       int64
	Gems        int64
	Progress    int
	After       UpgradeList
}

// SectionTotals sums the normal upgrades left across every copy of an entity
type SectionTotals struct {
	Count    int
	Cost     models.Cost
	Weighted int64
	Time     int64
}

func (s *SectionTotals) addStep(st Step) {
	s.Count++
	s.Cost = s.Cost.Add(st.Cost)
	s.Weighted += st.Weighted()
	s.Time += st.Time
}

func (s *SectionTotals) addList(l UpgradeList) {
	for _, st := range l.Steps {
		s.addStep(st)
	}
}

// Row is one displayed instance
type Row struct {
	EntityID int
	Name     string
	Kind     models.EntityKind
	Category models.TableCategory
	Progress models.ProgressCategory

	Index int
	Of    int
	Count int

	Level       int
	MaxLevel    int
	AbsoluteMax int
	Status      models.Status
	Resource    models.ResourceType

	NextCost models.Cost
	NextTime int64

	Upgrade *UpgradeInfo
	Missing UpgradeList

	Supercharge    int
	SuperchargeMax int
	Merged         bool

	Parent         string
	ParentLevel    int
	MaxParentLevel int

	Section SectionTotals
}

// Report is the result of one analysis
type Report struct {
	ID          string
	Tag         string
	Name        string
	Village     models.Village
	Tier        int
	GeneratedAt time.Time
	SnapshotAt  time.Time
	Builders    int
	Source      string
	APIArrays   []string

	Categories []CategoryProgress
	Rows       []Row
	Warnings   []string

	// Excluded counts catalog entities left out, by the filter that rejected them
	Excluded map[string]int
}

// Category returns the named category, if it was computed
func (r *Report) Category(c models.ProgressCategory) (CategoryProgress, bool) {
	for _, cp := range r.Categories {
		if cp.Category == c {
			return cp, true
		}
	}
	return CategoryProgress{}, false
}

// RowsIn returns the rows of one table category in report order
func (r *Report) RowsIn(c models.TableCategory) []Row {
	var out []Row
	for _, row := range r.Rows {
		if row.Category == c {
			out = append(out, row)
		}
	}
	return out
}

// Upgrading returns the rows with a running timer
func (r *Report) Upgrading() []Row {
	var out []Row
	for _, row := range r.Rows {
		if row.Upgrade != nil {
			out = append(out, row)
		}
	}
	return out
}
