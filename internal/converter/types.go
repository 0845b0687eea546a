// Package converter provides conversions between engine results and their
// JSON wire shapes
package converter

import "encoding/json"

// AnalyzeRequest is the body of an analyze call over HTTP, websocket or Lambda
type AnalyzeRequest struct {
	Snapshot json.RawMessage `json:"snapshot"`
	Village  string          `json:"village,omitempty"`
	Builders int             `json:"builders,omitempty"`
	Tier     int             `json:"tier,omitempty"`

	// Now is an RFC3339 override of the reconciliation clock
	Now string `json:"now,omitempty"`
}

// MergeRequest is the body of a merge call
type MergeRequest struct {
	Snapshot json.RawMessage `json:"snapshot"`
	Player   json.RawMessage `json:"player"`
}

// MergeResponse carries the merged snapshot in export form
type MergeResponse struct {
	Snapshot json.RawMessage `json:"snapshot"`
	Source   SourceDTO       `json:"source"`
	Warnings []string        `json:"warnings,omitempty"`
}

// SourceDTO describes where the army records came from
type SourceDTO struct {
	Kind       string         `json:"kind"`
	Arrays     []string       `json:"arrays,omitempty"`
	PlayerName string         `json:"apiPlayerName,omitempty"`
	TownHall   int            `json:"apiTownHallLevel,omitempty"`
	MergedAt   int64          `json:"mergedAt,omitempty"`
	Filtered   map[string]int `json:"filtered,omitempty"`
}

// CostDTO is a price. Amount is set for plain resources, the ore fields for
// equipment.
type CostDTO struct {
	Resource string `json:"resource"`
	Amount   int64  `json:"amount,omitempty"`
	Shiny    int64  `json:"shinyOre,omitempty"`
	Glowy    int64  `json:"glowyOre,omitempty"`
	Starry   int64  `json:"starryOre,omitempty"`
}

// StepDTO is one missing level
type StepDTO struct {
	Level       int     `json:"level"`
	Cost        CostDTO `json:"cost"`
	Time        int64   `json:"time"`
	Supercharge bool    `json:"isSupercharge,omitempty"`
}

// UpgradeListDTO is a list of missing levels and their sums
type UpgradeListDTO struct {
	Steps      []StepDTO `json:"upgrades"`
	Cost       CostDTO   `json:"totalCost"`
	Time       int64     `json:"totalTime"`
	MaxedForTH bool      `json:"maxedForTH"`
}

// UpgradeDTO is a running upgrade
type UpgradeDTO struct {
	To            int            `json:"to"`
	Supercharge   bool           `json:"isSupercharge,omitempty"`
	Remaining     int64          `json:"remaining"`
	RemainingText string         `json:"remainingText"`
	Total         int64          `json:"total"`
	Gems          int64          `json:"gems"`
	Progress      int            `json:"progress"`
	After         UpgradeListDTO `json:"after"`
}

// SectionDTO sums the normal upgrades left for an entity group
type SectionDTO struct {
	Count    int     `json:"count"`
	Cost     CostDTO `json:"cost"`
	Weighted int64   `json:"weighted"`
	Time     int64   `json:"time"`
}

// RowDTO is one displayed instance
type RowDTO struct {
	EntityID       int            `json:"id"`
	Name           string         `json:"name"`
	Kind           string         `json:"kind"`
	Category       string         `json:"category"`
	Progress       string         `json:"progressCategory"`
	Index          int            `json:"index"`
	Of             int            `json:"of"`
	Count          int            `json:"count,omitempty"`
	Level          int            `json:"level"`
	MaxLevel       int            `json:"maxLevel"`
	AbsoluteMax    int            `json:"absoluteMax"`
	Status         string         `json:"status"`
	NextCost       *CostDTO       `json:"nextCost,omitempty"`
	NextTime       int64          `json:"nextTime,omitempty"`
	Upgrade        *UpgradeDTO    `json:"upgrade,omitempty"`
	Missing        UpgradeListDTO `json:"missing"`
	Supercharge    int            `json:"supercharge,omitempty"`
	SuperchargeMax int            `json:"superchargeMax,omitempty"`
	Merged         bool           `json:"merged,omitempty"`
	Parent         string         `json:"parent,omitempty"`
	ParentLevel    int            `json:"parentLevel,omitempty"`
	MaxParentLevel int            `json:"maxParentLevel,omitempty"`
	Section        SectionDTO     `json:"section"`
}

// CategoryDTO is the dashboard view of one category
type CategoryDTO struct {
	Category            string           `json:"category"`
	Percent             int              `json:"percent"`
	DisplayPercent      float64          `json:"displayPercent"`
	ExactPercent        float64          `json:"exactPercent"`
	CompletedWeighted   int64            `json:"completedWeighted"`
	TotalWeighted       int64            `json:"totalWeighted"`
	TracksTime          bool             `json:"tracksTime"`
	CompletedTime       int64            `json:"completedTime,omitempty"`
	TotalTime           int64            `json:"totalTime,omitempty"`
	RemainingTime       int64            `json:"remainingTime,omitempty"`
	RemainingPerBuilder int64            `json:"remainingPerBuilder,omitempty"`
	Divider             int              `json:"divider"`
	Remaining           map[string]int64 `json:"remaining"`
	State               string           `json:"state"`
}

// ReportDTO is the wire form of a progress report
type ReportDTO struct {
	ID          string         `json:"id"`
	Tag         string         `json:"tag"`
	Name        string         `json:"name"`
	Village     string         `json:"village"`
	Tier        int            `json:"tier"`
	GeneratedAt string         `json:"generatedAt"`
	SnapshotAt  string         `json:"snapshotAt,omitempty"`
	Builders    int            `json:"builders"`
	Source      string         `json:"source"`
	APIArrays   []string       `json:"apiArrays,omitempty"`
	Categories  []CategoryDTO  `json:"categories"`
	Rows        []RowDTO       `json:"rows,omitempty"`
	Warnings    []string       `json:"warnings,omitempty"`
	Excluded    map[string]int `json:"excluded,omitempty"`
}

// CountdownDTO is pushed once per tick to live watchers
type CountdownDTO struct {
	ReportID   string          `json:"reportId"`
	Now        string          `json:"now"`
	Upgrades   []CountdownItem `json:"upgrades"`
	Categories []CategoryDTO   `json:"categories"`
}

// CountdownItem is one running upgrade in a countdown
type CountdownItem struct {
	Name          string `json:"name"`
	Index         int    `json:"index"`
	Of            int    `json:"of"`
	From          int    `json:"from"`
	To            int    `json:"to"`
	Supercharge   bool   `json:"isSupercharge,omitempty"`
	Remaining     int64  `json:"remaining"`
	RemainingText string `json:"remainingText"`
	Gems          int64  `json:"gems"`
	Progress      int    `json:"progress"`
}

// ErrorDTO is the body of every failed call
type ErrorDTO struct {
	Error string `json:"error"`
}
