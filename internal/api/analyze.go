package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spunky-sabin/clash-clone/internal/converter"
	"github.com/spunky-sabin/clash-clone/internal/loader"
	"github.com/spunky-sabin/clash-clone/internal/models"
	"github.com/spunky-sabin/clash-clone/internal/progress"
)

// ErrBadRequest marks failures caused by the request body
var ErrBadRequest = errors.New("bad request")

// Prepared is a decoded analyze request, ready to run at any instant
type Prepared struct {
	Snapshot *models.Snapshot
	// Tier is a fixed hall level, zero to detect it at each run
	Tier    int
	Options progress.Options
	// Now is the fixed reconciliation instant, zero to follow the clock
	Now time.Time
}

// Prepare validates an analyze request and parses its snapshot
func Prepare(req converter.AnalyzeRequest) (*Prepared, error) {
	if raw := bytes.TrimSpace(req.Snapshot); len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%w: snapshot is required", ErrBadRequest)
	}
	snap, err := loader.ParseSnapshot(req.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	village, ok := models.ParseVillage(req.Village)
	if !ok {
		return nil, fmt.Errorf("%w: unknown village %q", ErrBadRequest, req.Village)
	}

	p := &Prepared{
		Snapshot: snap,
		Tier:     req.Tier,
		Options:  progress.Options{Village: village, Builders: req.Builders},
	}
	if req.Now != "" {
		p.Now, err = time.Parse(time.RFC3339, req.Now)
		if err != nil {
			return nil, fmt.Errorf("%w: now must be RFC3339: %v", ErrBadRequest, err)
		}
	}
	return p, nil
}

// Run analyzes the prepared snapshot. A fixed Now wins over the clock.
func (p *Prepared) Run(cat *models.Catalog, clock time.Time) (*progress.Report, error) {
	now := clock
	if !p.Now.IsZero() {
		now = p.Now
	}
	tier := p.Tier
	if tier <= 0 {
		tier = progress.DetectTier(p.Snapshot, p.Options.Village, now)
	}
	return progress.Analyze(p.Snapshot, cat, tier, now, p.Options)
}

// StatusFor maps an analyze or merge error to its HTTP status
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, progress.ErrTierUndetectable):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// handleAnalyze returns the progress report of the posted snapshot
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req converter.AnalyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := Prepare(req)
	if err != nil {
		respondError(w, StatusFor(err), err.Error())
		return
	}
	report, err := p.Run(s.catalog, s.clock())
	if err != nil {
		respondError(w, StatusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, converter.ReportToDTO(report, r.URL.Query().Get("rows") != "false"))
}
