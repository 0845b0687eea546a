package api

import (
	"net/http"

	"github.com/spunky-sabin/clash-clone/internal/apimerge"
	"github.com/spunky-sabin/clash-clone/internal/converter"
	"github.com/spunky-sabin/clash-clone/internal/loader"
)

// handleMerge folds a live API player into the posted export
func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	var req converter.MergeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Snapshot) == 0 || len(req.Player) == 0 {
		respondError(w, http.StatusBadRequest, "snapshot and player are required")
		return
	}

	snap, err := loader.ParseSnapshot(req.Snapshot)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	player, err := apimerge.ParsePlayer(req.Player)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := apimerge.Merge(snap, player, s.catalog, s.clock())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to merge player")
		return
	}
	data, err := converter.SnapshotToJSON(res.Snapshot)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to encode snapshot")
		return
	}

	respondJSON(w, http.StatusOK, converter.MergeResponse{
		Snapshot: data,
		Source:   converter.SourceToDTO(res.Source),
		Warnings: res.Warnings,
	})
}
