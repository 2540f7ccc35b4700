package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mkrol/bike-hunter/internal/observability"
	"github.com/mkrol/bike-hunter/internal/search"
	"github.com/mkrol/bike-hunter/internal/store"
)

type SearchRequest struct {
	Config *search.Profile `json:"config"`
	Mode   string          `json:"mode"`
}

// handleSearch accepts a search configuration and runs the pipeline in
// the background; the HTTP caller gets an immediate acknowledgement.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	mode, err := search.ParseMode(req.Mode)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile := s.defaults
	if req.Config != nil {
		profile = *req.Config
	}
	if err := profile.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.startSearch(profile, mode)

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"message": "Search started",
		"mode":    string(mode),
		"config":  profile,
	})
}

// handleAutoSearch runs a quick search with the default profile; meant
// for cron-style triggers.
func (s *Server) handleAutoSearch(w http.ResponseWriter, r *http.Request) {
	s.startSearch(s.defaults, search.ModeQuick)

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"message": "Auto search started",
		"config":  s.defaults,
	})
}

func (s *Server) startSearch(profile search.Profile, mode search.Mode) {
	// Detached from the request context: the search outlives the HTTP
	// exchange.
	go func() {
		if _, err := s.service.Run(context.Background(), profile, mode); err != nil {
			slog.Error("background search failed", "mode", string(mode), "error", err)
		}
	}()
}

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	batches, err := s.store.ListRecent(limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list results: "+err.Error())
		return
	}
	if batches == nil {
		batches = []store.BatchInfo{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"recent_searches": batches,
	})
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	batch, err := s.store.Get(filename)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "File not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to read result: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, batch)
}

func (s *Server) handleCleanResults(w http.ResponseWriter, r *http.Request) {
	keepDays := 30
	if v := r.URL.Query().Get("keep_days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "keep_days must be a positive integer")
			return
		}
		keepDays = parsed
	}

	deleted, remaining, err := s.store.DeleteOlderThan(keepDays)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to clean results: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "cleaned",
		"deleted_files":   deleted,
		"remaining_files": remaining,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute stats: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"storage": stats,
		"runtime": observability.Snapshot(),
	})
}
