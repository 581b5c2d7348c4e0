package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dgallion1/docmap/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

type buildRequest struct {
	SiteFile   string `json:"site_file"`
	ProjectDir string `json:"project_dir"`
	OutputDir  string `json:"output_dir"`
}

// handleSubmitBuild queues a site build job.
func (s *Server) handleSubmitBuild(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.SiteFile == "" {
		req.SiteFile = s.cfg.SiteFile
	}
	if req.ProjectDir == "" {
		req.ProjectDir = s.cfg.ProjectDir
	}
	if req.OutputDir == "" {
		jsonError(w, "output_dir is required", http.StatusBadRequest)
		return
	}

	job := pipeline.NewJob(req.ProjectDir, req.SiteFile, req.OutputDir)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/builds/%s", job.ID),
	})
}

// handleBuildStatus returns the state of a queued or running build.
func (s *Server) handleBuildStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "unknown job: "+jobID, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
