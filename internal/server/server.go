package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cwbudde/curvefit/loss"
	"github.com/cwbudde/curvefit/models"
)

// Server represents the HTTP server
type Server struct {
	jobManager *JobManager
	addr       string
	server     *http.Server
}

// NewServer creates a new HTTP server
func NewServer(addr string) *Server {
	return &Server{
		jobManager: NewJobManager(),
		addr:       addr,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Register API routes
	mux.HandleFunc("/api/v1/fits", s.handleFits)
	mux.HandleFunc("/api/v1/fits/", s.handleFitsWithID)
	mux.HandleFunc("/api/v1/models", s.handleListModels)
	mux.HandleFunc("/api/v1/losses", s.handleListLosses)

	// Wrap with middleware
	handler := s.loggingMiddleware(s.corsMiddleware(mux))

	s.server = &http.Server{
		Addr:    s.addr,
		Handler: handler,
	}

	slog.Info("Starting HTTP server", "addr", s.addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down HTTP server")
	if running := s.jobManager.GetRunningJobs(); len(running) > 0 {
		slog.Warn("Abandoning running fit jobs", "count", len(running))
	}
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// handleFits handles /api/v1/fits
func (s *Server) handleFits(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateFit(w, r)
	case http.MethodGet:
		s.handleListFits(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleFitsWithID handles /api/v1/fits/:id/*
func (s *Server) handleFitsWithID(w http.ResponseWriter, r *http.Request) {
	// Parse job ID from path
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/fits/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		http.Error(w, "Job ID required", http.StatusBadRequest)
		return
	}

	jobID := parts[0]

	// Route based on subpath
	if len(parts) == 1 || parts[1] == "" {
		s.handleGetFit(w, r, jobID)
	} else if parts[1] == "events" {
		s.handleJobStream(w, r, jobID)
	} else {
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

// handleCreateFit handles POST /api/v1/fits
func (s *Server) handleCreateFit(w http.ResponseWriter, r *http.Request) {
	var req FitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %v", err))
		return
	}

	// Validate request. The model name and the data shape are checked
	// synchronously so obvious mistakes fail the POST; everything else
	// (guesses, bounds, loss name) is validated by the worker and
	// reported through the job state.
	if req.Model == "" {
		writeError(w, http.StatusBadRequest, "model is required")
		return
	}
	if _, err := models.Lookup(req.Model); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Data) == 0 {
		writeError(w, http.StatusBadRequest, "data is required")
		return
	}

	// Create job
	job := s.jobManager.CreateJob(req)

	// Start worker in background
	go runJob(context.Background(), s.jobManager, job.ID)

	// Return job
	writeJSON(w, http.StatusCreated, job)
}

// handleListFits handles GET /api/v1/fits
func (s *Server) handleListFits(w http.ResponseWriter, r *http.Request) {
	jobs := s.jobManager.ListJobs()
	writeJSON(w, http.StatusOK, jobs)
}

// handleGetFit handles GET /api/v1/fits/:id
func (s *Server) handleGetFit(w http.ResponseWriter, r *http.Request, jobID string) {
	job, exists := s.jobManager.GetJob(jobID)
	if !exists {
		writeError(w, http.StatusNotFound, "Job not found")
		return
	}

	// Compute elapsed time
	var elapsed time.Duration
	if job.EndTime != nil {
		elapsed = job.EndTime.Sub(job.StartTime)
	} else {
		elapsed = time.Since(job.StartTime)
	}

	response := map[string]interface{}{
		"id":        job.ID,
		"state":     job.State,
		"request":   job.Request,
		"result":    job.Result,
		"elapsed":   elapsed.Seconds(),
		"startTime": job.StartTime,
		"endTime":   job.EndTime,
		"error":     job.Error,
	}

	writeJSON(w, http.StatusOK, response)
}

// modelInfo describes one registered model for the API
type modelInfo struct {
	Name      string   `json:"name"`
	Signature string   `json:"signature"`
	Args      []string `json:"args"`
	Params    []string `json:"params"`
}

// handleListModels handles GET /api/v1/models
func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	names := models.Names()
	infos := make([]modelInfo, 0, len(names))
	for _, name := range names {
		fn, err := models.Lookup(name)
		if err != nil {
			continue
		}
		sig := fn.Signature()
		infos = append(infos, modelInfo{
			Name:      fn.Name(),
			Signature: fn.String(),
			Args:      sig.Args(),
			Params:    sig.Params(),
		})
	}

	writeJSON(w, http.StatusOK, infos)
}

// handleListLosses handles GET /api/v1/losses
func (s *Server) handleListLosses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"losses":  loss.Names(),
		"default": loss.DefaultName,
	})
}

// corsMiddleware adds CORS headers
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("HTTP request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
