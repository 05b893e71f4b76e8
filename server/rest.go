package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/umputun/newsradar/pkg/view"
)

// itemsResponse is the payload of GET /api/v1/items
type itemsResponse struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Total       int                 `json:"total"`
	Count       int                 `json:"count"`
	Items       []view.DisplayRecord `json:"items"`
	Companies   []view.CompanyFacet `json:"companies"`
	Sources     []string            `json:"sources"`
	Tags        []string            `json:"tags"`
	Error       string              `json:"error,omitempty"`
}

// statusHandler returns server status; degraded when the last artifact load
// failed
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	state := s.view.State()
	status := "ok"
	if state.LastError != "" {
		status = "degraded"
	}
	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"status":       status,
		"version":      s.version,
		"time":         time.Now().UTC(),
		"generated_at": state.GeneratedAt,
		"item_count":   len(state.Items),
		"last_error":   state.LastError,
	})
}

// itemsHandler applies the requested filters and returns display records
// plus the company facet sidebar
func (s *Server) itemsHandler(w http.ResponseWriter, r *http.Request) {
	state := s.view.State()

	q := r.URL.Query()
	filter := view.FilterState{
		Query:     q.Get("q"),
		Source:    q.Get("source"),
		Tag:       q.Get("tag"),
		Bucket:    q.Get("bucket"),
		Countries: q["country"],
		Company:   q.Get("company"),
	}

	filtered := view.Apply(state.Items, filter)

	renderJSON(w, r, http.StatusOK, itemsResponse{
		GeneratedAt: state.GeneratedAt,
		Total:       len(state.Items),
		Count:       len(filtered),
		Items:       view.Project(filtered),
		Companies:   view.CompanyFacets(filtered),
		Sources:     state.Sources,
		Tags:        state.Tags,
		Error:       state.LastError,
	})
}

// facetsHandler returns the filter option lists derived from the dataset
func (s *Server) facetsHandler(w http.ResponseWriter, r *http.Request) {
	state := s.view.State()
	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"generated_at": state.GeneratedAt,
		"sources":      state.Sources,
		"tags":         state.Tags,
		"errors":       state.Errors,
	})
}

// refreshHandler triggers an immediate ingestion run
func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	s.scheduler.TriggerNow()
	renderJSON(w, r, http.StatusAccepted, map[string]string{"status": "refresh scheduled"})
}

// artifactHandler serves the artifact file, bypassing any caches
func (s *Server) artifactHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	http.ServeFile(w, r, s.artifactPath)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}
