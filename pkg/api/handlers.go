package api

import (
	"net/http"

	"github.com/pkgdir/pkgdir/pkg/engine"
	"github.com/pkgdir/pkgdir/pkg/registry"
	"github.com/pkgdir/pkgdir/pkg/version"
)

// HandleSearch runs the pipeline for the q, sort and page parameters and
// returns one result page.
func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	params := engine.ParseParams(r.URL.Query(), s.eng.Variant())

	result, err := s.eng.Search(r.Context(), params)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "search failed", err.Error())
		return
	}

	records := result.Page.Items
	if records == nil {
		records = []registry.Record{}
	}
	window := make([]WindowEntry, 0, len(result.Window))
	for _, e := range result.Window {
		window = append(window, WindowEntry{Page: e.Page, Ellipsis: e.Ellipsis, Current: e.Current})
	}

	s.writeJSON(w, http.StatusOK, SearchResponse{
		Query:      result.Params.Query,
		Sort:       result.Params.Sort,
		Page:       result.Params.Page,
		PageSize:   result.Page.Size,
		TotalCount: result.Page.TotalItems,
		TotalPages: result.Page.TotalPages,
		Records:    records,
		Window:     window,
	})
}

// HandleRecords returns the full loaded collection.
func (s *Server) HandleRecords(w http.ResponseWriter, r *http.Request) {
	records := s.eng.Collection()
	if records == nil {
		records = []registry.Record{}
	}
	s.writeJSON(w, http.StatusOK, ListRecordsResponse{
		Records: records,
		Count:   len(records),
	})
}

// HandleStats summarizes the collection by platform and label.
func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats := StatsResponse{
		TotalRecords: s.eng.Size(),
		Platforms:    make(map[string]int),
		Labels:       make(map[string]int),
	}
	for _, rec := range s.eng.Collection() {
		for _, p := range rec.PlatformSet() {
			stats.Platforms[p]++
		}
		for _, l := range rec.LabelSet() {
			stats.Labels[l]++
		}
	}
	s.writeJSON(w, http.StatusOK, stats)
}

// HandleHealth reports liveness.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: version.APIVersion(),
	})
}
