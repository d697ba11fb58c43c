package api

import "github.com/pkgdir/pkgdir/pkg/registry"

// SearchResponse is the /api/search payload: one page of the ordered
// result set plus pagination metadata.
type SearchResponse struct {
	Query      string            `json:"query"`
	Sort       string            `json:"sort"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int               `json:"total_count"`
	TotalPages int               `json:"total_pages"`
	Records    []registry.Record `json:"records"`
	Window     []WindowEntry     `json:"window,omitempty"`
}

// WindowEntry mirrors paginate.Entry for JSON clients building pagination
// controls.
type WindowEntry struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// ListRecordsResponse is the /api/records payload.
type ListRecordsResponse struct {
	Records []registry.Record `json:"records"`
	Count   int               `json:"count"`
}

// StatsResponse summarizes the loaded collection.
type StatsResponse struct {
	TotalRecords int            `json:"total_records"`
	Platforms    map[string]int `json:"platforms,omitempty"`
	Labels       map[string]int `json:"labels,omitempty"`
}

// HealthResponse is the /health payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
