// Package api exposes the search engine over JSON endpoints, mirroring
// the HTML interface so external clients can reuse the same pipeline.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/pkgdir/pkgdir/pkg/engine"
	"github.com/pkgdir/pkgdir/pkg/log"
)

// Server serves the JSON API over a shared engine.
type Server struct {
	eng    *engine.Engine
	logger *log.Logger
}

// NewServer creates an API server.
func NewServer(eng *engine.Engine) *Server {
	return &Server{
		eng:    eng,
		logger: log.ForComponent("api"),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorf("encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, errName, message string) {
	s.writeJSON(w, status, ErrorResponse{
		Error:   errName,
		Message: message,
	})
}

// CorsMiddleware allows cross-origin access to the read-only API.
func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
