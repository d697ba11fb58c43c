package datasource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pkgdir/pkgdir/pkg/log"
	"github.com/pkgdir/pkgdir/pkg/registry"
)

// HTTPSource fetches the search index from a well-known endpoint. The
// response must carry a success status and an application/json content
// type; anything else counts as a fetch failure. The fetch happens at
// most once per process; later calls return the cached outcome.
type HTTPSource struct {
	endpoint string
	client   *http.Client
	logger   *log.Logger

	once    sync.Once
	records []registry.Record
	err     error
}

// NewHTTPSource creates a source for the given endpoint. A nil client
// uses a default with a 30 second timeout.
func NewHTTPSource(endpoint string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPSource{
		endpoint: endpoint,
		client:   client,
		logger:   log.ForComponent("datasource"),
	}
}

// Load fetches and decodes the collection, once. On failure it logs and
// returns an empty collection along with the error so callers can choose
// between failing soft and surfacing it.
func (s *HTTPSource) Load(ctx context.Context) ([]registry.Record, error) {
	s.once.Do(func() {
		s.records, s.err = s.fetch(ctx)
		if s.err != nil {
			s.logger.Errorf("fetching %s: %v", s.endpoint, s.err)
		} else {
			s.logger.Infof("loaded %d records from %s", len(s.records), s.endpoint)
		}
	})
	return s.records, s.err
}

func (s *HTTPSource) fetch(ctx context.Context) ([]registry.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching index: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetching index: unexpected status %s", resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		return nil, fmt.Errorf("fetching index: unexpected content type %q", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading index body: %w", err)
	}
	return registry.DecodeCollection(body)
}
