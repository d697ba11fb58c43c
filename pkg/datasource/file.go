package datasource

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/pkgdir/pkgdir/pkg/log"
	"github.com/pkgdir/pkgdir/pkg/registry"
)

// FileSource reads the search index from a file on disk, typically the
// searchindex.json a previous build emitted. Unlike HTTPSource it can be
// re-read with Reload, which the web server uses when the file changes
// under it.
type FileSource struct {
	path   string
	logger *log.Logger

	mu      sync.Mutex
	loaded  bool
	records []registry.Record
	err     error
}

// NewFileSource creates a source for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{
		path:   path,
		logger: log.ForComponent("datasource"),
	}
}

// Load reads and decodes the collection, caching the outcome.
func (s *FileSource) Load(ctx context.Context) ([]registry.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.records, s.err = s.read()
		s.loaded = true
	}
	return s.records, s.err
}

// Reload drops the cache and reads the file again.
func (s *FileSource) Reload(ctx context.Context) ([]registry.Record, error) {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
	return s.Load(ctx)
}

func (s *FileSource) read() ([]registry.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Errorf("reading %s: %v", s.path, err)
		return nil, fmt.Errorf("reading index file: %w", err)
	}
	records, err := registry.DecodeCollection(data)
	if err != nil {
		s.logger.Errorf("decoding %s: %v", s.path, err)
		return nil, err
	}
	s.logger.Infof("loaded %d records from %s", len(records), s.path)
	return records, nil
}
