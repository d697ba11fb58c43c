// Package render produces the HTML card fragment for a directory record.
//
// The search engine never inspects a card's markup; it hands records to a
// CardRenderer and appends whatever comes back. Renderers register in a
// registry with a plain fallback so unknown record shapes still display.
package render

import (
	"html/template"
	"sync"

	"github.com/pkgdir/pkgdir/pkg/registry"
)

// CardRenderer renders one record into an HTML fragment.
type CardRenderer interface {
	// CanRender reports whether this renderer handles the record.
	CanRender(rec registry.Record) bool

	// Render returns the card fragment for the record.
	Render(rec registry.Record) template.HTML
}

// Registry holds card renderers plus a fallback used when none match.
type Registry struct {
	mu        sync.RWMutex
	renderers []CardRenderer
	fallback  CardRenderer
}

// NewRegistry creates an empty registry with the default fallback card.
func NewRegistry() *Registry {
	return &Registry{fallback: NewDefaultCard()}
}

// DefaultRegistry builds a registry with the stock package and library
// cards registered.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.Register(NewLibraryCard())
	reg.Register(NewPackageCard())
	return reg
}

// Register adds a renderer. Safe for concurrent use.
func (r *Registry) Register(renderer CardRenderer) {
	if renderer == nil {
		return
	}
	r.mu.Lock()
	r.renderers = append(r.renderers, renderer)
	r.mu.Unlock()
}

// Render selects the first renderer whose CanRender returns true, falling
// back to the default card.
func (r *Registry) Render(rec registry.Record) template.HTML {
	r.mu.RLock()
	renderers := r.renderers
	fallback := r.fallback
	r.mu.RUnlock()

	for _, renderer := range renderers {
		if renderer.CanRender(rec) {
			return renderer.Render(rec)
		}
	}
	return fallback.Render(rec)
}

// RenderAll renders a slice of records in order.
func (r *Registry) RenderAll(recs []registry.Record) []template.HTML {
	out := make([]template.HTML, 0, len(recs))
	for _, rec := range recs {
		out = append(out, r.Render(rec))
	}
	return out
}
