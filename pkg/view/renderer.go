// Package view orchestrates the search pipeline behind a small rendering
// adapter, keeping the engine free of any presentation concern. The
// controller owns the navigation state (query, sort, page), mirrors it to
// a history sink the way a browser address bar is kept in sync, and
// debounces keystroke-driven queries.
package view

import (
	"net/url"

	"github.com/pkgdir/pkgdir/pkg/paginate"
	"github.com/pkgdir/pkgdir/pkg/registry"
)

// Section names passed to Renderer.ShowSection.
const (
	SectionHome    = "home"
	SectionResults = "results"
)

// Renderer is the presentation adapter the controller drives. A renderer
// implementation may write HTML fragments, push websocket frames or
// collect calls in a test fake; the controller never inspects its output.
type Renderer interface {
	// RenderPage replaces the visible result cards with the given page
	// items. Called with an empty slice to clear.
	RenderPage(items []registry.Record, page paginate.Page)

	// RenderPagination replaces the pagination control with the given
	// window. A nil window removes the control.
	RenderPagination(window []paginate.Entry)

	// SetCounter updates the visible result counter.
	SetCounter(n int)

	// ShowSection reveals the named section (home or results) and hides
	// the other.
	ShowSection(name string)
}

// History receives canonical URL state. Push is only called when the
// encoded state differs from the previously pushed one, so repeated
// identical input never duplicates back-stack entries.
type History interface {
	Push(values url.Values)
}

// NopHistory discards history updates; useful for callers without an
// address bar, such as the CLI.
type NopHistory struct{}

func (NopHistory) Push(url.Values) {}
