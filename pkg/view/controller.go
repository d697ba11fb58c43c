package view

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/pkgdir/pkgdir/pkg/engine"
	"github.com/pkgdir/pkgdir/pkg/log"
	"github.com/pkgdir/pkgdir/pkg/paginate"
)

// Controller is the navigation state machine. It sits between user events
// (typed input, sort selection, page clicks, history navigation) and the
// pipeline, and keeps the renderer and history sink in step with the
// current state.
//
// Two states exist: home (no active search, landing sections visible) and
// results (filtered, sorted, paginated view). Clearing the query while on
// default sort and page returns to home; everything else lands in
// results.
type Controller struct {
	eng      *engine.Engine
	renderer Renderer
	history  History
	debounce *Debouncer
	logger   *log.Logger

	mu      sync.Mutex
	state   engine.Params
	lastURL string
}

// NewController wires a controller. A nil history discards URL updates.
func NewController(eng *engine.Engine, renderer Renderer, history History, debounce time.Duration) *Controller {
	if history == nil {
		history = NopHistory{}
	}
	return &Controller{
		eng:      eng,
		renderer: renderer,
		history:  history,
		debounce: NewDebouncer(debounce),
		logger:   log.ForComponent("view"),
		state:    engine.Params{}.WithDefaults(eng.Variant()),
	}
}

// State returns the current navigation state.
func (c *Controller) State() engine.Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Load applies the initial address-bar state without pushing a history
// entry. An empty parameter set shows the home sections.
func (c *Controller) Load(ctx context.Context, values url.Values) {
	c.apply(ctx, engine.ParseParams(values, c.eng.Variant()), false)
}

// Input handles a keystroke-driven query change: the transition runs
// after the quiet period, and a newer keystroke supersedes it. The page
// resets to 1; the sort is kept.
func (c *Controller) Input(ctx context.Context, query string) {
	c.debounce.Schedule(func() {
		c.mu.Lock()
		p := engine.Params{Query: query, Sort: c.state.Sort, Page: 1}
		c.mu.Unlock()
		c.apply(ctx, p, true)
	})
}

// Submit handles an explicit form submission: any pending debounced run
// is cancelled and the query applies immediately.
func (c *Controller) Submit(ctx context.Context, query string) {
	c.debounce.Cancel()
	c.mu.Lock()
	p := engine.Params{Query: query, Sort: c.state.Sort, Page: 1}
	c.mu.Unlock()
	c.apply(ctx, p, true)
}

// SetSort handles a sort-control change, which bypasses debouncing and
// resets to the first page.
func (c *Controller) SetSort(ctx context.Context, key string) {
	c.debounce.Cancel()
	c.mu.Lock()
	p := engine.Params{Query: c.state.Query, Sort: key, Page: 1}
	c.mu.Unlock()
	c.apply(ctx, p, true)
}

// GoToPage handles a pagination click, keeping query and sort.
func (c *Controller) GoToPage(ctx context.Context, page int) {
	c.debounce.Cancel()
	c.mu.Lock()
	p := engine.Params{Query: c.state.Query, Sort: c.state.Sort, Page: page}
	c.mu.Unlock()
	c.apply(ctx, p, true)
}

// Navigate handles browser back/forward: the state re-derives from the
// URL and applies without pushing a new history entry.
func (c *Controller) Navigate(ctx context.Context, values url.Values) {
	c.debounce.Cancel()
	c.apply(ctx, engine.ParseParams(values, c.eng.Variant()), false)
}

// Close cancels any pending debounced run.
func (c *Controller) Close() {
	c.debounce.Cancel()
}

// apply runs one state transition: recompute the pipeline from scratch,
// render, and synchronize the history sink. push controls whether a
// changed canonical URL creates a history entry.
func (c *Controller) apply(ctx context.Context, p engine.Params, push bool) {
	variant := c.eng.Variant()
	p = p.WithDefaults(variant)

	c.mu.Lock()
	c.state = p
	c.mu.Unlock()

	if p.IsHome(variant) {
		c.renderer.RenderPage(nil, paginate.Page{})
		c.renderer.RenderPagination(nil)
		c.renderer.SetCounter(c.eng.Size())
		c.renderer.ShowSection(SectionHome)
		c.syncHistory(p, variant, push)
		return
	}

	result, err := c.eng.Search(ctx, p)
	if err != nil {
		// Degrade to an empty result set; availability beats strict
		// error reporting in a read-only browsing tool.
		c.logger.Errorf("search failed: %v", err)
		result = engine.Result{Params: p}
	}

	c.renderer.RenderPage(result.Page.Items, result.Page)
	if result.Page.TotalPages > 1 {
		c.renderer.RenderPagination(result.Window)
	} else {
		c.renderer.RenderPagination(nil)
	}
	c.renderer.SetCounter(result.Page.TotalItems)
	c.renderer.ShowSection(SectionResults)
	c.syncHistory(p, variant, push)
}

// syncHistory pushes the canonical URL state when it changed since the
// last push. Repeated identical input therefore never stacks duplicate
// history entries.
func (c *Controller) syncHistory(p engine.Params, variant engine.Variant, push bool) {
	values := p.Values(variant)
	encoded := values.Encode()

	c.mu.Lock()
	changed := encoded != c.lastURL
	c.lastURL = encoded
	c.mu.Unlock()

	if push && changed {
		c.history.Push(values)
	}
}
