// Package engine runs the search pipeline over an in-memory record
// collection: parse filter tokens, narrow candidates, match residual text,
// sort, paginate. The pipeline is pure with respect to the collection;
// every stage returns new slices.
package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pkgdir/pkgdir/pkg/filter"
	"github.com/pkgdir/pkgdir/pkg/log"
	"github.com/pkgdir/pkgdir/pkg/paginate"
	"github.com/pkgdir/pkgdir/pkg/query"
	"github.com/pkgdir/pkgdir/pkg/registry"
	"github.com/pkgdir/pkgdir/pkg/sorter"
	"github.com/pkgdir/pkgdir/pkg/textmatch"
)

// Result is one executed search: the requested page of the ordered result
// set plus the page-number window for navigation controls.
type Result struct {
	Page   paginate.Page
	Window []paginate.Entry
	Params Params
}

// Engine owns the collection snapshot and executes searches against it.
// The collection is replaced wholesale on reload (never mutated), so a
// snapshot taken under the read lock stays valid for the whole pipeline
// run.
type Engine struct {
	mu      sync.RWMutex
	records []registry.Record

	variant Variant
	matcher textmatch.Matcher
	logger  *log.Logger
}

// New creates an engine for the given variant, matcher and initial
// collection.
func New(variant Variant, matcher textmatch.Matcher, records []registry.Record) *Engine {
	return &Engine{
		records: records,
		variant: variant,
		matcher: matcher,
		logger:  log.ForComponent("engine"),
	}
}

// Variant returns the engine's pipeline configuration.
func (e *Engine) Variant() Variant {
	return e.variant
}

// SetCollection swaps in a freshly loaded collection.
func (e *Engine) SetCollection(records []registry.Record) {
	e.mu.Lock()
	e.records = records
	e.mu.Unlock()
	e.logger.Infof("collection reloaded: %d records", len(records))
}

// Collection returns the current collection snapshot.
func (e *Engine) Collection() []registry.Record {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.records
}

// Size returns the number of records in the collection.
func (e *Engine) Size() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.records)
}

// Search executes the full pipeline for the given navigation state.
//
// Structured filters narrow the collection first; residual free text then
// goes to the matcher over the narrowed candidates only. Without residual
// text the filtered subset keeps its collection order, with it the
// candidates are ordered by relevance before the sort key applies. An
// unrecognized sort key preserves that order.
func (e *Engine) Search(ctx context.Context, p Params) (Result, error) {
	p = p.WithDefaults(e.variant)
	collection := e.Collection()

	parsed := query.Parse(strings.TrimSpace(p.Query), e.variant.Fields)
	candidates := filter.Apply(collection, parsed.Filters, e.variant.Rules)

	if parsed.Residual != "" {
		matched, err := e.matchResidual(ctx, candidates, parsed.Residual)
		if err != nil {
			return Result{}, err
		}
		candidates = matched
	}

	ordered := sorter.Sort(candidates, p.Sort)
	page := paginate.Paginate(ordered, p.Page, e.variant.PageSize)

	e.logger.Debugf("query=%q filters=%d residual=%q matches=%d page=%d/%d",
		p.Query, len(parsed.Filters), parsed.Residual, page.TotalItems, p.Page, page.TotalPages)

	return Result{
		Page:   page,
		Window: paginate.Window(p.Page, page.TotalPages),
		Params: p,
	}, nil
}

// matchResidual reindexes the candidates and keeps only those the matcher
// returns, ordered best match first.
func (e *Engine) matchResidual(ctx context.Context, candidates []registry.Record, residual string) ([]registry.Record, error) {
	scores, err := e.matcher.Match(ctx, e.variant.Docs(candidates), residual)
	if err != nil {
		return nil, fmt.Errorf("matching %q: %w", residual, err)
	}

	byID := make(map[string]registry.Record, len(candidates))
	for _, rec := range candidates {
		byID[rec.ID()] = rec
	}
	matched := make([]registry.Record, 0, len(scores))
	for _, score := range scores {
		if rec, ok := byID[score.ID]; ok {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}
