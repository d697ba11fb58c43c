package cmd

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkgdir/pkgdir/pkg/api"
	"github.com/pkgdir/pkgdir/pkg/config"
	"github.com/pkgdir/pkgdir/pkg/engine"
	"github.com/pkgdir/pkgdir/pkg/log"
	"github.com/pkgdir/pkgdir/pkg/registry"
	"github.com/pkgdir/pkgdir/pkg/render"
	"github.com/pkgdir/pkgdir/pkg/textmatch"
)

func testWebServer(t *testing.T, records []registry.Record) *WebServer {
	t.Helper()
	cfg := config.GetDefaultConfig()
	cfg.SiteDir = t.TempDir()
	variant := engine.Packages()
	eng := engine.New(variant, textmatch.NewFuzzyMatcher(variant.Searchable), records)
	return &WebServer{
		cfg:       cfg,
		eng:       eng,
		cards:     render.DefaultRegistry(),
		apiServer: api.NewServer(eng),
		logger:    log.ForComponent("web"),
	}
}

func pagedRecords(n int) []registry.Record {
	records := make([]registry.Record, n)
	for i := range records {
		records[i] = registry.Record{Name: fmt.Sprintf("pkg-%02d", i+1), Author: "a"}
	}
	return records
}

func TestRenderResults(t *testing.T) {
	s := testWebServer(t, []registry.Record{
		{Name: "GitSavvy", Author: "divmain", Description: "git integration", Stars: "2500"},
		{Name: "ColorHelper", Author: "facelessuser", Description: "color previews"},
	})

	req := httptest.NewRequest(http.MethodGet, "/search?q=git", nil)
	rec := httptest.NewRecorder()
	s.renderResults(rec, req, false)

	html := rec.Body.String()
	if !strings.Contains(html, "GitSavvy") {
		t.Errorf("results page missing match: %s", html)
	}
	if strings.Contains(html, "ColorHelper") {
		t.Error("results page contains non-matching record")
	}
	if !strings.Contains(html, `value="git"`) {
		t.Error("search input does not echo the query")
	}
	// Two records, one page: no pagination controls.
	if strings.Contains(html, "pagination-controls") {
		t.Error("single-page result rendered pagination")
	}
}

func TestRenderResultsPagination(t *testing.T) {
	s := testWebServer(t, pagedRecords(50))

	req := httptest.NewRequest(http.MethodGet, "/search?page=2", nil)
	rec := httptest.NewRecorder()
	s.renderResults(rec, req, false)

	html := rec.Body.String()
	if !strings.Contains(html, "Showing 25-48 of 50 packages") {
		t.Errorf("pagination info wrong: %s", html)
	}
	if !strings.Contains(html, `href="/search"`) {
		t.Error("missing Previous link back to the canonical first page")
	}
	if !strings.Contains(html, `href="/search?page=3"`) {
		t.Error("missing Next link")
	}
}

func TestPageURLOmitsDefaults(t *testing.T) {
	s := testWebServer(t, nil)
	variant := s.eng.Variant()

	p := engine.Params{Query: "git", Sort: "stars", Page: 2}
	if got := s.pageURL(p, variant, 3); got != "/search?page=3&q=git&sort=stars" {
		t.Errorf("pageURL = %q", got)
	}
	if got := s.pageURL(engine.Params{Sort: "relevance"}, variant, 1); got != "/search" {
		t.Errorf("pageURL for defaults = %q", got)
	}
}

func TestHandleHomeRedirectsSearchState(t *testing.T) {
	s := testWebServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/?q=git&sort=stars", nil)
	rec := httptest.NewRecorder()
	s.handleHome(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/search?") || !strings.Contains(loc, "q=git") {
		t.Errorf("redirect = %q", loc)
	}
}

func TestHandleHomeWithoutBuildFallsBack(t *testing.T) {
	s := testWebServer(t, pagedRecords(3))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.handleHome(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), ">3</span>") {
		t.Errorf("fallback page missing collection counter: %s", rec.Body.String())
	}
}
