package render

import (
	"html/template"
	"strings"
	"testing"

	"github.com/pkgdir/pkgdir/pkg/registry"
)

func TestDefaultRegistryDispatch(t *testing.T) {
	reg := DefaultRegistry()

	pkg := registry.Record{
		Name: "GitTools", Author: "jane", Stars: "42",
		Labels: "vcs,git", Platforms: "linux,macos", Permalink: "/packages/GitTools/",
	}
	html := string(reg.Render(pkg))
	if !strings.Contains(html, "package-card") {
		t.Errorf("package record rendered as %s", html)
	}
	if !strings.Contains(html, "GitTools") || !strings.Contains(html, "★ 42") {
		t.Errorf("card = %s", html)
	}
	if !strings.Contains(html, "<li>linux</li>") {
		t.Errorf("missing platform badges: %s", html)
	}

	lib := registry.Record{
		Name: "requests", Author: "k", PythonVersions: []string{"3.3", "3.8"},
	}
	html = string(reg.Render(lib))
	if !strings.Contains(html, "library-card") {
		t.Errorf("library record rendered as %s", html)
	}
	if !strings.Contains(html, "python 3.3") {
		t.Errorf("missing python versions: %s", html)
	}
}

func TestPackageCardOmitsEmptySections(t *testing.T) {
	html := string(NewPackageCard().Render(registry.Record{Name: "Plain"}))
	for _, absent := range []string{"author", "stars", "labels", "platforms"} {
		if strings.Contains(html, absent) {
			t.Errorf("empty record card contains %q: %s", absent, html)
		}
	}
}

func TestCardEscapesHTML(t *testing.T) {
	rec := registry.Record{Name: "<script>alert(1)</script>"}
	html := string(NewPackageCard().Render(rec))
	if strings.Contains(html, "<script>") {
		t.Errorf("unescaped markup in card: %s", html)
	}
}

type nopeCard struct{}

func (nopeCard) CanRender(registry.Record) bool       { return false }
func (nopeCard) Render(registry.Record) template.HTML { return "" }

func TestRegistryFallback(t *testing.T) {
	reg := NewRegistry()
	reg.Register(nopeCard{})

	html := string(reg.Render(registry.Record{Name: "Orphan", Permalink: "/x/"}))
	if !strings.Contains(html, "Orphan") {
		t.Errorf("fallback card = %s", html)
	}
}

func TestRenderAllPreservesOrder(t *testing.T) {
	reg := DefaultRegistry()
	records := []registry.Record{
		{Name: "Alpha"}, {Name: "Beta"}, {Name: "Gamma"},
	}

	cards := reg.RenderAll(records)
	if len(cards) != 3 {
		t.Fatalf("len = %d, want 3", len(cards))
	}
	for i, name := range []string{"Alpha", "Beta", "Gamma"} {
		if !strings.Contains(string(cards[i]), name) {
			t.Errorf("cards[%d] missing %s", i, name)
		}
	}
}
