package render

import (
	"html/template"
	"strings"

	"github.com/pkgdir/pkgdir/pkg/registry"
)

var cardFuncs = template.FuncMap{
	"tokens": registry.SplitSet,
	"join":   strings.Join,
}

// PackageCard renders the package-directory card: name, author, star
// count, labels and platform badges.
type PackageCard struct {
	tmpl *template.Template
}

// NewPackageCard creates the package card renderer.
func NewPackageCard() *PackageCard {
	tmpl := template.Must(template.New("package-card").Funcs(cardFuncs).Parse(`
<article class="card package-card">
  <h3><a href="{{.Permalink}}">{{.Name}}</a></h3>
  {{- if .Author}}
  <p class="author">by {{.Author}}</p>
  {{- end}}
  {{- if .Description}}
  <p class="description">{{.Description}}</p>
  {{- end}}
  {{- if gt .Stars.Int 0}}
  <span class="stars">★ {{.Stars.Int}}</span>
  {{- end}}
  {{- with tokens .Labels}}
  <ul class="labels">{{range .}}<li>{{.}}</li>{{end}}</ul>
  {{- end}}
  {{- with tokens .Platforms}}
  <ul class="platforms">{{range .}}<li>{{.}}</li>{{end}}</ul>
  {{- end}}
</article>`))
	return &PackageCard{tmpl: tmpl}
}

// CanRender accepts every record without library-specific fields.
func (c *PackageCard) CanRender(rec registry.Record) bool {
	return len(rec.PythonVersions) == 0
}

// Render returns the card fragment. Template failures degrade to an HTML
// comment rather than breaking the page.
func (c *PackageCard) Render(rec registry.Record) template.HTML {
	return execute(c.tmpl, rec)
}

// LibraryCard renders the library-directory card, which swaps platform
// badges for supported Python versions.
type LibraryCard struct {
	tmpl *template.Template
}

// NewLibraryCard creates the library card renderer.
func NewLibraryCard() *LibraryCard {
	tmpl := template.Must(template.New("library-card").Funcs(cardFuncs).Parse(`
<article class="card library-card">
  <h3><a href="{{.Permalink}}">{{.Name}}</a></h3>
  {{- if .Author}}
  <p class="author">by {{.Author}}</p>
  {{- end}}
  {{- if .Description}}
  <p class="description">{{.Description}}</p>
  {{- end}}
  {{- with .PythonVersions}}
  <ul class="python-versions">{{range .}}<li>python {{.}}</li>{{end}}</ul>
  {{- end}}
</article>`))
	return &LibraryCard{tmpl: tmpl}
}

// CanRender accepts records carrying Python versions.
func (c *LibraryCard) CanRender(rec registry.Record) bool {
	return len(rec.PythonVersions) > 0
}

func (c *LibraryCard) Render(rec registry.Record) template.HTML {
	return execute(c.tmpl, rec)
}

// DefaultCard is the fallback: name and permalink only.
type DefaultCard struct {
	tmpl *template.Template
}

// NewDefaultCard creates the fallback renderer.
func NewDefaultCard() *DefaultCard {
	tmpl := template.Must(template.New("default-card").Parse(
		`<article class="card"><h3><a href="{{.Permalink}}">{{.Name}}</a></h3></article>`))
	return &DefaultCard{tmpl: tmpl}
}

func (c *DefaultCard) CanRender(registry.Record) bool { return true }

func (c *DefaultCard) Render(rec registry.Record) template.HTML {
	return execute(c.tmpl, rec)
}

func execute(tmpl *template.Template, rec registry.Record) template.HTML {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, rec); err != nil {
		return template.HTML("<!-- card render error -->")
	}
	return template.HTML(sb.String())
}
