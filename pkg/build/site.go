package build

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"

	"github.com/pkgdir/pkgdir/pkg/log"
	"github.com/pkgdir/pkgdir/pkg/registry"
	"github.com/pkgdir/pkgdir/pkg/render"
	"github.com/pkgdir/pkgdir/pkg/sorter"
)

// Builder emits the static site artifacts for a workspace: the flat
// search index (plain and gzipped) and the landing page with its newest
// and recently-updated sections.
type Builder struct {
	siteDir string
	cards   *render.Registry
	logger  *log.Logger
}

// NewBuilder creates a builder writing into siteDir. A nil registry uses
// the stock cards.
func NewBuilder(siteDir string, cards *render.Registry) *Builder {
	if cards == nil {
		cards = render.DefaultRegistry()
	}
	return &Builder{
		siteDir: siteDir,
		cards:   cards,
		logger:  log.ForComponent("build"),
	}
}

// Build runs the full emission for a workspace.
func (b *Builder) Build(ws *Workspace) error {
	if err := os.MkdirAll(b.siteDir, 0755); err != nil {
		return fmt.Errorf("creating site directory: %w", err)
	}

	live := ws.Live()
	records := IndexRecords(live)

	if err := b.writeIndex(records); err != nil {
		return err
	}
	if err := b.writeHome(live, len(records)); err != nil {
		return err
	}

	b.logger.Infof("built site with %d packages into %s", len(records), b.siteDir)
	return nil
}

// IndexRecords flattens live packages into search index records, most
// starred first.
func IndexRecords(live []Package) []registry.Record {
	byStars := ByStars(live)
	records := make([]registry.Record, 0, len(byStars))
	for _, pkg := range byStars {
		records = append(records, IndexRecord(pkg))
	}
	return records
}

// writeIndex emits searchindex.json plus a gzipped sibling for servers
// that prefer precompressed assets.
func (b *Builder) writeIndex(records []registry.Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding search index: %w", err)
	}

	plain := filepath.Join(b.siteDir, "searchindex.json")
	if err := os.WriteFile(plain, data, 0644); err != nil {
		return fmt.Errorf("writing search index: %w", err)
	}

	gzPath := plain + ".gz"
	f, err := os.Create(gzPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", gzPath, err)
	}
	gz, err := gzip.NewWriterLevel(f, gzip.BestCompression)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("creating gzip writer: %w", err)
	}
	if _, err := gz.Write(data); err != nil {
		_ = gz.Close()
		_ = f.Close()
		return fmt.Errorf("compressing search index: %w", err)
	}
	if err := gz.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("finishing gzip stream: %w", err)
	}
	return f.Close()
}

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Package Directory</title>
  <link rel="stylesheet" href="/static/style.css">
</head>
<body>
  <h1>Package Directory <span class="counter" data-all="{{.Total}}">{{.Total}}</span></h1>
  <form name="search" action="/search" method="get">
    <input name="q" type="search" placeholder="Search packages">
    <select name="sort">
      {{- range .SortKeys}}
      <option value="{{.}}">{{.}}</option>
      {{- end}}
    </select>
  </form>
  <section name="newest">
    <h2>Newest packages</h2>
    <ul>
      {{- range .Newest}}
      <li>{{.}}</li>
      {{- end}}
    </ul>
  </section>
  <section name="recent">
    <h2>Recently updated</h2>
    <ul>
      {{- range .Updated}}
      <li>{{.}}</li>
      {{- end}}
    </ul>
  </section>
  <section name="result" style="display:none">
    <h2>Results</h2>
    <ul></ul>
  </section>
</body>
</html>`))

type homeData struct {
	Total    int
	SortKeys []string
	Newest   []template.HTML
	Updated  []template.HTML
}

// writeHome renders index.html with the newest and recently-updated
// sections.
func (b *Builder) writeHome(live []Package, total int) error {
	data := homeData{
		Total:    total,
		SortKeys: sorter.Keys(),
	}
	for _, pkg := range Newest(live) {
		data.Newest = append(data.Newest, b.cards.Render(IndexRecord(pkg)))
	}
	for _, pkg := range Updated(live) {
		data.Updated = append(data.Updated, b.cards.Render(IndexRecord(pkg)))
	}

	f, err := os.Create(filepath.Join(b.siteDir, "index.html"))
	if err != nil {
		return fmt.Errorf("creating index.html: %w", err)
	}
	if err := homeTemplate.Execute(f, data); err != nil {
		_ = f.Close()
		return fmt.Errorf("rendering index.html: %w", err)
	}
	return f.Close()
}
