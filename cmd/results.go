package cmd

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/pkgdir/pkgdir/pkg/engine"
	"github.com/pkgdir/pkgdir/pkg/sorter"
)

var resultsTemplate = template.Must(template.New("results").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Search - Package Directory</title>
  <link rel="stylesheet" href="/static/style.css">
</head>
<body>
  <h1>Package Directory <span class="counter">{{.Counter}}</span></h1>
  <form name="search" action="/search" method="get">
    <input name="q" type="search" value="{{.Query}}" placeholder="Search packages">
    <select name="sort">
      {{- $sort := .Sort}}
      {{- range .SortKeys}}
      <option value="{{.}}"{{if eq . $sort}} selected{{end}}>{{.}}</option>
      {{- end}}
    </select>
    <button type="submit">Search</button>
  </form>
  <section name="result">
    <h2>Results</h2>
    <ul>
      {{- range .Cards}}
      <li>{{.}}</li>
      {{- end}}
    </ul>
    {{- if .ShowPagination}}
    <div class="pagination">
      <div class="pagination-info">Showing {{.RangeStart}}-{{.RangeEnd}} of {{.Total}} packages</div>
      <div class="button-group pagination-controls">
        {{- if .PrevURL}}
        <a class="button" href="{{.PrevURL}}">Previous</a>
        {{- end}}
        {{- range .Window}}
        {{- if .Ellipsis}}
        <span class="pagination-ellipsis">...</span>
        {{- else if .Current}}
        <span class="button current">{{.Label}}</span>
        {{- else}}
        <a class="button" href="{{.URL}}">{{.Label}}</a>
        {{- end}}
        {{- end}}
        {{- if .NextURL}}
        <a class="button" href="{{.NextURL}}">Next</a>
        {{- end}}
      </div>
    </div>
    {{- end}}
  </section>
</body>
</html>`))

type windowLink struct {
	Label    string
	URL      string
	Current  bool
	Ellipsis bool
}

type resultsPage struct {
	Query          string
	Sort           string
	SortKeys       []string
	Counter        int
	Cards          []template.HTML
	ShowPagination bool
	Window         []windowLink
	PrevURL        string
	NextURL        string
	RangeStart     int
	RangeEnd       int
	Total          int
}

// renderResults runs the pipeline for the request's address-bar state and
// renders the results page. Pipeline failures degrade to an empty result
// list.
func (s *WebServer) renderResults(w http.ResponseWriter, r *http.Request, homeFallback bool) {
	variant := s.eng.Variant()
	params := engine.ParseParams(r.URL.Query(), variant)

	result, err := s.eng.Search(r.Context(), params)
	if err != nil {
		s.logger.Errorf("search failed: %v", err)
		result = engine.Result{Params: params}
	}

	page := resultsPage{
		Query:    params.Query,
		Sort:     result.Params.Sort,
		SortKeys: sorter.Keys(),
		Counter:  result.Page.TotalItems,
		Cards:    s.cards.RenderAll(result.Page.Items),
		Total:    result.Page.TotalItems,
	}
	if homeFallback {
		page.Counter = s.eng.Size()
	}

	if result.Page.TotalPages > 1 {
		page.ShowPagination = true
		page.RangeStart = (result.Params.Page-1)*result.Page.Size + 1
		page.RangeEnd = page.RangeStart + len(result.Page.Items) - 1
		if result.Params.Page > 1 {
			page.PrevURL = s.pageURL(result.Params, variant, result.Params.Page-1)
		}
		if result.Params.Page < result.Page.TotalPages {
			page.NextURL = s.pageURL(result.Params, variant, result.Params.Page+1)
		}
		for _, entry := range result.Window {
			link := windowLink{
				Label:    strconv.Itoa(entry.Page),
				Current:  entry.Current,
				Ellipsis: entry.Ellipsis,
			}
			if !entry.Ellipsis && !entry.Current {
				link.URL = s.pageURL(result.Params, variant, entry.Page)
			}
			page.Window = append(page.Window, link)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := resultsTemplate.Execute(w, page); err != nil {
		s.logger.Errorf("rendering results page: %v", err)
	}
}

// pageURL encodes the canonical /search URL for the same query and sort
// at a different page.
func (s *WebServer) pageURL(p engine.Params, variant engine.Variant, page int) string {
	p.Page = page
	values := p.Values(variant)
	encoded := values.Encode()
	if encoded == "" {
		return "/search"
	}
	return "/search?" + encoded
}
