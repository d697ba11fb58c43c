package engine

import (
	"net/url"
	"strconv"

	"github.com/pkgdir/pkgdir/pkg/sorter"
)

// Params is the navigation state of one search interaction: the raw query
// (possibly containing filter tokens), the sort key and the 1-based page
// number. It mirrors the address bar's q, sort and page parameters
// bidirectionally.
type Params struct {
	Query string
	Sort  string
	Page  int
}

// ParseParams derives Params from URL query parameters, applying the
// variant's defaults: a missing sort means the default sort, a missing or
// invalid page means page 1. Unrecognized sort keys are kept as given;
// the sorter treats them as identity order.
func ParseParams(values url.Values, v Variant) Params {
	p := Params{
		Query: values.Get("q"),
		Sort:  v.DefaultSort,
		Page:  1,
	}
	if s := values.Get("sort"); s != "" {
		p.Sort = s
	}
	if pageStr := values.Get("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil && parsed > 0 {
			p.Page = parsed
		}
	}
	return p
}

// Values encodes Params back into URL query parameters. Defaults are
// omitted: no q when the query is empty, no sort when it equals the
// variant default, no page when it is 1. ParseParams(p.Values(v), v)
// returns p for any canonical state.
func (p Params) Values(v Variant) url.Values {
	values := url.Values{}
	if p.Query != "" {
		values.Set("q", p.Query)
	}
	if p.Sort != "" && p.Sort != v.DefaultSort {
		values.Set("sort", p.Sort)
	}
	if p.Page > 1 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	return values
}

// IsHome reports whether this state shows the unfiltered landing sections
// rather than search results: empty query, default sort, first page.
func (p Params) IsHome(v Variant) bool {
	return p.Query == "" && (p.Sort == "" || p.Sort == v.DefaultSort) && p.Page <= 1
}

// WithDefaults normalizes zero values to the variant defaults.
func (p Params) WithDefaults(v Variant) Params {
	if p.Sort == "" {
		p.Sort = v.DefaultSort
	}
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}

// SortKeys exposes the recognized sort keys for form controls.
func SortKeys() []string {
	return sorter.Keys()
}
