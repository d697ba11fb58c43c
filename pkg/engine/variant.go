package engine

import (
	"strings"

	"github.com/pkgdir/pkgdir/pkg/filter"
	"github.com/pkgdir/pkgdir/pkg/query"
	"github.com/pkgdir/pkgdir/pkg/registry"
	"github.com/pkgdir/pkgdir/pkg/textmatch"
)

// Variant is the declarative per-deployment configuration of the search
// pipeline: which filter fields exist and how they compare, which fields
// the text matcher sees and with what boost, and the presentation
// defaults. The two stock variants mirror the package and library
// directories.
type Variant struct {
	Name string

	// Fields lists the recognized filter token fields, tried in order.
	Fields []query.Field

	// Rules configures the predicate policy per filter field.
	Rules filter.Rules

	// Searchable lists the text-matcher fields with their boosts.
	Searchable []textmatch.FieldWeight

	DefaultSort string
	PageSize    int
}

// Packages is the package-directory variant: author/label/platform
// filters, relevance-ordered results, 24 records per page.
func Packages() Variant {
	return Variant{
		Name: "packages",
		Fields: []query.Field{
			{Name: "author", Unquoted: true},
			{Name: "label", Unquoted: true},
			{Name: "platform", Unquoted: true},
		},
		Rules: filter.Rules{
			"author": {
				Policy: filter.PolicySubstring,
				Value:  func(r registry.Record) string { return r.Author },
			},
			"label": {
				Policy: filter.PolicySetMember,
				Value:  func(r registry.Record) string { return r.Labels },
			},
			"platform": {
				Policy: filter.PolicySetMember,
				Value:  func(r registry.Record) string { return r.Platforms },
				// Records without platforms support every platform.
				EmptyPasses: true,
			},
		},
		Searchable: []textmatch.FieldWeight{
			{Name: "name", Weight: 2},
			{Name: "description", Weight: 1},
			{Name: "author", Weight: 1},
			{Name: "platforms", Weight: 1},
			{Name: "labels", Weight: 1},
		},
		DefaultSort: "relevance",
		PageSize:    24,
	}
}

// Libraries is the library-directory variant: author/python filters,
// name-ordered results, 30 records per page.
func Libraries() Variant {
	return Variant{
		Name: "libraries",
		Fields: []query.Field{
			{Name: "author", Unquoted: true},
			{Name: "python", Unquoted: true},
		},
		Rules: filter.Rules{
			"author": {
				Policy: filter.PolicySubstring,
				Value:  func(r registry.Record) string { return r.Author },
			},
			"python": {
				Policy: filter.PolicySetMember,
				Value:  func(r registry.Record) string { return strings.Join(r.PythonVersions, ",") },
			},
		},
		Searchable: []textmatch.FieldWeight{
			{Name: "name", Weight: 2},
			{Name: "description", Weight: 1},
		},
		DefaultSort: "name",
		PageSize:    30,
	}
}

// VariantByName returns the stock variant with the given name, defaulting
// to packages.
func VariantByName(name string) Variant {
	if name == "libraries" {
		return Libraries()
	}
	return Packages()
}

// Docs projects records into matcher documents carrying the variant's
// searchable fields.
func (v Variant) Docs(records []registry.Record) []textmatch.Doc {
	docs := make([]textmatch.Doc, 0, len(records))
	for _, rec := range records {
		fields := make(map[string]string, len(v.Searchable))
		for _, fw := range v.Searchable {
			fields[fw.Name] = fieldText(rec, fw.Name)
		}
		docs = append(docs, textmatch.Doc{ID: rec.ID(), Fields: fields})
	}
	return docs
}

func fieldText(rec registry.Record, field string) string {
	switch field {
	case "name":
		return rec.Name
	case "description":
		return rec.Description
	case "author":
		return rec.Author
	case "platforms":
		return strings.Join(rec.PlatformSet(), " ")
	case "labels":
		return strings.Join(rec.LabelSet(), " ")
	default:
		return ""
	}
}
