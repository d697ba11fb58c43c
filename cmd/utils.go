package cmd

import (
	"context"
	"net/http"

	"github.com/pkgdir/pkgdir/pkg/config"
	"github.com/pkgdir/pkgdir/pkg/datasource"
	"github.com/pkgdir/pkgdir/pkg/engine"
	"github.com/pkgdir/pkgdir/pkg/registry"
	"github.com/pkgdir/pkgdir/pkg/textmatch"
)

// variantFromConfig resolves the deployment variant and applies the
// config overrides.
func variantFromConfig(cfg *config.Config) engine.Variant {
	v := engine.VariantByName(cfg.Variant)
	if cfg.PageSize > 0 {
		v.PageSize = cfg.PageSize
	}
	if cfg.DefaultSort != "" {
		v.DefaultSort = cfg.DefaultSort
	}
	return v
}

// collectionSource picks the configured index location: a remote endpoint
// when one is set, otherwise the local site build.
func collectionSource(cfg *config.Config) datasource.Source {
	if cfg.IndexEndpoint != "" {
		return datasource.NewHTTPSource(cfg.IndexEndpoint, http.DefaultClient)
	}
	return datasource.NewFileSource(cfg.IndexPath())
}

// newEngine assembles an engine over the configured collection. The
// collection loads soft: a missing or malformed index yields an empty,
// fully functional engine.
func newEngine(ctx context.Context, cfg *config.Config, matcher textmatch.Matcher) *engine.Engine {
	variant := variantFromConfig(cfg)
	if matcher == nil {
		matcher = textmatch.NewSQLiteMatcher(variant.Searchable)
	}
	records := datasource.LoadSoft(ctx, collectionSource(cfg))
	if records == nil {
		records = []registry.Record{}
	}
	return engine.New(variant, matcher, records)
}
