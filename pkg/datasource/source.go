// Package datasource loads the record collection the engine searches.
//
// Sources cache their collection for the process lifetime: the directory
// data is regenerated out of band and a browsing session works against a
// single immutable snapshot. Failures degrade to an empty collection at
// the call sites that prefer availability over error reporting.
package datasource

import (
	"context"

	"github.com/pkgdir/pkgdir/pkg/registry"
)

// Source produces the flat record collection.
type Source interface {
	Load(ctx context.Context) ([]registry.Record, error)
}

// LoadSoft loads from a source, degrading to an empty collection when the
// load fails. The error is logged by the source itself.
func LoadSoft(ctx context.Context, s Source) []registry.Record {
	records, err := s.Load(ctx)
	if err != nil {
		return nil
	}
	return records
}
