package registry

import (
	"encoding/json"
	"fmt"
	"sort"
)

// DecodeCollection parses a search index payload. The endpoint serves
// either a flat JSON array of records or a {"packages": {...}} map keyed
// by id; both decode to a slice. Records without a name are dropped since
// the name is the matching and sorting key.
func DecodeCollection(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err == nil {
		return validRecords(records), nil
	}

	var wrapped struct {
		Packages map[string]Record `json:"packages"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decoding collection: %w", err)
	}
	if wrapped.Packages == nil {
		return nil, fmt.Errorf("decoding collection: neither an array nor a packages map")
	}

	records = make([]Record, 0, len(wrapped.Packages))
	for id, rec := range wrapped.Packages {
		if rec.Name == "" {
			rec.Name = id
		}
		records = append(records, rec)
	}
	// Map iteration order is random; keep the collection deterministic.
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return validRecords(records), nil
}

func validRecords(records []Record) []Record {
	out := records[:0:0]
	for _, rec := range records {
		if rec.Name == "" {
			continue
		}
		out = append(out, rec)
	}
	return out
}
