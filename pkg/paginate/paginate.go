// Package paginate slices an ordered result set into fixed-size pages and
// computes the compressed page-number window shown in navigation controls.
package paginate

import "github.com/pkgdir/pkgdir/pkg/registry"

// maxVisible is the maximum number of page slots (numbers plus ellipses)
// in a navigation window.
const maxVisible = 7

// Page is one window into an ordered result set.
type Page struct {
	// Items holds the records visible on this page. Empty when the
	// requested page number is out of range.
	Items []registry.Record

	// Number is the requested 1-based page number, as given.
	Number int

	// Size is the page size used for slicing.
	Size int

	// TotalItems is the length of the full result set.
	TotalItems int

	// TotalPages is ceil(TotalItems / Size). Navigation controls render
	// nothing when it is 0 or 1.
	TotalPages int
}

// Paginate slices results into the given page. Page numbers below 1 or
// past the last page yield an empty Items slice rather than an error; the
// caller clamps when it wants a non-empty page.
func Paginate(results []registry.Record, page, size int) Page {
	if size < 1 {
		size = 1
	}
	total := len(results)
	totalPages := (total + size - 1) / size

	p := Page{
		Number:     page,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
	}
	if page < 1 || page > totalPages {
		return p
	}

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	p.Items = results[start:end]
	return p
}

// Entry is one slot in a page-number window: either a page number or a
// non-interactive ellipsis placeholder.
type Entry struct {
	Page     int
	Ellipsis bool
	Current  bool
}

// Window computes the compressed page-number window for the navigation
// control, at most 7 slots wide:
//
//	total <= 7:          1 2 3 4 5 6 7
//	current <= 4:        1 2 3 4 5 … total
//	current >= total-3:  1 … total-4 total-3 total-2 total-1 total
//	otherwise:           1 … current-1 current current+1 … total
func Window(current, total int) []Entry {
	if total < 2 {
		return nil
	}

	var entries []Entry
	page := func(n int) {
		entries = append(entries, Entry{Page: n, Current: n == current})
	}
	gap := func() {
		entries = append(entries, Entry{Ellipsis: true})
	}

	switch {
	case total <= maxVisible:
		for i := 1; i <= total; i++ {
			page(i)
		}
	case current <= 4:
		for i := 1; i <= 5; i++ {
			page(i)
		}
		gap()
		page(total)
	case current >= total-3:
		page(1)
		gap()
		for i := total - 4; i <= total; i++ {
			page(i)
		}
	default:
		page(1)
		gap()
		for i := current - 1; i <= current+1; i++ {
			page(i)
		}
		gap()
		page(total)
	}
	return entries
}
