package library

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// StatusFilter is the availability/ordering selector of the catalog view.
type StatusFilter string

const (
	StatusAll           StatusFilter = "ALL"
	StatusAvailableOnly StatusFilter = "AVAILABLE_ONLY"
	// StatusNewestFirst keeps every book and orders by descending id. Ids are
	// only a proxy for insertion order; the backend exposes no creation time.
	StatusNewestFirst StatusFilter = "NEWEST_FIRST"
)

// ParseStatusFilter maps CLI spellings ("all", "available", "newest") and the
// canonical names onto a StatusFilter.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return StatusAll, nil
	case "available", "available_only":
		return StatusAvailableOnly, nil
	case "newest", "newest_first":
		return StatusNewestFirst, nil
	default:
		return "", fmt.Errorf("unknown status filter %q (want all, available or newest)", s)
	}
}

// SortOrder is the ordering applied after filtering.
type SortOrder string

const (
	SortInput       SortOrder = "INPUT"
	SortNewestFirst SortOrder = "NEWEST_FIRST"
)

// FilterSpec describes one catalog query.
type FilterSpec struct {
	SearchText string
	Category   string
	Status     StatusFilter
	// SortOrder is implied by Status when Status is NEWEST_FIRST.
	SortOrder SortOrder
}

func (s FilterSpec) effectiveSort() SortOrder {
	if s.Status == StatusNewestFirst {
		return SortNewestFirst
	}
	if s.SortOrder == "" {
		return SortInput
	}
	return s.SortOrder
}

// FilterCatalog returns the books matching spec, in a fresh slice. Search,
// category and status predicates are applied in that order and all of them
// must hold.
func FilterCatalog(catalog []BookRecord, spec FilterSpec) []BookRecord {
	needle := strings.ToLower(strings.TrimSpace(spec.SearchText))
	category := strings.TrimSpace(spec.Category)

	out := make([]BookRecord, 0, len(catalog))
	for _, b := range catalog {
		if needle != "" && !matchesSearch(b, needle) {
			continue
		}
		if category != "" && !strings.EqualFold(b.Category, category) {
			continue
		}
		if spec.Status == StatusAvailableOnly && !b.Available() {
			continue
		}
		out = append(out, b)
	}

	if spec.effectiveSort() == SortNewestFirst {
		slices.SortStableFunc(out, func(a, b BookRecord) int {
			return cmp.Compare(b.ID, a.ID)
		})
	}
	return out
}

func matchesSearch(b BookRecord, needle string) bool {
	if strings.Contains(strings.ToLower(b.Title), needle) ||
		strings.Contains(strings.ToLower(b.Author), needle) {
		return true
	}
	return b.ISBN != nil && strings.Contains(strings.ToLower(*b.ISBN), needle)
}

// Categories lists the distinct categories of catalog in first-seen order,
// folding case. Books without a category are skipped.
func Categories(catalog []BookRecord) []string {
	seen := make(map[string]bool)
	var names []string
	for _, b := range catalog {
		if b.Category == "" {
			continue
		}
		key := strings.ToLower(b.Category)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, b.Category)
	}
	return names
}

// FindBook returns the book with id, if present.
func FindBook(catalog []BookRecord, id int64) (BookRecord, bool) {
	for _, b := range catalog {
		if b.ID == id {
			return b, true
		}
	}
	return BookRecord{}, false
}
