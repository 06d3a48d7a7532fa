package appcat

import "strings"

// ReconcileResult holds a merged catalog and the counts reported for it.
type ReconcileResult struct {
	// Records lists refresh-derived records in refresh order followed by
	// baseline-only records in baseline order.
	Records []*Record

	// Overlaps counts refresh records whose name exists in the baseline.
	Overlaps int

	// Additions counts refresh records absent from the baseline.
	Additions int

	// Carried counts baseline records absent from the refresh.
	Carried int

	// DescriptionsKept counts overlaps where the baseline description won.
	DescriptionsKept int
}

// Reconcile merges a baseline catalog (older, trusted for descriptions)
// with a refresh catalog (newer, trusted for platforms, rating, price and
// links).
//
// Names are compared by exact string equality: records that differ only by
// case or surrounding whitespace are treated as different applications.
// When a name repeats within the baseline, its first record is used.
// Inputs are never modified.
func Reconcile(baseline, refresh []*Record) *ReconcileResult {
	byName := make(map[string]*Record, len(baseline))
	for _, r := range baseline {
		if _, ok := byName[r.Name]; !ok {
			byName[r.Name] = r
		}
	}

	result := &ReconcileResult{
		Records: make([]*Record, 0, len(baseline)+len(refresh)),
	}

	refreshed := make(map[string]struct{}, len(refresh))
	for _, r := range refresh {
		refreshed[r.Name] = struct{}{}

		merged := r.Clone()
		if base, ok := byName[r.Name]; ok {
			result.Overlaps++
			if strings.TrimSpace(base.Description) != "" {
				merged.Description = base.Description
				result.DescriptionsKept++
			}
		} else {
			result.Additions++
		}
		result.Records = append(result.Records, merged)
	}

	for _, r := range baseline {
		if _, ok := refreshed[r.Name]; ok {
			continue
		}
		result.Carried++
		result.Records = append(result.Records, r.Clone())
	}

	return result
}
