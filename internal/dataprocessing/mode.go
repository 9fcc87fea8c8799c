package dataprocessing

import (
	"cmp"
	"slices"

	"bikeshare/pkg/contracts/domain"
)

// modeFunc returns the most frequent key. Ties go to the key that sorts first under compare.
func modeFunc[K comparable](counts map[K]int, compare func(a, b K) int) (K, int, bool) {
	var best K
	bestCount := 0
	for k, n := range counts {
		if n > bestCount || (n == bestCount && compare(k, best) < 0) {
			best, bestCount = k, n
		}
	}
	return best, bestCount, bestCount > 0
}

// mode is modeFunc under natural order
func mode[K cmp.Ordered](counts map[K]int) (K, int, bool) {
	return modeFunc(counts, cmp.Compare[K])
}

func comparePairs(a, b domain.StationPair) int {
	if c := cmp.Compare(a.Start, b.Start); c != 0 {
		return c
	}
	return cmp.Compare(a.End, b.End)
}

// categoryCounts flattens counts sorted by count descending, then value ascending
func categoryCounts(counts map[string]int) []domain.CategoryCount {
	out := make([]domain.CategoryCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, domain.CategoryCount{Value: v, Count: n})
	}
	slices.SortFunc(out, func(a, b domain.CategoryCount) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return out
}
