package dataprocessing

import (
	"bikeshare/pkg/contracts/domain"
)

// StationStatistics finds the most used start station, end station and start/end pair.
// Empty station values are ignored; the pair only counts rows with both stations.
func StationStatistics(table *domain.TripTable) domain.StationStats {
	if table.Len() == 0 {
		return domain.StationStats{Empty: true}
	}

	starts := make(map[string]int)
	ends := make(map[string]int)
	pairs := make(map[domain.StationPair]int)
	for _, r := range table.Rows {
		if r.StartStation != "" {
			starts[r.StartStation]++
		}
		if r.EndStation != "" {
			ends[r.EndStation]++
		}
		if r.StartStation != "" && r.EndStation != "" {
			pairs[domain.StationPair{Start: r.StartStation, End: r.EndStation}]++
		}
	}

	start, _, _ := mode(starts)
	end, _, _ := mode(ends)
	pair, count, _ := modeFunc(pairs, comparePairs)

	return domain.StationStats{
		MostCommonStart: start,
		MostCommonEnd:   end,
		MostCommonTrip:  pair,
		TripCount:       count,
	}
}
