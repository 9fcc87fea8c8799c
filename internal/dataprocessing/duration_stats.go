package dataprocessing

import (
	"math"

	"bikeshare/pkg/contracts/domain"
)

// DurationStatistics totals and averages the valid trip durations.
// Rows with an invalid duration are counted in Excluded and otherwise ignored.
// Empty is set only for a table without rows.
func DurationStatistics(table *domain.TripTable) domain.DurationStats {
	if table.Len() == 0 {
		return domain.DurationStats{Empty: true}
	}

	var stats domain.DurationStats
	for _, r := range table.Rows {
		if !r.DurationValid {
			stats.Excluded++
			continue
		}
		stats.Trips++
		stats.TotalSeconds += r.Duration
	}

	// rows present but none usable: not Empty, Trips stays 0
	if stats.Trips == 0 {
		return stats
	}

	stats.Total = SplitHMS(stats.TotalSeconds)
	stats.MeanSeconds = float64(stats.TotalSeconds) / float64(stats.Trips)
	stats.Mean = SplitMinSec(stats.MeanSeconds)
	return stats
}

// SplitHMS decomposes whole seconds into hours, minutes and seconds
func SplitHMS(total int64) domain.HMS {
	return domain.HMS{
		Hours:   total / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: (total % 3600) % 60,
	}
}

// SplitMinSec floors a mean in seconds into whole minutes and seconds
func SplitMinSec(mean float64) domain.MinSec {
	return domain.MinSec{
		Minutes: int64(math.Floor(mean / 60)),
		Seconds: int64(math.Floor(math.Mod(mean, 60))),
	}
}
