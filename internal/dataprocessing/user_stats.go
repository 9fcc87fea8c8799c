package dataprocessing

import (
	"bikeshare/pkg/contracts/domain"
)

// UserStatistics counts user types and, when the source has them, genders and birth years.
// A column with no usable value in the selection is reported as unavailable.
func UserStatistics(table *domain.TripTable) domain.UserStats {
	if table.Len() == 0 {
		return domain.UserStats{Empty: true, UserTypes: []domain.CategoryCount{}}
	}

	userTypes := make(map[string]int)
	genders := make(map[string]int)
	years := make(map[int]int)
	for _, r := range table.Rows {
		if r.UserType != "" {
			userTypes[r.UserType]++
		}
		if r.Gender != "" {
			genders[r.Gender]++
		}
		if r.HasBirthYear {
			years[r.BirthYear]++
		}
	}

	stats := domain.UserStats{UserTypes: categoryCounts(userTypes)}

	if table.Schema.HasGender && len(genders) > 0 {
		stats.Gender = domain.GenderStats{Available: true, Counts: categoryCounts(genders)}
	}

	if table.Schema.HasBirthYear && len(years) > 0 {
		stats.BirthYear = birthYearStats(years)
	}

	return stats
}

func birthYearStats(years map[int]int) domain.BirthYearStats {
	first := true
	var earliest, latest int
	for y := range years {
		if first || y < earliest {
			earliest = y
		}
		if first || y > latest {
			latest = y
		}
		first = false
	}
	common, _, _ := mode(years)

	return domain.BirthYearStats{
		Available:  true,
		Earliest:   earliest,
		MostRecent: latest,
		MostCommon: common,
	}
}
