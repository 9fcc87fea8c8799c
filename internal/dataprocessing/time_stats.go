package dataprocessing

import (
	"bikeshare/pkg/contracts/domain"
)

// TimeStatistics finds the most common month, day of week and start hour
func TimeStatistics(table *domain.TripTable) domain.TimeStats {
	if table.Len() == 0 {
		return domain.TimeStats{Empty: true}
	}

	months := make(map[int]int, 12)
	days := make(map[domain.Weekday]int, 7)
	hours := make(map[int]int, 24)
	for _, r := range table.Rows {
		months[r.Month]++
		days[r.DayOfWeek]++
		hours[r.StartTime.Hour()]++
	}

	month, _, _ := mode(months)
	day, _, _ := mode(days)
	hour, _, _ := mode(hours)

	return domain.TimeStats{
		MostCommonMonth: month,
		MostCommonDay:   day,
		MostCommonHour:  hour,
	}
}
