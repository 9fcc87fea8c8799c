package dataprocessing

import (
	"bikeshare/pkg/contracts/domain"
)

// DeriveCalendar returns a copy of table whose rows carry the month (1-12) and
// the Monday-first day of week of their start time. The input is not modified.
func DeriveCalendar(table *domain.TripTable) *domain.TripTable {
	if table == nil {
		return nil
	}

	rows := make([]domain.TripRecord, len(table.Rows))
	for i, r := range table.Rows {
		r.Month = int(r.StartTime.Month())
		r.DayOfWeek = domain.WeekdayFromTime(r.StartTime)
		rows[i] = r
	}
	return table.WithRows(rows)
}
