package domain

import "fmt"

// FilterCriteria restricts a table by month and day of week. Each dimension is optional.
type FilterCriteria struct {
	Month Month   `json:"month"`
	Day   Weekday `json:"day"`
}

// NoFilter returns criteria that keep every row
func NoFilter() FilterCriteria {
	return FilterCriteria{Month: AllMonths, Day: AllDays}
}

// Validate checks that both dimensions hold an accepted value
func (c FilterCriteria) Validate() error {
	if c.Month < AllMonths || c.Month > June {
		return fmt.Errorf("month filter out of range: %d", int(c.Month))
	}
	if c.Day < AllDays || c.Day > Sunday {
		return fmt.Errorf("day filter out of range: %d", int(c.Day))
	}
	return nil
}

// Matches reports whether a row's derived fields satisfy the criteria
func (c FilterCriteria) Matches(r TripRecord) bool {
	if c.Month != AllMonths && r.Month != int(c.Month) {
		return false
	}
	if c.Day != AllDays && r.DayOfWeek != c.Day {
		return false
	}
	return true
}

// String renders the criteria the way the CLI echoes a selection
func (c FilterCriteria) String() string {
	return fmt.Sprintf("month=%s day=%s", c.Month, c.Day)
}
