package domain

import (
	"fmt"
	"strings"
	"time"
)

// City identifies one of the bikeshare systems with a trip dataset
type City string

const (
	CityChicago     City = "chicago"
	CityNewYorkCity City = "new york city"
	CityWashington  City = "washington"
)

// Cities lists the supported cities in prompt order
var Cities = []City{CityChicago, CityNewYorkCity, CityWashington}

// ParseCity converts free text into a City, ignoring case and surrounding space
func ParseCity(s string) (City, error) {
	c := City(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Cities {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown city %q", s)
}

// Title returns the display name of the city
func (c City) Title() string {
	words := strings.Fields(string(c))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Month is a calendar month number. Zero means no month restriction.
type Month int

const (
	AllMonths Month = 0
	January   Month = 1
	February  Month = 2
	March     Month = 3
	April     Month = 4
	May       Month = 5
	June      Month = 6
)

// FilterMonths are the month names accepted as a filter, in order
var FilterMonths = []string{"january", "february", "march", "april", "may", "june"}

// ParseMonth converts "all" or a month name between January and June into a Month
func ParseMonth(s string) (Month, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "all" {
		return AllMonths, nil
	}
	for i, m := range FilterMonths {
		if name == m {
			return Month(i + 1), nil
		}
	}
	return AllMonths, fmt.Errorf("unknown month %q", s)
}

// String returns "All" or the English month name
func (m Month) String() string {
	if m == AllMonths {
		return "All"
	}
	return MonthName(int(m))
}

// MonthName names any month number between 1 and 12
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return fmt.Sprintf("Month(%d)", m)
	}
	return time.Month(m).String()
}

// Weekday is a day of week with Monday=0 through Sunday=6. AllDays means no restriction.
type Weekday int

const (
	AllDays   Weekday = -1
	Monday    Weekday = 0
	Tuesday   Weekday = 1
	Wednesday Weekday = 2
	Thursday  Weekday = 3
	Friday    Weekday = 4
	Saturday  Weekday = 5
	Sunday    Weekday = 6
)

var weekdayNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// WeekdayNames returns the accepted day names, Monday first
func WeekdayNames() []string {
	names := make([]string, len(weekdayNames))
	copy(names, weekdayNames)
	return names
}

// ParseDay converts "all" or a day name into a Weekday
func ParseDay(s string) (Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "all" {
		return AllDays, nil
	}
	for i, d := range weekdayNames {
		if name == d {
			return Weekday(i), nil
		}
	}
	return AllDays, fmt.Errorf("unknown day %q", s)
}

// WeekdayFromTime maps Go's Sunday-first weekday onto the Monday-first numbering
func WeekdayFromTime(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// String returns "All" or the English day name
func (d Weekday) String() string {
	if d == AllDays {
		return "All"
	}
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	name := weekdayNames[d]
	return strings.ToUpper(name[:1]) + name[1:]
}
