package domain

import (
	"time"
)

// TripRecord is one row of a city's trip dataset plus its derived calendar fields
type TripRecord struct {
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time,omitempty"`
	StartStation string    `json:"start_station"`
	EndStation   string    `json:"end_station"`
	UserType     string    `json:"user_type"`

	// Duration is whole seconds; DurationValid is false for empty, malformed or negative values
	Duration      int64 `json:"trip_duration"`
	DurationValid bool  `json:"-"`

	// Gender is empty when missing
	Gender       string `json:"gender,omitempty"`
	BirthYear    int    `json:"birth_year,omitempty"`
	HasBirthYear bool   `json:"-"`

	// Derived from StartTime during loading
	Month     int     `json:"month"`
	DayOfWeek Weekday `json:"day_of_week"`
}

// Schema is the set of optional columns present in a source
type Schema struct {
	HasGender    bool `json:"has_gender"`
	HasBirthYear bool `json:"has_birth_year"`
	HasEndTime   bool `json:"has_end_time"`
}

// TripTable is an ordered, in-memory collection of trip records for one city
type TripTable struct {
	City   City         `json:"city"`
	Source string       `json:"source"`
	Schema Schema       `json:"schema"`
	Rows   []TripRecord `json:"-"`
}

// Len returns the number of rows, treating a nil table as empty
func (t *TripTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Page returns up to limit rows starting at offset. Out of range offsets yield nil.
func (t *TripTable) Page(offset, limit int) []TripRecord {
	if t == nil || offset < 0 || limit <= 0 || offset >= len(t.Rows) {
		return nil
	}
	end := offset + limit
	if end > len(t.Rows) {
		end = len(t.Rows)
	}
	return t.Rows[offset:end]
}

// WithRows returns a table with the same metadata and the given rows
func (t *TripTable) WithRows(rows []TripRecord) *TripTable {
	return &TripTable{
		City:   t.City,
		Source: t.Source,
		Schema: t.Schema,
		Rows:   rows,
	}
}
