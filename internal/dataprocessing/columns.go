package dataprocessing

import (
	"slices"
	"sort"
	"strings"
)

// Canonical column names as they appear in the published datasets
const (
	ColStartTime    = "Start Time"
	ColEndTime      = "End Time"
	ColTripDuration = "Trip Duration"
	ColStartStation = "Start Station"
	ColEndStation   = "End Station"
	ColUserType     = "User Type"
	ColGender       = "Gender"
	ColBirthYear    = "Birth Year"
)

// RequiredColumns must be present in every source
var RequiredColumns = []string{ColStartTime, ColTripDuration, ColStartStation, ColEndStation, ColUserType}

// OptionalColumns drive the schema capability flags
var OptionalColumns = []string{ColEndTime, ColGender, ColBirthYear}

// columnIndices holds the position of each known column, -1 when absent
type columnIndices struct {
	startTime    int
	endTime      int
	tripDuration int
	startStation int
	endStation   int
	userType     int
	gender       int
	birthYear    int
}

// normalizeColumnName folds "Start Time", "start_time", "StartTime" and a BOM-prefixed "Start Time" to one key
func normalizeColumnName(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	// BOM decoded as Latin-1
	name = strings.TrimPrefix(name, "\u00ef\u00bb\u00bf")
	name = strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch r {
		case ' ', '_', '-', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// field returns the index slot for a canonical column name, nil for unknown names
func (c *columnIndices) field(name string) *int {
	switch name {
	case ColStartTime:
		return &c.startTime
	case ColEndTime:
		return &c.endTime
	case ColTripDuration:
		return &c.tripDuration
	case ColStartStation:
		return &c.startStation
	case ColEndStation:
		return &c.endStation
	case ColUserType:
		return &c.userType
	case ColGender:
		return &c.gender
	case ColBirthYear:
		return &c.birthYear
	}
	return nil
}

// findColumnIndices maps a header row onto known columns. The first occurrence of a column wins.
// The second result lists the absent RequiredColumns, sorted.
func findColumnIndices(header []string) (columnIndices, []string) {
	cols := columnIndices{-1, -1, -1, -1, -1, -1, -1, -1}

	known := slices.Concat(RequiredColumns, OptionalColumns)
	targets := make(map[string]*int, len(known))
	for _, name := range known {
		targets[normalizeColumnName(name)] = cols.field(name)
	}

	for i, col := range header {
		if idx, ok := targets[normalizeColumnName(col)]; ok && *idx == -1 {
			*idx = i
		}
	}

	var missing []string
	for _, name := range RequiredColumns {
		if *cols.field(name) == -1 {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)

	return cols, missing
}

// hasStartTimeHeader reports whether a row looks like a trip header
func hasStartTimeHeader(row []string) bool {
	for _, cell := range row {
		if normalizeColumnName(cell) == normalizeColumnName(ColStartTime) {
			return true
		}
	}
	return false
}
