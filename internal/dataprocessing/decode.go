package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "bikeshare/internal/errors"
	"bikeshare/pkg/contracts/domain"
)

// TimestampLayouts are tried in order. Values carry no zone and are read as UTC wall clock.
var TimestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/06 15:04",
}

// isMissing treats blank cells and the pandas/gota NaN markers as absent
func isMissing(v string) bool {
	switch strings.TrimSpace(v) {
	case "", "NaN", "nan", "NA", "<nil>":
		return true
	}
	return false
}

// parseTimestamp parses a naive timestamp. Zoned RFC3339 values keep their wall clock.
func parseTimestamp(v string, excelSerials bool) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range TimestampLayouts {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
		}
	}
	if excelSerials {
		// unformatted workbook date cells come through as serial numbers
		if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 {
			t, err := excelize.ExcelDateToTime(serial, false)
			if err == nil {
				return t.Round(time.Second).UTC(), nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", v)
}

// parseDuration returns whole seconds. Fractional values round to the nearest second.
func parseDuration(v string) (int64, bool) {
	if isMissing(v) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return int64(math.Round(f)), true
}

// parseBirthYear accepts "1992" and the float rendering "1992.0"
func parseBirthYear(v string) (int, bool) {
	if isMissing(v) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f <= 0 {
		return 0, false
	}
	return int(f), true
}

// rowDecoder turns string rows into trip records for one header layout
type rowDecoder struct {
	cols         columnIndices
	schema       domain.Schema
	excelSerials bool

	invalidDurations int
}

func newRowDecoder(header []string, excelSerials bool) (*rowDecoder, error) {
	cols, missing := findColumnIndices(header)
	if len(missing) > 0 {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil).
			WithContext("missing_columns", missing)
	}

	return &rowDecoder{
		cols: cols,
		schema: domain.Schema{
			HasGender:    cols.gender >= 0,
			HasBirthYear: cols.birthYear >= 0,
			HasEndTime:   cols.endTime >= 0,
		},
		excelSerials: excelSerials,
	}, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// decode converts one data row. rowNum is 1-based over data rows.
func (d *rowDecoder) decode(row []string, rowNum int) (domain.TripRecord, error) {
	var rec domain.TripRecord

	start, err := parseTimestamp(cell(row, d.cols.startTime), d.excelSerials)
	if err != nil {
		return rec, apperrors.NewRowError(rowNum, ColStartTime, err)
	}
	rec.StartTime = start

	if d.schema.HasEndTime {
		if raw := cell(row, d.cols.endTime); !isMissing(raw) {
			end, err := parseTimestamp(raw, d.excelSerials)
			if err != nil {
				return rec, apperrors.NewRowError(rowNum, ColEndTime, err)
			}
			rec.EndTime = end
		}
	}

	rec.Duration, rec.DurationValid = parseDuration(cell(row, d.cols.tripDuration))
	if !rec.DurationValid {
		d.invalidDurations++
	}

	rec.StartStation = cleanText(cell(row, d.cols.startStation))
	rec.EndStation = cleanText(cell(row, d.cols.endStation))
	rec.UserType = cleanText(cell(row, d.cols.userType))

	if d.schema.HasGender {
		rec.Gender = cleanText(cell(row, d.cols.gender))
	}
	if d.schema.HasBirthYear {
		rec.BirthYear, rec.HasBirthYear = parseBirthYear(cell(row, d.cols.birthYear))
	}

	return rec, nil
}

func cleanText(v string) string {
	if isMissing(v) {
		return ""
	}
	return strings.TrimSpace(v)
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
