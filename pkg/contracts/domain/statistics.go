package domain

import (
	"time"
)

// CategoryCount is the number of rows carrying one categorical value
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// StationPair is an ordered (start, end) station combination
type StationPair struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// HMS is a duration split into hours, minutes and seconds
type HMS struct {
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

// TotalSeconds recombines the components
func (h HMS) TotalSeconds() int64 {
	return h.Hours*3600 + h.Minutes*60 + h.Seconds
}

// MinSec is a duration split into whole minutes and seconds
type MinSec struct {
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

// TimeStats holds the most frequent times of travel
type TimeStats struct {
	Empty           bool    `json:"empty"`
	MostCommonMonth int     `json:"most_common_month"`
	MostCommonDay   Weekday `json:"most_common_day"`
	MostCommonHour  int     `json:"most_common_hour"`
}

// StationStats holds the most popular stations and trip
type StationStats struct {
	Empty           bool        `json:"empty"`
	MostCommonStart string      `json:"most_common_start_station"`
	MostCommonEnd   string      `json:"most_common_end_station"`
	MostCommonTrip  StationPair `json:"most_common_trip"`
	TripCount       int         `json:"most_common_trip_count"`
}

// DurationStats holds total and mean trip duration
type DurationStats struct {
	Empty        bool    `json:"empty"`
	Trips        int     `json:"trips"`
	Excluded     int     `json:"excluded"`
	TotalSeconds int64   `json:"total_seconds"`
	Total        HMS     `json:"total"`
	MeanSeconds  float64 `json:"mean_seconds"`
	Mean         MinSec  `json:"mean"`
}

// GenderStats holds counts per gender; Available is false when the source has no gender data
type GenderStats struct {
	Available bool            `json:"available"`
	Counts    []CategoryCount `json:"counts,omitempty"`
}

// BirthYearStats holds birth year extrema and mode; Available is false when there is no birth year data
type BirthYearStats struct {
	Available  bool `json:"available"`
	Earliest   int  `json:"earliest,omitempty"`
	MostRecent int  `json:"most_recent,omitempty"`
	MostCommon int  `json:"most_common,omitempty"`
}

// UserStats holds user demographics
type UserStats struct {
	Empty     bool            `json:"empty"`
	UserTypes []CategoryCount `json:"user_types"`
	Gender    GenderStats     `json:"gender"`
	BirthYear BirthYearStats  `json:"birth_year"`
}

// Statistics is the immutable result of the four statistics groups over one filtered table
type Statistics struct {
	Empty     bool          `json:"empty"`
	Rows      int           `json:"rows"`
	Time      TimeStats     `json:"time"`
	Stations  StationStats  `json:"stations"`
	Durations DurationStats `json:"durations"`
	Users     UserStats     `json:"users"`
}

// StageTimings records how long each pipeline stage took
type StageTimings struct {
	Load      time.Duration `json:"load"`
	Filter    time.Duration `json:"filter"`
	Time      time.Duration `json:"time_stats"`
	Stations  time.Duration `json:"station_stats"`
	Durations time.Duration `json:"duration_stats"`
	Users     time.Duration `json:"user_stats"`
}

// PipelineResult is what one analysis request hands back to its caller
type PipelineResult struct {
	ID         string         `json:"id"`
	City       City           `json:"city"`
	Criteria   FilterCriteria `json:"criteria"`
	TotalRows  int            `json:"total_rows"`
	Table      *TripTable     `json:"-"`
	Stats      Statistics     `json:"statistics"`
	Timings    StageTimings   `json:"timings"`
	FinishedAt time.Time      `json:"finished_at"`
}
