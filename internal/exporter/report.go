package exporter

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"bikeshare/pkg/contracts/domain"
)

const (
	separator        = "----------------------------------------"
	noInformation    = "No Information"
	noMatchingTrips  = "No trips match the selected filters."
	noValidDurations = "None of the selected trips has a valid duration."
)

// TextReport writes statistics in the layout of the interactive program
type TextReport struct {
	w   io.Writer
	err error
}

// NewTextReport creates a report writing to w
func NewTextReport(w io.Writer) *TextReport {
	return &TextReport{w: w}
}

// printf records the first write error and skips the rest
func (r *TextReport) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

// Write renders all four statistics groups for result, each followed by its elapsed time
func (r *TextReport) Write(result *domain.PipelineResult) error {
	stats := result.Stats
	r.Time(stats.Time, result.Timings.Time)
	r.Stations(stats.Stations, result.Timings.Stations)
	r.Durations(stats.Durations, result.Timings.Durations)
	r.Users(stats.Users, result.Timings.Users)
	return r.err
}

// Selection echoes the city and filters before the statistics
func (r *TextReport) Selection(city domain.City, criteria domain.FilterCriteria, rows, total int) error {
	r.printf("\nCity: %s | Month: %s | Day: %s\n", city.Title(), criteria.Month, criteria.Day)
	r.printf("Trips selected: %d of %d\n", rows, total)
	r.printf("\n%s\n", separator)
	return r.err
}

// Time writes the most frequent times of travel
func (r *TextReport) Time(stats domain.TimeStats, elapsed time.Duration) error {
	r.printf("\nCalculating The Most Frequent Times of Travel...\n\n")
	if stats.Empty {
		r.printf("%s\n", noMatchingTrips)
	} else {
		r.printf("Most Common Month: %s\n", domain.MonthName(stats.MostCommonMonth))
		r.printf("\nMost Common Day of Week: %s\n", stats.MostCommonDay)
		r.printf("\nMost Common Start Hour: %d\n", stats.MostCommonHour)
	}
	r.footer(elapsed)
	return r.err
}

// Stations writes the most popular stations and trip
func (r *TextReport) Stations(stats domain.StationStats, elapsed time.Duration) error {
	r.printf("\nCalculating The Most Popular Stations and Trip...\n\n")
	if stats.Empty {
		r.printf("%s\n", noMatchingTrips)
	} else {
		r.printf("Most Common Start Station: %s\n", stats.MostCommonStart)
		r.printf("\nMost Common End Station: %s\n", stats.MostCommonEnd)
		r.printf("\nMost Common Start/End Station Combination: (%s, %s) with %d trips\n",
			stats.MostCommonTrip.Start, stats.MostCommonTrip.End, stats.TripCount)
	}
	r.footer(elapsed)
	return r.err
}

// Durations writes total and mean travel time
func (r *TextReport) Durations(stats domain.DurationStats, elapsed time.Duration) error {
	r.printf("\nCalculating Trip Duration...\n\n")
	switch {
	case stats.Empty:
		r.printf("%s\n", noMatchingTrips)
	case stats.Trips == 0:
		r.printf("%s\n", noValidDurations)
	default:
		r.printf("Total Travel Time: %d Hours, %d Minutes, %d Seconds\n",
			stats.Total.Hours, stats.Total.Minutes, stats.Total.Seconds)
		r.printf("or\nTotal Travel Time: %d Seconds\n", stats.TotalSeconds)
		r.printf("\nMean Travel Time: %d Minutes, %d Seconds\n", stats.Mean.Minutes, stats.Mean.Seconds)
		r.printf("or\nMean Travel Time: %s Seconds\n", formatFloat(stats.MeanSeconds))
	}
	if stats.Excluded > 0 {
		r.printf("\n(%d trips without a valid duration were left out)\n", stats.Excluded)
	}
	r.footer(elapsed)
	return r.err
}

// Users writes user type, gender and birth year statistics
func (r *TextReport) Users(stats domain.UserStats, elapsed time.Duration) error {
	r.printf("\nCalculating User Stats...\n\n")
	if stats.Empty {
		r.printf("%s\n", noMatchingTrips)
		r.footer(elapsed)
		return r.err
	}

	r.printf("User Types Count:\n\n")
	r.counts(stats.UserTypes)

	if stats.Gender.Available {
		r.printf("\nGenders Count:\n\n")
		r.counts(stats.Gender.Counts)
	} else {
		r.printf("\nGenders Count: %s\n", noInformation)
	}

	if stats.BirthYear.Available {
		r.printf("\nEarliest Year of Birth: %d\n", stats.BirthYear.Earliest)
		r.printf("\nMost Recent Year of Birth: %d\n", stats.BirthYear.MostRecent)
		r.printf("\nMost Common Year of Birth: %d\n", stats.BirthYear.MostCommon)
	} else {
		r.printf("\nEarliest Year of Birth: %s\n", noInformation)
		r.printf("\nMost Recent Year of Birth: %s\n", noInformation)
		r.printf("\nMost Common Year of Birth: %s\n", noInformation)
	}

	r.footer(elapsed)
	return r.err
}

// counts prints categories by name like the interactive program's groupby listing.
// The statistics keep them by count, which is the order WriteJSON emits.
func (r *TextReport) counts(counts []domain.CategoryCount) {
	counts = slices.Clone(counts)
	slices.SortFunc(counts, func(a, b domain.CategoryCount) int {
		return strings.Compare(a.Value, b.Value)
	})

	width := 0
	for _, c := range counts {
		if len(c.Value) > width {
			width = len(c.Value)
		}
	}
	for _, c := range counts {
		r.printf("%s%s  %d\n", c.Value, strings.Repeat(" ", width-len(c.Value)), c.Count)
	}
}

func (r *TextReport) footer(elapsed time.Duration) {
	r.printf("\nThis took %s seconds.\n\n%s\n", formatElapsed(elapsed), separator)
}

// WriteJSON encodes the result summary as indented JSON. Rows are not included.
func WriteJSON(w io.Writer, result *domain.PipelineResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
