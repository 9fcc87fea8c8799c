// Package dataprocessing implements the bikeshare analysis pipeline: loading a
// city's trip dataset, deriving calendar fields, filtering rows, and computing
// the descriptive statistics.
//
// # Architecture
//
// The package is organized into four stages:
//
// 1. Loader: Reads a CSV (via gota) or XLSX (via excelize) source into a TripTable
// 2. DeriveCalendar: Adds month and Monday-first day of week to every row
// 3. Filter: Keeps the rows matching a month and day selection
// 4. Engine: Computes the time, station, duration and user statistics
//
// # Usage
//
//	loader := dataprocessing.NewLoader(cfg.DataSources(), logger)
//	table, err := loader.Load(ctx, domain.CityChicago)
//	if err != nil {
//	    return err
//	}
//
//	selected, err := dataprocessing.Filter(table, domain.FilterCriteria{Month: domain.March, Day: domain.AllDays})
//	if err != nil {
//	    return err
//	}
//
//	stats, err := dataprocessing.NewEngine(logger).Compute(ctx, selected)
//
// # Data Flow
//
//	CSV/XLSX → Loader → TripTable (+calendar) → Filter → TripTable → Engine → Statistics
//
// # Error Handling
//
// Errors are *errors.AppError values:
//
//	- SOURCE_NOT_FOUND when a city has no configured or existing source
//	- PARSING for missing required columns and bad timestamps, with the 1-based row
//	- VALIDATION for out of range filter criteria
//
// Invalid trip durations are not errors. They are left out of the duration
// statistics and counted in DurationStats.Excluded.
//
// # Ties
//
// Every mode resolves ties to the smallest value in natural order. Station
// pairs compare the start station first.
package dataprocessing
