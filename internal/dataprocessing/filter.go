package dataprocessing

import (
	apperrors "bikeshare/internal/errors"
	"bikeshare/pkg/contracts/domain"
)

// Filter returns a new table holding the rows that match criteria, in their
// original order. An empty result is valid. The input table is not modified.
func Filter(table *domain.TripTable, criteria domain.FilterCriteria) (*domain.TripTable, error) {
	if err := criteria.Validate(); err != nil {
		return nil, apperrors.NewValidationError("invalid filter", err).
			WithContext("month", int(criteria.Month)).
			WithContext("day", int(criteria.Day))
	}
	if table == nil {
		return nil, apperrors.NewValidationError("no table to filter", nil)
	}

	rows := make([]domain.TripRecord, 0, len(table.Rows))
	for _, r := range table.Rows {
		if criteria.Matches(r) {
			rows = append(rows, r)
		}
	}
	return table.WithRows(rows), nil
}
