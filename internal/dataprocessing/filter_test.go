package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bikeshare/internal/errors"
	"bikeshare/pkg/contracts/domain"
)

func TestDeriveCalendar(t *testing.T) {
	table := &domain.TripTable{
		City: domain.CityWashington,
		Rows: []domain.TripRecord{
			{StartTime: time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)},  // Sunday
			{StartTime: time.Date(2017, 6, 5, 23, 59, 0, 0, time.UTC)}, // Monday
		},
	}

	derived := DeriveCalendar(table)
	require.Equal(t, 2, derived.Len())
	assert.Equal(t, 1, derived.Rows[0].Month)
	assert.Equal(t, domain.Sunday, derived.Rows[0].DayOfWeek)
	assert.Equal(t, 6, derived.Rows[1].Month)
	assert.Equal(t, domain.Monday, derived.Rows[1].DayOfWeek)
	assert.Equal(t, domain.CityWashington, derived.City)

	assert.Zero(t, table.Rows[0].Month, "input is not modified")
	assert.Nil(t, DeriveCalendar(nil))
}

func TestFilter(t *testing.T) {
	table := sampleTable()

	tests := []struct {
		name     string
		criteria domain.FilterCriteria
		want     int
	}{
		{"no filter", domain.NoFilter(), 5},
		{"month only", domain.FilterCriteria{Month: domain.March, Day: domain.AllDays}, 3},
		{"day only", domain.FilterCriteria{Month: domain.AllMonths, Day: domain.Friday}, 3},
		{"month and day", domain.FilterCriteria{Month: domain.January, Day: domain.Monday}, 1},
		{"no match", domain.FilterCriteria{Month: domain.February, Day: domain.AllDays}, 0},
		{"month without that day", domain.FilterCriteria{Month: domain.June, Day: domain.Friday}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(table, tt.criteria)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Len())
			assert.Equal(t, table.Schema, got.Schema)
			for _, r := range got.Rows {
				assert.True(t, tt.criteria.Matches(r))
			}
		})
	}

	assert.Equal(t, 5, table.Len(), "input is not modified")
}

func TestFilter_Idempotent(t *testing.T) {
	criteria := []domain.FilterCriteria{
		domain.NoFilter(),
		{Month: domain.March, Day: domain.Friday},
		{Month: domain.March, Day: domain.AllDays},
		{Month: domain.AllMonths, Day: domain.Sunday},
		{Month: domain.February, Day: domain.AllDays},
	}

	for _, c := range criteria {
		t.Run(c.String(), func(t *testing.T) {
			once, err := Filter(sampleTable(), c)
			require.NoError(t, err)

			twice, err := Filter(once, c)
			require.NoError(t, err)

			assert.Equal(t, once.Len(), twice.Len())
			assert.Equal(t, once.Rows, twice.Rows)
			assert.Equal(t, once.Schema, twice.Schema)
		})
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	got, err := Filter(sampleTable(), domain.FilterCriteria{Month: domain.March, Day: domain.AllDays})
	require.NoError(t, err)

	require.Equal(t, 3, got.Len())
	assert.Equal(t, 5, got.Rows[0].StartTime.Minute())
	assert.Equal(t, 30, got.Rows[1].StartTime.Minute())
	assert.Equal(t, 45, got.Rows[2].StartTime.Minute())
}

func TestFilter_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		criteria domain.FilterCriteria
	}{
		{"month after june", domain.FilterCriteria{Month: 7, Day: domain.AllDays}},
		{"negative month", domain.FilterCriteria{Month: -1, Day: domain.AllDays}},
		{"day out of range", domain.FilterCriteria{Month: domain.AllMonths, Day: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(sampleTable(), tt.criteria)
			assert.Nil(t, got)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
		})
	}

	_, err := Filter(nil, domain.NoFilter())
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}
