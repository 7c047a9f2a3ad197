package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workclock/internal/domain"
	"workclock/internal/errors"
)

// seedMonth fills January 2024: days divisible by three are completed, days
// one past a multiple of three are open, the rest have no entry.
func seedMonth(t *testing.T, env *testEnv) map[string]domain.DayStatus {
	t.Helper()
	expected := make(map[string]domain.DayStatus, 31)
	for day := 1; day <= 31; day++ {
		date := fmt.Sprintf("2024-01-%02d", day)
		switch day % 3 {
		case 0:
			env.seedClosed(t, "u1", date, "09:00", "16:30")
			expected[date] = domain.DayCompleted
		case 1:
			env.seedOpen(t, "u1", date, "09:00")
			expected[date] = domain.DayIncomplete
		default:
			expected[date] = domain.DayAbsent
		}
	}
	return expected
}

func TestCalendarService_ClassifiesMonth(t *testing.T) {
	// Arrange
	env := newTestEnv(t, Options{})
	expected := seedMonth(t, env)
	r := DateRange{Start: "2024-01-01", End: "2024-01-31"}
	ctx := context.Background()

	// Act
	views, err := env.services.Calendar.CalendarView(ctx, "u1", r)
	require.NoError(t, err)
	filled, err := env.services.Calendar.FillRange(views, r)
	require.NoError(t, err)

	// Assert
	assert.Len(t, views, 21)
	for _, v := range views {
		assert.NotEqual(t, domain.DayAbsent, v.Status)
	}

	require.Len(t, filled, 31)
	for i, v := range filled {
		assert.Equal(t, fmt.Sprintf("2024-01-%02d", i+1), v.Date)
		assert.Equal(t, expected[v.Date], v.Status, v.Date)
		switch v.Status {
		case domain.DayCompleted:
			require.NotNil(t, v.CheckIn)
			require.NotNil(t, v.CheckOut)
			assert.Equal(t, 7.5, v.Hours())
		case domain.DayIncomplete:
			require.NotNil(t, v.CheckIn)
			assert.Nil(t, v.CheckOut)
			assert.Nil(t, v.TotalHours)
		case domain.DayAbsent:
			assert.Nil(t, v.CheckIn)
			assert.Nil(t, v.TotalHours)
		}
	}
}

func TestCalendarService_CalendarViewRange(t *testing.T) {
	tests := []struct {
		name     string
		r        DateRange
		expected []string
	}{
		{name: "should include both bounds", r: DateRange{Start: "2024-01-10", End: "2024-01-12"}, expected: []string{"2024-01-10", "2024-01-12"}},
		{name: "should allow an open start", r: DateRange{End: "2024-01-10"}, expected: []string{"2024-01-05", "2024-01-10"}},
		{name: "should allow an open end", r: DateRange{Start: "2024-01-12"}, expected: []string{"2024-01-12", "2024-01-20"}},
		{name: "should return everything when unbounded", r: DateRange{}, expected: []string{"2024-01-05", "2024-01-10", "2024-01-12", "2024-01-20"}},
		{name: "should return nothing outside entries", r: DateRange{Start: "2024-02-01", End: "2024-02-29"}, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			env := newTestEnv(t, Options{})
			env.seedClosed(t, "u1", "2024-01-20", "09:00", "17:00")
			env.seedClosed(t, "u1", "2024-01-05", "09:00", "17:00")
			env.seedOpen(t, "u1", "2024-01-12", "09:00")
			env.seedClosed(t, "u1", "2024-01-10", "09:00", "17:00")
			env.seedClosed(t, "u2", "2024-01-11", "09:00", "17:00")

			// Act
			views, err := env.services.Calendar.CalendarView(context.Background(), "u1", tt.r)

			// Assert
			require.NoError(t, err)
			dates := make([]string, len(views))
			for i, v := range views {
				dates[i] = v.Date
			}
			assert.Equal(t, tt.expected, dates)
		})
	}
}

func TestCalendarService_InvalidRange(t *testing.T) {
	tests := []struct {
		name      string
		r         DateRange
		errorType errors.ErrorType
	}{
		{name: "should reject start after end", r: DateRange{Start: "2024-01-31", End: "2024-01-01"}, errorType: errors.ErrorTypeValidation},
		{name: "should reject a malformed start", r: DateRange{Start: "2024/01/01"}, errorType: errors.ErrorTypeInvalidInput},
		{name: "should reject a malformed end", r: DateRange{End: "tomorrow"}, errorType: errors.ErrorTypeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			env := newTestEnv(t, Options{})

			// Act
			_, err := env.services.Calendar.CalendarView(context.Background(), "u1", tt.r)

			// Assert
			require.Error(t, err)
			assert.True(t, errors.IsErrorType(err, tt.errorType), err.Error())
		})
	}
}

func TestCalendarService_FillRangeLimits(t *testing.T) {
	env := newTestEnv(t, Options{})

	t.Run("should require both bounds", func(t *testing.T) {
		_, err := env.services.Calendar.FillRange(nil, DateRange{Start: "2024-01-01"})
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	})

	t.Run("should cap the number of days", func(t *testing.T) {
		_, err := env.services.Calendar.FillRange(nil, DateRange{Start: "2023-01-01", End: "2024-12-31"})
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	})

	t.Run("should fill a leap year", func(t *testing.T) {
		filled, err := env.services.Calendar.FillRange(nil, DateRange{Start: "2024-01-01", End: "2024-12-31"})
		require.NoError(t, err)
		assert.Len(t, filled, 366)
		assert.Equal(t, domain.DayAbsent, filled[365].Status)
	})
}

func TestCalendarService_Stats(t *testing.T) {
	// Arrange
	env := newTestEnv(t, Options{})
	env.seedClosed(t, "u1", "2024-01-02", "09:00", "17:20")
	env.seedClosed(t, "u1", "2024-01-03", "09:00", "16:00")
	env.seedOpen(t, "u1", "2024-01-04", "09:00")
	r := DateRange{Start: "2024-01-01", End: "2024-01-07"}
	views, err := env.services.Calendar.CalendarView(context.Background(), "u1", r)
	require.NoError(t, err)

	// Act
	bounded, err := env.services.Calendar.Stats(views, r)
	require.NoError(t, err)
	unbounded, err := env.services.Calendar.Stats(views, DateRange{})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, domain.CalendarStats{
		TotalDays:    7,
		WorkDays:     3,
		CompleteDays: 2,
		TotalHours:   15.3,
		AverageHours: 7.7,
	}, bounded)
	assert.Equal(t, 3, unbounded.TotalDays)
	assert.Equal(t, bounded.TotalHours, unbounded.TotalHours)
}

func TestCalendarService_StatsEmpty(t *testing.T) {
	env := newTestEnv(t, Options{})

	stats, err := env.services.Calendar.Stats(nil, DateRange{Start: "2024-01-01", End: "2024-01-31"})

	require.NoError(t, err)
	assert.Equal(t, domain.CalendarStats{TotalDays: 31}, stats)
}
