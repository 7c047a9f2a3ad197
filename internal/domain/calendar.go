package domain

import "time"

// DayStatus classifies a calendar day.
type DayStatus string

const (
	DayCompleted  DayStatus = "completed"
	DayIncomplete DayStatus = "incomplete"
	DayAbsent     DayStatus = "absent"
)

// CalendarDay is the calendar projection of one day.
type CalendarDay struct {
	Date       string     `json:"date"`
	CheckIn    *time.Time `json:"checkIn,omitempty"`
	CheckOut   *time.Time `json:"checkOut,omitempty"`
	TotalHours *float64   `json:"totalHours,omitempty"`
	Status     DayStatus  `json:"status"`
}

// CalendarDayFor projects an entry onto the calendar.
func CalendarDayFor(e TimeEntry) CalendarDay {
	h := e.Header()
	checkIn := h.CheckIn
	day := CalendarDay{
		Date:    h.Date,
		CheckIn: &checkIn,
		Status:  DayIncomplete,
	}
	if closed, ok := e.(ClosedEntry); ok {
		checkOut := closed.CheckOut
		hours := closed.TotalHours
		day.CheckOut = &checkOut
		day.TotalHours = &hours
		day.Status = DayCompleted
	}
	return day
}

// AbsentDay is the view of a day with no entry.
func AbsentDay(date string) CalendarDay {
	return CalendarDay{Date: date, Status: DayAbsent}
}

// Hours returns the day's hours, zero unless completed.
func (d CalendarDay) Hours() float64 {
	if d.TotalHours == nil {
		return 0
	}
	return *d.TotalHours
}

// CalendarStats summarizes a calendar range.
type CalendarStats struct {
	TotalDays    int     `json:"totalDays"`
	WorkDays     int     `json:"workDays"`
	CompleteDays int     `json:"completeDays"`
	TotalHours   float64 `json:"totalHours"`
	AverageHours float64 `json:"averageHours"`
}
