package domain

import (
	"encoding/json"
	"time"

	"workclock/internal/clock"
	"workclock/internal/errors"
)

// Status is the lifecycle state of a TimeEntry.
type Status string

const (
	StatusCheckedIn Status = "checked_in"
	StatusCompleted Status = "completed"
)

// EntryHeader holds the fields shared by both entry variants.
type EntryHeader struct {
	ID      string
	UserID  string
	Date    string
	CheckIn time.Time
}

// Header returns the shared entry fields.
func (h EntryHeader) Header() EntryHeader {
	return h
}

// TimeEntry is the attendance record of one user on one calendar day.
// It is either an OpenEntry or a ClosedEntry.
type TimeEntry interface {
	Header() EntryHeader
	Status() Status
	isTimeEntry()
}

// OpenEntry is a day the user has checked in but not yet checked out.
type OpenEntry struct {
	EntryHeader
}

// ClosedEntry is a completed day.
type ClosedEntry struct {
	EntryHeader
	CheckOut   time.Time
	TotalHours float64
}

func (OpenEntry) isTimeEntry()   {}
func (ClosedEntry) isTimeEntry() {}

// Status returns StatusCheckedIn.
func (OpenEntry) Status() Status { return StatusCheckedIn }

// Status returns StatusCompleted.
func (ClosedEntry) Status() Status { return StatusCompleted }

// EntryID builds the identifier of a user's entry for a day.
func EntryID(userID, date string) string {
	return userID + "_" + date
}

// NewOpenEntry creates the entry written by a check-in at checkIn on day date.
func NewOpenEntry(userID, date string, checkIn time.Time) OpenEntry {
	return OpenEntry{EntryHeader{
		ID:      EntryID(userID, date),
		UserID:  userID,
		Date:    date,
		CheckIn: checkIn,
	}}
}

// Close checks the entry out at checkOut. The entry keeps its day key even
// when checkOut falls on a later calendar day.
func (e OpenEntry) Close(checkOut time.Time) (ClosedEntry, error) {
	if !checkOut.After(e.CheckIn) {
		return ClosedEntry{}, errors.NewValidationError("check-out must be after check-in", nil).
			WithContext("check_in", e.CheckIn.Format(time.RFC3339Nano)).
			WithContext("check_out", checkOut.Format(time.RFC3339Nano))
	}
	return ClosedEntry{
		EntryHeader: e.EntryHeader,
		CheckOut:    checkOut,
		TotalHours:  clock.HoursBetween(e.CheckIn, checkOut),
	}, nil
}

// Elapsed returns the time worked so far at now.
func (e OpenEntry) Elapsed(now time.Time) time.Duration {
	if now.Before(e.CheckIn) {
		return 0
	}
	return now.Sub(e.CheckIn)
}

// Duration returns the wall-clock length of the shift.
func (e ClosedEntry) Duration() time.Duration {
	return e.CheckOut.Sub(e.CheckIn)
}

// MarshalJSON encodes the entry as its persisted record.
func (e OpenEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToRecord(e))
}

// MarshalJSON encodes the entry as its persisted record.
func (e ClosedEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToRecord(e))
}

// HoursOf returns the hours an entry contributes to rollups. Open entries
// contribute nothing.
func HoursOf(e TimeEntry) float64 {
	if closed, ok := e.(ClosedEntry); ok {
		return closed.TotalHours
	}
	return 0
}

// IsCompleted reports whether e is a ClosedEntry.
func IsCompleted(e TimeEntry) bool {
	_, ok := e.(ClosedEntry)
	return ok
}
