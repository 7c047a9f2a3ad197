package domain

import (
	"encoding/json"
	"time"

	"workclock/internal/clock"
	"workclock/internal/errors"
)

// EntryRecord is the persisted JSON form of a TimeEntry.
type EntryRecord struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Date       string     `json:"date"`
	CheckIn    time.Time  `json:"checkIn"`
	CheckOut   *time.Time `json:"checkOut,omitempty"`
	TotalHours *float64   `json:"totalHours,omitempty"`
	Status     Status     `json:"status"`
}

// ToRecord converts a domain entry to its record.
func ToRecord(e TimeEntry) EntryRecord {
	h := e.Header()
	rec := EntryRecord{
		ID:      h.ID,
		UserID:  h.UserID,
		Date:    h.Date,
		CheckIn: h.CheckIn,
		Status:  e.Status(),
	}
	if closed, ok := e.(ClosedEntry); ok {
		checkOut := closed.CheckOut
		hours := closed.TotalHours
		rec.CheckOut = &checkOut
		rec.TotalHours = &hours
	}
	return rec
}

// FromRecord converts a record to a domain entry, rejecting records whose
// status disagrees with the presence of a check-out.
func FromRecord(rec EntryRecord) (TimeEntry, error) {
	if rec.UserID == "" {
		return nil, errors.NewValidationError("entry record has no userId", nil)
	}
	if _, err := time.Parse(clock.DayKeyLayout, rec.Date); err != nil {
		return nil, errors.NewValidationError("entry record has no valid date", err).
			WithContext("id", rec.ID)
	}
	if rec.CheckIn.IsZero() {
		return nil, errors.NewValidationError("entry record has no checkIn", nil).
			WithContext("id", rec.ID)
	}

	header := EntryHeader{
		ID:      rec.ID,
		UserID:  rec.UserID,
		Date:    rec.Date,
		CheckIn: rec.CheckIn,
	}
	if header.ID == "" {
		header.ID = EntryID(rec.UserID, rec.Date)
	}

	switch rec.Status {
	case StatusCheckedIn:
		if rec.CheckOut != nil {
			return nil, errors.NewValidationError("checked_in entry must not have a checkOut", nil).
				WithContext("id", header.ID)
		}
		return OpenEntry{header}, nil
	case StatusCompleted:
		if rec.CheckOut == nil {
			return nil, errors.NewValidationError("completed entry must have a checkOut", nil).
				WithContext("id", header.ID)
		}
		if !rec.CheckOut.After(rec.CheckIn) {
			return nil, errors.NewValidationError("checkOut must be after checkIn", nil).
				WithContext("id", header.ID)
		}
		hours := clock.HoursBetween(rec.CheckIn, *rec.CheckOut)
		if rec.TotalHours != nil {
			hours = *rec.TotalHours
		}
		return ClosedEntry{EntryHeader: header, CheckOut: *rec.CheckOut, TotalHours: hours}, nil
	default:
		return nil, errors.NewValidationError("unknown entry status", nil).
			WithContext("id", header.ID).
			WithContext("status", string(rec.Status))
	}
}

// EncodeEntry serializes an entry for storage.
func EncodeEntry(e TimeEntry) ([]byte, error) {
	data, err := json.Marshal(ToRecord(e))
	if err != nil {
		return nil, errors.NewInternalError("failed to encode time entry", err)
	}
	return data, nil
}

// DecodeEntry parses a stored entry.
func DecodeEntry(data []byte) (TimeEntry, error) {
	var rec EntryRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.NewValidationError("malformed time entry record", err)
	}
	return FromRecord(rec)
}

// ToRecordSlice converts domain entries to records.
func ToRecordSlice(entries []TimeEntry) []EntryRecord {
	records := make([]EntryRecord, len(entries))
	for i, e := range entries {
		records[i] = ToRecord(e)
	}
	return records
}
