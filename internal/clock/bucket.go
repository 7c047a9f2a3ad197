package clock

import (
	"fmt"
	"time"

	"workclock/internal/errors"
)

// DayKeyLayout is the layout of a calendar-day key.
const DayKeyLayout = "2006-01-02"

// Bucketer maps instants to calendar days in one location. Day keys are
// zero-padded, so lexical order equals chronological order.
type Bucketer struct {
	loc *time.Location
}

// NewBucketer creates a Bucketer for loc. A nil location means time.Local.
func NewBucketer(loc *time.Location) *Bucketer {
	if loc == nil {
		loc = time.Local
	}
	return &Bucketer{loc: loc}
}

// NewBucketerForZone creates a Bucketer from an IANA zone name such as
// "Europe/Madrid". "Local" and "" select the process timezone.
func NewBucketerForZone(name string) (*Bucketer, error) {
	if name == "" || name == "Local" {
		return NewBucketer(time.Local), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.NewInvalidInputError("timezone", name, err.Error())
	}
	return NewBucketer(loc), nil
}

// Location returns the reference location.
func (b *Bucketer) Location() *time.Location {
	return b.loc
}

// DayKey returns the YYYY-MM-DD key of the local calendar day containing t.
func (b *Bucketer) DayKey(t time.Time) string {
	year, month, day := t.In(b.loc).Date()
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// ParseDay returns local midnight of the day named by key.
func (b *Bucketer) ParseDay(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DayKeyLayout, key, b.loc)
	if err != nil {
		return time.Time{}, errors.NewInvalidInputError("date", key, "expected YYYY-MM-DD")
	}
	return t, nil
}

// IsDayKey reports whether key is a well-formed day key.
func (b *Bucketer) IsDayKey(key string) bool {
	_, err := time.ParseInLocation(DayKeyLayout, key, b.loc)
	return err == nil
}

// Today returns the key of the current local day.
func (b *Bucketer) Today(c Clock) string {
	return b.DayKey(c.Now())
}

// AddDays shifts a day key by n calendar days. Calendar arithmetic keeps
// DST transitions from skipping or repeating a day.
func (b *Bucketer) AddDays(key string, n int) (string, error) {
	t, err := b.ParseDay(key)
	if err != nil {
		return "", err
	}
	return b.DayKey(t.AddDate(0, 0, n)), nil
}

// Window returns the n day keys ending at end inclusive, oldest first.
func (b *Bucketer) Window(end string, n int) ([]string, error) {
	t, err := b.ParseDay(end)
	if err != nil {
		return nil, err
	}
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = b.DayKey(t.AddDate(0, 0, i-n+1))
	}
	return keys, nil
}

// DaysBetween returns every day key from start to end inclusive.
func (b *Bucketer) DaysBetween(start, end string) ([]string, error) {
	from, err := b.ParseDay(start)
	if err != nil {
		return nil, err
	}
	to, err := b.ParseDay(end)
	if err != nil {
		return nil, err
	}
	var keys []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		keys = append(keys, b.DayKey(d))
	}
	return keys, nil
}

// MinutesOfDay returns the minutes elapsed since local midnight at t.
func (b *Bucketer) MinutesOfDay(t time.Time) int {
	local := t.In(b.loc)
	return local.Hour()*60 + local.Minute()
}

// Weekday returns the weekday of the day named by key.
func (b *Bucketer) Weekday(key string) (time.Weekday, error) {
	t, err := b.ParseDay(key)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}
