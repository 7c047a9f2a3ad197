package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"workclock/internal/domain"
)

// formatHours renders hours with at most two decimals and an "h" suffix.
func formatHours(h float64) string {
	return humanize.FtoaWithDigits(h, 2) + "h"
}

// formatPercent renders a signed percentage such as "+25%".
func formatPercent(p int) string {
	if p > 0 {
		return fmt.Sprintf("+%d%%", p)
	}
	return fmt.Sprintf("%d%%", p)
}

// formatInstant renders t in the display zone.
func (a *App) formatInstant(t time.Time) string {
	return t.In(a.location).Format(a.displayFormat())
}

// clockTime renders the local wall-clock time of t.
func (a *App) clockTime(t time.Time) string {
	return t.In(a.location).Format("15:04")
}

// describeEntry renders one entry on a single line.
func (a *App) describeEntry(e domain.TimeEntry) string {
	h := e.Header()
	switch entry := e.(type) {
	case domain.ClosedEntry:
		return fmt.Sprintf("%s  %s - %s  %s  %s", h.Date, a.clockTime(entry.CheckIn), a.clockTime(entry.CheckOut),
			formatHours(entry.TotalHours), entry.Status())
	default:
		return fmt.Sprintf("%s  %s - ...    %s", h.Date, a.clockTime(h.CheckIn), e.Status())
	}
}

// describeDay renders one calendar day on a single line.
func describeDay(d domain.CalendarDay) string {
	if d.Status == domain.DayAbsent {
		return fmt.Sprintf("%s  %s", d.Date, d.Status)
	}
	return fmt.Sprintf("%s  %-10s  %s", d.Date, d.Status, formatHours(d.Hours()))
}

// elapsed describes how long ago t was, relative to now.
func elapsed(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}
