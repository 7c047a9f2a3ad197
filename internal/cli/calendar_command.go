package cli

import (
	"context"

	"workclock/internal/api"
	"workclock/internal/validation"
)

// CalendarCommand handles the calendar command
type CalendarCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewCalendarCommand creates a new calendar command handler
func NewCalendarCommand(app *App) *CalendarCommand {
	return &CalendarCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute prints the calendar projection of the query range and its stats
func (c *CalendarCommand) Execute(ctx context.Context, query validation.CalendarQuery) error {
	view, err := c.businessAPI.Calendar(ctx, query)
	if err != nil {
		return c.errorHandler.Handle("load calendar", err)
	}

	if len(view.Entries) == 0 {
		c.app.printf("No entries in range\n")
	}
	for _, day := range view.Entries {
		c.app.printf("%s\n", describeDay(day))
	}

	s := view.Stats
	c.app.printf("\nDays: %d, worked: %d, completed: %d, hours: %s, average per completed day: %s\n",
		s.TotalDays, s.WorkDays, s.CompleteDays, formatHours(s.TotalHours), formatHours(s.AverageHours))
	return nil
}
