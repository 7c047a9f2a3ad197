package cli

import (
	"context"
	"fmt"

	"workclock/internal/api"
	"workclock/internal/clock"
	"workclock/internal/domain"
	"workclock/internal/errors"
)

// TodayCommand handles the today command
type TodayCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewTodayCommand creates a new today command handler
func NewTodayCommand(app *App) *TodayCommand {
	return &TodayCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute shows today's entry for userID
func (c *TodayCommand) Execute(ctx context.Context, userID string) error {
	entry, err := c.businessAPI.Today(ctx, userID)
	if err != nil {
		return c.errorHandler.Handle("load today's entry", err)
	}

	switch e := entry.(type) {
	case nil:
		c.app.printf("No entry for today\n")
	case domain.OpenEntry:
		now := c.app.clock.Now()
		c.app.printf("Checked in at %s (%s), %s worked so far\n",
			c.app.formatInstant(e.CheckIn), elapsed(e.CheckIn, now),
			formatHours(clock.Round(e.Elapsed(now).Hours(), 2)))
	case domain.ClosedEntry:
		c.app.printf("Checked in at %s, out at %s: %s worked\n",
			c.app.formatInstant(e.CheckIn), c.app.formatInstant(e.CheckOut), formatHours(e.TotalHours))
	default:
		return c.errorHandler.Handle("load today's entry", errUnexpectedEntry(entry))
	}
	return nil
}

func errUnexpectedEntry(entry domain.TimeEntry) error {
	return errors.NewInternalError(fmt.Sprintf("unexpected entry type %T", entry), nil)
}
