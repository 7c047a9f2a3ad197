package cli

import (
	"context"

	"workclock/internal/api"
)

// CheckInCommand handles the checkin command
type CheckInCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewCheckInCommand creates a new checkin command handler
func NewCheckInCommand(app *App) *CheckInCommand {
	return &CheckInCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute opens today's entry for userID
func (c *CheckInCommand) Execute(ctx context.Context, userID string) error {
	entry, err := c.businessAPI.CheckIn(ctx, userID)
	if err != nil {
		return c.errorHandler.Handle("check in", err)
	}

	h := entry.Header()
	c.app.printf("Checked in %s at %s (%s)\n", h.UserID, c.app.clockTime(h.CheckIn), h.Date)
	return nil
}
