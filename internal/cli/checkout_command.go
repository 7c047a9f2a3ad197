package cli

import (
	"context"

	"workclock/internal/api"
	"workclock/internal/domain"
)

// CheckOutCommand handles the checkout command
type CheckOutCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewCheckOutCommand creates a new checkout command handler
func NewCheckOutCommand(app *App) *CheckOutCommand {
	return &CheckOutCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute closes today's entry for userID
func (c *CheckOutCommand) Execute(ctx context.Context, userID string) error {
	entry, err := c.businessAPI.CheckOut(ctx, userID)
	if err != nil {
		return c.errorHandler.Handle("check out", err)
	}

	closed, ok := entry.(domain.ClosedEntry)
	if !ok {
		return c.errorHandler.Handle("check out", errUnexpectedEntry(entry))
	}
	c.app.printf("Checked out %s at %s (%s): %s worked\n",
		closed.UserID, c.app.clockTime(closed.CheckOut), closed.Date, formatHours(closed.TotalHours))
	return nil
}
