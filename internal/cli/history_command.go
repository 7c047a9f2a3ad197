package cli

import (
	"context"

	"workclock/internal/api"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewHistoryCommand creates a new history command handler
func NewHistoryCommand(app *App) *HistoryCommand {
	return &HistoryCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute lists every entry of userID, most recent first, then the summary.
// limit > 0 caps the number of listed entries; the summary always covers all.
func (c *HistoryCommand) Execute(ctx context.Context, userID string, limit int) error {
	history, err := c.businessAPI.History(ctx, userID)
	if err != nil {
		return c.errorHandler.Handle("load history", err)
	}

	if len(history.Entries) == 0 {
		c.app.printf("No entries found\n")
		return nil
	}

	entries := history.Entries
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for _, entry := range entries {
		c.app.printf("%s\n", c.app.describeEntry(entry))
	}

	s := history.Summary
	c.app.printf("\nTotal: %s over %d completed days, average %s per day, %d%% of the weekly target\n",
		formatHours(s.TotalHours), s.CompleteDays, formatHours(s.AverageDaily), s.Compliance)
	return nil
}
