package cli

import (
	"context"

	"github.com/dustin/go-humanize"

	"workclock/internal/api"
	"workclock/internal/services"
)

// AnalyticsCommand handles the analytics command
type AnalyticsCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewAnalyticsCommand creates a new analytics command handler
func NewAnalyticsCommand(app *App) *AnalyticsCommand {
	return &AnalyticsCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute prints the dashboard rollups for userID
func (c *AnalyticsCommand) Execute(ctx context.Context, userID string) error {
	snapshot, err := c.businessAPI.Analytics(ctx, userID)
	if err != nil {
		return c.errorHandler.Handle("load analytics", err)
	}

	c.printPeriod("Last 7 days", snapshot.Weekly)
	c.printPeriod("Last 30 days", snapshot.Monthly)

	c.app.printf("\nDaily hours:\n")
	for _, stat := range snapshot.DailyStats {
		c.app.printf("  %s %s  %s\n", stat.Day, stat.Date, formatHours(stat.Hours))
	}

	c.app.printf("\nCompleted days: %d, average %s per workday, %s completed %s\n",
		snapshot.CompleteDays, formatHours(snapshot.AverageDailyHours),
		humanize.Comma(int64(snapshot.TotalEntries)), plural(snapshot.TotalEntries, "entry", "entries"))
	c.app.printf("Punctuality: %d%%, current streak: %d %s\n",
		snapshot.PunctualityScore, snapshot.CurrentStreak, plural(snapshot.CurrentStreak, "day", "days"))

	for _, a := range snapshot.Achievements {
		c.app.printf("%s %s: %s\n", a.Icon, a.Title, a.Description)
	}
	return nil
}

func (c *AnalyticsCommand) printPeriod(label string, p services.PeriodComparison) {
	c.app.printf("%s: %s of %s (%d%%), %s vs previous period\n",
		label, formatHours(p.Hours), formatHours(p.Target), p.CompletionPercent, formatPercent(p.ChangePercent))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
