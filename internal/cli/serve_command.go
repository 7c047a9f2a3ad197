package cli

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"workclock/internal/auth"
	"workclock/internal/httpapi"
)

// ServeCommand runs the HTTP API
type ServeCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute serves until ctx is cancelled
func (c *ServeCommand) Execute(ctx context.Context) error {
	cfg := c.app.config
	logger := c.app.logger.Named("http")

	gin.SetMode(cfg.Server.Mode)

	provider, err := auth.NewProvider(cfg.Auth, logger.Named("auth"))
	if err != nil {
		return c.errorHandler.Handle("configure authentication", err)
	}

	handler := httpapi.NewHandler(c.app.businessAPI, logger)
	router := httpapi.NewRouter(handler, provider, cfg.Auth, logger)
	srv := httpapi.NewServer(cfg.Server, router)

	logger.Info("starting workclock server",
		zap.String("storage", cfg.Storage.Backend),
		zap.String("auth_mode", cfg.Auth.Mode),
		zap.String("timezone", c.app.location.String()))

	if err := httpapi.Serve(ctx, srv, cfg.Server, logger); err != nil {
		return c.errorHandler.Handle("serve", err)
	}
	return nil
}
