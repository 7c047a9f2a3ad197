// Package httpapi exposes the workclock business API over HTTP with gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"workclock/internal/auth"
	"workclock/internal/config"
)

// NewRouter registers every route. Health stays outside authentication.
func NewRouter(h *Handler, provider auth.Provider, authCfg config.AuthConfig, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggingMiddleware(logger))

	r.GET("/health", h.Health)

	protected := r.Group("/")
	protected.Use(AuthMiddleware(provider, authCfg.Required, logger))
	{
		entries := protected.Group("/time-entries")
		entries.POST("", h.PostTimeEntry)
		entries.GET("/today", h.GetToday)
		entries.GET("/history", h.GetHistory)
		entries.GET("/calendar", h.GetCalendar)

		protected.GET("/analytics", h.GetAnalytics)
		protected.GET("/profile/stats", h.GetProfileStats)
		protected.GET("/settings", h.GetSettings)
		protected.POST("/settings", h.PostSettings)
		protected.GET("/profile", h.GetProfile)
		protected.POST("/profile", h.PostProfile)
		protected.GET("/auth/verify", h.Verify)
	}
	return r
}

// NewServer wraps handler in an http.Server configured from cfg.
func NewServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// Serve runs srv until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server, cfg config.ServerConfig, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
