package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"workclock/internal/api"
	"workclock/internal/errors"
	"workclock/internal/validation"
)

// Handler serves the workclock HTTP API on top of a BusinessAPI.
type Handler struct {
	api    api.BusinessAPI
	logger *zap.Logger
}

// NewHandler creates a Handler.
func NewHandler(businessAPI api.BusinessAPI, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{api: businessAPI, logger: logger}
}

// resolveUser picks the user a request acts for: the authenticated user,
// which must match any explicit id, or else the explicit id itself. An empty
// result lets the business API fall back to the default user.
func resolveUser(c *gin.Context, explicit string) (string, error) {
	identity := identityFrom(c)
	if identity == nil {
		return explicit, nil
	}
	if explicit != "" && explicit != identity.UserID {
		return "", errors.NewUnauthorizedError("cannot act on behalf of another user")
	}
	return identity.UserID, nil
}

func (h *Handler) queryUser(c *gin.Context) (string, bool) {
	var q validation.UserQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, h.logger, errors.NewValidationError("invalid query", err))
		return "", false
	}
	userID, err := resolveUser(c, q.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return "", false
	}
	return userID, true
}

func (h *Handler) bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, h.logger, errors.NewValidationError("invalid JSON body", err))
		return false
	}
	return true
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// PostTimeEntry records a check-in or check-out.
func (h *Handler) PostTimeEntry(c *gin.Context) {
	var req validation.TimeEntryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	userID, err := resolveUser(c, req.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	req.UserID = userID

	entry, err := h.api.RecordAction(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, gin.H{"entry": entry})
}

// GetToday returns today's entry or null.
func (h *Handler) GetToday(c *gin.Context) {
	userID, ok := h.queryUser(c)
	if !ok {
		return
	}
	entry, err := h.api.Today(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, gin.H{"entry": entry})
}

// GetHistory returns every entry, most recent first, with a summary.
func (h *Handler) GetHistory(c *gin.Context) {
	userID, ok := h.queryUser(c)
	if !ok {
		return
	}
	history, err := h.api.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, gin.H{"entries": history.Entries, "summary": history.Summary})
}

// GetCalendar returns the calendar view of a range.
func (h *Handler) GetCalendar(c *gin.Context) {
	var q validation.CalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, h.logger, errors.NewValidationError("invalid query", err))
		return
	}
	userID, err := resolveUser(c, q.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	q.UserID = userID

	view, err := h.api.Calendar(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, gin.H{"entries": view.Entries, "stats": view.Stats})
}

// GetAnalytics returns the analytics snapshot.
func (h *Handler) GetAnalytics(c *gin.Context) {
	userID, ok := h.queryUser(c)
	if !ok {
		return
	}
	snapshot, err := h.api.Analytics(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, gin.H{"analytics": snapshot})
}

// GetProfileStats returns lifetime profile statistics.
func (h *Handler) GetProfileStats(c *gin.Context) {
	userID, ok := h.queryUser(c)
	if !ok {
		return
	}
	stats, err := h.api.ProfileStats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, gin.H{"stats": stats})
}

func (h *Handler) GetSettings(c *gin.Context) {
	userID, ok := h.queryUser(c)
	if !ok {
		return
	}
	settings, err := h.api.Settings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, gin.H{"settings": settings})
}

func (h *Handler) PostSettings(c *gin.Context) {
	var req validation.SettingsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	userID, err := resolveUser(c, req.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	req.UserID = userID

	if err := h.api.SaveSettings(c.Request.Context(), req); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, gin.H{})
}

func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := h.queryUser(c)
	if !ok {
		return
	}
	profile, err := h.api.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, gin.H{"profile": profile})
}

func (h *Handler) PostProfile(c *gin.Context) {
	var req validation.ProfileRequest
	if !h.bindJSON(c, &req) {
		return
	}
	userID, err := resolveUser(c, req.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	req.UserID = userID

	if err := h.api.SaveProfile(c.Request.Context(), req); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, gin.H{})
}

// Verify returns the authenticated user.
func (h *Handler) Verify(c *gin.Context) {
	identity := identityFrom(c)
	if identity == nil {
		respondError(c, h.logger, errors.NewUnauthorizedError("no authenticated user"))
		return
	}
	respondOK(c, gin.H{"user": identity})
}
