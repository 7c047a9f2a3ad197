package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"workclock/internal/errors"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func respondOK(c *gin.Context, body gin.H) {
	body["success"] = true
	c.JSON(http.StatusOK, body)
}

func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status, body := errorBody(c, logger, err)
	c.JSON(status, body)
}

func abortWithError(c *gin.Context, logger *zap.Logger, err error) {
	status, body := errorBody(c, logger, err)
	c.AbortWithStatusJSON(status, body)
}

func errorBody(c *gin.Context, logger *zap.Logger, err error) (int, errorResponse) {
	if errors.ShouldLogError(err) {
		logger.Error("request error",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	return errors.HTTPStatus(err), errorResponse{
		Success: false,
		Error:   errors.GetUserMessage(err),
		Code:    errors.GetErrorCode(err),
	}
}
