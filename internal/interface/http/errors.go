package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/inclusive-studai/internal/application"
	"github.com/oksasatya/inclusive-studai/pkg/helpers"
	"github.com/oksasatya/inclusive-studai/pkg/response"
)

// writeError maps service errors to HTTP statuses. Unexpected errors are
// logged and reported without detail.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, application.ErrInvalidPreferences):
		response.Error[any](c, http.StatusBadRequest, "invalid preferences", err.Error())
	case errors.Is(err, application.ErrNothingToRead):
		response.Error[any](c, http.StatusBadRequest, "nothing to read", nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		response.Error[any](c, http.StatusRequestTimeout, "request cancelled", nil)
	default:
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString("request_id"),
		})
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
