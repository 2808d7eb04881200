package middleware

import (
	"errors"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Code == http.StatusInternalServerError {
					logger.Log.Error("Internal server error", "path", c.Request.URL.Path, "error", appErr.Err)
				}
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				// Never expose internal error details to clients; log the
				// actual error server-side and send an opaque message.
				logger.Log.Error("Unhandled error", "path", c.Request.URL.Path, "error", err)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
