package middleware

import (
	"errors"
	"net/http"
	"strings"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer session token, then re-fetches the user
// so the role always reflects storage. A deleted user with a still-valid
// token is rejected here.
func AuthMiddleware(cfg *config.Config, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "Authorization header required", nil)
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := auth.ParseToken(cfg.JWTSecret, tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		// Role is never trusted from the token
		user, err := authUC.GetCurrentUser(c.Request.Context(), userID)
		if err != nil {
			// Only a missing user or a rejected token voids the session. A
			// store failure is not the client's fault and must surface as an
			// opaque 500 via the error handler, not as "log in again".
			var appErr *apperror.AppError
			if errors.As(err, &appErr) &&
				(appErr.Code == http.StatusNotFound || appErr.Code == http.StatusUnauthorized) {
				response.Error(c, http.StatusUnauthorized, "User not found", nil)
			} else {
				c.Error(err)
			}
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), user.ID.Hex())
		c.Set(string(domain.KeyUserRole), string(user.Role))

		c.Next()
	}
}
