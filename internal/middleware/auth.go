package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/medication_tracker/internal/apperrors"
	portssvc "github.com/SscSPs/medication_tracker/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// SessionAuth creates a Gin middleware that runs the access-control check on every request.
// Paths in excludedPaths pass through untouched. Everything else needs a session token,
// taken from the session cookie or, failing that, a bearer Authorization header.
func SessionAuth(authSvc portssvc.AuthSvcFacade, excludedPaths []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		if !authSvc.RequireAuth(c.Request.URL.Path, excludedPaths) {
			c.Next()
			return
		}

		sessionID := authSvc.SessionCookie(c.Request)
		if sessionID == "" {
			sessionID = authSvc.AuthorizationHeader(c.Request)
		}
		if sessionID == "" {
			logger.Warn("Session credentials missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := authSvc.GetUserFromSessionID(c.Request.Context(), sessionID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("Unknown session")
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
				return
			}
			logger.Error("Failed to resolve session", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve session"})
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", user.UserID))
		ctx := WithLogger(WithCurrentUser(c.Request.Context(), user), enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
