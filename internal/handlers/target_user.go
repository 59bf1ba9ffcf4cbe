package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/medication_tracker/internal/apperrors"
	"github.com/SscSPs/medication_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/medication_tracker/internal/core/ports/services"
	"github.com/SscSPs/medication_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// meAlias addresses the authenticated user in place of a literal id.
const meAlias = "me"

// resolveTargetUser loads the user named by the :id path parameter.
// It writes the error response itself and reports false when the caller should stop.
func resolveTargetUser(c *gin.Context, userService portssvc.UserReaderSvc) (*domain.User, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")
	if userID == "" {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		return nil, false
	}

	if userID == meAlias {
		user, ok := middleware.GetCurrentUser(c)
		if !ok {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
			return nil, false
		}
		return user, true
	}

	user, err := userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		} else {
			logger.Error("Failed to load user", slog.String("target_user_id", userID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve user"})
		}
		return nil, false
	}
	return user, true
}

// requireSelf rejects requests that act on an account other than the caller's.
func requireSelf(c *gin.Context, target *domain.User) bool {
	callerID, ok := middleware.GetUserIDFromContext(c)
	if !ok || callerID != target.UserID {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("User forbidden to modify another account",
			slog.String("caller_id", callerID), slog.String("target_id", target.UserID))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return false
	}
	return true
}
