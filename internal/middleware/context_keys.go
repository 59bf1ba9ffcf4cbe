package middleware

import (
	"context"

	"github.com/SscSPs/medication_tracker/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// currentUserKey is the key used to store the authenticated user in the request context.
const currentUserKey = contextKey("currentUser")

// WithCurrentUser returns a copy of ctx carrying the authenticated user.
func WithCurrentUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// GetCurrentUser retrieves the authenticated user attached by SessionAuth.
// It returns the user and a boolean indicating if it was found.
func GetCurrentUser(c *gin.Context) (*domain.User, bool) {
	user, ok := c.Request.Context().Value(currentUserKey).(*domain.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// GetUserIDFromContext retrieves the authenticated user ID.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	user, ok := GetCurrentUser(c)
	if !ok {
		return "", false
	}
	return user.UserID, true
}
