package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/SscSPs/medication_tracker/internal/core/domain"
	"github.com/SscSPs/medication_tracker/internal/core/services"
	"github.com/SscSPs/medication_tracker/internal/middleware"
	"github.com/SscSPs/medication_tracker/internal/repositories/file"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := file.NewUserRepository(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)

	user := domain.User{UserID: "u1", Email: "a@b.com", SessionID: "sess-1"}
	user.SetPassword("pw1")
	require.NoError(t, repo.SaveUser(context.Background(), user))

	authSvc := services.NewAuthService(repo, "session_id")
	r := gin.New()
	r.Use(middleware.SessionAuth(authSvc, []string{"/open/"}))
	whoami := func(c *gin.Context) {
		userID, ok := middleware.GetUserIDFromContext(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, userID)
	}
	r.GET("/open", whoami)
	r.GET("/closed", whoami)
	return r
}

func TestSessionAuth(t *testing.T) {
	r := newAuthRouter(t)

	testCases := []struct {
		name         string
		path         string
		cookie       string
		bearer       string
		expectedCode int
		expectedBody string
	}{
		{"excluded path needs nothing", "/open", "", "", http.StatusOK, "anonymous"},
		{"missing credentials", "/closed", "", "", http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{"unknown session", "/closed", "nope", "", http.StatusForbidden, `{"error":"Forbidden"}`},
		{"valid cookie", "/closed", "sess-1", "", http.StatusOK, "u1"},
		{"bearer fallback", "/closed", "", "sess-1", http.StatusOK, "u1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "session_id", Value: tc.cookie})
			}
			if tc.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tc.bearer)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedCode, w.Code)
			assert.Equal(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	assert.NotNil(t, middleware.GetLoggerFromCtx(context.Background()))
}
