package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/medication_tracker/internal/core/ports/services"
	"github.com/SscSPs/medication_tracker/internal/dto"
	"github.com/SscSPs/medication_tracker/internal/middleware"
	"github.com/SscSPs/medication_tracker/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// authHandler handles session and password-reset requests.
type authHandler struct {
	authService  portssvc.AuthSvcFacade
	userService  portssvc.UserSvcFacade
	cookieName   string
	cookieSecure bool
}

func newAuthHandler(as portssvc.AuthSvcFacade, us portssvc.UserSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{
		authService:  as,
		userService:  us,
		cookieName:   cfg.SessionCookieName,
		cookieSecure: cfg.SessionCookieSecure,
	}
}

// registerAuthRoutes sets up the routes for authentication.
// limit guards the endpoints that accept guessable input.
func registerAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, authService portssvc.AuthSvcFacade, userService portssvc.UserSvcFacade, limit gin.HandlerFunc) {
	h := newAuthHandler(authService, userService, cfg)

	rg.POST("/sessions", limit, h.login)
	rg.DELETE("/sessions", h.logout)
	rg.POST("/reset_password", limit, h.getResetPasswordToken)
	rg.PUT("/reset_password", h.updatePassword)
}

// login godoc
// @Summary Log in
// @Description Checks credentials and starts a session stored in a cookie.
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sessions [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email missing"})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "password missing"})
		return
	}

	valid, err := h.authService.ValidLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil || !valid {
		logger.Warn("Rejected login", slog.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}

	sessionID, err := h.authService.CreateSession(c.Request.Context(), req.Email)
	if err != nil {
		logger.Error("Failed to create session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create session"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, sessionID, 0, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, dto.LoginResponse{Email: req.Email, Message: "logged in"})
}

// logout godoc
// @Summary Log out
// @Description Destroys the session referenced by the session cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Failure 403 {object} ErrorResponse
// @Router /sessions [delete]
func (h *authHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	user, err := h.authService.GetUserFromSessionID(c.Request.Context(), h.authService.SessionCookie(c.Request))
	if err != nil {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	if err := h.authService.DestroySession(c.Request.Context(), user.UserID); err != nil {
		logger.Error("Failed to destroy session", slog.String("user_id", user.UserID), slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)
	getStatus(c)
}

// getResetPasswordToken godoc
// @Summary Request a password reset token
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body dto.ResetTokenRequest true "Account email"
// @Success 200 {object} dto.ResetTokenResponse
// @Failure 403 {object} ErrorResponse
// @Router /reset_password [post]
func (h *authHandler) getResetPasswordToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ResetTokenRequest
	if err := c.ShouldBind(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	token, err := h.userService.GetResetPasswordToken(c.Request.Context(), req.Email)
	if err != nil {
		logger.Warn("Reset token refused", slog.String("email", req.Email), slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	c.JSON(http.StatusOK, dto.ResetTokenResponse{Email: req.Email, ResetToken: token})
}

// updatePassword godoc
// @Summary Set a new password with a reset token
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body dto.UpdatePasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} ErrorResponse
// @Router /reset_password [put]
func (h *authHandler) updatePassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdatePasswordRequest
	if err := c.ShouldBind(&req); err != nil || req.ResetToken == "" {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	if err := h.userService.UpdatePassword(c.Request.Context(), req.ResetToken, req.NewPassword); err != nil {
		logger.Warn("Password update refused", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Email: req.Email, Message: "Password updated"})
}
