package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orgstock/inventory-api/internal/auth"
	"github.com/orgstock/inventory-api/internal/config"
	"github.com/orgstock/inventory-api/internal/constants"
	"github.com/orgstock/inventory-api/internal/dto"
	apierrors "github.com/orgstock/inventory-api/internal/errors"
	"github.com/orgstock/inventory-api/internal/middleware"
	"github.com/orgstock/inventory-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	userService *services.UserService
	cfg         *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService *services.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		cfg:         cfg,
	}
}

// Login authenticates a user and sets the JWT cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.UnauthorizedWithCode(c, apierrors.ErrCodeInvalidCredentials, "Invalid username or password")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	token, err := auth.GenerateToken(h.cfg.JWTSecret, h.cfg.JWTTokenTTL, user.ID, user.IsAdmin)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue token")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.JWTCookieName, token, int(h.cfg.JWTTokenTTL.Seconds()), "/", "", h.secureCookies(), true)

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Validate confirms the JWT cookie still maps to an account that can
// log in. Responds 204 with no body.
func (h *AuthHandler) Validate(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.userService.GetByID(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.Unauthorized(c, "Account no longer exists")
			return
		}
		apierrors.InternalError(c, "")
		return
	}
	if !user.CanLogin() {
		apierrors.Unauthorized(c, "Account is disabled")
		return
	}

	c.Status(http.StatusNoContent)
}

// secureCookies reports whether the jwt cookie should carry the Secure
// attribute. Debug and test modes serve plain HTTP.
func (h *AuthHandler) secureCookies() bool {
	return h.cfg.GinMode == gin.ReleaseMode
}

// Logout clears the JWT cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.JWTCookieName, "", -1, "/", "", h.secureCookies(), true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}
