package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/orgstock/inventory-api/internal/auth"
	"github.com/orgstock/inventory-api/internal/constants"
	apierrors "github.com/orgstock/inventory-api/internal/errors"
)

// RequireAuth validates the JWT cookie and stores the claims in the
// request context.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(constants.JWTCookieName)
		if err != nil || token == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(secret, token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				apierrors.UnauthorizedWithCode(c, apierrors.ErrCodeTokenExpired, "Token has expired")
			} else {
				apierrors.Unauthorized(c, "Invalid token")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry the admin flag.
// It must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if !claims.IsAdmin {
			apierrors.Forbidden(c, "Administrator privileges required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdminOrBootstrap enforces admin authentication except while no
// user accounts exist. A fresh database has nobody who could log in, so
// the first seeding call must pass through to create the initial admin.
func RequireAdminOrBootstrap(secret string, hasUsers func() (bool, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		populated, err := hasUsers()
		if err != nil {
			apierrors.InternalError(c, "")
			c.Abort()
			return
		}
		if !populated {
			c.Next()
			return
		}

		token, err := c.Cookie(constants.JWTCookieName)
		if err != nil || token == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		claims, err := auth.ValidateToken(secret, token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				apierrors.UnauthorizedWithCode(c, apierrors.ErrCodeTokenExpired, "Token has expired")
			} else {
				apierrors.Unauthorized(c, "Invalid token")
			}
			c.Abort()
			return
		}
		if !claims.IsAdmin {
			apierrors.Forbidden(c, "Administrator privileges required")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims retrieves the validated token claims from context
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(constants.ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	claims, ok := GetClaims(c)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
