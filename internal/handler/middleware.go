package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/techtoearth/onboarding-service/internal/dto"
	"github.com/techtoearth/onboarding-service/internal/service"
)

// AuthMiddleware validates the bearer token and adds identity info to context
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Authorization is required",
			})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set("identity_id", claims.IdentityID)
		c.Set("email", claims.Email)
		c.Set("claims", claims)

		c.Next()
	}
}

// bearerToken extracts the access token from the Authorization header, falling
// back to the access_token cookie set by the OAuth callback.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie("access_token")
	if err != nil {
		return ""
	}
	return cookie
}
