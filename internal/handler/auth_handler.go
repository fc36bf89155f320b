package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/techtoearth/onboarding-service/internal/dto"
	"github.com/techtoearth/onboarding-service/internal/service"
)

const refreshCookiePath = "/api/v1/auth/refresh"

// AuthHandler handles email authentication requests
type AuthHandler struct {
	authService  service.AuthService
	destinations Destinations
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, destinations Destinations) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		destinations: destinations,
	}
}

// Register handles email signup. The response carries the destination the
// client should navigate to: the onboarding wizard unless the request already
// supplied a name and the profile is complete.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			c.JSON(http.StatusConflict, dto.ErrorResponse{
				Error:   "Conflict",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad request",
			Message: err.Error(),
		})
		return
	}

	h.writeSignInResult(c, http.StatusCreated, result)
}

// Login handles email sign-in.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: err.Error(),
		})
		return
	}

	h.writeSignInResult(c, http.StatusOK, result)
}

// Refresh handles token refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad request",
			Message: "Refresh token not found in cookie",
		})
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: err.Error(),
		})
		return
	}

	h.writeSignInResult(c, http.StatusOK, result)
}

// Logout handles sign-out and refresh token invalidation
func (h *AuthHandler) Logout(c *gin.Context) {
	identityID, exists := c.Get("identity_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Identity not found in context",
		})
		return
	}

	refreshToken, _ := c.Cookie("refresh_token")
	accessToken := bearerToken(c)

	if err := h.authService.Logout(c.Request.Context(), identityID.(string), accessToken, refreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
		return
	}

	c.SetCookie("refresh_token", "", -1, refreshCookiePath, "", true, true)

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Logged out successfully",
	})
}

// GetMe returns the signed-in identity's profile
func (h *AuthHandler) GetMe(c *gin.Context) {
	identityID, exists := c.Get("identity_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Identity not found in context",
		})
		return
	}

	profile, err := h.authService.GetProfile(c.Request.Context(), identityID.(string))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not found",
			Message: "Profile not available yet",
		})
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		IdentityID:       profile.IdentityID,
		Email:            profile.Email,
		FullName:         profile.FullName,
		DisplayName:      profile.DisplayName,
		AvatarURL:        profile.AvatarURL,
		SignupMethod:     profile.SignupMethod,
		Provider:         profile.Provider,
		Location:         profile.Location,
		CurrentRole:      profile.CurrentRole,
		CareerInterests:  profile.CareerInterests,
		ExperienceLevel:  profile.ExperienceLevel,
		Motivation:       profile.Motivation,
		Bio:              profile.Bio,
		ProfileCompleted: profile.ProfileCompleted,
	})
}

func (h *AuthHandler) writeSignInResult(c *gin.Context, status int, result *service.SignInResult) {
	c.SetCookie("refresh_token", result.RefreshToken, result.RefreshExpiresIn, refreshCookiePath, "", true, true)

	response := *result.AuthResponse
	response.Destination = h.destinations.Path(result.Destination)

	c.JSON(status, response)
}
