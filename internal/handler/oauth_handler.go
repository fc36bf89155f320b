package handler

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/techtoearth/onboarding-service/internal/provider"
	"github.com/techtoearth/onboarding-service/internal/service"
	"go.uber.org/zap"
)

const (
	stateCookieName = "__oauth_state"
	stateTTL        = 5 * time.Minute
)

// OAuthHandler drives the federated sign-in flow. Every callback outcome is
// an HTTP redirect: errors land on the error page with a URL-safe message,
// never on a raw 4xx/5xx.
type OAuthHandler struct {
	provider     provider.OAuthProvider
	authService  service.AuthService
	destinations Destinations
	logger       *zap.Logger
}

// NewOAuthHandler creates a new OAuth handler
func NewOAuthHandler(p provider.OAuthProvider, authService service.AuthService, destinations Destinations, logger *zap.Logger) *OAuthHandler {
	return &OAuthHandler{
		provider:     p,
		authService:  authService,
		destinations: destinations,
		logger:       logger,
	}
}

// Begin issues a state nonce and redirects to the provider's consent URL.
func (h *OAuthHandler) Begin(c *gin.Context) {
	state := h.issueState(c)
	c.Redirect(http.StatusFound, h.provider.AuthCodeURL(state))
}

// Callback handles the provider redirect. The code is single-use, so every
// failure is terminal for this attempt; the user restarts sign-in from the
// entry page.
func (h *OAuthHandler) Callback(c *gin.Context) {
	// Outermost boundary: an unexpected panic must still resolve to a
	// redirect, not a 500.
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("panic in oauth callback",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
			c.Redirect(http.StatusFound, h.destinations.ErrorURL("authentication failed"))
		}
	}()

	// Provider-reported error takes precedence; no exchange is attempted.
	if idpError := c.Query("error"); idpError != "" {
		message := c.Query("error_description")
		if message == "" {
			message = idpError
		}
		h.logger.Warn("provider reported oauth error",
			zap.String("provider", h.provider.Name()),
			zap.String("error", idpError),
			zap.String("description", message),
		)
		c.Redirect(http.StatusFound, h.destinations.ErrorURL(message))
		return
	}

	code := c.Query("code")
	if code == "" {
		// No credential supplied; send the user back to the entry page.
		c.Redirect(http.StatusFound, h.destinations.SignInURL())
		return
	}

	if !h.validateState(c) {
		h.logger.Warn("oauth state mismatch", zap.String("provider", h.provider.Name()))
		c.Redirect(http.StatusFound, h.destinations.ErrorURL("invalid sign-in session, please try again"))
		return
	}

	attrs, err := h.provider.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		h.logger.Error("code exchange failed",
			zap.String("provider", h.provider.Name()),
			zap.Error(err),
		)
		c.Redirect(http.StatusFound, h.destinations.ErrorURL("authentication failed"))
		return
	}

	result, err := h.authService.SignInFederated(c.Request.Context(), *attrs)
	if err != nil {
		h.logger.Error("federated sign-in failed",
			zap.String("provider", h.provider.Name()),
			zap.Error(err),
		)
		c.Redirect(http.StatusFound, h.destinations.ErrorURL("authentication failed"))
		return
	}

	c.SetCookie("refresh_token", result.RefreshToken, result.RefreshExpiresIn, refreshCookiePath, "", true, true)
	c.SetCookie("access_token", result.AuthResponse.AccessToken, result.AuthResponse.ExpiresIn, "/", "", true, false)

	c.Header("Cache-Control", "no-store")
	c.Redirect(http.StatusFound, h.destinations.URL(result.Destination))
}

func (h *OAuthHandler) issueState(c *gin.Context) string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	state := base64.RawURLEncoding.EncodeToString(b)

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(stateTTL.Seconds()),
	})

	return state
}

func (h *OAuthHandler) validateState(c *gin.Context) bool {
	stateQuery := c.Query("state")
	if stateQuery == "" {
		return false
	}

	cookie, err := c.Request.Cookie(stateCookieName)
	if err != nil {
		return false
	}

	return cookie.Value == stateQuery
}
