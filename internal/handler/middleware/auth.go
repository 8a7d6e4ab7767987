package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"adminnotice/panel/internal/model"
	"adminnotice/panel/internal/service"
	"adminnotice/panel/pkg/response"
)

const (
	ContextKeyAdminUser = "admin_user"
	// SessionCookie carries the access token for browser sessions.
	SessionCookie = "admin_token"
)

// TokenFromRequest returns the bearer token, falling back to the session cookie.
func TokenFromRequest(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// APIAuth rejects requests without a valid access token with a JSON 401.
func APIAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing authorization")
			return
		}
		user, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		c.Set(ContextKeyAdminUser, user)
		c.Next()
	}
}

// PageAuth sends unauthenticated browsers to loginURL, preserving the
// requested page in redirect_to.
func PageAuth(authService service.AuthService, loginURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := TokenFromRequest(c); token != "" {
			if user, err := authService.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(ContextKeyAdminUser, user)
				c.Next()
				return
			}
		}
		target := loginURL + "?redirect_to=" + url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, target)
		c.Abort()
	}
}

// AdminUser returns the authenticated user set by APIAuth or PageAuth.
func AdminUser(c *gin.Context) (*model.AdminUser, bool) {
	val, exists := c.Get(ContextKeyAdminUser)
	if !exists {
		return nil, false
	}
	user, ok := val.(*model.AdminUser)
	return user, ok
}
