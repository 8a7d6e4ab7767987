package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"adminnotice/panel/internal/handler/middleware"
)

const loginPath = "/wp-login.php"

// safeRedirect keeps post-login redirects on this host.
func safeRedirect(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, "\\") {
		return fallback
	}
	return target
}

func setSessionCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", secure, true)
}

func renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{"Message": message})
	c.Abort()
}
