package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adminnotice/panel/internal/model"
	"adminnotice/panel/pkg/response"
)

// RequireCapability checks that the authenticated user holds required.
// Must be used after APIAuth or PageAuth.
func RequireCapability(required model.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := AdminUser(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "missing authentication")
			return
		}
		if !user.Can(required) {
			response.Abort(c, http.StatusForbidden, "sorry, you are not allowed to access this page")
			return
		}
		c.Next()
	}
}
