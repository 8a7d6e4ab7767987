package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"adminnotice/panel/internal/service"
	"adminnotice/panel/pkg/response"
)

type AuthHandler struct {
	authService  service.AuthService
	homeURL      string
	secureCookie bool
}

// NewAuthHandler returns a handler that sends users to homeURL after a form
// login without a usable redirect_to.
func NewAuthHandler(authService service.AuthService, homeURL string, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		homeURL:      homeURL,
		secureCookie: secureCookie,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for an access token (JSON API).
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	tokens, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.InternalError(c, "login failed")
		return
	}

	setSessionCookie(c, tokens.AccessToken, int(tokens.ExpiresIn), h.secureCookie)
	response.Success(c, tokens)
}

// LoginForm renders the browser login page.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Action":     loginPath,
		"RedirectTo": safeRedirect(c.Query("redirect_to"), h.homeURL),
	})
}

// LoginSubmit handles the login form post.
func (h *AuthHandler) LoginSubmit(c *gin.Context) {
	redirectTo := safeRedirect(c.PostForm("redirect_to"), h.homeURL)

	tokens, err := h.authService.Login(c.Request.Context(), c.PostForm("log"), c.PostForm("pwd"))
	if err != nil {
		status, msg := http.StatusInternalServerError, "login failed"
		if errors.Is(err, service.ErrInvalidCredentials) {
			status, msg = http.StatusUnauthorized, "invalid username or password"
		}
		c.HTML(status, "login.html", gin.H{
			"Action":     loginPath,
			"RedirectTo": redirectTo,
			"Error":      msg,
		})
		return
	}

	setSessionCookie(c, tokens.AccessToken, int(tokens.ExpiresIn), h.secureCookie)
	c.Redirect(http.StatusFound, redirectTo)
}

// Logout clears the session cookie. Stateless tokens stay valid until expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	setSessionCookie(c, "", -1, h.secureCookie)
	if c.ContentType() == "application/json" || c.GetHeader("Authorization") != "" {
		response.Success(c, nil)
		return
	}
	c.Redirect(http.StatusFound, loginPath)
}
