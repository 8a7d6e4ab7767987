package handler

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adminnotice/panel/internal/config"
	"adminnotice/panel/internal/handler/middleware"
	"adminnotice/panel/internal/model"
	"adminnotice/panel/internal/service"
)

// mountPath returns the path component of the admin base URL without a
// trailing slash ("" for the site root).
func mountPath(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse admin base url: %w", err)
	}
	return strings.TrimRight(u.Path, "/"), nil
}

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	authService service.AuthService,
	authHandler *AuthHandler,
	panelHandler *PanelHandler,
) (*gin.Engine, error) {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	base, err := mountPath(cfg.Admin.BaseURL)
	if err != nil {
		return nil, err
	}
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Browser login
	r.GET(loginPath, authHandler.LoginForm)
	r.POST(loginPath, authHandler.LoginSubmit)

	// Admin screens
	screens := r.Group(base)
	screens.Use(middleware.PageAuth(authService, loginPath))
	{
		screens.GET("/", panelHandler.Dashboard)
		screens.GET("/index.php", panelHandler.Dashboard)
		screens.GET("/plugins.php", middleware.RequireCapability(model.CapActivatePlugins), panelHandler.Plugins)
		screens.GET("/admin.php", panelHandler.OptionsPage)
	}

	// JSON API
	api := r.Group("/api/v1")
	api.Use(middleware.CORS(cfg.CORS))
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
	}

	protected := api.Group("/admin")
	protected.Use(middleware.APIAuth(authService))
	{
		protected.GET("/notices", panelHandler.Notices)
	}

	return r, nil
}
