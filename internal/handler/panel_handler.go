package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adminnotice/panel/internal/admin"
	"adminnotice/panel/internal/handler/middleware"
	"adminnotice/panel/internal/hook"
	"adminnotice/panel/internal/model"
	"adminnotice/panel/pkg/response"
)

// PanelHandler serves admin screens and runs the lifecycle for each of them.
type PanelHandler struct {
	panel  *admin.Panel
	logger *zap.Logger
}

func NewPanelHandler(panel *admin.Panel, logger *zap.Logger) *PanelHandler {
	return &PanelHandler{panel: panel, logger: logger}
}

func (h *PanelHandler) Dashboard(c *gin.Context) {
	h.servePage(c, &model.Screen{ID: model.ScreenDashboard, Base: model.ScreenDashboard}, nil)
}

func (h *PanelHandler) Plugins(c *gin.Context) {
	h.servePage(c, &model.Screen{ID: model.ScreenPlugins, Base: model.ScreenPlugins}, nil)
}

// OptionsPage serves admin.php?page=<slug>.
func (h *PanelHandler) OptionsPage(c *gin.Context) {
	page, screen, err := h.panel.OptionsPage(c.Query("page"))
	if err != nil {
		if errors.Is(err, admin.ErrPageNotFound) {
			renderError(c, http.StatusNotFound, "Sorry, you are not allowed to access this page.")
			return
		}
		h.fail(c, err)
		return
	}
	if user, ok := middleware.AdminUser(c); !ok || !user.Can(page.Capability) {
		renderError(c, http.StatusForbidden, "Sorry, you are not allowed to access this page.")
		return
	}
	h.servePage(c, screen, page)
}

func (h *PanelHandler) servePage(c *gin.Context, screen *model.Screen, page *hook.Page) {
	view, err := h.panel.Serve(c.Request.Context(), admin.Visit{
		URL:            c.Request.URL,
		Screen:         screen,
		Page:           page,
		Lang:           c.Query("lang"),
		AcceptLanguage: c.GetHeader("Accept-Language"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	if view.Redirect != "" {
		c.Redirect(http.StatusFound, view.Redirect)
		c.Abort()
		return
	}

	c.HTML(http.StatusOK, "layout.html", gin.H{
		"Lang":        view.Lang,
		"Title":       view.Title,
		"Menu":        view.Menu,
		"Notices":     view.Notices,
		"Body":        view.Body,
		"LogoutURL":   "/api/v1/auth/logout",
		"LogoutLabel": "Log Out",
	})
}

func (h *PanelHandler) fail(c *gin.Context, err error) {
	h.logger.Error("admin request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	_ = c.Error(err)
	renderError(c, http.StatusInternalServerError, "There has been a critical error on this website.")
}

type noticesResponse struct {
	Screen   *model.Screen  `json:"screen,omitempty"`
	Notices  []model.Notice `json:"notices"`
	Redirect string         `json:"redirect,omitempty"`
}

// Notices runs the lifecycle for the admin URL given in ?url= (default: the
// dashboard) and returns the notices as JSON. The screen is taken from ?screen=.
func (h *PanelHandler) Notices(c *gin.Context) {
	target := c.Query("url")
	if target == "" {
		target = h.panel.AdminURL(admin.PathDashboard)
	}
	u, err := url.Parse(target)
	if err != nil || u.IsAbs() || !strings.HasPrefix(u.Path, "/") {
		response.BadRequest(c, "url must be an absolute path")
		return
	}

	screen, page, err := h.screenFromID(c.Query("screen"))
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}
	if page != nil {
		if user, ok := middleware.AdminUser(c); !ok || !user.Can(page.Capability) {
			response.Forbidden(c, "insufficient capability")
			return
		}
	}

	view, err := h.panel.Serve(c.Request.Context(), admin.Visit{
		URL:            u,
		Screen:         screen,
		Lang:           c.Query("lang"),
		AcceptLanguage: c.GetHeader("Accept-Language"),
	})
	if err != nil {
		h.logger.Error("notice request failed", zap.Error(err))
		response.InternalError(c, "failed to render notices")
		return
	}

	notices := view.Notices
	if notices == nil {
		notices = []model.Notice{}
	}
	response.Success(c, noticesResponse{Screen: screen, Notices: notices, Redirect: view.Redirect})
}

// screenFromID maps a screen id back to its screen. The empty id means no
// screen context.
func (h *PanelHandler) screenFromID(id string) (*model.Screen, *hook.Page, error) {
	switch {
	case id == "":
		return nil, nil, nil
	case id == model.ScreenDashboard || id == model.ScreenPlugins:
		return &model.Screen{ID: id, Base: id}, nil, nil
	case strings.HasPrefix(id, model.OptionsPageScreenPrefix):
		page, screen, err := h.panel.OptionsPage(strings.TrimPrefix(id, model.OptionsPageScreenPrefix))
		if err != nil {
			return nil, nil, err
		}
		return screen, page, nil
	}
	return nil, nil, errors.New("unknown screen: " + id)
}
