// Package admin is the host side of the admin panel: it owns the menu,
// resolves screens, and drives the init and render-notices phases for each
// request.
package admin

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"adminnotice/panel/internal/hook"
	"adminnotice/panel/internal/i18n"
	"adminnotice/panel/internal/model"
	"adminnotice/panel/pkg/queryarg"
)

// Admin paths relative to the base URL.
const (
	PathDashboard = "index.php"
	PathPlugins   = "plugins.php"
	PathAdmin     = "admin.php"
)

// Visit describes one inbound admin request.
type Visit struct {
	URL            *url.URL
	Screen         *model.Screen
	Page           *hook.Page
	Lang           string
	AcceptLanguage string
}

type MenuItem struct {
	Title  string
	URL    string
	Active bool
}

// View is the outcome of a request cycle. When Redirect is set every other
// field is empty and the caller must redirect without writing a body.
type View struct {
	Redirect string
	Title    string
	Lang     language.Tag
	Screen   *model.Screen
	Menu     []MenuItem
	Notices  []model.Notice
	Body     template.HTML
}

type Panel struct {
	dispatcher *hook.Dispatcher
	registry   *Registry
	bundle     *i18n.Bundle
	baseURL    string
	logger     *zap.Logger
}

func NewPanel(dispatcher *hook.Dispatcher, bundle *i18n.Bundle, baseURL string, logger *zap.Logger) *Panel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Panel{
		dispatcher: dispatcher,
		registry:   NewRegistry(),
		bundle:     bundle,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// Boot runs admin_menu. Call once after every plugin has registered.
func (p *Panel) Boot() error {
	if err := p.dispatcher.BuildMenu(p.registry); err != nil {
		return fmt.Errorf("build admin menu: %w", err)
	}
	for _, page := range p.registry.Pages() {
		p.logger.Info("options page registered", zap.String("slug", page.Slug), zap.String("capability", string(page.Capability)))
	}
	return nil
}

func (p *Panel) Registry() *Registry { return p.registry }

// AdminURL returns the URL of an admin path such as "admin.php?page=slug".
func (p *Panel) AdminURL(path string) string {
	return queryarg.AdminURL(p.baseURL, path)
}

// OptionsPage resolves the page and screen for admin.php?page=slug.
func (p *Panel) OptionsPage(slug string) (*hook.Page, *model.Screen, error) {
	page, err := p.registry.Page(slug)
	if err != nil {
		return nil, nil, err
	}
	return &page, model.OptionsPageScreen(slug), nil
}

// Serve runs init, then render-notices, then the page body.
func (p *Panel) Serve(ctx context.Context, v Visit) (*View, error) {
	tag := p.bundle.Resolve(v.Lang, v.AcceptLanguage)
	req := hook.NewRequest(v.URL, v.Screen, p.bundle.Printer(tag))

	if err := p.dispatcher.RunInit(ctx, req); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	if req.Halted() {
		p.logger.Info("request halted", zap.String("url", req.URL.String()), zap.String("redirect", req.RedirectURL()))
		return &View{Redirect: req.RedirectURL()}, nil
	}

	notices, err := p.dispatcher.RenderNotices(ctx, req)
	if err != nil {
		if errors.Is(err, hook.ErrHalted) {
			return &View{Redirect: req.RedirectURL()}, nil
		}
		return nil, fmt.Errorf("render notices: %w", err)
	}

	view := &View{
		Title:   req.T(screenTitle(v)),
		Lang:    tag,
		Screen:  v.Screen,
		Menu:    p.menu(req, v.Screen),
		Notices: notices,
	}
	if v.Page != nil {
		body, err := v.Page.Render(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("render page %s: %w", v.Page.Slug, err)
		}
		view.Body = body
	}
	return view, nil
}

func screenTitle(v Visit) string {
	if v.Page != nil {
		return v.Page.Title
	}
	if v.Screen != nil && v.Screen.ID == model.ScreenPlugins {
		return "Plugins"
	}
	return "Dashboard"
}

func (p *Panel) menu(req *hook.Request, screen *model.Screen) []MenuItem {
	active := ""
	if screen != nil {
		active = screen.ID
	}
	items := []MenuItem{
		{Title: req.T("Dashboard"), URL: p.AdminURL(PathDashboard), Active: active == model.ScreenDashboard},
		{Title: req.T("Plugins"), URL: p.AdminURL(PathPlugins), Active: active == model.ScreenPlugins},
	}
	for _, page := range p.registry.Pages() {
		items = append(items, MenuItem{
			Title:  req.T(page.MenuTitle),
			URL:    p.AdminURL(PathAdmin + "?page=" + url.QueryEscape(page.Slug)),
			Active: active == model.OptionsPageScreenPrefix+page.Slug,
		})
	}
	return items
}
