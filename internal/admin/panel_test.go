package admin

import (
	"context"
	"errors"
	"html/template"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"adminnotice/panel/internal/hook"
	"adminnotice/panel/internal/i18n"
	"adminnotice/panel/internal/model"
)

func staticPage(slug string) hook.Page {
	return hook.Page{
		Title:      "Example",
		MenuTitle:  "Example Menu",
		Capability: model.CapManageOptions,
		Slug:       slug,
		Render: func(context.Context, *hook.Request) (template.HTML, error) {
			return "<p>body</p>", nil
		},
	}
}

func newPanel(t *testing.T, d *hook.Dispatcher) *Panel {
	t.Helper()
	p := NewPanel(d, i18n.NewBundle(), "/wp-admin/", nil)
	require.NoError(t, p.Boot())
	return p
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestRegistry_AddOptionsPage(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.AddOptionsPage(staticPage("a")))
	require.NoError(t, r.AddOptionsPage(staticPage("b")))

	err := r.AddOptionsPage(staticPage("a"))
	require.ErrorIs(t, err, ErrDuplicateSlug)

	require.ErrorIs(t, r.AddOptionsPage(hook.Page{Slug: "c"}), ErrInvalidPage)
	require.ErrorIs(t, r.AddOptionsPage(hook.Page{Render: staticPage("x").Render}), ErrInvalidPage)

	pages := r.Pages()
	require.Len(t, pages, 2)
	require.Equal(t, "a", pages[0].Slug)
	require.Equal(t, "b", pages[1].Slug)

	_, err = r.Page("missing")
	require.ErrorIs(t, err, ErrPageNotFound)
}

func TestPanel_BootFailsOnMenuError(t *testing.T) {
	d := hook.NewDispatcher()
	d.OnAdminMenu(func(m hook.Menu) error { return m.AddOptionsPage(staticPage("a")) })
	d.OnAdminMenu(func(m hook.Menu) error { return m.AddOptionsPage(staticPage("a")) })

	p := NewPanel(d, i18n.NewBundle(), "/wp-admin/", nil)
	require.ErrorIs(t, p.Boot(), ErrDuplicateSlug)
}

func TestPanel_ServeOptionsPage(t *testing.T) {
	d := hook.NewDispatcher()
	d.OnAdminMenu(func(m hook.Menu) error { return m.AddOptionsPage(staticPage("example")) })
	d.OnRenderNotices(func(_ context.Context, req *hook.Request) ([]model.Notice, error) {
		return []model.Notice{{ID: "n", Type: model.NoticeTypeInfo, Message: req.Screen.ID}}, nil
	})
	p := newPanel(t, d)

	page, screen, err := p.OptionsPage("example")
	require.NoError(t, err)
	require.Equal(t, "settings_page_example", screen.ID)

	view, err := p.Serve(context.Background(), Visit{
		URL:    mustURL(t, "/wp-admin/admin.php?page=example"),
		Screen: screen,
		Page:   page,
	})
	require.NoError(t, err)
	require.Empty(t, view.Redirect)
	require.Equal(t, "Example", view.Title)
	require.Equal(t, template.HTML("<p>body</p>"), view.Body)
	require.Len(t, view.Notices, 1)
	require.Equal(t, "settings_page_example", view.Notices[0].Message)
	require.Equal(t, language.AmericanEnglish, view.Lang)

	require.Len(t, view.Menu, 3)
	require.Equal(t, "/wp-admin/admin.php?page=example", view.Menu[2].URL)
	require.True(t, view.Menu[2].Active)
	require.False(t, view.Menu[0].Active)
}

func TestPanel_ServeRedirectSkipsRendering(t *testing.T) {
	d := hook.NewDispatcher()
	d.OnAdminMenu(func(m hook.Menu) error {
		page := staticPage("example")
		page.Render = func(context.Context, *hook.Request) (template.HTML, error) {
			return "", errors.New("page rendered after redirect")
		}
		return m.AddOptionsPage(page)
	})
	d.OnInit(func(_ context.Context, req *hook.Request) error {
		req.Redirect("/wp-admin/plugins.php")
		return nil
	})
	d.OnRenderNotices(func(context.Context, *hook.Request) ([]model.Notice, error) {
		return nil, errors.New("notices rendered after redirect")
	})
	p := newPanel(t, d)
	page, screen, err := p.OptionsPage("example")
	require.NoError(t, err)

	view, err := p.Serve(context.Background(), Visit{URL: mustURL(t, "/wp-admin/"), Screen: screen, Page: page})
	require.NoError(t, err)
	require.Equal(t, "/wp-admin/plugins.php", view.Redirect)
	require.Empty(t, view.Notices)
	require.Empty(t, view.Body)
}

func TestPanel_ServeInitError(t *testing.T) {
	d := hook.NewDispatcher()
	boom := errors.New("boom")
	d.OnInit(func(context.Context, *hook.Request) error { return boom })
	p := newPanel(t, d)

	_, err := p.Serve(context.Background(), Visit{URL: mustURL(t, "/wp-admin/")})
	require.ErrorIs(t, err, boom)
}

func TestPanel_ServeLanguage(t *testing.T) {
	p := newPanel(t, hook.NewDispatcher())
	view, err := p.Serve(context.Background(), Visit{
		URL:            mustURL(t, "/wp-admin/plugins.php"),
		Screen:         &model.Screen{ID: model.ScreenPlugins},
		AcceptLanguage: "de-DE",
	})
	require.NoError(t, err)
	require.Equal(t, language.German, view.Lang)
	require.Equal(t, "Plugins", view.Title)
	require.True(t, view.Menu[1].Active)
}

func TestPanel_AdminURL(t *testing.T) {
	p := NewPanel(hook.NewDispatcher(), i18n.NewBundle(), "https://example.com/wp-admin", nil)
	require.Equal(t, "https://example.com/wp-admin/admin.php?page=x", p.AdminURL("admin.php?page=x"))
}
