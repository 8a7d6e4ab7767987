package hook

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"adminnotice/panel/internal/model"
)

type recordingMenu struct{ pages []Page }

func (m *recordingMenu) AddOptionsPage(p Page) error {
	m.pages = append(m.pages, p)
	return nil
}

func newRequest(t *testing.T, raw string) *Request {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return NewRequest(u, nil, nil)
}

func TestDispatcher_RunInitOrder(t *testing.T) {
	d := NewDispatcher()
	var calls []string
	d.OnInit(func(context.Context, *Request) error { calls = append(calls, "a"); return nil })
	d.OnInit(func(context.Context, *Request) error { calls = append(calls, "b"); return nil })

	require.NoError(t, d.RunInit(context.Background(), newRequest(t, "/wp-admin/")))
	require.Equal(t, []string{"a", "b"}, calls)
}

func TestDispatcher_RedirectHaltsRequest(t *testing.T) {
	d := NewDispatcher()
	var later bool
	d.OnInit(func(_ context.Context, req *Request) error {
		req.Redirect("/wp-admin/admin.php?page=x")
		return nil
	})
	d.OnInit(func(context.Context, *Request) error { later = true; return nil })
	d.OnRenderNotices(func(context.Context, *Request) ([]model.Notice, error) {
		t.Fatal("notices rendered after redirect")
		return nil, nil
	})

	req := newRequest(t, "/wp-admin/")
	require.NoError(t, d.RunInit(context.Background(), req))
	require.False(t, later)
	require.True(t, req.Halted())
	require.Equal(t, "/wp-admin/admin.php?page=x", req.RedirectURL())

	notices, err := d.RenderNotices(context.Background(), req)
	require.ErrorIs(t, err, ErrHalted)
	require.Empty(t, notices)
}

func TestDispatcher_InitError(t *testing.T) {
	d := NewDispatcher()
	boom := errors.New("boom")
	d.OnInit(func(context.Context, *Request) error { return boom })

	err := d.RunInit(context.Background(), newRequest(t, "/"))
	require.ErrorIs(t, err, boom)
}

func TestDispatcher_RenderNoticesCollects(t *testing.T) {
	d := NewDispatcher()
	d.OnRenderNotices(func(context.Context, *Request) ([]model.Notice, error) {
		return []model.Notice{{ID: "one"}}, nil
	})
	d.OnRenderNotices(func(context.Context, *Request) ([]model.Notice, error) { return nil, nil })
	d.OnRenderNotices(func(context.Context, *Request) ([]model.Notice, error) {
		return []model.Notice{{ID: "two"}}, nil
	})

	notices, err := d.RenderNotices(context.Background(), newRequest(t, "/"))
	require.NoError(t, err)
	require.Len(t, notices, 2)
	require.Equal(t, "one", notices[0].ID)
	require.Equal(t, "two", notices[1].ID)
}

func TestDispatcher_BuildMenu(t *testing.T) {
	d := NewDispatcher()
	d.OnAdminMenu(func(m Menu) error { return m.AddOptionsPage(Page{Slug: "x"}) })

	menu := &recordingMenu{}
	require.NoError(t, d.BuildMenu(menu))
	require.Len(t, menu.pages, 1)
	require.Equal(t, "x", menu.pages[0].Slug)
}

func TestRequest_ParamsAndTranslate(t *testing.T) {
	req := newRequest(t, "/wp-admin/?a=1&b=2")
	require.Equal(t, "1", req.Params().Get("a"))
	require.Equal(t, "hello", req.T("hello"))
	require.False(t, req.Halted())
}
