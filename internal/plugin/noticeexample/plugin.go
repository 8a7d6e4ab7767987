// Package noticeexample is the Admin Notice Example plugin. It shows a
// general info notice on every admin screen, a dismissible success notice until
// it is dismissed, and a reset prompt on its own screens once it has been.
package noticeexample

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"adminnotice/panel/internal/dismissal"
	"adminnotice/panel/internal/hook"
	"adminnotice/panel/internal/i18n"
	"adminnotice/panel/internal/model"
	"adminnotice/panel/pkg/queryarg"
)

// Notice ids, stable across languages.
const (
	NoticeGeneralInfo        = "admin-notice-example-info"
	NoticeDismissibleSuccess = "admin-notice-example-dismissible"
	NoticeResetWarning       = "admin-notice-example-reset"
)

var settingsTmpl = template.Must(template.New("settings").Parse(
	`<div class="wrap"><h2>{{.}}</h2></div>`,
))

type Plugin struct {
	tracker *dismissal.Tracker
}

func New(tracker *dismissal.Tracker) *Plugin {
	return &Plugin{tracker: tracker}
}

// Register wires the plugin into lc. Init callbacks are registered
// dismissal first, reset second, and run independently of each other.
func (p *Plugin) Register(lc hook.Lifecycle) {
	lc.OnAdminMenu(p.addSettingsPage)

	lc.OnRenderNotices(p.generalInfoNotice)
	lc.OnRenderNotices(p.dismissibleSuccessNotice)
	lc.OnRenderNotices(p.resetWarningNotice)

	lc.OnInit(p.tracker.HandleDismissal)
	lc.OnInit(p.tracker.ProcessReset)
}

func (p *Plugin) addSettingsPage(menu hook.Menu) error {
	return menu.AddOptionsPage(hook.Page{
		Title:      i18n.MsgPluginName,
		MenuTitle:  i18n.MsgPluginName,
		Capability: model.CapManageOptions,
		Slug:       dismissal.SettingsSlug,
		Render:     p.renderSettingsPage,
	})
}

func (p *Plugin) renderSettingsPage(_ context.Context, req *hook.Request) (template.HTML, error) {
	var sb strings.Builder
	if err := settingsTmpl.Execute(&sb, req.T(i18n.MsgSettingsHeading)); err != nil {
		return "", fmt.Errorf("render settings page: %w", err)
	}
	return template.HTML(sb.String()), nil
}

func (p *Plugin) generalInfoNotice(_ context.Context, req *hook.Request) ([]model.Notice, error) {
	return []model.Notice{{
		ID:      NoticeGeneralInfo,
		Type:    model.NoticeTypeInfo,
		Label:   req.T(i18n.MsgNoticeLabel),
		Message: req.T(i18n.MsgGeneralInfo),
		Link: &model.NoticeLink{
			Text: req.T(i18n.MsgSettingsLink),
			URL:  p.tracker.SettingsURL(),
		},
	}}, nil
}

func (p *Plugin) dismissibleSuccessNotice(ctx context.Context, req *hook.Request) ([]model.Notice, error) {
	if show, err := p.shows(ctx, req, dismissal.ShowDismissibleSuccess); !show {
		return nil, err
	}

	dismissURL, err := queryarg.Add(req.URL.String(), dismissal.DismissParam, "1")
	if err != nil {
		return nil, fmt.Errorf("build dismiss url: %w", err)
	}
	return []model.Notice{{
		ID:      NoticeDismissibleSuccess,
		Type:    model.NoticeTypeWarning,
		Label:   req.T(i18n.MsgNoticeLabel),
		Message: req.T(i18n.MsgDismissible),
		Link:    &model.NoticeLink{Text: req.T(i18n.MsgDismiss), URL: dismissURL},
	}}, nil
}

func (p *Plugin) resetWarningNotice(ctx context.Context, req *hook.Request) ([]model.Notice, error) {
	if show, err := p.shows(ctx, req, dismissal.ShowResetWarning); !show {
		return nil, err
	}

	resetURL, err := queryarg.Add(p.tracker.SettingsURL(), dismissal.ResetParam, "1")
	if err != nil {
		return nil, fmt.Errorf("build reset url: %w", err)
	}
	return []model.Notice{{
		ID:      NoticeResetWarning,
		Type:    model.NoticeTypeSuccess,
		Label:   req.T(i18n.MsgNoticeLabel),
		Message: req.T(i18n.MsgDismissed),
		Link:    &model.NoticeLink{Text: req.T(i18n.MsgResetAndDisplay), URL: resetURL},
	}}, nil
}

// shows reports whether the tracker selects want for the current screen.
func (p *Plugin) shows(ctx context.Context, req *hook.Request, want dismissal.Decision) (bool, error) {
	got, err := p.tracker.Decide(ctx, req.Screen)
	if err != nil {
		return false, err
	}
	return got == want, nil
}
