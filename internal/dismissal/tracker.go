// Package dismissal tracks whether the example success notice has been
// dismissed. The state is a single transient whose presence means
// "dismissed"; its expiry is treated exactly like an explicit reset.
package dismissal

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"adminnotice/panel/internal/hook"
	"adminnotice/panel/internal/model"
	"adminnotice/panel/internal/repository"
	"adminnotice/panel/pkg/queryarg"
)

const (
	FlagKey      = "admin_notice_example_dismissed"
	DismissParam = "dismiss_admin_notice_example"
	ResetParam   = "reset_admin_notice_example"
	triggerValue = "1"

	DefaultTTL = 24 * time.Hour
)

// SettingsSlug is the menu slug of the plugin settings page.
const SettingsSlug = "admin-notice-example-settings"

// Intent classifies a request by the state change it asks for.
type Intent int

const (
	IntentNone Intent = iota
	IntentDismiss
	IntentReset
)

func (i Intent) String() string {
	switch i {
	case IntentDismiss:
		return "dismiss"
	case IntentReset:
		return "reset"
	default:
		return "none"
	}
}

// Decision is the outcome of the render phase for the two state-dependent notices.
type Decision int

const (
	ShowNone Decision = iota
	ShowDismissibleSuccess
	ShowResetWarning
)

func (d Decision) String() string {
	switch d {
	case ShowDismissibleSuccess:
		return "dismissible_success"
	case ShowResetWarning:
		return "reset_warning"
	default:
		return "none"
	}
}

// WantsDismiss reports whether params carry dismiss_admin_notice_example=1.
func WantsDismiss(params url.Values) bool {
	return params.Get(DismissParam) == triggerValue
}

// WantsReset reports whether params carry reset_admin_notice_example=1.
func WantsReset(params url.Values) bool {
	return params.Get(ResetParam) == triggerValue
}

// ClassifyIntent returns the first intent that matches, dismiss before reset.
// The lifecycle wiring does not rely on it: HandleDismissal and ProcessReset
// evaluate the two parameters independently.
func ClassifyIntent(params url.Values) Intent {
	switch {
	case WantsDismiss(params):
		return IntentDismiss
	case WantsReset(params):
		return IntentReset
	default:
		return IntentNone
	}
}

var pluginScreens = map[string]struct{}{
	model.OptionsPageScreenPrefix + SettingsSlug: {},
	model.ScreenPlugins:                          {},
}

// IsPluginScreen reports whether screen is one of the plugin's own pages.
// A nil screen is never in scope.
func IsPluginScreen(screen *model.Screen) bool {
	if screen == nil {
		return false
	}
	_, ok := pluginScreens[screen.ID]
	return ok
}

type Tracker struct {
	store       repository.TransientStore
	settingsURL string
	ttl         time.Duration
	logger      *zap.Logger
}

// NewTracker returns a Tracker. A non-positive ttl selects DefaultTTL; a nil
// logger discards log output.
func NewTracker(store repository.TransientStore, settingsURL string, ttl time.Duration, logger *zap.Logger) *Tracker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		store:       store,
		settingsURL: settingsURL,
		ttl:         ttl,
		logger:      logger,
	}
}

func (t *Tracker) SettingsURL() string { return t.settingsURL }

func (t *Tracker) TTL() time.Duration { return t.ttl }

// ApplyIntent mutates the flag for intent. IntentReset also redirects req to
// the settings page, which halts the request.
func (t *Tracker) ApplyIntent(ctx context.Context, intent Intent, req *hook.Request) error {
	switch intent {
	case IntentDismiss:
		if err := t.store.Set(ctx, FlagKey, []byte(triggerValue), t.ttl); err != nil {
			return fmt.Errorf("set dismissal flag: %w", err)
		}
		t.logger.Debug("success notice dismissed", zap.Duration("ttl", t.ttl))
	case IntentReset:
		if err := t.store.Delete(ctx, FlagKey); err != nil {
			return fmt.Errorf("delete dismissal flag: %w", err)
		}
		target, err := queryarg.Remove(t.settingsURL, ResetParam)
		if err != nil {
			return fmt.Errorf("build reset redirect: %w", err)
		}
		t.logger.Debug("dismissal flag reset", zap.String("redirect", target))
		req.Redirect(target)
	}
	return nil
}

// HandleDismissal is the init callback for the dismiss link.
func (t *Tracker) HandleDismissal(ctx context.Context, req *hook.Request) error {
	if !WantsDismiss(req.Params()) {
		return nil
	}
	return t.ApplyIntent(ctx, IntentDismiss, req)
}

// ProcessReset is the init callback for the reset link.
func (t *Tracker) ProcessReset(ctx context.Context, req *hook.Request) error {
	if !WantsReset(req.Params()) {
		return nil
	}
	return t.ApplyIntent(ctx, IntentReset, req)
}

// IsDismissed reports whether the flag is present.
func (t *Tracker) IsDismissed(ctx context.Context) (bool, error) {
	ok, err := t.store.Exists(ctx, FlagKey)
	if err != nil {
		return false, fmt.Errorf("read dismissal flag: %w", err)
	}
	return ok, nil
}

// Decide selects which of the two mutually exclusive notices to show on screen.
func (t *Tracker) Decide(ctx context.Context, screen *model.Screen) (Decision, error) {
	dismissed, err := t.IsDismissed(ctx)
	if err != nil {
		return ShowNone, err
	}
	if !dismissed {
		return ShowDismissibleSuccess, nil
	}
	if IsPluginScreen(screen) {
		return ShowResetWarning, nil
	}
	return ShowNone, nil
}
