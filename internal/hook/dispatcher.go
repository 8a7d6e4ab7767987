// Package hook implements the admin lifecycle: plugins register callbacks that
// the host invokes once per admin request.
package hook

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"sync"

	"adminnotice/panel/internal/model"
)

var ErrHalted = errors.New("request halted by redirect")

// Page is a settings page added to the admin menu.
type Page struct {
	Title      string
	MenuTitle  string
	Capability model.Capability
	Slug       string
	Render     func(ctx context.Context, req *Request) (template.HTML, error)
}

// Menu receives page registrations during the admin_menu phase.
type Menu interface {
	AddOptionsPage(page Page) error
}

type (
	InitFunc   func(ctx context.Context, req *Request) error
	MenuFunc   func(menu Menu) error
	NoticeFunc func(ctx context.Context, req *Request) ([]model.Notice, error)
)

// Lifecycle is the registration surface offered to plugins.
type Lifecycle interface {
	OnInit(fn InitFunc)
	OnAdminMenu(fn MenuFunc)
	OnRenderNotices(fn NoticeFunc)
}

// Dispatcher stores callbacks and runs them in registration order.
type Dispatcher struct {
	mu      sync.RWMutex
	inits   []InitFunc
	menus   []MenuFunc
	notices []NoticeFunc
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) OnInit(fn InitFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inits = append(d.inits, fn)
}

func (d *Dispatcher) OnAdminMenu(fn MenuFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.menus = append(d.menus, fn)
}

func (d *Dispatcher) OnRenderNotices(fn NoticeFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notices = append(d.notices, fn)
}

// BuildMenu runs the admin_menu callbacks against menu.
func (d *Dispatcher) BuildMenu(menu Menu) error {
	d.mu.RLock()
	menus := d.menus
	d.mu.RUnlock()

	for i, fn := range menus {
		if err := fn(menu); err != nil {
			return fmt.Errorf("admin_menu callback %d: %w", i, err)
		}
	}
	return nil
}

// RunInit runs the init callbacks. It stops at the first error, or as soon
// as a callback halts the request.
func (d *Dispatcher) RunInit(ctx context.Context, req *Request) error {
	d.mu.RLock()
	inits := d.inits
	d.mu.RUnlock()

	for i, fn := range inits {
		if req.Halted() {
			return nil
		}
		if err := fn(ctx, req); err != nil {
			return fmt.Errorf("init callback %d: %w", i, err)
		}
	}
	return nil
}

// RenderNotices collects notices from every render-notices callback.
// A halted request produces no output and returns ErrHalted.
func (d *Dispatcher) RenderNotices(ctx context.Context, req *Request) ([]model.Notice, error) {
	if req.Halted() {
		return nil, ErrHalted
	}

	d.mu.RLock()
	callbacks := d.notices
	d.mu.RUnlock()

	var out []model.Notice
	for i, fn := range callbacks {
		notices, err := fn(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("notice callback %d: %w", i, err)
		}
		out = append(out, notices...)
	}
	return out, nil
}

var _ Lifecycle = (*Dispatcher)(nil)
