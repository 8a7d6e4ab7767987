package admin

import (
	"errors"
	"fmt"
	"sync"

	"adminnotice/panel/internal/hook"
)

var (
	ErrDuplicateSlug = errors.New("options page slug already registered")
	ErrInvalidPage   = errors.New("options page requires a slug and a render callback")
	ErrPageNotFound  = errors.New("options page not found")
)

// Registry holds the options pages added during admin_menu.
type Registry struct {
	mu    sync.RWMutex
	pages map[string]hook.Page
	order []string
}

func NewRegistry() *Registry {
	return &Registry{pages: make(map[string]hook.Page)}
}

func (r *Registry) AddOptionsPage(page hook.Page) error {
	if page.Slug == "" || page.Render == nil {
		return ErrInvalidPage
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.pages[page.Slug]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSlug, page.Slug)
	}
	r.pages[page.Slug] = page
	r.order = append(r.order, page.Slug)
	return nil
}

func (r *Registry) Page(slug string) (hook.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	page, ok := r.pages[slug]
	if !ok {
		return hook.Page{}, fmt.Errorf("%w: %s", ErrPageNotFound, slug)
	}
	return page, nil
}

// Pages returns the options pages in registration order.
func (r *Registry) Pages() []hook.Page {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]hook.Page, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, r.pages[slug])
	}
	return out
}

var _ hook.Menu = (*Registry)(nil)
