package hook

import (
	"net/url"

	"golang.org/x/text/message"

	"adminnotice/panel/internal/model"
)

// Request is the per-request state handed to every lifecycle callback.
type Request struct {
	// URL is the current request URL as seen by the admin panel.
	URL *url.URL
	// Screen is nil when the current page has no screen context.
	Screen *model.Screen
	// Printer localizes user-visible strings. May be nil.
	Printer *message.Printer

	params   url.Values
	redirect string
}

// NewRequest captures the query parameters of u once, so callbacks all
// observe the same parameter set.
func NewRequest(u *url.URL, screen *model.Screen, printer *message.Printer) *Request {
	if u == nil {
		u = &url.URL{}
	}
	return &Request{
		URL:     u,
		Screen:  screen,
		Printer: printer,
		params:  u.Query(),
	}
}

// Params returns the query parameters of the request.
func (r *Request) Params() url.Values {
	return r.params
}

// Redirect halts the request. No further callback runs and no page output is
// produced; the host answers with a redirect to target.
func (r *Request) Redirect(target string) {
	r.redirect = target
}

func (r *Request) Halted() bool {
	return r.redirect != ""
}

func (r *Request) RedirectURL() string {
	return r.redirect
}

// T translates msg with the request printer.
func (r *Request) T(msg string) string {
	if r.Printer == nil {
		return msg
	}
	return r.Printer.Sprintf(msg)
}
