package model

// NoticeType selects the admin notice style.
type NoticeType string

const (
	NoticeTypeInfo    NoticeType = "info"
	NoticeTypeSuccess NoticeType = "success"
	NoticeTypeWarning NoticeType = "warning"
	NoticeTypeError   NoticeType = "error"
)

// NoticeLink is an optional call-to-action rendered at the end of a notice.
type NoticeLink struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Notice is one admin notice emitted during the render-notices phase.
type Notice struct {
	ID          string      `json:"id"`
	Type        NoticeType  `json:"type"`
	Label       string      `json:"label,omitempty"`
	Message     string      `json:"message"`
	Link        *NoticeLink `json:"link,omitempty"`
	Dismissible bool        `json:"dismissible,omitempty"`
}

// CSSClass returns the class attribute for the notice container.
func (n Notice) CSSClass() string {
	class := "notice notice-" + string(n.Type)
	if n.Dismissible {
		class += " is-dismissible"
	}
	return class
}
