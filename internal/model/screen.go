package model

// Built-in screen ids.
const (
	ScreenDashboard = "dashboard"
	ScreenPlugins   = "plugins"
)

// OptionsPageScreenPrefix prefixes the screen id of pages added under Settings.
const OptionsPageScreenPrefix = "settings_page_"

// Screen identifies the admin page handling the current request.
type Screen struct {
	ID   string `json:"id"`
	Base string `json:"base"`
}

// OptionsPageScreen returns the screen for a settings page with the given slug.
func OptionsPageScreen(slug string) *Screen {
	return &Screen{ID: OptionsPageScreenPrefix + slug, Base: "settings_page"}
}
