package model

import "github.com/google/uuid"

// Capability names a permission an admin user may hold.
type Capability string

const (
	CapManageOptions   Capability = "manage_options"
	CapActivatePlugins Capability = "activate_plugins"
	CapRead            Capability = "read"
)

type AdminUser struct {
	ID           uuid.UUID    `json:"id"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"`
	Capabilities []Capability `json:"capabilities"`
}

// Can reports whether the user holds want. Every user can read.
func (u *AdminUser) Can(want Capability) bool {
	if want == "" || want == CapRead {
		return true
	}
	for _, c := range u.Capabilities {
		if c == want {
			return true
		}
	}
	return false
}
