package explorer

import "time"

const (
	ProviderGuest  = "guest"
	ProviderGitHub = "github"

	MaxNameLength = 32
)

// Explorer is a visitor who can bookmark and select systems.
// Guests are their own provider identity.
type Explorer struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Provider       string    `json:"provider"`
	ProviderUserID string    `json:"-"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	LastLoginAt    time.Time `json:"last_login_at"`
}
