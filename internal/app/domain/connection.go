package domain

import (
	"strings"
	"time"
)

// Credential is an opaque OAuth credential issued by one provider.
type Credential struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry,omitzero"`
}

// Present reports whether the credential carries an access token.
func (c *Credential) Present() bool {
	return c != nil && strings.TrimSpace(c.AccessToken) != ""
}

// Connection is the per-user record of linked provider credentials.
type Connection struct {
	UserID        string
	PlatformToken *Credential
	PartnerToken  *Credential
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FullyLinked reports whether both provider credentials are present.
func (c Connection) FullyLinked() bool {
	return c.PlatformToken.Present() && c.PartnerToken.Present()
}

// PartnerLinked reports whether the partner credential is present.
func (c Connection) PartnerLinked() bool {
	return c.PartnerToken.Present()
}

// ConnectionUpdate is a partial upsert; nil fields are left untouched.
type ConnectionUpdate struct {
	PlatformToken *Credential
	PartnerToken  *Credential
}

// Empty reports whether the update carries no fields.
func (u ConnectionUpdate) Empty() bool {
	return u.PlatformToken == nil && u.PartnerToken == nil
}
