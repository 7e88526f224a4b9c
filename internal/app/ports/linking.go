package ports

import (
	"context"
	"time"

	"github.com/fr0stylo/linkbridge/internal/app/domain"
	"github.com/fr0stylo/linkbridge/internal/statetoken"
)

// ConnectionStore persists per-user provider credentials.
type ConnectionStore interface {
	// GetByUser returns domain.ErrConnectionNotFound when the user has no record.
	GetByUser(ctx context.Context, userID string) (domain.Connection, error)
	// Upsert creates the record if missing and sets only the non-nil fields.
	Upsert(ctx context.Context, userID string, update domain.ConnectionUpdate) (domain.Connection, error)
}

// StateLedger records consumed state nonces so each state token is single use.
type StateLedger interface {
	// Consume returns domain.ErrStateAlreadyUsed when nonce was consumed before.
	Consume(ctx context.Context, nonce string, hop statetoken.Hop, expiresAt time.Time) error
}

// StateCodec issues and verifies signed link state tokens.
type StateCodec interface {
	Issue(ctx context.Context, payload statetoken.Payload, ttl time.Duration) (string, error)
	Verify(ctx context.Context, token string) (statetoken.Claims, error)
}

// OAuthProvider drives one provider's authorization-code flow.
type OAuthProvider interface {
	ID() string
	AuthCodeURL(ctx context.Context, state string) (string, error)
	Exchange(ctx context.Context, code string) (domain.Credential, error)
	// Refresh returns cred unchanged while it is still valid.
	Refresh(ctx context.Context, cred domain.Credential) (domain.Credential, error)
}
