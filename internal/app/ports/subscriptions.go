package ports

import (
	"context"

	"github.com/fr0stylo/linkbridge/internal/app/domain"
)

// SubscriptionStore persists partner webhook subscriptions.
type SubscriptionStore interface {
	Create(ctx context.Context, subscription domain.Subscription) error
	// Get returns domain.ErrSubscriptionNotFound for unknown ids.
	Get(ctx context.Context, subscriptionID string) (domain.Subscription, error)
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, subscriptionID string) error
}

// PartnerAPI is the partner's webhook subscription API.
type PartnerAPI interface {
	CreateSubscription(ctx context.Context, accessToken, callbackURL string) (string, error)
	// DeleteSubscription returns domain.ErrSubscriptionNotFound when the partner
	// reports the subscription as gone.
	DeleteSubscription(ctx context.Context, accessToken, subscriptionID string) error
}
