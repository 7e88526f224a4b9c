package sqlite

import (
	"context"

	"github.com/fr0stylo/linkbridge/internal/db/queries"
)

type connectionQueries interface {
	GetConnectionByUser(ctx context.Context, userID string) (queries.Connection, error)
	UpsertConnection(ctx context.Context, arg queries.UpsertConnectionParams) (queries.Connection, error)
}

type subscriptionQueries interface {
	CreateSubscription(ctx context.Context, arg queries.CreateSubscriptionParams) error
	GetSubscription(ctx context.Context, subscriptionID string) (queries.Subscription, error)
	DeleteSubscription(ctx context.Context, subscriptionID string) error
}

type linkStateQueries interface {
	ConsumeLinkState(ctx context.Context, arg queries.ConsumeLinkStateParams) (int64, error)
	PurgeExpiredLinkStates(ctx context.Context, expiresAt int64) (int64, error)
}
