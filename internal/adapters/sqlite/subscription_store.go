package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fr0stylo/linkbridge/internal/app/domain"
	"github.com/fr0stylo/linkbridge/internal/db/queries"
)

// SubscriptionStore records partner webhook subscriptions and their owners.
type SubscriptionStore struct {
	database subscriptionQueries
}

func NewSubscriptionStore(database subscriptionQueries) *SubscriptionStore {
	return &SubscriptionStore{database: database}
}

// Create stores sub. Recreating a known id replaces its owner and callback.
func (s *SubscriptionStore) Create(ctx context.Context, sub domain.Subscription) error {
	sub.ID = strings.TrimSpace(sub.ID)
	sub.OwnerUserID = strings.TrimSpace(sub.OwnerUserID)
	if sub.ID == "" || sub.OwnerUserID == "" {
		return fmt.Errorf("subscription id and owner are required")
	}
	createdAt := sub.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	err := s.database.CreateSubscription(ctx, queries.CreateSubscriptionParams{
		SubscriptionID: sub.ID,
		OwnerUserID:    sub.OwnerUserID,
		CallbackUrl:    sub.CallbackURL,
		CreatedAt:      createdAt.UTC().Unix(),
	})
	if err != nil {
		return fmt.Errorf("create subscription: %w", err)
	}
	return nil
}

func (s *SubscriptionStore) Get(ctx context.Context, subscriptionID string) (domain.Subscription, error) {
	row, err := s.database.GetSubscription(ctx, strings.TrimSpace(subscriptionID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Subscription{}, domain.ErrSubscriptionNotFound
	}
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("get subscription: %w", err)
	}
	return domain.Subscription{
		ID:          row.SubscriptionID,
		OwnerUserID: row.OwnerUserID,
		CallbackURL: row.CallbackUrl,
		CreatedAt:   time.Unix(row.CreatedAt, 0).UTC(),
	}, nil
}

// Delete is a no-op for unknown ids.
func (s *SubscriptionStore) Delete(ctx context.Context, subscriptionID string) error {
	if err := s.database.DeleteSubscription(ctx, strings.TrimSpace(subscriptionID)); err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}
