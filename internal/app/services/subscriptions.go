package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fr0stylo/linkbridge/internal/app/domain"
	"github.com/fr0stylo/linkbridge/internal/app/ports"
)

const (
	opSubscribe   = "subscribe"
	opUnsubscribe = "unsubscribe"
)

// SubscriptionService creates and removes partner webhook subscriptions on
// behalf of linked users.
type SubscriptionService struct {
	connections   ports.ConnectionStore
	subscriptions ports.SubscriptionStore
	oauth         ports.OAuthProvider
	api           ports.PartnerAPI
	now           func() time.Time
	metrics       subscriptionMetrics
}

func NewSubscriptionService(
	connections ports.ConnectionStore,
	subscriptions ports.SubscriptionStore,
	oauth ports.OAuthProvider,
	api ports.PartnerAPI,
) *SubscriptionService {
	return &SubscriptionService{
		connections:   connections,
		subscriptions: subscriptions,
		oauth:         oauth,
		api:           api,
		now:           time.Now,
		metrics:       newSubscriptionMetrics(),
	}
}

// Subscribe registers callbackURL with the partner and records the returned id
// against userID.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, callbackURL string) (subscriptionID string, err error) {
	defer func() { s.metrics.record(ctx, opSubscribe, err) }()

	userID = strings.TrimSpace(userID)
	callbackURL = strings.TrimSpace(callbackURL)
	if callbackURL == "" {
		return "", fmt.Errorf("callback url is required")
	}

	token, err := s.partnerAccessToken(ctx, userID)
	if err != nil {
		return "", err
	}

	subscriptionID, err = s.api.CreateSubscription(ctx, token, callbackURL)
	if err != nil {
		return "", fmt.Errorf("create subscription: %w", err)
	}

	err = s.subscriptions.Create(ctx, domain.Subscription{
		ID:          subscriptionID,
		OwnerUserID: userID,
		CallbackURL: callbackURL,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		// Without a local record the subscription could never be removed.
		if deleteErr := s.api.DeleteSubscription(ctx, token, subscriptionID); deleteErr != nil && !errors.Is(deleteErr, domain.ErrSubscriptionNotFound) {
			slog.WarnContext(ctx, "Failed to roll back partner subscription", "subscription_id", subscriptionID, "error", deleteErr)
		}
		return "", fmt.Errorf("persist subscription: %w", err)
	}
	return subscriptionID, nil
}

// Unsubscribe removes a subscription. It is idempotent: ids the partner no
// longer knows count as removed. Known ids are deleted with their owner's
// partner credential whoever the caller is; the platform session that
// authenticated callerUserID is the only authorization. Ids without a local
// record are deleted with callerUserID's credential.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, callerUserID, subscriptionID string) (err error) {
	defer func() { s.metrics.record(ctx, opUnsubscribe, err) }()

	subscriptionID = strings.TrimSpace(subscriptionID)
	if subscriptionID == "" {
		return fmt.Errorf("subscription id is required")
	}

	owner := strings.TrimSpace(callerUserID)
	known := true
	sub, err := s.subscriptions.Get(ctx, subscriptionID)
	switch {
	case errors.Is(err, domain.ErrSubscriptionNotFound):
		known = false
	case err != nil:
		return fmt.Errorf("load subscription: %w", err)
	default:
		owner = sub.OwnerUserID
	}

	token, err := s.partnerAccessToken(ctx, owner)
	if errors.Is(err, domain.ErrNotLinked) && !known {
		// Nothing local and no credential to reach the partner with.
		return nil
	}
	if err != nil {
		return err
	}

	err = s.api.DeleteSubscription(ctx, token, subscriptionID)
	if err != nil && !errors.Is(err, domain.ErrSubscriptionNotFound) {
		return fmt.Errorf("delete subscription: %w", err)
	}
	if err := s.subscriptions.Delete(ctx, subscriptionID); err != nil {
		return fmt.Errorf("forget subscription: %w", err)
	}
	return nil
}

// partnerAccessToken loads userID's partner credential, refreshing and
// persisting it when it has expired.
func (s *SubscriptionService) partnerAccessToken(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", domain.ErrNotLinked
	}
	conn, err := s.connections.GetByUser(ctx, userID)
	if errors.Is(err, domain.ErrConnectionNotFound) {
		return "", domain.ErrNotLinked
	}
	if err != nil {
		return "", fmt.Errorf("load connection: %w", err)
	}
	if !conn.PartnerLinked() {
		return "", domain.ErrNotLinked
	}

	current := *conn.PartnerToken
	cred, err := s.oauth.Refresh(ctx, current)
	if err != nil {
		return "", fmt.Errorf("refresh partner token: %w", err)
	}
	if cred != current {
		if _, err := s.connections.Upsert(ctx, userID, domain.ConnectionUpdate{PartnerToken: &cred}); err != nil {
			return "", fmt.Errorf("store refreshed partner token: %w", err)
		}
	}
	return cred.AccessToken, nil
}
