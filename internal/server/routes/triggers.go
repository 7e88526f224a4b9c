package routes

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/linkbridge/internal/app/domain"
)

// SubscriptionManager creates and removes partner webhook subscriptions.
type SubscriptionManager interface {
	Subscribe(ctx context.Context, userID, callbackURL string) (string, error)
	Unsubscribe(ctx context.Context, callerUserID, subscriptionID string) error
}

// TriggerRoutes registers the platform's trigger lifecycle endpoints.
type TriggerRoutes struct {
	subscriptions  SubscriptionManager
	requireSession echo.MiddlewareFunc
}

func NewTriggerRoutes(subscriptions SubscriptionManager, requireSession echo.MiddlewareFunc) *TriggerRoutes {
	return &TriggerRoutes{subscriptions: subscriptions, requireSession: requireSession}
}

// RegisterRoutes registers trigger routes on the server.
func (r *TriggerRoutes) RegisterRoutes(s *echo.Echo) {
	group := s.Group("/triggers", r.requireSession)
	group.POST("/subscribe", r.handleSubscribe)
	group.POST("/unsubscribe", r.handleUnsubscribe)
}

type triggerRequest struct {
	Payload struct {
		WebhookURL string     `json:"webhookUrl"`
		WebhookID  flexibleID `json:"webhookId"`
	} `json:"payload"`
}

func (r *TriggerRoutes) handleSubscribe(c echo.Context) error {
	ctx := c.Request().Context()
	session, ok := PlatformSessionFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req triggerRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Payload.WebhookURL) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "payload.webhookUrl is required"})
	}

	slog.InfoContext(ctx, "Subscribe trigger received", "user_id", session.UserID)
	subscriptionID, err := r.subscriptions.Subscribe(ctx, session.UserID, req.Payload.WebhookURL)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to subscribe to webhook",
			"user_id", session.UserID,
			"upstream_status", domain.UpstreamStatus(err),
			"error", err,
		)
		return internalError(c)
	}
	return c.JSON(http.StatusOK, map[string]string{"subscriptionId": subscriptionID})
}

func (r *TriggerRoutes) handleUnsubscribe(c echo.Context) error {
	ctx := c.Request().Context()
	session, ok := PlatformSessionFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req triggerRequest
	if err := c.Bind(&req); err != nil || req.Payload.WebhookID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "payload.webhookId is required"})
	}
	subscriptionID := string(req.Payload.WebhookID)

	slog.InfoContext(ctx, "Unsubscribe trigger received", "user_id", session.UserID, "subscription_id", subscriptionID)
	if err := r.subscriptions.Unsubscribe(ctx, session.UserID, subscriptionID); err != nil {
		slog.ErrorContext(ctx, "Failed to unsubscribe",
			"user_id", session.UserID,
			"subscription_id", subscriptionID,
			"upstream_status", domain.UpstreamStatus(err),
			"error", err,
		)
		return internalError(c)
	}
	return c.JSON(http.StatusOK, map[string]string{"result": "Unsubscribed successfully."})
}
