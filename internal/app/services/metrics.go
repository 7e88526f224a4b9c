package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/fr0stylo/linkbridge/internal/observability"
)

const meterName = "github.com/fr0stylo/linkbridge/internal/app/services"

type linkMetrics struct {
	steps metric.Int64Counter
}

func newLinkMetrics() linkMetrics {
	steps, _ := otel.Meter(meterName).Int64Counter(observability.MetricLinkSteps)
	return linkMetrics{steps: steps}
}

func (m linkMetrics) record(ctx context.Context, step string, err error) {
	if m.steps == nil {
		return
	}
	m.steps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("step", step),
		attribute.String("outcome", outcome(err)),
	))
}

type subscriptionMetrics struct {
	calls metric.Int64Counter
}

func newSubscriptionMetrics() subscriptionMetrics {
	calls, _ := otel.Meter(meterName).Int64Counter(observability.MetricSubscriptionCalls)
	return subscriptionMetrics{calls: calls}
}

func (m subscriptionMetrics) record(ctx context.Context, op string, err error) {
	if m.calls == nil {
		return
	}
	m.calls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("outcome", outcome(err)),
	))
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
