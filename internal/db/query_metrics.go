package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/fr0stylo/linkbridge/internal/db/queries"
	"github.com/fr0stylo/linkbridge/internal/observability"
)

const meterName = "github.com/fr0stylo/linkbridge/internal/db"

// instrumentedDBTX traces each sqlc statement, records its duration in the
// linkbridge.db.query.duration histogram and keeps a local latency window.
type instrumentedDBTX struct {
	inner    queries.DBTX
	tracker  *latencyTracker
	duration metric.Float64Histogram
}

func newInstrumentedDBTX(inner queries.DBTX, tracker *latencyTracker) queries.DBTX {
	duration, _ := otel.Meter(meterName).Float64Histogram(
		observability.MetricDBQueryDuration,
		metric.WithUnit("s"),
		metric.WithDescription("Duration of named SQLite statements."),
	)
	return &instrumentedDBTX{inner: inner, tracker: tracker, duration: duration}
}

func (d *instrumentedDBTX) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	ctx, done := d.begin(ctx, query, "exec")
	result, err := d.inner.ExecContext(ctx, query, args...)
	done(err)
	return result, err
}

func (d *instrumentedDBTX) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	ctx, done := d.begin(ctx, query, "query")
	rows, err := d.inner.QueryContext(ctx, query, args...)
	done(err)
	return rows, err
}

func (d *instrumentedDBTX) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	ctx, done := d.begin(ctx, query, "query_row")
	row := d.inner.QueryRowContext(ctx, query, args...)
	done(row.Err())
	return row
}

// PrepareContext is not timed: generated queries never prepare statements.
func (d *instrumentedDBTX) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return d.inner.PrepareContext(ctx, query)
}

func (d *instrumentedDBTX) begin(ctx context.Context, query, operation string) (context.Context, func(error)) {
	name := queryName(query)
	ctx, span := observability.StartDBSpan(ctx, name, operation)
	start := time.Now()
	return ctx, func(err error) {
		elapsed := time.Since(start)
		d.tracker.observe(name, elapsed)
		if d.duration != nil {
			d.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
				attribute.String("db.query_name", name),
				attribute.Bool("error", err != nil),
			))
		}
		span.RecordError(err)
		span.End()
	}
}

// queryName reads the statement name from sqlc's "-- name: X :kind" header.
func queryName(query string) string {
	header, _, _ := strings.Cut(strings.TrimSpace(query), "\n")
	rest, ok := strings.CutPrefix(header, "-- name:")
	if !ok {
		return "unknown"
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "unknown"
	}
	return fields[0]
}
