package observability

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

const redacted = "[redacted]"

// sensitiveLogKeys are attribute keys whose values must never reach output.
// OAuth codes, state tokens and credentials all travel through the link flow.
var sensitiveLogKeys = map[string]struct{}{
	"code":          {},
	"state":         {},
	"token":         {},
	"access_token":  {},
	"refresh_token": {},
	"client_secret": {},
	"authorization": {},
}

type contextHandler struct {
	next slog.Handler
}

// WrapSlogHandler redacts credential attributes and appends request, user
// and trace identifiers from ctx.
func WrapSlogHandler(next slog.Handler) slog.Handler {
	if next == nil {
		next = slog.NewTextHandler(io.Discard, nil)
	}
	return &contextHandler{next: next}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, record slog.Record) error {
	out := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	seen := make(map[string]struct{}, record.NumAttrs())
	record.Attrs(func(attr slog.Attr) bool {
		seen[attr.Key] = struct{}{}
		out.AddAttrs(redactAttr(attr))
		return true
	})
	for _, attr := range contextAttrs(ctx) {
		if _, dup := seen[attr.Key]; !dup {
			out.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, out)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		clean[i] = redactAttr(attr)
	}
	return &contextHandler{next: h.next.WithAttrs(clean)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name)}
}

func redactAttr(attr slog.Attr) slog.Attr {
	if _, ok := sensitiveLogKeys[strings.ToLower(attr.Key)]; ok {
		return slog.String(attr.Key, redacted)
	}
	if attr.Value.Kind() != slog.KindGroup {
		return attr
	}
	group := attr.Value.Group()
	clean := make([]slog.Attr, len(group))
	for i, member := range group {
		clean[i] = redactAttr(member)
	}
	return slog.Attr{Key: attr.Key, Value: slog.GroupValue(clean...)}
}

func contextAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr
	if requestID, ok := RequestIDFromContext(ctx); ok {
		attrs = append(attrs, slog.String("request_id", requestID))
	}
	if route, ok := RouteFromContext(ctx); ok {
		attrs = append(attrs, slog.String("route", route))
	}
	if userID, ok := UserIDFromContext(ctx); ok {
		attrs = append(attrs, slog.String("user_id", userID))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		attrs = append(attrs,
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return attrs
}
