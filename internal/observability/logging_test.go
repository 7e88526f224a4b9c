package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func newJSONLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(WrapSlogHandler(slog.NewJSONHandler(buf, nil)))
}

func TestWrapSlogHandlerRedactsCredentials(t *testing.T) {
	var buf bytes.Buffer
	log := newJSONLogger(&buf).With("access_token", "at-123")

	log.Info("callback",
		"code", "auth-code-456",
		slog.Group("query", slog.String("state", "signed-state"), slog.String("page", "2")),
	)

	out := buf.String()
	for _, secret := range []string{"at-123", "auth-code-456", "signed-state"} {
		if strings.Contains(out, secret) {
			t.Fatalf("log leaked %q: %s", secret, out)
		}
	}
	if !strings.Contains(out, `"page":"2"`) {
		t.Fatalf("expected non-sensitive group member to survive: %s", out)
	}
}

func TestWrapSlogHandlerAddsRequestContext(t *testing.T) {
	var buf bytes.Buffer
	log := newJSONLogger(&buf)

	ctx := WithRequestMetadata(context.Background(), "req-1", "/auth")
	ctx = WithRequestIdentity(ctx, "u1")
	log.InfoContext(ctx, "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log entry: %v", err)
	}
	if entry["request_id"] != "req-1" || entry["route"] != "/auth" || entry["user_id"] != "u1" {
		t.Fatalf("missing context fields: %v", entry)
	}
}

func TestWrapSlogHandlerKeepsExplicitUserID(t *testing.T) {
	var buf bytes.Buffer
	log := newJSONLogger(&buf)

	ctx := WithRequestIdentity(context.Background(), "session-user")
	log.InfoContext(ctx, "link failed", "user_id", "state-user")

	if strings.Contains(buf.String(), "session-user") {
		t.Fatalf("context user id should not duplicate an explicit one: %s", buf.String())
	}
}
