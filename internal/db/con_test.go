package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fr0stylo/linkbridge/internal/db/queries"
)

func openTestDatabase(t *testing.T) *Database {
	t.Helper()
	database, err := New(filepath.Join(t.TempDir(), "linkbridge"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestNewAppliesMigrations(t *testing.T) {
	database := openTestDatabase(t)

	ctx := context.Background()
	for _, table := range []string{"connections", "subscriptions", "consumed_link_states"} {
		var name string
		err := database.db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
	if err := database.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestQueryLatencyStatsTracksGeneratedQueries(t *testing.T) {
	database := openTestDatabase(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := database.GetSubscription(ctx, "missing"); !errors.Is(err, sql.ErrNoRows) {
			t.Fatalf("expected sql.ErrNoRows, got %v", err)
		}
	}
	if _, err := database.PurgeExpiredLinkStates(ctx, time.Now().Unix()); err != nil {
		t.Fatalf("purge: %v", err)
	}

	stats := database.QueryLatencyStats()
	counts := make(map[string]int, len(stats))
	for _, stat := range stats {
		counts[stat.Name] = stat.Count
		if stat.P50 > stat.P95 || stat.P95 > stat.Max {
			t.Fatalf("percentiles out of order: %#v", stat)
		}
	}
	if counts["GetSubscription"] != 3 || counts["PurgeExpiredLinkStates"] != 1 {
		t.Fatalf("unexpected stats: %#v", stats)
	}
}

func TestLatencyTrackerKeepsRecentWindow(t *testing.T) {
	t.Parallel()

	tracker := newLatencyTracker()
	for i := 1; i <= latencyWindow+10; i++ {
		tracker.observe("Q", time.Duration(i)*time.Millisecond)
	}

	stats := tracker.summary()
	if len(stats) != 1 || stats[0].Count != latencyWindow {
		t.Fatalf("unexpected summary: %#v", stats)
	}
	if stats[0].Max != time.Duration(latencyWindow+10)*time.Millisecond {
		t.Fatalf("unexpected max: %s", stats[0].Max)
	}
}

func TestQueryNameReadsSQLCHeader(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"-- name: GetSubscription :one\nSELECT 1": "GetSubscription",
		"  -- name: X :exec":                      "X",
		"SELECT 1":                                "unknown",
		"-- name:":                                "unknown",
	}
	for query, want := range cases {
		if got := queryName(query); got != want {
			t.Fatalf("queryName(%q) = %q, want %q", query, got, want)
		}
	}
}

func TestUpsertConnectionKeepsUnsetTokens(t *testing.T) {
	database := openTestDatabase(t)
	ctx := context.Background()

	_, err := database.UpsertConnection(ctx, queries.UpsertConnectionParams{
		UserID:        "u1",
		PlatformToken: sql.NullString{String: "a", Valid: true},
		CreatedAt:     1,
		UpdatedAt:     1,
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	row, err := database.UpsertConnection(ctx, queries.UpsertConnectionParams{
		UserID:       "u1",
		PartnerToken: sql.NullString{String: "b", Valid: true},
		CreatedAt:    2,
		UpdatedAt:    2,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if row.PlatformToken.String != "a" || row.PartnerToken.String != "b" || row.CreatedAt != 1 || row.UpdatedAt != 2 {
		t.Fatalf("unexpected row: %#v", row)
	}
}

func TestSQLiteDSNIncludesPragmasAndExtraParams(t *testing.T) {
	t.Parallel()

	dsn := sqliteDSN("data/test", "&mode=memory", "", "broken")
	if !strings.HasPrefix(dsn, "file:data/test.sqlite?") {
		t.Fatalf("unexpected dsn prefix: %s", dsn)
	}
	for _, want := range []string{"journal_mode%28WAL%29", "busy_timeout%285000%29", "mode=memory"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("dsn %s missing %s", dsn, want)
		}
	}
}
