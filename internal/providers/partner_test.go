package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fr0stylo/linkbridge/internal/app/domain"
)

func TestPartnerClientCreateSubscription(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/webhook_subscriptions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer partner-token" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		var body struct {
			URL string `json:"url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.URL != "https://hooks.example.com/w1" {
			t.Errorf("unexpected callback url: %q", body.URL)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"uuid":"sub-123"}`))
	}))
	defer server.Close()

	client := NewPartnerClient("gusto", server.URL+"/", server.Client())
	id, err := client.CreateSubscription(context.Background(), "partner-token", "https://hooks.example.com/w1")
	if err != nil {
		t.Fatalf("CreateSubscription error = %v", err)
	}
	if id != "sub-123" {
		t.Fatalf("unexpected subscription id: %q", id)
	}
}

func TestPartnerClientCreateAcceptsIDField(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"sub-9"}`))
	}))
	defer server.Close()

	id, err := NewPartnerClient("gusto", server.URL, server.Client()).CreateSubscription(context.Background(), "t", "https://hooks.example.com/w")
	if err != nil {
		t.Fatalf("CreateSubscription error = %v", err)
	}
	if id != "sub-9" {
		t.Fatalf("unexpected subscription id: %q", id)
	}
}

func TestPartnerClientCreateMapsFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "token revoked", http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := NewPartnerClient("gusto", server.URL, server.Client()).CreateSubscription(context.Background(), "t", "https://hooks.example.com/w")
	if !errors.Is(err, domain.ErrUpstreamSubscription) {
		t.Fatalf("expected ErrUpstreamSubscription, got %v", err)
	}
	if status := domain.UpstreamStatus(err); status != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", status)
	}
}

func TestPartnerClientDeleteSubscription(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method %s", r.Method)
		}
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	if err := NewPartnerClient("gusto", server.URL, server.Client()).DeleteSubscription(context.Background(), "t", "sub-1"); err != nil {
		t.Fatalf("DeleteSubscription error = %v", err)
	}
	if gotPath != "/v1/webhook_subscriptions/sub-1" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
}

func TestPartnerClientDeleteUnknownSubscription(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusNotFound, http.StatusGone} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))
		err := NewPartnerClient("gusto", server.URL, server.Client()).DeleteSubscription(context.Background(), "t", "sub-1")
		server.Close()
		if !errors.Is(err, domain.ErrSubscriptionNotFound) {
			t.Fatalf("status %d: expected ErrSubscriptionNotFound, got %v", status, err)
		}
	}
}

func TestPartnerClientDeleteMapsServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := NewPartnerClient("gusto", server.URL, server.Client()).DeleteSubscription(context.Background(), "t", "sub-1")
	if !errors.Is(err, domain.ErrUpstreamSubscription) || domain.UpstreamStatus(err) != http.StatusInternalServerError {
		t.Fatalf("expected upstream 500 subscription error, got %v", err)
	}
}
