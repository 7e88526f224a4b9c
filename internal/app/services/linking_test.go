package services

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fr0stylo/linkbridge/internal/app/domain"
	portmocks "github.com/fr0stylo/linkbridge/internal/app/ports/mocks"
	"github.com/fr0stylo/linkbridge/internal/statetoken"
)

type staticSecrets map[string]string

func (s staticSecrets) Get(_ context.Context, key string) (string, error) {
	value, ok := s[key]
	if !ok {
		return "", errors.New("missing secret")
	}
	return value, nil
}

type linkFixture struct {
	connections *portmocks.MockConnectionStore
	ledger      *portmocks.MockStateLedger
	platform    *portmocks.MockOAuthProvider
	partner     *portmocks.MockOAuthProvider
	codec       *statetoken.Codec
	svc         *LinkService
}

func newLinkFixture(t *testing.T) linkFixture {
	t.Helper()
	f := linkFixture{
		connections: portmocks.NewMockConnectionStore(t),
		ledger:      portmocks.NewMockStateLedger(t),
		platform:    portmocks.NewMockOAuthProvider(t),
		partner:     portmocks.NewMockOAuthProvider(t),
		codec:       statetoken.NewCodec(staticSecrets{"state": "test-secret"}, "state"),
	}
	f.platform.EXPECT().ID().Return("monday").Maybe()
	f.partner.EXPECT().ID().Return("gusto").Maybe()
	f.svc = NewLinkService(f.connections, f.ledger, f.codec, f.platform, f.partner, 5*time.Minute)
	return f
}

// authURL mimics a provider authorization endpoint that echoes state.
func authURL(base string) func(context.Context, string) (string, error) {
	return func(_ context.Context, state string) (string, error) {
		return base + "?state=" + url.QueryEscape(state), nil
	}
}

func stateFrom(t *testing.T, redirect string) string {
	t.Helper()
	parsed, err := url.Parse(redirect)
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	state := parsed.Query().Get("state")
	if state == "" {
		t.Fatalf("redirect %q carries no state", redirect)
	}
	return state
}

func TestBeginShortCircuitsWhenFullyLinked(t *testing.T) {
	f := newLinkFixture(t)
	f.connections.EXPECT().GetByUser(mock.Anything, "u1").Return(domain.Connection{
		UserID:        "u1",
		PlatformToken: &domain.Credential{AccessToken: "a"},
		PartnerToken:  &domain.Credential{AccessToken: "b"},
	}, nil)

	result, err := f.svc.Begin(context.Background(), "u1", "https://platform.example.com/back")
	if err != nil {
		t.Fatalf("Begin error = %v", err)
	}
	if !result.AlreadyLinked || result.RedirectURL != "https://platform.example.com/back" {
		t.Fatalf("unexpected result: %+v", result)
	}
	// No AuthCodeURL or Exchange expectations: any provider call fails the test.
}

func TestBeginRestartsWhenOnlyPlatformLinked(t *testing.T) {
	f := newLinkFixture(t)
	f.connections.EXPECT().GetByUser(mock.Anything, "u1").Return(domain.Connection{
		UserID:        "u1",
		PlatformToken: &domain.Credential{AccessToken: "a"},
	}, nil)
	f.platform.EXPECT().AuthCodeURL(mock.Anything, mock.AnythingOfType("string")).RunAndReturn(authURL("https://platform.example.com/oauth"))

	result, err := f.svc.Begin(context.Background(), "u1", "https://r1")
	if err != nil {
		t.Fatalf("Begin error = %v", err)
	}
	if result.AlreadyLinked {
		t.Fatal("expected flow restart with only the platform token present")
	}
	claims, err := f.codec.Verify(context.Background(), stateFrom(t, result.RedirectURL))
	if err != nil {
		t.Fatalf("verify issued state: %v", err)
	}
	if claims.UserID != "u1" || claims.ReturnURL != "https://r1" || claims.Hop != statetoken.HopPlatform {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestFullTwoHopFlow(t *testing.T) {
	f := newLinkFixture(t)
	ctx := context.Background()

	f.connections.EXPECT().GetByUser(mock.Anything, "u1").Return(domain.Connection{}, domain.ErrConnectionNotFound).Once()
	f.platform.EXPECT().AuthCodeURL(mock.Anything, mock.AnythingOfType("string")).RunAndReturn(authURL("https://platform.example.com/oauth"))
	f.partner.EXPECT().AuthCodeURL(mock.Anything, mock.AnythingOfType("string")).RunAndReturn(authURL("https://partner.example.com/oauth"))
	f.ledger.EXPECT().Consume(mock.Anything, mock.AnythingOfType("string"), statetoken.HopPlatform, mock.AnythingOfType("time.Time")).Return(nil).Once()
	f.ledger.EXPECT().Consume(mock.Anything, mock.AnythingOfType("string"), statetoken.HopPartner, mock.AnythingOfType("time.Time")).Return(nil).Once()
	f.platform.EXPECT().Exchange(mock.Anything, "code-a").Return(domain.Credential{AccessToken: "token-a"}, nil).Once()
	f.partner.EXPECT().Exchange(mock.Anything, "code-b").Return(domain.Credential{AccessToken: "token-b"}, nil).Once()
	f.connections.EXPECT().Upsert(mock.Anything, "u1", mock.MatchedBy(func(u domain.ConnectionUpdate) bool {
		return u.PlatformToken != nil && u.PlatformToken.AccessToken == "token-a" && u.PartnerToken == nil
	})).Return(domain.Connection{UserID: "u1"}, nil).Once()
	f.connections.EXPECT().Upsert(mock.Anything, "u1", mock.MatchedBy(func(u domain.ConnectionUpdate) bool {
		return u.PartnerToken != nil && u.PartnerToken.AccessToken == "token-b" && u.PlatformToken == nil
	})).Return(domain.Connection{UserID: "u1"}, nil).Once()

	begin, err := f.svc.Begin(ctx, "u1", "https://r1")
	if err != nil {
		t.Fatalf("Begin error = %v", err)
	}
	platformState := stateFrom(t, begin.RedirectURL)

	hop, err := f.svc.CompletePlatform(ctx, CallbackInput{Code: "code-a", State: platformState})
	if err != nil {
		t.Fatalf("CompletePlatform error = %v", err)
	}
	partnerState := stateFrom(t, hop.RedirectURL)
	if partnerState == platformState {
		t.Fatal("expected a freshly signed state for the partner hop")
	}
	if hop.UserID != "u1" {
		t.Fatalf("unexpected user: %q", hop.UserID)
	}

	done, err := f.svc.CompletePartner(ctx, CallbackInput{Code: "code-b", State: partnerState})
	if err != nil {
		t.Fatalf("CompletePartner error = %v", err)
	}
	if done.RedirectURL != "https://r1" {
		t.Fatalf("expected final redirect to return url, got %q", done.RedirectURL)
	}
}

func TestCompletePartnerRejectsPlatformHopState(t *testing.T) {
	f := newLinkFixture(t)
	state, err := f.codec.Issue(context.Background(), statetoken.Payload{UserID: "u1", ReturnURL: "https://r1", Hop: statetoken.HopPlatform}, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = f.svc.CompletePartner(context.Background(), CallbackInput{Code: "code-b", State: state})
	if !errors.Is(err, domain.ErrInvalidOrExpiredState) {
		t.Fatalf("expected ErrInvalidOrExpiredState, got %v", err)
	}
	var linkErr *domain.LinkError
	if !errors.As(err, &linkErr) || linkErr.UserID != "u1" || !linkErr.CodePresent || linkErr.Step != StepPartnerCallback {
		t.Fatalf("unexpected link error: %#v", linkErr)
	}
}

func TestCompletePlatformRejectsReplayedState(t *testing.T) {
	f := newLinkFixture(t)
	state, err := f.codec.Issue(context.Background(), statetoken.Payload{UserID: "u1", ReturnURL: "https://r1", Hop: statetoken.HopPlatform}, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	f.ledger.EXPECT().Consume(mock.Anything, mock.Anything, statetoken.HopPlatform, mock.Anything).Return(domain.ErrStateAlreadyUsed)

	_, err = f.svc.CompletePlatform(context.Background(), CallbackInput{Code: "code-a", State: state})
	if !errors.Is(err, domain.ErrInvalidOrExpiredState) {
		t.Fatalf("expected ErrInvalidOrExpiredState, got %v", err)
	}
}

func TestCompletePlatformRejectsForeignBrowser(t *testing.T) {
	f := newLinkFixture(t)
	state, err := f.codec.Issue(context.Background(), statetoken.Payload{UserID: "u1", ReturnURL: "https://r1", Hop: statetoken.HopPlatform}, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = f.svc.CompletePlatform(context.Background(), CallbackInput{Code: "code-a", State: state, BoundUserID: "u2"})
	if !errors.Is(err, domain.ErrInvalidOrExpiredState) {
		t.Fatalf("expected ErrInvalidOrExpiredState, got %v", err)
	}
}

func TestCompletePlatformRejectsTamperedState(t *testing.T) {
	f := newLinkFixture(t)

	_, err := f.svc.CompletePlatform(context.Background(), CallbackInput{Code: "", State: "not-a-token"})
	if !errors.Is(err, domain.ErrInvalidOrExpiredState) || !errors.Is(err, statetoken.ErrMalformed) {
		t.Fatalf("expected invalid state wrapping ErrMalformed, got %v", err)
	}
	var linkErr *domain.LinkError
	if !errors.As(err, &linkErr) || linkErr.CodePresent {
		t.Fatalf("expected code_present=false, got %#v", linkErr)
	}
}

func TestCompletePlatformSurfacesUpstreamStatus(t *testing.T) {
	f := newLinkFixture(t)
	state, err := f.codec.Issue(context.Background(), statetoken.Payload{UserID: "u1", ReturnURL: "https://r1", Hop: statetoken.HopPlatform}, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	f.ledger.EXPECT().Consume(mock.Anything, mock.Anything, statetoken.HopPlatform, mock.Anything).Return(nil)
	f.platform.EXPECT().Exchange(mock.Anything, "code-a").Return(domain.Credential{}, &domain.UpstreamError{
		Provider: "monday", Op: "exchange", Status: 401, Err: domain.ErrUpstreamAuth,
	})

	_, err = f.svc.CompletePlatform(context.Background(), CallbackInput{Code: "code-a", State: state})
	if !errors.Is(err, domain.ErrUpstreamAuth) {
		t.Fatalf("expected ErrUpstreamAuth, got %v", err)
	}
	var linkErr *domain.LinkError
	if !errors.As(err, &linkErr) || linkErr.UpstreamStatus != 401 || linkErr.UserID != "u1" {
		t.Fatalf("unexpected link error: %#v", linkErr)
	}
}
