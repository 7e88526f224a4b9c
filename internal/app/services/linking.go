package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fr0stylo/linkbridge/internal/app/domain"
	"github.com/fr0stylo/linkbridge/internal/app/ports"
	"github.com/fr0stylo/linkbridge/internal/statetoken"
)

// Link steps, used as LinkError.Step and metric attributes.
const (
	StepBegin            = "begin"
	StepPlatformCallback = "platform_callback"
	StepPartnerCallback  = "partner_callback"
)

const defaultStateTTL = 10 * time.Minute

// LinkService drives the two-hop account link: platform consent first, then
// partner consent, with identity carried between redirects in signed state.
type LinkService struct {
	connections ports.ConnectionStore
	ledger      ports.StateLedger
	codec       ports.StateCodec
	platform    ports.OAuthProvider
	partner     ports.OAuthProvider
	stateTTL    time.Duration
	metrics     linkMetrics
}

func NewLinkService(
	connections ports.ConnectionStore,
	ledger ports.StateLedger,
	codec ports.StateCodec,
	platform ports.OAuthProvider,
	partner ports.OAuthProvider,
	stateTTL time.Duration,
) *LinkService {
	if stateTTL <= 0 {
		stateTTL = defaultStateTTL
	}
	return &LinkService{
		connections: connections,
		ledger:      ledger,
		codec:       codec,
		platform:    platform,
		partner:     partner,
		stateTTL:    stateTTL,
		metrics:     newLinkMetrics(),
	}
}

// BeginResult tells the caller where to send the browser next.
type BeginResult struct {
	RedirectURL   string
	AlreadyLinked bool
}

// CallbackInput is one provider redirect back to us. BoundUserID, when set,
// must match the user the state was issued for.
type CallbackInput struct {
	Code        string
	State       string
	BoundUserID string
}

// CallbackResult is the next redirect plus the user the state resolved to.
type CallbackResult struct {
	RedirectURL string
	UserID      string
}

// Begin short-circuits to returnURL for a fully linked user, otherwise it
// returns the platform authorization URL.
func (s *LinkService) Begin(ctx context.Context, userID, returnURL string) (result BeginResult, err error) {
	defer func() { s.metrics.record(ctx, StepBegin, err) }()

	userID = strings.TrimSpace(userID)
	returnURL = strings.TrimSpace(returnURL)
	fail := func(err error) (BeginResult, error) {
		return BeginResult{}, &domain.LinkError{Step: StepBegin, UserID: userID, UpstreamStatus: domain.UpstreamStatus(err), Err: err}
	}

	conn, err := s.connections.GetByUser(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrConnectionNotFound):
	case err != nil:
		return fail(fmt.Errorf("load connection: %w", err))
	case conn.FullyLinked():
		return BeginResult{RedirectURL: returnURL, AlreadyLinked: true}, nil
	}

	redirect, err := s.authorize(ctx, s.platform, statetoken.Payload{UserID: userID, ReturnURL: returnURL, Hop: statetoken.HopPlatform})
	if err != nil {
		return fail(err)
	}
	return BeginResult{RedirectURL: redirect}, nil
}

// CompletePlatform stores the platform credential and hands the browser on to
// the partner's consent screen with a fresh state token.
func (s *LinkService) CompletePlatform(ctx context.Context, input CallbackInput) (result CallbackResult, err error) {
	defer func() { s.metrics.record(ctx, StepPlatformCallback, err) }()

	claims, err := s.complete(ctx, StepPlatformCallback, statetoken.HopPlatform, s.platform, input, func(cred *domain.Credential) domain.ConnectionUpdate {
		return domain.ConnectionUpdate{PlatformToken: cred}
	})
	if err != nil {
		return CallbackResult{}, err
	}

	redirect, err := s.authorize(ctx, s.partner, statetoken.Payload{UserID: claims.UserID, ReturnURL: claims.ReturnURL, Hop: statetoken.HopPartner})
	if err != nil {
		return CallbackResult{}, s.linkError(StepPlatformCallback, claims.UserID, input.Code, err)
	}
	return CallbackResult{RedirectURL: redirect, UserID: claims.UserID}, nil
}

// CompletePartner stores the partner credential and finishes at the return URL.
func (s *LinkService) CompletePartner(ctx context.Context, input CallbackInput) (result CallbackResult, err error) {
	defer func() { s.metrics.record(ctx, StepPartnerCallback, err) }()

	claims, err := s.complete(ctx, StepPartnerCallback, statetoken.HopPartner, s.partner, input, func(cred *domain.Credential) domain.ConnectionUpdate {
		return domain.ConnectionUpdate{PartnerToken: cred}
	})
	if err != nil {
		return CallbackResult{}, err
	}
	return CallbackResult{RedirectURL: claims.ReturnURL, UserID: claims.UserID}, nil
}

func (s *LinkService) complete(
	ctx context.Context,
	step string,
	hop statetoken.Hop,
	provider ports.OAuthProvider,
	input CallbackInput,
	update func(*domain.Credential) domain.ConnectionUpdate,
) (statetoken.Claims, error) {
	claims, err := s.verifyState(ctx, input, hop)
	if err != nil {
		return statetoken.Claims{}, s.linkError(step, claims.UserID, input.Code, err)
	}

	cred, err := provider.Exchange(ctx, input.Code)
	if err != nil {
		return statetoken.Claims{}, s.linkError(step, claims.UserID, input.Code, fmt.Errorf("exchange %s code: %w", provider.ID(), err))
	}
	if _, err := s.connections.Upsert(ctx, claims.UserID, update(&cred)); err != nil {
		return statetoken.Claims{}, s.linkError(step, claims.UserID, input.Code, fmt.Errorf("store %s credential: %w", provider.ID(), err))
	}
	return claims, nil
}

// verifyState returns the claims it could decode even on failure so the
// caller can still log the user id.
func (s *LinkService) verifyState(ctx context.Context, input CallbackInput, hop statetoken.Hop) (statetoken.Claims, error) {
	claims, err := s.codec.Verify(ctx, input.State)
	if err != nil {
		return statetoken.Claims{}, fmt.Errorf("%w: %w", domain.ErrInvalidOrExpiredState, err)
	}
	if claims.Hop != hop {
		return claims, fmt.Errorf("%w: issued for %s hop", domain.ErrInvalidOrExpiredState, claims.Hop)
	}
	bound := strings.TrimSpace(input.BoundUserID)
	if bound != "" && bound != claims.UserID {
		return claims, fmt.Errorf("%w: browser session belongs to another user", domain.ErrInvalidOrExpiredState)
	}
	if err := s.ledger.Consume(ctx, claims.Nonce, claims.Hop, claims.ExpiresAt); err != nil {
		if errors.Is(err, domain.ErrStateAlreadyUsed) {
			return claims, fmt.Errorf("%w: %w", domain.ErrInvalidOrExpiredState, err)
		}
		return claims, fmt.Errorf("consume state: %w", err)
	}
	return claims, nil
}

func (s *LinkService) authorize(ctx context.Context, provider ports.OAuthProvider, payload statetoken.Payload) (string, error) {
	state, err := s.codec.Issue(ctx, payload, s.stateTTL)
	if err != nil {
		return "", fmt.Errorf("issue %s state: %w", payload.Hop, err)
	}
	redirect, err := provider.AuthCodeURL(ctx, state)
	if err != nil {
		return "", fmt.Errorf("%s authorization url: %w", provider.ID(), err)
	}
	return redirect, nil
}

func (s *LinkService) linkError(step, userID, code string, err error) error {
	return &domain.LinkError{
		Step:           step,
		UserID:         userID,
		CodePresent:    strings.TrimSpace(code) != "",
		UpstreamStatus: domain.UpstreamStatus(err),
		Err:            err,
	}
}
