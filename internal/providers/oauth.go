// Package providers talks to the upstream OAuth servers and the partner API.
package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/fr0stylo/linkbridge/internal/app/domain"
	"github.com/fr0stylo/linkbridge/internal/config"
	"github.com/fr0stylo/linkbridge/internal/secrets"
)

// OAuthProvider runs the authorization-code grant against one provider.
// Client credentials are read from the secret store on every call.
type OAuthProvider struct {
	cfg         config.ProviderConfig
	redirectURL string
	secrets     secrets.Store
	httpClient  *http.Client
}

func NewOAuthProvider(cfg config.ProviderConfig, redirectURL string, store secrets.Store, httpClient *http.Client) *OAuthProvider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OAuthProvider{
		cfg:         cfg,
		redirectURL: strings.TrimSpace(redirectURL),
		secrets:     store,
		httpClient:  httpClient,
	}
}

func (p *OAuthProvider) ID() string {
	return p.cfg.ID
}

func (p *OAuthProvider) AuthCodeURL(ctx context.Context, state string) (string, error) {
	conf, err := p.oauthConfig(ctx, false)
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL(state), nil
}

func (p *OAuthProvider) Exchange(ctx context.Context, code string) (domain.Credential, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Credential{}, p.upstreamError("exchange", fmt.Errorf("authorization code is empty"))
	}
	conf, err := p.oauthConfig(ctx, true)
	if err != nil {
		return domain.Credential{}, err
	}
	token, err := conf.Exchange(p.clientContext(ctx), code)
	if err != nil {
		return domain.Credential{}, p.upstreamError("exchange", err)
	}
	return credentialFromToken(token), nil
}

// Refresh returns cred unchanged while it is valid, otherwise a token minted
// from its refresh token.
func (p *OAuthProvider) Refresh(ctx context.Context, cred domain.Credential) (domain.Credential, error) {
	current := tokenFromCredential(cred)
	if current.Valid() || cred.RefreshToken == "" {
		return cred, nil
	}
	conf, err := p.oauthConfig(ctx, true)
	if err != nil {
		return domain.Credential{}, err
	}
	token, err := conf.TokenSource(p.clientContext(ctx), current).Token()
	if err != nil {
		return domain.Credential{}, p.upstreamError("refresh", err)
	}
	return credentialFromToken(token), nil
}

func (p *OAuthProvider) oauthConfig(ctx context.Context, withSecret bool) (*oauth2.Config, error) {
	if p.secrets == nil {
		return nil, fmt.Errorf("%s: secret store is not configured", p.cfg.ID)
	}
	clientID, err := p.secrets.Get(ctx, p.cfg.ClientIDKey)
	if err != nil {
		return nil, fmt.Errorf("%s client id: %w", p.cfg.ID, err)
	}
	conf := &oauth2.Config{
		ClientID:    clientID,
		RedirectURL: p.redirectURL,
		Scopes:      p.cfg.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   p.cfg.AuthorizeURL,
			TokenURL:  p.cfg.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	if withSecret {
		clientSecret, err := p.secrets.Get(ctx, p.cfg.ClientSecretKey)
		if err != nil {
			return nil, fmt.Errorf("%s client secret: %w", p.cfg.ID, err)
		}
		conf.ClientSecret = clientSecret
	}
	return conf, nil
}

func (p *OAuthProvider) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
}

func (p *OAuthProvider) upstreamError(op string, err error) error {
	status := 0
	var retrieve *oauth2.RetrieveError
	if errors.As(err, &retrieve) && retrieve.Response != nil {
		status = retrieve.Response.StatusCode
		// The body may echo request parameters; keep only the OAuth error code.
		err = fmt.Errorf("token endpoint error %q", retrieve.ErrorCode)
	}
	return &domain.UpstreamError{
		Provider: p.cfg.ID,
		Op:       op,
		Status:   status,
		Err:      fmt.Errorf("%w: %v", domain.ErrUpstreamAuth, err),
	}
}

func credentialFromToken(token *oauth2.Token) domain.Credential {
	return domain.Credential{
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry.UTC(),
	}
}

func tokenFromCredential(cred domain.Credential) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  cred.AccessToken,
		TokenType:    cred.TokenType,
		RefreshToken: cred.RefreshToken,
		Expiry:       cred.Expiry,
	}
}
