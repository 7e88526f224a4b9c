// Package statetoken signs and verifies the state parameter that threads a
// user's identity and return location through the OAuth redirects.
package statetoken

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMalformed        = errors.New("state token is malformed")
	ErrInvalidSignature = errors.New("state token signature is invalid")
	ErrExpired          = errors.New("state token is expired")
)

var segmentEncoding = base64.RawURLEncoding.Strict()

// Hop names the redirect leg a token was issued for.
type Hop string

const (
	HopPlatform Hop = "platform"
	HopPartner  Hop = "partner"
)

func (h Hop) valid() bool {
	return h == HopPlatform || h == HopPartner
}

// Payload is the caller-controlled part of a state token.
type Payload struct {
	UserID    string
	ReturnURL string
	Hop       Hop
}

// Claims is a verified token.
type Claims struct {
	Payload
	Nonce     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SecretSource resolves the signing secret on every call so rotation only
// depends on the source's own caching.
type SecretSource interface {
	Get(ctx context.Context, key string) (string, error)
}

type linkClaims struct {
	jwt.RegisteredClaims
	ReturnURL string `json:"return_url"`
	Hop       Hop    `json:"hop"`
}

// Codec issues and verifies HS256-signed state tokens.
type Codec struct {
	secrets   SecretSource
	secretKey string
	now       func() time.Time
	parser    *jwt.Parser
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCodec builds a codec reading its secret from source under secretKey.
func NewCodec(source SecretSource, secretKey string, opts ...Option) *Codec {
	c := &Codec{
		secrets:   source,
		secretKey: strings.TrimSpace(secretKey),
		now:       time.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithStrictDecoding(),
			jwt.WithoutClaimsValidation(),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Issue signs payload with an expiry of now+ttl.
func (c *Codec) Issue(ctx context.Context, payload Payload, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", fmt.Errorf("state token ttl must be positive, got %s", ttl)
	}
	payload.UserID = strings.TrimSpace(payload.UserID)
	payload.ReturnURL = strings.TrimSpace(payload.ReturnURL)
	if payload.UserID == "" {
		return "", fmt.Errorf("state token user id is required")
	}
	if payload.ReturnURL == "" {
		return "", fmt.Errorf("state token return url is required")
	}
	if !payload.Hop.valid() {
		return "", fmt.Errorf("state token hop %q is unknown", payload.Hop)
	}

	secret, err := c.secret(ctx)
	if err != nil {
		return "", err
	}

	issuedAt := c.now().UTC().Truncate(time.Second)
	claims := linkClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.UserID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		ReturnURL: payload.ReturnURL,
		Hop:       payload.Hop,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign state token: %w", err)
	}
	return signed, nil
}

// Verify checks structure, then signature, then claims, then expiry.
// Structure is three base64url segments; nothing is JSON-decoded until the
// signature over the first two has matched.
func (c *Codec) Verify(ctx context.Context, token string) (Claims, error) {
	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return Claims{}, ErrMalformed
	}
	var signature []byte
	for i, part := range parts {
		decoded, err := segmentEncoding.DecodeString(part)
		if err != nil {
			return Claims{}, ErrMalformed
		}
		if i == 2 {
			signature = decoded
		}
	}

	secret, err := c.secret(ctx)
	if err != nil {
		return Claims{}, err
	}
	// hmac.Equal underneath.
	if err := jwt.SigningMethodHS256.Verify(parts[0]+"."+parts[1], signature, secret); err != nil {
		return Claims{}, ErrInvalidSignature
	}

	var parsed linkClaims
	if _, err := c.parser.ParseWithClaims(strings.Join(parts, "."), &parsed, func(*jwt.Token) (any, error) {
		return secret, nil
	}); err != nil {
		return Claims{}, ErrMalformed
	}

	if parsed.Subject == "" || parsed.ID == "" || parsed.ReturnURL == "" || !parsed.Hop.valid() {
		return Claims{}, ErrMalformed
	}
	if parsed.ExpiresAt == nil || parsed.IssuedAt == nil {
		return Claims{}, ErrMalformed
	}

	expiresAt := parsed.ExpiresAt.Time.UTC()
	if c.now().UTC().After(expiresAt) {
		return Claims{}, ErrExpired
	}

	return Claims{
		Payload: Payload{
			UserID:    parsed.Subject,
			ReturnURL: parsed.ReturnURL,
			Hop:       parsed.Hop,
		},
		Nonce:     parsed.ID,
		IssuedAt:  parsed.IssuedAt.Time.UTC(),
		ExpiresAt: expiresAt,
	}, nil
}

func (c *Codec) secret(ctx context.Context) ([]byte, error) {
	if c.secrets == nil {
		return nil, fmt.Errorf("state token secret source is not configured")
	}
	value, err := c.secrets.Get(ctx, c.secretKey)
	if err != nil {
		return nil, fmt.Errorf("resolve state signing secret: %w", err)
	}
	if value == "" {
		return nil, fmt.Errorf("state signing secret %q is empty", c.secretKey)
	}
	return []byte(value), nil
}
