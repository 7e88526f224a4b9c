package statetoken

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"
)

type staticSecrets map[string]string

func (s staticSecrets) Get(_ context.Context, key string) (string, error) {
	value, ok := s[key]
	if !ok {
		return "", errors.New("missing secret " + key)
	}
	return value, nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestCodec(clock *fakeClock) *Codec {
	return NewCodec(staticSecrets{"state_secret": "s3cr3t-value"}, "state_secret", WithClock(clock.Now))
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec := newTestCodec(clock)
	payload := Payload{UserID: "u1", ReturnURL: "https://platform.example.com/back?x=1", Hop: HopPlatform}

	token, err := codec.Issue(context.Background(), payload, 10*time.Minute)
	if err != nil {
		t.Fatalf("Issue error = %v", err)
	}

	clock.now = clock.now.Add(10 * time.Minute)
	claims, err := codec.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify at expiry boundary error = %v", err)
	}
	if claims.Payload != payload {
		t.Fatalf("payload mismatch: got %#v want %#v", claims.Payload, payload)
	}
	if claims.Nonce == "" {
		t.Fatal("expected nonce to be set")
	}
	if !claims.IssuedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected issued at: %s", claims.IssuedAt)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec := newTestCodec(clock)

	token, err := codec.Issue(context.Background(), Payload{UserID: "u1", ReturnURL: "https://r1", Hop: HopPartner}, time.Minute)
	if err != nil {
		t.Fatalf("Issue error = %v", err)
	}

	clock.now = clock.now.Add(time.Minute + time.Second)
	if _, err := codec.Verify(context.Background(), token); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestIssueUsesFreshNonce(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec := newTestCodec(clock)
	payload := Payload{UserID: "u1", ReturnURL: "https://r1", Hop: HopPlatform}

	first, err := codec.Issue(context.Background(), payload, time.Minute)
	if err != nil {
		t.Fatalf("Issue error = %v", err)
	}
	second, err := codec.Issue(context.Background(), payload, time.Minute)
	if err != nil {
		t.Fatalf("Issue error = %v", err)
	}
	if first == second {
		t.Fatal("expected distinct tokens for identical payloads")
	}
}

func TestVerifyRejectsFlippedSignatureBits(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec := newTestCodec(clock)
	token, err := codec.Issue(context.Background(), Payload{UserID: "u1", ReturnURL: "https://r1", Hop: HopPlatform}, time.Minute)
	if err != nil {
		t.Fatalf("Issue error = %v", err)
	}

	lastDot := strings.LastIndex(token, ".")
	signingInput, encodedSig := token[:lastDot], token[lastDot+1:]
	sig, err := base64.RawURLEncoding.DecodeString(encodedSig)
	if err != nil {
		t.Fatalf("decode signature: %v", err)
	}

	for i := 0; i < len(sig)*8; i++ {
		flipped := append([]byte(nil), sig...)
		flipped[i/8] ^= 1 << (i % 8)
		tampered := signingInput + "." + base64.RawURLEncoding.EncodeToString(flipped)
		if _, err := codec.Verify(context.Background(), tampered); !errors.Is(err, ErrInvalidSignature) {
			t.Fatalf("bit %d: expected ErrInvalidSignature, got %v", i, err)
		}
	}
}

func TestVerifyRejectsFlippedClaimBits(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec := newTestCodec(clock)
	token, err := codec.Issue(context.Background(), Payload{UserID: "u1", ReturnURL: "https://r1", Hop: HopPlatform}, time.Minute)
	if err != nil {
		t.Fatalf("Issue error = %v", err)
	}

	parts := strings.Split(token, ".")
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode claims: %v", err)
	}
	// Swap the user id so the JSON stays well formed.
	forged := strings.Replace(string(raw), `"sub":"u1"`, `"sub":"u2"`, 1)
	if forged == string(raw) {
		t.Fatalf("claims did not contain subject: %s", raw)
	}
	tampered := parts[0] + "." + base64.RawURLEncoding.EncodeToString([]byte(forged)) + "." + parts[2]
	if _, err := codec.Verify(context.Background(), tampered); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

// Flips that keep three decodable segments must fail the signature check;
// only flips that break the segment structure may report ErrMalformed.
func TestVerifyClassifiesEverySingleBitFlip(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec := newTestCodec(clock)
	token, err := codec.Issue(context.Background(), Payload{UserID: "u1", ReturnURL: "https://r1", Hop: HopPlatform}, time.Minute)
	if err != nil {
		t.Fatalf("Issue error = %v", err)
	}

	signatureFailures := 0
	for i := 0; i < len(token)*8; i++ {
		raw := []byte(token)
		raw[i/8] ^= 1 << (i % 8)
		tampered := string(raw)

		_, err := codec.Verify(context.Background(), tampered)
		if err == nil {
			t.Fatalf("bit %d: tampered token was accepted", i)
		}
		want := ErrMalformed
		if threeDecodableSegments(tampered) {
			want = ErrInvalidSignature
			signatureFailures++
		}
		if !errors.Is(err, want) {
			t.Fatalf("bit %d: expected %v, got %v", i, want, err)
		}
	}
	if signatureFailures == 0 {
		t.Fatal("expected some flips to reach the signature check")
	}
}

func threeDecodableSegments(token string) bool {
	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return false
	}
	for _, part := range parts {
		if _, err := base64.RawURLEncoding.Strict().DecodeString(part); err != nil {
			return false
		}
	}
	return true
}

func TestVerifyChecksSignatureBeforeDecodingClaims(t *testing.T) {
	t.Parallel()

	codec := NewCodec(staticSecrets{"state_secret": "x"}, "state_secret")
	notJSON := base64.RawURLEncoding.EncodeToString([]byte("not json"))
	sig := base64.RawURLEncoding.EncodeToString([]byte("whatever"))

	if _, err := codec.Verify(context.Background(), notJSON+"."+notJSON+"."+sig); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	issuer := NewCodec(staticSecrets{"state_secret": "first"}, "state_secret", WithClock(clock.Now))
	verifier := NewCodec(staticSecrets{"state_secret": "second"}, "state_secret", WithClock(clock.Now))

	token, err := issuer.Issue(context.Background(), Payload{UserID: "u1", ReturnURL: "https://r1", Hop: HopPlatform}, time.Minute)
	if err != nil {
		t.Fatalf("Issue error = %v", err)
	}
	if _, err := verifier.Verify(context.Background(), token); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifyRejectsMalformedWithoutSecretLookup(t *testing.T) {
	t.Parallel()

	codec := NewCodec(staticSecrets{}, "state_secret")
	for _, token := range []string{"", "abc", "a.b", "a.b.c.d", "!!.??.**", "e30..sig", ".e30.sig", "e30.e30.s*g"} {
		if _, err := codec.Verify(context.Background(), token); !errors.Is(err, ErrMalformed) {
			t.Fatalf("token %q: expected ErrMalformed, got %v", token, err)
		}
	}
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	t.Parallel()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	claims := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"u1","jti":"n","return_url":"https://r1","hop":"platform","iat":1,"exp":9999999999}`))
	codec := NewCodec(staticSecrets{"state_secret": "x"}, "state_secret")

	_, err := codec.Verify(context.Background(), header+"."+claims+".")
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestIssueValidatesPayload(t *testing.T) {
	t.Parallel()

	codec := NewCodec(staticSecrets{"state_secret": "x"}, "state_secret")
	cases := []Payload{
		{ReturnURL: "https://r1", Hop: HopPlatform},
		{UserID: "u1", Hop: HopPlatform},
		{UserID: "u1", ReturnURL: "https://r1", Hop: "sideways"},
	}
	for _, payload := range cases {
		if _, err := codec.Issue(context.Background(), payload, time.Minute); err == nil {
			t.Fatalf("expected error for payload %#v", payload)
		}
	}
	if _, err := codec.Issue(context.Background(), Payload{UserID: "u1", ReturnURL: "https://r1", Hop: HopPlatform}, 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}
