package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/linkbridge/internal/observability"
	"github.com/fr0stylo/linkbridge/internal/secrets"
)

const platformSessionKey = "platformSession"

// PlatformSession is the identity the workflow platform vouches for on each
// request it originates.
type PlatformSession struct {
	UserID    string
	AccountID string
	BackToURL string
}

// flexibleID accepts both JSON numbers and strings.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		*f = ""
		return nil
	}
	if len(raw) > 0 && raw[0] == '"' {
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return err
		}
		*f = flexibleID(strings.TrimSpace(value))
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		return err
	}
	*f = flexibleID(number.String())
	return nil
}

type platformClaims struct {
	jwt.RegisteredClaims
	UserID    flexibleID `json:"userId"`
	AccountID flexibleID `json:"accountId"`
	BackToURL string     `json:"backToUrl"`
}

// RequirePlatformSession verifies the platform's HS256 session token from the
// token query parameter or the Authorization header.
func RequirePlatformSession(store secrets.Store) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			raw := sessionToken(c.Request())
			if raw == "" {
				return unauthorized(c)
			}

			var claims platformClaims
			_, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
				secret, err := store.Get(ctx, secrets.PlatformSigningSecret)
				if err != nil {
					return nil, err
				}
				return []byte(secret), nil
			})
			if err != nil {
				slog.WarnContext(ctx, "Rejected platform session", "reason", sessionRejectReason(err))
				return unauthorized(c)
			}
			if claims.UserID == "" {
				slog.WarnContext(ctx, "Rejected platform session", "reason", "missing user id")
				return unauthorized(c)
			}

			session := PlatformSession{
				UserID:    string(claims.UserID),
				AccountID: string(claims.AccountID),
				BackToURL: strings.TrimSpace(claims.BackToURL),
			}
			c.Set(platformSessionKey, session)
			c.SetRequest(c.Request().WithContext(observability.WithRequestIdentity(ctx, session.UserID)))
			return next(c)
		}
	}
}

// PlatformSessionFrom returns the session set by RequirePlatformSession.
func PlatformSessionFrom(c echo.Context) (PlatformSession, bool) {
	session, ok := c.Get(platformSessionKey).(PlatformSession)
	return session, ok && session.UserID != ""
}

func sessionToken(r *http.Request) string {
	if token := strings.TrimSpace(r.URL.Query().Get("token")); token != "" {
		return token
	}
	header := strings.TrimSpace(r.Header.Get(echo.HeaderAuthorization))
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

func sessionRejectReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature invalid"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return "unverifiable"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	default:
		return "invalid"
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
}

func internalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal server error"})
}
