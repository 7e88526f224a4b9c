package routes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/linkbridge/internal/app/domain"
	"github.com/fr0stylo/linkbridge/internal/app/services"
)

const linkSessionUserIDKey = "linkUserID"

// LinkFlow is the account-link orchestration the routes drive.
type LinkFlow interface {
	Begin(ctx context.Context, userID, returnURL string) (services.BeginResult, error)
	CompletePlatform(ctx context.Context, input services.CallbackInput) (services.CallbackResult, error)
	CompletePartner(ctx context.Context, input services.CallbackInput) (services.CallbackResult, error)
}

// LinkConfig configures the browser-facing link routes.
type LinkConfig struct {
	PlatformProviderID  string
	PartnerCallbackPath string
	// BindBrowser requires both callbacks to arrive in the browser that
	// started the flow.
	BindBrowser   bool
	SessionStore  sessions.Store
	SessionCookie string
}

// LinkRoutes registers the two-hop OAuth link endpoints.
type LinkRoutes struct {
	flow           LinkFlow
	cfg            LinkConfig
	requireSession echo.MiddlewareFunc
}

func NewLinkRoutes(flow LinkFlow, cfg LinkConfig, requireSession echo.MiddlewareFunc) *LinkRoutes {
	if strings.TrimSpace(cfg.PartnerCallbackPath) == "" {
		cfg.PartnerCallbackPath = "/redirect"
	}
	if strings.TrimSpace(cfg.SessionCookie) == "" {
		cfg.SessionCookie = "linkbridge-link"
	}
	if cfg.SessionStore == nil {
		cfg.BindBrowser = false
	}
	return &LinkRoutes{flow: flow, cfg: cfg, requireSession: requireSession}
}

// RegisterRoutes registers link routes on the server.
func (r *LinkRoutes) RegisterRoutes(s *echo.Echo) {
	s.GET("/auth", r.handleBegin, r.requireSession)
	s.GET("/auth/:provider/callback", r.handlePlatformCallback)
	s.GET(r.cfg.PartnerCallbackPath, r.handlePartnerCallback)
}

func (r *LinkRoutes) handleBegin(c echo.Context) error {
	ctx := c.Request().Context()
	session, ok := PlatformSessionFrom(c)
	if !ok {
		return unauthorized(c)
	}
	// The return URL is signed into state and becomes the final redirect, so
	// it only ever comes from the verified platform session.
	if session.BackToURL == "" {
		slog.WarnContext(ctx, "Platform session has no return url", "user_id", session.UserID)
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "session backToUrl is required"})
	}

	result, err := r.flow.Begin(ctx, session.UserID, session.BackToURL)
	if err != nil {
		logLinkFailure(ctx, err)
		return internalError(c)
	}
	if !result.AlreadyLinked && r.cfg.BindBrowser {
		if err := r.bindBrowser(c, session.UserID); err != nil {
			slog.ErrorContext(ctx, "Failed to save link session", "user_id", session.UserID, "error", err)
			return internalError(c)
		}
	}
	return c.Redirect(http.StatusFound, result.RedirectURL)
}

func (r *LinkRoutes) handlePlatformCallback(c echo.Context) error {
	if !strings.EqualFold(c.Param("provider"), r.cfg.PlatformProviderID) {
		return echo.ErrNotFound
	}
	ctx := c.Request().Context()
	input, ok := r.callbackInput(c)
	if !ok {
		logUnboundCallback(ctx, services.StepPlatformCallback, input.Code)
		return internalError(c)
	}

	result, err := r.flow.CompletePlatform(ctx, input)
	if err != nil {
		logLinkFailure(ctx, err)
		return internalError(c)
	}
	return c.Redirect(http.StatusFound, result.RedirectURL)
}

func (r *LinkRoutes) handlePartnerCallback(c echo.Context) error {
	ctx := c.Request().Context()
	input, ok := r.callbackInput(c)
	if !ok {
		logUnboundCallback(ctx, services.StepPartnerCallback, input.Code)
		return internalError(c)
	}

	result, err := r.flow.CompletePartner(ctx, input)
	if err != nil {
		logLinkFailure(ctx, err)
		return internalError(c)
	}
	if r.cfg.BindBrowser {
		r.unbindBrowser(c)
	}
	slog.InfoContext(ctx, "Account link completed", "user_id", result.UserID)
	return c.Redirect(http.StatusFound, result.RedirectURL)
}

// callbackInput reads code and state. It reports false when browser binding
// is on and this browser never started a flow.
func (r *LinkRoutes) callbackInput(c echo.Context) (services.CallbackInput, bool) {
	input := services.CallbackInput{
		Code:  strings.TrimSpace(c.QueryParam("code")),
		State: strings.TrimSpace(c.QueryParam("state")),
	}
	if !r.cfg.BindBrowser {
		return input, true
	}
	session, err := r.cfg.SessionStore.Get(c.Request(), r.cfg.SessionCookie)
	if err != nil {
		return input, false
	}
	userID, _ := session.Values[linkSessionUserIDKey].(string)
	if strings.TrimSpace(userID) == "" {
		return input, false
	}
	input.BoundUserID = userID
	return input, true
}

func (r *LinkRoutes) bindBrowser(c echo.Context, userID string) error {
	session, err := r.cfg.SessionStore.Get(c.Request(), r.cfg.SessionCookie)
	if err != nil && session == nil {
		return err
	}
	session.Values[linkSessionUserIDKey] = userID
	return session.Save(c.Request(), c.Response())
}

func (r *LinkRoutes) unbindBrowser(c echo.Context) {
	session, err := r.cfg.SessionStore.Get(c.Request(), r.cfg.SessionCookie)
	if err != nil {
		return
	}
	delete(session.Values, linkSessionUserIDKey)
	session.Options.MaxAge = -1
	_ = session.Save(c.Request(), c.Response())
}

// NewLinkSessionStore builds the cookie store that carries the browser
// binding between redirects.
func NewLinkSessionStore(secret string, maxAge time.Duration, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

func logLinkFailure(ctx context.Context, err error) {
	var linkErr *domain.LinkError
	if !errors.As(err, &linkErr) {
		slog.ErrorContext(ctx, "Link step failed", "error", err)
		return
	}
	slog.ErrorContext(ctx, "Link step failed",
		"step", linkErr.Step,
		"user_id", linkErr.UserID,
		"code_present", linkErr.CodePresent,
		"upstream_status", linkErr.UpstreamStatus,
		"error", linkErr.Err,
	)
}

func logUnboundCallback(ctx context.Context, step, code string) {
	slog.ErrorContext(ctx, "Link step failed",
		"step", step,
		"code_present", code != "",
		"upstream_status", 0,
		"error", domain.ErrInvalidOrExpiredState,
		"reason", "callback arrived without a link session",
	)
}
