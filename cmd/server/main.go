package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fr0stylo/linkbridge/internal/adapters/sqlite"
	"github.com/fr0stylo/linkbridge/internal/app/services"
	"github.com/fr0stylo/linkbridge/internal/config"
	"github.com/fr0stylo/linkbridge/internal/db"
	"github.com/fr0stylo/linkbridge/internal/observability"
	"github.com/fr0stylo/linkbridge/internal/providers"
	"github.com/fr0stylo/linkbridge/internal/secrets"
	"github.com/fr0stylo/linkbridge/internal/server"
	"github.com/fr0stylo/linkbridge/internal/server/routes"
	"github.com/fr0stylo/linkbridge/internal/statetoken"
)

func main() {
	log := slog.New(observability.WrapSlogHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))
	slog.SetDefault(log)

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	if err := run(log); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOpenTelemetry(ctx, log, observability.OpenTelemetryConfig(cfg.Observability))
	if err != nil {
		return fmt.Errorf("setup opentelemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(shutdownCtx); err != nil {
			slog.Error("Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	database, err := db.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		for _, stat := range database.QueryLatencyStats() {
			slog.Debug("Query latency", "query", stat.Name, "count", stat.Count, "p50", stat.P50, "p95", stat.P95, "max", stat.Max)
		}
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}()

	secretStore, err := newSecretStore(cfg)
	if err != nil {
		return err
	}
	sessionSecret, err := secretStore.Get(ctx, secrets.SessionCookieSecret)
	if err != nil && cfg.Link.BindBrowser {
		return fmt.Errorf("browser binding needs %s: %w", secrets.SessionCookieSecret, err)
	}

	connections := sqlite.NewConnectionStore(database)
	subscriptionStore := sqlite.NewSubscriptionStore(database)
	ledger := sqlite.NewStateLedger(database)
	if purged, err := ledger.PurgeExpired(ctx); err != nil {
		slog.Warn("Failed to purge consumed link states", "error", err)
	} else if purged > 0 {
		slog.Info("Purged expired link states", "count", purged)
	}

	httpClient := observability.NewHTTPClient(cfg.Server.UpstreamTimeout)
	platform := providers.NewOAuthProvider(cfg.Platform, cfg.RedirectURL(cfg.Platform), secretStore, httpClient)
	partner := providers.NewOAuthProvider(cfg.Partner, cfg.RedirectURL(cfg.Partner), secretStore, httpClient)
	partnerAPI := providers.NewPartnerClient(cfg.Partner.ID, cfg.Partner.APIBaseURL, httpClient)

	codec := statetoken.NewCodec(secretStore, secrets.LinkStateSigningSecret)
	linkService := services.NewLinkService(connections, ledger, codec, platform, partner, cfg.Link.StateTTL)
	subscriptionService := services.NewSubscriptionService(connections, subscriptionStore, partner, partnerAPI)

	requireSession := routes.RequirePlatformSession(secretStore)
	linkConfig := routes.LinkConfig{
		PlatformProviderID:  cfg.Platform.ID,
		PartnerCallbackPath: cfg.Partner.CallbackPath,
		BindBrowser:         cfg.Link.BindBrowser,
		SessionCookie:       cfg.Link.SessionCookie,
	}
	if cfg.Link.BindBrowser {
		// Both hops must finish inside the cookie's lifetime.
		linkConfig.SessionStore = routes.NewLinkSessionStore(sessionSecret, 2*cfg.Link.StateTTL, cfg.Link.SecureCookie)
	}

	srv := server.New(log)
	srv.RegisterRouter(routes.NewHealthRoutes(database.Ping))
	srv.RegisterRouter(routes.NewLinkRoutes(linkService, linkConfig, requireSession))
	srv.RegisterRouter(routes.NewTriggerRoutes(subscriptionService, requireSession))

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("Starting server",
			"port", cfg.Server.Port,
			"public_url", cfg.Server.PublicURL,
			"platform", cfg.Platform.ID,
			"partner", cfg.Partner.ID,
		)
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newSecretStore layers the process environment under an expiring cache.
// Local environments get fixed signing secrets so the flow works without
// any setup.
func newSecretStore(cfg config.Config) (*secrets.CachedStore, error) {
	var fallbacks map[string]string
	if cfg.IsLocalDevelopment() {
		fallbacks = map[string]string{
			secrets.LinkStateSigningSecret: "linkbridge-local-state",
			secrets.PlatformSigningSecret:  "linkbridge-local-platform",
			secrets.SessionCookieSecret:    "linkbridge-local-session",
		}
		slog.Warn("Using local development fallbacks for unset signing secrets")
	}
	env := secrets.NewEnvStore(fallbacks)
	for _, key := range []string{secrets.LinkStateSigningSecret, secrets.PlatformSigningSecret} {
		if _, err := env.Get(context.Background(), key); err != nil {
			return nil, fmt.Errorf("%s is required outside local/dev environments: %w", key, err)
		}
	}
	return secrets.NewCachedStore(env, cfg.Secrets.CacheSize, cfg.Secrets.CacheTTL), nil
}
