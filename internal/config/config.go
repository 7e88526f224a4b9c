package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment   string
	Server        ServerConfig
	Database      DatabaseConfig
	Link          LinkConfig
	Platform      ProviderConfig
	Partner       ProviderConfig
	Secrets       SecretsConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Port            int
	PublicURL       string
	UpstreamTimeout time.Duration
}

type DatabaseConfig struct {
	Path string
}

// LinkConfig tunes the two-hop account linking flow.
type LinkConfig struct {
	StateTTL      time.Duration
	BindBrowser   bool
	SecureCookie  bool
	SessionCookie string
}

// ProviderConfig describes one OAuth authorization server. Client credentials
// are resolved through the secret store under ClientIDKey/ClientSecretKey.
type ProviderConfig struct {
	ID              string
	AuthorizeURL    string
	TokenURL        string
	APIBaseURL      string
	Scopes          []string
	ClientIDKey     string
	ClientSecretKey string
	CallbackPath    string
}

type SecretsConfig struct {
	CacheTTL  time.Duration
	CacheSize int
}

type ObservabilityConfig struct {
	Enabled           bool
	OTLPEndpoint      string
	OTLPTraceHeaders  map[string]string
	OTLPMetricHeaders map[string]string
	ServiceName       string
	ServiceVer        string
	SamplingRatio     float64
	MetricsConsole    bool
}

func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("linkbridge_env", "")
	v.SetDefault("app_env", "")
	v.SetDefault("go_env", "")
	v.SetDefault("linkbridge_port", 8080)
	v.SetDefault("linkbridge_public_url", "")
	v.SetDefault("linkbridge_upstream_timeout", "10s")
	v.SetDefault("linkbridge_db_path", "data/linkbridge")
	v.SetDefault("linkbridge_state_ttl", "10m")
	v.SetDefault("linkbridge_bind_browser", true)
	v.SetDefault("linkbridge_secure_cookie", false)
	v.SetDefault("linkbridge_session_cookie", "linkbridge-link")
	v.SetDefault("linkbridge_secret_cache_ttl", "5m")
	v.SetDefault("linkbridge_secret_cache_size", 64)

	v.SetDefault("platform_provider_id", "monday")
	v.SetDefault("platform_oauth_authorize_url", "https://auth.monday.com/oauth2/authorize")
	v.SetDefault("platform_oauth_token_url", "https://auth.monday.com/oauth2/token")
	v.SetDefault("platform_oauth_scopes", "")
	v.SetDefault("partner_provider_id", "gusto")
	v.SetDefault("partner_oauth_authorize_url", "https://api.gusto-demo.com/oauth/authorize")
	v.SetDefault("partner_oauth_token_url", "https://api.gusto-demo.com/oauth/token")
	v.SetDefault("partner_api_base_url", "https://api.gusto-demo.com")
	v.SetDefault("partner_oauth_scopes", "")

	v.SetDefault("linkbridge_otel_enabled", false)
	v.SetDefault("otel_exporter_otlp_endpoint", "")
	v.SetDefault("otel_exporter_otlp_headers", "")
	v.SetDefault("otel_exporter_otlp_traces_headers", "")
	v.SetDefault("otel_exporter_otlp_metrics_headers", "")
	v.SetDefault("otel_service_name", "linkbridge")
	v.SetDefault("linkbridge_version", "dev")
	v.SetDefault("linkbridge_otel_sampling_ratio", 1.0)
	v.SetDefault("linkbridge_otel_metrics_console", false)

	env := resolveEnvironment(v)
	port := v.GetInt("linkbridge_port")
	if port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid LINKBRIDGE_PORT: %d", port)
	}

	upstreamTimeout := v.GetDuration("linkbridge_upstream_timeout")
	if upstreamTimeout <= 0 {
		return Config{}, fmt.Errorf("invalid LINKBRIDGE_UPSTREAM_TIMEOUT: %s", v.GetString("linkbridge_upstream_timeout"))
	}
	if upstreamTimeout > time.Minute {
		upstreamTimeout = time.Minute
	}

	stateTTL := v.GetDuration("linkbridge_state_ttl")
	if stateTTL <= 0 {
		return Config{}, fmt.Errorf("invalid LINKBRIDGE_STATE_TTL: %s", v.GetString("linkbridge_state_ttl"))
	}

	cacheTTL := v.GetDuration("linkbridge_secret_cache_ttl")
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	cacheSize := v.GetInt("linkbridge_secret_cache_size")
	if cacheSize <= 0 {
		cacheSize = 64
	}

	samplingRatio := v.GetFloat64("linkbridge_otel_sampling_ratio")
	if samplingRatio < 0 {
		samplingRatio = 0
	}
	if samplingRatio > 1 {
		samplingRatio = 1
	}

	serviceName := strings.TrimSpace(v.GetString("otel_service_name"))
	if serviceName == "" {
		serviceName = "linkbridge"
	}
	serviceVersion := strings.TrimSpace(v.GetString("linkbridge_version"))
	if serviceVersion == "" {
		serviceVersion = "dev"
	}

	otlpEndpoint := strings.TrimSpace(v.GetString("otel_exporter_otlp_endpoint"))
	otlpCommonHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_headers"))
	otlpTraceHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_traces_headers"))
	otlpMetricHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_metrics_headers"))
	metricsConsole := v.GetBool("linkbridge_otel_metrics_console")
	otelEnabled := v.GetBool("linkbridge_otel_enabled") || otlpEndpoint != "" || metricsConsole

	platformID := strings.ToLower(strings.TrimSpace(v.GetString("platform_provider_id")))
	partnerID := strings.ToLower(strings.TrimSpace(v.GetString("partner_provider_id")))
	if platformID == "" || partnerID == "" {
		return Config{}, fmt.Errorf("PLATFORM_PROVIDER_ID and PARTNER_PROVIDER_ID are required")
	}
	if platformID == partnerID {
		return Config{}, fmt.Errorf("platform and partner provider ids must differ, both are %q", platformID)
	}

	cfg := Config{
		Environment: env,
		Server: ServerConfig{
			Port:            port,
			PublicURL:       strings.TrimRight(strings.TrimSpace(v.GetString("linkbridge_public_url")), "/"),
			UpstreamTimeout: upstreamTimeout,
		},
		Database: DatabaseConfig{
			Path: strings.TrimSpace(v.GetString("linkbridge_db_path")),
		},
		Link: LinkConfig{
			StateTTL:      stateTTL,
			BindBrowser:   v.GetBool("linkbridge_bind_browser"),
			SecureCookie:  v.GetBool("linkbridge_secure_cookie"),
			SessionCookie: strings.TrimSpace(v.GetString("linkbridge_session_cookie")),
		},
		Platform: ProviderConfig{
			ID:              platformID,
			AuthorizeURL:    strings.TrimSpace(v.GetString("platform_oauth_authorize_url")),
			TokenURL:        strings.TrimSpace(v.GetString("platform_oauth_token_url")),
			Scopes:          splitList(v.GetString("platform_oauth_scopes")),
			ClientIDKey:     "platform_oauth_client_id",
			ClientSecretKey: "platform_oauth_client_secret",
			CallbackPath:    "/auth/" + platformID + "/callback",
		},
		Partner: ProviderConfig{
			ID:              partnerID,
			AuthorizeURL:    strings.TrimSpace(v.GetString("partner_oauth_authorize_url")),
			TokenURL:        strings.TrimSpace(v.GetString("partner_oauth_token_url")),
			APIBaseURL:      strings.TrimRight(strings.TrimSpace(v.GetString("partner_api_base_url")), "/"),
			Scopes:          splitList(v.GetString("partner_oauth_scopes")),
			ClientIDKey:     "partner_oauth_client_id",
			ClientSecretKey: "partner_oauth_client_secret",
			CallbackPath:    "/redirect",
		},
		Secrets: SecretsConfig{
			CacheTTL:  cacheTTL,
			CacheSize: cacheSize,
		},
		Observability: ObservabilityConfig{
			Enabled:           otelEnabled,
			OTLPEndpoint:      otlpEndpoint,
			OTLPTraceHeaders:  mergeHeaderMaps(otlpCommonHeaders, otlpTraceHeaders),
			OTLPMetricHeaders: mergeHeaderMaps(otlpCommonHeaders, otlpMetricHeaders),
			ServiceName:       serviceName,
			ServiceVer:        serviceVersion,
			SamplingRatio:     samplingRatio,
			MetricsConsole:    metricsConsole,
		},
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/linkbridge"
	}
	if cfg.Link.SessionCookie == "" {
		cfg.Link.SessionCookie = "linkbridge-link"
	}
	if cfg.Server.PublicURL == "" {
		if !cfg.IsLocalDevelopment() {
			return Config{}, fmt.Errorf("LINKBRIDGE_PUBLIC_URL is required outside local/dev environments")
		}
		cfg.Server.PublicURL = fmt.Sprintf("http://localhost:%d", port)
	}
	if _, err := url.ParseRequestURI(cfg.Server.PublicURL); err != nil {
		return Config{}, fmt.Errorf("invalid LINKBRIDGE_PUBLIC_URL: %w", err)
	}
	for _, provider := range []ProviderConfig{cfg.Platform, cfg.Partner} {
		if provider.AuthorizeURL == "" || provider.TokenURL == "" {
			return Config{}, fmt.Errorf("provider %q requires authorize and token urls", provider.ID)
		}
	}
	if cfg.Partner.APIBaseURL == "" {
		return Config{}, fmt.Errorf("PARTNER_API_BASE_URL is required")
	}

	return cfg, nil
}

// RedirectURL returns the absolute callback URL registered with the provider.
func (c Config) RedirectURL(provider ProviderConfig) string {
	return c.Server.PublicURL + provider.CallbackPath
}

func (c Config) IsLocalDevelopment() bool {
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "", "local", "dev", "development", "test":
		return true
	default:
		return false
	}
}

func resolveEnvironment(v *viper.Viper) string {
	for _, key := range []string{"linkbridge_env", "app_env", "go_env"} {
		value := strings.TrimSpace(v.GetString(key))
		if value != "" {
			return strings.ToLower(value)
		}
	}
	return ""
}

func splitList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func parseOTLPHeaders(raw string) map[string]string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	out := make(map[string]string)
	for _, part := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func mergeHeaderMaps(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}
