package routes

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthRoutes exposes a liveness check backed by the database.
type HealthRoutes struct {
	ping func(context.Context) error
}

func NewHealthRoutes(ping func(context.Context) error) *HealthRoutes {
	return &HealthRoutes{ping: ping}
}

// RegisterRoutes registers health routes on the server.
func (r *HealthRoutes) RegisterRoutes(s *echo.Echo) {
	s.GET("/healthz", r.handleHealth)
}

func (r *HealthRoutes) handleHealth(c echo.Context) error {
	if r.ping != nil {
		if err := r.ping(c.Request().Context()); err != nil {
			slog.ErrorContext(c.Request().Context(), "Health check failed", "error", err)
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
