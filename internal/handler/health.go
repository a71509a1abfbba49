package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Healthz reports process liveness.
func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Readyz checks the session store and the booking backend.
func (h *Handler) Readyz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second)
	defer cancel()

	if h.rdb != nil {
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			return c.String(http.StatusServiceUnavailable, "redis not ready")
		}
	}
	if err := h.api.HealthCheck(ctx); err != nil {
		return c.String(http.StatusServiceUnavailable, "backend not ready")
	}
	return c.String(http.StatusOK, "ready")
}
