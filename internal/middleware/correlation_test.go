package middleware_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/iqac-report-api/internal/middleware"
	"github.com/noah-isme/iqac-report-api/internal/observability"
)

func newCorrelationApp(seen *string) *fiber.App {
	app := fiber.New()
	app.Use(middleware.CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error {
		*seen = observability.CorrelationID(c.UserContext())
		return c.SendString(middleware.GetCorrelationID(c))
	})
	return app
}

func TestCorrelationIDPropagatesInboundHeader(t *testing.T) {
	var seen string
	app := newCorrelationApp(&seen)

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-ID", "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, "abc-123", resp.Header.Get("X-Correlation-ID"))
	require.Equal(t, "abc-123", seen)
}

func TestCorrelationIDFallsBackToRequestID(t *testing.T) {
	var seen string
	app := newCorrelationApp(&seen)

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-9")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, "req-9", resp.Header.Get("X-Correlation-ID"))
	require.Equal(t, "req-9", seen)
}

func TestCorrelationIDMintsWhenMissingOrOversized(t *testing.T) {
	var seen string
	app := newCorrelationApp(&seen)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	minted := resp.Header.Get("X-Correlation-ID")
	require.Len(t, minted, 36)
	require.Equal(t, minted, seen)

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-ID", strings.Repeat("x", 200))
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Len(t, resp.Header.Get("X-Correlation-ID"), 36)
}
