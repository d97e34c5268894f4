package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"site-manager/core/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRoute(t *testing.T) {
	app := fiber.New()
	app.Use(metrics.Middleware())
	app.Get("/games/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	counter := metrics.RequestsTotal.WithLabelValues("GET", "/games/:id", "404")
	before := testutil.ToFloat64(counter)

	_, err := app.Test(httptest.NewRequest("GET", "/games/abc", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/games/def", nil))
	require.NoError(t, err)

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestHandler_Exposition(t *testing.T) {
	metrics.SyncRunsTotal.WithLabelValues("success").Inc()

	app := fiber.New()
	app.Get("/metrics", metrics.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "site_steam_sync_runs_total")
}
