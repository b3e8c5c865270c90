package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httpapi "github.com/tickety/tickety-server/internal/api/http"
	"github.com/tickety/tickety-server/internal/observability"
	apperrors "github.com/tickety/tickety-server/pkg/util"
)

func TestRequestTimeoutBoundsHandlerContext(t *testing.T) {
	app := fiber.New()
	httpapi.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)

	var deadline time.Time
	var hasDeadline bool
	app.Get("/work", func(c *fiber.Ctx) error {
		// Handlers hand c.UserContext() to services, so the configured
		// timeout must be visible there.
		deadline, hasDeadline = c.UserContext().Deadline()
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/work", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
}

func TestRequestTimeoutDisabledWhenZero(t *testing.T) {
	app := fiber.New()
	httpapi.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)

	var hasDeadline bool
	app.Get("/work", func(c *fiber.Ctx) error {
		_, hasDeadline = c.UserContext().Deadline()
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/work", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, hasDeadline)
}

func TestRequestMetricsRecordRenderedStatus(t *testing.T) {
	metrics := observability.NewMetrics()
	app := fiber.New()
	httpapi.RegisterMiddlewares(app, zap.NewNop(), metrics, 0)

	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("ticket", nil)
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The counter reflects the status written to the client, not the
	// pre-mapping 200 a raw error would leave behind.
	assert.EqualValues(t, 1, metrics.RequestTotal("/missing", "GET", http.StatusNotFound))
	assert.Zero(t, metrics.RequestTotal("/missing", "GET", http.StatusOK))
	assert.EqualValues(t, 1, metrics.RequestTotal("/ok", "GET", http.StatusOK))
}
