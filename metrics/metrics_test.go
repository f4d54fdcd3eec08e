package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tea-network/sbtmarket/types"
)

func TestGetHandlerPattern(t *testing.T) {
	tests := map[string]string{
		"":                            "root",
		"/":                           "root",
		"/health":                     "health",
		"/swagger/index.html":         "swagger",
		"/sbt/v1/types":               "types",
		"/sbt/v1/types/3/claim":       "types",
		"/sbt/v1/admin/templates":     "admin",
		"/sbt/v1/tokens/by_account/x": "tokens",
		"/other":                      "other",
	}
	for path, want := range tests {
		assert.Equal(t, want, GetHandlerPattern(path), path)
	}
}

func TestGetStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", GetStatusClass(200))
	assert.Equal(t, "4xx", GetStatusClass(409))
	assert.Equal(t, "5xx", GetStatusClass(502))
	assert.Equal(t, "other", GetStatusClass(100))
}

func TestFiberMiddleware_CountsRequests(t *testing.T) {
	app := fiber.New()
	app.Use(FiberMiddleware())
	app.Get("/sbt/v1/status", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/sbt/v1/types/:id", func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	counter := GetMetrics().HTTP.RequestsTotal
	before2xx := testutil.ToFloat64(counter.WithLabelValues(http.MethodGet, "status", "2xx"))
	before4xx := testutil.ToFloat64(counter.WithLabelValues(http.MethodGet, "types", "4xx"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/sbt/v1/status", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/sbt/v1/types/9", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Equal(t, before2xx+1, testutil.ToFloat64(counter.WithLabelValues(http.MethodGet, "status", "2xx")))
	assert.Equal(t, before4xx+1, testutil.ToFloat64(counter.WithLabelValues(http.MethodGet, "types", "4xx")))
}

func TestTrackFailure_UsesErrorType(t *testing.T) {
	vec := GetMetrics().Error.ErrorsTotal
	before := testutil.ToFloat64(vec.WithLabelValues("market", string(types.ErrTypeConflict)))

	TrackFailure("market", types.NewConflictError("claim", "type:3"))
	TrackFailure("market", nil)

	assert.Equal(t, before+1, testutil.ToFloat64(vec.WithLabelValues("market", string(types.ErrTypeConflict))))

	beforeInternal := testutil.ToFloat64(vec.WithLabelValues("market", string(types.ErrTypeInternal)))
	TrackFailure("market", errors.New("plain"))
	assert.Equal(t, beforeInternal+1, testutil.ToFloat64(vec.WithLabelValues("market", string(types.ErrTypeInternal))))
}

func TestEndpointTracker_Slowest(t *testing.T) {
	et := &EndpointTracker{endpoints: make(map[string]*endpointStats)}
	now := time.Now()

	for i := 0; i < endpointMinSamples; i++ {
		et.record("types", 0.5, now)
		et.record("status", 0.01, now)
		et.record("admin", 2, now.Add(-time.Hour))
	}
	et.record("health", 5, now)

	top := et.slowest(now)
	require.Len(t, top, 1)
	assert.Equal(t, "types", top[0].handler)
	assert.InDelta(t, 0.5, top[0].p99, 1e-9)
}
