package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// FiberMiddleware records request count, latency and slow requests for every
// route the API serves.
func FiberMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		h := GetMetrics().HTTP
		h.RequestsInFlight.Inc()
		defer h.RequestsInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		handler := GetHandlerPattern(c.Path())
		method := c.Method()
		duration := time.Since(start).Seconds()

		h.RequestsTotal.WithLabelValues(method, handler, GetStatusClass(status)).Inc()
		h.RequestDuration.WithLabelValues(method, handler).Observe(duration)
		if status >= fiber.StatusBadRequest {
			h.ErrorsTotal.WithLabelValues(handler, strconv.Itoa(status)).Inc()
		}

		if bucket := GetDurationBucket(duration); bucket != "" {
			h.SlowRequests.WithLabelValues(method, handler, bucket).Inc()
		}
		TrackEndpoint(handler, duration)

		return err
	}
}
