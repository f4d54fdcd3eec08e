package util

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/semaphore"

	"github.com/tea-network/sbtmarket/metrics"
	"github.com/tea-network/sbtmarket/types"
)

const (
	maxRateLimitRetries = 3
	baseBackoffDelay    = 250 * time.Millisecond
	maxBackoffDelay     = 5 * time.Second
	backoffMultiplier   = 2.0
	jitterFactor        = 0.1
)

var limiter *semaphore.Weighted

// InitLimiter bounds the number of concurrent outbound requests.
func InitLimiter(maxConcurrent int) {
	limiter = semaphore.NewWeighted(int64(maxConcurrent))
}

// HTTPStatusError is returned for non-200 responses.
type HTTPStatusError struct {
	Code int
	Body string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("http response: %d, body: %s", e.Code, e.Body)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *HTTPStatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// CalculateBackoffDelay calculates exponential backoff delay with jitter
func CalculateBackoffDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return baseBackoffDelay
	}

	baseSeconds := baseBackoffDelay.Seconds()
	maxSeconds := maxBackoffDelay.Seconds()

	delaySeconds := baseSeconds * math.Pow(backoffMultiplier, float64(attempt-1))
	if delaySeconds > maxSeconds {
		delaySeconds = maxSeconds
	}

	// +/- jitterFactor to avoid thundering herd
	delaySeconds += delaySeconds * jitterFactor * (2*rand.Float64() - 1)
	if delaySeconds < baseSeconds {
		delaySeconds = baseSeconds
	}

	return time.Duration(delaySeconds*1000+0.5) * time.Millisecond
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Get issues a GET with the shared limiter. 429 responses are retried with
// backoff; every other failure is returned to the caller.
func Get(ctx context.Context, client *fiber.Client, timeout time.Duration, baseUrl, path string, params map[string]string, headers map[string]string) ([]byte, error) {
	return withRateLimitRetry(ctx, baseUrl+path, func() ([]byte, error) {
		return getRaw(ctx, client, timeout, baseUrl, path, params, headers)
	})
}

// Post issues a JSON POST with the shared limiter and the same retry rules as Get.
func Post(ctx context.Context, client *fiber.Client, timeout time.Duration, baseUrl, path string, payload any, headers map[string]string) ([]byte, error) {
	return withRateLimitRetry(ctx, baseUrl+path, func() ([]byte, error) {
		return postRaw(ctx, client, timeout, baseUrl, path, payload, headers)
	})
}

func withRateLimitRetry(ctx context.Context, endpoint string, do func() ([]byte, error)) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		body, err := do()
		if err == nil || !errors.Is(err, fiber.ErrTooManyRequests) || attempt >= maxRateLimitRetries {
			return body, err
		}

		metrics.RateLimitHitsTotal().WithLabelValues(EndpointLabel(endpoint)).Inc()
		if err := Sleep(ctx, CalculateBackoffDelay(attempt+1)); err != nil {
			return nil, err
		}
	}
}

// acquire takes a limiter slot and returns the request timeout clipped to the
// context deadline.
func acquire(ctx context.Context, timeout time.Duration) (time.Duration, error) {
	if limiter == nil {
		return 0, types.NewLimiterNotInitializedError()
	}

	semaphoreStart := time.Now()
	if err := limiter.Acquire(ctx, 1); err != nil {
		return 0, fmt.Errorf("failed to acquire semaphore: %w", err)
	}
	metrics.SemaphoreWaitDuration().Observe(time.Since(semaphoreStart).Seconds())

	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		limiter.Release(1)
		return 0, context.DeadlineExceeded
	}
	return timeout, nil
}

func getRaw(ctx context.Context, client *fiber.Client, timeout time.Duration, baseUrl, path string, params map[string]string, headers map[string]string) ([]byte, error) {
	endpoint := baseUrl + path

	parsedUrl, err := url.Parse(endpoint)
	if err != nil {
		return nil, types.NewInvalidValueError("url", endpoint, err.Error())
	}
	if params != nil {
		query := parsedUrl.Query()
		for key, value := range params {
			query.Set(key, value)
		}
		parsedUrl.RawQuery = query.Encode()
	}

	timeout, err = acquire(ctx, timeout)
	if err != nil {
		return nil, err
	}
	defer limiter.Release(1)

	req := client.Get(parsedUrl.String())
	for key, value := range headers {
		req.Set(key, value)
	}
	return doRequest(req, timeout, endpoint)
}

func postRaw(ctx context.Context, client *fiber.Client, timeout time.Duration, baseUrl, path string, payload any, headers map[string]string) ([]byte, error) {
	endpoint := baseUrl + path

	timeout, err := acquire(ctx, timeout)
	if err != nil {
		return nil, err
	}
	defer limiter.Release(1)

	req := client.Post(endpoint)
	if payload != nil {
		req = req.JSON(payload)
	}
	for key, value := range headers {
		req.Set(key, value)
	}
	return doRequest(req, timeout, endpoint)
}

// EndpointLabel reduces a URL to scheme and host so metric cardinality stays
// bounded when every metadata document has its own path.
func EndpointLabel(rawUrl string) string {
	u, err := url.Parse(rawUrl)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Scheme + "://" + u.Host
}

func doRequest(req *fiber.Agent, timeout time.Duration, rawUrl string) ([]byte, error) {
	endpoint := EndpointLabel(rawUrl)
	start := time.Now()
	metrics.ConcurrentRequestsActive().Inc()
	defer func() {
		metrics.ConcurrentRequestsActive().Dec()
		metrics.ExternalAPILatency().WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	code, body, errs := req.Timeout(timeout).Bytes()
	if err := errors.Join(errs...); err != nil {
		metrics.ExternalAPIRequestsTotal().WithLabelValues(endpoint, "error").Inc()
		var te interface{ Timeout() bool }
		if errors.As(err, &te) && te.Timeout() {
			return nil, errors.Join(types.NewTimeoutError(rawUrl), err)
		}
		return nil, types.NewNetworkError(rawUrl, err)
	}

	metrics.ExternalAPIRequestsTotal().WithLabelValues(endpoint, fmt.Sprintf("%d", code)).Inc()

	switch code {
	case fiber.StatusOK:
		return body, nil
	case fiber.StatusTooManyRequests:
		return nil, errors.Join(fiber.ErrTooManyRequests, types.NewRateLimitError(rawUrl))
	default:
		return nil, &HTTPStatusError{Code: code, Body: string(body)}
	}
}
