package querier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"

	"github.com/tea-network/sbtmarket/config"
	"github.com/tea-network/sbtmarket/metrics"
	"github.com/tea-network/sbtmarket/sentry_integration"
	"github.com/tea-network/sbtmarket/types"
	"github.com/tea-network/sbtmarket/util"
)

// Querier performs read-only contract calls and metadata fetches.
type Querier struct {
	ChainId     int64
	JsonRpcUrls []string
	Contract    common.Address
	IpfsGateway string
	Environment string

	client     *fiber.Client
	timeout    time.Duration
	maxRetries int
	health     *healthTracker
}

func extractResponse[T any](response []byte) (T, error) {
	var t T
	if err := json.Unmarshal(response, &t); err != nil {
		return t, err
	}
	return t, nil
}

// requestFunc is a function type that performs an HTTP request with a given endpoint URL
type requestFunc[T any] func(ctx context.Context, endpointURL string) (*T, error)

// permanentError marks failures that a retry cannot fix, such as a contract
// revert or a missing metadata document.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func permanent(err error) error {
	return &permanentError{err: err}
}

func NewQuerier(cfg *config.Config) *Querier {
	cc := cfg.GetChainConfig()
	return &Querier{
		ChainId:     cc.ChainId,
		JsonRpcUrls: cc.JsonRpcUrls,
		Contract:    cc.Contract(),
		IpfsGateway: cfg.GetCatalogConfig().IpfsGateway,
		Environment: cc.Environment,
		client:      &fiber.Client{},
		timeout:     cfg.GetQueryTimeout(),
		maxRetries:  cfg.GetRpcMaxRetries(),
		health:      newHealthTracker(),
	}
}

// executeWithEndpointRotation runs requestFn against the endpoints, starting at
// the first healthy one and moving to the next endpoint after each failure.
// Each endpoint gets at most maxRetries+1 attempts in total.
func executeWithEndpointRotation[T any](ctx context.Context, q *Querier, method string, endpoints []string, requestFn requestFunc[T]) (*T, error) {
	if len(endpoints) == 0 {
		return nil, types.NewConfigError("no endpoints configured", nil)
	}

	start := q.health.findHealthy(endpoints)
	attempts := len(endpoints) * (q.maxRetries + 1)
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			metrics.RetriesTotal().WithLabelValues(method).Inc()
			// back off once a full round over the endpoints has failed
			if attempt%len(endpoints) == 0 {
				if err := util.Sleep(ctx, util.CalculateBackoffDelay(attempt/len(endpoints))); err != nil {
					return nil, err
				}
			}
		}

		endpoint := endpoints[(start+attempt)%len(endpoints)]
		res, err := requestFn(ctx, endpoint)
		if err == nil {
			q.health.recordSuccess(endpoint)
			return res, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		var pe *permanentError
		if errors.As(err, &pe) {
			return nil, err
		}

		q.health.recordFailure(endpoint)
		lastErr = err
	}

	return nil, fmt.Errorf("exhausted all retries: %w", lastErr)
}

// captureExhausted reports JSON-RPC outages; per-document metadata failures
// are expected and stay out of Sentry.
func captureExhausted(err error, method string) {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}
	var pe *permanentError
	if errors.As(err, &pe) {
		return
	}
	sentry_integration.CaptureExceptionWithContext(err, sentry.LevelError, map[string]string{"method": method})
}
