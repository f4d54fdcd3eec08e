package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tea-network/sbtmarket/types"
)

func TestGet_Success(t *testing.T) {
	InitLimiter(4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "main", r.URL.Query().Get("ref"))
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	body, err := Get(context.Background(), fiber.AcquireClient(), time.Second, srv.URL, "/contents",
		map[string]string{"ref": "main"}, map[string]string{"Authorization": "Bearer token"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestGet_StatusError(t *testing.T) {
	InitLimiter(4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Get(context.Background(), fiber.AcquireClient(), time.Second, srv.URL, "/x.json", nil, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
}

func TestPost_RetriesRateLimit(t *testing.T) {
	InitLimiter(4)
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x"}`))
	}))
	defer srv.Close()

	body, err := Post(context.Background(), fiber.AcquireClient(), time.Second, srv.URL, "", map[string]any{"id": 1}, nil)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"result"`)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGet_CancelledContext(t *testing.T) {
	InitLimiter(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Get(ctx, fiber.AcquireClient(), time.Second, "http://127.0.0.1:1", "", nil, nil)
	require.Error(t, err)
}

func TestGet_LimiterNotInitialized(t *testing.T) {
	saved := limiter
	limiter = nil
	defer func() { limiter = saved }()

	_, err := Get(context.Background(), fiber.AcquireClient(), time.Second, "http://127.0.0.1:1", "", nil, nil)
	require.Error(t, err)
	assert.True(t, types.IsErrorType(err, types.ErrTypeConfig))
}

func TestCalculateBackoffDelay(t *testing.T) {
	assert.Equal(t, baseBackoffDelay, CalculateBackoffDelay(0))
	for attempt := 1; attempt < 10; attempt++ {
		d := CalculateBackoffDelay(attempt)
		assert.GreaterOrEqual(t, d, baseBackoffDelay)
		assert.LessOrEqual(t, d, time.Duration(float64(maxBackoffDelay)*(1+jitterFactor))+time.Millisecond)
	}
}

func TestEndpointLabel(t *testing.T) {
	assert.Equal(t, "https://raw.githubusercontent.com", EndpointLabel("https://raw.githubusercontent.com/a/b/main/data/x.json"))
	assert.Equal(t, "unknown", EndpointLabel("::"))
}
