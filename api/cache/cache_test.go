package cache_test

import (
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/tea-network/sbtmarket/api/cache"
)

func get(t *testing.T, app *fiber.App, target string) (string, string) {
	t.Helper()
	req, err := http.NewRequest("GET", target, nil)
	require.NoError(t, err)
	resp, err := app.Test(req, -1) // -1 disables timeout
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.Header.Get("X-Cache"), string(body)
}

func TestCacheExpiration(t *testing.T) {
	app := fiber.New()
	app.Get("/test", cache.WithExpiration(time.Second), func(c *fiber.Ctx) error {
		return c.SendString(time.Now().String())
	})

	status1, body1 := get(t, app, "/test")
	require.Equal(t, "miss", status1)

	time.Sleep(200 * time.Millisecond)
	status2, body2 := get(t, app, "/test")
	require.Equal(t, "hit", status2)
	require.Equal(t, body1, body2, "Content should be the same for a cache hit")

	// fiber's clock ticks in whole seconds, so wait past the next tick
	time.Sleep(1100 * time.Millisecond)
	status3, body3 := get(t, app, "/test")
	require.Equal(t, "miss", status3, "Cache should have expired")
	require.NotEqual(t, body1, body3)
}

func TestCacheKeyIncludesQuery(t *testing.T) {
	var calls atomic.Int32
	app := fiber.New()
	app.Get("/types", cache.WithExpiration(time.Minute), func(c *fiber.Ctx) error {
		calls.Add(1)
		return c.SendString(c.Query("page"))
	})

	_, body := get(t, app, "/types?page=1")
	require.Equal(t, "1", body)
	_, body = get(t, app, "/types?page=2")
	require.Equal(t, "2", body)
	status, body := get(t, app, "/types?page=1")
	require.Equal(t, "hit", status)
	require.Equal(t, "1", body)
	require.Equal(t, int32(2), calls.Load())
}

func TestCacheBypassedOnRefresh(t *testing.T) {
	var calls atomic.Int32
	app := fiber.New()
	app.Get("/types", cache.WithExpiration(time.Minute), func(c *fiber.Ctx) error {
		calls.Add(1)
		return c.SendString("ok")
	})

	get(t, app, "/types")
	get(t, app, "/types?refresh=true")
	get(t, app, "/types?refresh=true")
	require.Equal(t, int32(3), calls.Load())
}
