package cache

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
)

// Config holds cache configuration
type Config struct {
	// Expiration time for the cache
	Expiration time.Duration
	// IncludeQueryParams determines if query parameters should be included in cache key
	IncludeQueryParams bool
}

// DefaultConfig returns a default cache configuration
func DefaultConfig() Config {
	return Config{
		Expiration:         time.Second,
		IncludeQueryParams: true,
	}
}

// New creates a cache middleware for read routes.
func New(cfg Config) fiber.Handler {
	if cfg.Expiration <= 0 {
		cfg.Expiration = time.Second
	}

	cacheConfig := cache.Config{
		Expiration: cfg.Expiration,
		Next: func(c *fiber.Ctx) bool {
			// a refresh request always reaches the handler
			return c.Query("refresh") != ""
		},
	}

	if cfg.IncludeQueryParams {
		cacheConfig.KeyGenerator = func(c *fiber.Ctx) string {
			// raw query string: ?a=1&b=2 and ?b=2&a=1 are cached separately
			queryString := string(c.Request().URI().QueryString())
			if queryString != "" {
				return c.Method() + ":" + c.Path() + "?" + queryString
			}
			return c.Method() + ":" + c.Path()
		}
	}

	return cache.New(cacheConfig)
}

// WithExpiration creates a cache middleware with custom expiration time
func WithExpiration(expiration time.Duration) fiber.Handler {
	cfg := DefaultConfig()
	cfg.Expiration = expiration
	return New(cfg)
}
