package api

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/samber/lo"

	"github.com/tea-network/sbtmarket/config"
)

// addCORS installs the CORS middleware when enabled. Origins are exact
// matches or "*.domain" patterns that admit subdomains of domain only.
func addCORS(app *fiber.App, cfg *config.Config, logger *slog.Logger) {
	cc := cfg.GetCORSConfig()
	if cc == nil || !cc.Enabled {
		return
	}

	allowAll := lo.Contains(cc.AllowOrigin, "*")
	allowCredentials := cc.AllowCredentials
	if allowAll && allowCredentials {
		logger.Warn("CORS credentials disabled: not allowed together with wildcard origins")
		allowCredentials = false
	}

	corsConfig := cors.Config{
		AllowMethods:     strings.Join(cc.AllowMethods, ","),
		AllowHeaders:     strings.Join(cc.AllowHeaders, ","),
		AllowCredentials: allowCredentials,
		ExposeHeaders:    strings.Join(cc.ExposeHeaders, ","),
		MaxAge:           cc.MaxAge,
	}
	if allowAll {
		corsConfig.AllowOrigins = "*"
	} else {
		corsConfig.AllowOriginsFunc = originMatcher(cc.AllowOrigin)
	}

	app.Use(cors.New(corsConfig))
}

func originMatcher(allowed []string) func(origin string) bool {
	var exact, suffixes []string
	for _, o := range allowed {
		o = strings.ToLower(strings.TrimSpace(o))
		if domain, ok := strings.CutPrefix(o, "*."); ok {
			suffixes = append(suffixes, "."+domain)
			continue
		}
		exact = append(exact, strings.TrimRight(o, "/"))
	}

	return func(origin string) bool {
		origin = strings.ToLower(origin)
		if lo.Contains(exact, origin) {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			return false
		}
		host := u.Hostname()
		return lo.ContainsBy(suffixes, func(suffix string) bool {
			return strings.HasSuffix(host, suffix)
		})
	}
}
