package api

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"

	"github.com/tea-network/sbtmarket/api/docs"
	"github.com/tea-network/sbtmarket/api/handler"
	"github.com/tea-network/sbtmarket/api/handler/common"
	"github.com/tea-network/sbtmarket/catalog"
	"github.com/tea-network/sbtmarket/config"
	"github.com/tea-network/sbtmarket/market"
	"github.com/tea-network/sbtmarket/metrics"
	"github.com/tea-network/sbtmarket/templates"
)

type Api struct {
	cfg    *config.Config
	logger *slog.Logger
	app    *fiber.App
}

// @title SBT Market API
// @version 1.0
// @description Soulbound token catalog, claim and admin API
// @BasePath /sbt

// @tag.name SBT
// @tag.description Token type catalog, owned tokens and claims

// @tag.name Admin
// @tag.description Token type lifecycle operations for the admin wallet

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token from API_CLIENT_TOKENS, or API_ADMIN_TOKEN for admin routes
func New(cfg *config.Config, logger *slog.Logger, cat *catalog.Reconciler, mkt *market.Market, tmpl *templates.Service) *Api {
	app := fiber.New(fiber.Config{
		AppName:               "SBT Market API",
		DisableStartupMessage: true,
		ErrorHandler:          common.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	addCORS(app, cfg, logger)
	app.Use(metrics.FiberMiddleware())

	app.Get("/health", health)

	router := app.Group("/sbt")
	handler.Register(router, cfg, logger, cat, mkt, tmpl)

	// Swagger documentation
	swaggerConfig := swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
		TagsSorter: template.JS(`function(a, b) {
			const order = ["SBT", "Admin", "App"];
			return order.indexOf(a) - order.indexOf(b);
		}`),
	}
	app.Get("/swagger/*", swagger.New(swaggerConfig))

	return &Api{
		cfg:    cfg,
		logger: logger,
		app:    app,
	}
}

// App exposes the fiber app for in-process requests.
func (a *Api) App() *fiber.App {
	return a.app
}

func (a *Api) Start() error {
	port := a.cfg.GetListenPort()

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%s", port)
	docs.SwaggerInfo.Title = "SBT Market API"
	docs.SwaggerInfo.Description = "SBT Market API"

	a.logger.Info("starting API server", slog.String("addr", fmt.Sprintf("http://localhost:%s", port)))

	return a.app.Listen(":" + port)
}

func (a *Api) Shutdown(ctx context.Context) error {
	return a.app.ShutdownWithContext(ctx)
}

// health handles GET /health
// @Summary Health check
// @Tags App
// @Success 200 "OK"
// @Router /health [get]
func health(c *fiber.Ctx) error {
	return c.SendString("OK")
}
