package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/tea-network/sbtmarket/api/handler/admin"
	"github.com/tea-network/sbtmarket/api/handler/common"
	"github.com/tea-network/sbtmarket/api/handler/sbt"
	"github.com/tea-network/sbtmarket/api/handler/status"
	"github.com/tea-network/sbtmarket/catalog"
	"github.com/tea-network/sbtmarket/config"
	"github.com/tea-network/sbtmarket/market"
	"github.com/tea-network/sbtmarket/templates"
)

func Register(router fiber.Router, cfg *config.Config, logger *slog.Logger, cat *catalog.Reconciler, mkt *market.Market, tmpl *templates.Service) {
	base := common.NewBaseHandler(cfg, logger, cat, mkt, tmpl)
	handlers := []common.HandlerRegistrar{
		status.NewStatusHandler(base),
		sbt.NewSbtHandler(base),
		admin.NewAdminHandler(base),
	}

	for _, handler := range handlers {
		handler.Register(router)
	}
}
