package common

import (
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"

	"github.com/tea-network/sbtmarket/catalog"
	"github.com/tea-network/sbtmarket/config"
	"github.com/tea-network/sbtmarket/market"
	"github.com/tea-network/sbtmarket/metrics"
	"github.com/tea-network/sbtmarket/templates"
)

type HandlerRegistrar interface {
	Register(router fiber.Router)
}

type BaseHandler struct {
	cfg       *config.Config
	logger    *slog.Logger
	catalog   *catalog.Reconciler
	market    *market.Market
	templates *templates.Service
}

func NewBaseHandler(cfg *config.Config, logger *slog.Logger, cat *catalog.Reconciler, mkt *market.Market, tmpl *templates.Service) *BaseHandler {
	return &BaseHandler{
		cfg:       cfg,
		logger:    logger,
		catalog:   cat,
		market:    mkt,
		templates: tmpl,
	}
}

func (h *BaseHandler) GetConfig() *config.Config           { return h.cfg }
func (h *BaseHandler) GetLogger() *slog.Logger             { return h.logger }
func (h *BaseHandler) GetCatalog() *catalog.Reconciler     { return h.catalog }
func (h *BaseHandler) GetMarket() *market.Market           { return h.market }
func (h *BaseHandler) GetTemplates() *templates.Service    { return h.templates }
func (h *BaseHandler) GetChainConfig() *config.ChainConfig { return h.cfg.GetChainConfig() }

func (h *BaseHandler) GetChainId() int64 {
	return h.cfg.GetChainId()
}

// SessionAddress is the connected wallet, or the zero address.
func (h *BaseHandler) SessionAddress() common.Address {
	return h.market.Session().Address()
}

// TrackError counts a handler failure by its error type.
func (h *BaseHandler) TrackError(err error) {
	metrics.TrackFailure("api", err)
}

// RequireAdmin rejects the request unless the connected wallet is the
// admin. It runs after RequireAdminToken, which identifies the caller.
func (h *BaseHandler) RequireAdmin(c *fiber.Ctx) error {
	if !h.market.IsAdmin() {
		return h.Fail(c, errNotAdmin)
	}
	return c.Next()
}
