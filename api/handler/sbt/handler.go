package sbt

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tea-network/sbtmarket/api/cache"
	"github.com/tea-network/sbtmarket/api/handler/common"
)

type SbtHandler struct {
	*common.BaseHandler
}

var _ common.HandlerRegistrar = (*SbtHandler)(nil)

func NewSbtHandler(base *common.BaseHandler) *SbtHandler {
	return &SbtHandler{BaseHandler: base}
}

func (h *SbtHandler) Register(router fiber.Router) {
	v1 := router.Group("/v1")
	ttl := h.GetConfig().GetCacheTTL()

	types := v1.Group("/types")
	types.Get("/", cache.WithExpiration(ttl), h.GetTypes)
	types.Get("/:type_id", cache.WithExpiration(ttl), h.GetTypeById)
	types.Post("/:type_id/consent", h.RequireClient(), h.PostConsent)
	types.Post("/:type_id/claim", h.RequireClient(), h.PostClaim)

	tokens := v1.Group("/tokens")
	tokens.Get("/by_account/:account", cache.WithExpiration(ttl), h.GetTokensByAccount)

	v1.Get("/tags", cache.WithExpiration(ttl), h.GetTags)
}
