package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tea-network/sbtmarket/api/handler/common"
)

type AdminHandler struct {
	*common.BaseHandler
}

var _ common.HandlerRegistrar = (*AdminHandler)(nil)

func NewAdminHandler(base *common.BaseHandler) *AdminHandler {
	return &AdminHandler{BaseHandler: base}
}

func (h *AdminHandler) Register(router fiber.Router) {
	admin := router.Group("/v1/admin", h.RequireAdminToken(), h.RequireAdmin)

	types := admin.Group("/types")
	types.Get("/", h.GetDashboard)
	types.Post("/", h.PostCreateType)
	types.Post("/:type_id/activate", h.PostActivate)
	types.Post("/:type_id/deactivate", h.PostDeactivate)

	templates := admin.Group("/templates")
	templates.Get("/", h.ListTemplates)
	templates.Get("/:file/preview", h.PreviewTemplate)

	tokens := admin.Group("/tokens")
	tokens.Post("/:token_id/burn", h.PostBurn)
}
