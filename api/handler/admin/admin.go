package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tea-network/sbtmarket/api/handler/common"
	"github.com/tea-network/sbtmarket/market"
	"github.com/tea-network/sbtmarket/types"
)

// GetDashboard handles GET /sbt/v1/admin/types
// @Summary Get every initialized token type
// @Description Get active and inactive token types for administration
// @Tags Admin
// @Accept json
// @Produce json
// @Param refresh query bool false "Run a fresh scan before answering"
// @Success 200 {object} DashboardResponse
// @Failure 403 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /sbt/v1/admin/types [get]
func (h *AdminHandler) GetDashboard(c *fiber.Ctx) error {
	cat := h.GetCatalog()
	snap := cat.Dashboard()
	if snap == nil || common.GetRefreshQuery(c) {
		var err error
		if snap, err = cat.ScanDashboard(c.UserContext()); err != nil {
			return h.Fail(c, err)
		}
	}

	return c.JSON(&DashboardResponse{
		Types:      snap.Entries,
		ScannedAt:  snap.FinishedAt,
		TotalCount: snap.Len(),
	})
}

// ListTemplates handles GET /sbt/v1/admin/templates
// @Summary List metadata templates
// @Tags Admin
// @Accept json
// @Produce json
// @Param refresh query bool false "Re-read the template repository"
// @Success 200 {object} TemplatesResponse
// @Security BearerAuth
// @Router /sbt/v1/admin/templates [get]
func (h *AdminHandler) ListTemplates(c *fiber.Ctx) error {
	if common.GetRefreshQuery(c) {
		h.GetTemplates().Invalidate()
	}
	list, err := h.GetTemplates().List(c.UserContext())
	if err != nil {
		return h.Fail(c, err)
	}
	return c.JSON(&TemplatesResponse{Templates: list})
}

// PreviewTemplate handles GET /sbt/v1/admin/templates/{file}/preview
// @Summary Preview the metadata of a template
// @Tags Admin
// @Accept json
// @Produce json
// @Param file path string true "Template file name"
// @Success 200 {object} PreviewResponse
// @Security BearerAuth
// @Router /sbt/v1/admin/templates/{file}/preview [get]
func (h *AdminHandler) PreviewTemplate(c *fiber.Ctx) error {
	file, err := common.GetParams(c, "file")
	if err != nil {
		return h.Fail(c, err)
	}

	md, err := h.GetTemplates().Preview(c.UserContext(), file)
	if err != nil {
		return h.Fail(c, err)
	}
	return c.JSON(&PreviewResponse{
		File:     file,
		Uri:      h.GetTemplates().BuildURI(file),
		Metadata: md,
	})
}

// PostCreateType handles POST /sbt/v1/admin/types
// @Summary Create a token type from a template
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body market.CreateTypeRequest true "New token type"
// @Success 200 {object} ActionResponse
// @Failure 400 {object} common.ErrorResponse
// @Failure 502 {object} common.ErrorResponse
// @Security BearerAuth
// @Router /sbt/v1/admin/types [post]
func (h *AdminHandler) PostCreateType(c *fiber.Ctx) error {
	var req market.CreateTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return h.Fail(c, types.NewBadRequestError("invalid create type body"))
	}

	res, err := h.GetMarket().CreateType(c.UserContext(), req)
	if err != nil {
		return h.Fail(c, err)
	}
	return c.JSON(&ActionResponse{Result: *res})
}

// PostActivate handles POST /sbt/v1/admin/types/{type_id}/activate
// @Summary Activate a token type
// @Tags Admin
// @Produce json
// @Param type_id path int true "Token type id"
// @Success 200 {object} ActionResponse
// @Security BearerAuth
// @Router /sbt/v1/admin/types/{type_id}/activate [post]
func (h *AdminHandler) PostActivate(c *fiber.Ctx) error {
	return h.setTypeStatus(c, true)
}

// PostDeactivate handles POST /sbt/v1/admin/types/{type_id}/deactivate
// @Summary Deactivate a token type
// @Tags Admin
// @Produce json
// @Param type_id path int true "Token type id"
// @Success 200 {object} ActionResponse
// @Security BearerAuth
// @Router /sbt/v1/admin/types/{type_id}/deactivate [post]
func (h *AdminHandler) PostDeactivate(c *fiber.Ctx) error {
	return h.setTypeStatus(c, false)
}

func (h *AdminHandler) setTypeStatus(c *fiber.Ctx, active bool) error {
	typeId, err := common.GetTypeIdParam(c)
	if err != nil {
		return h.Fail(c, err)
	}

	res, err := h.GetMarket().SetTypeStatus(c.UserContext(), typeId, active)
	if err != nil {
		return h.Fail(c, err)
	}
	return c.JSON(&ActionResponse{Result: *res})
}

// PostBurn handles POST /sbt/v1/admin/tokens/{token_id}/burn
// @Summary Burn a token
// @Tags Admin
// @Produce json
// @Param token_id path string true "Token id"
// @Success 200 {object} ActionResponse
// @Security BearerAuth
// @Router /sbt/v1/admin/tokens/{token_id}/burn [post]
func (h *AdminHandler) PostBurn(c *fiber.Ctx) error {
	tokenId, err := common.GetTokenIdParam(c)
	if err != nil {
		return h.Fail(c, err)
	}

	res, err := h.GetMarket().Burn(c.UserContext(), tokenId)
	if err != nil {
		return h.Fail(c, err)
	}
	return c.JSON(&ActionResponse{Result: *res})
}
