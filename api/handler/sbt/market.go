package sbt

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tea-network/sbtmarket/api/handler/common"
	"github.com/tea-network/sbtmarket/types"
)

// PostConsent handles POST /sbt/v1/types/{type_id}/consent
// @Summary Acknowledge the claim policy of a token type
// @Tags SBT
// @Accept json
// @Produce json
// @Param type_id path int true "Token type id"
// @Param body body ConsentRequest true "Consent"
// @Security BearerAuth
// @Success 200 {object} ConsentResponse
// @Failure 401 {object} common.ErrorResponse
// @Router /sbt/v1/types/{type_id}/consent [post]
func (h *SbtHandler) PostConsent(c *fiber.Ctx) error {
	typeId, err := common.GetTypeIdParam(c)
	if err != nil {
		return h.Fail(c, err)
	}

	var req ConsentRequest
	if err := c.BodyParser(&req); err != nil {
		return h.Fail(c, types.NewBadRequestError("invalid consent body"))
	}
	if err := h.GetMarket().AcknowledgePolicy(common.Caller(c), typeId, req.Accepted); err != nil {
		return h.Fail(c, err)
	}
	return c.JSON(&ConsentResponse{TypeId: typeId, Accepted: req.Accepted})
}

// PostClaim handles POST /sbt/v1/types/{type_id}/claim
// @Summary Claim a token of a type
// @Description Mint one token of the type to the connected wallet. The policy of the type must be acknowledged first.
// @Tags SBT
// @Accept json
// @Produce json
// @Param type_id path int true "Token type id"
// @Security BearerAuth
// @Success 200 {object} ActionResponse
// @Failure 400 {object} common.ErrorResponse
// @Failure 401 {object} common.ErrorResponse
// @Failure 409 {object} common.ErrorResponse
// @Failure 502 {object} common.ErrorResponse
// @Router /sbt/v1/types/{type_id}/claim [post]
func (h *SbtHandler) PostClaim(c *fiber.Ctx) error {
	typeId, err := common.GetTypeIdParam(c)
	if err != nil {
		return h.Fail(c, err)
	}

	res, err := h.GetMarket().Claim(c.UserContext(), common.Caller(c), typeId)
	if err != nil {
		return h.Fail(c, err)
	}
	return c.JSON(&ActionResponse{Result: *res})
}
