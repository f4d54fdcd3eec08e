package sbt

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tea-network/sbtmarket/api/handler/common"
	"github.com/tea-network/sbtmarket/catalog"
	"github.com/tea-network/sbtmarket/types"
)

// GetTypes handles GET /sbt/v1/types
// @Summary Get claimable token types
// @Description Get active token types with their metadata, in ascending type id order
// @Tags SBT
// @Accept json
// @Produce json
// @Param refresh query bool false "Run a fresh scan before answering"
// @Param tags query string false "Comma separated tags; only types carrying every tag are returned"
// @Success 200 {object} TypesResponse
// @Router /sbt/v1/types [get]
func (h *SbtHandler) GetTypes(c *fiber.Ctx) error {
	cat := h.GetCatalog()
	if common.GetRefreshQuery(c) || cat.Available() == nil {
		if err := cat.Refresh(c.UserContext(), h.SessionAddress()); err != nil {
			return h.Fail(c, err)
		}
	}

	snap := cat.Available()
	if snap == nil {
		return h.Fail(c, types.NewInternalError("available types are not scanned yet", nil))
	}
	entries := catalog.FilterByTags(snap.Entries, common.GetTagsQuery(c), catalog.CatalogEntryTags)
	return c.JSON(&TypesResponse{
		Types:      entries,
		ScannedAt:  snap.FinishedAt,
		TotalCount: len(entries),
	})
}

// GetTypeById handles GET /sbt/v1/types/{type_id}
// @Summary Get a claimable token type
// @Tags SBT
// @Accept json
// @Produce json
// @Param type_id path int true "Token type id"
// @Success 200 {object} TypeResponse
// @Failure 404 {object} common.ErrorResponse
// @Router /sbt/v1/types/{type_id} [get]
func (h *SbtHandler) GetTypeById(c *fiber.Ctx) error {
	typeId, err := common.GetTypeIdParam(c)
	if err != nil {
		return h.Fail(c, err)
	}

	cat := h.GetCatalog()
	if cat.Available() == nil {
		if err := cat.Refresh(c.UserContext(), h.SessionAddress()); err != nil {
			return h.Fail(c, err)
		}
	}

	entry, err := cat.Entry(typeId)
	if err != nil {
		return h.Fail(c, err)
	}
	return c.JSON(&TypeResponse{Type: entry})
}

// GetTokensByAccount handles GET /sbt/v1/tokens/by_account/{account}
// @Summary Get tokens owned by an account
// @Tags SBT
// @Accept json
// @Produce json
// @Param account path string true "Account address"
// @Param refresh query bool false "Run a fresh scan before answering"
// @Param tags query string false "Comma separated tags; only tokens carrying every tag are returned"
// @Success 200 {object} TokensResponse
// @Router /sbt/v1/tokens/by_account/{account} [get]
func (h *SbtHandler) GetTokensByAccount(c *fiber.Ctx) error {
	account, err := common.GetAccountParam(c)
	if err != nil {
		return h.Fail(c, err)
	}

	cat := h.GetCatalog()
	snap := cat.Owned(account)
	if snap == nil || common.GetRefreshQuery(c) {
		if snap, err = cat.ScanOwned(c.UserContext(), account); err != nil {
			return h.Fail(c, err)
		}
	}

	tokens := catalog.FilterByTags(snap.Entries, common.GetTagsQuery(c), catalog.OwnedTokenTags)
	return c.JSON(&TokensResponse{
		Account:    account.Hex(),
		Tokens:     tokens,
		ScannedAt:  snap.FinishedAt,
		TotalCount: len(tokens),
	})
}

// GetTags handles GET /sbt/v1/tags
// @Summary Get every tag in use
// @Description Sorted union of the tags on claimable types and on the tokens of the connected wallet
// @Tags SBT
// @Produce json
// @Success 200 {object} TagsResponse
// @Router /sbt/v1/tags [get]
func (h *SbtHandler) GetTags(c *fiber.Ctx) error {
	cat := h.GetCatalog()
	if cat.Available() == nil {
		if err := cat.Refresh(c.UserContext(), h.SessionAddress()); err != nil {
			return h.Fail(c, err)
		}
	}
	return c.JSON(&TagsResponse{Tags: cat.Tags(h.SessionAddress())})
}
