package status

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tea-network/sbtmarket/config"
)

// GetStatus handles GET /sbt/v1/status
// @Summary Status check
// @Description Get chain, wallet session and catalog scan status
// @Tags App
// @Accept json
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /sbt/v1/status [get]
func (h *StatusHandler) GetStatus(c *fiber.Ctx) error {
	wallet := h.SessionAddress()
	connected := h.GetMarket().Session().Connected()

	resp := StatusResponse{
		Version:    config.Version,
		CommitHash: config.CommitHash,
		ChainId:    h.GetChainId(),
		Contract:   h.GetChainConfig().Contract().Hex(),
		Connected:  connected,
		Admin:      h.GetMarket().IsAdmin(),
		Scans:      h.GetCatalog().Status(wallet),
	}
	if connected {
		resp.Wallet = wallet.Hex()
	}
	return c.JSON(&resp)
}
