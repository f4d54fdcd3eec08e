package common

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"

	"github.com/tea-network/sbtmarket/types"
)

const (
	tokenLocal  = "sbt_token"
	callerLocal = "sbt_caller"
)

// RequireClient authenticates the caller with a client or admin bearer
// token. Routes behind it are refused when no token is configured.
func (h *BaseHandler) RequireClient() fiber.Handler {
	auth := h.cfg.GetAuthConfig()
	return h.bearerAuth("client", auth.ClientEnabled(), auth.IsClientToken)
}

// RequireAdminToken authenticates the caller with the admin bearer token.
func (h *BaseHandler) RequireAdminToken() fiber.Handler {
	auth := h.cfg.GetAuthConfig()
	return h.bearerAuth("admin", auth.AdminEnabled(), auth.IsAdminToken)
}

func (h *BaseHandler) bearerAuth(scope string, enabled bool, valid func(token string) bool) fiber.Handler {
	if !enabled {
		disabled := types.NewUnauthorizedError(scope, "no API token is configured")
		return func(c *fiber.Ctx) error {
			return h.Fail(c, disabled)
		}
	}

	return keyauth.New(keyauth.Config{
		ContextKey: tokenLocal,
		Validator: func(_ *fiber.Ctx, token string) (bool, error) {
			return valid(token), nil
		},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, _ := c.Locals(tokenLocal).(string)
			c.Locals(callerLocal, callerId(token))
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if err == nil {
				return h.Fail(c, types.NewUnauthenticatedError(scope, "invalid bearer token"))
			}
			return h.Fail(c, types.NewUnauthenticatedError(scope, err.Error()))
		},
	})
}

// Caller is the identity of the authenticated caller, or "" on routes
// without authentication.
func Caller(c *fiber.Ctx) string {
	caller, _ := c.Locals(callerLocal).(string)
	return caller
}

// callerId derives a stable identity from a token without keeping the
// token itself.
func callerId(token string) string {
	return "api:" + hexutil.Encode(crypto.Keccak256([]byte(token))[:8])
}
