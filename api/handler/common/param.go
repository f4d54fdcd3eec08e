package common

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/tea-network/sbtmarket/contract"
	"github.com/tea-network/sbtmarket/types"
)

func GetParams(c *fiber.Ctx, key string) (string, error) {
	value := c.Params(key)
	if value == "" {
		return "", types.NewValidationError(key, fmt.Sprintf("missing parameter: %s", key))
	}
	return value, nil
}

func GetTypeIdParam(c *fiber.Ctx) (uint64, error) {
	value, err := GetParams(c, "type_id")
	if err != nil {
		return 0, err
	}

	typeId, err := strconv.ParseUint(value, 10, 64)
	if err != nil || typeId == 0 {
		return 0, types.NewInvalidValueError("type_id", value, "must be a positive integer")
	}
	return typeId, nil
}

// GetTokenIdParam returns the raw decimal token id; it is parsed by the
// action that consumes it.
func GetTokenIdParam(c *fiber.Ctx) (string, error) {
	return GetParams(c, "token_id")
}

func GetAccountParam(c *fiber.Ctx) (common.Address, error) {
	account, err := GetParams(c, "account")
	if err != nil {
		return common.Address{}, err
	}
	return contract.ParseAddress(account)
}

// GetTagsQuery parses the comma separated tags filter. Blank and repeated
// tags are dropped.
func GetTagsQuery(c *fiber.Ctx) []string {
	raw := c.Query("tags")
	if raw == "" {
		return nil
	}
	return lo.Uniq(lo.Compact(lo.Map(strings.Split(raw, ","), func(tag string, _ int) string {
		return strings.TrimSpace(tag)
	})))
}

// GetRefreshQuery reports whether the caller asked for a fresh scan.
func GetRefreshQuery(c *fiber.Ctx) bool {
	refresh, _ := strconv.ParseBool(strings.TrimSpace(c.Query("refresh")))
	return refresh
}
