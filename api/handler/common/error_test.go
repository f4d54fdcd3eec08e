package common

import (
	"io"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/tea-network/sbtmarket/types"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", types.NewValidationError("type_id", "bad"), fiber.StatusBadRequest},
		{"invalid value", types.NewInvalidValueError("account", "0x", "must be a hex address"), fiber.StatusBadRequest},
		{"precondition", types.NewPreconditionError("claim", "no consent"), fiber.StatusBadRequest},
		{"unauthorized", types.NewUnauthorizedError("admin", "nope"), fiber.StatusForbidden},
		{"unauthenticated", types.NewUnauthenticatedError("client", "invalid bearer token"), fiber.StatusUnauthorized},
		{"not found", types.NewNotFoundError("type 9"), fiber.StatusNotFound},
		{"already claimed", types.NewAlreadyClaimedError(3), fiber.StatusConflict},
		{"in flight", types.NewConflictError("claim", "type:3"), fiber.StatusConflict},
		{"transaction", types.NewTransactionError("claim", io.EOF), fiber.StatusBadGateway},
		{"timeout", types.NewTimeoutError("eth_call"), fiber.StatusBadGateway},
		{"fiber error", fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed},
		{"unknown", io.EOF, fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}
