package common

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/tea-network/sbtmarket/types"
)

var errNotAdmin = types.NewUnauthorizedError("admin", "connected wallet is not the admin")

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StatusCode maps an error onto the HTTP status returned to the client.
func StatusCode(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}

	switch types.ErrorTypeOf(err) {
	case types.ErrTypeValidation, types.ErrTypeInvalidValue, types.ErrTypeBadRequest, types.ErrTypePrecondition:
		return fiber.StatusBadRequest
	case types.ErrTypeUnauthenticated:
		return fiber.StatusUnauthorized
	case types.ErrTypeUnauthorized:
		return fiber.StatusForbidden
	case types.ErrTypeNotFound:
		return fiber.StatusNotFound
	case types.ErrTypeConflict:
		return fiber.StatusConflict
	case types.ErrTypeTransaction, types.ErrTypeNetwork, types.ErrTypeTimeout, types.ErrTypeRateLimit:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// Fail writes err as an ErrorResponse. Server side failures are logged and
// counted; client errors are not.
func (h *BaseHandler) Fail(c *fiber.Ctx, err error) error {
	code := StatusCode(err)
	if code >= fiber.StatusInternalServerError {
		h.TrackError(err)
		h.logger.Error("request failed",
			slog.String("path", c.Path()),
			slog.Int("status", code),
			slog.Any("error", err))
	}
	return c.Status(code).JSON(ErrorResponse{Code: code, Message: err.Error()})
}

// ErrorHandler renders errors that escape handlers, such as unknown routes.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := StatusCode(err)
	return c.Status(code).JSON(ErrorResponse{Code: code, Message: err.Error()})
}
