// Package response defines the JSON envelope every endpoint answers with
// and the panel's error code taxonomy. Handlers never build ad-hoc JSON
// errors; they call one of these helpers so a given failure mode always
// produces the same status, code and body.
package response

import (
	"github.com/gofiber/fiber/v2"
)

type StandardResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
	Meta    *Meta        `json:"meta,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	Page       int   `json:"page,omitempty"`
	Limit      int   `json:"limit,omitempty"`
	Total      int64 `json:"total,omitempty"`
	TotalPages int64 `json:"total_pages,omitempty"`
}

func Success(c *fiber.Ctx, data interface{}, message string) error {
	return c.JSON(StandardResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SuccessWithMeta(c *fiber.Ctx, data interface{}, meta *Meta, message string) error {
	return c.JSON(StandardResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

func Created(c *fiber.Ctx, data interface{}, message string) error {
	return c.Status(fiber.StatusCreated).JSON(StandardResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// Error is the single funnel for failure responses. The named helpers below
// pin each taxonomy code to its status; call them instead of Error directly
// unless a flow genuinely needs a one-off combination.
func Error(c *fiber.Ctx, statusCode int, errorCode string, message string, details interface{}) error {
	return c.Status(statusCode).JSON(StandardResponse{
		Success: false,
		Error: &ErrorDetail{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
	})
}

// 400 family: the request itself is unusable.

func BadRequest(c *fiber.Ctx, message string, details interface{}) error {
	return Error(c, fiber.StatusBadRequest, "BAD_REQUEST", message, details)
}

// InvalidOrExpiredToken rejects a reset token that fails signature or
// purpose verification.
func InvalidOrExpiredToken(c *fiber.Ctx) error {
	return Error(c, fiber.StatusBadRequest, "INVALID_OR_EXPIRED_TOKEN", "Password reset token is invalid or has expired", nil)
}

// InvalidToken rejects a reset token that verified but no longer matches
// the stored copy (consumed, or superseded by a newer request).
func InvalidToken(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, "INVALID_TOKEN", message, nil)
}

func InvalidRole(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, "INVALID_ROLE", message, nil)
}

// 401 family: the caller is not (or no longer) authenticated.

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

// AuthenticationFailed is deliberately uninformative: unknown email and
// wrong password must produce identical responses.
func AuthenticationFailed(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "AUTHENTICATION_FAILED", "Invalid email or password", nil)
}

func TokenExpired(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, "TOKEN_EXPIRED", message, nil)
}

// 403 and 404.

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, "FORBIDDEN", message, nil)
}

func NotFound(c *fiber.Ctx, resource string) error {
	return Error(c, fiber.StatusNotFound, "NOT_FOUND", resource+" not found", nil)
}

// 409 and 422: the request is well-formed but the state or payload rejects it.

func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, "CONFLICT", message, nil)
}

func ValidationError(c *fiber.Ctx, errors interface{}) error {
	return Error(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errors)
}

// 5xx: nothing the caller did wrong.

func ServiceUnavailable(c *fiber.Ctx) error {
	return Error(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service temporarily unavailable, please retry", nil)
}

func InternalError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}

func CalculateMeta(page, limit int, total int64) *Meta {
	totalPages := total / int64(limit)
	if total%int64(limit) > 0 {
		totalPages++
	}

	return &Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
