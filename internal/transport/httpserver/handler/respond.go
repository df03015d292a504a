// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"penhub-service/internal/domain"
	"penhub-service/internal/transport/httpserver/dto"
)

// domainError maps service-layer sentinel errors to HTTP responses.
// Unrecognized errors surface as opaque server errors.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "not found",
			Code:  "NOT_FOUND",
		})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: "forbidden",
			Code:  "FORBIDDEN",
		})
	case errors.Is(err, domain.ErrWorkTrashed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: "work is in the trash, restore it first",
			Code:  "WORK_TRASHED",
		})
	case errors.Is(err, domain.ErrSelfFollow):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "cannot follow yourself",
			Code:  "SELF_FOLLOW",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "internal server error",
			Code:  "INTERNAL_ERROR",
		})
	}
}

// badQuery is the response for unparseable query strings.
func badQuery(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: "invalid query parameters",
		Code:  "INVALID_PARAMS",
	})
}

// badBody is the response for unparseable request bodies.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: "invalid request body",
		Code:  "INVALID_BODY",
	})
}

// validationFailed is the response for inputs that parsed but failed
// validation; details carries the per-field errors.
func validationFailed(c *fiber.Ctx, details error) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error:   "validation failed",
		Code:    "VALIDATION_ERROR",
		Details: details,
	})
}

var errInvalidID = errors.New("invalid id")

// pathID parses the :id route parameter.
func pathID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, errInvalidID
	}

	return int64(id), nil
}

// invalidID is the response for malformed :id parameters.
func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: "invalid id",
		Code:  "INVALID_ID",
	})
}
