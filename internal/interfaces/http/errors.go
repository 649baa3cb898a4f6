package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/domain"
)

// errorMapping estado HTTP y código de respuesta por error de dominio. El orden importa:
// los errores de archivo van antes que los genéricos.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrTemplateMisconfigured, fiber.StatusBadRequest, "TEMPLATE_MISCONFIGURED"},
	{domain.ErrTemplateNotFound, fiber.StatusBadRequest, "TEMPLATE_NOT_FOUND"},
	{domain.ErrMalformedFile, fiber.StatusBadRequest, "MALFORMED_FILE"},
	{domain.ErrEmptyFile, fiber.StatusBadRequest, "EMPTY_FILE"},
	{domain.ErrInconsistentOrder, fiber.StatusBadRequest, "INCONSISTENT_ORDER"},
	{domain.ErrOrderableNotFound, fiber.StatusBadRequest, "ORDERABLE_NOT_FOUND"},
	{domain.ErrOrderNotFound, fiber.StatusBadRequest, "ORDER_NOT_FOUND"},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY"},
	{domain.ErrNegativeQuantity, fiber.StatusBadRequest, "NEGATIVE_QUANTITY"},
	{domain.ErrNodeNotFound, fiber.StatusUnprocessableEntity, "NODE_NOT_FOUND"},
	{domain.ErrCommunication, fiber.StatusBadGateway, "SERVICE_UNAVAILABLE"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
}

// writeError traduce err a dto.ErrorResponse. Los errores no clasificados se responden
// como 500 sin exponer el detalle.
func writeError(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(verrs)})
	}
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
