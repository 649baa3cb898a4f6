package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/usecase"
)

// TransferPropertiesHandler configuraciones de transferencia (solo admin).
type TransferPropertiesHandler struct {
	uc *usecase.TransferPropertiesUseCase
}

// NewTransferPropertiesHandler construye el handler.
func NewTransferPropertiesHandler(uc *usecase.TransferPropertiesUseCase) *TransferPropertiesHandler {
	return &TransferPropertiesHandler{uc: uc}
}

// Create godoc
// @Summary      Crear configuración de transferencia
// @Tags         transfer-properties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferPropertiesDTO  true  "Configuración ftp o local"
// @Success      201   {object}  dto.TransferPropertiesDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transferProperties [post]
func (h *TransferPropertiesHandler) Create(c *fiber.Ctx) error {
	var in dto.TransferPropertiesDTO
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Reemplazar configuración de transferencia
// @Tags         transfer-properties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID"
// @Param        body  body  dto.TransferPropertiesDTO  true  "Configuración"
// @Success      200   {object}  dto.TransferPropertiesDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transferProperties/{id} [put]
func (h *TransferPropertiesHandler) Update(c *fiber.Ctx) error {
	var in dto.TransferPropertiesDTO
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener configuración de transferencia
// @Tags         transfer-properties
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.TransferPropertiesDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transferProperties/{id} [get]
func (h *TransferPropertiesHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByFacility godoc
// @Summary      Configuración de transferencia de una instalación
// @Tags         transfer-properties
// @Security     Bearer
// @Produce      json
// @Param        facility_id  query  string  true  "ID de la instalación"
// @Success      200  {object}  dto.TransferPropertiesDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transferProperties [get]
func (h *TransferPropertiesHandler) GetByFacility(c *fiber.Ctx) error {
	facilityID := c.Query("facility_id")
	if facilityID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "facility_id es requerido"})
	}
	out, err := h.uc.GetByFacility(c.UserContext(), facilityID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar configuración de transferencia
// @Tags         transfer-properties
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transferProperties/{id} [delete]
func (h *TransferPropertiesHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
