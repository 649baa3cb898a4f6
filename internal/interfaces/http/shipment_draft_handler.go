package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/shipmentdraft"
)

// ShipmentDraftHandler CRUD de borradores de despacho.
type ShipmentDraftHandler struct {
	svc *shipmentdraft.Service
}

// NewShipmentDraftHandler construye el handler.
func NewShipmentDraftHandler(svc *shipmentdraft.Service) *ShipmentDraftHandler {
	return &ShipmentDraftHandler{svc: svc}
}

// Create godoc
// @Summary      Crear borrador de despacho
// @Tags         shipment-drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ShipmentDraftRequest  true  "Borrador"
// @Success      201   {object}  dto.ShipmentDraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/shipmentDrafts [post]
func (h *ShipmentDraftHandler) Create(c *fiber.Ctx) error {
	var in dto.ShipmentDraftRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar borrador (lo crea si no existe)
// @Tags         shipment-drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del borrador"
// @Param        body  body  dto.ShipmentDraftRequest  true  "Borrador"
// @Success      200   {object}  dto.ShipmentDraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/shipmentDrafts/{id} [put]
func (h *ShipmentDraftHandler) Update(c *fiber.Ctx) error {
	var in dto.ShipmentDraftRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener borrador
// @Tags         shipment-drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.ShipmentDraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipmentDrafts/{id} [get]
func (h *ShipmentDraftHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByOrder godoc
// @Summary      Listar borradores de una orden
// @Tags         shipment-drafts
// @Security     Bearer
// @Produce      json
// @Param        order_id  query  string  true  "ID de la orden"
// @Success      200  {array}   dto.ShipmentDraftResponse
// @Router       /api/shipmentDrafts [get]
func (h *ShipmentDraftHandler) ListByOrder(c *fiber.Ctx) error {
	orderID := c.Query("order_id")
	if orderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "order_id es requerido"})
	}
	out, err := h.svc.ListByOrder(c.UserContext(), orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar borrador
// @Tags         shipment-drafts
// @Security     Bearer
// @Param        id   path  string  true  "ID del borrador"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipmentDrafts/{id} [delete]
func (h *ShipmentDraftHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
