package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/proofofdelivery"
)

// ProofOfDeliveryHandler consulta, edición y confirmación de comprobantes de entrega.
type ProofOfDeliveryHandler struct {
	svc *proofofdelivery.Service
}

// NewProofOfDeliveryHandler construye el handler.
func NewProofOfDeliveryHandler(svc *proofofdelivery.Service) *ProofOfDeliveryHandler {
	return &ProofOfDeliveryHandler{svc: svc}
}

// Search godoc
// @Summary      Buscar comprobantes de entrega
// @Tags         proofs-of-delivery
// @Security     Bearer
// @Produce      json
// @Param        order_id     query  string  false  "ID de la orden"
// @Param        shipment_id  query  string  false  "ID del despacho"
// @Success      200  {array}  dto.ProofOfDeliveryResponse
// @Router       /api/proofsOfDelivery [get]
func (h *ProofOfDeliveryHandler) Search(c *fiber.Ctx) error {
	out, err := h.svc.Search(c.UserContext(), c.Query("order_id"), c.Query("shipment_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener comprobante de entrega
// @Tags         proofs-of-delivery
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del comprobante"
// @Success      200  {object}  dto.ProofOfDeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proofsOfDelivery/{id} [get]
func (h *ProofOfDeliveryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar comprobante iniciado
// @Tags         proofs-of-delivery
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                            true  "ID del comprobante"
// @Param        body  body  dto.UpdateProofOfDeliveryRequest  true  "Datos de recepción"
// @Success      200   {object}  dto.ProofOfDeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/proofsOfDelivery/{id} [put]
func (h *ProofOfDeliveryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProofOfDeliveryRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar comprobante de entrega
// @Description  Valida las líneas, marca la orden como RECEIVED y envía el evento de stock.
// @Tags         proofs-of-delivery
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del comprobante"
// @Success      200  {object}  dto.ProofOfDeliveryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/proofsOfDelivery/{id}/confirm [post]
func (h *ProofOfDeliveryHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.svc.Confirm(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
