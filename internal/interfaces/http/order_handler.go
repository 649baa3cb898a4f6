package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/order"
)

// OrderHandler maneja las peticiones HTTP de órdenes y su numeración.
type OrderHandler struct {
	svc *order.Service
}

// NewOrderHandler construye el handler.
func NewOrderHandler(svc *order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// Create godoc
// @Summary      Crear orden
// @Description  Genera el código de la orden según la configuración de numeración y notifica al creador.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Datos de la orden"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden por ID
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        supplying_facility_id   query  string  false  "Instalación proveedora"
// @Param        requesting_facility_id  query  string  false  "Instalación solicitante"
// @Param        program_id              query  string  false  "Programa"
// @Param        status                  query  string  false  "Estados separados por coma"
// @Param        limit                   query  int     false  "Límite"  default(20)
// @Param        offset                  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.OrderListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) Search(c *fiber.Ctx) error {
	var q dto.OrderSearchQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.Search(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetNumberConfiguration godoc
// @Summary      Configuración de numeración de órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrderNumberConfigurationDTO
// @Router       /api/orderNumberConfigurations [get]
func (h *OrderHandler) GetNumberConfiguration(c *fiber.Ctx) error {
	out, err := h.svc.GetNumberConfiguration(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateNumberConfiguration godoc
// @Summary      Reemplazar configuración de numeración
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderNumberConfigurationDTO  true  "Configuración"
// @Success      200   {object}  dto.OrderNumberConfigurationDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orderNumberConfigurations [put]
func (h *OrderHandler) UpdateNumberConfiguration(c *fiber.Ctx) error {
	var in dto.OrderNumberConfigurationDTO
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.UpdateNumberConfiguration(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
