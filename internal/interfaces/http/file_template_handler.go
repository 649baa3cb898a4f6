package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/usecase"
)

// FileTemplateHandler plantillas de archivo (solo admin).
type FileTemplateHandler struct {
	uc *usecase.FileTemplateUseCase
}

// NewFileTemplateHandler construye el handler.
func NewFileTemplateHandler(uc *usecase.FileTemplateUseCase) *FileTemplateHandler {
	return &FileTemplateHandler{uc: uc}
}

// GetByType godoc
// @Summary      Obtener plantilla por tipo
// @Tags         file-templates
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "ORDER o SHIPMENT"
// @Success      200   {object}  dto.FileTemplateDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fileTemplates/{type} [get]
func (h *FileTemplateHandler) GetByType(c *fiber.Ctx) error {
	out, err := h.uc.GetByType(c.UserContext(), c.Params("type"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar plantilla
// @Description  Reemplaza la plantilla de su tipo. Valida posiciones y grupos de columnas requeridas.
// @Tags         file-templates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FileTemplateDTO  true  "Plantilla"
// @Success      200   {object}  dto.FileTemplateDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fileTemplates [put]
func (h *FileTemplateHandler) Save(c *fiber.Ctx) error {
	var in dto.FileTemplateDTO
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Save(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
