package shipment

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/pkg/csvfile"
)

// PersistenceHelper construye y guarda el despacho de un archivo en una sola transacción.
type PersistenceHelper struct {
	builder *ObjectBuilder
	service *Service
}

// NewPersistenceHelper construye el helper.
func NewPersistenceHelper(builder *ObjectBuilder, service *Service) *PersistenceHelper {
	return &PersistenceHelper{builder: builder, service: service}
}

// CreateShipment construye el despacho desde las filas y lo persiste. Si algo falla no queda nada guardado.
func (h *PersistenceHelper) CreateShipment(ctx context.Context, template *entity.FileTemplate, rows []csvfile.Row) (*entity.Shipment, error) {
	shipment, err := h.builder.Build(ctx, template, rows)
	if err != nil {
		return nil, err
	}
	if err := h.service.Save(ctx, shipment, SourceFile); err != nil {
		return nil, err
	}
	return shipment, nil
}
