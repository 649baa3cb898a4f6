package repository

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
)

// ShipmentRepository persiste el despacho como agregado (cabecera + líneas en la misma tx).
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *entity.Shipment) error
	GetByID(ctx context.Context, id string) (*entity.Shipment, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Shipment, error)
}

// ShipmentDraftRepository borradores de despacho.
type ShipmentDraftRepository interface {
	Create(ctx context.Context, draft *entity.ShipmentDraft) error
	Update(ctx context.Context, draft *entity.ShipmentDraft) error
	GetByID(ctx context.Context, id string) (*entity.ShipmentDraft, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.ShipmentDraft, error)
	Delete(ctx context.Context, id string) error
	DeleteByOrder(ctx context.Context, orderID string) error
}
