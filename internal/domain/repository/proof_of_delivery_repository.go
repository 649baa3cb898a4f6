package repository

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
)

// ProofOfDeliverySearchParams filtra por orden o despacho.
type ProofOfDeliverySearchParams struct {
	OrderID    string
	ShipmentID string
}

// ProofOfDeliveryRepository define el puerto de persistencia para comprobantes de entrega.
// GetByID carga el despacho y su orden.
type ProofOfDeliveryRepository interface {
	Create(ctx context.Context, pod *entity.ProofOfDelivery) error
	Update(ctx context.Context, pod *entity.ProofOfDelivery) error
	GetByID(ctx context.Context, id string) (*entity.ProofOfDelivery, error)
	Search(ctx context.Context, params ProofOfDeliverySearchParams) ([]*entity.ProofOfDelivery, error)
}
