package repository

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
)

// TransferPropertiesRepository configuración de transferencia por instalación.
// Create devuelve domain.ErrDuplicate si la instalación ya tiene configuración.
type TransferPropertiesRepository interface {
	Create(ctx context.Context, props *entity.TransferProperties) error
	Update(ctx context.Context, props *entity.TransferProperties) error
	GetByID(ctx context.Context, id string) (*entity.TransferProperties, error)
	GetByFacility(ctx context.Context, facilityID string) (*entity.TransferProperties, error)
	ListByType(ctx context.Context, t entity.TransferType) ([]*entity.TransferProperties, error)
	Delete(ctx context.Context, id string) error
}
