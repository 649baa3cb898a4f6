package repository

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
)

// OrderSearchParams filtros de búsqueda de órdenes; campos vacíos no filtran.
type OrderSearchParams struct {
	SupplyingFacilityID  string
	RequestingFacilityID string
	ProgramID            string
	Statuses             []entity.OrderStatus
	Limit                int
	Offset               int
}

// OrderRepository define el puerto de persistencia para Order (DIP).
// GetByID y FindByOrderCode devuelven (nil, nil) si no existe.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	FindByOrderCode(ctx context.Context, orderCode string) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error
	Search(ctx context.Context, params OrderSearchParams) ([]*entity.Order, int, error)
}

// OrderNumberConfigurationRepository guarda la única configuración de numeración.
type OrderNumberConfigurationRepository interface {
	Get(ctx context.Context) (*entity.OrderNumberConfiguration, error)
	Save(ctx context.Context, cfg *entity.OrderNumberConfiguration) error
}
