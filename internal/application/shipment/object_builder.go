package shipment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
	"github.com/jhoicas/fulfillment-api/pkg/clock"
	"github.com/jhoicas/fulfillment-api/pkg/csvfile"
)

// ObjectBuilder arma el despacho completo (orden + líneas + datos de creación) desde filas crudas.
type ObjectBuilder struct {
	orders      repository.OrderRepository
	lineItems   *LineItemBuilder
	clock       clock.Clock
	shippedByID string
}

// NewObjectBuilder construye el builder. shippedByID es el usuario despachador por defecto de los archivos.
func NewObjectBuilder(orders repository.OrderRepository, lineItems *LineItemBuilder, clk clock.Clock, shippedByID string) *ObjectBuilder {
	return &ObjectBuilder{orders: orders, lineItems: lineItems, clock: clk, shippedByID: shippedByID}
}

// Build valida la plantilla, ubica la orden a partir de la primera fila y construye las líneas.
// La plantilla se valida completa antes de mirar filas o consultar órdenes.
func (b *ObjectBuilder) Build(ctx context.Context, template *entity.FileTemplate, rows []csvfile.Row) (*entity.Shipment, error) {
	cols, err := resolveRequiredColumns(template)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrEmptyFile
	}

	order, err := b.findOrder(ctx, cols.order, rows[0])
	if err != nil {
		return nil, err
	}

	lineItems, err := b.lineItems.Build(ctx, template, rows)
	if err != nil {
		return nil, err
	}

	return &entity.Shipment{
		ID:    uuid.New().String(),
		Order: order,
		ShipDetails: entity.CreationDetails{
			UserID: b.shippedByID,
			Date:   b.clock.Now(),
		},
		LineItems: lineItems,
	}, nil
}

func (b *ObjectBuilder) findOrder(ctx context.Context, column entity.FileColumn, first csvfile.Row) (*entity.Order, error) {
	raw, _ := first.Get(column.Position)
	identifier := strings.TrimSpace(raw)
	if identifier == "" {
		return nil, fmt.Errorf("%w: identificador de orden vacío", domain.ErrOrderNotFound)
	}

	var (
		order *entity.Order
		err   error
	)
	switch column.KeyPath {
	case entity.KeyPathOrderCode:
		order, err = b.orders.FindByOrderCode(ctx, identifier)
	default:
		if _, perr := uuid.Parse(identifier); perr != nil {
			return nil, fmt.Errorf("%w: id %q", domain.ErrOrderNotFound, identifier)
		}
		order, err = b.orders.GetByID(ctx, identifier)
	}
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, identifier)
	}
	return order, nil
}
