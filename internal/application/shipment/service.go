package shipment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/fulfillment-api/internal/application/auth"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/ports"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
	"github.com/jhoicas/fulfillment-api/pkg/clock"
	"github.com/jhoicas/fulfillment-api/pkg/metrics"
	"github.com/rs/zerolog"
)

// Origen del despacho, para métricas y logs.
const (
	SourceAPI  = "api"
	SourceFile = "file"
)

// PostProcessor acción posterior a guardar un despacho, dentro de la misma transacción.
type PostProcessor interface {
	PublishShipment(ctx context.Context, s *entity.Shipment) error
}

// Service casos de uso de despachos.
type Service struct {
	tx        ports.TxRunner
	shipments repository.ShipmentRepository
	orders    repository.OrderRepository
	catalog   ports.OrderableCatalog
	post      PostProcessor
	clock     clock.Clock
	metrics   *metrics.Metrics
	log       zerolog.Logger
}

// NewService construye el caso de uso. m puede ser nil.
func NewService(
	tx ports.TxRunner,
	shipments repository.ShipmentRepository,
	orders repository.OrderRepository,
	catalog ports.OrderableCatalog,
	post PostProcessor,
	clk clock.Clock,
	m *metrics.Metrics,
	log zerolog.Logger,
) *Service {
	return &Service{
		tx:        tx,
		shipments: shipments,
		orders:    orders,
		catalog:   catalog,
		post:      post,
		clock:     clk,
		metrics:   m,
		log:       log,
	}
}

// Save persiste el despacho en una sola transacción: cabecera y líneas, comprobante de entrega,
// orden en SHIPPED, borradores eliminados y evento de stock enviado. Cualquier falla revierte todo.
func (s *Service) Save(ctx context.Context, shipment *entity.Shipment, source string) error {
	if shipment.Order == nil {
		return fmt.Errorf("%w: despacho sin orden", domain.ErrInvalidInput)
	}
	useVVM, err := s.useVVM(ctx, shipment)
	if err != nil {
		return err
	}

	err = s.tx.Run(ctx, func(repos ports.TxRepos) error {
		if err := repos.Shipments.Create(ctx, shipment); err != nil {
			return err
		}
		pod := entity.NewProofOfDeliveryFromShipment(shipment, useVVM)
		if err := repos.Proofs.Create(ctx, pod); err != nil {
			return err
		}
		if err := repos.Orders.UpdateStatus(ctx, shipment.Order.ID, entity.OrderStatusShipped); err != nil {
			return err
		}
		if err := repos.Drafts.DeleteByOrder(ctx, shipment.Order.ID); err != nil {
			return err
		}
		return s.post.PublishShipment(ctx, shipment)
	})
	if err != nil {
		return err
	}
	shipment.Order.Status = entity.OrderStatusShipped
	s.metrics.ShipmentCreated(source)
	s.log.Info().Str("shipment_id", shipment.ID).Str("order_id", shipment.Order.ID).
		Str("source", source).Int("lines", len(shipment.LineItems)).Msg("despacho creado")
	return nil
}

func (s *Service) useVVM(ctx context.Context, shipment *entity.Shipment) (map[string]bool, error) {
	ids := shipment.OrderableIDs()
	out := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	orderables, err := s.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range orderables {
		out[o.ID] = o.UseVVM
	}
	return out, nil
}

// Create registra un despacho desde la API; el despachador es el usuario autenticado.
func (s *Service) Create(ctx context.Context, in dto.CreateShipmentRequest) (*dto.ShipmentResponse, error) {
	userID := auth.UserID(ctx)
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	order, err := s.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNotFound, in.OrderID)
	}
	if !order.CanBeShipped() {
		return nil, fmt.Errorf("%w: la orden %s está en estado %s", domain.ErrConflict, order.OrderCode, order.Status)
	}

	shipment := &entity.Shipment{
		ID:          uuid.New().String(),
		Order:       order,
		ShipDetails: entity.CreationDetails{UserID: userID, Date: s.clock.Now()},
		Notes:       in.Notes,
		ExtraData:   in.ExtraData,
		LineItems:   make([]entity.ShipmentLineItem, 0, len(in.LineItems)),
	}
	for _, li := range in.LineItems {
		shipment.LineItems = append(shipment.LineItems, entity.ShipmentLineItem{
			ID:              uuid.New().String(),
			OrderableID:     li.OrderableID,
			LotID:           li.LotID,
			QuantityShipped: li.QuantityShipped,
		})
	}
	if err := s.Save(ctx, shipment, SourceAPI); err != nil {
		return nil, err
	}
	return ToShipmentResponse(shipment), nil
}

// GetByID obtiene un despacho.
func (s *Service) GetByID(ctx context.Context, id string) (*dto.ShipmentResponse, error) {
	shipment, err := s.shipments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, fmt.Errorf("%w: despacho %s", domain.ErrNotFound, id)
	}
	return ToShipmentResponse(shipment), nil
}

// ListByOrder lista los despachos de una orden.
func (s *Service) ListByOrder(ctx context.Context, orderID string) ([]dto.ShipmentResponse, error) {
	list, err := s.shipments.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShipmentResponse, 0, len(list))
	for _, sh := range list {
		items = append(items, *ToShipmentResponse(sh))
	}
	return items, nil
}

// ToShipmentResponse convierte la entidad a DTO.
func ToShipmentResponse(s *entity.Shipment) *dto.ShipmentResponse {
	if s == nil {
		return nil
	}
	out := &dto.ShipmentResponse{
		ID:          s.ID,
		ShippedByID: s.ShipDetails.UserID,
		ShippedDate: s.ShipDetails.Date,
		Notes:       s.Notes,
		ExtraData:   s.ExtraData,
		LineItems:   make([]dto.ShipmentLineItemResponse, 0, len(s.LineItems)),
	}
	if s.Order != nil {
		out.OrderID = s.Order.ID
	}
	for _, li := range s.LineItems {
		out.LineItems = append(out.LineItems, dto.ShipmentLineItemResponse{
			ID:              li.ID,
			OrderableID:     li.OrderableID,
			LotID:           li.LotID,
			QuantityShipped: li.QuantityShipped,
			ExtraData:       li.ExtraData,
		})
	}
	return out
}
