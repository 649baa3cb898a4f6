// Package shipmentdraft casos de uso de borradores de despacho.
package shipmentdraft

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

// Service CRUD de borradores.
type Service struct {
	drafts repository.ShipmentDraftRepository
	orders repository.OrderRepository
}

// NewService construye el caso de uso.
func NewService(drafts repository.ShipmentDraftRepository, orders repository.OrderRepository) *Service {
	return &Service{drafts: drafts, orders: orders}
}

// Create crea un borrador para una orden existente.
func (s *Service) Create(ctx context.Context, in dto.ShipmentDraftRequest) (*dto.ShipmentDraftResponse, error) {
	if err := s.checkOrder(ctx, in.OrderID); err != nil {
		return nil, err
	}
	draft := fromRequest(in)
	draft.ID = uuid.New().String()
	if err := s.drafts.Create(ctx, draft); err != nil {
		return nil, err
	}
	return toResponse(draft), nil
}

// Update reemplaza el borrador id; si no existe lo crea con ese id.
// Un id en el cuerpo distinto al de la ruta es un error de validación.
func (s *Service) Update(ctx context.Context, id string, in dto.ShipmentDraftRequest) (*dto.ShipmentDraftResponse, error) {
	if in.ID != "" && in.ID != id {
		return nil, fmt.Errorf("%w: el id del borrador no coincide con la ruta", domain.ErrInvalidInput)
	}
	incoming := fromRequest(in)
	existing, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		if err := s.checkOrder(ctx, in.OrderID); err != nil {
			return nil, err
		}
		incoming.ID = id
		if err := s.drafts.Create(ctx, incoming); err != nil {
			return nil, err
		}
		return toResponse(incoming), nil
	}
	existing.UpdateFrom(incoming)
	if err := s.drafts.Update(ctx, existing); err != nil {
		return nil, err
	}
	return toResponse(existing), nil
}

// GetByID obtiene un borrador.
func (s *Service) GetByID(ctx context.Context, id string) (*dto.ShipmentDraftResponse, error) {
	draft, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, fmt.Errorf("%w: borrador %s", domain.ErrNotFound, id)
	}
	return toResponse(draft), nil
}

// ListByOrder lista los borradores de una orden.
func (s *Service) ListByOrder(ctx context.Context, orderID string) ([]dto.ShipmentDraftResponse, error) {
	list, err := s.drafts.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShipmentDraftResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toResponse(d))
	}
	return items, nil
}

// Delete elimina un borrador.
func (s *Service) Delete(ctx context.Context, id string) error {
	draft, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if draft == nil {
		return fmt.Errorf("%w: borrador %s", domain.ErrNotFound, id)
	}
	return s.drafts.Delete(ctx, id)
}

func (s *Service) checkOrder(ctx context.Context, orderID string) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("%w: orden %s", domain.ErrNotFound, orderID)
	}
	return nil
}

func fromRequest(in dto.ShipmentDraftRequest) *entity.ShipmentDraft {
	d := &entity.ShipmentDraft{ID: in.ID, OrderID: in.OrderID, Notes: in.Notes}
	for _, li := range in.LineItems {
		id := li.ID
		if id == "" {
			id = uuid.New().String()
		}
		d.LineItems = append(d.LineItems, entity.ShipmentDraftLineItem{
			ID:              id,
			OrderableID:     li.OrderableID,
			LotID:           li.LotID,
			QuantityShipped: li.QuantityShipped,
		})
	}
	return d
}

func toResponse(d *entity.ShipmentDraft) *dto.ShipmentDraftResponse {
	out := &dto.ShipmentDraftResponse{
		ID:        d.ID,
		OrderID:   d.OrderID,
		Notes:     d.Notes,
		LineItems: make([]dto.ShipmentDraftLineItemRequest, 0, len(d.LineItems)),
	}
	for _, li := range d.LineItems {
		out.LineItems = append(out.LineItems, dto.ShipmentDraftLineItemRequest{
			ID:              li.ID,
			OrderableID:     li.OrderableID,
			LotID:           li.LotID,
			QuantityShipped: li.QuantityShipped,
		})
	}
	return out
}
