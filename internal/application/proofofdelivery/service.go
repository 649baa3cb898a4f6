// Package proofofdelivery casos de uso de comprobantes de entrega.
package proofofdelivery

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/fulfillment-api/internal/application/auth"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/ports"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
	"github.com/jhoicas/fulfillment-api/pkg/metrics"
	"github.com/rs/zerolog"
)

// PostProcessor acción posterior a confirmar, dentro de la misma transacción.
type PostProcessor interface {
	PublishProofOfDelivery(ctx context.Context, pod *entity.ProofOfDelivery) error
}

// Service casos de uso de comprobantes de entrega.
type Service struct {
	tx      ports.TxRunner
	proofs  repository.ProofOfDeliveryRepository
	post    PostProcessor
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// NewService construye el caso de uso. m puede ser nil.
func NewService(tx ports.TxRunner, proofs repository.ProofOfDeliveryRepository, post PostProcessor, m *metrics.Metrics, log zerolog.Logger) *Service {
	return &Service{tx: tx, proofs: proofs, post: post, metrics: m, log: log}
}

// GetByID obtiene un comprobante.
func (s *Service) GetByID(ctx context.Context, id string) (*dto.ProofOfDeliveryResponse, error) {
	pod, err := s.load(ctx, s.proofs, id)
	if err != nil {
		return nil, err
	}
	return ToResponse(pod), nil
}

// Search lista comprobantes por orden o despacho.
func (s *Service) Search(ctx context.Context, orderID, shipmentID string) ([]dto.ProofOfDeliveryResponse, error) {
	list, err := s.proofs.Search(ctx, repository.ProofOfDeliverySearchParams{OrderID: orderID, ShipmentID: shipmentID})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProofOfDeliveryResponse, 0, len(list))
	for _, pod := range list {
		items = append(items, *ToResponse(pod))
	}
	return items, nil
}

// Update modifica un comprobante en estado INITIATED.
func (s *Service) Update(ctx context.Context, id string, in dto.UpdateProofOfDeliveryRequest) (*dto.ProofOfDeliveryResponse, error) {
	changes, err := fromRequest(in)
	if err != nil {
		return nil, err
	}
	pod, err := s.load(ctx, s.proofs, id)
	if err != nil {
		return nil, err
	}
	if err := pod.UpdateFrom(changes); err != nil {
		return nil, err
	}
	if err := s.proofs.Update(ctx, pod); err != nil {
		return nil, err
	}
	return ToResponse(pod), nil
}

// Confirm valida el comprobante, lo confirma, pasa la orden a RECEIVED y envía el evento de stock.
// Todo ocurre en una transacción.
func (s *Service) Confirm(ctx context.Context, id string) (*dto.ProofOfDeliveryResponse, error) {
	if auth.UserID(ctx) == "" {
		return nil, domain.ErrUnauthorized
	}
	var confirmed *entity.ProofOfDelivery
	err := s.tx.Run(ctx, func(repos ports.TxRepos) error {
		pod, err := s.load(ctx, repos.Proofs, id)
		if err != nil {
			return err
		}
		if err := pod.Confirm(); err != nil {
			return err
		}
		if err := repos.Proofs.Update(ctx, pod); err != nil {
			return err
		}
		if err := repos.Orders.UpdateStatus(ctx, pod.Shipment.Order.ID, entity.OrderStatusReceived); err != nil {
			return err
		}
		if err := s.post.PublishProofOfDelivery(ctx, pod); err != nil {
			return err
		}
		confirmed = pod
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ProofConfirmed()
	s.log.Info().Str("pod_id", id).Str("user_id", auth.UserID(ctx)).Msg("comprobante de entrega confirmado")
	return ToResponse(confirmed), nil
}

func (s *Service) load(ctx context.Context, repo repository.ProofOfDeliveryRepository, id string) (*entity.ProofOfDelivery, error) {
	pod, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pod == nil {
		return nil, fmt.Errorf("%w: comprobante %s", domain.ErrNotFound, id)
	}
	return pod, nil
}

func fromRequest(in dto.UpdateProofOfDeliveryRequest) (*entity.ProofOfDelivery, error) {
	out := &entity.ProofOfDelivery{
		DeliveredBy: in.DeliveredBy,
		ReceivedBy:  in.ReceivedBy,
	}
	if in.ReceivedDate != "" {
		d, err := time.Parse(dto.DateLayout, in.ReceivedDate)
		if err != nil {
			return nil, fmt.Errorf("%w: received_date %q", domain.ErrInvalidInput, in.ReceivedDate)
		}
		out.ReceivedDate = d
	}
	for _, li := range in.LineItems {
		out.LineItems = append(out.LineItems, entity.ProofOfDeliveryLineItem{
			ID:                li.ID,
			QuantityAccepted:  li.QuantityAccepted,
			QuantityRejected:  li.QuantityRejected,
			RejectionReasonID: li.RejectionReasonID,
			VVMStatus:         li.VVMStatus,
			Notes:             li.Notes,
		})
	}
	return out, nil
}

// ToResponse convierte la entidad a DTO.
func ToResponse(pod *entity.ProofOfDelivery) *dto.ProofOfDeliveryResponse {
	out := &dto.ProofOfDeliveryResponse{
		ID:          pod.ID,
		Status:      string(pod.Status),
		DeliveredBy: pod.DeliveredBy,
		ReceivedBy:  pod.ReceivedBy,
		LineItems:   make([]dto.ProofOfDeliveryLineItemDTO, 0, len(pod.LineItems)),
	}
	if !pod.ReceivedDate.IsZero() {
		out.ReceivedDate = pod.ReceivedDate.Format(dto.DateLayout)
	}
	if pod.Shipment != nil {
		out.ShipmentID = pod.Shipment.ID
		if pod.Shipment.Order != nil {
			out.OrderID = pod.Shipment.Order.ID
		}
	}
	for _, li := range pod.LineItems {
		out.LineItems = append(out.LineItems, dto.ProofOfDeliveryLineItemDTO{
			ID:                li.ID,
			OrderableID:       li.OrderableID,
			LotID:             li.LotID,
			QuantityAccepted:  li.QuantityAccepted,
			UseVVM:            li.UseVVM,
			VVMStatus:         li.VVMStatus,
			QuantityRejected:  li.QuantityRejected,
			RejectionReasonID: li.RejectionReasonID,
			Notes:             li.Notes,
		})
	}
	return out
}
