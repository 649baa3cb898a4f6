// Package stockevent deriva eventos de stock a partir de despachos y comprobantes de entrega.
package stockevent

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/fulfillment-api/internal/application/auth"
	"github.com/jhoicas/fulfillment-api/internal/application/ports"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/pkg/clock"
	"github.com/rs/zerolog"
)

// ExtraDataVVMStatus clave de datos extra con el estado del monitor de vacunas.
const ExtraDataVVMStatus = "vvmStatus"

// Builder construye eventos de stock. No reintenta llamadas externas.
type Builder struct {
	facilities  ports.FacilityService
	nodes       ports.ValidSourceDestinationService
	orderables  ports.OrderableCatalog
	clock       clock.Clock
	podReasonID string
	log         zerolog.Logger
}

// NewBuilder construye el builder. podReasonID es la razón de entrada configurada para comprobantes.
func NewBuilder(
	facilities ports.FacilityService,
	nodes ports.ValidSourceDestinationService,
	orderables ports.OrderableCatalog,
	clk clock.Clock,
	podReasonID string,
	log zerolog.Logger,
) *Builder {
	return &Builder{
		facilities:  facilities,
		nodes:       nodes,
		orderables:  orderables,
		clock:       clk,
		podReasonID: podReasonID,
		log:         log,
	}
}

// FromShipment evento de salida: desde la instalación proveedora hacia el nodo destino de la receptora.
func (b *Builder) FromShipment(ctx context.Context, s *entity.Shipment) (*entity.StockEvent, error) {
	if s == nil || s.Order == nil {
		return nil, fmt.Errorf("%w: despacho sin orden", domain.ErrInvalidInput)
	}
	order := s.Order
	b.log.Debug().Str("shipment_id", s.ID).Msg("construyendo evento de stock para despacho")

	destinationID, err := b.resolveNode(ctx, order.ProgramID, order.SupplyingFacilityID, order.ReceivingFacilityID, b.nodes.ValidDestinations)
	if err != nil {
		return nil, err
	}
	netContent, err := b.netContents(ctx, s.OrderableIDs())
	if err != nil {
		return nil, err
	}

	occurred := b.clock.Today()
	lines := make([]entity.StockEventLineItem, 0, len(s.LineItems))
	for _, li := range s.LineItems {
		lines = append(lines, entity.StockEventLineItem{
			OrderableID:   li.OrderableID,
			LotID:         li.LotID,
			Quantity:      convert(li.QuantityShipped, li.OrderableID, netContent),
			OccurredDate:  occurred,
			DestinationID: destinationID,
		})
	}
	return &entity.StockEvent{
		ProgramID:  order.ProgramID,
		FacilityID: order.SupplyingFacilityID,
		UserID:     s.ShipDetails.UserID,
		LineItems:  lines,
	}, nil
}

// FromProofOfDelivery evento de entrada: en la instalación receptora, desde el nodo origen de la proveedora.
// El actor es el usuario autenticado del contexto.
func (b *Builder) FromProofOfDelivery(ctx context.Context, pod *entity.ProofOfDelivery) (*entity.StockEvent, error) {
	if pod == nil || pod.Shipment == nil || pod.Shipment.Order == nil {
		return nil, fmt.Errorf("%w: comprobante sin despacho u orden", domain.ErrInvalidInput)
	}
	order := pod.Shipment.Order
	b.log.Debug().Str("pod_id", pod.ID).Msg("construyendo evento de stock para comprobante de entrega")

	sourceID, err := b.resolveNode(ctx, order.ProgramID, order.ReceivingFacilityID, order.SupplyingFacilityID, b.nodes.ValidSources)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(pod.LineItems))
	for _, li := range pod.LineItems {
		ids = append(ids, li.OrderableID)
	}
	netContent, err := b.netContents(ctx, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]entity.StockEventLineItem, 0, len(pod.LineItems))
	for _, li := range pod.LineItems {
		line := entity.StockEventLineItem{
			OrderableID:  li.OrderableID,
			LotID:        li.LotID,
			Quantity:     convert(li.AcceptedQuantity(), li.OrderableID, netContent),
			OccurredDate: pod.ReceivedDate,
			SourceID:     sourceID,
			ReasonID:     b.podReasonID,
		}
		if li.VVMStatus != "" {
			line.ExtraData = map[string]string{ExtraDataVVMStatus: li.VVMStatus}
		}
		lines = append(lines, line)
	}
	return &entity.StockEvent{
		ProgramID:  order.ProgramID,
		FacilityID: order.ReceivingFacilityID,
		UserID:     auth.UserID(ctx),
		LineItems:  lines,
	}, nil
}

type nodeSearch func(ctx context.Context, programID, facilityTypeID string) ([]entity.ValidSourceDestination, error)

// resolveNode busca, entre las asignaciones válidas del programa y el tipo de la instalación origen,
// el nodo que representa a la instalación contraparte.
func (b *Builder) resolveNode(ctx context.Context, programID, originID, counterpartID string, search nodeSearch) (string, error) {
	origin, err := b.facility(ctx, originID)
	if err != nil {
		return "", err
	}
	counterpart, err := b.facility(ctx, counterpartID)
	if err != nil {
		return "", err
	}
	candidates, err := search(ctx, programID, origin.Type.ID)
	if err != nil {
		return "", communication(err)
	}
	for _, c := range candidates {
		if c.MatchesFacility(counterpart.ID) {
			return c.Node.ID, nil
		}
	}
	return "", fmt.Errorf("%w: instalación %s", domain.ErrNodeNotFound, counterpart.Code)
}

func (b *Builder) facility(ctx context.Context, id string) (*entity.Facility, error) {
	f, err := b.facilities.FindOne(ctx, id)
	if err != nil {
		return nil, communication(err)
	}
	if f == nil {
		return nil, fmt.Errorf("%w: instalación %s no existe", domain.ErrNodeNotFound, id)
	}
	return f, nil
}

// netContents tamaño de empaque por orderable, consultado en lote.
func (b *Builder) netContents(ctx context.Context, ids []string) (map[string]int64, error) {
	out := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	orderables, err := b.orderables.FindByIDs(ctx, ids)
	if err != nil {
		return nil, communication(err)
	}
	for _, o := range orderables {
		out[o.ID] = o.NetContent
	}
	return out, nil
}

// convert pasa a unidades de dispensación; si el orderable no vino en el lote la cantidad queda igual.
func convert(quantity int64, orderableID string, netContent map[string]int64) int64 {
	if n, ok := netContent[orderableID]; ok {
		return quantity * n
	}
	return quantity
}

func communication(err error) error {
	if errors.Is(err, domain.ErrCommunication) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrCommunication, err)
}
