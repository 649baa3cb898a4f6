package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/fulfillment-api/internal/domain"
)

// ProofOfDeliveryStatus estado del comprobante de entrega.
type ProofOfDeliveryStatus string

const (
	ProofOfDeliveryInitiated ProofOfDeliveryStatus = "INITIATED"
	ProofOfDeliveryConfirmed ProofOfDeliveryStatus = "CONFIRMED"
)

// ProofOfDelivery comprobante de entrega: lo que la instalación receptora aceptó de un despacho.
type ProofOfDelivery struct {
	ID           string
	Shipment     *Shipment
	Status       ProofOfDeliveryStatus
	DeliveredBy  string
	ReceivedBy   string
	ReceivedDate time.Time
	LineItems    []ProofOfDeliveryLineItem
}

// ProofOfDeliveryLineItem línea del comprobante. Las cantidades se completan antes de confirmar.
type ProofOfDeliveryLineItem struct {
	ID                string
	OrderableID       string
	LotID             string
	QuantityAccepted  *int64
	UseVVM            bool
	VVMStatus         string
	QuantityRejected  *int64
	RejectionReasonID string
	Notes             string
}

// NewProofOfDeliveryFromShipment crea el comprobante inicial: una línea por línea despachada.
// useVVM indica, por orderable, si se registra el estado del monitor de vacunas.
func NewProofOfDeliveryFromShipment(s *Shipment, useVVM map[string]bool) *ProofOfDelivery {
	pod := &ProofOfDelivery{
		ID:        uuid.New().String(),
		Shipment:  s,
		Status:    ProofOfDeliveryInitiated,
		LineItems: make([]ProofOfDeliveryLineItem, 0, len(s.LineItems)),
	}
	for _, li := range s.LineItems {
		if !li.IsShipped() {
			continue
		}
		pod.LineItems = append(pod.LineItems, ProofOfDeliveryLineItem{
			ID:          uuid.New().String(),
			OrderableID: li.OrderableID,
			LotID:       li.LotID,
			UseVVM:      useVVM[li.OrderableID],
		})
	}
	return pod
}

// IsInitiated indica si el comprobante aún puede editarse.
func (p *ProofOfDelivery) IsInitiated() bool {
	return p.Status == ProofOfDeliveryInitiated
}

// UpdateFrom copia los datos editables. Las líneas se emparejan por ID; las desconocidas se ignoran.
func (p *ProofOfDelivery) UpdateFrom(other *ProofOfDelivery) error {
	if !p.IsInitiated() {
		return fmt.Errorf("%w: el comprobante %s ya fue confirmado", domain.ErrConflict, p.ID)
	}
	p.DeliveredBy = other.DeliveredBy
	p.ReceivedBy = other.ReceivedBy
	p.ReceivedDate = other.ReceivedDate
	for _, in := range other.LineItems {
		for i := range p.LineItems {
			if p.LineItems[i].ID == in.ID {
				p.LineItems[i].QuantityAccepted = in.QuantityAccepted
				p.LineItems[i].QuantityRejected = in.QuantityRejected
				p.LineItems[i].RejectionReasonID = in.RejectionReasonID
				p.LineItems[i].VVMStatus = in.VVMStatus
				p.LineItems[i].Notes = in.Notes
			}
		}
	}
	return nil
}

// Validate verifica que el comprobante esté completo para confirmar.
func (p *ProofOfDelivery) Validate() error {
	if p.ReceivedBy == "" {
		return fmt.Errorf("%w: receivedBy es obligatorio", domain.ErrInvalidInput)
	}
	if p.DeliveredBy == "" {
		return fmt.Errorf("%w: deliveredBy es obligatorio", domain.ErrInvalidInput)
	}
	if p.ReceivedDate.IsZero() {
		return fmt.Errorf("%w: receivedDate es obligatorio", domain.ErrInvalidInput)
	}
	for _, li := range p.LineItems {
		if err := li.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (l ProofOfDeliveryLineItem) validate() error {
	if l.QuantityAccepted == nil || l.QuantityRejected == nil {
		return fmt.Errorf("%w: línea %s sin cantidades aceptada/rechazada", domain.ErrInvalidInput, l.ID)
	}
	if *l.QuantityAccepted < 0 || *l.QuantityRejected < 0 {
		return fmt.Errorf("%w: línea %s con cantidades negativas", domain.ErrInvalidInput, l.ID)
	}
	if *l.QuantityRejected > 0 && l.RejectionReasonID == "" {
		return fmt.Errorf("%w: línea %s requiere motivo de rechazo", domain.ErrInvalidInput, l.ID)
	}
	return nil
}

// Confirm valida y marca el comprobante como confirmado.
func (p *ProofOfDelivery) Confirm() error {
	if !p.IsInitiated() {
		return fmt.Errorf("%w: el comprobante %s ya fue confirmado", domain.ErrConflict, p.ID)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	p.Status = ProofOfDeliveryConfirmed
	return nil
}

// AcceptedQuantity cantidad aceptada o 0 si no se registró.
func (l ProofOfDeliveryLineItem) AcceptedQuantity() int64 {
	if l.QuantityAccepted == nil {
		return 0
	}
	return *l.QuantityAccepted
}
