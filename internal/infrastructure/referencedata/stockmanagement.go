package referencedata

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/jhoicas/fulfillment-api/internal/application/ports"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
)

var (
	_ ports.ValidSourceDestinationService = (*StockManagement)(nil)
	_ ports.StockEventSubmitter           = (*StockManagement)(nil)
)

const occurredDateLayout = "2006-01-02"

// StockManagement adaptador de stockmanagement: orígenes/destinos válidos y eventos de stock.
type StockManagement struct {
	c *client
}

// NewStockManagement construye el adaptador.
func NewStockManagement(opts Options) *StockManagement {
	return &StockManagement{c: newClient("stockmanagement", opts)}
}

type validAssignmentJSON struct {
	ID             string `json:"id"`
	ProgramID      string `json:"programId"`
	FacilityTypeID string `json:"facilityTypeId"`
	Name           string `json:"name"`
	Node           struct {
		ID              string `json:"id"`
		ReferenceID     string `json:"referenceId"`
		RefDataFacility bool   `json:"refDataFacility"`
	} `json:"node"`
}

// ValidSources orígenes válidos para el programa y tipo de instalación.
func (s *StockManagement) ValidSources(ctx context.Context, programID, facilityTypeID string) ([]entity.ValidSourceDestination, error) {
	return s.assignments(ctx, "/api/validSources", programID, facilityTypeID)
}

// ValidDestinations destinos válidos para el programa y tipo de instalación.
func (s *StockManagement) ValidDestinations(ctx context.Context, programID, facilityTypeID string) ([]entity.ValidSourceDestination, error) {
	return s.assignments(ctx, "/api/validDestinations", programID, facilityTypeID)
}

func (s *StockManagement) assignments(ctx context.Context, path, programID, facilityTypeID string) ([]entity.ValidSourceDestination, error) {
	var raw []validAssignmentJSON
	query := url.Values{"programId": {programID}, "facilityTypeId": {facilityTypeID}}
	if err := s.c.get(ctx, path, query, &raw); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]entity.ValidSourceDestination, 0, len(raw))
	for _, a := range raw {
		out = append(out, entity.ValidSourceDestination{
			ID:             a.ID,
			ProgramID:      a.ProgramID,
			FacilityTypeID: a.FacilityTypeID,
			Name:           a.Name,
			Node: entity.Node{
				ID:              a.Node.ID,
				ReferenceID:     a.Node.ReferenceID,
				RefDataFacility: a.Node.RefDataFacility,
			},
		})
	}
	return out, nil
}

type stockEventJSON struct {
	ProgramID  string                   `json:"programId"`
	FacilityID string                   `json:"facilityId"`
	UserID     string                   `json:"userId,omitempty"`
	LineItems  []stockEventLineItemJSON `json:"lineItems"`
}

type stockEventLineItemJSON struct {
	OrderableID   string            `json:"orderableId"`
	LotID         string            `json:"lotId,omitempty"`
	Quantity      int64             `json:"quantity"`
	OccurredDate  string            `json:"occurredDate"`
	DestinationID string            `json:"destinationId,omitempty"`
	SourceID      string            `json:"sourceId,omitempty"`
	ReasonID      string            `json:"reasonId,omitempty"`
	ExtraData     map[string]string `json:"extraData,omitempty"`
}

// Submit envía el evento; stockmanagement responde con el id del evento como string JSON.
func (s *StockManagement) Submit(ctx context.Context, event *entity.StockEvent) (string, error) {
	body := stockEventJSON{
		ProgramID:  event.ProgramID,
		FacilityID: event.FacilityID,
		UserID:     event.UserID,
		LineItems:  make([]stockEventLineItemJSON, 0, len(event.LineItems)),
	}
	for _, li := range event.LineItems {
		body.LineItems = append(body.LineItems, stockEventLineItemJSON{
			OrderableID:   li.OrderableID,
			LotID:         li.LotID,
			Quantity:      li.Quantity,
			OccurredDate:  li.OccurredDate.Format(occurredDateLayout),
			DestinationID: li.DestinationID,
			SourceID:      li.SourceID,
			ReasonID:      li.ReasonID,
			ExtraData:     li.ExtraData,
		})
	}
	var id string
	if err := s.c.post(ctx, "/api/stockEvents", body, &id); err != nil {
		if errors.Is(err, errNotFound) {
			return "", fmt.Errorf("%w: endpoint de eventos de stock no encontrado", domain.ErrCommunication)
		}
		return "", err
	}
	return id, nil
}
