package stockevent_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fulfillment-api/internal/application/auth"
	"github.com/jhoicas/fulfillment-api/internal/application/fakes"
	"github.com/jhoicas/fulfillment-api/internal/application/stockevent"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/pkg/clock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

const (
	programID   = "program-1"
	supplyingID = "facility-wh"
	receivingID = "facility-hc"
	whType      = "type-wh"
	hcType      = "type-hc"
	reasonID    = "reason-transfer-in"
)

var now = time.Date(2024, 5, 2, 18, 45, 0, 0, time.UTC)

type fixture struct {
	catalog *fakes.Catalog
	nodes   *fakes.Nodes
	facs    *fakes.Facilities
	builder *stockevent.Builder
}

func newFixture() *fixture {
	f := &fixture{
		catalog: &fakes.Catalog{Orderables: []entity.Orderable{
			{ID: "o-1", NetContent: 20},
			{ID: "o-2", NetContent: 1},
		}},
		nodes: &fakes.Nodes{
			Destinations: []entity.ValidSourceDestination{
				{ProgramID: programID, FacilityTypeID: whType, Node: entity.Node{ID: "node-no-refdata", ReferenceID: receivingID, RefDataFacility: false}},
				{ProgramID: programID, FacilityTypeID: whType, Node: entity.Node{ID: "node-hc", ReferenceID: receivingID, RefDataFacility: true}},
			},
			Sources: []entity.ValidSourceDestination{
				{ProgramID: programID, FacilityTypeID: hcType, Node: entity.Node{ID: "node-wh", ReferenceID: supplyingID, RefDataFacility: true}},
			},
		},
		facs: &fakes.Facilities{ByID: map[string]*entity.Facility{
			supplyingID: {ID: supplyingID, Code: "WH01", Type: entity.FacilityType{ID: whType}},
			receivingID: {ID: receivingID, Code: "HC01", Type: entity.FacilityType{ID: hcType}},
		}},
	}
	f.builder = stockevent.NewBuilder(f.facs, f.nodes, f.catalog, clock.Fixed{At: now}, reasonID, zerolog.Nop())
	return f
}

func testOrder() *entity.Order {
	return &entity.Order{
		ID:                  "order-1",
		ProgramID:           programID,
		SupplyingFacilityID: supplyingID,
		ReceivingFacilityID: receivingID,
	}
}

func testShipment() *entity.Shipment {
	return &entity.Shipment{
		ID:          "shipment-1",
		Order:       testOrder(),
		ShipDetails: entity.CreationDetails{UserID: "shipper-1", Date: now},
		LineItems: []entity.ShipmentLineItem{
			{OrderableID: "o-1", LotID: "lot-1", QuantityShipped: 3},
			{OrderableID: "o-desconocido", QuantityShipped: 7},
			{OrderableID: "o-2", QuantityShipped: 0},
		},
	}
}

func ptr(v int64) *int64 { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// FromShipment
// ──────────────────────────────────────────────────────────────────────────────

func TestFromShipment_ConstruyeEventoDeSalida(t *testing.T) {
	f := newFixture()

	ev, err := f.builder.FromShipment(context.Background(), testShipment())

	require.NoError(t, err)
	assert.Equal(t, programID, ev.ProgramID)
	assert.Equal(t, supplyingID, ev.FacilityID)
	assert.Equal(t, "shipper-1", ev.UserID)
	require.Len(t, ev.LineItems, 3, "una línea por línea del despacho, en orden")

	first := ev.LineItems[0]
	assert.Equal(t, "o-1", first.OrderableID)
	assert.Equal(t, "lot-1", first.LotID)
	assert.Equal(t, int64(60), first.Quantity, "3 x netContent 20")
	assert.Equal(t, "node-hc", first.DestinationID, "se ignoran nodos que no son instalaciones")
	assert.Empty(t, first.SourceID)
	assert.Empty(t, first.ReasonID)
	assert.Equal(t, clock.DateOf(now), first.OccurredDate)

	assert.Equal(t, int64(7), ev.LineItems[1].Quantity, "orderable fuera del lote: cantidad sin convertir")
	assert.Equal(t, int64(0), ev.LineItems[2].Quantity)

	require.Len(t, f.nodes.DestCalls, 1, "el nodo se resuelve una vez por evento")
	assert.Equal(t, fakes.NodeSearch{ProgramID: programID, FacilityTypeID: whType}, f.nodes.DestCalls[0],
		"se busca por el tipo de la instalación origen")
	assert.Equal(t, 1, f.catalog.ByIDsCalls, "los orderables se consultan en lote")
}

func TestFromShipment_SinNodo_ErrNodeNotFoundConCodigo(t *testing.T) {
	f := newFixture()
	f.nodes.Destinations = f.nodes.Destinations[:1]

	_, err := f.builder.FromShipment(context.Background(), testShipment())

	require.ErrorIs(t, err, domain.ErrNodeNotFound)
	assert.Contains(t, err.Error(), "HC01")
}

func TestFromShipment_FallaExterna_ErrCommunication(t *testing.T) {
	f := newFixture()
	f.nodes.Err = errors.New("connection refused")

	_, err := f.builder.FromShipment(context.Background(), testShipment())

	require.ErrorIs(t, err, domain.ErrCommunication)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestFromShipment_FallaCatalogo_ErrCommunication(t *testing.T) {
	f := newFixture()
	f.catalog.Err = errors.New("503")

	_, err := f.builder.FromShipment(context.Background(), testShipment())

	assert.ErrorIs(t, err, domain.ErrCommunication)
}

func TestFromShipment_InstalacionInexistente_ErrNodeNotFound(t *testing.T) {
	f := newFixture()
	delete(f.facs.ByID, receivingID)

	_, err := f.builder.FromShipment(context.Background(), testShipment())

	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// FromProofOfDelivery
// ──────────────────────────────────────────────────────────────────────────────

func TestFromProofOfDelivery_ConstruyeEventoDeEntrada(t *testing.T) {
	f := newFixture()
	received := time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)
	pod := &entity.ProofOfDelivery{
		ID:           "pod-1",
		Shipment:     testShipment(),
		ReceivedDate: received,
		LineItems: []entity.ProofOfDeliveryLineItem{
			{OrderableID: "o-1", QuantityAccepted: ptr(2), VVMStatus: "STAGE_1"},
			{OrderableID: "o-2", QuantityAccepted: ptr(5)},
		},
	}
	ctx := auth.WithPrincipal(context.Background(), auth.Principal{UserID: "receiver-1"})

	ev, err := f.builder.FromProofOfDelivery(ctx, pod)

	require.NoError(t, err)
	assert.Equal(t, receivingID, ev.FacilityID)
	assert.Equal(t, "receiver-1", ev.UserID, "el actor es el usuario autenticado")
	require.Len(t, ev.LineItems, 2)

	first := ev.LineItems[0]
	assert.Equal(t, int64(40), first.Quantity)
	assert.Equal(t, "node-wh", first.SourceID)
	assert.Empty(t, first.DestinationID)
	assert.Equal(t, reasonID, first.ReasonID)
	assert.Equal(t, received, first.OccurredDate)
	assert.Equal(t, map[string]string{stockevent.ExtraDataVVMStatus: "STAGE_1"}, first.ExtraData)
	assert.Nil(t, ev.LineItems[1].ExtraData)

	require.Len(t, f.nodes.SourceCalls, 1)
	assert.Equal(t, hcType, f.nodes.SourceCalls[0].FacilityTypeID)
}

func TestFromProofOfDelivery_SinNodoOrigen_ErrNodeNotFound(t *testing.T) {
	f := newFixture()
	f.nodes.Sources = nil
	pod := &entity.ProofOfDelivery{Shipment: testShipment()}

	_, err := f.builder.FromProofOfDelivery(context.Background(), pod)

	require.ErrorIs(t, err, domain.ErrNodeNotFound)
	assert.Contains(t, err.Error(), "WH01")
}

// ──────────────────────────────────────────────────────────────────────────────
// Publisher
// ──────────────────────────────────────────────────────────────────────────────

func TestPublisher_EnviaEvento(t *testing.T) {
	f := newFixture()
	sub := &fakes.Submitter{}
	p := stockevent.NewPublisher(f.builder, sub, nil, zerolog.Nop())

	require.NoError(t, p.PublishShipment(context.Background(), testShipment()))
	assert.Len(t, sub.Events, 1)
}

func TestPublisher_FallaEnvio_ErrCommunication(t *testing.T) {
	f := newFixture()
	p := stockevent.NewPublisher(f.builder, &fakes.Submitter{Err: errors.New("boom")}, nil, zerolog.Nop())

	err := p.PublishShipment(context.Background(), testShipment())

	assert.ErrorIs(t, err, domain.ErrCommunication)
}
