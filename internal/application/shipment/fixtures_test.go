package shipment_test

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/fulfillment-api/internal/application/fakes"
	"github.com/jhoicas/fulfillment-api/internal/application/shipment"
	"github.com/jhoicas/fulfillment-api/internal/application/stockevent"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/pkg/clock"
	"github.com/jhoicas/fulfillment-api/pkg/csvfile"
)

// ──────────────────────────────────────────────────────────────────────────────
// Datos de prueba compartidos
// ──────────────────────────────────────────────────────────────────────────────

const (
	orderableA   = "6c7b1a2e-0d5f-4d8e-9b77-6f8a3c1d2e01"
	orderableB   = "6c7b1a2e-0d5f-4d8e-9b77-6f8a3c1d2e02"
	unknownID    = "6c7b1a2e-0d5f-4d8e-9b77-6f8a3c1d2eff"
	orderID      = "0a1b2c3d-0000-4000-8000-000000000001"
	programID    = "0a1b2c3d-0000-4000-8000-0000000000aa"
	supplyingID  = "0a1b2c3d-0000-4000-8000-0000000000f1"
	receivingID  = "0a1b2c3d-0000-4000-8000-0000000000f2"
	warehouseTyp = "type-warehouse"
	clinicTyp    = "type-clinic"
	destNodeID   = "node-clinic"
	shipperID    = "0a1b2c3d-0000-4000-8000-0000000000u1"
	orderCode    = "ORD-0001R"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func catalog() *fakes.Catalog {
	return &fakes.Catalog{Orderables: []entity.Orderable{
		{ID: orderableA, ProductCode: "C100", FullProductName: "Vacuna A", NetContent: 10, UseVVM: true},
		{ID: orderableB, ProductCode: "C200", FullProductName: "Jeringa", NetContent: 1},
	}}
}

// templateByCode: orderCode, productCode, quantityShipped, lotCode (extra).
func templateByCode() *entity.FileTemplate {
	return &entity.FileTemplate{
		ID:           "tpl-1",
		FilePrefix:   "shipment",
		HeaderInFile: true,
		TemplateType: entity.TemplateTypeShipment,
		Columns: []entity.FileColumn{
			{Position: 0, KeyPath: entity.KeyPathOrderCode},
			{Position: 1, KeyPath: entity.KeyPathProductCode},
			{Position: 2, KeyPath: entity.KeyPathQuantityShipped},
			{Position: 3, KeyPath: "lotCode"},
		},
	}
}

// templateByID: orderId, orderableId, quantityShipped.
func templateByID() *entity.FileTemplate {
	return &entity.FileTemplate{
		TemplateType: entity.TemplateTypeShipment,
		Columns: []entity.FileColumn{
			{Position: 0, KeyPath: entity.KeyPathOrderID},
			{Position: 1, KeyPath: entity.KeyPathOrderableID},
			{Position: 2, KeyPath: entity.KeyPathQuantityShipped},
		},
	}
}

func rows(records ...[]string) []csvfile.Row {
	out := make([]csvfile.Row, 0, len(records))
	for i, r := range records {
		out = append(out, csvfile.NewRow(i+2, r...))
	}
	return out
}

func order() entity.Order {
	return entity.Order{
		ID:                  orderID,
		OrderCode:           orderCode,
		ProgramID:           programID,
		SupplyingFacilityID: supplyingID,
		ReceivingFacilityID: receivingID,
		Status:              entity.OrderStatusOrdered,
	}
}

// env dependencias completas para crear despachos.
type env struct {
	store     *fakes.Store
	tx        *fakes.TxRunner
	catalog   *fakes.Catalog
	nodes     *fakes.Nodes
	submitter *fakes.Submitter
	service   *shipment.Service
	builder   *shipment.ObjectBuilder
	helper    *shipment.PersistenceHelper
}

func newEnv() *env {
	e := &env{
		store:     fakes.NewStore(),
		catalog:   catalog(),
		submitter: &fakes.Submitter{},
		nodes: &fakes.Nodes{Destinations: []entity.ValidSourceDestination{
			{ProgramID: programID, FacilityTypeID: warehouseTyp, Node: entity.Node{ID: "node-other", ReferenceID: "otra", RefDataFacility: true}},
			{ProgramID: programID, FacilityTypeID: warehouseTyp, Node: entity.Node{ID: destNodeID, ReferenceID: receivingID, RefDataFacility: true}},
		}},
	}
	e.store.AddOrder(order())
	e.tx = &fakes.TxRunner{Store: e.store}
	facilities := &fakes.Facilities{ByID: map[string]*entity.Facility{
		supplyingID: {ID: supplyingID, Code: "WH01", Type: entity.FacilityType{ID: warehouseTyp}},
		receivingID: {ID: receivingID, Code: "HC01", Type: entity.FacilityType{ID: clinicTyp}},
	}}
	clk := clock.Fixed{At: fixedNow}
	builder := stockevent.NewBuilder(facilities, e.nodes, e.catalog, clk, "reason-in", zerolog.Nop())
	publisher := stockevent.NewPublisher(builder, e.submitter, nil, zerolog.Nop())
	orders := &fakes.OrderRepo{Store: e.store}
	e.service = shipment.NewService(e.tx, &fakes.ShipmentRepo{Store: e.store}, orders, e.catalog, publisher, clk, nil, zerolog.Nop())
	e.builder = shipment.NewObjectBuilder(orders, shipment.NewLineItemBuilder(e.catalog, shipment.ModeStrict), clk, shipperID)
	e.helper = shipment.NewPersistenceHelper(e.builder, e.service)
	return e
}
