package shipment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fulfillment-api/internal/application/auth"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Flujo transaccional de creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateShipment_PersisteTodoYEnviaEvento(t *testing.T) {
	e := newEnv()
	e.store.Drafts["draft-1"] = entity.ShipmentDraft{ID: "draft-1", OrderID: orderID}
	e.store.Drafts["draft-otra"] = entity.ShipmentDraft{ID: "draft-otra", OrderID: "otra-orden"}

	s, err := e.helper.CreateShipment(context.Background(), templateByCode(), rows(
		[]string{orderCode, "C100", "3", "LOT-1"},
		[]string{orderCode, "C200", "5", "LOT-2"},
	))

	require.NoError(t, err)
	assert.Contains(t, e.store.Shipments, s.ID, "el despacho debe persistirse")
	assert.Equal(t, entity.OrderStatusShipped, e.store.Orders[orderID].Status)
	assert.NotContains(t, e.store.Drafts, "draft-1", "los borradores de la orden se eliminan")
	assert.Contains(t, e.store.Drafts, "draft-otra", "los borradores de otras órdenes se conservan")
	assert.Equal(t, 1, e.tx.Commits)

	require.Len(t, e.store.Proofs, 1, "se crea un comprobante de entrega")
	for _, pod := range e.store.Proofs {
		assert.Equal(t, entity.ProofOfDeliveryInitiated, pod.Status)
		require.Len(t, pod.LineItems, 2)
		assert.True(t, pod.LineItems[0].UseVVM, "useVvm viene del orderable")
		assert.False(t, pod.LineItems[1].UseVVM)
	}

	require.Len(t, e.submitter.Events, 1)
	ev := e.submitter.Events[0]
	assert.Equal(t, programID, ev.ProgramID)
	assert.Equal(t, supplyingID, ev.FacilityID)
	assert.Equal(t, shipperID, ev.UserID)
	require.Len(t, ev.LineItems, 2)
	assert.Equal(t, int64(30), ev.LineItems[0].Quantity, "3 x netContent 10")
	assert.Equal(t, int64(5), ev.LineItems[1].Quantity)
	assert.Equal(t, destNodeID, ev.LineItems[0].DestinationID)
}

func TestCreateShipment_FallaAlEnviarEvento_RevierteTodo(t *testing.T) {
	e := newEnv()
	e.store.Drafts["draft-1"] = entity.ShipmentDraft{ID: "draft-1", OrderID: orderID}
	e.submitter.Err = errors.New("stockmanagement caído")

	s, err := e.helper.CreateShipment(context.Background(), templateByCode(), rows(
		[]string{orderCode, "C100", "3", "LOT-1"},
	))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCommunication)
	assert.Nil(t, s)
	assert.Empty(t, e.store.Shipments, "no debe quedar despacho guardado")
	assert.Empty(t, e.store.Proofs)
	assert.Equal(t, entity.OrderStatusOrdered, e.store.Orders[orderID].Status)
	assert.Contains(t, e.store.Drafts, "draft-1")
	assert.Equal(t, 1, e.tx.Rollbacks)
}

func TestCreateShipment_SinNodoDestino_ErrNodeNotFound(t *testing.T) {
	e := newEnv()
	e.nodes.Destinations = nil

	_, err := e.helper.CreateShipment(context.Background(), templateByCode(), rows(
		[]string{orderCode, "C100", "3", "LOT-1"},
	))

	require.ErrorIs(t, err, domain.ErrNodeNotFound)
	assert.Contains(t, err.Error(), "HC01", "el error nombra a la instalación contraparte")
	assert.Empty(t, e.store.Shipments)
}

func TestCreateShipment_ErrorDeArchivo_NoAbreTransaccion(t *testing.T) {
	e := newEnv()

	_, err := e.helper.CreateShipment(context.Background(), templateByCode(), rows(
		[]string{orderCode, "C100", "-1", "LOT-1"},
	))

	assert.ErrorIs(t, err, domain.ErrNegativeQuantity)
	assert.Equal(t, 0, e.tx.Commits+e.tx.Rollbacks)
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación desde la API
// ──────────────────────────────────────────────────────────────────────────────

func TestServiceCreate_UsaUsuarioAutenticado(t *testing.T) {
	e := newEnv()
	ctx := auth.WithPrincipal(context.Background(), auth.Principal{UserID: "user-9"})

	resp, err := e.service.Create(ctx, dto.CreateShipmentRequest{
		OrderID:   orderID,
		LineItems: []dto.ShipmentLineItemRequest{{OrderableID: orderableB, QuantityShipped: 4}},
	})

	require.NoError(t, err)
	assert.Equal(t, "user-9", resp.ShippedByID)
	assert.Equal(t, orderID, resp.OrderID)
	require.Len(t, e.submitter.Events, 1)
	assert.Equal(t, "user-9", e.submitter.Events[0].UserID)
}

func TestServiceCreate_OrdenYaDespachada_ErrConflict(t *testing.T) {
	e := newEnv()
	o := order()
	o.Status = entity.OrderStatusShipped
	e.store.AddOrder(o)
	ctx := auth.WithPrincipal(context.Background(), auth.Principal{UserID: "user-9"})

	_, err := e.service.Create(ctx, dto.CreateShipmentRequest{
		OrderID:   orderID,
		LineItems: []dto.ShipmentLineItemRequest{{OrderableID: orderableB, QuantityShipped: 4}},
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestServiceCreate_SinUsuario_ErrUnauthorized(t *testing.T) {
	e := newEnv()

	_, err := e.service.Create(context.Background(), dto.CreateShipmentRequest{OrderID: orderID})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestServiceGetByID_Inexistente_ErrNotFound(t *testing.T) {
	e := newEnv()

	_, err := e.service.GetByID(context.Background(), "nada")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
