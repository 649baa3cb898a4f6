package shipmentdraft_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/fakes"
	"github.com/jhoicas/fulfillment-api/internal/application/shipmentdraft"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
)

const (
	orderID = "9f0e8d7c-0000-4000-8000-000000000001"
	draftID = "9f0e8d7c-0000-4000-8000-0000000000d1"
)

func setup() (*fakes.Store, *shipmentdraft.Service) {
	store := fakes.NewStore()
	store.AddOrder(entity.Order{ID: orderID})
	return store, shipmentdraft.NewService(&fakes.DraftRepo{Store: store}, &fakes.OrderRepo{Store: store})
}

func qty(v int64) *int64 { return &v }

func TestCreate_AsignaIDs(t *testing.T) {
	store, svc := setup()

	resp, err := svc.Create(context.Background(), dto.ShipmentDraftRequest{
		OrderID:   orderID,
		LineItems: []dto.ShipmentDraftLineItemRequest{{OrderableID: "o-1"}},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.NotEmpty(t, resp.LineItems[0].ID)
	assert.Nil(t, resp.LineItems[0].QuantityShipped, "la cantidad puede quedar sin definir")
	assert.Contains(t, store.Drafts, resp.ID)
}

func TestCreate_OrdenInexistente_ErrNotFound(t *testing.T) {
	_, svc := setup()

	_, err := svc.Create(context.Background(), dto.ShipmentDraftRequest{OrderID: "otra"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_IDDistinto_ErrInvalidInput(t *testing.T) {
	_, svc := setup()

	_, err := svc.Update(context.Background(), draftID, dto.ShipmentDraftRequest{ID: "otro", OrderID: orderID})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_Inexistente_LoCrea(t *testing.T) {
	store, svc := setup()

	resp, err := svc.Update(context.Background(), draftID, dto.ShipmentDraftRequest{OrderID: orderID, Notes: "nuevo"})

	require.NoError(t, err)
	assert.Equal(t, draftID, resp.ID)
	assert.Equal(t, "nuevo", store.Drafts[draftID].Notes)
}

func TestUpdate_Existente_ReemplazaLineas(t *testing.T) {
	store, svc := setup()
	store.Drafts[draftID] = entity.ShipmentDraft{ID: draftID, OrderID: orderID, Notes: "viejo",
		LineItems: []entity.ShipmentDraftLineItem{{ID: "l-1", OrderableID: "o-1"}}}

	resp, err := svc.Update(context.Background(), draftID, dto.ShipmentDraftRequest{
		ID:        draftID,
		OrderID:   orderID,
		Notes:     "actualizado",
		LineItems: []dto.ShipmentDraftLineItemRequest{{OrderableID: "o-2", QuantityShipped: qty(4)}},
	})

	require.NoError(t, err)
	assert.Equal(t, "actualizado", resp.Notes)
	require.Len(t, store.Drafts[draftID].LineItems, 1)
	assert.Equal(t, "o-2", store.Drafts[draftID].LineItems[0].OrderableID)
	assert.Equal(t, int64(4), *store.Drafts[draftID].LineItems[0].QuantityShipped)
}

func TestDelete_Inexistente_ErrNotFound(t *testing.T) {
	_, svc := setup()

	assert.ErrorIs(t, svc.Delete(context.Background(), draftID), domain.ErrNotFound)
}

func TestListByOrder(t *testing.T) {
	store, svc := setup()
	store.Drafts["a"] = entity.ShipmentDraft{ID: "a", OrderID: orderID}
	store.Drafts["b"] = entity.ShipmentDraft{ID: "b", OrderID: "otra"}

	list, err := svc.ListByOrder(context.Background(), orderID)

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID)
}
