package proofofdelivery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fulfillment-api/internal/application/auth"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/fakes"
	"github.com/jhoicas/fulfillment-api/internal/application/proofofdelivery"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
)

// publisherFake registra los comprobantes publicados.
type publisherFake struct {
	published []*entity.ProofOfDelivery
	err       error
}

func (p *publisherFake) PublishProofOfDelivery(ctx context.Context, pod *entity.ProofOfDelivery) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, pod)
	return nil
}

func setup() (*fakes.Store, *publisherFake, *proofofdelivery.Service) {
	store := fakes.NewStore()
	order := entity.Order{ID: "order-1", Status: entity.OrderStatusShipped}
	store.AddOrder(order)
	store.Proofs["pod-1"] = entity.ProofOfDelivery{
		ID:       "pod-1",
		Status:   entity.ProofOfDeliveryInitiated,
		Shipment: &entity.Shipment{ID: "shipment-1", Order: &order},
		LineItems: []entity.ProofOfDeliveryLineItem{
			{ID: "line-1", OrderableID: "o-1", UseVVM: true},
		},
	}
	pub := &publisherFake{}
	svc := proofofdelivery.NewService(&fakes.TxRunner{Store: store}, &fakes.ProofRepo{Store: store}, pub, nil, zerolog.Nop())
	return store, pub, svc
}

func ptr(v int64) *int64 { return &v }

func completeRequest() dto.UpdateProofOfDeliveryRequest {
	return dto.UpdateProofOfDeliveryRequest{
		DeliveredBy:  "Transportes Andes",
		ReceivedBy:   "Enfermera Ruiz",
		ReceivedDate: "2024-05-04",
		LineItems: []dto.ProofOfDeliveryLineItemDTO{
			{ID: "line-1", QuantityAccepted: ptr(8), QuantityRejected: ptr(2), RejectionReasonID: "reason-damaged", VVMStatus: "STAGE_2"},
		},
	}
}

var userCtx = auth.WithPrincipal(context.Background(), auth.Principal{UserID: "receiver-1"})

func TestUpdate_CopiaDatosEditables(t *testing.T) {
	store, _, svc := setup()

	resp, err := svc.Update(context.Background(), "pod-1", completeRequest())

	require.NoError(t, err)
	assert.Equal(t, "2024-05-04", resp.ReceivedDate)
	assert.Equal(t, int64(8), *store.Proofs["pod-1"].LineItems[0].QuantityAccepted)
	assert.Equal(t, "o-1", resp.LineItems[0].OrderableID, "el orderable no cambia")
}

func TestUpdate_FechaInvalida_ErrInvalidInput(t *testing.T) {
	_, _, svc := setup()
	req := completeRequest()
	req.ReceivedDate = "04/05/2024"

	_, err := svc.Update(context.Background(), "pod-1", req)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfirm_ConfirmaActualizaOrdenYPublica(t *testing.T) {
	store, pub, svc := setup()
	_, err := svc.Update(context.Background(), "pod-1", completeRequest())
	require.NoError(t, err)

	resp, err := svc.Confirm(userCtx, "pod-1")

	require.NoError(t, err)
	assert.Equal(t, string(entity.ProofOfDeliveryConfirmed), resp.Status)
	assert.Equal(t, entity.ProofOfDeliveryConfirmed, store.Proofs["pod-1"].Status)
	assert.Equal(t, entity.OrderStatusReceived, store.Orders["order-1"].Status)
	assert.Len(t, pub.published, 1)
}

func TestConfirm_Incompleto_ErrInvalidInputSinCambios(t *testing.T) {
	store, pub, svc := setup()

	_, err := svc.Confirm(userCtx, "pod-1")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.ProofOfDeliveryInitiated, store.Proofs["pod-1"].Status)
	assert.Empty(t, pub.published)
}

func TestConfirm_RechazoSinMotivo_ErrInvalidInput(t *testing.T) {
	_, _, svc := setup()
	req := completeRequest()
	req.LineItems[0].RejectionReasonID = ""
	_, err := svc.Update(context.Background(), "pod-1", req)
	require.NoError(t, err)

	_, err = svc.Confirm(userCtx, "pod-1")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfirm_FallaPublicacion_Revierte(t *testing.T) {
	store, pub, svc := setup()
	_, err := svc.Update(context.Background(), "pod-1", completeRequest())
	require.NoError(t, err)
	pub.err = errors.New("stock caído")

	_, err = svc.Confirm(userCtx, "pod-1")

	require.Error(t, err)
	assert.Equal(t, entity.ProofOfDeliveryInitiated, store.Proofs["pod-1"].Status)
	assert.Equal(t, entity.OrderStatusShipped, store.Orders["order-1"].Status)
}

func TestConfirm_DosVeces_ErrConflict(t *testing.T) {
	_, _, svc := setup()
	_, err := svc.Update(context.Background(), "pod-1", completeRequest())
	require.NoError(t, err)
	_, err = svc.Confirm(userCtx, "pod-1")
	require.NoError(t, err)

	_, err = svc.Confirm(userCtx, "pod-1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.Update(context.Background(), "pod-1", completeRequest())
	assert.ErrorIs(t, err, domain.ErrConflict, "un comprobante confirmado no se edita")
}

func TestConfirm_SinUsuario_ErrUnauthorized(t *testing.T) {
	_, _, svc := setup()

	_, err := svc.Confirm(context.Background(), "pod-1")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGetByID_Inexistente_ErrNotFound(t *testing.T) {
	_, _, svc := setup()

	_, err := svc.GetByID(context.Background(), "nada")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearch_PorOrden(t *testing.T) {
	_, _, svc := setup()

	list, err := svc.Search(context.Background(), "order-1", "")

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "shipment-1", list[0].ShipmentID)
}
