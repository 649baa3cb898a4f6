package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fulfillment-api/internal/application/auth"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/fakes"
	"github.com/jhoicas/fulfillment-api/internal/application/order"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/pkg/clock"
)

type deps struct {
	store     *fakes.Store
	numbering *fakes.Numbering
	notifier  *fakes.Notifier
	users     *fakes.Users
	svc       *order.Service
}

func setup() *deps {
	d := &deps{
		store: fakes.NewStore(),
		numbering: &fakes.Numbering{Config: &entity.OrderNumberConfiguration{
			ID: "cfg", OrderNumberPrefix: "ORD", IncludeOrderNumberPrefix: true,
			IncludeProgramCode: true, IncludeTypeSuffix: true,
		}},
		notifier: &fakes.Notifier{},
		users: &fakes.Users{ByID: map[string]*entity.User{
			"user-1": {ID: "user-1", Username: "admin", FirstName: "Ana", LastName: "Pérez", Email: "ana@example.org"},
		}},
	}
	programs := &fakes.Programs{ByID: map[string]*entity.Program{
		"prog-1": {ID: "prog-1", Code: "EPI", Name: "Inmunización"},
	}}
	d.svc = order.NewService(&fakes.OrderRepo{Store: d.store}, d.numbering, programs, d.users, d.notifier,
		clock.Fixed{At: time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)}, "noreply@fulfillment", zerolog.Nop())
	return d
}

var userCtx = auth.WithPrincipal(context.Background(), auth.Principal{UserID: "user-1"})

func request() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		ExternalID:           "REQ-42",
		Emergency:            true,
		FacilityID:           "fac-1",
		ProgramID:            "prog-1",
		RequestingFacilityID: "fac-1",
		ReceivingFacilityID:  "fac-1",
		SupplyingFacilityID:  "fac-wh",
		QuotedCost:           decimal.RequireFromString("1250.50"),
		LineItems:            []dto.OrderLineItemRequest{{OrderableID: "o-1", OrderedQuantity: 100}},
	}
}

func TestCreate_GeneraCodigoYNotifica(t *testing.T) {
	d := setup()

	resp, err := d.svc.Create(userCtx, request())

	require.NoError(t, err)
	assert.Equal(t, "ORDEPIREQ-42E", resp.OrderCode)
	assert.Equal(t, string(entity.OrderStatusOrdered), resp.Status)
	assert.Equal(t, "user-1", resp.CreatedByID)
	assert.True(t, resp.QuotedCost.Equal(decimal.RequireFromString("1250.5")))
	assert.Contains(t, d.store.Orders, resp.ID)

	require.Len(t, d.notifier.Sent, 1)
	assert.Equal(t, "ana@example.org", d.notifier.Sent[0].To)
	assert.Equal(t, "noreply@fulfillment", d.notifier.Sent[0].From)
	assert.Contains(t, d.notifier.Sent[0].Body, "Ana Pérez")
}

func TestCreate_FallaNotificacion_NoFallaLaOrden(t *testing.T) {
	d := setup()
	d.notifier.Err = errors.New("smtp caído")

	resp, err := d.svc.Create(userCtx, request())

	require.NoError(t, err)
	assert.Contains(t, d.store.Orders, resp.ID)
}

func TestCreate_SinConfiguracion_UsaIDExterno(t *testing.T) {
	d := setup()
	d.numbering.Config = nil

	resp, err := d.svc.Create(userCtx, request())

	require.NoError(t, err)
	assert.Equal(t, "REQ-42", resp.OrderCode)
}

func TestCreate_SinUsuario_ErrUnauthorized(t *testing.T) {
	d := setup()

	_, err := d.svc.Create(context.Background(), request())

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSearch_FiltraPorEstado(t *testing.T) {
	d := setup()
	d.store.AddOrder(entity.Order{ID: "a", OrderCode: "A", Status: entity.OrderStatusShipped, SupplyingFacilityID: "fac-wh"})
	d.store.AddOrder(entity.Order{ID: "b", OrderCode: "B", Status: entity.OrderStatusOrdered, SupplyingFacilityID: "fac-wh"})

	resp, err := d.svc.Search(context.Background(), dto.OrderSearchQuery{SupplyingFacilityID: "fac-wh", Status: "shipped, received"})

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "a", resp.Items[0].ID)
	assert.Equal(t, 20, resp.Page.Limit, "paginación por defecto")
}

func TestSearch_EstadoDesconocido_ErrInvalidInput(t *testing.T) {
	d := setup()

	_, err := d.svc.Search(context.Background(), dto.OrderSearchQuery{Status: "LOST"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNumberConfiguration_ActualizaConservaID(t *testing.T) {
	d := setup()

	resp, err := d.svc.UpdateNumberConfiguration(context.Background(), dto.OrderNumberConfigurationDTO{OrderNumberPrefix: "X"})

	require.NoError(t, err)
	assert.Equal(t, "cfg", resp.ID)
	got, err := d.svc.GetNumberConfiguration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "X", got.OrderNumberPrefix)
	assert.False(t, got.IncludeTypeSuffix)
}
