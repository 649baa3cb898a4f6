package shipment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fulfillment-api/internal/domain"
)

func TestObjectBuilder_UbicaOrdenPorCodigoRecortado(t *testing.T) {
	e := newEnv()

	s, err := e.builder.Build(context.Background(), templateByCode(), rows(
		[]string{"  " + orderCode + "  ", "C100", "10", "LOT-1"},
	))

	require.NoError(t, err)
	require.NotNil(t, s.Order)
	assert.Equal(t, orderID, s.Order.ID)
	assert.Equal(t, shipperID, s.ShipDetails.UserID, "el despachador es el configurado por defecto")
	assert.Equal(t, fixedNow, s.ShipDetails.Date)
	assert.Len(t, s.LineItems, 1)
	assert.NotEmpty(t, s.ID)
}

func TestObjectBuilder_UbicaOrdenPorID(t *testing.T) {
	e := newEnv()

	s, err := e.builder.Build(context.Background(), templateByID(), rows(
		[]string{orderID, orderableB, "2"},
	))

	require.NoError(t, err)
	assert.Equal(t, orderCode, s.Order.OrderCode)
}

func TestObjectBuilder_CodigoSensibleAMayusculas(t *testing.T) {
	e := newEnv()

	_, err := e.builder.Build(context.Background(), templateByCode(), rows(
		[]string{"ord-0001r", "C100", "1", "a"},
	))

	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestObjectBuilder_OrdenInexistente_ErrOrderNotFound(t *testing.T) {
	e := newEnv()

	_, err := e.builder.Build(context.Background(), templateByID(), rows(
		[]string{"0a1b2c3d-0000-4000-8000-000000000999", orderableA, "1"},
	))

	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestObjectBuilder_SinFilas_ErrEmptyFile(t *testing.T) {
	e := newEnv()

	_, err := e.builder.Build(context.Background(), templateByCode(), nil)

	assert.ErrorIs(t, err, domain.ErrEmptyFile)
}

func TestObjectBuilder_PlantillaIncompleta_ErrTemplateMisconfiguredAntesQueLaOrden(t *testing.T) {
	e := newEnv()
	tpl := templateByCode()
	tpl.Columns = tpl.Columns[:2]

	_, err := e.builder.Build(context.Background(), tpl, rows([]string{"NOPE", "C100"}))

	assert.ErrorIs(t, err, domain.ErrTemplateMisconfigured, "la plantilla se valida antes de buscar la orden")
	assert.NotErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestObjectBuilder_PlantillaIncompletaSinFilas_ErrTemplateMisconfigured(t *testing.T) {
	e := newEnv()
	tpl := templateByCode()
	tpl.Columns = tpl.Columns[:2]

	_, err := e.builder.Build(context.Background(), tpl, nil)

	assert.ErrorIs(t, err, domain.ErrTemplateMisconfigured)
}
