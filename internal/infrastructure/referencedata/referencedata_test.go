package referencedata_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fulfillment-api/internal/application/ports"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/infrastructure/referencedata"
)

func options(url string) referencedata.Options {
	return referencedata.Options{BaseURL: url, Token: "svc-token", Timeout: 2 * time.Second, Logger: zerolog.Nop()}
}

// ─── referencedata ──────────────────────────────────────────────────────────

func TestFindByIDs_EnviaIDsYToken(t *testing.T) {
	var gotIDs []string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orderables", r.URL.Path)
		gotIDs = r.URL.Query()["id"]
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"content":[{"id":"o-1","productCode":"C100","fullProductName":"BCG","netContent":20,"extraData":{"useVVM":"true"}}]}`))
	}))
	defer srv.Close()

	svc := referencedata.NewService(options(srv.URL))
	list, err := svc.FindByIDs(context.Background(), []string{"o-1", "o-2"})

	require.NoError(t, err)
	assert.Equal(t, []string{"o-1", "o-2"}, gotIDs)
	assert.Equal(t, "Bearer svc-token", gotAuth)
	require.Len(t, list, 1)
	assert.Equal(t, entity.Orderable{ID: "o-1", ProductCode: "C100", FullProductName: "BCG", NetContent: 20, UseVVM: true}, list[0])
}

func TestFindByIDs_SinIDs_NoLlama(t *testing.T) {
	svc := referencedata.NewService(options("http://127.0.0.1:1"))

	list, err := svc.FindByIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFacilityFindOne_404_Nil(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f, err := referencedata.NewService(options(srv.URL)).Facilities().FindOne(context.Background(), "x")

	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestFacilityFindOne_MapeaTipo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/facilities/fac-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"fac-1","code":"WH01","name":"Bodega","active":true,"type":{"id":"ft-1","code":"warehouse"}}`))
	}))
	defer srv.Close()

	f, err := referencedata.NewService(options(srv.URL)).Facilities().FindOne(context.Background(), "fac-1")

	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "ft-1", f.Type.ID)
	assert.Equal(t, "WH01", f.Code)
}

func TestProgramFindOne_Error500_ErrCommunication(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := referencedata.NewService(options(srv.URL)).Programs().FindOne(context.Background(), "p")

	assert.ErrorIs(t, err, domain.ErrCommunication)
}

func TestCircuitoAbierto_NoLlamaAlServidor(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	users := referencedata.NewService(options(srv.URL)).Users()

	for i := 0; i < 5; i++ {
		_, err := users.FindOne(context.Background(), "u")
		require.ErrorIs(t, err, domain.ErrCommunication)
	}
	_, err := users.FindOne(context.Background(), "u")

	assert.ErrorIs(t, err, domain.ErrCommunication)
	assert.EqualValues(t, 5, calls.Load(), "con el circuito abierto no se llama al servicio")
}

// ─── stockmanagement ────────────────────────────────────────────────────────

func TestValidDestinations_ParametrosYNodo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/validDestinations", r.URL.Path)
		assert.Equal(t, "prog-1", r.URL.Query().Get("programId"))
		assert.Equal(t, "ft-1", r.URL.Query().Get("facilityTypeId"))
		_, _ = w.Write([]byte(`[{"id":"a-1","programId":"prog-1","facilityTypeId":"ft-1","name":"Centro",
			"node":{"id":"node-9","referenceId":"fac-2","refDataFacility":true}}]`))
	}))
	defer srv.Close()

	list, err := referencedata.NewStockManagement(options(srv.URL)).ValidDestinations(context.Background(), "prog-1", "ft-1")

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].MatchesFacility("fac-2"))
	assert.Equal(t, "node-9", list[0].Node.ID)
}

func TestSubmit_FormatoDelEvento(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`"event-77"`))
	}))
	defer srv.Close()

	id, err := referencedata.NewStockManagement(options(srv.URL)).Submit(context.Background(), &entity.StockEvent{
		ProgramID:  "prog-1",
		FacilityID: "fac-1",
		LineItems: []entity.StockEventLineItem{{
			OrderableID:   "o-1",
			Quantity:      200,
			OccurredDate:  time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			DestinationID: "node-9",
		}},
	})

	require.NoError(t, err)
	assert.Equal(t, "event-77", id)
	items := body["lineItems"].([]any)
	require.Len(t, items, 1)
	li := items[0].(map[string]any)
	assert.Equal(t, "2024-03-05", li["occurredDate"])
	assert.EqualValues(t, 200, li["quantity"])
	assert.NotContains(t, li, "sourceId")
}

// ─── notification ───────────────────────────────────────────────────────────

func TestNotifierSend(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := referencedata.NewNotifier(options(srv.URL)).Send(context.Background(), ports.Notification{
		From: "a@x", To: "b@x", Subject: "Orden", Body: "creada",
	})

	require.NoError(t, err)
	assert.Equal(t, "b@x", got["to"])
	assert.Equal(t, "creada", got["content"])
}
