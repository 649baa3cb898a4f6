package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics métricas de negocio del servicio de fulfillment.
type Metrics struct {
	registry *prometheus.Registry

	ShipmentsCreated     *prometheus.CounterVec // label source: api | file
	ShipmentImportErrors *prometheus.CounterVec // label reason
	StockEventsSubmitted *prometheus.CounterVec // label origin: shipment | proof_of_delivery
	ProofsConfirmed      prometheus.Counter
	CircuitBreakerState  *prometheus.GaugeVec
}

// New crea las métricas con un registry propio (no el global).
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		ShipmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shipments_created_total",
			Help:      "Despachos creados",
		}, []string{"source"}),
		ShipmentImportErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shipment_import_errors_total",
			Help:      "Archivos de despacho rechazados",
		}, []string{"reason"}),
		StockEventsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_events_submitted_total",
			Help:      "Eventos de stock enviados a stock management",
		}, []string{"origin"}),
		ProofsConfirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proofs_of_delivery_confirmed_total",
			Help:      "Pruebas de entrega confirmadas",
		}),
		CircuitBreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Estado del circuit breaker por servicio (0=closed, 1=half-open, 2=open)",
		}, []string{"name"}),
	}

	registry.MustRegister(
		m.ShipmentsCreated,
		m.ShipmentImportErrors,
		m.StockEventsSubmitted,
		m.ProofsConfirmed,
		m.CircuitBreakerState,
	)
	return m
}

// Handler expone /metrics para el registry del servicio.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry devuelve el registry (tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Los helpers aceptan receptor nil para que los casos de uso funcionen sin métricas (tests, CLI).

// ShipmentCreated incrementa el contador de despachos creados.
func (m *Metrics) ShipmentCreated(source string) {
	if m == nil {
		return
	}
	m.ShipmentsCreated.WithLabelValues(source).Inc()
}

// ImportFailed incrementa el contador de archivos rechazados.
func (m *Metrics) ImportFailed(reason string) {
	if m == nil {
		return
	}
	m.ShipmentImportErrors.WithLabelValues(reason).Inc()
}

// StockEventSubmitted incrementa el contador de eventos de stock enviados.
func (m *Metrics) StockEventSubmitted(origin string) {
	if m == nil {
		return
	}
	m.StockEventsSubmitted.WithLabelValues(origin).Inc()
}

// ProofConfirmed incrementa el contador de pruebas de entrega confirmadas.
func (m *Metrics) ProofConfirmed() {
	if m == nil {
		return
	}
	m.ProofsConfirmed.Inc()
}

// BreakerState registra el estado del circuit breaker de un cliente.
func (m *Metrics) BreakerState(name string, state float64) {
	if m == nil {
		return
	}
	m.CircuitBreakerState.WithLabelValues(name).Set(state)
}
